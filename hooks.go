package gamelist

import (
	"sync"

	"github.com/agentstation/gamelist/pkg/reconciler"
)

// Hook function types for run events
type (
	// GameResolvedHook is called for every row the reconciler resolved,
	// including placeholder resolutions.
	GameResolvedHook func(res reconciler.Resolution)

	// RunCompleteHook is called once at the end of every Sync with the result
	// and the error, if any.
	RunCompleteHook func(result *Result, err error)
)

// hooks manages event callbacks
type hooks struct {
	mu             sync.RWMutex
	onGameResolved []GameResolvedHook
	onRunComplete  []RunCompleteHook
}

func newHooks() *hooks {
	return &hooks{}
}

func (h *hooks) OnGameResolved(fn GameResolvedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onGameResolved = append(h.onGameResolved, fn)
}

func (h *hooks) OnRunComplete(fn RunCompleteHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRunComplete = append(h.onRunComplete, fn)
}

func (h *hooks) triggerResolved(resolved []reconciler.Resolution) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, res := range resolved {
		for _, hook := range h.onGameResolved {
			hook(res)
		}
	}
}

func (h *hooks) triggerRunComplete(result *Result, err error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, hook := range h.onRunComplete {
		hook(result, err)
	}
}
