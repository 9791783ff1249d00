package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/agentstation/gamelist/pkg/constants"
	"github.com/agentstation/gamelist/pkg/logging"
)

// Clock returns the current time.
type Clock func() time.Time

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// RateLimited paces calls to a wrapped Client. If a call arrives sooner than
// the floor after the previous call was issued, the caller sleeps a fixed
// cooldown first. This is a static backoff, not an adaptive one.
//
// The last-call timestamp is recorded just before the wrapped call is issued,
// so back-to-back calls are paced even when the previous call was slow.
type RateLimited struct {
	next     Client
	floor    time.Duration
	cooldown time.Duration
	now      Clock
	sleep    Sleeper

	mu       sync.Mutex
	lastCall time.Time
}

// RateLimitOption configures a RateLimited client.
type RateLimitOption func(*RateLimited)

// WithFloor sets the minimum spacing between calls.
func WithFloor(d time.Duration) RateLimitOption {
	return func(r *RateLimited) {
		r.floor = d
	}
}

// WithCooldown sets how long a too-early caller sleeps.
func WithCooldown(d time.Duration) RateLimitOption {
	return func(r *RateLimited) {
		r.cooldown = d
	}
}

// WithClock replaces the time source.
func WithClock(c Clock) RateLimitOption {
	return func(r *RateLimited) {
		r.now = c
	}
}

// WithSleeper replaces the sleep function.
func WithSleeper(s Sleeper) RateLimitOption {
	return func(r *RateLimited) {
		r.sleep = s
	}
}

// NewRateLimited wraps next with the default MobyGames pacing policy.
func NewRateLimited(next Client, opts ...RateLimitOption) *RateLimited {
	r := &RateLimited{
		next:     next,
		floor:    constants.RateLimitFloor,
		cooldown: constants.RateLimitCooldown,
		now:      time.Now,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LookupByTitle implements Client.
func (r *RateLimited) LookupByTitle(ctx context.Context, title string) ([]Entry, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	return r.next.LookupByTitle(ctx, title)
}

// LookupByID implements Client.
func (r *RateLimited) LookupByID(ctx context.Context, id string) (*Entry, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	return r.next.LookupByID(ctx, id)
}

// wait applies the pacing policy and stamps the call time. The lock is held
// across the sleep so concurrent callers queue behind each other.
func (r *RateLimited) wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.lastCall.IsZero() && r.now().Sub(r.lastCall) < r.floor {
		logging.Ctx(ctx).Info().
			Dur("cooldown", r.cooldown).
			Msg("Sleeping to respect catalog API rate limit")
		if err := r.sleep(ctx, r.cooldown); err != nil {
			return err
		}
	}

	r.lastCall = r.now()
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
