package gamelist

import (
	"time"

	"github.com/agentstation/gamelist/pkg/errors"
)

// SyncOptions controls a single Sync run.
type SyncOptions struct {
	DryRun        bool          // Resolve rows but write nothing
	ReconcileOnly bool          // Stop after committing updates
	NoReport      bool          // Skip the report artifacts
	NoImages      bool          // Skip cover downloads; games render with a placeholder
	Top           int           // Upcoming games in the summary; 0 means the client default
	Timeout       time.Duration // Timeout for the whole run
}

// SyncOption is a function that configures SyncOptions.
type SyncOption func(*SyncOptions)

// NewSyncOptions returns SyncOptions with opts applied.
func NewSyncOptions(opts ...SyncOption) *SyncOptions {
	s := &SyncOptions{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks if the sync options are valid.
func (s *SyncOptions) Validate() error {
	if s.Timeout < 0 {
		return &errors.ValidationError{
			Field:   "Timeout",
			Value:   s.Timeout,
			Message: "timeout must be non-negative",
		}
	}
	if s.Top < 0 {
		return &errors.ValidationError{
			Field:   "Top",
			Value:   s.Top,
			Message: "must be non-negative",
		}
	}
	return nil
}

// WithDryRun resolves rows and applies the updates to an in-memory copy of
// the sheet instead of writing them. No report is emitted.
func WithDryRun(dryRun bool) SyncOption {
	return func(opts *SyncOptions) {
		opts.DryRun = dryRun
	}
}

// WithReconcileOnly stops the run once updates are committed.
func WithReconcileOnly(only bool) SyncOption {
	return func(opts *SyncOptions) {
		opts.ReconcileOnly = only
	}
}

// WithNoReport skips writing report artifacts.
func WithNoReport(skip bool) SyncOption {
	return func(opts *SyncOptions) {
		opts.NoReport = skip
	}
}

// WithNoImages skips downloading cover images.
func WithNoImages(skip bool) SyncOption {
	return func(opts *SyncOptions) {
		opts.NoImages = skip
	}
}

// WithTop sets how many upcoming games the summary lists.
func WithTop(n int) SyncOption {
	return func(opts *SyncOptions) {
		opts.Top = n
	}
}

// WithTimeout configures the sync timeout.
func WithTimeout(timeout time.Duration) SyncOption {
	return func(opts *SyncOptions) {
		opts.Timeout = timeout
	}
}
