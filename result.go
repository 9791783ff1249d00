package gamelist

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/gamelist/pkg/classifier"
	"github.com/agentstation/gamelist/pkg/records"
	"github.com/agentstation/gamelist/pkg/reconciler"
	"github.com/agentstation/gamelist/pkg/report"
)

// Result represents the complete result of a Sync.
//
// When Sync fails part way, the Result returned with the error holds
// everything done before the failure.
type Result struct {
	RunID  string `json:"run_id" yaml:"run_id"`
	DryRun bool   `json:"dry_run" yaml:"dry_run"`

	// Reconcile is the reconciler's pass over the sheet as first read.
	Reconcile *reconciler.Result `json:"reconcile,omitempty" yaml:"reconcile,omitempty"`

	// Written counts the update ranges committed to the sheet.
	Written int `json:"written" yaml:"written"`

	// Records is the final snapshot: re-read after a commit, or the dry-run
	// copy with updates applied in memory.
	Records []records.Record `json:"-" yaml:"-"`

	// Pending lists rows still unreconciled after the commit was read back.
	Pending []records.Record `json:"pending,omitempty" yaml:"pending,omitempty"`

	Buckets   classifier.Buckets `json:"buckets" yaml:"buckets"`
	Schedule  string             `json:"schedule,omitempty" yaml:"schedule,omitempty"`
	Artifacts *report.Artifacts  `json:"artifacts,omitempty" yaml:"artifacts,omitempty"`

	// Images maps cover URLs to cached files.
	Images map[string]string `json:"images,omitempty" yaml:"images,omitempty"`

	Metadata ResultMetadata `json:"metadata" yaml:"metadata"`
}

// ResultMetadata contains run timing.
type ResultMetadata struct {
	StartTime time.Time     `json:"start_time" yaml:"start_time"`
	EndTime   time.Time     `json:"end_time" yaml:"end_time"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}

// Staged returns the number of update ranges the reconciler produced.
func (r *Result) Staged() int {
	if r.Reconcile == nil {
		return 0
	}
	return len(r.Reconcile.Updates)
}

// HasChanges returns true if the run changed, or would have changed, the sheet.
func (r *Result) HasChanges() bool {
	return r.Staged() > 0
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	var parts []string
	if r.Reconcile != nil {
		resolved := len(r.Reconcile.Resolved)
		switch {
		case resolved == 0:
			parts = append(parts, "No rows needed the catalog")
		case r.DryRun:
			parts = append(parts, fmt.Sprintf("%d rows resolved, %d ranges staged", resolved, r.Staged()))
		default:
			parts = append(parts, fmt.Sprintf("%d rows resolved, %d ranges written", resolved, r.Written))
		}
	}

	if len(r.Pending) > 0 {
		parts = append(parts, fmt.Sprintf("%d rows still pending", len(r.Pending)))
	}

	if r.Buckets.Len() > 0 {
		parts = append(parts, fmt.Sprintf("%d current, %d on hold, %d upcoming, %d completed",
			len(r.Buckets.Current), len(r.Buckets.OnHold), len(r.Buckets.Upcoming), len(r.Buckets.Completed)))
	}

	summary := strings.Join(parts, "; ")
	if r.DryRun {
		summary = "(Dry run) " + summary
	}
	return summary
}
