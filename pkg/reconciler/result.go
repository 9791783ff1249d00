package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/gamelist/pkg/catalog"
	"github.com/agentstation/gamelist/pkg/records"
	"github.com/agentstation/gamelist/pkg/sheet"
)

// Method names how a row was resolved.
type Method string

// Resolution methods, in the order they are tried.
const (
	MethodOverride    Method = "override"
	MethodExact       Method = "exact"
	MethodFirst       Method = "first"
	MethodPlaceholder Method = "placeholder"
)

// Resolution records the outcome for one row that needed a lookup.
type Resolution struct {
	Row           int           `json:"row" yaml:"row"`
	PreviousTitle string        `json:"previous_title" yaml:"previous_title"`
	Entry         catalog.Entry `json:"entry" yaml:"entry"`
	How           Method        `json:"how" yaml:"how"`
}

// Result represents the outcome of a reconciliation pass.
//
// When Reconcile fails part way, the Result it returns alongside the error
// still holds every update staged before the failure.
type Result struct {
	// Updates are the range writes to commit, two per resolved row.
	Updates []sheet.Update `json:"updates" yaml:"updates"`

	// Unchanged are the records that were already reconciled.
	Unchanged []records.Record `json:"unchanged" yaml:"unchanged"`

	// Resolved lists each row that was looked up, in row order.
	Resolved []Resolution `json:"resolved" yaml:"resolved"`

	// Lookups counts catalog calls made.
	Lookups int `json:"lookups" yaml:"lookups"`

	Metadata ResultMetadata `json:"metadata" yaml:"metadata"`
}

// ResultMetadata contains timing for the reconciliation pass.
type ResultMetadata struct {
	StartTime time.Time     `json:"start_time" yaml:"start_time"`
	EndTime   time.Time     `json:"end_time" yaml:"end_time"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}

// HasUpdates returns true if any writes were staged.
func (r *Result) HasUpdates() bool {
	return len(r.Updates) > 0
}

// Count returns how many rows were resolved with method.
func (r *Result) Count(method Method) int {
	n := 0
	for _, res := range r.Resolved {
		if res.How == method {
			n++
		}
	}
	return n
}

// Summary returns a one-line description of the pass.
func (r *Result) Summary() string {
	return fmt.Sprintf("Reconciled %d rows (%d override, %d exact, %d first, %d placeholder), %d unchanged, %d lookups in %v",
		len(r.Resolved),
		r.Count(MethodOverride),
		r.Count(MethodExact),
		r.Count(MethodFirst),
		r.Count(MethodPlaceholder),
		len(r.Unchanged),
		r.Lookups,
		r.Metadata.Duration.Round(time.Millisecond),
	)
}
