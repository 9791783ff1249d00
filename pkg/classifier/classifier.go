// Package classifier partitions reconciled records into presentation buckets
// and orders each bucket.
package classifier

import (
	"slices"
	"sort"

	"github.com/agentstation/gamelist/pkg/records"
)

// Bucket names a presentation bucket.
type Bucket string

// Buckets in report order.
const (
	BucketCurrent   Bucket = "current"
	BucketOnHold    Bucket = "on_hold"
	BucketUpcoming  Bucket = "upcoming"
	BucketCompleted Bucket = "completed"
)

// AllBuckets lists the buckets in report order.
var AllBuckets = []Bucket{BucketCurrent, BucketOnHold, BucketUpcoming, BucketCompleted}

// Buckets holds every record exactly once, in its bucket's order.
type Buckets struct {
	Current   []records.Record `json:"current" yaml:"current"`
	OnHold    []records.Record `json:"on_hold" yaml:"on_hold"`
	Upcoming  []records.Record `json:"upcoming" yaml:"upcoming"`
	Completed []records.Record `json:"completed" yaml:"completed"`
}

// Classify sorts recs by popularity then partitions them. recs is not
// modified.
//
// The pre-sort key is (-|votes|, dateSuggested): a vote count of -8 ranks
// above 5. Absent votes count as zero. Ties keep input order.
//
// Bucket priority is onHold, then current (started, not completed), then
// completed, then upcoming.
func Classify(recs []records.Record) Buckets {
	sorted := make([]records.Record, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, vj := abs(sorted[i].VoteCount()), abs(sorted[j].VoteCount())
		if vi != vj {
			return vi > vj
		}
		return sorted[i].DateSuggested.Before(sorted[j].DateSuggested)
	})

	var b Buckets
	for _, rec := range sorted {
		switch Of(rec) {
		case BucketOnHold:
			b.OnHold = append(b.OnHold, rec)
		case BucketCurrent:
			b.Current = append(b.Current, rec)
		case BucketCompleted:
			b.Completed = append(b.Completed, rec)
		default:
			b.Upcoming = append(b.Upcoming, rec)
		}
	}

	sort.SliceStable(b.Current, func(i, j int) bool {
		return b.Current[i].Started.Before(*b.Current[j].Started)
	})
	sort.SliceStable(b.Completed, func(i, j int) bool {
		return b.Completed[j].Completed.Before(*b.Completed[i].Completed)
	})

	return b
}

// Of returns the bucket a single record belongs to.
func Of(rec records.Record) Bucket {
	switch {
	case rec.IsOnHold():
		return BucketOnHold
	case rec.IsStarted() && !rec.IsCompleted():
		return BucketCurrent
	case rec.IsCompleted():
		return BucketCompleted
	default:
		return BucketUpcoming
	}
}

// TopUpcoming returns the first n upcoming records. n <= 0 yields none. The
// result has no spare capacity, so appending to it never touches the bucket.
func (b Buckets) TopUpcoming(n int) []records.Record {
	if n <= 0 {
		return nil
	}
	if n > len(b.Upcoming) {
		n = len(b.Upcoming)
	}
	return slices.Clip(b.Upcoming[:n])
}

// Get returns the records of one bucket.
func (b Buckets) Get(bucket Bucket) []records.Record {
	switch bucket {
	case BucketCurrent:
		return b.Current
	case BucketOnHold:
		return b.OnHold
	case BucketUpcoming:
		return b.Upcoming
	case BucketCompleted:
		return b.Completed
	}
	return nil
}

// Counts returns the size of each bucket.
func (b Buckets) Counts() map[Bucket]int {
	return map[Bucket]int{
		BucketCurrent:   len(b.Current),
		BucketOnHold:    len(b.OnHold),
		BucketUpcoming:  len(b.Upcoming),
		BucketCompleted: len(b.Completed),
	}
}

// Len returns the total number of records across buckets.
func (b Buckets) Len() int {
	return len(b.Current) + len(b.OnHold) + len(b.Upcoming) + len(b.Completed)
}

// ParseBucket resolves a user-supplied bucket name. Hyphens and the short
// names "hold" and "done" are accepted.
func ParseBucket(s string) (Bucket, bool) {
	switch s {
	case "current", "playing":
		return BucketCurrent, true
	case "on_hold", "on-hold", "onhold", "hold":
		return BucketOnHold, true
	case "upcoming", "next":
		return BucketUpcoming, true
	case "completed", "done":
		return BucketCompleted, true
	}
	return "", false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
