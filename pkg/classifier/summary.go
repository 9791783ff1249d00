package classifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/gamelist/pkg/constants"
	"github.com/agentstation/gamelist/pkg/records"
)

// Summary renders the short "next games" line shown on stream overlays:
//
//	Next 3 games: Loom (5 votes) | Myst (1 vote) | Zork. Last updated Oct 19, 2026 at 14:05:09
//
// now is formatted in UTC.
func (b Buckets) Summary(n int, now time.Time) string {
	top := b.TopUpcoming(n)

	parts := make([]string, 0, len(top))
	for _, rec := range top {
		parts = append(parts, rec.Title+VoteSuffix(rec))
	}

	return fmt.Sprintf("Next %d games: %s. Last updated %s",
		len(top), strings.Join(parts, " | "), Stamp(now))
}

// VoteSuffix renders " (N votes)" with singular for one vote, or nothing when
// votes are absent.
func VoteSuffix(rec records.Record) string {
	if rec.Votes == nil {
		return ""
	}
	return " (" + Votes(*rec.Votes) + ")"
}

// Votes pluralizes a vote count.
func Votes(n int) string {
	if n == 1 {
		return "1 vote"
	}
	return fmt.Sprintf("%d votes", n)
}

// Stamp formats a last-updated timestamp in UTC.
func Stamp(t time.Time) string {
	return t.UTC().Format(constants.TimeFormatStamp)
}
