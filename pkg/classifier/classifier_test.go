package classifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/gamelist/pkg/records"
)

// game builds a record from the handful of cells classification reads.
func game(title, votes, suggested, started, completed, onHold string) records.Record {
	cells := make([]string, 15)
	cells[0] = title
	cells[2] = votes
	cells[3] = suggested
	cells[7] = started
	cells[8] = completed
	cells[14] = onHold
	return records.Parse(cells, 0)
}

func titles(recs []records.Record) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Title)
	}
	return out
}

func TestPreSortByVoteMagnitudeThenDate(t *testing.T) {
	recs := []records.Record{
		game("A", "3", "2024-01-01", "", "", ""),
		game("B", "5", "2024-02-01", "", "", ""),
	}

	b := Classify(recs)

	assert.Equal(t, []string{"B", "A"}, titles(b.Upcoming))
	assert.Equal(t, []string{"A", "B"}, titles(recs), "input is not reordered")
}

func TestNegativeVotesRankByMagnitude(t *testing.T) {
	b := Classify([]records.Record{
		game("Liked", "5", "2024-01-01", "", "", ""),
		game("Disliked", "-8", "2024-01-01", "", "", ""),
		game("Unranked", "", "2024-01-01", "", "", ""),
	})

	assert.Equal(t, []string{"Disliked", "Liked", "Unranked"}, titles(b.Upcoming))
}

func TestTiesBrokenByDateThenInputOrder(t *testing.T) {
	b := Classify([]records.Record{
		game("Late", "2", "2024-06-01", "", "", ""),
		game("First tie", "2", "2024-01-01", "", "", ""),
		game("Second tie", "2", "2024-01-01", "", "", ""),
		game("No date", "2", "", "", "", ""),
	})

	assert.Equal(t, []string{"No date", "First tie", "Second tie", "Late"}, titles(b.Upcoming),
		"missing dates use the 2000-01-01 sentinel and sort first")
}

func TestBucketPriority(t *testing.T) {
	tests := []struct {
		name string
		rec  records.Record
		want Bucket
	}{
		{name: "nothing set", rec: game("x", "", "", "", "", ""), want: BucketUpcoming},
		{name: "started", rec: game("x", "", "", "2024-01-01", "", ""), want: BucketCurrent},
		{name: "started and completed", rec: game("x", "", "", "2024-01-01", "2024-02-01", ""), want: BucketCompleted},
		{name: "completed only", rec: game("x", "", "", "", "2024-02-01", ""), want: BucketCompleted},
		{name: "on hold beats started", rec: game("x", "", "", "2024-01-01", "", "TRUE"), want: BucketOnHold},
		{name: "on hold beats completed", rec: game("x", "", "", "2024-01-01", "2024-02-01", "waiting"), want: BucketOnHold},
		{name: "explicit false on hold", rec: game("x", "", "", "", "", "FALSE"), want: BucketUpcoming},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Of(tt.rec))

			b := Classify([]records.Record{tt.rec})
			assert.Len(t, b.Get(tt.want), 1)
			assert.Equal(t, 1, b.Len(), "every record lands in exactly one bucket")
		})
	}
}

func TestCurrentAscendingCompletedDescending(t *testing.T) {
	b := Classify([]records.Record{
		game("C2", "9", "", "2024-03-01", "", ""),
		game("C1", "1", "", "2024-01-15", "", ""),
		game("D-old", "9", "", "2023-01-01", "2023-02-01", ""),
		game("D-new", "1", "", "2023-01-01", "2024-05-01", ""),
		game("D-tie-a", "5", "", "", "2023-06-01", ""),
		game("D-tie-b", "4", "", "", "2023-06-01", ""),
	})

	assert.Equal(t, []string{"C1", "C2"}, titles(b.Current))
	assert.Equal(t, []string{"D-new", "D-tie-a", "D-tie-b", "D-old"}, titles(b.Completed),
		"completed ties keep pre-sort order")
}

func TestOnHoldKeepsPreSortOrder(t *testing.T) {
	b := Classify([]records.Record{
		game("Low", "1", "", "", "", "yes"),
		game("High", "10", "", "2024-01-01", "", "yes"),
	})

	assert.Equal(t, []string{"High", "Low"}, titles(b.OnHold))
	assert.Empty(t, b.Current)
}

func TestTopUpcoming(t *testing.T) {
	var recs []records.Record
	for i, title := range []string{"A", "B", "C", "D", "E"} {
		recs = append(recs, game(title, string(rune('9'-i)), "", "", "", ""))
	}
	b := Classify(recs)

	assert.Equal(t, []string{"A", "B", "C"}, titles(b.TopUpcoming(3)))
	assert.Len(t, b.TopUpcoming(10), 5)
	assert.Empty(t, b.TopUpcoming(0))
	assert.Empty(t, b.TopUpcoming(-1))
	assert.Empty(t, Buckets{}.TopUpcoming(3))
}

func TestTopUpcomingAppendLeavesBucketIntact(t *testing.T) {
	b := Classify([]records.Record{
		game("A", "3", "", "", "", ""),
		game("B", "2", "", "", "", ""),
		game("C", "1", "", "", "", ""),
	})

	top := b.TopUpcoming(2)
	top = append(top, game("X", "", "", "", "", ""))

	assert.Equal(t, []string{"A", "B", "X"}, titles(top))
	assert.Equal(t, []string{"A", "B", "C"}, titles(b.Upcoming))
}

func TestCounts(t *testing.T) {
	b := Classify([]records.Record{
		game("u", "", "", "", "", ""),
		game("c", "", "", "2024-01-01", "", ""),
		game("d", "", "", "", "2024-01-01", ""),
		game("h", "", "", "", "", "TRUE"),
		game("u2", "", "", "", "", ""),
	})

	assert.Equal(t, map[Bucket]int{
		BucketCurrent:   1,
		BucketOnHold:    1,
		BucketUpcoming:  2,
		BucketCompleted: 1,
	}, b.Counts())
}

func TestSummary(t *testing.T) {
	b := Classify([]records.Record{
		game("Loom", "5", "", "", "", ""),
		game("Myst", "1", "", "", "", ""),
		game("Zork", "", "", "", "", ""),
		game("Done", "99", "", "", "2024-01-01", ""),
	})
	now := time.Date(2026, 10, 19, 14, 5, 9, 0, time.UTC)

	assert.Equal(t,
		"Next 3 games: Loom (5 votes) | Myst (1 vote) | Zork. Last updated Oct 19, 2026 at 14:05:09",
		b.Summary(5, now))
	assert.Equal(t, "Next 1 games: Loom (5 votes). Last updated Oct 19, 2026 at 14:05:09", b.Summary(1, now))

	empty := Buckets{}.Summary(5, now)
	require.Contains(t, empty, "Next 0 games: .")
}

func TestParseBucket(t *testing.T) {
	for _, name := range []string{"current", "on-hold", "hold", "upcoming", "done"} {
		_, ok := ParseBucket(name)
		assert.True(t, ok, name)
	}
	_, ok := ParseBucket("someday")
	assert.False(t, ok)
}
