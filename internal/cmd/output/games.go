package output

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/gamelist/pkg/classifier"
	"github.com/agentstation/gamelist/pkg/records"
	"github.com/agentstation/gamelist/pkg/reconciler"
)

var titleCaser = cases.Title(language.English)

// BucketLabel renders a bucket name for humans, e.g. "on_hold" → "On Hold".
func BucketLabel(b classifier.Bucket) string {
	return titleCaser.String(strings.ReplaceAll(string(b), "_", " "))
}

// Game is the structured form of one listed game.
type Game struct {
	Row       int    `json:"row" yaml:"row"`
	Bucket    string `json:"bucket" yaml:"bucket"`
	Title     string `json:"title" yaml:"title"`
	Votes     *int   `json:"votes,omitempty" yaml:"votes,omitempty"`
	Suggested string `json:"suggested,omitempty" yaml:"suggested,omitempty"`
	Started   string `json:"started,omitempty" yaml:"started,omitempty"`
	Completed string `json:"completed,omitempty" yaml:"completed,omitempty"`
	CatalogID string `json:"catalog_id,omitempty" yaml:"catalog_id,omitempty"`
	URL       string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Games flattens buckets into display order, restricted to only when it is
// non-empty.
func Games(b classifier.Buckets, only ...classifier.Bucket) []Game {
	want := classifier.AllBuckets
	if len(only) > 0 {
		want = only
	}

	var out []Game
	for _, bucket := range want {
		for _, r := range b.Get(bucket) {
			out = append(out, toGame(bucket, r))
		}
	}
	return out
}

func toGame(bucket classifier.Bucket, r records.Record) Game {
	g := Game{
		Row:       r.Row,
		Bucket:    string(bucket),
		Title:     r.DisplayTitle(),
		Votes:     r.Votes,
		URL:       r.OfficialURL,
		Suggested: r.DateSuggested.String(),
	}
	if r.Started != nil {
		g.Started = r.Started.String()
	}
	if r.Completed != nil {
		g.Completed = r.Completed.String()
	}
	if r.CatalogID != nil {
		g.CatalogID = *r.CatalogID
	}
	return g
}

// GamesToTableData converts games to table format. wide adds the catalog
// columns.
func GamesToTableData(games []Game, wide bool) Data {
	headers := []string{"Bucket", "Title", "Votes", "Suggested", "Started", "Completed"}
	align := []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft, AlignLeft, AlignLeft}
	if wide {
		headers = append(headers, "Row", "Catalog ID", "URL")
		align = append(align, AlignRight, AlignLeft, AlignLeft)
	}

	rows := make([][]string, 0, len(games))
	for _, g := range games {
		row := []string{
			BucketLabel(classifier.Bucket(g.Bucket)),
			g.Title,
			dash(votes(g.Votes)),
			dash(g.Suggested),
			dash(g.Started),
			dash(g.Completed),
		}
		if wide {
			row = append(row, strconv.Itoa(g.Row), dash(g.CatalogID), dash(g.URL))
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// ResolutionsToTableData converts reconciler resolutions to table format.
func ResolutionsToTableData(resolved []reconciler.Resolution) Data {
	rows := make([][]string, 0, len(resolved))
	for _, r := range resolved {
		rows = append(rows, []string{
			strconv.Itoa(r.Row),
			r.PreviousTitle,
			r.Entry.Title,
			r.Entry.ID,
			string(r.How),
		})
	}
	return Data{
		Headers:         []string{"Row", "Sheet Title", "Catalog Title", "Catalog ID", "How"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignLeft},
	}
}

// CountsToTableData renders bucket sizes in bucket order.
func CountsToTableData(b classifier.Buckets) Data {
	counts := b.Counts()
	rows := make([][]string, 0, len(classifier.AllBuckets))
	for _, bucket := range classifier.AllBuckets {
		rows = append(rows, []string{BucketLabel(bucket), strconv.Itoa(counts[bucket])})
	}
	return Data{
		Headers:         []string{"Bucket", "Games"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

func votes(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(*v)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
