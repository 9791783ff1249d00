package reconciler

import (
	"github.com/agentstation/gamelist/pkg/records"
	"github.com/agentstation/gamelist/pkg/sheet"
)

// Apply returns a copy of recs with updates written into it, as the sheet
// would read after a commit. Updates addressing rows not in recs are skipped.
// recs itself is not modified.
func Apply(recs []records.Record, updates []sheet.Update) ([]records.Record, error) {
	out := make([]records.Record, len(recs))
	copy(out, recs)

	byRow := make(map[int]int, len(out))
	for i, rec := range out {
		byRow[rec.Row] = i
	}

	for _, u := range updates {
		cell, err := sheet.ParseA1(u.Range)
		if err != nil {
			return nil, err
		}
		for dr, values := range u.Values {
			i, ok := byRow[cell.Row+dr]
			if !ok {
				continue
			}
			for dc, v := range values {
				out[i].SetCell(cell.Column+dc, v)
			}
		}
	}

	return out, nil
}

// Verify returns the records that are still not reconciled. After a commit
// and re-read it should be empty.
func Verify(recs []records.Record) []records.Record {
	var pending []records.Record
	for _, rec := range recs {
		if !rec.Reconciled() {
			pending = append(pending, rec)
		}
	}
	return pending
}
