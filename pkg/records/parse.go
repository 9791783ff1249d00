package records

import (
	"strconv"
	"strings"

	"github.com/agentstation/gamelist/pkg/constants"
	"github.com/agentstation/gamelist/pkg/logging"
)

// Parse turns one raw spreadsheet row into a Record. Fields are positional;
// a row shorter than a field's index yields that field's default, so Parse is
// total over any input length. row is the 1-based sheet row number.
//
// A row with a blank title is not a valid record; callers filter it first
// (ParseSheet does).
func Parse(cells []string, row int) Record {
	c := rowCells(cells)

	r := Record{
		Row:              row,
		Title:            c.str(constants.ColumnTitle),
		StreamerSelected: parseBool(c.str(constants.ColumnStreamerSelected)),
		Votes:            c.integer(constants.ColumnVotes),
		DateSuggested:    ParseDate(constants.SentinelDateSuggested),
		Attribution:      c.optional(constants.ColumnAttribution),
		Provider:         c.optional(constants.ColumnProvider),
		Notes:            c.optional(constants.ColumnNotes),
		Started:          c.date(constants.ColumnStarted),
		Completed:        c.date(constants.ColumnCompleted),
		CatalogID:        c.optional(constants.ColumnCatalogID),
		OverrideID:       c.present(constants.ColumnOverrideID),
		Cover:            c.str(constants.ColumnCover),
		Description:      c.str(constants.ColumnDescription),
		OfficialURL:      c.str(constants.ColumnOfficialURL),
		OnHold:           c.boolean(constants.ColumnOnHold),
	}

	if d := c.date(constants.ColumnDateSuggested); d != nil {
		r.DateSuggested = *d
	}

	return r
}

// ParseSheet parses a full sheet snapshot. The first row is the header and is
// discarded; rows with a blank title are skipped as blank lines.
func ParseSheet(values [][]string) []Record {
	if len(values) <= 1 {
		return nil
	}

	out := make([]Record, 0, len(values)-1)
	for i, cells := range values[1:] {
		row := i + 2 // header is row 1
		if strings.TrimSpace(rowCells(cells).str(constants.ColumnTitle)) == "" {
			logging.Debug().Int("row", row).Msg("Skipping row without title")
			continue
		}
		out = append(out, Parse(cells, row))
	}
	return out
}

// rowCells provides bounds-checked access to positional cells.
type rowCells []string

func (c rowCells) str(i int) string {
	if i >= len(c) {
		return ""
	}
	return c[i]
}

func (c rowCells) optional(i int) *string {
	v := strings.TrimSpace(c.str(i))
	if v == "" {
		return nil
	}
	return &v
}

// present is like optional but keeps a blank cell that exists in the row as
// "". Only a row too short to reach i yields nil.
func (c rowCells) present(i int) *string {
	if i >= len(c) {
		return nil
	}
	v := strings.TrimSpace(c[i])
	return &v
}

func (c rowCells) integer(i int) *int {
	v := strings.TrimSpace(c.str(i))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

func (c rowCells) date(i int) *Date {
	v := strings.TrimSpace(c.str(i))
	if v == "" {
		return nil
	}
	d := ParseDate(v)
	return &d
}

func (c rowCells) boolean(i int) *bool {
	v := strings.TrimSpace(c.str(i))
	if v == "" {
		return nil
	}
	b := parseBool(v)
	return &b
}

// parseBool reads checkbox and free-text cells. Explicit negatives and blanks
// are false; any other text, e.g. "waiting for sequel", counts as true.
func parseBool(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "", "false", "no", "n", "0", "off":
		return false
	default:
		return true
	}
}

// SetCell overwrites the field stored in column with the raw cell value, as if
// the row had been re-read after the write. Unknown columns are ignored.
func (r *Record) SetCell(column int, value string) {
	c := rowCells{value}
	switch column {
	case constants.ColumnTitle:
		r.Title = value
	case constants.ColumnStreamerSelected:
		r.StreamerSelected = parseBool(value)
	case constants.ColumnVotes:
		r.Votes = c.integer(0)
	case constants.ColumnDateSuggested:
		r.DateSuggested = ParseDate(constants.SentinelDateSuggested)
		if d := c.date(0); d != nil {
			r.DateSuggested = *d
		}
	case constants.ColumnAttribution:
		r.Attribution = c.optional(0)
	case constants.ColumnProvider:
		r.Provider = c.optional(0)
	case constants.ColumnNotes:
		r.Notes = c.optional(0)
	case constants.ColumnStarted:
		r.Started = c.date(0)
	case constants.ColumnCompleted:
		r.Completed = c.date(0)
	case constants.ColumnCatalogID:
		r.CatalogID = c.optional(0)
	case constants.ColumnOverrideID:
		r.OverrideID = c.present(0)
	case constants.ColumnCover:
		r.Cover = value
	case constants.ColumnDescription:
		r.Description = value
	case constants.ColumnOfficialURL:
		r.OfficialURL = value
	case constants.ColumnOnHold:
		r.OnHold = c.boolean(0)
	}
}
