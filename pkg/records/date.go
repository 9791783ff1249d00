package records

import (
	"strings"
	"time"
)

// dateLayouts are the cell formats the sheet has been seen to hold.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"1/2/2006",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// Date is a spreadsheet date cell. Raw keeps the cell text verbatim so it can be
// rendered back unchanged; Time is set when Raw matched a known layout.
type Date struct {
	Raw  string    `json:"raw" yaml:"raw"`
	Time time.Time `json:"-" yaml:"-"`
}

// ParseDate parses a cell into a Date. Unknown formats keep only Raw.
func ParseDate(cell string) Date {
	raw := strings.TrimSpace(cell)
	d := Date{Raw: raw}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t
			break
		}
	}
	return d
}

// Valid reports whether the cell text parsed as a date.
func (d Date) Valid() bool {
	return !d.Time.IsZero()
}

// Compare orders two dates. Parsed dates compare by time and sort before
// unparsed ones; unparsed dates compare by raw cell text.
func (d Date) Compare(other Date) int {
	switch {
	case d.Valid() && other.Valid():
		return d.Time.Compare(other.Time)
	case d.Valid():
		return -1
	case other.Valid():
		return 1
	default:
		return strings.Compare(d.Raw, other.Raw)
	}
}

// Before reports whether d sorts before other.
func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

// String returns the cell text.
func (d Date) String() string {
	return d.Raw
}

// MarshalText renders the date as its cell text.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.Raw), nil
}
