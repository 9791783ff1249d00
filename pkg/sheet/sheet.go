// Package sheet defines the spreadsheet collaborator contracts used by the
// reconciliation pipeline and helpers for A1-notation ranges.
package sheet

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/agentstation/gamelist/pkg/errors"
)

// Update is a single range-addressed write. Values is a grid of rows of cells
// starting at the top-left cell named by Range.
type Update struct {
	Range  string     `json:"range" yaml:"range"`
	Values [][]string `json:"values" yaml:"values"`
}

// Reader fetches a snapshot of a sheet range. The first row is the header.
type Reader interface {
	FetchRows(ctx context.Context, rangeSpec string) ([][]string, error)
}

// Writer commits a batch of range updates.
type Writer interface {
	BatchWrite(ctx context.Context, updates []Update) error
}

// Spreadsheet is both a Reader and a Writer.
type Spreadsheet interface {
	Reader
	Writer
}

// ColumnLetter converts a 0-based column index to its letter name:
// 0 -> "A", 25 -> "Z", 26 -> "AA".
func ColumnLetter(index int) string {
	if index < 0 {
		return ""
	}
	var b []byte
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		b = append([]byte{byte('A' + (n-1)%26)}, b...)
	}
	return string(b)
}

// ColumnIndex converts a column letter name back to its 0-based index.
func ColumnIndex(letters string) (int, error) {
	if letters == "" {
		return 0, errors.NewValidationError("column", letters, "empty column")
	}
	n := 0
	for _, r := range strings.ToUpper(letters) {
		if r < 'A' || r > 'Z' {
			return 0, errors.NewValidationError("column", letters, "column must be letters A-Z")
		}
		n = n*26 + int(r-'A'+1)
	}
	return n - 1, nil
}

// A1 builds a single-cell range such as "Games!J12". An empty sheet name
// yields a bare cell reference.
func A1(sheetName string, column int, row int) string {
	return Range(sheetName, ColumnLetter(column)+strconv.Itoa(row))
}

// QuoteSheet quotes a sheet name for use in a range when it holds anything
// but letters, digits and underscores, or starts with a digit:
// My Games -> 'My Games', Bob's -> 'Bob''s'.
func QuoteSheet(name string) string {
	plain := name != ""
	for i, r := range name {
		if !(unicode.IsLetter(r) || r == '_' || (i > 0 && unicode.IsDigit(r))) {
			plain = false
			break
		}
	}
	if plain {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func unquoteSheet(name string) string {
	if len(name) >= 2 && name[0] == '\'' && name[len(name)-1] == '\'' {
		return strings.ReplaceAll(name[1:len(name)-1], "''", "'")
	}
	return name
}

// Cell is a parsed A1 cell reference.
type Cell struct {
	Sheet  string
	Column int // 0-based
	Row    int // 1-based
}

// ParseA1 parses the top-left cell of a range such as "Games!J12" or
// "Games!J12:N12". A quoted sheet name ('My Games'!A1) is unquoted.
func ParseA1(rng string) (Cell, error) {
	var c Cell
	ref := rng
	if i := strings.LastIndex(rng, "!"); i >= 0 {
		c.Sheet = unquoteSheet(rng[:i])
		ref = rng[i+1:]
	}
	if i := strings.Index(ref, ":"); i >= 0 {
		ref = ref[:i]
	}

	split := strings.IndexFunc(ref, unicode.IsDigit)
	if split <= 0 {
		return c, errors.NewParseError("a1", "", fmt.Sprintf("invalid cell reference %q", rng), nil)
	}

	col, err := ColumnIndex(ref[:split])
	if err != nil {
		return c, errors.NewParseError("a1", "", fmt.Sprintf("invalid column in %q", rng), err)
	}
	row, err := strconv.Atoi(ref[split:])
	if err != nil || row < 1 {
		return c, errors.NewParseError("a1", "", fmt.Sprintf("invalid row in %q", rng), err)
	}

	c.Column = col
	c.Row = row
	return c, nil
}

// Range joins a sheet name and a column range such as "A1:O" into "Games!A1:O".
// The sheet name is quoted when needed.
func Range(sheetName, cells string) string {
	if sheetName == "" {
		return cells
	}
	return QuoteSheet(sheetName) + "!" + cells
}
