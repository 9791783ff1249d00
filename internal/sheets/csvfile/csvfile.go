// Package csvfile implements sheet.Spreadsheet over a local CSV export of the
// games sheet, for offline runs and tests against real data.
package csvfile

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"sync"

	"github.com/dchest/safefile"

	"github.com/agentstation/gamelist/pkg/constants"
	"github.com/agentstation/gamelist/pkg/errors"
	"github.com/agentstation/gamelist/pkg/logging"
	"github.com/agentstation/gamelist/pkg/sheet"
)

// File is a CSV file treated as a single sheet. Row 1 of the file is row 1
// of the sheet. Sheet names in ranges are ignored.
type File struct {
	path string
	mu   sync.Mutex
}

// Open returns a File for path. The file must exist.
func Open(path string) (*File, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("spreadsheet file", path)
		}
		return nil, errors.WrapIO("stat", path, err)
	}
	return &File{path: path}, nil
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// FetchRows implements sheet.Reader. The whole file is returned; trailing
// empty cells are trimmed the way the Sheets API omits them.
func (f *File) FetchRows(ctx context.Context, rangeSpec string) ([][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rows, err := f.read()
	if err != nil {
		return nil, errors.WrapSpreadsheet("read", rangeSpec, err)
	}
	for i := range rows {
		rows[i] = trimTrailing(rows[i])
	}

	logging.Ctx(ctx).Debug().Str("file", f.path).Int("rows", len(rows)).Msg("Read CSV sheet")
	return rows, nil
}

// BatchWrite implements sheet.Writer. Updates are applied in order and the
// file is replaced atomically, so either every update lands or none does.
func (f *File) BatchWrite(ctx context.Context, updates []sheet.Update) error {
	if len(updates) == 0 {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	rows, err := f.read()
	if err != nil {
		return errors.WrapSpreadsheet("write", f.path, err)
	}

	for _, u := range updates {
		cell, err := sheet.ParseA1(u.Range)
		if err != nil {
			return errors.WrapSpreadsheet("write", u.Range, err)
		}
		rows = apply(rows, cell, u.Values)
	}

	if err := f.write(rows); err != nil {
		return errors.WrapSpreadsheet("write", f.path, err)
	}

	logging.Ctx(ctx).Info().Str("file", f.path).Int("ranges", len(updates)).Msg("Committed CSV updates")
	return nil
}

func (f *File) read() ([][]string, error) {
	fh, err := os.Open(f.path)
	if err != nil {
		return nil, errors.WrapIO("open", f.path, err)
	}
	defer func() { _ = fh.Close() }()

	r := csv.NewReader(fh)
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse("csv", f.path, err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func (f *File) write(rows [][]string) error {
	out, err := safefile.Create(f.path, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", f.path, err)
	}
	defer func() { _ = out.Close() }()

	w := csv.NewWriter(out)
	if err := w.WriteAll(rows); err != nil {
		return errors.WrapIO("write", f.path, err)
	}
	if err := out.Commit(); err != nil {
		return errors.WrapIO("commit", f.path, err)
	}
	return nil
}

// apply writes values into rows starting at cell, growing rows and columns
// as needed.
func apply(rows [][]string, cell sheet.Cell, values [][]string) [][]string {
	for dr, vals := range values {
		r := cell.Row - 1 + dr
		for len(rows) <= r {
			rows = append(rows, blankRow(rows))
		}
		for dc, v := range vals {
			c := cell.Column + dc
			for len(rows[r]) <= c {
				rows[r] = append(rows[r], "")
			}
			rows[r][c] = v
		}
	}
	return rows
}

// blankRow is a row of empty cells as wide as the header. encoding/csv skips
// empty lines on read, so a zero-width row would shift every row after it.
func blankRow(rows [][]string) []string {
	width := 2
	if len(rows) > 0 && len(rows[0]) > width {
		width = len(rows[0])
	}
	return make([]string, width)
}

func trimTrailing(row []string) []string {
	n := len(row)
	for n > 0 && row[n-1] == "" {
		n--
	}
	return row[:n]
}
