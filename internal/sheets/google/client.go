// Package google implements sheet.Spreadsheet on the Google Sheets v4 API.
package google

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/agentstation/gamelist/pkg/errors"
	"github.com/agentstation/gamelist/pkg/logging"
	"github.com/agentstation/gamelist/pkg/sheet"
)

// valueInputOption stores values verbatim; the sheet never parses them as
// formulas or dates.
const valueInputOption = "RAW"

// Client reads and writes one spreadsheet.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
}

type config struct {
	credentialsFile string
	clientOptions   []option.ClientOption
}

// Option configures a Client.
type Option func(*config)

// WithCredentialsFile authenticates with a service account or OAuth JSON
// file. Without it, application default credentials are used.
func WithCredentialsFile(path string) Option {
	return func(c *config) {
		c.credentialsFile = path
	}
}

// WithClientOptions passes raw API client options through.
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(c *config) {
		c.clientOptions = append(c.clientOptions, opts...)
	}
}

// New connects to the Sheets API for spreadsheetID.
func New(ctx context.Context, spreadsheetID string, opts ...Option) (*Client, error) {
	if spreadsheetID == "" {
		return nil, errors.NewConfigError("sheets", "SPREADSHEET_ID is not set", errors.ErrInvalidInput)
	}

	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	clientOpts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if cfg.credentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.credentialsFile))
	}
	clientOpts = append(clientOpts, cfg.clientOptions...)

	svc, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, errors.NewConfigError("sheets", "failed to create Sheets client", err)
	}

	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// FetchRows implements sheet.Reader.
func (c *Client) FetchRows(ctx context.Context, rangeSpec string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rangeSpec).Context(ctx).Do()
	if err != nil {
		return nil, errors.WrapSpreadsheet("read", rangeSpec, err)
	}

	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = cellString(v)
		}
		rows[i] = cells
	}

	logging.Ctx(ctx).Debug().
		Str("range", rangeSpec).
		Int("rows", len(rows)).
		Msg("Fetched spreadsheet values")
	return rows, nil
}

// BatchWrite implements sheet.Writer. All updates go in one request.
func (c *Client) BatchWrite(ctx context.Context, updates []sheet.Update) error {
	if len(updates) == 0 {
		return nil
	}

	data := make([]*sheets.ValueRange, 0, len(updates))
	for _, u := range updates {
		values := make([][]any, len(u.Values))
		for i, row := range u.Values {
			cells := make([]any, len(row))
			for j, v := range row {
				cells[j] = v
			}
			values[i] = cells
		}
		data = append(data, &sheets.ValueRange{Range: u.Range, Values: values})
	}

	req := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: valueInputOption,
		Data:             data,
	}
	resp, err := c.svc.Spreadsheets.Values.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return errors.WrapSpreadsheet("write", fmt.Sprintf("%d ranges", len(updates)), err)
	}

	logging.Ctx(ctx).Info().
		Int("ranges", len(updates)).
		Int64("cells", resp.TotalUpdatedCells).
		Msg("Committed spreadsheet updates")
	return nil
}

// cellString renders a cell value returned by the API. Values arrive as
// formatted strings by default, but numbers and booleans are handled too.
func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprint(t)
	}
}
