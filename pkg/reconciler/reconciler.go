// Package reconciler decides which spreadsheet rows need catalog metadata,
// resolves each one against a catalog, and stages the minimal set of range
// writes that records the result.
package reconciler

import (
	"context"
	"strings"

	"github.com/agentstation/gamelist/pkg/catalog"
	"github.com/agentstation/gamelist/pkg/constants"
	"github.com/agentstation/gamelist/pkg/errors"
	"github.com/agentstation/gamelist/pkg/logging"
	"github.com/agentstation/gamelist/pkg/records"
	"github.com/agentstation/gamelist/pkg/sheet"
)

// Reconciler links records to catalog entries.
type Reconciler struct {
	client catalog.Client
	opts   *options
}

// New creates a Reconciler that resolves rows through client.
func New(client catalog.Client, opts ...Option) (*Reconciler, error) {
	if client == nil {
		return nil, &errors.ValidationError{
			Field:   "client",
			Message: "cannot be nil",
		}
	}
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Reconciler{client: client, opts: o}, nil
}

// Reconcile walks records in row order and stages updates for every row that
// is not already reconciled. Rows are processed one at a time.
//
// A catalog error aborts the pass. The returned Result still carries the
// updates staged for earlier rows so the caller can commit them.
func (r *Reconciler) Reconcile(ctx context.Context, recs []records.Record) (*Result, error) {
	result := &Result{
		Metadata: ResultMetadata{StartTime: r.opts.now()},
	}
	defer func() {
		result.Metadata.EndTime = r.opts.now()
		result.Metadata.Duration = result.Metadata.EndTime.Sub(result.Metadata.StartTime)
	}()

	logger := logging.Ctx(ctx)
	logger.Info().Int("records", len(recs)).Msg("Reconciling records against catalog")

	for _, rec := range recs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		// A mismatched override invalidates the stored id.
		if rec.Overridden() {
			rec.CatalogID = nil
		}

		if rec.Reconciled() {
			result.Unchanged = append(result.Unchanged, rec)
			continue
		}

		rowCtx := logging.WithRow(ctx, rec.Row, rec.Title)
		entry, how, err := r.resolve(rowCtx, rec, result)
		if err != nil {
			logging.Ctx(rowCtx).Error().Err(err).Msg("Catalog lookup failed, aborting reconciliation")
			return result, err
		}

		logging.Ctx(rowCtx).Info().
			Str("catalog_id", entry.ID).
			Str("resolved_title", entry.Title).
			Str("how", string(how)).
			Msg("Resolved game")

		result.Resolved = append(result.Resolved, Resolution{
			Row:           rec.Row,
			PreviousTitle: rec.Title,
			Entry:         entry,
			How:           how,
		})
		result.Updates = append(result.Updates, r.updatesFor(rec.Row, entry)...)
	}

	logger.Info().
		Int("resolved", len(result.Resolved)).
		Int("unchanged", len(result.Unchanged)).
		Int("updates", len(result.Updates)).
		Int("lookups", result.Lookups).
		Msg("Reconciliation complete")

	return result, nil
}

// resolve runs the resolution chain: override id, then title, then the
// placeholder entry. It never returns an unresolved outcome.
func (r *Reconciler) resolve(ctx context.Context, rec records.Record, result *Result) (catalog.Entry, Method, error) {
	if rec.OverrideID != nil && *rec.OverrideID != "" {
		result.Lookups++
		found, err := r.client.LookupByID(ctx, *rec.OverrideID)
		if err != nil {
			return catalog.Entry{}, "", err
		}
		if found != nil {
			return *found, MethodOverride, nil
		}
		logging.Ctx(ctx).Debug().Str("override_id", *rec.OverrideID).Msg("Override id not found, falling back to title")
	}

	result.Lookups++
	candidates, err := r.client.LookupByTitle(ctx, rec.Title)
	if err != nil {
		return catalog.Entry{}, "", err
	}

	res, how := pick(rec.Title, candidates)
	if e, ok := res.Entry(); ok {
		if how == MethodFirst && len(candidates) > 1 {
			logging.Ctx(ctx).Debug().
				Int("candidates", len(candidates)).
				Str("picked", e.Title).
				Msg("No exact title match, using first candidate")
		}
		return e, how, nil
	}

	logging.Ctx(ctx).Warn().Msg("No catalog match, writing placeholder")
	return catalog.Placeholder(rec.Title), MethodPlaceholder, nil
}

// pick chooses among title candidates: the first case-insensitive exact match,
// else the first candidate, else unresolved.
func pick(title string, candidates []catalog.Entry) (catalog.Resolution, Method) {
	for _, c := range candidates {
		if strings.EqualFold(c.Title, title) {
			return catalog.Resolved(c), MethodExact
		}
	}
	if len(candidates) > 0 {
		return catalog.Resolved(candidates[0]), MethodFirst
	}
	return catalog.Unresolved(), ""
}

// updatesFor stages the title correction and the metadata bundle for a row.
// The id is written to both the catalog id and override id columns.
func (r *Reconciler) updatesFor(row int, e catalog.Entry) []sheet.Update {
	return []sheet.Update{
		{
			Range:  sheet.A1(r.opts.sheetName, constants.ColumnTitle, row),
			Values: [][]string{{e.Title}},
		},
		{
			Range:  sheet.A1(r.opts.sheetName, constants.ColumnCatalogID, row),
			Values: [][]string{{e.ID, e.ID, e.Cover(), e.Description, e.OfficialURL}},
		},
	}
}
