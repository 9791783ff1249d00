// Package gamelist keeps a game-list spreadsheet in step with the MobyGames
// catalog and renders the stream schedule from it.
//
// A Client reads the sheet, reconciles unlinked rows against the catalog,
// writes the results back, and classifies the list into current, on hold,
// upcoming and completed games:
//
//	gl, err := gamelist.New(sheet, catalog, gamelist.WithOutputDir("public"))
//	if err != nil {
//		return err
//	}
//	result, err := gl.Sync(ctx)
package gamelist

import (
	"context"
	"fmt"

	"github.com/agentstation/gamelist/internal/images"
	"github.com/agentstation/gamelist/pkg/catalog"
	"github.com/agentstation/gamelist/pkg/classifier"
	"github.com/agentstation/gamelist/pkg/errors"
	"github.com/agentstation/gamelist/pkg/records"
	"github.com/agentstation/gamelist/pkg/reconciler"
	"github.com/agentstation/gamelist/pkg/report"
	"github.com/agentstation/gamelist/pkg/sheet"
)

// Client manages one games spreadsheet.
type Client interface {
	// Sync runs the full pipeline: reconcile, commit, classify and report.
	Sync(ctx context.Context, opts ...SyncOption) (*Result, error)

	// Records reads and parses the sheet without changing it.
	Records(ctx context.Context) ([]records.Record, error)

	// Classify reads the sheet and buckets its records.
	Classify(ctx context.Context) (classifier.Buckets, error)

	// OnGameResolved registers a callback for each row linked to the catalog
	OnGameResolved(GameResolvedHook)

	// OnRunComplete registers a callback for the end of every Sync
	OnRunComplete(RunCompleteHook)
}

// client is the internal implementation of the Client interface
type client struct {
	sheet      sheet.Spreadsheet
	reconciler *reconciler.Reconciler
	emitter    *report.Emitter
	images     *images.Cache
	config     *config
	hooks      *hooks
}

// New creates a Client reading and writing sheet and resolving rows through
// cat. Wrap cat in catalog.RateLimited before passing it in when it talks to
// the real API.
func New(s sheet.Spreadsheet, cat catalog.Client, opts ...Option) (Client, error) {
	if s == nil {
		return nil, &errors.ValidationError{Field: "sheet", Message: "cannot be nil"}
	}
	if cat == nil {
		return nil, &errors.ValidationError{Field: "catalog", Message: "cannot be nil"}
	}

	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	rec, err := reconciler.New(cat,
		reconciler.WithSheetName(cfg.sheetName),
		reconciler.WithClock(cfg.now),
	)
	if err != nil {
		return nil, fmt.Errorf("creating reconciler: %w", err)
	}

	c := &client{
		sheet:      s,
		reconciler: rec,
		emitter:    report.New(cfg.outputDir, report.WithTitle(cfg.title)),
		images:     cfg.images,
		config:     cfg,
		hooks:      newHooks(),
	}
	if c.images == nil {
		var imageOpts []images.Option
		if cfg.metrics != nil {
			imageOpts = append(imageOpts, images.WithObserver(cfg.metrics.RecordImage))
		}
		c.images = images.New(cfg.imagesDir(), imageOpts...)
	}

	return c, nil
}

// Records reads and parses the sheet without changing it.
func (c *client) Records(ctx context.Context) ([]records.Record, error) {
	rows, err := c.sheet.FetchRows(ctx, c.config.rangeSpec())
	if err != nil {
		return nil, err
	}
	return records.ParseSheet(rows), nil
}

// Classify reads the sheet and buckets its records.
func (c *client) Classify(ctx context.Context) (classifier.Buckets, error) {
	recs, err := c.Records(ctx)
	if err != nil {
		return classifier.Buckets{}, err
	}
	return classifier.Classify(recs), nil
}

// OnGameResolved registers a callback for each row linked to the catalog
func (c *client) OnGameResolved(fn GameResolvedHook) {
	c.hooks.OnGameResolved(fn)
}

// OnRunComplete registers a callback for the end of every Sync
func (c *client) OnRunComplete(fn RunCompleteHook) {
	c.hooks.OnRunComplete(fn)
}
