package gamelist

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/agentstation/gamelist/pkg/classifier"
	"github.com/agentstation/gamelist/pkg/constants"
	"github.com/agentstation/gamelist/pkg/logging"
	"github.com/agentstation/gamelist/pkg/records"
	"github.com/agentstation/gamelist/pkg/reconciler"
	"github.com/agentstation/gamelist/pkg/report"
)

// Sync reconciles the sheet against the catalog, commits the staged updates,
// and renders the schedule from the updated sheet.
//
// A catalog failure stops the run after the updates staged so far have been
// committed; no report is written in that case.
func (c *client) Sync(ctx context.Context, opts ...SyncOption) (*Result, error) {
	// Step 0: Set context
	if ctx == nil {
		ctx = context.Background()
	}

	// Step 1: Parse and validate options
	options := NewSyncOptions(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Setup context with timeout
	var cancel context.CancelFunc
	if options.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
	} else {
		cancel = func() {}
	}
	defer cancel()

	// Step 3: Tag the run
	result := &Result{
		RunID:  uuid.NewString(),
		DryRun: options.DryRun,
	}
	ctx = logging.WithRunID(ctx, result.RunID)
	result.Metadata.StartTime = c.config.now()

	err := c.run(ctx, options, result)

	result.Metadata.EndTime = c.config.now()
	result.Metadata.Duration = result.Metadata.EndTime.Sub(result.Metadata.StartTime)
	c.finish(ctx, options, result, err)

	return result, err
}

func (c *client) run(ctx context.Context, options *SyncOptions, result *Result) error {
	logger := logging.Ctx(ctx)

	// Step 4: Read the sheet
	recs, err := c.Records(ctx)
	if err != nil {
		return err
	}
	logger.Info().Int("records", len(recs)).Str("range", c.config.rangeSpec()).Msg("Read games sheet")

	// Step 5: Reconcile rows against the catalog
	rec, recErr := c.reconciler.Reconcile(logging.WithStage(ctx, "reconcile"), recs)
	result.Reconcile = rec
	if rec != nil {
		c.hooks.triggerResolved(rec.Resolved)
		logger.Info().Msg(rec.Summary())
	}

	// Step 6: Commit staged updates, even when reconciliation stopped early
	if rec != nil && rec.HasUpdates() {
		if options.DryRun {
			recs, err = reconciler.Apply(recs, rec.Updates)
			if err != nil {
				return err
			}
			logger.Info().Bool("dry_run", true).Int("ranges", len(rec.Updates)).Msg("Dry run - updates not written")
		} else {
			if err := c.commit(ctx, rec); err != nil {
				if recErr != nil {
					return fmt.Errorf("%w (after reconcile failed: %w)", err, recErr)
				}
				return err
			}
			result.Written = len(rec.Updates)
		}
	}
	if recErr != nil {
		return recErr
	}

	// Step 7: Re-read what was written; otherwise reuse the snapshot
	if result.Written > 0 {
		recs, err = c.Records(ctx)
		if err != nil {
			return err
		}
		result.Pending = reconciler.Verify(recs)
		if len(result.Pending) > 0 {
			logger.Warn().Int("pending", len(result.Pending)).Msg("Rows still unreconciled after commit")
		}
	}
	result.Records = recs

	if options.ReconcileOnly {
		return nil
	}

	// Step 8: Classify and summarize
	top := c.config.scheduleSize
	if options.Top > 0 {
		top = options.Top
	}
	result.Buckets = classifier.Classify(recs)
	result.Schedule = result.Buckets.Summary(top, c.config.now())
	logger.Info().
		Int("current", len(result.Buckets.Current)).
		Int("on_hold", len(result.Buckets.OnHold)).
		Int("upcoming", len(result.Buckets.Upcoming)).
		Int("completed", len(result.Buckets.Completed)).
		Msg("Classified games")

	if options.DryRun || options.NoReport {
		return nil
	}

	// Step 9: Fetch cover images
	if !options.NoImages {
		result.Images, err = c.images.FetchAll(logging.WithStage(ctx, "images"), covers(recs))
		if err != nil {
			return err
		}
	}

	// Step 10: Emit the report
	result.Artifacts, err = c.emitter.Emit(logging.WithStage(ctx, "report"), report.Input{
		Buckets:     result.Buckets,
		Summary:     result.Schedule,
		Images:      result.Images,
		GeneratedAt: c.config.now(),
	})
	return err
}

// commit writes rec's updates. When ctx is already done the write still gets
// a short grace period so finished lookups are not thrown away.
func (c *client) commit(ctx context.Context, rec *reconciler.Result) error {
	ctx = logging.WithStage(ctx, "commit")
	if ctx.Err() != nil {
		logging.Ctx(ctx).Warn().Dur("grace", constants.ShutdownTimeout).Msg("Run cancelled, committing staged updates")
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.WithoutCancel(ctx), constants.ShutdownTimeout)
		defer cancel()
	}
	if err := c.sheet.BatchWrite(ctx, rec.Updates); err != nil {
		return err
	}
	logging.Ctx(ctx).Info().Int("ranges", len(rec.Updates)).Msg("Committed updates")
	return nil
}

// finish records metrics and fires run hooks.
func (c *client) finish(ctx context.Context, options *SyncOptions, result *Result, err error) {
	logger := logging.Ctx(ctx)

	if m := c.config.metrics; m != nil {
		if result.Reconcile != nil {
			for _, res := range result.Reconcile.Resolved {
				m.RecordResolved(string(res.How))
			}
		}
		m.RecordUpdates(result.Staged(), result.Written)
		if err == nil && !options.ReconcileOnly {
			for bucket, n := range result.Buckets.Counts() {
				m.SetBucketSize(string(bucket), n)
			}
		}
		m.RecordRun(result.Metadata.Duration, result.Metadata.EndTime, err)

		if c.config.metricsFile != "" && !options.DryRun {
			if werr := m.WriteTextfile(c.config.metricsFile); werr != nil {
				logger.Warn().Err(werr).Str("file", c.config.metricsFile).Msg("Could not write metrics")
			}
		}
	}

	if err != nil {
		logger.Error().Err(err).Str("summary", result.Summary()).Msg("Sync failed")
	} else {
		logger.Info().Dur("duration", result.Metadata.Duration).Msg(result.Summary())
	}

	c.hooks.triggerRunComplete(result, err)
}

// covers lists the cover URLs of every record that has one.
func covers(recs []records.Record) []string {
	urls := make([]string, 0, len(recs))
	for _, r := range recs {
		if r.Cover != "" {
			urls = append(urls, r.Cover)
		}
	}
	return urls
}
