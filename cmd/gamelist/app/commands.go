package app

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/gamelist"
	"github.com/agentstation/gamelist/internal/cmd/output"
	"github.com/agentstation/gamelist/pkg/classifier"
	"github.com/agentstation/gamelist/pkg/errors"
	"github.com/agentstation/gamelist/pkg/records"
	"github.com/agentstation/gamelist/pkg/sheet"
)

// NewSyncCommand creates the sync command.
func (a *App) NewSyncCommand() *cobra.Command {
	var (
		dryRun   bool
		noReport bool
		noImages bool
		top      int
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:     "sync",
		GroupID: "core",
		Short:   "Reconcile the sheet with MobyGames and render the schedule",
		Long: `Sync links every unreconciled row to a MobyGames entry, writes the
title and catalog metadata back to the sheet, re-reads it, and writes
schedule.txt, schedule.md and schedule.html to the output directory.

Catalog calls are paced to stay under the MobyGames rate limit, so a sheet
with many new rows takes a while. Rows resolved before an interrupt or a
catalog error are still written back.`,
		Example: `  gamelist sync
  gamelist sync --dry-run -o yaml
  SPREADSHEET_CSV=games.csv gamelist sync --no-images`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gl, err := a.Client(cmd.Context())
			if err != nil {
				return err
			}

			result, err := gl.Sync(cmd.Context(),
				gamelist.WithDryRun(dryRun),
				gamelist.WithNoReport(noReport),
				gamelist.WithNoImages(noImages),
				gamelist.WithTop(top),
				gamelist.WithTimeout(timeout),
			)
			if result != nil {
				if perr := a.printResult(cmd.OutOrStdout(), result); perr != nil && err == nil {
					err = perr
				}
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "resolve rows without writing the sheet or the report")
	cmd.Flags().BoolVar(&noReport, "no-report", false, "skip writing report artifacts")
	cmd.Flags().BoolVar(&noImages, "no-images", false, "skip downloading cover images")
	cmd.Flags().IntVar(&top, "top", 0, "upcoming games listed in schedule.txt (default from SCHEDULE_SIZE)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "abort the run after this long (0 = no limit)")
	cmd.Flags().StringVar(&a.config.OutputDir, "output-dir", a.config.OutputDir, "directory for report artifacts")

	return cmd
}

// NewReconcileCommand creates the reconcile command.
func (a *App) NewReconcileCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:     "reconcile",
		GroupID: "core",
		Short:   "Link new rows to MobyGames without rendering the report",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gl, err := a.Client(cmd.Context())
			if err != nil {
				return err
			}

			result, err := gl.Sync(cmd.Context(),
				gamelist.WithReconcileOnly(true),
				gamelist.WithDryRun(dryRun),
			)
			if result != nil {
				if perr := a.printResult(cmd.OutOrStdout(), result); perr != nil && err == nil {
					err = perr
				}
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be written without writing it")

	return cmd
}

// NewListCommand creates the list command.
func (a *App) NewListCommand() *cobra.Command {
	var counts bool

	cmd := &cobra.Command{
		Use:     "list [bucket]",
		GroupID: "core",
		Short:   "List games by bucket",
		Long: `List reads the sheet and prints its games in schedule order. The sheet
is not modified and MobyGames is not called.

Buckets: current, on_hold, upcoming, completed.`,
		Example: `  gamelist list
  gamelist list upcoming -o json
  gamelist list --counts`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"current", "on_hold", "upcoming", "completed"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var only []classifier.Bucket
			if len(args) == 1 {
				b, ok := classifier.ParseBucket(args[0])
				if !ok {
					return errors.NewValidationError("bucket", args[0], "must be one of: current, on_hold, upcoming, completed")
				}
				only = append(only, b)
			}

			s, err := a.Sheet(cmd.Context())
			if err != nil {
				return err
			}
			rows, err := s.FetchRows(cmd.Context(), a.rangeSpec())
			if err != nil {
				return err
			}
			buckets := classifier.Classify(records.ParseSheet(rows))

			format := output.DetectFormat(a.config.Format)
			formatter := output.NewFormatter(format)
			w := cmd.OutOrStdout()

			if counts {
				if format.IsTable() {
					return formatter.Format(w, output.CountsToTableData(buckets))
				}
				return formatter.Format(w, buckets.Counts())
			}

			games := output.Games(buckets, only...)
			if format.IsTable() {
				return formatter.Format(w, output.GamesToTableData(games, format == output.FormatWide))
			}
			return formatter.Format(w, games)
		},
	}

	cmd.Flags().BoolVar(&counts, "counts", false, "print only the number of games per bucket")

	return cmd
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("gamelist %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}

func (a *App) rangeSpec() string {
	return sheet.Range(a.config.SpreadsheetName, a.config.SpreadsheetRange)
}

// printResult writes a sync result in the configured format.
func (a *App) printResult(w io.Writer, result *gamelist.Result) error {
	format := output.DetectFormat(a.config.Format)
	formatter := output.NewFormatter(format)
	if !format.IsTable() {
		return formatter.Format(w, result)
	}

	if result.Reconcile != nil && len(result.Reconcile.Resolved) > 0 {
		if err := formatter.Format(w, output.ResolutionsToTableData(result.Reconcile.Resolved)); err != nil {
			return err
		}
	}
	if result.Buckets.Len() > 0 {
		if err := formatter.Format(w, output.CountsToTableData(result.Buckets)); err != nil {
			return err
		}
	}
	if result.Schedule != "" {
		fmt.Fprintln(w, result.Schedule)
	}
	if result.Artifacts != nil {
		fmt.Fprintf(w, "Report: %s\n", result.Artifacts.HTML)
	}
	fmt.Fprintln(w, result.Summary())
	return nil
}
