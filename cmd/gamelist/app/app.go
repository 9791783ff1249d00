// Package app provides the application context and dependency management
// for the gamelist CLI. It centralizes configuration, logging, and the
// wiring of spreadsheet and catalog backends.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/gamelist"
	"github.com/agentstation/gamelist/internal/sheets/csvfile"
	"github.com/agentstation/gamelist/internal/sheets/google"
	"github.com/agentstation/gamelist/internal/sources/mobygames"
	"github.com/agentstation/gamelist/pkg/catalog"
	"github.com/agentstation/gamelist/pkg/errors"
	"github.com/agentstation/gamelist/pkg/metrics"
	"github.com/agentstation/gamelist/pkg/sheet"
)

// App represents the gamelist application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config  *Config
	logger  *zerolog.Logger
	metrics *metrics.Manager

	// Lazily built, shared by every command of one invocation
	mu     sync.Mutex
	sheet  sheet.Spreadsheet
	client gamelist.Client
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		metrics: metrics.NewManager(),
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Metrics returns the metrics manager shared by the catalog and the sync run.
func (a *App) Metrics() *metrics.Manager {
	return a.metrics
}

// Sheet returns the configured spreadsheet backend: a local CSV file when
// SPREADSHEET_CSV is set, the Google Sheets API otherwise.
func (a *App) Sheet(ctx context.Context) (sheet.Spreadsheet, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sheetLocked(ctx)
}

func (a *App) sheetLocked(ctx context.Context) (sheet.Spreadsheet, error) {
	if a.sheet != nil {
		return a.sheet, nil
	}
	if err := a.config.ValidateSheet(); err != nil {
		return nil, err
	}

	if a.config.SpreadsheetCSV != "" {
		f, err := csvfile.Open(a.config.SpreadsheetCSV)
		if err != nil {
			return nil, err
		}
		a.logger.Debug().Str("file", f.Path()).Msg("Using CSV spreadsheet")
		a.sheet = f
		return f, nil
	}

	var opts []google.Option
	if a.config.GoogleCredentialsFile != "" {
		opts = append(opts, google.WithCredentialsFile(a.config.GoogleCredentialsFile))
	}
	s, err := google.New(ctx, a.config.SpreadsheetID, opts...)
	if err != nil {
		return nil, err
	}
	a.sheet = s
	return s, nil
}

// Catalog builds the MobyGames catalog stack: the HTTP client, instrumented
// for metrics, paced by the rate limiter, with an in-process lookup cache on
// top so repeated titles never wait.
func (a *App) Catalog() (catalog.Client, error) {
	moby, err := mobygames.NewClient(a.config.MobyAPIKey, mobygames.WithBaseURL(a.config.MobyBaseURL))
	if err != nil {
		return nil, err
	}

	var c catalog.Client = metrics.InstrumentCatalog(moby, a.metrics)
	c = catalog.NewRateLimited(c,
		catalog.WithFloor(a.config.RateLimitFloor),
		catalog.WithCooldown(a.config.RateLimitCooldown),
	)
	return catalog.NewCached(c, 0), nil
}

// Client returns the gamelist client, creating it on first use.
func (a *App) Client(ctx context.Context) (gamelist.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}
	if err := a.config.Validate(); err != nil {
		return nil, err
	}

	s, err := a.sheetLocked(ctx)
	if err != nil {
		return nil, err
	}
	cat, err := a.Catalog()
	if err != nil {
		return nil, err
	}

	gl, err := gamelist.New(s, cat, a.clientOptions()...)
	if err != nil {
		return nil, errors.NewConfigError("gamelist", "failed to create client", err)
	}

	a.client = gl
	return gl, nil
}

// clientOptions constructs gamelist options from the app configuration.
func (a *App) clientOptions() []gamelist.Option {
	opts := []gamelist.Option{
		gamelist.WithSheetName(a.config.SpreadsheetName),
		gamelist.WithSheetRange(a.config.SpreadsheetRange),
		gamelist.WithOutputDir(a.config.OutputDir),
		gamelist.WithScheduleSize(a.config.ScheduleSize),
		gamelist.WithMetrics(a.metrics),
	}
	if a.config.ImagesDir != "" {
		opts = append(opts, gamelist.WithImagesDir(a.config.ImagesDir))
	}
	if a.config.ReportTitle != "" {
		opts = append(opts, gamelist.WithTitle(a.config.ReportTitle))
	}
	if a.config.MetricsFile != "" {
		opts = append(opts, gamelist.WithMetricsFile(a.config.MetricsFile))
	}
	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithSheet sets the spreadsheet backend (useful for testing).
func WithSheet(s sheet.Spreadsheet) Option {
	return func(a *App) error {
		a.sheet = s
		return nil
	}
}

// WithClient sets a custom gamelist client (useful for testing).
func WithClient(c gamelist.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
