package gamelist

import (
	"path/filepath"
	"time"

	"github.com/agentstation/gamelist/internal/images"
	"github.com/agentstation/gamelist/pkg/constants"
	"github.com/agentstation/gamelist/pkg/errors"
	"github.com/agentstation/gamelist/pkg/metrics"
	"github.com/agentstation/gamelist/pkg/sheet"
)

// config holds the Client configuration.
type config struct {
	sheetName    string
	sheetRange   string
	outputDir    string
	imageDir     string
	title        string
	scheduleSize int
	images       *images.Cache
	metrics      *metrics.Manager
	metricsFile  string
	now          func() time.Time
}

func defaultConfig() *config {
	return &config{
		sheetName:    constants.DefaultSheetName,
		sheetRange:   constants.DefaultSheetRange,
		outputDir:    constants.DefaultOutputDir,
		scheduleSize: constants.DefaultScheduleSize,
		now:          time.Now,
	}
}

func newConfig(opts ...Option) (*config, error) {
	c := defaultConfig()
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// rangeSpec is the A1 range read from the sheet, e.g. "Games!A1:O".
func (c *config) rangeSpec() string {
	return sheet.Range(c.sheetName, c.sheetRange)
}

func (c *config) imagesDir() string {
	if c.imageDir != "" {
		return c.imageDir
	}
	return filepath.Join(c.outputDir, constants.DefaultImagesDir)
}

// Option is a function that configures a Client instance
type Option func(*config) error

// WithSheetName sets the tab holding the games list.
func WithSheetName(name string) Option {
	return func(c *config) error {
		c.sheetName = name
		return nil
	}
}

// WithSheetRange sets the cell range read from the tab, e.g. "A1:O".
func WithSheetRange(cells string) Option {
	return func(c *config) error {
		if cells == "" {
			return &errors.ValidationError{Field: "range", Message: "cannot be empty"}
		}
		c.sheetRange = cells
		return nil
	}
}

// WithOutputDir sets where report artifacts are written.
func WithOutputDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return &errors.ValidationError{Field: "output_dir", Message: "cannot be empty"}
		}
		c.outputDir = dir
		return nil
	}
}

// WithImagesDir sets where cover images are cached. Defaults to
// "images" under the output directory.
func WithImagesDir(dir string) Option {
	return func(c *config) error {
		c.imageDir = dir
		return nil
	}
}

// WithImageCache replaces the cover image cache entirely.
func WithImageCache(cache *images.Cache) Option {
	return func(c *config) error {
		c.images = cache
		return nil
	}
}

// WithTitle sets the report title.
func WithTitle(title string) Option {
	return func(c *config) error {
		c.title = title
		return nil
	}
}

// WithScheduleSize sets how many upcoming games the summary lists.
func WithScheduleSize(n int) Option {
	return func(c *config) error {
		if n < 0 {
			return &errors.ValidationError{Field: "schedule_size", Value: n, Message: "must be non-negative"}
		}
		c.scheduleSize = n
		return nil
	}
}

// WithMetrics records run metrics in m.
func WithMetrics(m *metrics.Manager) Option {
	return func(c *config) error {
		c.metrics = m
		return nil
	}
}

// WithMetricsFile writes the metrics registry to path in the Prometheus text
// format after every non-dry run. Requires WithMetrics.
func WithMetricsFile(path string) Option {
	return func(c *config) error {
		c.metricsFile = path
		return nil
	}
}

// WithClock sets the time source for stamps and timings.
func WithClock(now func() time.Time) Option {
	return func(c *config) error {
		if now == nil {
			return &errors.ValidationError{Field: "clock", Message: "cannot be nil"}
		}
		c.now = now
		return nil
	}
}
