package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/gamelist/pkg/constants"
)

// TestLoadConfigDefaults verifies defaults when nothing is configured.
func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GAMELIST_CONFIG", "")
	t.Setenv("OUTPUT_DIR", "")
	t.Setenv("SCHEDULE_SIZE", "")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, constants.MobyGamesBaseURL, config.MobyBaseURL)
	assert.Equal(t, constants.DefaultSheetName, config.SpreadsheetName)
	assert.Equal(t, constants.DefaultSheetRange, config.SpreadsheetRange)
	assert.Equal(t, constants.DefaultOutputDir, config.OutputDir)
	assert.Equal(t, constants.DefaultScheduleSize, config.ScheduleSize)
	assert.Equal(t, 2*time.Second, config.RateLimitFloor)
	assert.Equal(t, 6*time.Second, config.RateLimitCooldown)
	assert.Equal(t, "auto", config.LogFormat)
}

// TestLoadConfigEnvironment verifies environment variables override defaults.
func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("MOBY_API_KEY", "moby-key")
	t.Setenv("SPREADSHEET_ID", "sheet-123")
	t.Setenv("SPREADSHEET_NAME", "Backlog")
	t.Setenv("SCHEDULE_SIZE", "3")
	t.Setenv("RATE_LIMIT_COOLDOWN", "10s")
	t.Setenv("OUTPUT_DIR", "site")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "moby-key", config.MobyAPIKey)
	assert.Equal(t, "sheet-123", config.SpreadsheetID)
	assert.Equal(t, "Backlog", config.SpreadsheetName)
	assert.Equal(t, 3, config.ScheduleSize)
	assert.Equal(t, 10*time.Second, config.RateLimitCooldown)
	assert.Equal(t, "site", config.OutputDir)
}

// TestLoadConfigFile verifies an explicit YAML config file is read.
func TestLoadConfigFile(t *testing.T) {
	t.Setenv("SPREADSHEET_CSV", "")
	t.Setenv("REPORT_TITLE", "")
	path := filepath.Join(t.TempDir(), "gamelist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("spreadsheet_csv: games.csv\nreport_title: Backlog\n"), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "games.csv", config.SpreadsheetCSV)
	assert.Equal(t, "Backlog", config.ReportTitle)
	assert.Equal(t, path, config.ConfigFile)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func validConfig() *Config {
	return &Config{
		MobyAPIKey:        "key",
		MobyBaseURL:       constants.MobyGamesBaseURL,
		SpreadsheetID:     "sheet-123",
		SpreadsheetRange:  constants.DefaultSheetRange,
		OutputDir:         "public",
		ScheduleSize:      5,
		RateLimitFloor:    constants.RateLimitFloor,
		RateLimitCooldown: constants.RateLimitCooldown,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "csv instead of sheet id", mutate: func(c *Config) { c.SpreadsheetID = ""; c.SpreadsheetCSV = "games.csv" }},
		{name: "no sheet at all", mutate: func(c *Config) { c.SpreadsheetID = "" }, wantErr: true},
		{name: "missing api key", mutate: func(c *Config) { c.MobyAPIKey = "" }, wantErr: true},
		{name: "bad base url", mutate: func(c *Config) { c.MobyBaseURL = "not a url" }, wantErr: true},
		{name: "negative schedule", mutate: func(c *Config) { c.ScheduleSize = -1 }, wantErr: true},
		{name: "negative cooldown", mutate: func(c *Config) { c.RateLimitCooldown = -time.Second }, wantErr: true},
		{name: "empty range", mutate: func(c *Config) { c.SpreadsheetRange = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateSheetDoesNotNeedAPIKey(t *testing.T) {
	c := validConfig()
	c.MobyAPIKey = ""
	assert.NoError(t, c.ValidateSheet())
	assert.Error(t, c.Validate())
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"", "table", "json", "yaml", "wide"} {
		assert.NoError(t, (&Config{Format: f}).ValidateFormat(), f)
	}
	assert.Error(t, (&Config{Format: "xml"}).ValidateFormat())
}
