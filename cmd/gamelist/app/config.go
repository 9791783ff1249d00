package app

import (
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/gamelist/pkg/constants"
	"github.com/agentstation/gamelist/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Catalog
	MobyAPIKey        string
	MobyBaseURL       string
	RateLimitFloor    time.Duration
	RateLimitCooldown time.Duration

	// Spreadsheet. SpreadsheetCSV selects a local CSV file instead of the
	// Sheets API.
	SpreadsheetID         string
	SpreadsheetName       string
	SpreadsheetRange      string
	SpreadsheetCSV        string
	GoogleCredentialsFile string

	// Report
	OutputDir    string
	ImagesDir    string
	ReportTitle  string
	ScheduleSize int
	MetricsFile  string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.gamelist.yaml or ./.gamelist.yaml)
// 5. Defaults
//
// configFile, when set, replaces the config file search. GAMELIST_CONFIG
// is used when configFile is empty.
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)

	if configFile == "" {
		configFile = os.Getenv("GAMELIST_CONFIG")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".gamelist")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "failed to read config file: "+err.Error(), err)
		}
	}

	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		MobyAPIKey:        v.GetString("moby_api_key"),
		MobyBaseURL:       v.GetString("moby_base_url"),
		RateLimitFloor:    v.GetDuration("rate_limit_floor"),
		RateLimitCooldown: v.GetDuration("rate_limit_cooldown"),

		SpreadsheetID:         v.GetString("spreadsheet_id"),
		SpreadsheetName:       v.GetString("spreadsheet_name"),
		SpreadsheetRange:      v.GetString("spreadsheet_range"),
		SpreadsheetCSV:        v.GetString("spreadsheet_csv"),
		GoogleCredentialsFile: v.GetString("google_credentials_file"),

		OutputDir:    v.GetString("output_dir"),
		ImagesDir:    v.GetString("images_dir"),
		ReportTitle:  v.GetString("report_title"),
		ScheduleSize: v.GetInt("schedule_size"),
		MetricsFile:  v.GetString("metrics_file"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("moby_base_url", constants.MobyGamesBaseURL)
	v.SetDefault("rate_limit_floor", constants.RateLimitFloor)
	v.SetDefault("rate_limit_cooldown", constants.RateLimitCooldown)
	v.SetDefault("spreadsheet_name", constants.DefaultSheetName)
	v.SetDefault("spreadsheet_range", constants.DefaultSheetRange)
	v.SetDefault("output_dir", constants.DefaultOutputDir)
	v.SetDefault("schedule_size", constants.DefaultScheduleSize)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// ValidateFormat checks the --format value.
func (c *Config) ValidateFormat() error {
	err := validation.Validate(c.Format,
		validation.In("", "table", "json", "yaml", "wide").Error("must be one of: table, json, yaml, wide"))
	if err != nil {
		return errors.NewConfigError("config", "invalid --format: "+err.Error(), err)
	}
	return nil
}

// ValidateSheet checks the settings needed to read the spreadsheet.
func (c *Config) ValidateSheet() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.SpreadsheetID,
			validation.When(c.SpreadsheetCSV == "", validation.Required.Error("SPREADSHEET_ID or SPREADSHEET_CSV must be set"))),
		validation.Field(&c.SpreadsheetRange, validation.Required),
	)
	if err != nil {
		return errors.NewConfigError("config", "invalid spreadsheet settings: "+err.Error(), err)
	}
	return nil
}

// Validate checks every setting a sync run needs.
func (c *Config) Validate() error {
	if err := c.ValidateSheet(); err != nil {
		return err
	}
	err := validation.ValidateStruct(c,
		validation.Field(&c.MobyAPIKey, validation.Required.Error("MOBY_API_KEY must be set")),
		validation.Field(&c.MobyBaseURL, validation.Required, is.URL),
		validation.Field(&c.OutputDir, validation.Required),
		validation.Field(&c.ScheduleSize, validation.Min(0)),
		validation.Field(&c.RateLimitFloor, validation.Min(time.Duration(0))),
		validation.Field(&c.RateLimitCooldown, validation.Min(time.Duration(0))),
	)
	if err != nil {
		return errors.NewConfigError("config", "invalid settings: "+err.Error(), err)
	}
	return nil
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env; neither overrides the real environment.
func loadEnvFiles() {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")
}
