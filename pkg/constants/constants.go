// Package constants provides shared constants used throughout the gamelist codebase.
// This includes timeouts, rate limits, sheet layout, file permissions, and other
// values that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the catalog API
	DefaultHTTPTimeout = 30 * time.Second

	// ImageFetchTimeout is the timeout for downloading a single cover image
	ImageFetchTimeout = 20 * time.Second

	// ShutdownTimeout is how long shutdown work may take after a failed run
	ShutdownTimeout = 5 * time.Second
)

// Rate limiting constants for the catalog API.
// MobyGames allows 0.2 requests per second with a burst cap of 5 seconds.
const (
	// RateLimitFloor is the minimum spacing between two catalog calls.
	RateLimitFloor = 2 * time.Second

	// RateLimitCooldown is how long a caller sleeps when calls come faster than the floor.
	RateLimitCooldown = 6 * time.Second
)

// Cache constants
const (
	// LookupCacheTTL is how long a catalog lookup stays cached within a process
	LookupCacheTTL = 30 * time.Minute

	// LookupCacheCleanupInterval is how often expired lookups are removed
	LookupCacheCleanupInterval = 10 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants
const (
	// DefaultScheduleSize is how many upcoming games the short summary lists
	DefaultScheduleSize = 5

	// MaxConcurrentImageFetches bounds parallel cover downloads
	MaxConcurrentImageFetches = 4
)

// Catalog constants
const (
	// MobyGamesBaseURL is the default MobyGames API root
	MobyGamesBaseURL = "https://api.mobygames.com/v2"

	// MobyGamesSiteURL is linked from the report footer
	MobyGamesSiteURL = "https://www.mobygames.com/"

	// MobyGamesInclude is the field list requested on every lookup
	MobyGamesInclude = "title,description,official_url,covers"

	// MobyGamesAPIKeyParam is the query parameter carrying the API key
	MobyGamesAPIKeyParam = "api_key"

	// PlaceholderCatalogID marks rows that were processed without a catalog match
	PlaceholderCatalogID = "unknown"
)

// Sheet layout constants. Columns are 0-based indexes into a row.
const (
	// DefaultSheetName is the tab holding the games list
	DefaultSheetName = "Games"

	// DefaultSheetRange covers every column the records use
	DefaultSheetRange = "A1:O"

	ColumnTitle            = 0
	ColumnStreamerSelected = 1
	ColumnVotes            = 2
	ColumnDateSuggested    = 3
	ColumnAttribution      = 4
	ColumnProvider         = 5
	ColumnNotes            = 6
	ColumnStarted          = 7
	ColumnCompleted        = 8
	ColumnCatalogID        = 9
	ColumnOverrideID       = 10
	ColumnCover            = 11
	ColumnDescription      = 12
	ColumnOfficialURL      = 13
	ColumnOnHold           = 14

	// SentinelDateSuggested is used when a row has no suggestion date
	SentinelDateSuggested = "2000-01-01"
)

// Report constants
const (
	// ScheduleTextFile is the short "next N games" artifact
	ScheduleTextFile = "schedule.txt"

	// ScheduleMarkdownFile is the markdown rendition of the report
	ScheduleMarkdownFile = "schedule.md"

	// ScheduleHTMLFile is the human-readable report
	ScheduleHTMLFile = "schedule.html"

	// DefaultOutputDir is where report artifacts are written
	DefaultOutputDir = "public"

	// DefaultImagesDir is where cover images are cached, relative to the output dir
	DefaultImagesDir = "images"

	// TimeFormatStamp is the layout used for "Last updated" stamps.
	TimeFormatStamp = "Jan 2, 2006 at 15:04:05"
)
