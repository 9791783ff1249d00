// Package logging provides structured logging for gamelist using zerolog.
// Terminals get human-readable console output; pipes and files get JSON lines
// suitable for a scheduled batch job's log collector.
//
// Example usage:
//
//	ctx := logging.WithRunID(context.Background(), runID)
//	ctx = logging.WithRow(ctx, 12, "Another World")
//	logging.Ctx(ctx).Info().Str("catalog_id", "1042").Msg("Resolved game")
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger is used when a context carries no logger. It starts from the
// environment (LOG_LEVEL, LOG_FORMAT, LOG_OUTPUT, NO_COLOR) and is replaced by
// the CLI once flags are parsed.
var defaultLogger = NewLoggerFromConfig(EnvConfig())

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the default logger, including zerolog's global one.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// Debug starts a debug event on the default logger.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts an info event on the default logger.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a warn event on the default logger.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error starts an error event on the default logger.
func Error() *zerolog.Event {
	return defaultLogger.Error()
}
