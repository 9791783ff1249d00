package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/agentstation/gamelist/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	logging.SetDefault(logger)

	logging.Info().Msg("info message")
	logging.Warn().Msg("warning message")

	output := buf.String()
	if !strings.Contains(output, "info message") {
		t.Errorf("Expected info message in output, got: %s", output)
	}
	if !strings.Contains(output, "warning message") {
		t.Errorf("Expected warning message in output, got: %s", output)
	}
}

func TestContextLogger(t *testing.T) {
	rec := logging.NewRecorder(t)

	ctx := logging.WithLogger(context.Background(), &rec.Logger)
	ctx = logging.WithRunID(ctx, "run-123")
	ctx = logging.WithStage(ctx, "reconcile")
	ctx = logging.WithRow(ctx, 7, "Another World")

	logging.Ctx(ctx).Info().Msg("resolved")

	entry := rec.Entry("resolved")
	if entry == nil {
		t.Fatalf("no entry for message %q in:\n%s", "resolved", rec.String())
	}
	want := map[string]any{
		"run_id": "run-123",
		"stage":  "reconcile",
		"row":    float64(7),
		"title":  "Another World",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("entry[%q] = %v, want %v", k, entry[k], v)
		}
	}

	if got := logging.RunID(ctx); got != "run-123" {
		t.Errorf("RunID() = %q, want run-123", got)
	}
}

func TestRecorderEntryMissing(t *testing.T) {
	rec := logging.NewRecorder(t)
	rec.Logger.Info().Msg("present")

	if rec.Entry("absent") != nil {
		t.Error("expected nil entry for a message never logged")
	}
	rec.AssertContains(t, "present")
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	if logging.FromContext(context.Background()) != logging.Default() {
		t.Error("expected default logger for context without logger")
	}
}

func TestConfiguration(t *testing.T) {
	configs := []struct {
		name   string
		config *logging.Config
		check  func(t *testing.T, output string)
	}{
		{
			name:   "debug level",
			config: &logging.Config{Level: "debug", Format: "json"},
			check: func(t *testing.T, output string) {
				if !strings.Contains(output, `"level":"debug"`) {
					t.Errorf("Expected debug level in output, got: %s", output)
				}
			},
		},
		{
			name:   "error level only",
			config: &logging.Config{Level: "error", Format: "json"},
			check: func(t *testing.T, output string) {
				if strings.Contains(output, `"level":"info"`) {
					t.Errorf("Should not contain info level when set to error")
				}
				if !strings.Contains(output, `"level":"error"`) {
					t.Errorf("Expected error level in output, got: %s", output)
				}
			},
		},
	}

	for _, tc := range configs {
		t.Run(tc.name, func(t *testing.T) {
			oldLevel := zerolog.GlobalLevel()
			t.Cleanup(func() { zerolog.SetGlobalLevel(oldLevel) })

			buf := &bytes.Buffer{}
			logger := logging.NewLoggerFromConfig(tc.config).Output(buf)

			logger.Debug().Msg("debug")
			logger.Info().Msg("info")
			logger.Error().Msg("error")

			tc.check(t, buf.String())
		})
	}
}
