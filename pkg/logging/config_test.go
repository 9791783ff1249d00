package logging

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"chatty", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseLevel(tt.in); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestOpenOutput(t *testing.T) {
	if openOutput("") != os.Stderr {
		t.Error("empty output should be stderr")
	}
	if openOutput("discard") != io.Discard {
		t.Error("discard output should drop lines")
	}

	path := filepath.Join(t.TempDir(), "sync.log")
	f, ok := openOutput(path).(*os.File)
	if !ok || f.Name() != path {
		t.Fatalf("expected log file %s", path)
	}
	t.Cleanup(func() { _ = f.Close() })

	if openOutput(filepath.Join(t.TempDir(), "missing", "sync.log")) != os.Stderr {
		t.Error("unopenable file should fall back to stderr")
	}
}

func TestEnvConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DEBUG", "1")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("NO_COLOR", "1")

	cfg := EnvConfig()
	if cfg.Level != "debug" || cfg.Format != "json" || !cfg.NoColor {
		t.Errorf("EnvConfig() = %+v", cfg)
	}
}
