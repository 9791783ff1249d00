package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// Recorder collects JSON log lines written during a test.
type Recorder struct {
	Logger zerolog.Logger
	buf    *bytes.Buffer
}

// NewRecorder returns a trace-level logger writing into memory. The global
// level is lowered for the test and restored afterwards.
func NewRecorder(t testing.TB) *Recorder {
	t.Helper()

	old := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(old) })

	buf := &bytes.Buffer{}
	return &Recorder{
		Logger: zerolog.New(buf).Level(zerolog.TraceLevel).With().Timestamp().Logger(),
		buf:    buf,
	}
}

// String returns everything logged so far.
func (r *Recorder) String() string {
	return r.buf.String()
}

// Contains reports whether any line contains substr.
func (r *Recorder) Contains(substr string) bool {
	return strings.Contains(r.buf.String(), substr)
}

// AssertContains fails the test when no line contains substr.
func (r *Recorder) AssertContains(t testing.TB, substr string) {
	t.Helper()
	if !r.Contains(substr) {
		t.Errorf("log output does not contain %q\n%s", substr, r.buf.String())
	}
}

// Entry returns the fields of the first line whose message is msg, or nil.
func (r *Recorder) Entry(msg string) map[string]any {
	sc := bufio.NewScanner(bytes.NewReader(r.buf.Bytes()))
	for sc.Scan() {
		var fields map[string]any
		if json.Unmarshal(sc.Bytes(), &fields) != nil {
			continue
		}
		if fields[zerolog.MessageFieldName] == msg {
			return fields
		}
	}
	return nil
}

// CaptureLoggingForTest routes the default logger into a Recorder until the
// test ends. Loggers derived from a context pick it up on their next call.
func CaptureLoggingForTest(t testing.TB) *Recorder {
	t.Helper()

	original := defaultLogger
	rec := NewRecorder(t)
	SetDefault(rec.Logger)
	t.Cleanup(func() { SetDefault(original) })

	return rec
}

// DisableLoggingForTest silences the default logger until the test ends.
func DisableLoggingForTest(t testing.TB) {
	t.Helper()

	original := defaultLogger
	SetDefault(zerolog.Nop())
	t.Cleanup(func() { SetDefault(original) })
}
