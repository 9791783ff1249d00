// Package report renders classified games into the published artifacts: a
// one-line summary, a markdown report and the HTML page built from it.
package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/dchest/safefile"

	"github.com/agentstation/gamelist/pkg/classifier"
	"github.com/agentstation/gamelist/pkg/constants"
	"github.com/agentstation/gamelist/pkg/errors"
	"github.com/agentstation/gamelist/pkg/logging"
)

// Input is everything a report is rendered from.
type Input struct {
	Buckets classifier.Buckets
	// Summary is the "Next N games" line.
	Summary string
	// Images maps a cover URL to its cached local file. Games whose cover is
	// missing from the map render with a placeholder.
	Images map[string]string
	// GeneratedAt is shown as the last-updated time.
	GeneratedAt time.Time
}

// Artifacts are the paths written by an Emitter.
type Artifacts struct {
	Text     string `json:"text" yaml:"text"`
	Markdown string `json:"markdown" yaml:"markdown"`
	HTML     string `json:"html" yaml:"html"`
}

// Emitter writes report artifacts into a directory.
type Emitter struct {
	dir        string
	title      string
	stylesheet string
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithTitle sets the page and document title.
func WithTitle(title string) Option {
	return func(e *Emitter) {
		if title != "" {
			e.title = title
		}
	}
}

// WithStylesheet sets the stylesheet href linked from the HTML page.
func WithStylesheet(href string) Option {
	return func(e *Emitter) {
		e.stylesheet = href
	}
}

// New creates an Emitter writing into dir.
func New(dir string, opts ...Option) *Emitter {
	e := &Emitter{
		dir:        dir,
		title:      "Games list",
		stylesheet: "style.css",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit renders and writes all artifacts. Each file is replaced atomically,
// so a failed run never leaves a half-written report behind.
func (e *Emitter) Emit(ctx context.Context, in Input) (*Artifacts, error) {
	if err := os.MkdirAll(e.dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", e.dir, err)
	}

	markdown, err := e.Markdown(in)
	if err != nil {
		return nil, err
	}
	page, err := e.HTML(markdown, in.GeneratedAt)
	if err != nil {
		return nil, err
	}

	a := &Artifacts{
		Text:     filepath.Join(e.dir, constants.ScheduleTextFile),
		Markdown: filepath.Join(e.dir, constants.ScheduleMarkdownFile),
		HTML:     filepath.Join(e.dir, constants.ScheduleHTMLFile),
	}
	writes := []struct {
		path string
		data []byte
	}{
		{a.Text, []byte(in.Summary)},
		{a.Markdown, []byte(markdown)},
		{a.HTML, page},
	}
	for _, w := range writes {
		if err := writeFile(w.path, w.data); err != nil {
			return nil, err
		}
	}

	logging.Ctx(ctx).Info().
		Str("dir", e.dir).
		Int("games", in.Buckets.Len()).
		Msg("Report written")

	return a, nil
}

// writeFile replaces path with data atomically.
func writeFile(path string, data []byte) error {
	f, err := safefile.Create(path, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := bytes.NewReader(data).WriteTo(f); err != nil {
		return errors.WrapIO("write", path, err)
	}
	if err := f.Commit(); err != nil {
		return errors.WrapIO("commit", path, err)
	}
	return nil
}

// imageRef returns the cover reference for a game relative to the report
// directory, or "" when there is no cached image.
func (e *Emitter) imageRef(images map[string]string, cover string) string {
	if cover == "" {
		return ""
	}
	local, ok := images[cover]
	if !ok {
		return ""
	}
	if rel, err := filepath.Rel(e.dir, local); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(local)
}
