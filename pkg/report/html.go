package report

import (
	"bytes"
	"html/template"
	"time"

	"github.com/russross/blackfriday/v2"

	"github.com/agentstation/gamelist/pkg/classifier"
	"github.com/agentstation/gamelist/pkg/errors"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
{{- if .Stylesheet}}
    <link rel="stylesheet" href="{{.Stylesheet}}">
{{- end}}
    <link rel="preconnect" href="https://fonts.googleapis.com">
    <link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
    <link href="https://fonts.googleapis.com/css2?family=Montserrat:ital,wght@0,100..900;1,100..900&display=swap" rel="stylesheet">
    <meta name="generated" content="{{.Generated}}">
  </head>
  <body>
{{.Body}}
  </body>
</html>
`))

// HTML renders markdown into a standalone page. The markdown comes from
// Markdown and may contain raw HTML from catalog descriptions, which is
// passed through.
func (e *Emitter) HTML(markdown string, generated time.Time) ([]byte, error) {
	body := blackfriday.Run([]byte(markdown))

	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, struct {
		Title      string
		Stylesheet string
		Generated  string
		Body       template.HTML
	}{
		Title:      e.title,
		Stylesheet: e.stylesheet,
		Generated:  classifier.Stamp(generated),
		Body:       template.HTML(body), //nolint:gosec // rendered from our own markdown
	})
	if err != nil {
		return nil, errors.WrapIO("render", "html report", err)
	}
	return buf.Bytes(), nil
}
