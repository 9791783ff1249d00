package report

import (
	"fmt"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/gamelist/pkg/classifier"
	"github.com/agentstation/gamelist/pkg/constants"
	"github.com/agentstation/gamelist/pkg/errors"
	"github.com/agentstation/gamelist/pkg/records"
)

// section describes one bucket in the report.
type section struct {
	bucket      classifier.Bucket
	title       string
	description string
	// always sections render even when empty.
	always bool
}

var sections = []section{
	{classifier.BucketCurrent, "Current Games", "What I'm playing right now.", false},
	{classifier.BucketOnHold, "On hold", "Can't play yet, or in a holding pattern for some reason.", false},
	{classifier.BucketUpcoming, "Upcoming Games", "What's coming up!", true},
	{classifier.BucketCompleted, "Completed Games", "This is a non-exhaustive list, trust me.", false},
}

// placeholderCover stands in for a game without a cached cover.
const placeholderCover = "?"

// Markdown renders the full report as markdown.
func (e *Emitter) Markdown(in Input) (string, error) {
	var buf strings.Builder
	doc := md.NewMarkdown(&buf)

	doc.H1(e.title).
		PlainTextf("Last updated: %s UTC", classifier.Stamp(in.GeneratedAt)).
		LF().
		PlainText("Here you can find all the games I have played, am playing, and will be playing soon.").
		LF()

	for _, s := range sections {
		games := in.Buckets.Get(s.bucket)
		if len(games) == 0 && !s.always {
			continue
		}
		doc.H2(s.title).PlainText(md.Italic(s.description)).LF()
		for _, g := range games {
			e.writeGame(doc, in.Images, g)
		}
	}

	doc.HorizontalRule().
		PlainText("Data provided by " + md.Link("MobyGames", constants.MobyGamesSiteURL))

	if err := doc.Build(); err != nil {
		return "", errors.WrapIO("render", "markdown report", err)
	}
	return buf.String(), nil
}

func (e *Emitter) writeGame(doc *md.Markdown, images map[string]string, g records.Record) {
	title := g.DisplayTitle()
	if g.OfficialURL != "" {
		title = md.Link(title, g.OfficialURL)
	}
	doc.H3(title)

	if ref := e.imageRef(images, g.Cover); ref != "" {
		doc.PlainText(md.Image(g.Title, ref)).LF()
	} else {
		doc.PlainText(placeholderCover).LF()
	}

	doc.BulletList(details(g)...)

	if desc := strings.TrimSpace(g.Description); desc != "" {
		doc.PlainText(desc).LF()
	}
}

// details lists the per-game facts shown under the title.
func details(g records.Record) []string {
	var lines []string
	if g.IsStarted() && !g.IsCompleted() {
		lines = append(lines, md.Bold("Started:")+" "+g.Started.String())
	}
	if g.IsCompleted() {
		lines = append(lines, md.Bold("Completed:")+" "+g.Completed.String())
	}
	lines = append(lines, suggestion(g))
	if g.Provider != nil {
		lines = append(lines, md.Bold("Provider:")+" "+*g.Provider)
	}
	return lines
}

// suggestion credits a viewer suggestion with votes, or marks the game as
// chosen by the streamer.
func suggestion(g records.Record) string {
	votes := g.VoteCount()
	if !g.StreamerSelected && votes != 0 {
		who := ""
		if g.Attribution != nil {
			who = " by " + *g.Attribution
		}
		return fmt.Sprintf("%s%s on %s (%s)", md.Bold("Suggested"), who, g.DateSuggested, classifier.Votes(votes))
	}
	if votes != 0 {
		return fmt.Sprintf("%s (%s)", md.Bold("Streamer chosen"), classifier.Votes(votes))
	}
	return md.Bold("Streamer chosen")
}
