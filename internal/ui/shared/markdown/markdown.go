// Package markdown renders command help and notices as styled terminal
// markdown for the console transcript.
package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// transcriptStyle strips document margins so rendered blocks sit flush
// inside the transcript viewport instead of floating with glamour's
// default two-space gutter.
const transcriptStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps a glamour term renderer at a fixed word-wrap width.
// The console rebuilds it on window resize.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a renderer for the given width and style name ("dark" or
// "light", defaulting to dark). The style is passed explicitly rather
// than using glamour's auto detection: auto detection queries the
// terminal background with an OSC sequence, and the response can leak
// into Bubble Tea's input stream as phantom keypresses.
func New(width int, style string) (*Renderer, error) {
	if style == "" {
		style = "dark"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(transcriptStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown into styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}

// RenderOrPlain renders markdown, falling back to the raw text when
// rendering fails. Help output degrades to readable plain text instead
// of surfacing a renderer error in the transcript.
func (r *Renderer) RenderOrPlain(markdown string) string {
	out, err := r.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(out, "\n")
}
