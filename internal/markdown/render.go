// Package markdown performs the cosmetic conversion of generated markdown
// for the result pane. It is display-only: nothing downstream interprets
// the structure of the generated text.
package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Glamour reserves a two-column gutter; wrapping must account for it or
// long lines overflow the pane.
const gutter = 2

// Render converts generated markdown into terminal markup wrapped to width.
// Rendering failures fall back to the raw text: a readable plain post beats
// an error for a purely cosmetic step.
func Render(generated string, width int) string {
	if strings.TrimSpace(generated) == "" {
		return ""
	}
	wrap := width - gutter
	if wrap < 10 {
		wrap = 10
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return generated
	}
	out, err := r.Render(generated)
	if err != nil {
		return generated
	}
	return trimEdgeBlankLines(out)
}

func trimEdgeBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
