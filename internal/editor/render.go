package editor

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles carries the lipgloss styles the renderer interleaves with plain
// text. Zero-value styles render text unmodified.
type Styles struct {
	Mark lipgloss.Style
}

// Render produces the pane markup for flat with every range drawn in the
// mark style. Ranges are processed start-ascending regardless of stored
// order. Overlapping input ranges are undefined behavior; the toggle
// operation guarantees non-overlap upstream. User text is neutralized before
// styling so pasted control bytes cannot inject sequences into the pane.
func Render(flat string, ranges []Range, st Styles) string {
	runes := []rune(flat)
	sorted := make([]Range, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var b strings.Builder
	pos := 0
	for _, r := range sorted {
		start, end := r.Start, r.End
		if start < 0 {
			start = 0
		}
		if end > len(runes) {
			end = len(runes)
		}
		if start >= end || start < pos {
			continue
		}
		b.WriteString(Neutralize(string(runes[pos:start])))
		b.WriteString(st.Mark.Render(Neutralize(string(runes[start:end]))))
		pos = end
	}
	if pos < len(runes) {
		b.WriteString(Neutralize(string(runes[pos:])))
	}
	return b.String()
}

// Neutralize replaces markup-significant control runes with their control
// picture so they render as inert glyphs. Newlines and tabs survive; ESC in
// particular must never reach the pane unescaped.
func Neutralize(text string) string {
	if !strings.ContainsFunc(text, isHostileControl) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isHostileControl(r) {
			b.WriteRune(controlPicture(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isHostileControl(r rune) bool {
	if r == '\n' || r == '\t' {
		return false
	}
	return r < 0x20 || r == 0x7f
}

func controlPicture(r rune) rune {
	if r == 0x7f {
		return '␡'
	}
	return '␀' + r
}
