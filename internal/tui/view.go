package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/avashist/hilite/internal/editor"
	"github.com/avashist/hilite/internal/markdown"
)

const (
	minPaneWidth  = 40
	minEditHeight = 5
	minResultRows = 3
	// header, two pane borders, message area, legend
	chromeRows = 8
)

func (m *model) View() string {
	if m.modalVisible {
		return m.modalView()
	}
	m.refreshEditIfDirty()

	parts := []string{
		m.headerView(),
		editBoxStyle.Render(m.editView.View()),
	}
	switch {
	case m.generating:
		parts = append(parts, resultBoxStyle.Render(fmt.Sprintf("%s Drafting blog post…", m.spinner.View())))
	case m.post != "":
		parts = append(parts, resultBoxStyle.Render(m.resultView.View()))
	}
	if m.warnMessage != "" {
		parts = append(parts, warnStyle.Render(m.warnMessage))
	}
	if m.errorMessage != "" {
		parts = append(parts, errorStyle.Render(m.errorMessage))
	}
	if m.infoMessage != "" {
		parts = append(parts, helperStyle.Render(m.infoMessage))
	}
	parts = append(parts, m.legendView())
	if m.helpVisible {
		parts = append(parts, m.helpView())
	}
	return joinNonEmpty(parts)
}

func (m *model) headerView() string {
	stats := []string{
		"hilite",
		fmt.Sprintf("Mode %s", m.modeLabel()),
		fmt.Sprintf("%d/%d chars", utf8.RuneCountInString(m.state.FlatText), editor.MaxTextRunes),
		fmt.Sprintf("%d highlights", len(m.state.Ranges)),
	}
	if m.config.LLM != nil {
		stats = append(stats, "llm "+m.config.LLM.Name())
	} else {
		stats = append(stats, "llm off")
	}
	if m.config.Store.Enabled() {
		stats = append(stats, "store on")
	}
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

func (m *model) modeLabel() string {
	switch m.mode {
	case modeInsert:
		return "INSERT"
	case modeHighlight:
		return "SELECT"
	default:
		return "NORMAL"
	}
}

func (m *model) markEditDirty() {
	m.editDirty = true
}

func (m *model) refreshEditIfDirty() {
	if m.editDirty {
		m.refreshEditPane()
	}
}

// refreshEditPane rebuilds the editor viewport: highlight markup from the
// flat document, the caret spliced over its rune, then a width wrap.
func (m *model) refreshEditPane() {
	m.editDirty = false
	width := m.paneWidth()
	markup := editor.Render(m.state.FlatText, m.paneRanges(), m.styles())
	caretIdx := m.caretByteIndex(markup)
	markup = m.spliceCaret(markup)
	m.editView.SetContent(wordwrap.String(markup, width))
	m.ensureCaretVisible(markup, caretIdx, width)
}

// paneRanges adds the pending selection as a preview range. The renderer
// skips overlapping stretches, so a preview crossing an existing highlight
// degrades to a partial preview rather than corrupt markup.
func (m *model) paneRanges() []editor.Range {
	ranges := m.state.Ranges
	if m.mode == modeHighlight && m.selectionActive {
		span := editor.Span{Start: m.selectionAnchor, End: m.caret}.Normalized()
		if !span.IsCollapsed() {
			preview := make([]editor.Range, 0, len(ranges)+1)
			preview = append(preview, ranges...)
			preview = append(preview, editor.Range{Start: span.Start, End: span.End})
			return preview
		}
	}
	return ranges
}

func (m *model) styles() editor.Styles {
	return editor.Styles{Mark: markStyle}
}

func (m *model) caretByteIndex(markup string) int {
	start, _, ok := editor.VisibleRuneAt(markup, m.caret)
	if !ok {
		return len(markup)
	}
	return start
}

// spliceCaret restyles the rune under the caret. At end of document or on a
// newline it draws a styled blank instead, keeping the line break intact.
func (m *model) spliceCaret(markup string) string {
	start, end, ok := editor.VisibleRuneAt(markup, m.caret)
	if !ok {
		return markup + caretStyle.Render(" ")
	}
	ch := markup[start:end]
	if ch == "\n" {
		return markup[:start] + caretStyle.Render(" ") + markup[start:]
	}
	return markup[:start] + caretStyle.Render(ch) + markup[end:]
}

func (m *model) ensureCaretVisible(markup string, caretIdx, width int) {
	if caretIdx > len(markup) {
		caretIdx = len(markup)
	}
	line := strings.Count(wordwrap.String(markup[:caretIdx], width), "\n")
	if line < m.editView.YOffset {
		m.editView.SetYOffset(line)
		return
	}
	if m.editView.Height > 0 && line >= m.editView.YOffset+m.editView.Height {
		m.editView.SetYOffset(line - m.editView.Height + 1)
	}
}

func (m *model) refreshResult() {
	if m.post == "" {
		m.resultView.SetContent("")
		return
	}
	m.resultView.SetContent(markdown.Render(m.post, m.paneWidth()))
	m.resultView.SetYOffset(0)
}

func (m *model) resize() {
	width := m.paneWidth()
	m.editView.Width = width
	m.resultView.Width = width

	available := m.height - chromeRows
	if available < minEditHeight {
		available = minEditHeight
	}
	if m.post != "" || m.generating {
		editH := available * 3 / 5
		if editH < minEditHeight {
			editH = minEditHeight
		}
		resultH := available - editH
		if resultH < minResultRows {
			resultH = minResultRows
		}
		m.editView.Height = editH
		m.resultView.Height = resultH
	} else {
		m.editView.Height = available
		m.resultView.Height = minResultRows
	}
	m.markEditDirty()
}

func (m *model) paneWidth() int {
	if m.width == 0 {
		return 80
	}
	width := m.width - 4
	if width < minPaneWidth {
		width = minPaneWidth
	}
	return width
}

func (m *model) modalView() string {
	lines := []string{
		modalTitleStyle.Render("Generation unavailable"),
		"",
		"No generation credential is configured.",
		"Set HILITE_API_KEY, or point HILITE_ENDPOINT at a local",
		"Ollama host, then restart.",
		"",
		"Editing and highlighting still work; g stays disabled.",
		"",
		helperStyle.Render("Press Enter to continue."),
	}
	return modalBoxStyle.Render(strings.Join(lines, "\n"))
}

func (m *model) legendView() string {
	switch m.mode {
	case modeInsert:
		return helperStyle.Render("Esc commands • type to edit")
	case modeHighlight:
		return helperStyle.Render("move extends • space toggles highlight • Esc cancels")
	default:
		return helperStyle.Render("i insert • v select • g draft • c copy • d save • r reset • ? help • Esc quit")
	}
}

func (m *model) helpView() string {
	lines := []string{
		sectionHeaderStyle.Render("Keys"),
		helperStyle.Render("• i types into the document; Esc returns to command mode."),
		helperStyle.Render("• v anchors a selection at the caret; move to extend it, space or Enter toggles the highlight."),
		helperStyle.Render("• selecting across an existing highlight removes it instead of stacking a new one."),
		helperStyle.Render("• g drafts a blog post from the document and the latest highlight."),
		helperStyle.Render("• c copies the raw markdown, d writes blog-post.md, r clears the session."),
		helperStyle.Render("• Ctrl+C quits from anywhere."),
	}
	return helpBoxStyle.Render(strings.Join(lines, "\n"))
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n")
}

var (
	statusBarStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	markStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("190"))
	caretStyle         = lipgloss.NewStyle().Reverse(true)
	editBoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)
	resultBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#7f5af0")).Padding(0, 1)
	helpBoxStyle       = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#7f5af0")).Padding(1, 2)
	modalBoxStyle      = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("9")).Padding(1, 3)
	modalTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)
