// Package tui is the full-screen editing surface: a single flat document the
// user types or pastes into, highlight toggling over selections, and an
// asynchronous blog-post draft rendered beneath the editor.
package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/avashist/hilite/internal/editor"
	"github.com/avashist/hilite/internal/export"
	"github.com/avashist/hilite/internal/llm"
	"github.com/avashist/hilite/internal/store"
)

// Config wires runtime options into the TUI program.
type Config struct {
	// LLM is nil when no generation backend is configured; the UI surfaces
	// that once at startup and the draft command stays inert.
	LLM llm.Client

	// Store is nil when persistence is unconfigured. All store traffic is
	// best-effort and never blocks the editing flow.
	Store *store.Client

	// ExportDir is where d drops the markdown file; empty means the working
	// directory.
	ExportDir string

	// InitialText seeds the document, typically from the -import flag.
	InitialText string

	Logger *log.Logger
}

type interactionMode int

const (
	modeInsert interactionMode = iota
	modeNormal
	modeHighlight
)

type model struct {
	config Config

	state editor.State
	caret int

	mode            interactionMode
	selectionAnchor int
	selectionActive bool

	editView   viewport.Model
	resultView viewport.Model
	spinner    spinner.Model

	post       string
	generating bool
	// genSeq stamps each generation run; results carrying an older stamp
	// belong to a superseded session and are dropped.
	genSeq int

	width  int
	height int

	editDirty    bool
	infoMessage  string
	errorMessage string
	warnMessage  string
	helpVisible  bool
	modalVisible bool
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	edit := viewport.New(80, 16)
	result := viewport.New(80, 10)
	result.MouseWheelEnabled = true

	m := &model{
		config:      config,
		mode:        modeInsert,
		spinner:     spin,
		editView:    edit,
		resultView:  result,
		editDirty:   true,
		infoMessage: "Type or paste your text. Esc switches to command mode.",
	}
	if config.InitialText != "" {
		m.dispatch(editor.Edit{NewText: config.InitialText})
		m.caret = utf8.RuneCountInString(m.state.FlatText)
	}
	if config.LLM == nil {
		m.modalVisible = true
	}
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.generating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.modalVisible {
			switch msg.Type {
			case tea.KeyEnter, tea.KeyEsc:
				m.modalVisible = false
				m.infoMessage = "Editing works without generation. Type away."
			}
			return m, nil
		}
		return m.handleKey(msg)
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.resultView, cmd = m.resultView.Update(msg)
		return m, cmd
	case postResultMsg:
		if msg.seq != m.genSeq {
			// A reset or newer run superseded this result.
			return m, nil
		}
		m.generating = false
		if msg.err != nil {
			m.errorMessage = "Generation failed. Press g to try again."
			m.infoMessage = ""
			return m, nil
		}
		m.post = msg.post
		m.errorMessage = ""
		m.infoMessage = fmt.Sprintf("Blog post ready. c copies it, d saves %s.", export.FileName)
		m.resize()
		m.refreshResult()
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.refreshResult()
		return m, nil
	}
	return m, nil
}

func (m *model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeInsert:
		return m.handleInsertKey(key)
	case modeHighlight:
		return m.handleHighlightKey(key)
	default:
		return m.handleNormalKey(key)
	}
}

func (m *model) handleInsertKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.mode = modeNormal
		m.infoMessage = "Command mode. v selects, g drafts, i returns to typing."
		m.markEditDirty()
	case tea.KeyRunes:
		m.insertText(string(key.Runes))
	case tea.KeySpace:
		m.insertText(" ")
	case tea.KeyEnter:
		m.insertText("\n")
	case tea.KeyTab:
		m.insertText("\t")
	case tea.KeyBackspace:
		m.deleteBack()
	case tea.KeyDelete:
		m.deleteForward()
	case tea.KeyLeft:
		m.moveCaret(-1)
	case tea.KeyRight:
		m.moveCaret(1)
	case tea.KeyUp:
		m.moveCaretVertically(-1)
	case tea.KeyDown:
		m.moveCaretVertically(1)
	case tea.KeyHome:
		m.moveCaretToLineEdge(-1)
	case tea.KeyEnd:
		m.moveCaretToLineEdge(1)
	}
	return m, nil
}

func (m *model) handleNormalKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		return m, tea.Quit
	case "i":
		m.mode = modeInsert
		m.infoMessage = "Insert mode. Esc returns to commands."
		m.markEditDirty()
	case "v":
		m.enterHighlightMode()
	case "left", "h":
		m.moveCaret(-1)
	case "right", "l":
		m.moveCaret(1)
	case "up", "k":
		m.moveCaretVertically(-1)
	case "down", "j":
		m.moveCaretVertically(1)
	case "0":
		m.moveCaretToLineEdge(-1)
	case "$":
		m.moveCaretToLineEdge(1)
	case "g":
		return m.startGeneration()
	case "c":
		m.copyPost()
	case "d":
		m.savePost()
	case "r":
		m.resetSession()
	case "?":
		m.helpVisible = !m.helpVisible
	default:
		var cmd tea.Cmd
		m.resultView, cmd = m.resultView.Update(key)
		return m, cmd
	}
	return m, nil
}

func (m *model) handleHighlightKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc", "v":
		m.mode = modeNormal
		m.selectionActive = false
		m.infoMessage = "Selection canceled."
		m.markEditDirty()
	case "left", "h":
		m.moveCaret(-1)
	case "right", "l":
		m.moveCaret(1)
	case "up", "k":
		m.moveCaretVertically(-1)
	case "down", "j":
		m.moveCaretVertically(1)
	case "0":
		m.moveCaretToLineEdge(-1)
	case "$":
		m.moveCaretToLineEdge(1)
	case " ", "enter":
		m.applyToggle()
	}
	return m, nil
}

func (m *model) enterHighlightMode() {
	m.mode = modeHighlight
	m.selectionAnchor = m.caret
	m.selectionActive = true
	m.infoMessage = "Move to extend the selection, space toggles the highlight."
	m.markEditDirty()
}

func (m *model) applyToggle() {
	span := editor.Span{Start: m.selectionAnchor, End: m.caret}
	before := len(m.state.Ranges)
	m.dispatch(editor.Toggle{Selection: span})
	switch after := len(m.state.Ranges); {
	case after > before:
		m.infoMessage = fmt.Sprintf("Highlighted %q.", clipForStatus(m.state.LastExcerpt))
	case after < before:
		m.infoMessage = fmt.Sprintf("Removed highlight %q.", clipForStatus(m.state.LastExcerpt))
	default:
		m.infoMessage = "Nothing to highlight there."
	}
	m.mode = modeNormal
	m.selectionActive = false
	m.markEditDirty()
}

func (m *model) startGeneration() (tea.Model, tea.Cmd) {
	if m.config.LLM == nil {
		m.modalVisible = true
		return m, nil
	}
	if m.generating {
		m.infoMessage = "A draft is already running."
		return m, nil
	}
	if strings.TrimSpace(m.state.FlatText) == "" {
		m.infoMessage = "Write or import some text before drafting."
		return m, nil
	}
	m.generating = true
	m.genSeq++
	m.errorMessage = ""
	m.infoMessage = "Drafting blog post…"
	m.resize()
	return m, tea.Batch(
		m.spinner.Tick,
		generatePostCmd(m.genSeq, m.config.LLM, m.config.Store, m.config.Logger, m.state.FlatText, m.state.LastExcerpt),
	)
}

func (m *model) copyPost() {
	if err := export.CopyToClipboard(m.post); err != nil {
		if errors.Is(err, export.ErrNothingToExport) {
			m.infoMessage = "Draft a post with g before copying."
		} else {
			m.errorMessage = fmt.Sprintf("clipboard error: %v", err)
		}
		return
	}
	m.errorMessage = ""
	m.infoMessage = "Raw markdown copied to the clipboard."
}

func (m *model) savePost() {
	path, err := export.WriteMarkdownFile(m.config.ExportDir, m.post)
	if err != nil {
		if errors.Is(err, export.ErrNothingToExport) {
			m.infoMessage = "Draft a post with g before saving."
		} else {
			m.errorMessage = fmt.Sprintf("save error: %v", err)
		}
		return
	}
	m.errorMessage = ""
	m.infoMessage = fmt.Sprintf("Saved %s.", path)
}

func (m *model) resetSession() {
	m.dispatch(editor.Reset{})
	m.caret = 0
	m.post = ""
	m.generating = false
	m.genSeq++
	m.mode = modeInsert
	m.selectionActive = false
	m.warnMessage = ""
	m.errorMessage = ""
	m.infoMessage = "Session cleared. Type or paste new text."
	m.resultView.SetContent("")
	m.editView.SetYOffset(0)
	m.resize()
}

// dispatch routes every state transition through the reducer and reacts to
// the truncation flag: the warning shows for the offending edit and clears
// on the next clean one.
func (m *model) dispatch(ev editor.Event) {
	m.state = editor.Apply(m.state, ev)
	if m.state.Truncated {
		m.warnMessage = fmt.Sprintf("Document is capped at %d characters; extra input was dropped.", editor.MaxTextRunes)
	} else if _, isEdit := ev.(editor.Edit); isEdit {
		m.warnMessage = ""
	}
	m.clampCaret()
	m.markEditDirty()
}

func (m *model) insertText(text string) {
	runes := []rune(m.state.FlatText)
	at := m.caret
	next := make([]rune, 0, len(runes)+utf8.RuneCountInString(text))
	next = append(next, runes[:at]...)
	next = append(next, []rune(text)...)
	next = append(next, runes[at:]...)
	m.dispatch(editor.Edit{NewText: string(next)})
	m.caret = at + utf8.RuneCountInString(text)
	m.clampCaret()
	m.markEditDirty()
}

func (m *model) deleteBack() {
	if m.caret == 0 {
		return
	}
	runes := []rune(m.state.FlatText)
	next := append(append([]rune{}, runes[:m.caret-1]...), runes[m.caret:]...)
	m.dispatch(editor.Edit{NewText: string(next)})
	m.caret--
	m.clampCaret()
}

func (m *model) deleteForward() {
	runes := []rune(m.state.FlatText)
	if m.caret >= len(runes) {
		return
	}
	next := append(append([]rune{}, runes[:m.caret]...), runes[m.caret+1:]...)
	m.dispatch(editor.Edit{NewText: string(next)})
}

func (m *model) moveCaret(delta int) {
	m.caret += delta
	m.clampCaret()
	m.markEditDirty()
}

// moveCaretVertically keeps the column where possible, clamping to the
// target line's length.
func (m *model) moveCaretVertically(delta int) {
	runes := []rune(m.state.FlatText)
	starts := lineStarts(runes)
	line := lineIndexOf(starts, m.caret)
	col := m.caret - starts[line]
	target := line + delta
	if target < 0 || target >= len(starts) {
		return
	}
	end := len(runes)
	if target+1 < len(starts) {
		end = starts[target+1] - 1
	}
	m.caret = starts[target] + col
	if m.caret > end {
		m.caret = end
	}
	m.markEditDirty()
}

func (m *model) moveCaretToLineEdge(dir int) {
	runes := []rune(m.state.FlatText)
	starts := lineStarts(runes)
	line := lineIndexOf(starts, m.caret)
	if dir < 0 {
		m.caret = starts[line]
	} else {
		m.caret = len(runes)
		if line+1 < len(starts) {
			m.caret = starts[line+1] - 1
		}
	}
	m.markEditDirty()
}

func (m *model) clampCaret() {
	limit := utf8.RuneCountInString(m.state.FlatText)
	if m.caret > limit {
		m.caret = limit
	}
	if m.caret < 0 {
		m.caret = 0
	}
}

func lineStarts(runes []rune) []int {
	starts := []int{0}
	for i, r := range runes {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func lineIndexOf(starts []int, caret int) int {
	line := 0
	for i, s := range starts {
		if s > caret {
			break
		}
		line = i
	}
	return line
}

func clipForStatus(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	runes := []rune(text)
	if len(runes) <= 40 {
		return text
	}
	return string(runes[:37]) + "…"
}
