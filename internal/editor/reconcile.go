package editor

const (
	// MaxTextRunes caps the flat document. Edits past the cap truncate
	// synchronously so the pane never holds more than this.
	MaxTextRunes = 50_000

	// editSlack is the length delta, in runes, past which an edit is assumed
	// to have invalidated every stored offset.
	editSlack = 10
)

// State is the whole editing model: the flat document, the highlight set,
// and the excerpt reported by the most recent toggle. It is replaced
// wholesale by Apply; nothing mutates it in place.
type State struct {
	FlatText    string
	Ranges      []Range
	LastExcerpt string

	// Truncated flags the transition that just ran, not a sticky condition:
	// it is set exactly when the triggering edit overflowed the cap, so the
	// caller surfaces one warning per offending edit.
	Truncated bool
}

// Event is a state transition request. Exactly three exist: Edit, Toggle,
// and Reset.
type Event interface{ isEvent() }

// Edit replaces the flat document with the text read back from the editable
// pane after a keystroke.
type Edit struct{ NewText string }

// Toggle requests the highlight toggle over the active selection.
type Toggle struct{ Selection Span }

// Reset discards the session.
type Reset struct{}

func (Edit) isEvent()   {}
func (Toggle) isEvent() {}
func (Reset) isEvent()  {}

// Apply is the single transition function: ordered, explicit rules instead
// of interleaved side effects. Unknown events return the state unchanged.
func Apply(s State, ev Event) State {
	switch ev := ev.(type) {
	case Edit:
		return applyEdit(s, ev.NewText)
	case Toggle:
		return applyToggle(s, ev.Selection)
	case Reset:
		return State{}
	default:
		return s
	}
}

func applyEdit(s State, candidate string) State {
	next := s
	next.Truncated = false

	runes := []rune(candidate)
	if len(runes) > MaxTextRunes {
		runes = runes[:MaxTextRunes]
		candidate = string(runes)
		next.Truncated = true
	}

	prevLen := runeLen(s.FlatText)
	delta := len(runes) - prevLen
	if delta < 0 {
		delta = -delta
	}
	if delta > editSlack {
		// Offsets are stale past the slack threshold; drop every highlight.
		next.Ranges = nil
	} else {
		next.Ranges = clampRanges(s.Ranges, len(runes))
	}
	next.FlatText = candidate
	return next
}

// clampRanges keeps small-edit highlights renderable against the new length.
// Offsets are not re-anchored: slightly stale positions are an accepted
// approximation for edits inside the slack.
func clampRanges(ranges []Range, limit int) []Range {
	if len(ranges) == 0 {
		return nil
	}
	kept := make([]Range, 0, len(ranges))
	for _, r := range ranges {
		if r.Start >= limit {
			continue
		}
		if r.End > limit {
			r.End = limit
		}
		if r.Start >= r.End {
			continue
		}
		kept = append(kept, r)
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

func applyToggle(s State, sel Span) State {
	next := s
	next.Truncated = false
	ranges, excerpt, changed := toggle(s.Ranges, s.FlatText, sel)
	if !changed {
		return next
	}
	next.Ranges = ranges
	// Downstream generation sees only the most recent toggle's substring,
	// not the union of highlights, and toggle-off reports its substring too.
	next.LastExcerpt = excerpt
	return next
}
