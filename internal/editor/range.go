package editor

import "strings"

// Range marks a user-selected span of the flat document, half-open
// [Start, End) in rune offsets. Text caches the substring captured when the
// range was created; the live document stays the authority for offsets, so
// Text may drift after small edits until the range is cleared.
type Range struct {
	Start int
	End   int
	Text  string
}

// Span is a transient selection in flat-document rune offsets. It exists for
// the duration of one interaction and is discarded after use.
type Span struct {
	Start int
	End   int
}

// Normalized returns the span with Start <= End. Selections made backwards
// (cursor before anchor) collapse to the same span as their forward twin.
func (s Span) Normalized() Span {
	if s.Start > s.End {
		return Span{Start: s.End, End: s.Start}
	}
	return s
}

// IsCollapsed reports whether the span selects no characters.
func (s Span) IsCollapsed() bool { return s.Start == s.End }

// overlaps applies the inclusive overlap test between an existing range
// [a,b) and a selection [s,e): the selection start falls inside [a,b), the
// selection end falls inside (a,b], or the selection contains the range.
func overlaps(r Range, sel Span) bool {
	if sel.Start >= r.Start && sel.Start < r.End {
		return true
	}
	if sel.End > r.Start && sel.End <= r.End {
		return true
	}
	return sel.Start <= r.Start && sel.End >= r.End
}

// toggle either removes the first stored range overlapping the selection
// (toggle-off: overlap cancels, never merges) or appends a new range
// captured live from flat. Collapsed or whitespace-only selections are a
// deliberate no-op, not an error. The returned excerpt is the raw selected
// substring for every effective toggle, on and off alike.
func toggle(ranges []Range, flat string, sel Span) (next []Range, excerpt string, changed bool) {
	sel = sel.Normalized().clamp(runeLen(flat))
	if sel.IsCollapsed() {
		return ranges, "", false
	}
	excerpt = substring(flat, sel.Start, sel.End)
	if strings.TrimSpace(excerpt) == "" {
		return ranges, "", false
	}
	for i, r := range ranges {
		if overlaps(r, sel) {
			next = append(next, ranges[:i]...)
			next = append(next, ranges[i+1:]...)
			return next, excerpt, true
		}
	}
	next = append(append(next, ranges...), Range{Start: sel.Start, End: sel.End, Text: excerpt})
	return next, excerpt, true
}

func (s Span) clamp(limit int) Span {
	if s.Start < 0 {
		s.Start = 0
	}
	if s.End > limit {
		s.End = limit
	}
	if s.Start > s.End {
		s.Start = s.End
	}
	return s
}

func runeLen(text string) int {
	return len([]rune(text))
}

// substring slices flat by rune offsets, clamping out-of-bounds requests.
func substring(flat string, start, end int) string {
	runes := []rune(flat)
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}
