package editor

import (
	"strings"
	"unicode/utf8"
)

// The rendered pane interleaves plain text with ANSI style sequences, which
// fragments the string the same way highlight markers fragment a rendered
// text tree: byte positions and logical rune offsets diverge. Both
// translation directions below ride a single linear scanner so the two
// mappings cannot drift apart. The flat document, never the markup
// structure, is the authority for offsets.

// walkMarkup visits every visible rune of markup in order, reporting its
// starting byte index and its plain rune offset. ANSI escape sequences are
// skipped and contribute no offset. The walk stops when visit returns false.
func walkMarkup(markup string, visit func(byteIdx, offset int, r rune) bool) {
	offset := 0
	for i := 0; i < len(markup); {
		if n := escapeLen(markup[i:]); n > 0 {
			i += n
			continue
		}
		r, size := utf8.DecodeRuneInString(markup[i:])
		if !visit(i, offset, r) {
			return
		}
		offset++
		i += size
	}
}

// escapeLen returns the byte length of the ANSI escape sequence starting at
// the head of s, or 0 when s does not start with one. CSI sequences run
// until their final byte in 0x40–0x7e; OSC sequences until BEL or ST.
func escapeLen(s string) int {
	if len(s) == 0 || s[0] != 0x1b {
		return 0
	}
	if len(s) == 1 {
		return 1
	}
	switch s[1] {
	case '[':
		for i := 2; i < len(s); i++ {
			if s[i] >= 0x40 && s[i] <= 0x7e {
				return i + 1
			}
		}
		return len(s)
	case ']':
		for i := 2; i < len(s); i++ {
			if s[i] == 0x07 {
				return i + 1
			}
			if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
		}
		return len(s)
	default:
		return 2
	}
}

// PlainOffset maps a byte index inside markup to the count of visible runes
// preceding it. Byte indices that land inside an escape sequence resolve to
// the offset of the surrounding text position.
func PlainOffset(markup string, byteIdx int) int {
	result := 0
	walkMarkup(markup, func(idx, offset int, r rune) bool {
		if idx >= byteIdx {
			return false
		}
		result = offset + 1
		return true
	})
	return result
}

// MarkupIndex maps a plain rune offset back to a byte index inside markup.
// Offsets landing on a boundary between fragments resolve to the earlier
// fragment: the position directly after the preceding visible rune, before
// any escape sequences that follow it. Offsets past the visible length clamp
// to the position after the last visible rune. ok is false when markup holds
// no visible text at all.
func MarkupIndex(markup string, offset int) (idx int, ok bool) {
	if offset <= 0 {
		if VisibleLength(markup) == 0 {
			return 0, false
		}
		return 0, true
	}
	end := -1
	walkMarkup(markup, func(byteIdx, plain int, r rune) bool {
		end = byteIdx + utf8.RuneLen(r)
		return plain+1 < offset
	})
	if end < 0 {
		return 0, false
	}
	return end, true
}

// VisibleRuneAt returns the byte bounds of the visible rune at the given
// plain offset. Escape sequences adjacent to the rune fall outside the
// bounds, so replacing markup[start:end] restyles the rune without damaging
// the surrounding sequences. ok is false when offset is past the visible
// text.
func VisibleRuneAt(markup string, offset int) (start, end int, ok bool) {
	if offset < 0 {
		return 0, 0, false
	}
	walkMarkup(markup, func(byteIdx, plain int, r rune) bool {
		if plain == offset {
			start, end, ok = byteIdx, byteIdx+utf8.RuneLen(r), true
			return false
		}
		return true
	})
	return start, end, ok
}

// VisibleLength counts the visible runes of markup.
func VisibleLength(markup string) int {
	count := 0
	walkMarkup(markup, func(_, _ int, _ rune) bool {
		count++
		return true
	})
	return count
}

// Strip removes all escape sequences from markup, leaving the plain text the
// offsets describe.
func Strip(markup string) string {
	var b strings.Builder
	b.Grow(len(markup))
	walkMarkup(markup, func(_, _ int, r rune) bool {
		b.WriteRune(r)
		return true
	})
	return b.String()
}
