package editor

import "testing"

const styledMarkup = "he\x1b[7mllo wo\x1b[0mrld"

func TestVisibleLengthSkipsEscapes(t *testing.T) {
	cases := []struct {
		name   string
		markup string
		want   int
	}{
		{name: "plain", markup: "hello", want: 5},
		{name: "styled", markup: styledMarkup, want: 11},
		{name: "escapes only", markup: "\x1b[1m\x1b[0m", want: 0},
		{name: "empty", markup: "", want: 0},
		{name: "osc title", markup: "\x1b]0;title\x07abc", want: 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := VisibleLength(tc.markup); got != tc.want {
				t.Fatalf("VisibleLength(%q) = %d, want %d", tc.markup, got, tc.want)
			}
		})
	}
}

func TestStripRemovesEscapes(t *testing.T) {
	if got := Strip(styledMarkup); got != "hello world" {
		t.Fatalf("Strip mismatch: got %q", got)
	}
}

func TestMarkupIndexPrefersEarlierFragment(t *testing.T) {
	// Offset 2 sits on the boundary between "he" and the styled fragment.
	// The earlier fragment wins: the byte position before the escape.
	idx, ok := MarkupIndex(styledMarkup, 2)
	if !ok {
		t.Fatal("expected a position for offset 2")
	}
	if idx != 2 {
		t.Fatalf("boundary should resolve before the escape, got byte %d", idx)
	}
}

func TestMarkupIndexRoundTripsThroughPlainOffset(t *testing.T) {
	visible := VisibleLength(styledMarkup)
	for offset := 0; offset <= visible; offset++ {
		idx, ok := MarkupIndex(styledMarkup, offset)
		if !ok {
			t.Fatalf("offset %d: no position", offset)
		}
		if got := PlainOffset(styledMarkup, idx); got != offset {
			t.Fatalf("offset %d: round trip via byte %d yielded %d", offset, idx, got)
		}
	}
}

func TestMarkupIndexClampsPastEnd(t *testing.T) {
	idx, ok := MarkupIndex(styledMarkup, 99)
	if !ok {
		t.Fatal("expected clamped position")
	}
	if got := PlainOffset(styledMarkup, idx); got != 11 {
		t.Fatalf("clamp should land after the last rune, got offset %d", got)
	}
}

func TestMarkupIndexEmptyPaneIsNoOp(t *testing.T) {
	if _, ok := MarkupIndex("\x1b[1m\x1b[0m", 0); ok {
		t.Fatal("pane without text should report no position")
	}
	if _, ok := MarkupIndex("", 3); ok {
		t.Fatal("empty pane should report no position")
	}
}

func TestMarkupIndexCollapsedCaret(t *testing.T) {
	// Collapsed selections (start == end) must still resolve.
	idx, ok := MarkupIndex("ab", 1)
	if !ok || idx != 1 {
		t.Fatalf("collapsed caret at 1: got (%d, %v)", idx, ok)
	}
}

func TestPlainOffsetInsideEscapeResolvesToSurroundingText(t *testing.T) {
	// Byte 4 falls inside the \x1b[7m sequence that follows "he".
	if got := PlainOffset(styledMarkup, 4); got != 2 {
		t.Fatalf("mid-escape byte should map to offset 2, got %d", got)
	}
}

func TestWalkHandlesMultibyteRunes(t *testing.T) {
	markup := "\x1b[1mhé\x1b[0mllo"
	if got := VisibleLength(markup); got != 5 {
		t.Fatalf("VisibleLength = %d, want 5", got)
	}
	idx, ok := MarkupIndex(markup, 2)
	if !ok {
		t.Fatal("expected position for offset 2")
	}
	if got := PlainOffset(markup, idx); got != 2 {
		t.Fatalf("multibyte round trip broken: got %d", got)
	}
}
