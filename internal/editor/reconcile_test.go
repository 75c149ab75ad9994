package editor

import (
	"reflect"
	"strings"
	"testing"
)

func TestApplyEditClearsRangesPastSlack(t *testing.T) {
	s := State{
		FlatText: "twenty characters!!!",
		Ranges:   []Range{{Start: 0, End: 6, Text: "twenty"}},
	}

	grown := s.FlatText + strings.Repeat("x", 11)
	next := Apply(s, Edit{NewText: grown})
	if len(next.Ranges) != 0 {
		t.Fatalf("delta > slack should clear highlights, got %#v", next.Ranges)
	}
	if next.FlatText != grown {
		t.Fatal("new text not published")
	}

	shrunk := s.FlatText[:5]
	next = Apply(s, Edit{NewText: shrunk})
	if len(next.Ranges) != 0 {
		t.Fatalf("large deletion should clear highlights, got %#v", next.Ranges)
	}
}

func TestApplyEditKeepsRangesWithinSlack(t *testing.T) {
	s := State{
		FlatText: "twenty characters!!!",
		Ranges:   []Range{{Start: 0, End: 6, Text: "twenty"}},
	}
	next := Apply(s, Edit{NewText: s.FlatText + "0123456789"})
	if !reflect.DeepEqual(next.Ranges, s.Ranges) {
		t.Fatalf("small edit should retain highlights, got %#v", next.Ranges)
	}
}

func TestApplyEditClampsSurvivingRanges(t *testing.T) {
	s := State{
		FlatText: "abcdefghij",
		Ranges: []Range{
			{Start: 0, End: 4, Text: "abcd"},
			{Start: 6, End: 10, Text: "ghij"},
		},
	}
	// Three runes shorter: inside the slack, so ranges stay, but the tail
	// range now reaches past the document.
	next := Apply(s, Edit{NewText: "abcdefg"})
	want := []Range{
		{Start: 0, End: 4, Text: "abcd"},
		{Start: 6, End: 7, Text: "ghij"},
	}
	if !reflect.DeepEqual(next.Ranges, want) {
		t.Fatalf("clamp mismatch: got %#v want %#v", next.Ranges, want)
	}
}

func TestApplyEditDropsFullyStaleRanges(t *testing.T) {
	s := State{
		FlatText: "abcdefghijkl",
		Ranges:   []Range{{Start: 8, End: 12, Text: "ijkl"}},
	}
	next := Apply(s, Edit{NewText: "abcdef"})
	if len(next.Ranges) != 0 {
		t.Fatalf("range past the new end should be dropped, got %#v", next.Ranges)
	}
}

func TestApplyEditTruncatesAtCap(t *testing.T) {
	overflow := strings.Repeat("a", MaxTextRunes+25)
	next := Apply(State{}, Edit{NewText: overflow})
	if got := len([]rune(next.FlatText)); got != MaxTextRunes {
		t.Fatalf("published length %d, want exactly %d", got, MaxTextRunes)
	}
	if !next.Truncated {
		t.Fatal("overflowing edit must flag truncation")
	}

	// The flag describes the transition, not the state: a following edit
	// under the cap clears it, so the warning fires once per offending edit.
	next = Apply(next, Edit{NewText: next.FlatText[:100]})
	if next.Truncated {
		t.Fatal("truncation flag leaked into a clean edit")
	}
}

func TestApplyEditUnderCapDoesNotFlag(t *testing.T) {
	next := Apply(State{}, Edit{NewText: strings.Repeat("b", MaxTextRunes)})
	if next.Truncated {
		t.Fatal("exact-cap edit should not flag truncation")
	}
}

func TestApplyToggleRecordsLatestExcerptOnly(t *testing.T) {
	s := State{FlatText: "alpha beta gamma"}

	s = Apply(s, Toggle{Selection: Span{Start: 0, End: 5}})
	if s.LastExcerpt != "alpha" {
		t.Fatalf("excerpt after first toggle: %q", s.LastExcerpt)
	}
	s = Apply(s, Toggle{Selection: Span{Start: 6, End: 10}})
	if s.LastExcerpt != "beta" {
		t.Fatalf("excerpt should follow the latest toggle, got %q", s.LastExcerpt)
	}
	if len(s.Ranges) != 2 {
		t.Fatalf("expected two highlights, got %#v", s.Ranges)
	}

	// Toggling "alpha" off still reports "alpha" downstream.
	s = Apply(s, Toggle{Selection: Span{Start: 0, End: 5}})
	if s.LastExcerpt != "alpha" {
		t.Fatalf("toggle-off should report its substring, got %q", s.LastExcerpt)
	}
	if len(s.Ranges) != 1 {
		t.Fatalf("expected one highlight after toggle-off, got %#v", s.Ranges)
	}
}

func TestApplyToggleBlankSelectionKeepsExcerpt(t *testing.T) {
	s := State{FlatText: "alpha beta", LastExcerpt: "alpha"}
	next := Apply(s, Toggle{Selection: Span{Start: 5, End: 6}})
	if next.LastExcerpt != "alpha" {
		t.Fatalf("no-op toggle must not clobber the excerpt, got %q", next.LastExcerpt)
	}
	if !reflect.DeepEqual(next.Ranges, s.Ranges) {
		t.Fatal("no-op toggle changed the range set")
	}
}

func TestApplyResetReturnsZeroState(t *testing.T) {
	s := State{
		FlatText:    "text",
		Ranges:      []Range{{Start: 0, End: 4, Text: "text"}},
		LastExcerpt: "text",
		Truncated:   true,
	}
	if next := Apply(s, Reset{}); !reflect.DeepEqual(next, State{}) {
		t.Fatalf("reset left residue: %#v", next)
	}
}

func TestApplyEndToEndTypeHighlightRetoggle(t *testing.T) {
	s := State{}
	s = Apply(s, Edit{NewText: "Alice said the project will ship in March."})

	start := strings.Index(s.FlatText, "ship in March")
	end := start + len("ship in March")
	s = Apply(s, Toggle{Selection: Span{Start: start, End: end}})
	want := []Range{{Start: start, End: end, Text: "ship in March"}}
	if !reflect.DeepEqual(s.Ranges, want) {
		t.Fatalf("after first toggle: got %#v want %#v", s.Ranges, want)
	}

	s = Apply(s, Toggle{Selection: Span{Start: start, End: end}})
	if len(s.Ranges) != 0 {
		t.Fatalf("identical re-toggle should empty the set, got %#v", s.Ranges)
	}
}
