package glyph

import "testing"

func streamFrom(pages ...[]Raw) []Char {
	raw := make([]RawPage, len(pages))
	for i, p := range pages {
		raw[i] = RawPage{Number: i + 1, Chars: p}
	}
	return Normalize(raw, NormalizeConfig{})
}

func flaggedRunes(stream []Char) string {
	var out []rune
	for _, c := range stream {
		if c.Super {
			out = append(out, c.Rune)
		}
	}
	return string(out)
}

func TestMarkSuperscriptsBySize(t *testing.T) {
	page := row(700, 10, "6:14")
	page = append(page,
		Raw{Text: "3", X: 40, Y: 703, W: 3, Size: 6.5},
		Raw{Text: "5", X: 43, Y: 703, W: 3, Size: 6.5},
	)
	stream := streamFrom(page)

	n := MarkSuperscripts(stream, SuperscriptConfig{})
	if n != 2 {
		t.Fatalf("expected 2 flagged digits, got %d", n)
	}
	if got := flaggedRunes(stream); got != "35" {
		t.Errorf("expected flagged runes 35, got %q", got)
	}
}

func TestMarkSuperscriptsByRiseAlone(t *testing.T) {
	// Same size as the body but raised well above the baseline.
	page := row(700, 10, "6:14")
	page = append(page, Raw{Text: "7", X: 40, Y: 704, W: 5, Size: 10})
	stream := streamFrom(page)

	if n := MarkSuperscripts(stream, SuperscriptConfig{}); n != 1 {
		t.Fatalf("expected 1 flagged digit, got %d", n)
	}
	if got := flaggedRunes(stream); got != "7" {
		t.Errorf("expected flagged rune 7, got %q", got)
	}
}

func TestMarkSuperscriptsUnicodeCodepoints(t *testing.T) {
	page := row(700, 10, "6:14")
	// Inherently superscript digits at body size and baseline.
	page = append(page,
		Raw{Text: "³", X: 40, Y: 700, W: 5, Size: 10},
		Raw{Text: "⁵", X: 45, Y: 700, W: 5, Size: 10},
	)
	stream := streamFrom(page)

	if n := MarkSuperscripts(stream, SuperscriptConfig{}); n != 2 {
		t.Fatalf("expected 2 flagged digits, got %d", n)
	}
	if got := flaggedRunes(stream); got != "³⁵" {
		t.Errorf("expected codepoint digits flagged, got %q", got)
	}
}

func TestMarkSuperscriptsNeverFlagsLetters(t *testing.T) {
	// A raised small letter (e.g. an ordinal marker) is not a footnote digit.
	page := row(700, 10, "Lk 6:14")
	page = append(page, Raw{Text: "a", X: 60, Y: 703, W: 3, Size: 6})
	stream := streamFrom(page)

	if n := MarkSuperscripts(stream, SuperscriptConfig{}); n != 0 {
		t.Errorf("expected no flags, got %d", n)
	}
}

func TestMarkSuperscriptsBodyDigitsUntouched(t *testing.T) {
	stream := streamFrom(row(700, 10, "Mt 7:3-5 and 6:14"))

	if n := MarkSuperscripts(stream, SuperscriptConfig{}); n != 0 {
		t.Errorf("expected no flags on body digits, got %d", n)
	}
}

func TestMarkSuperscriptsScopedPerLine(t *testing.T) {
	// A small-print line must not be judged against the body line above it.
	big := row(700, 12, "Lk 6:14")
	small := row(686, 8, "see note 12")
	stream := streamFrom(append(big, small...))

	if n := MarkSuperscripts(stream, SuperscriptConfig{}); n != 0 {
		t.Errorf("expected small-print digits to stay unflagged, got %d flags", n)
	}
}
