// Package glyph turns raw positioned character records extracted from a PDF
// into the flat, page-ordered stream the reference tokenizer consumes, and
// flags superscript footnote digits so they can never join a verse number.
package glyph

import (
	"unicode"

	"github.com/ebiblegr/verselink/internal/geom"
)

// Kind discriminates stream records.
type Kind uint8

const (
	// Text is a visible character with geometry.
	Text Kind = iota
	// LineBreak marks the boundary between two assembled lines.
	LineBreak
	// PageBreak marks the boundary between two pages.
	PageBreak
)

// Char is one record of the normalized glyph stream. Marker records carry
// only Kind and Page; Text records are immutable once produced except for
// the Super flag, which the superscript filter sets in a dedicated pre-pass.
type Char struct {
	Kind     Kind
	Rune     rune
	Page     int
	Rect     geom.Rect
	Baseline float64 // baseline y in PDF user space
	Size     float64 // effective font size in points
	Super    bool    // superscript footnote digit; excluded from numbers and links
}

// IsMarker reports whether c is a line or page break record.
func (c Char) IsMarker() bool { return c.Kind != Text }

// IsSpace reports whether c is a whitespace character record.
func (c Char) IsSpace() bool { return c.Kind == Text && unicode.IsSpace(c.Rune) }

// IsDigit reports whether c carries a decimal digit, including the
// inherently superscript forms.
func (c Char) IsDigit() bool {
	if c.Kind != Text {
		return false
	}
	if _, ok := superDigits[c.Rune]; ok {
		return true
	}
	return c.Rune >= '0' && c.Rune <= '9'
}

// superDigits maps the inherently superscript digit codepoints to their
// plain forms. Footnote indices in the lexicon are typeset with these, e.g.
// 6:14³⁵.
var superDigits = map[rune]rune{
	'¹': '1', // ¹
	'²': '2', // ²
	'³': '3', // ³
	'⁰': '0', // ⁰
	'⁴': '4', // ⁴
	'⁵': '5', // ⁵
	'⁶': '6', // ⁶
	'⁷': '7', // ⁷
	'⁸': '8', // ⁸
	'⁹': '9', // ⁹
}

// IsSuperDigitRune reports whether r is an inherently superscript digit
// codepoint.
func IsSuperDigitRune(r rune) bool {
	_, ok := superDigits[r]
	return ok
}
