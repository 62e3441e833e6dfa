// Package cite recognizes biblical citations in a normalized glyph stream.
// The tokenizer groups characters into typed lexical units; the resolver
// walks those tokens once, carrying book/chapter context forward across
// line and page boundaries, and emits fully resolved references bound to
// the geometry to hyperlink.
package cite

import (
	"strconv"
	"unicode"

	"github.com/ebiblegr/verselink/internal/geom"
	"github.com/ebiblegr/verselink/internal/glyph"
	"github.com/ebiblegr/verselink/internal/scripture"
)

// TokenKind classifies lexical units.
type TokenKind uint8

const (
	// KindOther is any run downstream logic treats purely as a separator.
	KindOther TokenKind = iota
	// KindBookAbbrev is a letter run (optionally with a leading 1-3) that
	// matched the book table; the token carries the canonical code.
	KindBookAbbrev
	// KindNumber is a run of plain digits; the token carries the value.
	KindNumber
	// KindColon joins a chapter to a verse.
	KindColon
	// KindComma and KindSemicolon are the citation-list separators that
	// allow a following bare verse number to inherit context.
	KindComma
	KindSemicolon
	// KindRangeDash is a dash strictly between two digits.
	KindRangeDash
	// KindVerseMarker is the "v."/"vv." prefix announcing a verse number.
	KindVerseMarker
	// KindLineBreak and KindPageBreak pass the stream markers through.
	KindLineBreak
	KindPageBreak
)

// String names the kind for logs and test failures.
func (k TokenKind) String() string {
	switch k {
	case KindBookAbbrev:
		return "book"
	case KindNumber:
		return "number"
	case KindColon:
		return "colon"
	case KindComma:
		return "comma"
	case KindSemicolon:
		return "semicolon"
	case KindRangeDash:
		return "dash"
	case KindVerseMarker:
		return "versemarker"
	case KindLineBreak:
		return "linebreak"
	case KindPageBreak:
		return "pagebreak"
	default:
		return "other"
	}
}

// Token is one lexical unit with the union geometry of its characters.
// Superscript-flagged characters never contribute to a token: they split
// runs but add no text and no geometry.
type Token struct {
	Kind  TokenKind
	Text  string
	Value int    // parsed value for KindNumber
	Code  string // canonical book code for KindBookAbbrev
	Page  int
	Rect  geom.Rect
}

// Tokenize scans the normalized stream left to right, producing maximal
// runs. Whitespace emits no token and only separates; superscript digits
// emit no token, terminate any run in progress and never merge with either
// neighbor.
func Tokenize(stream []glyph.Char) []Token {
	var toks []Token
	i := 0
	for i < len(stream) {
		c := stream[i]
		switch {
		case c.Kind == glyph.LineBreak:
			toks = append(toks, Token{Kind: KindLineBreak, Page: c.Page})
			i++
		case c.Kind == glyph.PageBreak:
			toks = append(toks, Token{Kind: KindPageBreak, Page: c.Page})
			i++
		case c.Super:
			i++
		case c.IsSpace():
			i++
		case c.Rune == '[' || c.Rune == ']':
			// Brackets wrap apparatus numbers in the lexicon; they are
			// dropped so the number inside stays a citation candidate.
			i++
		case isPlainDigit(c):
			tok, next := scanNumeric(stream, i)
			toks = append(toks, tok)
			i = next
		case unicode.IsLetter(c.Rune):
			tok, next := scanLetters(stream, i)
			toks = append(toks, tok)
			i = next
		case c.Rune == ':':
			toks = append(toks, charToken(KindColon, c))
			i++
		case c.Rune == ',':
			toks = append(toks, charToken(KindComma, c))
			i++
		case c.Rune == ';':
			toks = append(toks, charToken(KindSemicolon, c))
			i++
		case isDash(c.Rune):
			kind := KindOther
			if betweenDigits(stream, i) {
				kind = KindRangeDash
			}
			toks = append(toks, charToken(kind, c))
			i++
		default:
			tok, next := scanOther(stream, i)
			toks = append(toks, tok)
			i = next
		}
	}
	return toks
}

func charToken(kind TokenKind, c glyph.Char) Token {
	return Token{Kind: kind, Text: string(c.Rune), Page: c.Page, Rect: c.Rect}
}

// isPlainDigit reports a linkable digit: ASCII, not superscript-flagged.
func isPlainDigit(c glyph.Char) bool {
	return c.Kind == glyph.Text && !c.Super && c.Rune >= '0' && c.Rune <= '9'
}

func isDash(r rune) bool {
	return r == '-' || r == '–' || r == '—'
}

// betweenDigits reports whether the dash at position i sits immediately
// between two plain digits. Superscript characters are transparent for the
// adjacency test; anything else, including whitespace, breaks it.
func betweenDigits(stream []glyph.Char, i int) bool {
	j := i - 1
	for j >= 0 && stream[j].Kind == glyph.Text && stream[j].Super {
		j--
	}
	if j < 0 || !isPlainDigit(stream[j]) {
		return false
	}
	k := i + 1
	for k < len(stream) && stream[k].Kind == glyph.Text && stream[k].Super {
		k++
	}
	return k < len(stream) && isPlainDigit(stream[k])
}

// scanNumeric consumes a maximal plain digit run. A single leading 1-3
// directly followed by letters is first tried as a numbered book
// abbreviation ("1Co", "2Th", "3Jn"); otherwise the digits form a Number.
// Runs too long for any chapter or verse fall through to Other.
func scanNumeric(stream []glyph.Char, start int) (Token, int) {
	end := start
	for end < len(stream) && isPlainDigit(stream[end]) {
		end++
	}
	digits := collectText(stream[start:end])

	if end-start == 1 && stream[start].Rune >= '1' && stream[start].Rune <= '3' &&
		end < len(stream) && !stream[end].Super && unicode.IsLetter(stream[end].Rune) {
		letterEnd := end
		for letterEnd < len(stream) && stream[letterEnd].Kind == glyph.Text &&
			!stream[letterEnd].Super && unicode.IsLetter(stream[letterEnd].Rune) {
			letterEnd++
		}
		text := digits + collectText(stream[end:letterEnd])
		if code, ok := scripture.LookupAbbrev(text); ok {
			return Token{
				Kind: KindBookAbbrev,
				Text: text,
				Code: code,
				Page: stream[start].Page,
				Rect: unionRect(stream[start:letterEnd]),
			}, letterEnd
		}
	}

	tok := Token{
		Kind: KindOther,
		Text: digits,
		Page: stream[start].Page,
		Rect: unionRect(stream[start:end]),
	}
	if len(digits) <= 3 {
		tok.Kind = KindNumber
		tok.Value, _ = strconv.Atoi(digits)
	}
	return tok, end
}

// scanLetters consumes a maximal letter run. Table hits become BookAbbrev;
// "v"/"vv" (with an optionally attached period) becomes VerseMarker; the
// rest is Other.
func scanLetters(stream []glyph.Char, start int) (Token, int) {
	end := start
	for end < len(stream) && stream[end].Kind == glyph.Text &&
		!stream[end].Super && unicode.IsLetter(stream[end].Rune) {
		end++
	}
	text := collectText(stream[start:end])
	tok := Token{
		Kind: KindOther,
		Text: text,
		Page: stream[start].Page,
		Rect: unionRect(stream[start:end]),
	}

	if code, ok := scripture.LookupAbbrev(text); ok {
		tok.Kind = KindBookAbbrev
		tok.Code = code
		return tok, end
	}

	if isVerseMarkerWord(text) {
		tok.Kind = KindVerseMarker
		if end < len(stream) && stream[end].Kind == glyph.Text && stream[end].Rune == '.' {
			tok.Text += "."
			tok.Rect = tok.Rect.Union(stream[end].Rect)
			end++
		}
		return tok, end
	}
	return tok, end
}

func isVerseMarkerWord(s string) bool {
	switch s {
	case "v", "V", "vv", "Vv", "VV":
		return true
	}
	return false
}

// scanOther consumes a maximal run of characters with no lexical role.
func scanOther(stream []glyph.Char, start int) (Token, int) {
	end := start
	for end < len(stream) {
		c := stream[end]
		if c.Kind != glyph.Text || c.Super || c.IsSpace() ||
			unicode.IsLetter(c.Rune) || isPlainDigit(c) ||
			c.Rune == ':' || c.Rune == ',' || c.Rune == ';' ||
			c.Rune == '[' || c.Rune == ']' || isDash(c.Rune) {
			break
		}
		end++
	}
	return Token{
		Kind: KindOther,
		Text: collectText(stream[start:end]),
		Page: stream[start].Page,
		Rect: unionRect(stream[start:end]),
	}, end
}

func collectText(chars []glyph.Char) string {
	runes := make([]rune, 0, len(chars))
	for _, c := range chars {
		runes = append(runes, c.Rune)
	}
	return string(runes)
}

func unionRect(chars []glyph.Char) geom.Rect {
	var r geom.Rect
	for _, c := range chars {
		r = r.Union(c.Rect)
	}
	return r
}
