package cite

import (
	"github.com/ebiblegr/verselink/internal/geom"
	"github.com/ebiblegr/verselink/internal/scripture"
)

// Context is the book/chapter state carried through one document traversal.
// Exactly one instance is live per traversal; the resolver owns and mutates
// it in place. A zero Context means no book has been seen yet.
type Context struct {
	Book    string // canonical code, "" when unset
	Chapter int    // 0 when unset
}

// HasChapter reports whether both book and chapter are established, the
// precondition for resolving a bare verse number.
func (c Context) HasChapter() bool { return c.Book != "" && c.Chapter > 0 }

// Match is a fully resolved reference bound to the geometry to hyperlink.
// Immutable once created.
type Match struct {
	Ref  scripture.Reference
	Page int
	Rect geom.Rect
}

// Resolve walks the token stream once and returns every resolvable
// reference in reading order. It is a pure function of the stream plus an
// initially empty context: resolving the same stream twice yields identical
// matches.
//
// Context updates are last-write-wins and commit immediately; there is no
// lookahead beyond the token run being matched and no backtracking. Line
// and page break tokens never touch the context, which is what lets a bare
// verse number at the top of a page inherit a chapter established pages
// earlier.
func Resolve(tokens []Token) []Match {
	var (
		ctx     Context
		matches []Match
	)

	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		switch tok.Kind {
		case KindBookAbbrev:
			i = resolveBook(tokens, i, &ctx, &matches)
		case KindNumber:
			i = resolveNumber(tokens, i, &ctx, &matches)
		default:
			// Separators, markers and plain text: context untouched.
			i++
		}
	}
	return matches
}

// resolveBook consumes a BookAbbrev and whatever citation tail follows it:
// nothing (book only), a chapter, or a full chapter:verse[-end] reference.
// The context update commits even when no reference is emitted.
func resolveBook(tokens []Token, i int, ctx *Context, matches *[]Match) int {
	book := tokens[i]
	ctx.Book = book.Code
	ctx.Chapter = 0

	if i+1 >= len(tokens) || tokens[i+1].Kind != KindNumber {
		return i + 1
	}
	chapter := tokens[i+1]
	ctx.Chapter = chapter.Value

	if i+3 < len(tokens) && tokens[i+2].Kind == KindColon && tokens[i+3].Kind == KindNumber {
		verse := tokens[i+3]
		end, next := verseRange(tokens, i+3, verse.Value)
		*matches = append(*matches, Match{
			Ref:  scripture.Reference{Book: book.Code, Chapter: chapter.Value, Verse: verse.Value, VerseEnd: end},
			Page: book.Page,
			Rect: spanRect(tokens[i:next]),
		})
		return next
	}

	// Book and chapter only ("Mt 7"): a context update, never a link —
	// a reference needs a verse.
	return i + 2
}

// resolveNumber handles a Number that does not follow a BookAbbrev: either
// the chapter half of a chapter:verse pair, or a bare verse number eligible
// for context inheritance.
func resolveNumber(tokens []Token, i int, ctx *Context, matches *[]Match) int {
	if i+2 < len(tokens) && tokens[i+1].Kind == KindColon && tokens[i+2].Kind == KindNumber {
		// Chapter:verse pair. Without a book it is inert and changes
		// nothing; a colon-pair in running text ("odds of 3:1") must not
		// poison later inheritance.
		if ctx.Book == "" {
			return i + 3
		}
		chapter, verse := tokens[i], tokens[i+2]
		ctx.Chapter = chapter.Value
		end, next := verseRange(tokens, i+2, verse.Value)
		*matches = append(*matches, Match{
			Ref:  scripture.Reference{Book: ctx.Book, Chapter: chapter.Value, Verse: verse.Value, VerseEnd: end},
			Page: chapter.Page,
			Rect: spanRect(tokens[i:next]),
		})
		return next
	}

	// Bare verse number. Resolvable only with full context and in a
	// position where a citation is plausible; anywhere else the number is
	// inert text, not an error.
	if !ctx.HasChapter() || !inheritsAt(tokens, i) {
		return i + 1
	}
	verse := tokens[i]
	end, next := verseRange(tokens, i, verse.Value)
	*matches = append(*matches, Match{
		Ref:  scripture.Reference{Book: ctx.Book, Chapter: ctx.Chapter, Verse: verse.Value, VerseEnd: end},
		Page: verse.Page,
		Rect: spanRect(tokens[i:next]),
	})
	return next
}

// verseRange extends the verse at index i with a dash-attached range end.
// The number after the dash counts as a range end only when it is itself a
// lone number; "6:14-7:1" leaves the dash unconsumed so 7:1 resolves as its
// own reference. Returns the effective end verse and the index after the
// consumed run.
func verseRange(tokens []Token, i, verse int) (end, next int) {
	if i+2 < len(tokens) && tokens[i+1].Kind == KindRangeDash && tokens[i+2].Kind == KindNumber {
		if !(i+3 < len(tokens) && tokens[i+3].Kind == KindColon) {
			return tokens[i+2].Value, i + 3
		}
	}
	return verse, i + 1
}

// inheritsAt reports whether the token at index i sits where a bare verse
// number plausibly continues a citation: at the start of the document, of a
// line or of a page, after a list separator, or after a "v."/"vv." marker.
// A number in plain prose ("all 12 of them") fails this test.
func inheritsAt(tokens []Token, i int) bool {
	if i == 0 {
		return true
	}
	switch tokens[i-1].Kind {
	case KindComma, KindSemicolon, KindLineBreak, KindPageBreak, KindVerseMarker:
		return true
	}
	return false
}

// spanRect unions the geometry of a consumed token run. Break markers carry
// no geometry and contribute nothing.
func spanRect(tokens []Token) geom.Rect {
	var r geom.Rect
	for _, t := range tokens {
		r = r.Union(t.Rect)
	}
	return r
}
