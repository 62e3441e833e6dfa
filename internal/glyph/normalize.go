package glyph

import (
	"math"

	"golang.org/x/text/unicode/norm"

	"github.com/ebiblegr/verselink/internal/geom"
)

// Raw is one positioned text record as delivered by the extraction library:
// the shown text with its baseline origin, advance width and effective font
// size. Text usually holds a single rune but multi-rune records are split
// during normalization.
type Raw struct {
	Text string
	X, Y float64 // baseline origin, PDF user space
	W    float64 // advance width of Text
	Size float64 // effective font size in points
}

// RawPage is one page's records in natural reading order.
type RawPage struct {
	Number int // 1-based page number in the source document
	Chars  []Raw
}

// DefaultLineBreakFactor is the fraction of the prevailing font size a
// baseline must move vertically before a record starts a new line. It is
// large enough that a raised footnote digit (rise around a third of the
// size) stays on its line, and small enough that real leading (a full size
// or more) always breaks.
const DefaultLineBreakFactor = 0.7

// NormalizeConfig tunes stream normalization. The zero value selects
// defaults.
type NormalizeConfig struct {
	LineBreakFactor float64
}

func (c NormalizeConfig) lineBreakFactor() float64 {
	if c.LineBreakFactor > 0 {
		return c.LineBreakFactor
	}
	return DefaultLineBreakFactor
}

// Normalize flattens extracted pages into a single ordered Char stream.
// A LineBreak marker is inserted at every vertical baseline discontinuity
// and a PageBreak marker between consecutive pages. Order is preserved and
// no input character is dropped; extracted strings are NFC-normalized so
// decomposed polytonic accents cannot split runs.
func Normalize(pages []RawPage, cfg NormalizeConfig) []Char {
	factor := cfg.lineBreakFactor()

	var out []Char
	for pageIdx, page := range pages {
		if pageIdx > 0 {
			out = append(out, Char{Kind: PageBreak, Page: page.Number})
		}

		prevSet := false
		var prevBaseline, prevSize float64
		for _, raw := range page.Chars {
			runes := []rune(norm.NFC.String(raw.Text))
			if len(runes) == 0 {
				continue
			}

			if prevSet && isLineStep(prevBaseline, raw.Y, prevSize, raw.Size, factor) {
				out = append(out, Char{Kind: LineBreak, Page: page.Number})
			}

			// Multi-rune records split their advance evenly; the
			// extraction library reports no per-rune widths.
			step := raw.W / float64(len(runes))
			for i, r := range runes {
				x0 := raw.X + float64(i)*step
				out = append(out, Char{
					Kind:     Text,
					Rune:     r,
					Page:     page.Number,
					Rect:     geom.NewRect(x0, raw.Y, x0+step, raw.Y+raw.Size),
					Baseline: raw.Y,
					Size:     raw.Size,
				})
			}

			prevSet = true
			prevBaseline = raw.Y
			prevSize = raw.Size
		}
	}
	return out
}

// isLineStep reports whether the baseline moved far enough vertically to
// start a new line. The threshold scales with the larger of the two font
// sizes so that superscript rises never register as line breaks.
func isLineStep(prevY, curY, prevSize, curSize, factor float64) bool {
	size := math.Max(prevSize, curSize)
	if size <= 0 {
		size = 10 // fallback for degenerate extraction output
	}
	return math.Abs(curY-prevY) > factor*size
}
