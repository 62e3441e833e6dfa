// Package pdfio is the document boundary: positioned-character extraction
// from the source PDF and link-annotation writing into the output PDF. The
// recognition core never touches a PDF library; it sees only the records
// this package produces.
package pdfio

import (
	"fmt"
	"sort"

	"github.com/ledongthuc/pdf"

	"github.com/ebiblegr/verselink/internal/glyph"
)

// Layout thresholds for reading-order assembly. RowTolerance is a fraction
// of the font size so that raised footnote digits stay in their row while
// real leading starts a new one. ColumnGapWidth and ColumnRowPct decide when
// a persistent vertical gap splits a page into two columns.
const (
	rowToleranceFactor = 0.5
	columnGapWidth     = 30.0
	columnRowPct       = 25
)

// ExtractPages opens the PDF at path and returns its positioned characters
// page by page, assembled into reading order. The underlying library panics
// on some malformed content streams; those are recovered and surfaced as
// errors.
func ExtractPages(path string) (pages []glyph.RawPage, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("extracting text from %s: %v", path, r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	for n := 1; n <= reader.NumPage(); n++ {
		page := reader.Page(n)
		if page.V.IsNull() {
			continue
		}
		texts := page.Content().Text
		if len(texts) == 0 {
			continue
		}
		ordered := assembleReadingOrder(texts)

		chars := make([]glyph.Raw, 0, len(ordered))
		for _, t := range ordered {
			if t.S == "" {
				continue
			}
			chars = append(chars, glyph.Raw{
				Text: t.S,
				X:    t.X,
				Y:    t.Y,
				W:    t.W,
				Size: t.FontSize,
			})
		}
		pages = append(pages, glyph.RawPage{Number: n, Chars: chars})
	}
	return pages, nil
}

// assembleReadingOrder sorts extracted records into natural reading order:
// rows top to bottom, columns left before right, glyphs left to right within
// a row. Content-stream order is not reliable for scanned typesetting.
func assembleReadingOrder(texts []pdf.Text) []pdf.Text {
	rows := groupRows(texts)
	if split, ok := detectColumnSplit(rows); ok {
		left, right := splitColumns(rows, split)
		return append(flattenRows(left), flattenRows(right)...)
	}
	return flattenRows(rows)
}

// groupRows buckets records sharing a baseline. A record joins a row when
// its baseline sits within rowToleranceFactor of the font size, which keeps
// superscript footnote digits attached to the row they annotate.
func groupRows(texts []pdf.Text) [][]pdf.Text {
	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })

	var rows [][]pdf.Text
	for _, t := range sorted {
		placed := false
		if len(rows) > 0 {
			row := rows[len(rows)-1]
			size := row[0].FontSize
			if size <= 0 {
				size = 10
			}
			if row[0].Y-t.Y <= rowToleranceFactor*size {
				rows[len(rows)-1] = append(row, t)
				placed = true
			}
		}
		if !placed {
			rows = append(rows, []pdf.Text{t})
		}
	}

	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
	}
	return rows
}

// detectColumnSplit looks for a vertical whitespace band wide enough to be
// a column separator and present on enough rows. Returns the x coordinate
// of the split.
func detectColumnSplit(rows [][]pdf.Text) (float64, bool) {
	var mids []float64
	multi := 0
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		multi++
		for i := 1; i < len(row); i++ {
			gap := row[i].X - (row[i-1].X + row[i-1].W)
			if gap >= columnGapWidth {
				mids = append(mids, row[i-1].X+row[i-1].W+gap/2)
				break
			}
		}
	}
	if multi == 0 || len(mids)*100 < multi*columnRowPct {
		return 0, false
	}
	sort.Float64s(mids)
	return mids[len(mids)/2], true
}

// splitColumns partitions each row at the split coordinate, keeping rows in
// top-to-bottom order on both sides.
func splitColumns(rows [][]pdf.Text, split float64) (left, right [][]pdf.Text) {
	for _, row := range rows {
		var l, r []pdf.Text
		for _, t := range row {
			if t.X < split {
				l = append(l, t)
			} else {
				r = append(r, t)
			}
		}
		if len(l) > 0 {
			left = append(left, l)
		}
		if len(r) > 0 {
			right = append(right, r)
		}
	}
	return left, right
}

func flattenRows(rows [][]pdf.Text) []pdf.Text {
	var out []pdf.Text
	for _, row := range rows {
		out = append(out, row...)
	}
	return out
}
