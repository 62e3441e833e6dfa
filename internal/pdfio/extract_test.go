package pdfio

import (
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"
)

func text(s string, x, y, size float64) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, W: size * 0.5 * float64(len(s)), FontSize: size}
}

func joined(texts []pdf.Text) string {
	var b strings.Builder
	for _, t := range texts {
		b.WriteString(t.S)
	}
	return b.String()
}

func TestAssembleReadingOrderSortsRows(t *testing.T) {
	// Content-stream order: second line first.
	texts := []pdf.Text{
		text("second", 10, 688, 10),
		text("first", 10, 700, 10),
	}
	got := joined(assembleReadingOrder(texts))
	if got != "firstsecond" {
		t.Errorf("expected rows top to bottom, got %q", got)
	}
}

func TestAssembleReadingOrderSortsWithinRow(t *testing.T) {
	texts := []pdf.Text{
		text("6:14", 50, 700, 10),
		text("Lk", 10, 700, 10),
	}
	got := joined(assembleReadingOrder(texts))
	if got != "Lk6:14" {
		t.Errorf("expected left-to-right within row, got %q", got)
	}
}

func TestGroupRowsKeepsRaisedFootnoteDigit(t *testing.T) {
	// A footnote marker raised a third of the font size must stay in its
	// row, after the glyph it annotates.
	texts := []pdf.Text{
		text("3", 50, 703.2, 6.5),
		text("14", 40, 700, 10),
	}
	rows := groupRows(texts)
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	if got := joined(rows[0]); got != "143" {
		t.Errorf("expected marker after its glyph, got %q", got)
	}
}

func TestGroupRowsSplitsOnLeading(t *testing.T) {
	texts := []pdf.Text{
		text("a", 10, 700, 10),
		text("b", 10, 688, 10),
	}
	if rows := groupRows(texts); len(rows) != 2 {
		t.Fatalf("expected two rows, got %d", len(rows))
	}
}

func TestDetectColumnSplit(t *testing.T) {
	var texts []pdf.Text
	for y := 700.0; y > 600; y -= 12 {
		texts = append(texts, text("leftcol", 10, y, 10))
		texts = append(texts, text("rightcol", 300, y, 10))
	}
	rows := groupRows(texts)

	split, ok := detectColumnSplit(rows)
	if !ok {
		t.Fatal("expected a column split")
	}
	if split < 45 || split > 300 {
		t.Errorf("split %f outside the gap", split)
	}

	got := joined(assembleReadingOrder(texts))
	if !strings.HasPrefix(got, strings.Repeat("leftcol", 9)) {
		t.Errorf("expected whole left column first, got %.60q", got)
	}
}

func TestDetectColumnSplitAbsentOnProse(t *testing.T) {
	var texts []pdf.Text
	for y := 700.0; y > 650; y -= 12 {
		texts = append(texts, text("continuous line of prose", 10, y, 10))
	}
	if _, ok := detectColumnSplit(groupRows(texts)); ok {
		t.Error("expected no column split on single-column prose")
	}
}
