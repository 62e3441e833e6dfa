package linker

import (
	"context"
	"math"
	"testing"

	"github.com/ebiblegr/verselink/internal/cite"
	"github.com/ebiblegr/verselink/internal/geom"
	"github.com/ebiblegr/verselink/internal/glyph"
	"github.com/ebiblegr/verselink/internal/scripture"
	"github.com/ebiblegr/verselink/internal/testutil"
)

// rawRow lays one line of raw extraction records onto a shared baseline.
func rawRow(y, size float64, text string) []glyph.Raw {
	chars := make([]glyph.Raw, 0, len(text))
	x := 10.0
	for _, r := range text {
		chars = append(chars, glyph.Raw{Text: string(r), X: x, Y: y, W: size * 0.5, Size: size})
		x += size * 0.5
	}
	return chars
}

func match(book string, chapter, verse int, rect geom.Rect) cite.Match {
	return cite.Match{
		Ref:  scripture.Reference{Book: book, Chapter: chapter, Verse: verse, VerseEnd: verse},
		Page: 1,
		Rect: rect,
	}
}

func TestCollectLinksBuildsURLs(t *testing.T) {
	matches := []cite.Match{
		match("luk", 6, 14, geom.NewRect(10, 700, 40, 710)),
	}

	links, skipped := collectLinks(matches, "", testutil.Logger(t))
	if skipped != 0 {
		t.Fatalf("expected no skips, got %d", skipped)
	}
	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}
	if links[0].URI != "https://ebible.gr/collate/luk.6.14" {
		t.Errorf("unexpected URI %q", links[0].URI)
	}
	if links[0].Page != 1 {
		t.Errorf("expected page 1, got %d", links[0].Page)
	}
}

func TestCollectLinksHonorsBaseURL(t *testing.T) {
	matches := []cite.Match{
		match("mat", 7, 3, geom.NewRect(10, 700, 40, 710)),
	}
	links, _ := collectLinks(matches, "http://localhost:8080/collate", testutil.Logger(t))
	if links[0].URI != "http://localhost:8080/collate/mat.7.3" {
		t.Errorf("unexpected URI %q", links[0].URI)
	}
}

func TestCollectLinksSkipsUnusableGeometry(t *testing.T) {
	matches := []cite.Match{
		match("luk", 6, 14, geom.Rect{}),
		match("luk", 6, 20, geom.Rect{X0: math.NaN(), Y0: 700, X1: 40, Y1: 710}),
		match("luk", 6, 42, geom.NewRect(10, 700, 40, 710)),
	}

	links, skipped := collectLinks(matches, "", testutil.Logger(t))
	if skipped != 2 {
		t.Errorf("expected 2 skipped matches, got %d", skipped)
	}
	if len(links) != 1 {
		t.Fatalf("expected 1 link to survive, got %d", len(links))
	}
	if links[0].URI != "https://ebible.gr/collate/luk.6.42" {
		t.Errorf("unexpected surviving link %q", links[0].URI)
	}
}

func TestRecognitionStagesEndToEnd(t *testing.T) {
	// The full in-memory pass: a reference with raised footnote digits on
	// one page, a bare verse number at the top of the next.
	page4 := rawRow(700, 10, "Lk 6:14")
	page4 = append(page4,
		glyph.Raw{Text: "3", X: 45, Y: 703.2, W: 3, Size: 6.5},
		glyph.Raw{Text: "5", X: 48, Y: 703.2, W: 3, Size: 6.5},
	)
	pages := []glyph.RawPage{
		{Number: 4, Chars: page4},
		{Number: 5, Chars: rawRow(700, 10, "42, further text")},
	}

	stream := glyph.Normalize(pages, glyph.NormalizeConfig{})
	if n := glyph.MarkSuperscripts(stream, glyph.SuperscriptConfig{}); n != 2 {
		t.Fatalf("expected 2 superscript digits flagged, got %d", n)
	}
	matches := cite.Resolve(cite.Tokenize(stream))

	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if got := matches[0].Ref.Target(); got != "luk.6.14" {
		t.Errorf("expected luk.6.14, got %s", got)
	}
	if got := matches[1].Ref.Target(); got != "luk.6.42" {
		t.Errorf("expected inherited luk.6.42, got %s", got)
	}
	if matches[1].Page != 5 {
		t.Errorf("expected inherited match on page 5, got %d", matches[1].Page)
	}

	links, skipped := collectLinks(matches, "", testutil.Logger(t))
	if skipped != 0 || len(links) != 2 {
		t.Fatalf("expected 2 links and no skips, got %d links, %d skipped", len(links), skipped)
	}
	if links[0].URI != "https://ebible.gr/collate/luk.6.14" {
		t.Errorf("unexpected first URI %q", links[0].URI)
	}
}

func TestRunFailsCleanlyOnMissingInput(t *testing.T) {
	dir := t.TempDir()
	l := New(Config{Input: dir + "/missing.pdf", Output: dir + "/out.pdf"}, testutil.Logger(t))

	if _, err := l.Run(context.Background()); err == nil {
		t.Fatal("expected an error for a missing input file")
	}
}

func TestSetConfigAppliesToNextRun(t *testing.T) {
	l := New(Config{Input: "a.pdf"}, nil)
	l.SetConfig(Config{Input: "b.pdf"})
	if got := l.config().Input; got != "b.pdf" {
		t.Errorf("expected updated input b.pdf, got %q", got)
	}
}
