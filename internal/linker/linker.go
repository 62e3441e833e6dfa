// Package linker runs the full pass over one document: extract positioned
// characters, normalize them into a glyph stream, flag superscript footnote
// digits, tokenize, resolve references against the inherited context, and
// write the link annotations.
package linker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ebiblegr/verselink/internal/cite"
	"github.com/ebiblegr/verselink/internal/glyph"
	"github.com/ebiblegr/verselink/internal/pdfio"
)

// Config selects the input and output documents and tunes the recognition
// thresholds. The zero values of the nested configs select their package
// defaults.
type Config struct {
	Input       string
	Output      string
	BaseURL     string
	Normalize   glyph.NormalizeConfig
	Superscript glyph.SuperscriptConfig
}

// Stats summarizes one completed pass.
type Stats struct {
	Pages        int
	Chars        int
	Superscripts int
	Matches      int
	Skipped      int // matches dropped for unusable geometry
	Links        int
	Elapsed      time.Duration
}

// Linker executes link passes. Safe for config updates from a watcher
// goroutine between runs; a run snapshots the config once at its start.
type Linker struct {
	mu  sync.Mutex
	cfg Config
	log *slog.Logger
}

// New returns a Linker. A nil logger falls back to slog.Default.
func New(cfg Config, log *slog.Logger) *Linker {
	if log == nil {
		log = slog.Default()
	}
	return &Linker{cfg: cfg, log: log}
}

// SetConfig replaces the configuration used by subsequent runs.
func (l *Linker) SetConfig(cfg Config) {
	l.mu.Lock()
	l.cfg = cfg
	l.mu.Unlock()
}

func (l *Linker) config() Config {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cfg
}

// Run executes one complete pass. Nothing is written unless the input was
// read successfully; the output file appears atomically or not at all.
func (l *Linker) Run(ctx context.Context) (*Stats, error) {
	cfg := l.config()
	start := time.Now()

	pages, err := pdfio.ExtractPages(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stream := glyph.Normalize(pages, cfg.Normalize)
	superscripts := glyph.MarkSuperscripts(stream, cfg.Superscript)
	matches := cite.Resolve(cite.Tokenize(stream))

	links, skipped := collectLinks(matches, cfg.BaseURL, l.log)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := pdfio.WriteLinks(cfg.Input, cfg.Output, links); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}

	stats := &Stats{
		Pages:        len(pages),
		Chars:        countChars(stream),
		Superscripts: superscripts,
		Matches:      len(matches),
		Skipped:      skipped,
		Links:        len(links),
		Elapsed:      time.Since(start),
	}
	l.log.Info("link pass complete",
		"pages", stats.Pages,
		"chars", stats.Chars,
		"superscripts", stats.Superscripts,
		"links", stats.Links,
		"skipped", stats.Skipped,
		"elapsed", stats.Elapsed.Round(time.Millisecond),
	)
	return stats, nil
}

// collectLinks turns resolved matches into annotation requests, dropping
// matches whose span has no usable geometry. Those are skipped, never fatal.
func collectLinks(matches []cite.Match, baseURL string, log *slog.Logger) ([]pdfio.Link, int) {
	links := make([]pdfio.Link, 0, len(matches))
	skipped := 0
	for _, m := range matches {
		if !m.Rect.Valid() {
			skipped++
			log.Debug("skipping match with unusable geometry", "ref", m.Ref.String(), "page", m.Page)
			continue
		}
		links = append(links, pdfio.Link{
			Page: m.Page,
			Rect: m.Rect,
			URI:  m.Ref.URL(baseURL),
		})
	}
	return links, skipped
}

func countChars(stream []glyph.Char) int {
	n := 0
	for _, c := range stream {
		if !c.IsMarker() {
			n++
		}
	}
	return n
}
