package config

import (
	"log/slog"
	"strings"

	"github.com/ebiblegr/verselink/internal/glyph"
	"github.com/ebiblegr/verselink/internal/scripture"
)

// Config holds verselink configuration.
// Loaded from ./config.yaml or ~/.verselink/config.yaml.
type Config struct {
	Input    string    `mapstructure:"input" yaml:"input"`         // source PDF
	Output   string    `mapstructure:"output" yaml:"output"`       // annotated PDF
	BaseURL  string    `mapstructure:"base_url" yaml:"base_url"`   // collation site prefix, no trailing slash
	LogLevel string    `mapstructure:"log_level" yaml:"log_level"` // debug, info, warn, error
	Linker   LinkerCfg `mapstructure:"linker" yaml:"linker"`
}

// LinkerCfg tunes the recognition thresholds. Zero values select the
// built-in defaults of the glyph package.
type LinkerCfg struct {
	// LineBreakFactor is the fraction of the font size a baseline must move
	// before a new line starts.
	LineBreakFactor float64 `mapstructure:"line_break_factor" yaml:"line_break_factor"`
	// SuperscriptSizeRatio flags digits set smaller than this fraction of
	// the line's median font size as footnote markers.
	SuperscriptSizeRatio float64 `mapstructure:"superscript_size_ratio" yaml:"superscript_size_ratio"`
	// SuperscriptRiseRatio flags digits raised above the line's median
	// baseline by more than this fraction of the median font size.
	SuperscriptRiseRatio float64 `mapstructure:"superscript_rise_ratio" yaml:"superscript_rise_ratio"`
}

// DefaultConfig returns configuration with the fixed filenames and
// thresholds of the lexicon run.
func DefaultConfig() *Config {
	return &Config{
		Input:    "ALC.pdf",
		Output:   "ALC_ebible_links.pdf",
		BaseURL:  scripture.DefaultBaseURL,
		LogLevel: "info",
		Linker: LinkerCfg{
			LineBreakFactor:      glyph.DefaultLineBreakFactor,
			SuperscriptSizeRatio: glyph.DefaultSizeRatio,
			SuperscriptRiseRatio: glyph.DefaultRiseRatio,
		},
	}
}

// SlogLevel parses LogLevel, defaulting to info for unknown values.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
