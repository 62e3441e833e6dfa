package glyph

import "sort"

// Default thresholds for superscript classification. SizeRatio matches the
// original typesetting of the lexicon: footnote digits are set visibly
// smaller than body text. RiseRatio catches markers that keep the body size
// but sit above the baseline.
const (
	DefaultSizeRatio = 0.85
	DefaultRiseRatio = 0.25
)

// SuperscriptConfig tunes the footnote-digit filter. The zero value selects
// defaults.
type SuperscriptConfig struct {
	SizeRatio float64 // digit is superscript when size < SizeRatio * line median size
	RiseRatio float64 // digit is superscript when baseline > line median + RiseRatio * median size
}

func (c SuperscriptConfig) sizeRatio() float64 {
	if c.SizeRatio > 0 {
		return c.SizeRatio
	}
	return DefaultSizeRatio
}

func (c SuperscriptConfig) riseRatio() float64 {
	if c.RiseRatio > 0 {
		return c.RiseRatio
	}
	return DefaultRiseRatio
}

// MarkSuperscripts flags footnote-marker digits in the normalized stream and
// returns the number of flags set. Flagged characters stay in the stream so
// adjacency is preserved; they are excluded from number tokens and from link
// spans by the downstream stages. Only digits are ever flagged.
func MarkSuperscripts(stream []Char, cfg SuperscriptConfig) int {
	flagged := 0
	lineStart := 0
	for i := 0; i <= len(stream); i++ {
		if i < len(stream) && !stream[i].IsMarker() {
			continue
		}
		flagged += markLine(stream[lineStart:i], cfg)
		lineStart = i + 1
	}
	return flagged
}

// markLine classifies the digits of a single assembled line against the
// line's median baseline and font size.
func markLine(line []Char, cfg SuperscriptConfig) int {
	medBaseline, medSize := lineMedians(line)

	flagged := 0
	for i := range line {
		c := &line[i]
		if !c.IsDigit() {
			continue
		}
		switch {
		case IsSuperDigitRune(c.Rune):
			// Inherently superscript codepoints need no geometry.
		case medSize <= 0:
			continue
		case c.Size > 0 && c.Size < cfg.sizeRatio()*medSize:
		case c.Baseline > medBaseline+cfg.riseRatio()*medSize:
		default:
			continue
		}
		c.Super = true
		flagged++
	}
	return flagged
}

// lineMedians returns the median baseline and font size over the visible
// characters of a line. Zero medians mean the line held no usable text.
func lineMedians(line []Char) (baseline, size float64) {
	var baselines, sizes []float64
	for _, c := range line {
		if c.Kind != Text || c.IsSpace() || c.Size <= 0 {
			continue
		}
		baselines = append(baselines, c.Baseline)
		sizes = append(sizes, c.Size)
	}
	return median(baselines), median(sizes)
}

func median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
