// Package ui renders analysis snapshots to interactive and plain surfaces.
package ui

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
)

const sparkChars = " .:-=+*#%@"

// maxPatternLines caps the pattern lines shown on the panel.
const maxPatternLines = 3

// ProgressBar renders a fixed-width text bar for a value in [0, 1].
func ProgressBar(value float64, width int) string {
	if width <= 0 {
		return ""
	}
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	filled := int(value * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Glyph annotates a confidence value.
func Glyph(confidence float64) string {
	switch {
	case confidence > 0.7:
		return "✓"
	case confidence > 0.4:
		return "~"
	default:
		return "!"
	}
}

// Truncate shortens a string to the given display width, appending an
// ellipsis when anything was cut.
func Truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
