// Package alert raises threshold and marker warnings from the current snapshot.
package alert

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/tokentop/internal/model"
)

// DefaultMarkerTail is the number of trailing tokens scanned for markers.
const DefaultMarkerTail = 20

// DefaultDisclaimerMarkers are capability-disclaimer phrases scanned for
// in the trailing token slice.
var DefaultDisclaimerMarkers = []string{"As an AI", "I cannot", "I don't have access"}

// Checker holds the alert thresholds and marker set for a run.
type Checker struct {
	RepetitionThreshold float64
	PerplexityThreshold float64
	ConfidenceThreshold float64
	Markers             []string
}

// NewChecker builds a checker from the run configuration.
func NewChecker(cfg model.Config) *Checker {
	return &Checker{
		RepetitionThreshold: cfg.RepetitionThreshold,
		PerplexityThreshold: cfg.PerplexityThreshold,
		ConfidenceThreshold: cfg.ConfidenceThreshold,
		Markers:             cfg.DisclaimerMarkers,
	}
}

// Check produces the warning set for one tick. tail is the trailing slice
// of window tokens scanned for disclaimer markers. The result fully
// replaces any prior tick's warnings.
func (c *Checker) Check(snap model.Snapshot, tail []model.Token) []string {
	var out []string
	if snap.WindowLen == 0 {
		return out
	}
	if snap.RepetitionRatio > c.RepetitionThreshold {
		out = append(out, "High repetition detected")
	}
	if snap.AvgPerplexity > c.PerplexityThreshold {
		out = append(out, "Perplexity rising")
	}
	if snap.AvgConfidence < c.ConfidenceThreshold {
		out = append(out, "Low confidence")
	}

	// Markers may span several whitespace-delimited tokens, so the scan
	// runs over the joined tail text.
	texts := make([]string, len(tail))
	for i, t := range tail {
		texts[i] = t.Text
	}
	joined := strings.Join(texts, " ")
	for _, marker := range c.Markers {
		if strings.Contains(joined, marker) {
			out = append(out, fmt.Sprintf("Hallucination marker: %s", marker))
		}
	}
	return out
}
