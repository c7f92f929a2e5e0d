// Package pattern scans the token window for heuristic structural patterns.
package pattern

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/tokentop/internal/model"
)

// Default detection settings.
const (
	DefaultNGramSize            = 3
	DefaultNGramRepeatThreshold = 3
	DefaultListingMinCount      = 3
	DefaultUncertaintyRatio     = 0.1
)

// DefaultListingPrefixes marks enumerator-like tokens.
var DefaultListingPrefixes = []string{"1.", "2.", "3.", "-", "*", "•"}

// DefaultHedgingWords is the hedging-language lexicon.
var DefaultHedgingWords = []string{"maybe", "perhaps", "probably", "might", "could"}

// Detector holds the detection thresholds and lexicons for a run.
type Detector struct {
	NGramSize            int
	NGramRepeatThreshold int
	ListingMinCount      int
	UncertaintyRatio     float64
	ListingPrefixes      []string
	HedgingWords         []string
}

// NewDetector builds a detector from the run configuration.
func NewDetector(cfg model.Config) *Detector {
	return &Detector{
		NGramSize:            cfg.NGramSize,
		NGramRepeatThreshold: cfg.NGramRepeatThreshold,
		ListingMinCount:      cfg.ListingMinCount,
		UncertaintyRatio:     cfg.UncertaintyRatioThreshold,
		ListingPrefixes:      cfg.ListingPrefixes,
		HedgingWords:         cfg.HedgingWords,
	}
}

// Detect scans the window contents and reports detected patterns in fixed
// priority order: repeated n-grams, then listing, then uncertainty language.
func (d *Detector) Detect(tokens []model.Token) []string {
	if len(tokens) == 0 {
		return nil
	}
	var out []string
	out = append(out, d.repeatedNGrams(tokens)...)
	if d.listing(tokens) {
		out = append(out, "Listing pattern detected")
	}
	if d.uncertainty(tokens) {
		out = append(out, "High uncertainty language")
	}
	return out
}

// repeatedNGrams counts every contiguous n-length subsequence by joined
// text and reports each distinct n-gram occurring at or above the repeat
// threshold, in first-occurrence order.
func (d *Detector) repeatedNGrams(tokens []model.Token) []string {
	n := d.NGramSize
	if n <= 0 || len(tokens) < n {
		return nil
	}
	counts := make(map[string]int)
	order := make([]string, 0)
	for i := 0; i+n <= len(tokens); i++ {
		parts := make([]string, n)
		for j := 0; j < n; j++ {
			parts[j] = tokens[i+j].Text
		}
		phrase := strings.Join(parts, " ")
		if counts[phrase] == 0 {
			order = append(order, phrase)
		}
		counts[phrase]++
	}
	var out []string
	for _, phrase := range order {
		if count := counts[phrase]; count >= d.NGramRepeatThreshold {
			out = append(out, fmt.Sprintf("Repeated phrase: %q (%dx)", phrase, count))
		}
	}
	return out
}

func (d *Detector) listing(tokens []model.Token) bool {
	count := 0
	for _, t := range tokens {
		for _, prefix := range d.ListingPrefixes {
			if strings.HasPrefix(t.Text, prefix) {
				count++
				break
			}
		}
	}
	return count >= d.ListingMinCount
}

func (d *Detector) uncertainty(tokens []model.Token) bool {
	count := 0
	for _, t := range tokens {
		lower := strings.ToLower(t.Text)
		for _, word := range d.HedgingWords {
			if strings.Contains(lower, word) {
				count++
				break
			}
		}
	}
	return float64(count)/float64(len(tokens)) > d.UncertaintyRatio
}
