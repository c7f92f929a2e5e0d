// Package model defines shared data structures.
package model

import "time"

// Config defines analysis settings for a run. Values are fixed for the
// process lifetime once the CLI has merged flags and file config.
type Config struct {
	Interval     time.Duration
	BufferSize   int
	ShowPatterns bool
	Raw          bool

	RepetitionThreshold float64
	PerplexityThreshold float64
	ConfidenceThreshold float64

	NGramSize                 int
	NGramRepeatThreshold      int
	ListingMinCount           int
	UncertaintyRatioThreshold float64

	ListingPrefixes   []string
	HedgingWords      []string
	DisclaimerMarkers []string
	MarkerTail        int
}

// Token is a single evaluated unit of the input stream. Created once at
// ingestion time and never mutated afterwards.
type Token struct {
	Text            string
	ArrivedAt       time.Time
	Perplexity      float64
	Confidence      float64
	RepetitiveShape bool
}

// Snapshot captures the full analysis state at one render tick. It is
// rebuilt wholesale on every tick and never merged with prior snapshots.
type Snapshot struct {
	TokensPerSecond float64
	AvgPerplexity   float64
	AvgConfidence   float64
	RepetitionRatio float64
	Patterns        []string
	Warnings        []string
	Recent          []Token
	RateHistory     []float64
	WindowLen       int
}
