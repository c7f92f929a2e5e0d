// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Analysis AnalysisConfig `toml:"analysis"`
	Lexicon  LexiconConfig  `toml:"lexicon"`
}

// AnalysisConfig maps analysis-related settings.
type AnalysisConfig struct {
	Interval            *int     `toml:"interval"`
	BufferSize          *int     `toml:"buffer-size"`
	Patterns            *bool    `toml:"patterns"`
	RepetitionThreshold *float64 `toml:"repetition-threshold"`
	PerplexityThreshold *float64 `toml:"perplexity-threshold"`
	ConfidenceThreshold *float64 `toml:"confidence-threshold"`
	NGramSize           *int     `toml:"ngram-size"`
	NGramRepeats        *int     `toml:"ngram-repeats"`
	ListingMinCount     *int     `toml:"listing-min-count"`
	UncertaintyRatio    *float64 `toml:"uncertainty-ratio"`
}

// LexiconConfig maps the configurable word and marker sets.
type LexiconConfig struct {
	HedgingWords      []string `toml:"hedging-words"`
	ListingPrefixes   []string `toml:"listing-prefixes"`
	DisclaimerMarkers []string `toml:"disclaimer-markers"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
