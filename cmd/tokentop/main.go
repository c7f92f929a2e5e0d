// Package main provides the CLI entrypoint for tokentop.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tokentop/internal/alert"
	"github.com/verte-zerg/tokentop/internal/config"
	"github.com/verte-zerg/tokentop/internal/model"
	"github.com/verte-zerg/tokentop/internal/pattern"
	"github.com/verte-zerg/tokentop/internal/pipeline"
	"github.com/verte-zerg/tokentop/internal/ui"
)

const (
	defaultInterval         = 100
	defaultBufferSize       = 1000
	defaultRepetitionThresh = 0.4
	defaultPerplexityThresh = 20.0
	defaultConfidenceThresh = 0.5
	defaultNGramSize        = pattern.DefaultNGramSize
	defaultNGramRepeats     = pattern.DefaultNGramRepeatThreshold
	defaultListingMinCount  = pattern.DefaultListingMinCount
	defaultUncertaintyRatio = pattern.DefaultUncertaintyRatio
)

var (
	analyzeInterval         int
	analyzeBufferSize       int
	analyzePatterns         bool
	analyzeRaw              bool
	analyzeRepetitionThresh float64
	analyzePerplexityThresh float64
	analyzeConfidenceThresh float64
	analyzeNGramSize        int
	analyzeNGramRepeats     int
	analyzeListingMinCount  int
	analyzeUncertaintyRatio float64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tokentop",
		Short:         "Real-time token analysis for AI generation - like htop but for AI tokens",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runAnalyzeCmd,
	}

	rootCmd.Flags().IntVar(&analyzeInterval, "interval", defaultInterval, "update interval in milliseconds")
	rootCmd.Flags().IntVar(&analyzeBufferSize, "buffer-size", defaultBufferSize, "buffer size for rolling statistics")
	rootCmd.Flags().BoolVar(&analyzePatterns, "patterns", false, "show detailed pattern analysis")
	rootCmd.Flags().BoolVar(&analyzeRaw, "raw", false, "show raw tokens instead of analysis")
	rootCmd.Flags().Float64Var(&analyzeRepetitionThresh, "repetition-threshold", defaultRepetitionThresh, "alert threshold for repetition (0.0-1.0)")
	rootCmd.Flags().Float64Var(&analyzePerplexityThresh, "perplexity-threshold", defaultPerplexityThresh, "alert threshold for perplexity")
	rootCmd.Flags().Float64Var(&analyzeConfidenceThresh, "confidence-threshold", defaultConfidenceThresh, "minimum confidence threshold")
	rootCmd.Flags().IntVar(&analyzeNGramSize, "ngram-size", defaultNGramSize, "n-gram size for repeated phrase detection")
	rootCmd.Flags().IntVar(&analyzeNGramRepeats, "ngram-repeats", defaultNGramRepeats, "repeat count that flags an n-gram")
	rootCmd.Flags().IntVar(&analyzeListingMinCount, "listing-min-count", defaultListingMinCount, "enumerator tokens that flag a listing pattern")
	rootCmd.Flags().Float64Var(&analyzeUncertaintyRatio, "uncertainty-ratio", defaultUncertaintyRatio, "hedging-token ratio that flags uncertainty language")

	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "interval", &analyzeInterval, fileCfg.Analysis.Interval)
	applyIntConfig(cmd, "buffer-size", &analyzeBufferSize, fileCfg.Analysis.BufferSize)
	applyBoolConfig(cmd, "patterns", &analyzePatterns, fileCfg.Analysis.Patterns)
	applyFloatConfig(cmd, "repetition-threshold", &analyzeRepetitionThresh, fileCfg.Analysis.RepetitionThreshold)
	applyFloatConfig(cmd, "perplexity-threshold", &analyzePerplexityThresh, fileCfg.Analysis.PerplexityThreshold)
	applyFloatConfig(cmd, "confidence-threshold", &analyzeConfidenceThresh, fileCfg.Analysis.ConfidenceThreshold)
	applyIntConfig(cmd, "ngram-size", &analyzeNGramSize, fileCfg.Analysis.NGramSize)
	applyIntConfig(cmd, "ngram-repeats", &analyzeNGramRepeats, fileCfg.Analysis.NGramRepeats)
	applyIntConfig(cmd, "listing-min-count", &analyzeListingMinCount, fileCfg.Analysis.ListingMinCount)
	applyFloatConfig(cmd, "uncertainty-ratio", &analyzeUncertaintyRatio, fileCfg.Analysis.UncertaintyRatio)

	cfg := model.Config{
		Interval:                  time.Duration(analyzeInterval) * time.Millisecond,
		BufferSize:                analyzeBufferSize,
		ShowPatterns:              analyzePatterns,
		Raw:                       analyzeRaw,
		RepetitionThreshold:       analyzeRepetitionThresh,
		PerplexityThreshold:       analyzePerplexityThresh,
		ConfidenceThreshold:       analyzeConfidenceThresh,
		NGramSize:                 analyzeNGramSize,
		NGramRepeatThreshold:      analyzeNGramRepeats,
		ListingMinCount:           analyzeListingMinCount,
		UncertaintyRatioThreshold: analyzeUncertaintyRatio,
		ListingPrefixes:           lexiconOrDefault(fileCfg.Lexicon.ListingPrefixes, pattern.DefaultListingPrefixes),
		HedgingWords:              lexiconOrDefault(fileCfg.Lexicon.HedgingWords, pattern.DefaultHedgingWords),
		DisclaimerMarkers:         lexiconOrDefault(fileCfg.Lexicon.DisclaimerMarkers, alert.DefaultDisclaimerMarkers),
		MarkerTail:                alert.DefaultMarkerTail,
	}

	if err := validateConfig(cfg); err != nil {
		return err
	}

	if cfg.Raw {
		return pipeline.RunRaw(os.Stdin, os.Stdout)
	}

	queue := pipeline.NewQueue()
	go pipeline.Ingest(os.Stdin, queue)

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		engine := pipeline.NewEngine(cfg, ui.NewPlain(os.Stdout, cfg))
		engine.Run(queue.Tokens())
		return nil
	}

	tui := ui.NewTUI(cfg)
	engine := pipeline.NewEngine(cfg, tui)
	go func() {
		engine.Run(queue.Tokens())
		tui.Done()
	}()
	return tui.Run()
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func lexiconOrDefault(values, fallback []string) []string {
	if len(values) == 0 {
		return fallback
	}
	return values
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tokentop configuration
# Uncomment a value to enable it. CLI flags override config values.

[analysis]
# interval = %d                 # Update interval in milliseconds
# buffer-size = %d             # Buffer size for rolling statistics
# patterns = false               # Show detailed pattern analysis
# repetition-threshold = %.1f    # Alert threshold for repetition (0.0-1.0)
# perplexity-threshold = %.1f   # Alert threshold for perplexity
# confidence-threshold = %.1f    # Minimum confidence threshold
# ngram-size = %d                # N-gram size for repeated phrase detection
# ngram-repeats = %d             # Repeat count that flags an n-gram
# listing-min-count = %d         # Enumerator tokens that flag a listing pattern
# uncertainty-ratio = %.1f       # Hedging-token ratio that flags uncertainty

[lexicon]
# hedging-words = [%s]
# listing-prefixes = [%s]
# disclaimer-markers = [%s]
`,
		defaultInterval,
		defaultBufferSize,
		defaultRepetitionThresh,
		defaultPerplexityThresh,
		defaultConfidenceThresh,
		defaultNGramSize,
		defaultNGramRepeats,
		defaultListingMinCount,
		defaultUncertaintyRatio,
		quoteList(pattern.DefaultHedgingWords),
		quoteList(pattern.DefaultListingPrefixes),
		quoteList(alert.DefaultDisclaimerMarkers),
	)
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}

func validateConfig(cfg model.Config) error {
	if cfg.Interval <= 0 {
		return fmt.Errorf("--interval must be > 0")
	}
	if cfg.BufferSize <= 0 {
		return fmt.Errorf("--buffer-size must be > 0")
	}
	if cfg.RepetitionThreshold < 0 || cfg.RepetitionThreshold > 1 {
		return fmt.Errorf("--repetition-threshold must be between 0 and 1")
	}
	if cfg.PerplexityThreshold < 0 {
		return fmt.Errorf("--perplexity-threshold must be >= 0")
	}
	if cfg.ConfidenceThreshold < 0 || cfg.ConfidenceThreshold > 1 {
		return fmt.Errorf("--confidence-threshold must be between 0 and 1")
	}
	if cfg.NGramSize <= 0 {
		return fmt.Errorf("--ngram-size must be > 0")
	}
	if cfg.NGramRepeatThreshold <= 0 {
		return fmt.Errorf("--ngram-repeats must be > 0")
	}
	if cfg.ListingMinCount <= 0 {
		return fmt.Errorf("--listing-min-count must be > 0")
	}
	if cfg.UncertaintyRatioThreshold < 0 || cfg.UncertaintyRatioThreshold > 1 {
		return fmt.Errorf("--uncertainty-ratio must be between 0 and 1")
	}
	return nil
}
