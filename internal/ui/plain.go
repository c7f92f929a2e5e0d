package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/tokentop/internal/model"
)

// Plain renders each snapshot as one line of plain text, for output
// targets that do not support terminal control sequences.
type Plain struct {
	w   io.Writer
	cfg model.Config
}

// NewPlain constructs the plain-text renderer.
func NewPlain(w io.Writer, cfg model.Config) *Plain {
	return &Plain{w: w, cfg: cfg}
}

// Render implements pipeline.Renderer.
func (p *Plain) Render(snap model.Snapshot) {
	perplexityMark := ""
	if snap.AvgPerplexity > p.cfg.PerplexityThreshold {
		perplexityMark = "!"
	}
	fields := []string{
		fmt.Sprintf("tok/s %.1f", snap.TokensPerSecond),
		fmt.Sprintf("ppl %.1f%s", snap.AvgPerplexity, perplexityMark),
		fmt.Sprintf("rep %s %3.0f%%", ProgressBar(snap.RepetitionRatio, 10), snap.RepetitionRatio*100),
		fmt.Sprintf("conf %s %3.0f%%", ProgressBar(snap.AvgConfidence, 10), snap.AvgConfidence*100),
	}
	if p.cfg.ShowPatterns && len(snap.Patterns) > 0 {
		shown := snap.Patterns
		if len(shown) > maxPatternLines {
			shown = shown[:maxPatternLines]
		}
		fields = append(fields, "patterns: "+strings.Join(shown, "; "))
	}
	if len(snap.Warnings) > 0 {
		fields = append(fields, "warnings: "+strings.Join(snap.Warnings, "; "))
	}
	if _, err := fmt.Fprintln(p.w, strings.Join(fields, " | ")); err != nil {
		// Best-effort output; a broken pipe ends the run elsewhere.
		_ = err
	}
}
