// Package metrics derives aggregate statistics from the token window.
package metrics

import (
	"time"

	"github.com/verte-zerg/tokentop/internal/model"
	"github.com/verte-zerg/tokentop/internal/window"
)

// rateWindow is the trailing wall-clock interval for the token rate.
const rateWindow = time.Second

// Compute builds a fresh snapshot of the aggregate metrics from the
// window's current state. Patterns and warnings are filled in by the
// caller. All empty-window cases are defined as zero.
func Compute(win *window.Store, now time.Time) model.Snapshot {
	snap := model.Snapshot{WindowLen: win.Len()}
	if win.Len() == 0 {
		return snap
	}

	tokens := win.Tokens()
	snap.TokensPerSecond = float64(recentCount(tokens, now))

	var perplexitySum, confidenceSum float64
	for _, t := range tokens {
		perplexitySum += t.Perplexity
		confidenceSum += t.Confidence
	}
	n := float64(len(tokens))
	snap.AvgPerplexity = perplexitySum / n
	snap.AvgConfidence = confidenceSum / n
	snap.RepetitionRatio = 1.0 - float64(win.Distinct())/n
	return snap
}

// recentCount counts tokens that arrived within the trailing rate window.
// The rate is time-based and independent of the window capacity.
func recentCount(tokens []model.Token, now time.Time) int {
	count := 0
	for i := len(tokens) - 1; i >= 0; i-- {
		if now.Sub(tokens[i].ArrivedAt) >= rateWindow {
			break
		}
		count++
	}
	return count
}
