package pipeline

import (
	"time"

	"github.com/verte-zerg/tokentop/internal/alert"
	"github.com/verte-zerg/tokentop/internal/metrics"
	"github.com/verte-zerg/tokentop/internal/model"
	"github.com/verte-zerg/tokentop/internal/pattern"
	"github.com/verte-zerg/tokentop/internal/window"
)

// Renderer receives the snapshot produced at each render tick.
type Renderer interface {
	Render(model.Snapshot)
}

const (
	recentTokenCount = 10
	rateHistorySize  = 30
)

// Engine is the analysis loop: it owns the window exclusively, drains the
// queue, recomputes metrics, patterns, and warnings, and renders on the
// interval cadence.
type Engine struct {
	cfg      model.Config
	win      *window.Store
	detector *pattern.Detector
	checker  *alert.Checker
	renderer Renderer

	latest      model.Snapshot
	rateHistory []float64
}

// NewEngine constructs the analysis loop with an empty window.
func NewEngine(cfg model.Config, r Renderer) *Engine {
	return &Engine{
		cfg:      cfg,
		win:      window.New(cfg.BufferSize),
		detector: pattern.NewDetector(cfg),
		checker:  alert.NewChecker(cfg),
		renderer: r,
	}
}

// Run consumes the queue until the stream ends. The idle wait is a
// blocking receive with a timeout equal to the remaining time until the
// next render tick. On end of stream every remaining token is drained,
// one final snapshot is rendered, and the loop exits.
func (e *Engine) Run(tokens <-chan model.Token) {
	timer := time.NewTimer(e.cfg.Interval)
	defer timer.Stop()
	nextRender := time.Now().Add(e.cfg.Interval)

	for {
		wait := time.Until(nextRender)
		if wait < 0 {
			wait = 0
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)

		select {
		case t, ok := <-tokens:
			if !ok {
				e.render(time.Now())
				return
			}
			e.win.Push(t)
			if closed := e.drainPending(tokens); closed {
				e.render(time.Now())
				return
			}
			now := time.Now()
			e.latest = e.snapshot(now)
			if !now.Before(nextRender) {
				e.render(now)
				nextRender = now.Add(e.cfg.Interval)
			}
		case <-timer.C:
			now := time.Now()
			e.render(now)
			nextRender = now.Add(e.cfg.Interval)
		}
	}
}

// Latest returns the snapshot recomputed after the most recent drain.
func (e *Engine) Latest() model.Snapshot {
	return e.latest
}

// drainPending consumes everything currently queued without blocking.
// It reports whether the queue was closed and emptied.
func (e *Engine) drainPending(tokens <-chan model.Token) bool {
	for {
		select {
		case t, ok := <-tokens:
			if !ok {
				return true
			}
			e.win.Push(t)
		default:
			return false
		}
	}
}

func (e *Engine) snapshot(now time.Time) model.Snapshot {
	snap := metrics.Compute(e.win, now)
	snap.Patterns = e.detector.Detect(e.win.Tokens())
	snap.Warnings = e.checker.Check(snap, e.win.Tail(e.cfg.MarkerTail))
	snap.Recent = e.win.Tail(recentTokenCount)
	return snap
}

func (e *Engine) render(now time.Time) {
	snap := e.snapshot(now)
	e.rateHistory = append(e.rateHistory, snap.TokensPerSecond)
	if len(e.rateHistory) > rateHistorySize {
		e.rateHistory = e.rateHistory[len(e.rateHistory)-rateHistorySize:]
	}
	snap.RateHistory = append([]float64(nil), e.rateHistory...)
	e.latest = snap
	e.renderer.Render(snap)
}
