package pipeline

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/verte-zerg/tokentop/internal/alert"
	"github.com/verte-zerg/tokentop/internal/model"
	"github.com/verte-zerg/tokentop/internal/pattern"
	"github.com/verte-zerg/tokentop/internal/token"
)

func testConfig() model.Config {
	return model.Config{
		Interval:                  10 * time.Millisecond,
		BufferSize:                1000,
		RepetitionThreshold:       0.4,
		PerplexityThreshold:       20.0,
		ConfidenceThreshold:       0.5,
		NGramSize:                 pattern.DefaultNGramSize,
		NGramRepeatThreshold:      pattern.DefaultNGramRepeatThreshold,
		ListingMinCount:           pattern.DefaultListingMinCount,
		UncertaintyRatioThreshold: pattern.DefaultUncertaintyRatio,
		ListingPrefixes:           pattern.DefaultListingPrefixes,
		HedgingWords:              pattern.DefaultHedgingWords,
		DisclaimerMarkers:         alert.DefaultDisclaimerMarkers,
		MarkerTail:                alert.DefaultMarkerTail,
	}
}

// recorder collects every rendered snapshot.
type recorder struct {
	snaps []model.Snapshot
}

func (r *recorder) Render(s model.Snapshot) {
	r.snaps = append(r.snaps, s)
}

func TestQueuePreservesOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := NewQueue()
	const n = 500
	go func() {
		for i := 0; i < n; i++ {
			q.Push(model.Token{Text: fmt.Sprintf("t%d", i)})
		}
		q.Close()
	}()

	got := Drain(q)
	if len(got) != n {
		t.Fatalf("expected %d tokens, got %d", n, len(got))
	}
	for i, tok := range got {
		if want := fmt.Sprintf("t%d", i); tok.Text != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, tok.Text)
		}
	}
}

func TestQueueProducerDoesNotWaitForConsumer(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := NewQueue()
	// No consumer draining while all pushes happen.
	const n = 10000
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < n; i++ {
			q.Push(model.Token{Text: "x"})
		}
		q.Close()
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("producer blocked on undrained queue")
	}
	if got := len(Drain(q)); got != n {
		t.Fatalf("expected %d tokens, got %d", n, got)
	}
}

func TestEngineDrainsAndRendersFinalSnapshot(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := NewQueue()
	go Ingest(strings.NewReader("the cat sat\non the mat\n"), q)

	rec := &recorder{}
	engine := NewEngine(testConfig(), rec)
	engine.Run(q.Tokens())

	if len(rec.snaps) == 0 {
		t.Fatalf("expected at least the final render")
	}
	final := rec.snaps[len(rec.snaps)-1]
	if final.WindowLen != 6 {
		t.Fatalf("expected all 6 tokens in window, got %d", final.WindowLen)
	}
	if len(final.Recent) != 6 {
		t.Fatalf("expected 6 recent tokens, got %d", len(final.Recent))
	}
	if final.Recent[0].Text != "the" || final.Recent[5].Text != "mat" {
		t.Fatalf("unexpected token order: %v", final.Recent)
	}
}

func TestEngineRaisesMarkerWarning(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := NewQueue()
	go Ingest(strings.NewReader("I cannot browse real-time data\n"), q)

	rec := &recorder{}
	engine := NewEngine(testConfig(), rec)
	engine.Run(q.Tokens())

	final := rec.snaps[len(rec.snaps)-1]
	found := false
	for _, w := range final.Warnings {
		if w == "Hallucination marker: I cannot" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected marker warning, got %v", final.Warnings)
	}
}

func TestEngineLatestTracksDrains(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := NewQueue()
	rec := &recorder{}
	cfg := testConfig()
	cfg.Interval = time.Hour // no timer renders during the test
	engine := NewEngine(cfg, rec)

	go func() {
		for i := 0; i < 25; i++ {
			q.Push(token.Evaluate(fmt.Sprintf("w%d", i), time.Now()))
		}
		q.Close()
	}()
	engine.Run(q.Tokens())

	if got := engine.Latest().WindowLen; got != 25 {
		t.Fatalf("expected latest snapshot to cover 25 tokens, got %d", got)
	}
	// Only the final end-of-stream render may have fired.
	if len(rec.snaps) != 1 {
		t.Fatalf("expected exactly the final render, got %d", len(rec.snaps))
	}
}

func TestRunRaw(t *testing.T) {
	var out bytes.Buffer
	if err := RunRaw(strings.NewReader("a b\nc\n"), &out); err != nil {
		t.Fatalf("raw mode failed: %v", err)
	}
	if got, want := out.String(), "a\nb\nc\n"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestIngestSkipsUndecodableLines(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := NewQueue()
	go Ingest(strings.NewReader("good line\n\xff\xfe\nmore\n"), q)
	got := Drain(q)
	want := []string{"good", "line", "more"}
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %v", len(want), got)
	}
	for i := range want {
		if got[i].Text != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], got[i].Text)
		}
	}
}
