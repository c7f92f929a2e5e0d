package window

import (
	"fmt"
	"testing"

	"github.com/verte-zerg/tokentop/internal/model"
)

func tok(text string) model.Token {
	return model.Token{Text: text}
}

func TestPushBoundsAndFrequency(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		pushes   int
	}{
		{name: "under capacity", capacity: 10, pushes: 4},
		{name: "at capacity", capacity: 10, pushes: 10},
		{name: "over capacity", capacity: 10, pushes: 37},
		{name: "capacity one", capacity: 1, pushes: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.capacity)
			for i := 0; i < tt.pushes; i++ {
				s.Push(tok(fmt.Sprintf("t%d", i%3)))
			}
			wantLen := tt.pushes
			if wantLen > tt.capacity {
				wantLen = tt.capacity
			}
			if s.Len() != wantLen {
				t.Fatalf("expected length %d, got %d", wantLen, s.Len())
			}
			sum := 0
			s.EachCount(func(text string, count int) {
				if count == 0 {
					t.Fatalf("zero-count entry for %q", text)
				}
				sum += count
			})
			if sum != s.Len() {
				t.Fatalf("frequency counts sum to %d, expected %d", sum, s.Len())
			}
		})
	}
}

func TestEvictionOrder(t *testing.T) {
	s := New(3)
	for _, text := range []string{"a", "b", "c", "d", "e"} {
		s.Push(tok(text))
	}
	got := s.Tokens()
	want := []string{"c", "d", "e"}
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Text != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], got[i].Text)
		}
	}
	if s.Count("a") != 0 || s.Count("b") != 0 {
		t.Fatalf("evicted tokens still counted: a=%d b=%d", s.Count("a"), s.Count("b"))
	}
	if s.Distinct() != 3 {
		t.Fatalf("expected 3 distinct tokens, got %d", s.Distinct())
	}
}

func TestFrequencyDecrementOnEvict(t *testing.T) {
	s := New(2)
	s.Push(tok("x"))
	s.Push(tok("x"))
	if s.Count("x") != 2 {
		t.Fatalf("expected count 2, got %d", s.Count("x"))
	}
	s.Push(tok("y"))
	if s.Count("x") != 1 {
		t.Fatalf("expected count 1 after eviction, got %d", s.Count("x"))
	}
	s.Push(tok("y"))
	if s.Count("x") != 0 {
		t.Fatalf("expected x fully evicted, got count %d", s.Count("x"))
	}
	found := false
	s.EachCount(func(text string, _ int) {
		if text == "x" {
			found = true
		}
	})
	if found {
		t.Fatalf("expected no table entry for evicted text")
	}
}

func TestTail(t *testing.T) {
	s := New(5)
	for _, text := range []string{"a", "b", "c", "d", "e", "f"} {
		s.Push(tok(text))
	}
	tail := s.Tail(3)
	want := []string{"d", "e", "f"}
	for i := range want {
		if tail[i].Text != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], tail[i].Text)
		}
	}
	if got := s.Tail(100); len(got) != 5 {
		t.Fatalf("oversized tail: expected 5 tokens, got %d", len(got))
	}
}
