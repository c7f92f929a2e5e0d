package token

import (
	"testing"
	"time"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{name: "simple", line: "the cat sat", want: []string{"the", "cat", "sat"}},
		{name: "extra whitespace", line: "  a \t b  ", want: []string{"a", "b"}},
		{name: "empty", line: "", want: nil},
		{name: "blank", line: "   ", want: nil},
		{name: "invalid utf8", line: "ok \xff\xfe broken", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLine(tt.line)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d tokens, got %v", len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("token %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestEvaluatePerplexityBands(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"a", 7.0},          // short band: 5 + 1*2
		{"cat", 11.0},       // short band: 5 + 3*2
		{"word", 16.0},      // middle band: 10 + 4*1.5
		{"eightlet", 22.0},  // middle band: 10 + 8*1.5
		{"ninecharss", 20.0}, // long band: 15 + 10*0.5
	}
	for _, tt := range tests {
		got := Evaluate(tt.text, time.Now())
		if got.Perplexity != tt.want {
			t.Fatalf("%q: expected perplexity %.1f, got %.1f", tt.text, tt.want, got.Perplexity)
		}
	}
}

func TestEvaluateConfidence(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"alpha", 0.8},
		{"mixed9", 0.6},
		{"123", 0.6},
		{"?!", 0.4},
		{"foo-bar", 0.4},
	}
	for _, tt := range tests {
		got := Evaluate(tt.text, time.Now())
		if got.Confidence != tt.want {
			t.Fatalf("%q: expected confidence %.1f, got %.1f", tt.text, tt.want, got.Confidence)
		}
	}
}

func TestEvaluateRepetitiveShape(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"letter", true},
		{"abc", false},
		{"aa", false}, // below minimum length
		{"aaa", true},
		{"", false},
	}
	for _, tt := range tests {
		got := Evaluate(tt.text, time.Now())
		if got.RepetitiveShape != tt.want {
			t.Fatalf("%q: expected repetitive=%v, got %v", tt.text, tt.want, got.RepetitiveShape)
		}
	}
}

func TestEvaluateKeepsArrivalTime(t *testing.T) {
	at := time.Unix(100, 0)
	got := Evaluate("token", at)
	if !got.ArrivedAt.Equal(at) {
		t.Fatalf("expected arrival time %v, got %v", at, got.ArrivedAt)
	}
	if got.Text != "token" {
		t.Fatalf("expected text %q, got %q", "token", got.Text)
	}
}
