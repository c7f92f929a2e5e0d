// Package token provides tokenization and per-token heuristic scoring.
package token

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/tokentop/internal/model"
)

// SplitLine splits a line into whitespace-delimited tokens. Lines that do
// not decode as UTF-8 are treated as empty.
func SplitLine(line string) []string {
	if !utf8.ValidString(line) {
		return nil
	}
	return strings.Fields(line)
}

// Evaluate scores a raw token at its arrival time. It is stateless and
// accepts any input value.
func Evaluate(text string, arrivedAt time.Time) model.Token {
	return model.Token{
		Text:            text,
		ArrivedAt:       arrivedAt,
		Perplexity:      perplexity(text),
		Confidence:      confidence(text),
		RepetitiveShape: repetitiveShape(text),
	}
}

// perplexity is a synthetic score from token length bands, not a language
// model measure. Bands and slopes follow the established defaults.
func perplexity(text string) float64 {
	n := utf8.RuneCountInString(text)
	switch {
	case n <= 3:
		return 5.0 + float64(n)*2.0
	case n <= 8:
		return 10.0 + float64(n)*1.5
	default:
		return 15.0 + float64(n)*0.5
	}
}

func confidence(text string) float64 {
	hasDigit := false
	allLetters := text != ""
	for _, r := range text {
		if unicode.IsDigit(r) {
			hasDigit = true
		}
		if !unicode.IsLetter(r) {
			allLetters = false
		}
	}
	switch {
	case allLetters:
		return 0.8
	case hasDigit:
		return 0.6
	default:
		return 0.4
	}
}

// repetitiveShape reports whether any two adjacent runes are equal.
// Tokens shorter than three runes never qualify.
func repetitiveShape(text string) bool {
	runes := []rune(text)
	if len(runes) < 3 {
		return false
	}
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1] {
			return true
		}
	}
	return false
}
