// Package window implements the bounded rolling token window.
package window

import "github.com/verte-zerg/tokentop/internal/model"

// Store is a fixed-capacity FIFO of evaluated tokens with a frequency
// table kept exactly consistent with the current contents. It is owned by
// a single goroutine; no internal locking.
type Store struct {
	buf  []model.Token
	head int
	size int
	freq map[string]int
}

// New creates a store with the given capacity. Capacity must be positive
// and never changes afterwards.
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = 1
	}
	return &Store{
		buf:  make([]model.Token, capacity),
		freq: make(map[string]int),
	}
}

// Push appends a token, evicting the oldest one first when the store is
// full. The frequency table is updated in the same step.
func (s *Store) Push(t model.Token) {
	if s.size == len(s.buf) {
		old := s.buf[s.head]
		if n := s.freq[old.Text]; n <= 1 {
			delete(s.freq, old.Text)
		} else {
			s.freq[old.Text] = n - 1
		}
		s.buf[s.head] = t
		s.head = (s.head + 1) % len(s.buf)
	} else {
		s.buf[(s.head+s.size)%len(s.buf)] = t
		s.size++
	}
	s.freq[t.Text]++
}

// Len returns the number of tokens currently held.
func (s *Store) Len() int {
	return s.size
}

// Cap returns the fixed capacity.
func (s *Store) Cap() int {
	return len(s.buf)
}

// Tokens returns the current contents in insertion order.
func (s *Store) Tokens() []model.Token {
	out := make([]model.Token, 0, s.size)
	for i := 0; i < s.size; i++ {
		out = append(out, s.buf[(s.head+i)%len(s.buf)])
	}
	return out
}

// Tail returns up to n of the most recent tokens in insertion order.
func (s *Store) Tail(n int) []model.Token {
	if n > s.size {
		n = s.size
	}
	out := make([]model.Token, 0, n)
	for i := s.size - n; i < s.size; i++ {
		out = append(out, s.buf[(s.head+i)%len(s.buf)])
	}
	return out
}

// Distinct returns the number of distinct token texts currently held.
func (s *Store) Distinct() int {
	return len(s.freq)
}

// Count returns the occurrence count of a token text within the window.
func (s *Store) Count(text string) int {
	return s.freq[text]
}

// EachCount calls fn for every (text, count) pair in the frequency table.
func (s *Store) EachCount(fn func(text string, count int)) {
	for text, count := range s.freq {
		fn(text, count)
	}
}
