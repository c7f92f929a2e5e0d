// Package pipeline connects the ingestion loop to the analysis loop.
package pipeline

import "github.com/verte-zerg/tokentop/internal/model"

// Queue is the ordered, unbounded FIFO handoff between the ingestion loop
// and the analysis loop. Push does not block on a slow consumer; a pump
// goroutine buffers whatever has not been drained yet. Order is preserved
// exactly.
type Queue struct {
	in  chan model.Token
	out chan model.Token
}

// NewQueue creates the handoff queue and starts its pump goroutine.
func NewQueue() *Queue {
	q := &Queue{
		in:  make(chan model.Token, 256),
		out: make(chan model.Token),
	}
	go q.pump()
	return q
}

// Push hands an evaluated token to the consumer side.
func (q *Queue) Push(t model.Token) {
	q.in <- t
}

// Close signals end of stream. Tokens already queued remain drainable;
// the consumer channel closes once they are gone.
func (q *Queue) Close() {
	close(q.in)
}

// Tokens returns the consumer side of the queue.
func (q *Queue) Tokens() <-chan model.Token {
	return q.out
}

func (q *Queue) pump() {
	var pending []model.Token
	in := q.in
	for in != nil || len(pending) > 0 {
		var out chan model.Token
		var next model.Token
		if len(pending) > 0 {
			out = q.out
			next = pending[0]
		}
		select {
		case t, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			pending = append(pending, t)
		case out <- next:
			pending = pending[1:]
			if len(pending) == 0 {
				pending = nil
			}
		}
	}
	close(q.out)
}
