package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/verte-zerg/tokentop/internal/model"
	"github.com/verte-zerg/tokentop/internal/token"
)

// Ingest reads the stream line by line, evaluates every token, and pushes
// the records into the queue in production order. It never waits for the
// analysis loop. The queue is closed when the stream ends; read failures
// end the stream without raising an error.
func Ingest(r io.Reader, q *Queue) {
	defer q.Close()
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		for _, text := range token.SplitLine(line) {
			q.Push(token.Evaluate(text, time.Now()))
		}
		if err != nil {
			return
		}
	}
}

// RunRaw re-emits tokens as produced, bypassing all analysis.
func RunRaw(r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		for _, text := range token.SplitLine(line) {
			if _, werr := fmt.Fprintln(w, text); werr != nil {
				return fmt.Errorf("failed to write token: %w", werr)
			}
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}
	}
}

// Drain collects all remaining tokens from the queue, for tests and
// passthrough consumers that do not run the analysis loop.
func Drain(q *Queue) []model.Token {
	var out []model.Token
	for t := range q.Tokens() {
		out = append(out, t)
	}
	return out
}
