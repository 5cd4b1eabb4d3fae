package input

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/lixenwraith/aether/core"
)

// Transcriber delivers finalized speech transcripts
type Transcriber interface {
	Transcripts(ctx context.Context) <-chan string
}

// LineTranscriber reads one finalized transcript per line, e.g. from a FIFO fed by a recognizer
type LineTranscriber struct {
	r io.Reader
}

// NewLineTranscriber creates a transcriber over r
func NewLineTranscriber(r io.Reader) *LineTranscriber {
	return &LineTranscriber{r: r}
}

// Transcripts streams non-blank trimmed lines until EOF, a read error or ctx is done
// A reader blocked in Read is not interrupted by ctx, closing the source unblocks it
func (t *LineTranscriber) Transcripts(ctx context.Context) <-chan string {
	out := make(chan string)
	core.Go(func() {
		defer close(out)
		sc := bufio.NewScanner(t.r)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			select {
			case out <- line:
			case <-ctx.Done():
				return
			}
		}
	})
	return out
}
