package focal

import (
	"io"
	"sync/atomic"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ProgressFunc receives the number of cells written so far and the total
// for the run. It is called from the engine's control goroutine after each
// completed write.
type ProgressFunc func(done, total int64)

// progress accumulates cells written. Updates only happen after a write
// completes, never from worker goroutines.
type progress struct {
	done  atomic.Int64
	total atomic.Int64
	fn    ProgressFunc
}

func (p *progress) reset(total int64) {
	p.done.Store(0)
	p.total.Store(total)
}

func (p *progress) add(cells int64) {
	done := p.done.Add(cells)
	if p.fn != nil {
		p.fn(done, p.total.Load())
	}
}

// TextProgress returns a ProgressFunc that rewrites a single status line on
// w, with thousands separators, and ends it with a newline once the total is
// reached. Write errors are ignored.
func TextProgress(w io.Writer) ProgressFunc {
	p := message.NewPrinter(language.English)
	return func(done, total int64) {
		pct := 100.0
		if total > 0 {
			pct = 100 * float64(done) / float64(total)
		}
		_, _ = p.Fprintf(w, "\rwritten %d of %d cells (%.1f%%)", done, total, pct)
		if done >= total {
			_, _ = io.WriteString(w, "\n")
		}
	}
}
