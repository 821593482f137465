package index

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/poiesic/labmatch/core"
)

// Progress reports how far a corpus build has come. The status line is
// rewritten in place as batches complete and closed by Finish.
type Progress struct {
	writer   io.Writer
	texts    int
	batches  int
	interval int

	mu        sync.Mutex
	done      int
	doneBatch int
	reported  int
	startTime time.Time
}

// NewProgress creates a Progress for texts split into batches of
// batchSize. A status line is written whenever at least interval more
// texts have been embedded since the last one.
func NewProgress(w io.Writer, texts, batchSize, interval int) *Progress {
	batches := 0
	if batchSize > 0 {
		batches = (texts + batchSize - 1) / batchSize
	}
	return &Progress{
		writer:   w,
		texts:    texts,
		batches:  batches,
		interval: max(interval, 1),
	}
}

// Start writes the build summary, with the number of distinct non-blank
// texts each field contributes, and starts the clock.
func (p *Progress) Start(records int, perField map[core.Field]int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	parts := make([]string, 0, len(core.SemanticFields))
	for _, f := range core.SemanticFields {
		parts = append(parts, fmt.Sprintf("%s=%d", f, perField[f]))
	}
	fmt.Fprintf(p.writer, "Embedding %d unique texts from %d records [%s] in %d batches\n",
		p.texts, records, strings.Join(parts, " "), p.batches)
	p.startTime = time.Now()
}

// BatchDone records a completed batch of size texts.
func (p *Progress) BatchDone(size int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.startTime.IsZero() {
		return
	}
	p.done = min(p.done+size, p.texts)
	p.doneBatch = min(p.doneBatch+1, p.batches)
	if p.done-p.reported >= p.interval {
		p.report()
		p.reported = p.done
	}
}

// Finish writes the final status line and returns the build duration.
// It only runs for builds that completed every batch.
func (p *Progress) Finish() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.startTime.IsZero() {
		return 0
	}
	p.done = p.texts
	p.doneBatch = p.batches
	p.report()
	fmt.Fprintln(p.writer)
	return time.Since(p.startTime)
}

// report writes the status line. Must be called with lock held.
func (p *Progress) report() {
	percentage := 100.0
	if p.texts > 0 {
		percentage = float64(p.done) / float64(p.texts) * 100.0
	}
	fmt.Fprintf(p.writer, "\rbatch %d/%d, %d/%d texts (%.1f%%)",
		p.doneBatch, p.batches, p.done, p.texts, percentage)
}
