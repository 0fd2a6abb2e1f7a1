package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// ProgressReporter reports progress for long-running operations.
type ProgressReporter interface {
	Start(total int64)
	Update(current int64)
	Finish()
	Error(err error)
}

const progressBarWidth = 30

// SimpleProgress redraws a single status line: a bar, the percentage, the
// count and the elapsed time.
type SimpleProgress struct {
	w    io.Writer
	unit string

	mu      sync.Mutex
	total   int64
	done    int64
	started time.Time
}

// NewProgressReporter returns a reporter drawing on w (stderr when nil, so
// command output can still be piped).
func NewProgressReporter(w io.Writer, unit string) ProgressReporter {
	if w == nil {
		w = os.Stderr
	}
	if unit == "" {
		unit = "items"
	}
	return &SimpleProgress{w: w, unit: unit}
}

func (p *SimpleProgress) Start(total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total, p.done, p.started = total, 0, time.Now()
	p.draw()
}

func (p *SimpleProgress) Update(current int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done = current
	p.draw()
}

// Finish draws the completed bar and ends the line.
func (p *SimpleProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done = p.total
	p.draw()
	fmt.Fprintln(p.w)
}

func (p *SimpleProgress) Error(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.w, "\n✗ Error: %v\n", err)
}

// draw is a no-op until a positive total is known.
func (p *SimpleProgress) draw() {
	if p.total <= 0 {
		return
	}

	frac := min(float64(p.done)/float64(p.total), 1)
	filled := int(frac * progressBarWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)
	elapsed := time.Since(p.started).Round(time.Millisecond)

	fmt.Fprintf(p.w, "\r[%s] %3.0f%% %d/%d %s (%s)", bar, frac*100, p.done, p.total, p.unit, elapsed)
}
