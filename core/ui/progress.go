package ui

import (
	"fmt"
	"sync"
	"time"
)

// BatchProgress reports per-file outcomes while inventories are estimated
// concurrently. Lines never interleave.
type BatchProgress struct {
	w     *Writer
	mu    sync.Mutex
	total int
	done  int
	fails int
	start time.Time
}

// NewBatchProgress creates a reporter for total files
func (w *Writer) NewBatchProgress(total int) *BatchProgress {
	return &BatchProgress{w: w, total: total, start: time.Now()}
}

// Done records a finished file
func (p *BatchProgress) Done(path string, totalHours float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	p.w.Success("[%d/%d] %s: %s", p.done+p.fails, p.total, path, hours(totalHours))
}

// Failed records a file that could not be estimated
func (p *BatchProgress) Failed(path string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fails++
	p.w.Error("[%d/%d] %s: %v", p.done+p.fails, p.total, path, err)
}

// Finish prints the closing line
func (p *BatchProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	msg := "%d estimated, %d failed in %s"
	if p.fails > 0 {
		p.w.Warning(msg, p.done, p.fails, formatDuration(time.Since(p.start)))
		return
	}
	p.w.Info(msg, p.done, p.fails, formatDuration(time.Since(p.start)))
}

// Counts returns finished and failed totals
func (p *BatchProgress) Counts() (done, failed int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done, p.fails
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "< 1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
}
