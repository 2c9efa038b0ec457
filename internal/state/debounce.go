package state

import (
	"log/slog"
	"sync"
	"time"
)

const defaultDebounceWindow = 90 * time.Millisecond

// Debouncer coalesces rapid calls into a single invocation after a
// quiescence window. The timer slot is single-occupancy: scheduling
// cancels any pending timer before arming a new one, so the function
// never runs more than once per window regardless of call frequency.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	timer  *time.Timer
}

// NewDebouncer builds a Debouncer; a non-positive window uses the default.
func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = defaultDebounceWindow
	}
	return &Debouncer{window: window}
}

// Schedule arms fn to run once after the quiescence window, cancelling any
// previously scheduled run. An error returned by fn is swallowed here (a
// failed background refresh must not crash the input handler) but logged
// for diagnostics.
func (d *Debouncer) Schedule(fn func() error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		if err := fn(); err != nil {
			slog.Debug("debounced refresh failed", "error", err)
		}
	})
}

// Stop cancels any pending invocation.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
