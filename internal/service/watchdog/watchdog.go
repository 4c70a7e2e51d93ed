// Package watchdog ends idle sessions. Every authenticated request
// rearms the timer; when it expires the configured callback runs once.
package watchdog

import (
	"sync"
	"time"
)

type Watchdog struct {
	mu       sync.Mutex
	timeout  time.Duration
	onExpire func()
	timer    *time.Timer
	running  bool
}

func New(timeout time.Duration, onExpire func()) *Watchdog {
	return &Watchdog{timeout: timeout, onExpire: onExpire}
}

// Start arms the timer. Starting an armed watchdog rearms it.
func (w *Watchdog) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.running = true
	w.timer = time.AfterFunc(w.timeout, w.fire)
}

// Reset pushes the deadline out again. A stopped watchdog stays stopped.
func (w *Watchdog) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	w.timer.Stop()
	w.timer = time.AfterFunc(w.timeout, w.fire)
}

// Stop disarms the timer, used on explicit logout.
func (w *Watchdog) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.running = false
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Watchdog) fire() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.timer = nil
	w.mu.Unlock()

	w.onExpire()
}

// Running reports whether the watchdog is armed.
func (w *Watchdog) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
