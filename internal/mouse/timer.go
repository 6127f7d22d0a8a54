package mouse

import (
	"sync"
	"time"
)

// delayedUp tracks at most one pending mouse_up_delay timer: scheduling
// a new release or cancelling (on any further down/move activity)
// replaces whatever was pending.
type delayedUp struct {
	w *Worker

	mu    sync.Mutex
	timer *time.Timer
}

func newDelayedUp(w *Worker) *delayedUp {
	return &delayedUp{w: w}
}

func (d *delayedUp) schedule(delay time.Duration, fire func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(delay, fire)
}

func (d *delayedUp) cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *delayedUp) stop() {
	d.cancel()
}
