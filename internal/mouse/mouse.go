// Package mouse drives the synthetic pointer used for direct-mouse swipe
// rules ("3-finger-drag"). A single dedicated worker goroutine owns the
// chosen backend's native handle (the X11 client connection is not safe
// to share across goroutines) and drains a bounded command queue,
// coalescing consecutive relative-move operations.
package mouse

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Op is one of the three synthetic-pointer operations.
type Op int

const (
	Down Op = iota
	Up
	MoveRelative
)

type command struct {
	op     Op
	p1, p2 int
}

// queueCapacity bounds the worker's command channel.
const queueCapacity = 64

// dropLogInterval rate-limits the "dropped a move" log line.
const dropLogInterval = 10 * time.Second

// Backend is the small two-implementation sink the Worker drives: an
// X11 client connection, or a Wayland command-line injector subprocess.
type Backend interface {
	MouseDown(button int)
	MouseUp(button int)
	MoveRelative(dx, dy int)
	Close()
}

// Worker is the dedicated mouse-synthesis goroutine. Construct one with
// NewWorker and stop it with Close.
type Worker struct {
	backend Backend
	logger  zerolog.Logger
	queue   chan command
	timer   *delayedUp
	done    chan struct{}
	stopped chan struct{}

	dropCount   int64
	lastDropLog atomic.Int64 // unix nanos
}

// NewWorker spawns the worker goroutine that owns backend exclusively
// for the rest of the process lifetime.
func NewWorker(backend Backend, logger zerolog.Logger) *Worker {
	w := &Worker{
		backend: backend,
		logger:  logger,
		queue:   make(chan command, queueCapacity),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	w.timer = newDelayedUp(w)
	go w.run()
	return w
}

// MouseDown enqueues a button press. Down/Up are rare and
// correctness-critical, so this blocks rather than dropping.
func (w *Worker) MouseDown(button int) {
	w.timer.cancel()
	select {
	case w.queue <- command{op: Down, p1: button}:
	case <-w.done:
	}
}

// MouseUpDelay schedules a button release after delay. Any intervening
// MouseDown or MoveRelative cancels the pending release, since that
// means the gesture is clearly still ongoing.
func (w *Worker) MouseUpDelay(button int, delay time.Duration) {
	w.timer.schedule(delay, func() {
		select {
		case w.queue <- command{op: Up, p1: button}:
		case <-w.done:
		}
	})
}

// MoveRelative enqueues a relative pointer move. Update-phase motion is
// lossy by nature: on a full queue the move is dropped and counted
// rather than blocking the event loop.
func (w *Worker) MoveRelative(dx, dy int) {
	w.timer.cancel()
	select {
	case w.queue <- command{op: MoveRelative, p1: dx, p2: dy}:
	default:
		atomic.AddInt64(&w.dropCount, 1)
		w.maybeLogDrop()
	}
}

// DropCount reports how many MoveRelative commands have been dropped
// for a full queue since startup.
func (w *Worker) DropCount() int64 {
	return atomic.LoadInt64(&w.dropCount)
}

func (w *Worker) maybeLogDrop() {
	now := time.Now().UnixNano()
	last := w.lastDropLog.Load()
	if now-last < int64(dropLogInterval) {
		return
	}
	if !w.lastDropLog.CompareAndSwap(last, now) {
		return
	}
	w.logger.Warn().Int64("dropped_total", w.DropCount()).Msg("mouse move queue full, dropping updates")
}

// Close stops the worker and releases the backend. It does not drain
// the queue first: commands still queued are discarded. A backend call
// already in progress is waited for before the backend is closed.
func (w *Worker) Close() {
	close(w.done)
	<-w.stopped
	w.timer.stop()
	w.backend.Close()
}

func (w *Worker) run() {
	defer close(w.stopped)
	for {
		select {
		case <-w.done:
			return
		case c := <-w.queue:
			w.handle(c)
		}
	}
}

// handle applies one command, opportunistically draining and coalescing
// any further MoveRelative commands already queued so a burst of
// updates costs one backend call instead of many.
func (w *Worker) handle(c command) {
	switch c.op {
	case Down:
		w.backend.MouseDown(c.p1)
	case Up:
		w.backend.MouseUp(c.p1)
	case MoveRelative:
		dx, dy := c.p1, c.p2
		for {
			select {
			case next := <-w.queue:
				if next.op != MoveRelative {
					w.backend.MoveRelative(dx, dy)
					w.handle(next)
					return
				}
				dx = saturatingAdd(dx, next.p1)
				dy = saturatingAdd(dy, next.p2)
			default:
				w.backend.MoveRelative(dx, dy)
				return
			}
		}
	}
}

func saturatingAdd(a, b int) int {
	const maxInt = int(^uint(0) >> 1)
	const minInt = -maxInt - 1

	sum := a + b
	// Overflow can only happen when a and b share a sign and the
	// result doesn't.
	if (a > 0 && b > 0 && sum < 0) || (a < 0 && b < 0 && sum > 0) {
		if a > 0 {
			return maxInt
		}
		return minInt
	}
	return sum
}
