// Package input wraps the kernel-originated multi-touch gesture event
// stream behind a small, pollable interface. Device enumeration and
// gesture-capability gating are treated as an external collaborator's
// job; this package states its contract and implements it on top of
// `libinput debug-events`, which already performs that enumeration and
// emits phased GESTURE_* lines.
package input

import "errors"

// Kind distinguishes the three gesture families an Event can carry.
type Kind int

const (
	SwipeBegin Kind = iota
	SwipeUpdate
	SwipeEnd
	PinchBegin
	PinchUpdate
	PinchEnd
	HoldBegin
	HoldEnd
)

// Event is a single decoded phase transition of an in-flight gesture.
type Event struct {
	Kind       Kind
	Fingers    int
	Dx, Dy     float64 // swipe update
	Scale      float64 // pinch update, absolute ratio (1.0 at begin)
	AngleDelta float64 // pinch update, degrees, per-event delta
	Cancelled  bool    // swipe/pinch/hold end
}

// ErrNoGestureDevice is returned by Open when no device reporting the
// Gesture capability can be found. This is a fatal startup condition.
var ErrNoGestureDevice = errors.New("input: no gesture-capable device found")

// Source is the pollable interface the event loop consumes. Poll and
// Dispatch are never called concurrently, since the event loop is
// single-threaded, so implementations need no internal locking of
// their own event buffer.
type Source interface {
	// Fd returns the file descriptor the caller should multiplex on.
	Fd() int
	// Poll blocks up to timeoutMS for the fd to become readable. It
	// returns ready=false, err=nil on a plain timeout, and a non-nil
	// err only for unrecoverable poll failures (not EINTR, which Poll
	// retries internally).
	Poll(timeoutMS int) (ready bool, err error)
	// Dispatch drains and decodes all currently available events
	// without blocking.
	Dispatch() ([]Event, error)
	// Close releases the underlying device/process resources.
	Close() error
}
