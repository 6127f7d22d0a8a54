// Package gesture is the event-dispatch core: it drives the input
// source's poll loop, classifies in-flight swipe/pinch/hold gestures
// against the current rule index, and fans matching rules out to shell
// commands or synthetic mouse motion. This is the subject of the
// specification this daemon implements.
package gesture

import (
	"time"

	"github.com/rs/zerolog"

	"gesturesd/internal/input"
	"gesturesd/internal/rule"
)

// CommandExecer is the duck-typed subset of *execpool.Pool the loop
// needs. Depending on this interface rather than the concrete type
// keeps internal/gesture from importing internal/execpool.
type CommandExecer interface {
	ExecCommand(command string)
	ExecUpdate(command string)
}

// MouseSink is the duck-typed subset of *mouse.Worker a direct-mouse
// swipe rule drives.
type MouseSink interface {
	MouseDown(button int)
	MouseUpDelay(button int, delay time.Duration)
	MoveRelative(dx, dy int)
}

// directMouseButton is the button direct-mouse swipe rules synthesize.
// The rule schema has no per-rule button field, so every direct-mouse
// rule drives a fixed left-button drag.
const directMouseButton = 1

// pollTimeoutMS bounds how long one iteration of Run blocks on the
// input source, so shutdown and rule-index staleness are both checked
// at least this often even during a quiet touchpad.
const pollTimeoutMS = 100

// Loop owns the single-threaded gesture state machine. It is not safe
// for concurrent use: exactly one goroutine must drive gesture
// dispatch.
type Loop struct {
	source input.Source
	rules  *rule.Cell
	execer CommandExecer
	mouse  MouseSink // nil when no mouse backend is configured
	fps    int
	logger zerolog.Logger

	index      *rule.Index
	indexBuilt bool

	swipe *swipeState
	pinch *pinchState
	hold  *holdState
}

// New constructs a Loop. mouse may be nil if the daemon was started
// without a mouse backend; direct-mouse rules are then silently
// skipped rather than treated as an error.
func New(source input.Source, rules *rule.Cell, execer CommandExecer, mouseSink MouseSink, fps int, logger zerolog.Logger) *Loop {
	if fps <= 0 {
		fps = 60
	}
	return &Loop{
		source: source,
		rules:  rules,
		execer: execer,
		mouse:  mouseSink,
		fps:    fps,
		logger: logger,
	}
}

// Run blocks, driving the poll/dispatch loop until done is closed or
// the input source reports an unrecoverable poll failure. Dispatch
// errors (a dying libinput subprocess, a one-off decode failure) are
// logged and swallowed rather than unwound to the caller, so a
// transient hiccup in event decoding doesn't take the whole daemon
// down with it.
func (l *Loop) Run(done <-chan struct{}) error {
	for {
		select {
		case <-done:
			return nil
		default:
		}

		l.refreshIndex()

		ready, err := l.source.Poll(pollTimeoutMS)
		if err != nil {
			return err
		}
		if !ready {
			continue
		}

		events, err := l.source.Dispatch()
		for _, ev := range events {
			l.handle(ev)
		}
		if err != nil {
			l.logger.Warn().Err(err).Msg("dispatching input events failed, continuing")
		}
	}
}

func (l *Loop) refreshIndex() {
	if l.indexBuilt && !l.index.Stale() {
		return
	}
	l.index = rule.Build(l.rules.Load())
	l.indexBuilt = true
}

func (l *Loop) handle(ev input.Event) {
	switch ev.Kind {
	case input.SwipeBegin:
		l.beginSwipe(ev.Fingers)
	case input.SwipeUpdate:
		l.updateSwipe(ev.Dx, ev.Dy)
	case input.SwipeEnd:
		l.endSwipe(ev.Cancelled)
	case input.PinchBegin:
		l.beginPinch(ev.Fingers)
	case input.PinchUpdate:
		l.updatePinch(ev.Scale, ev.AngleDelta)
	case input.PinchEnd:
		l.endPinch(ev.Cancelled)
	case input.HoldBegin:
		l.beginHold(ev.Fingers)
	case input.HoldEnd:
		l.endHold(ev.Cancelled)
	}
}
