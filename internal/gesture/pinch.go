package gesture

import (
	"time"

	"gesturesd/internal/rule"
)

// pinchState mirrors swipeState for the pinch gesture family. scale is
// tracked as an absolute ratio against the gesture's start (1.0 at
// begin), matching the libinput convention input.Event.Scale already
// follows.
type pinchState struct {
	fingers   int
	direction rule.PinchDir
	scale     float64
	angle     float64
	throttle  *throttle
}

func (l *Loop) beginPinch(fingers int) {
	l.pinch = &pinchState{
		fingers:   fingers,
		direction: rule.PinchAny,
		scale:     1.0,
		throttle:  newThrottle(l.fps),
	}

	for _, r := range l.index.PinchRules(fingers) {
		if r.Direction != rule.PinchAny {
			continue
		}
		if r.Start != "" {
			l.execer.ExecCommand(substitute(r.Start, 0, 0, 0, 1.0))
		}
	}
}

func (l *Loop) updatePinch(scale, angleDelta float64) {
	p := l.pinch
	if p == nil {
		return
	}
	p.scale = scale
	p.angle += angleDelta
	p.direction = rule.PinchDirection(scale, p.angle)

	now := time.Now()
	if !p.throttle.allow(now) {
		return
	}

	for _, r := range l.index.PinchRules(p.fingers) {
		if r.Direction != rule.PinchAny && r.Direction != p.direction {
			continue
		}
		if r.Update != "" {
			l.execer.ExecUpdate(substitute(r.Update, 0, 0, angleDelta, scale))
		}
	}
}

func (l *Loop) endPinch(cancelled bool) {
	p := l.pinch
	l.pinch = nil
	if p == nil {
		return
	}

	finalDir := rule.PinchDirection(p.scale, p.angle)
	for _, r := range l.index.PinchRules(p.fingers) {
		if r.Direction != rule.PinchAny && r.Direction != finalDir {
			continue
		}
		if r.End != "" && !cancelled {
			l.execer.ExecCommand(substitute(r.End, 0, 0, p.angle, p.scale))
		}
	}
}
