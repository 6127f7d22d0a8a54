package gesture

import "time"

// throttle admits at most one update per period, where period is
// derived from an fps figure. It gates both shell-command dispatch and
// mouse MoveRelative calls uniformly, since forwarding raw kernel
// motion as a mouse move this frequently is just as wasteful as
// spamming shell commands would be.
type throttle struct {
	period time.Duration
	last   time.Time
}

func newThrottle(fps int) *throttle {
	return &throttle{period: time.Duration(1_000_000/fps) * time.Microsecond}
}

// allow reports whether enough time has passed since the last admitted
// update, and if so records now as the new baseline.
func (t *throttle) allow(now time.Time) bool {
	if now.Sub(t.last) < t.period {
		return false
	}
	t.last = now
	return true
}

func (t *throttle) reset() {
	t.last = time.Time{}
}
