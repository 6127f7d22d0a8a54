package gesture

// holdState only needs to remember whether a hold with matching rules
// actually fired, so endHold can decide whether a cancelled hold should
// suppress anything — holds have no end action to suppress, but the
// struct exists so the symmetric Begin/End pairing in gesture.go reads
// the same as swipe and pinch.
type holdState struct {
	fingers int
	fired   bool
}

func (l *Loop) beginHold(fingers int) {
	l.hold = &holdState{fingers: fingers}
	for _, r := range l.index.HoldRules(fingers) {
		if r.Action == "" {
			continue
		}
		l.execer.ExecCommand(r.Action)
		l.hold.fired = true
	}
}

func (l *Loop) endHold(cancelled bool) {
	l.hold = nil
}
