package input

import "testing"

func TestParseLineSwipeBegin(t *testing.T) {
	ev, ok := parseLine(" event11  GESTURE_SWIPE_BEGIN      +37.797s\t3")
	if !ok {
		t.Fatal("expected a decoded event")
	}
	if ev.Kind != SwipeBegin || ev.Fingers != 3 {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestParseLineSwipeUpdate(t *testing.T) {
	ev, ok := parseLine(" event11  GESTURE_SWIPE_UPDATE     +37.800s\t3 delta 1.20/-0.30 (6.00/-1.50 unaccelerated)")
	if !ok {
		t.Fatal("expected a decoded event")
	}
	if ev.Kind != SwipeUpdate || ev.Dx != 1.20 || ev.Dy != -0.30 {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestParseLineSwipeEndCancelled(t *testing.T) {
	ev, ok := parseLine(" event11  GESTURE_SWIPE_END        +37.900s\t3 [cancelled]")
	if !ok {
		t.Fatal("expected a decoded event")
	}
	if ev.Kind != SwipeEnd || !ev.Cancelled {
		t.Fatalf("expected cancelled swipe end: %+v", ev)
	}
}

func TestParseLinePinchUpdate(t *testing.T) {
	ev, ok := parseLine(" event11  GESTURE_PINCH_UPDATE     +37.800s\t2 delta 1.2/0.3 (1.0/1.0 unaccelerated) 1.250000 @ 15.00")
	if !ok {
		t.Fatal("expected a decoded event")
	}
	if ev.Kind != PinchUpdate || ev.Scale != 1.25 || ev.AngleDelta != 15.0 {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestParseLineHoldBegin(t *testing.T) {
	ev, ok := parseLine(" event11  GESTURE_HOLD_BEGIN       +37.800s\t4")
	if !ok || ev.Kind != HoldBegin || ev.Fingers != 4 {
		t.Fatalf("unexpected result: %+v ok=%v", ev, ok)
	}
}

func TestParseLineIgnoresNonGestureLines(t *testing.T) {
	lines := []string{
		" event11  TOUCH_MOTION             +37.797s\t1 (1) 26.98/42.53 (61.39/58.07mm)",
		" event11  POINTER_MOTION           +37.797s\t1.00/1.00",
		"",
		"-event11  DEVICE_ADDED             +0.000s\tfoo",
	}
	for _, l := range lines {
		if _, ok := parseLine(l); ok {
			t.Errorf("expected line to be ignored: %q", l)
		}
	}
}

func TestDeviceListHasGestureCapability(t *testing.T) {
	withGesture := `Device:           SynPS/2 Synaptics TouchPad
Kernel:           /dev/input/event5
Capabilities:     pointer gesture

Device:           Power Button
Kernel:           /dev/input/event1
Capabilities:     keyboard
`
	if !deviceListHasGestureCapability(withGesture) {
		t.Fatal("expected gesture capability to be detected")
	}

	withoutGesture := `Device:           Power Button
Kernel:           /dev/input/event1
Capabilities:     keyboard
`
	if deviceListHasGestureCapability(withoutGesture) {
		t.Fatal("expected no gesture capability to be detected")
	}
}
