package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// libinputSource drains "libinput debug-events", which already performs
// the device enumeration, capability gating, and restricted-open dance
// the external input library owns, and re-emits its GESTURE_* lines as
// typed Events.
type libinputSource struct {
	cmd    *exec.Cmd
	file   *os.File
	reader *bufio.Reader
}

// Open starts "libinput debug-events" after confirming at least one
// device reports the Gesture capability. It returns ErrNoGestureDevice,
// a fatal startup condition, if none are found.
func Open() (Source, error) {
	if _, err := exec.LookPath("libinput"); err != nil {
		return nil, fmt.Errorf("input: libinput not found in PATH: %w", err)
	}

	ok, err := HasGestureDevice()
	if err != nil {
		return nil, fmt.Errorf("input: probing devices: %w", err)
	}
	if !ok {
		return nil, ErrNoGestureDevice
	}

	cmd := exec.Command("libinput", "debug-events")
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("input: creating stdout pipe: %w", err)
	}
	f, ok := stdout.(*os.File)
	if !ok {
		return nil, fmt.Errorf("input: stdout pipe is not a pollable file")
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("input: starting libinput debug-events: %w", err)
	}

	return &libinputSource{cmd: cmd, file: f, reader: bufio.NewReader(f)}, nil
}

func (s *libinputSource) Fd() int { return int(s.file.Fd()) }

// Poll waits up to timeoutMS for the libinput process's stdout to
// become readable, retrying transparently on EINTR.
func (s *libinputSource) Poll(timeoutMS int) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(s.Fd()), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, timeoutMS)
		if err == nil {
			return n > 0 && fds[0].Revents&unix.POLLIN != 0, nil
		}
		if err == unix.EINTR {
			continue
		}
		return false, fmt.Errorf("input: poll: %w", err)
	}
}

// Dispatch reads at least one line (Poll having confirmed readability)
// and then drains whatever is already buffered, so one poll wakeup can
// decode a burst of events without blocking on the next one.
func (s *libinputSource) Dispatch() ([]Event, error) {
	var events []Event

	line, err := s.reader.ReadString('\n')
	if line != "" {
		if ev, ok := parseLine(line); ok {
			events = append(events, ev)
		}
	}
	if err != nil {
		if err == io.EOF {
			return events, io.EOF
		}
		return events, fmt.Errorf("input: reading libinput output: %w", err)
	}

	for s.reader.Buffered() > 0 {
		line, err = s.reader.ReadString('\n')
		if line != "" {
			if ev, ok := parseLine(line); ok {
				events = append(events, ev)
			}
		}
		if err != nil {
			break
		}
	}
	return events, nil
}

func (s *libinputSource) Close() error {
	_ = s.file.Close()
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	return s.cmd.Wait()
}

var (
	gestureLineRe = regexp.MustCompile(`^\s*\S+\s+(GESTURE_\S+)\s+\+[\d.]+s\s+(\d+)(.*)$`)
	swipeDeltaRe  = regexp.MustCompile(`delta\s+(-?[\d.]+)/(-?[\d.]+)`)
	pinchScaleRe  = regexp.MustCompile(`(-?[\d.]+)\s*@\s*(-?[\d.]+)`)
)

// parseLine decodes one "libinput debug-events" line into an Event. It
// returns ok=false for lines that aren't gesture phase transitions
// (device, pointer, touch, keyboard lines are all ignored).
func parseLine(line string) (Event, bool) {
	m := gestureLineRe.FindStringSubmatch(line)
	if m == nil {
		return Event{}, false
	}

	typ, fingerStr, rest := m[1], m[2], m[3]
	fingers, err := strconv.Atoi(fingerStr)
	if err != nil {
		return Event{}, false
	}
	cancelled := strings.Contains(rest, "cancelled")

	switch typ {
	case "GESTURE_SWIPE_BEGIN":
		return Event{Kind: SwipeBegin, Fingers: fingers}, true
	case "GESTURE_SWIPE_UPDATE":
		dx, dy := 0.0, 0.0
		if dm := swipeDeltaRe.FindStringSubmatch(rest); dm != nil {
			dx, _ = strconv.ParseFloat(dm[1], 64)
			dy, _ = strconv.ParseFloat(dm[2], 64)
		}
		return Event{Kind: SwipeUpdate, Fingers: fingers, Dx: dx, Dy: dy}, true
	case "GESTURE_SWIPE_END":
		return Event{Kind: SwipeEnd, Fingers: fingers, Cancelled: cancelled}, true
	case "GESTURE_PINCH_BEGIN":
		return Event{Kind: PinchBegin, Fingers: fingers}, true
	case "GESTURE_PINCH_UPDATE":
		scale, angle := 1.0, 0.0
		if pm := pinchScaleRe.FindStringSubmatch(rest); pm != nil {
			scale, _ = strconv.ParseFloat(pm[1], 64)
			angle, _ = strconv.ParseFloat(pm[2], 64)
		}
		return Event{Kind: PinchUpdate, Fingers: fingers, Scale: scale, AngleDelta: angle}, true
	case "GESTURE_PINCH_END":
		return Event{Kind: PinchEnd, Fingers: fingers, Cancelled: cancelled}, true
	case "GESTURE_HOLD_BEGIN":
		return Event{Kind: HoldBegin, Fingers: fingers}, true
	case "GESTURE_HOLD_END":
		return Event{Kind: HoldEnd, Fingers: fingers, Cancelled: cancelled}, true
	default:
		return Event{}, false
	}
}
