package input

import (
	"os/exec"
	"strings"
)

// HasGestureDevice enumerates devices via "libinput list-devices" (the
// same enumeration the Rust original performs through
// Libinput::udev_assign_seat + has_capability(DeviceCapability::Gesture))
// and reports whether any device block advertises the gesture
// capability.
func HasGestureDevice() (bool, error) {
	out, err := exec.Command("libinput", "list-devices").Output()
	if err != nil {
		return false, err
	}
	return deviceListHasGestureCapability(string(out)), nil
}

// deviceListHasGestureCapability scans "libinput list-devices" output,
// which groups device attributes (one "Key:    Value" pair per line)
// into blank-line-separated blocks, one block per device. A device
// qualifies if its "Capabilities:" line mentions "gesture".
func deviceListHasGestureCapability(listing string) bool {
	for _, block := range strings.Split(listing, "\n\n") {
		for _, line := range strings.Split(block, "\n") {
			line = strings.TrimSpace(line)
			if !strings.HasPrefix(line, "Capabilities:") {
				continue
			}
			if strings.Contains(strings.ToLower(line), "gesture") {
				return true
			}
		}
	}
	return false
}
