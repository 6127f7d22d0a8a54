package rule

import "math"

// SwipeDirection classifies a swipe's cumulative (dx, dy) motion into one
// of the eight octant directions, or Any for no motion. dx/dy follow
// screen convention: y increases downward.
//
// atan2(dy, dx) partitions [-pi, pi] into eight pi/4-wide octants
// centred on E (0), SE, S, SW, W (+-pi), NW, N, NE, with boundaries at
// the odd multiples of pi/8. Each arm is a half-open "< upper bound"
// interval so the boundary angles are stable and deterministic.
func SwipeDirection(dx, dy float64) SwipeDir {
	const eighth = math.Pi / 8

	if dx == 0 && dy == 0 {
		return SwipeAny
	}

	angle := math.Atan2(dy, dx)

	switch {
	case angle < -7*eighth:
		return SwipeW
	case angle < -5*eighth:
		return SwipeNW
	case angle < -3*eighth:
		return SwipeN
	case angle < -eighth:
		return SwipeNE
	case angle < eighth:
		return SwipeE
	case angle < 3*eighth:
		return SwipeSE
	case angle < 5*eighth:
		return SwipeS
	case angle < 7*eighth:
		return SwipeSW
	default:
		return SwipeW
	}
}

// pinchAngleDominanceDegreesPerUnitScale normalises an angle delta
// (degrees) against a scale delta (a 0..~1-ish ratio) so the two can be
// compared on equal footing. A delta-angle of this many degrees is
// treated as exactly as significant as a full 1.0 change in scale. The
// source library reports scale as an absolute ratio and angle as a
// per-event delta, so there's no natural shared unit; this constant is
// the tunable knob for that comparison.
const pinchAngleDominanceDegreesPerUnitScale = 45.0

// PinchDirection classifies a pinch gesture's direction from its
// absolute scale (1.0 at gesture begin) and accumulated angle delta
// (degrees). Exact neutral motion maps to Any.
func PinchDirection(scale, angleDelta float64) PinchDir {
	scaleWeight := math.Abs(scale - 1.0)
	angleWeight := math.Abs(angleDelta) / pinchAngleDominanceDegreesPerUnitScale

	if scaleWeight == 0 && angleWeight == 0 {
		return PinchAny
	}

	if scaleWeight >= angleWeight {
		switch {
		case scale > 1.0:
			return PinchOut
		case scale < 1.0:
			return PinchIn
		default:
			return PinchAny
		}
	}

	switch {
	case angleDelta > 0:
		return PinchClockwise
	case angleDelta < 0:
		return PinchCounterclockwise
	default:
		return PinchAny
	}
}
