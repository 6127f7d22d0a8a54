package gesture

import (
	"strconv"
	"strings"
)

// substitute expands the $delta_x/$delta_y/$delta_angle/$scale
// placeholders in a rule action string, each formatted to two decimal
// places. Placeholders that don't apply to the current gesture kind
// are left at 0.00 rather than removed, so a misconfigured rule's
// command stays shell-valid.
func substitute(action string, deltaX, deltaY, deltaAngle, scale float64) string {
	r := strings.NewReplacer(
		"$delta_x", formatFloat(deltaX),
		"$delta_y", formatFloat(deltaY),
		"$delta_angle", formatFloat(deltaAngle),
		"$scale", formatFloat(scale),
	)
	return r.Replace(action)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
