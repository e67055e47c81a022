package editor

import "github.com/lucasb-eyer/go-colorful"

// RandomEdgeColor returns a bright hex color for a new sibling group's
// connecting edges. Later siblings inherit the first child's color, so one
// call per group is enough.
func RandomEdgeColor() string {
	return colorful.HappyColor().Hex()
}
