package vmath

import "math"

// Perspective returns the projection factor k = focal / (focal + z)
// Depth behind the viewer is treated as at the viewer
func Perspective(focal, z float64) float64 {
	if z < 0 {
		z = 0
	}
	return focal / (focal + z)
}

// RadialAngle returns the streak orientation for a point offset (dx, dy) from the projection center
// Perpendicular to the tangent, so the long axis points away from the center
func RadialAngle(dx, dy float64) float64 {
	return math.Atan2(dy, dx) + math.Pi/2
}
