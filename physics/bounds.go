package physics

import "github.com/lixenwraith/aether/vmath"

// Bounds is an axis-aligned rectangle in viewport units
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Inset returns the viewport rectangle shrunk by margin on all sides and by bottom extra at the bottom
// Degenerate results collapse to the viewport center line
func Inset(width, height, margin, bottom float64) Bounds {
	b := Bounds{MinX: margin, MinY: margin, MaxX: width - margin, MaxY: height - margin - bottom}
	if b.MaxX < b.MinX {
		b.MinX, b.MaxX = width/2, width/2
	}
	if b.MaxY < b.MinY {
		b.MinY, b.MaxY = height/2, height/2
	}
	return b
}

// ReflectBounds inverts the velocity component that points further out of bounds
// Position is left untouched, the particle drifts back in on its own
// Returns true if a reflection occurred
func ReflectBounds(k *Kinetic, b Bounds) bool {
	reflected := false
	if (k.Pos.X < b.MinX && k.Vel.X < 0) || (k.Pos.X > b.MaxX && k.Vel.X > 0) {
		k.Vel.X = -k.Vel.X
		reflected = true
	}
	if (k.Pos.Y < b.MinY && k.Vel.Y < 0) || (k.Pos.Y > b.MaxY && k.Vel.Y > 0) {
		k.Vel.Y = -k.Vel.Y
		reflected = true
	}
	return reflected
}

// BounceClamp clamps position inside bounds and reflects velocity with energy loss
// Returns true if any axis was clamped
func BounceClamp(k *Kinetic, b Bounds, restitution float64) bool {
	bx := bounceAxis(&k.Pos.X, &k.Vel.X, b.MinX, b.MaxX, restitution)
	by := bounceAxis(&k.Pos.Y, &k.Vel.Y, b.MinY, b.MaxY, restitution)
	return bx || by
}

// bounceAxis clamps position and reflects velocity on boundary contact
func bounceAxis(pos, vel *float64, lo, hi, e float64) bool {
	if *pos < lo {
		*pos = lo
		if *vel < 0 {
			*vel = -*vel * e
		}
		return true
	}
	if *pos > hi {
		*pos = hi
		if *vel > 0 {
			*vel = -*vel * e
		}
		return true
	}
	return false
}

// OffScreen reports whether pos lies outside the viewport by more than margin
func OffScreen(pos vmath.Vec2, width, height, margin float64) bool {
	return pos.X < -margin || pos.X > width+margin || pos.Y < -margin || pos.Y > height+margin
}

// Contains reports whether pos lies inside b
func (b Bounds) Contains(pos vmath.Vec2) bool {
	return pos.X >= b.MinX && pos.X <= b.MaxX && pos.Y >= b.MinY && pos.Y <= b.MaxY
}
