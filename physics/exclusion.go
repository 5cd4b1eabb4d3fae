package physics

import "github.com/lixenwraith/aether/vmath"

// RadialImpulse returns the outward push for a particle inside the exclusion radius around anchor
// Direction is the unit vector from anchor to pos; coincident points get a random direction
// Returns false when pos is outside the radius
func RadialImpulse(pos, anchor vmath.Vec2, radius, strength float64, src vmath.Source) (vmath.Vec2, bool) {
	delta := vmath.V2Sub(pos, anchor)
	distSq := vmath.V2MagSq(delta)
	if distSq >= radius*radius {
		return vmath.Vec2{}, false
	}
	if distSq == 0 {
		return vmath.V2FromAngle(vmath.Angle(src), strength), true
	}
	return vmath.V2Scale(vmath.V2Normalize(delta), strength), true
}

// Jitter returns a per-axis random impulse in [-amplitude, amplitude)
func Jitter(src vmath.Source, amplitude float64) vmath.Vec2 {
	return vmath.Vec2{
		X: vmath.Signed(src) * amplitude,
		Y: vmath.Signed(src) * amplitude,
	}
}
