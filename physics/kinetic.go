package physics

import (
	"math"

	"github.com/lixenwraith/aether/vmath"
)

// Kinetic is position and velocity in viewport units, velocity per reference frame
type Kinetic struct {
	Pos vmath.Vec2
	Vel vmath.Vec2
}

// Integrate advances position by velocity scaled by f = dt / reference frame
func Integrate(k *Kinetic, f float64) {
	k.Pos.X += k.Vel.X * f
	k.Pos.Y += k.Vel.Y * f
}

// ApplyImpulse adds velocity delta (momentum transfer)
func ApplyImpulse(k *Kinetic, impulse vmath.Vec2) {
	k.Vel.X += impulse.X
	k.Vel.Y += impulse.Y
}

// SetImpulse overrides velocity (hard redirect)
func SetImpulse(k *Kinetic, vel vmath.Vec2) {
	k.Vel = vel
}

// Damp decays velocity toward rest, factor is the per-reference-frame multiplier
// factor >= 1 disables damping
func Damp(k *Kinetic, factor, f float64) {
	if factor >= 1 || factor <= 0 {
		return
	}
	d := math.Pow(factor, f)
	k.Vel.X *= d
	k.Vel.Y *= d
}

// CapSpeed limits the velocity vector magnitude to maxSpeed
// Returns true if velocity was clamped
func CapSpeed(k *Kinetic, maxSpeed float64) bool {
	if vmath.V2MagSq(k.Vel) <= maxSpeed*maxSpeed {
		return false
	}
	k.Vel = vmath.V2ClampMagnitude(k.Vel, maxSpeed)
	// Float rounding in the rescale can leave the magnitude a few ulps above the cap
	for vmath.V2Mag(k.Vel) > maxSpeed {
		k.Vel = vmath.V2Scale(k.Vel, 1-1e-12)
	}
	return true
}
