package physics

import (
	"math"
	"testing"

	"github.com/lixenwraith/aether/vmath"
)

func TestCapSpeed(t *testing.T) {
	rng := vmath.NewFastRand(99)
	for i := 0; i < 500; i++ {
		k := Kinetic{Vel: vmath.Vec2{X: vmath.Signed(rng) * 10, Y: vmath.Signed(rng) * 10}}
		CapSpeed(&k, 0.6)
		if m := math.Hypot(k.Vel.X, k.Vel.Y); m > 0.6 {
			t.Fatalf("speed %v exceeds cap", m)
		}
	}
}

func TestCapSpeedUntouchedBelowCap(t *testing.T) {
	k := Kinetic{Vel: vmath.Vec2{X: 0.1, Y: -0.2}}
	if CapSpeed(&k, 1) {
		t.Error("reported clamp below cap")
	}
	if k.Vel != (vmath.Vec2{X: 0.1, Y: -0.2}) {
		t.Errorf("velocity changed: %+v", k.Vel)
	}
}

func TestDamp(t *testing.T) {
	k := Kinetic{Vel: vmath.Vec2{X: 1, Y: -1}}
	Damp(&k, 0.5, 1)
	if k.Vel.X != 0.5 || k.Vel.Y != -0.5 {
		t.Errorf("damped velocity %+v", k.Vel)
	}
	Damp(&k, 1.0, 1)
	if k.Vel.X != 0.5 {
		t.Errorf("factor 1 changed velocity: %+v", k.Vel)
	}
}

func TestIntegrateScalesByFrameFraction(t *testing.T) {
	k := Kinetic{Vel: vmath.Vec2{X: 2, Y: 4}}
	Integrate(&k, 0.5)
	if k.Pos.X != 1 || k.Pos.Y != 2 {
		t.Errorf("position %+v", k.Pos)
	}
}

func TestReflectBounds(t *testing.T) {
	b := Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}

	k := Kinetic{Pos: vmath.Vec2{X: -1, Y: 5}, Vel: vmath.Vec2{X: -0.5, Y: 0.1}}
	if !ReflectBounds(&k, b) {
		t.Fatal("expected reflection")
	}
	if k.Vel.X != 0.5 || k.Vel.Y != 0.1 {
		t.Errorf("velocity after reflect %+v", k.Vel)
	}

	// Already heading back in: no double reflection
	if ReflectBounds(&k, b) {
		t.Error("reflected a particle already moving inward")
	}
}

func TestBounceClamp(t *testing.T) {
	b := Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	k := Kinetic{Pos: vmath.Vec2{X: 12, Y: -3}, Vel: vmath.Vec2{X: 1, Y: -1}}

	if !BounceClamp(&k, b, 0.8) {
		t.Fatal("expected bounce")
	}
	if k.Pos.X != 10 || k.Pos.Y != 0 {
		t.Errorf("position not clamped: %+v", k.Pos)
	}
	if math.Abs(k.Vel.X+0.8) > 1e-12 || math.Abs(k.Vel.Y-0.8) > 1e-12 {
		t.Errorf("velocity after bounce %+v", k.Vel)
	}
}

func TestInsetDegenerate(t *testing.T) {
	b := Inset(10, 10, 8, 10)
	if b.MinX != b.MaxX || b.MinY != b.MaxY {
		t.Errorf("degenerate inset not collapsed: %+v", b)
	}
}

func TestRadialImpulse(t *testing.T) {
	rng := vmath.NewFastRand(1)
	anchor := vmath.Vec2{X: 50, Y: 50}

	imp, ok := RadialImpulse(vmath.Vec2{X: 55, Y: 50}, anchor, 10, 0.2, rng)
	if !ok {
		t.Fatal("inside radius not pushed")
	}
	if math.Abs(imp.X-0.2) > 1e-12 || imp.Y != 0 {
		t.Errorf("impulse %+v, want outward 0.2 on x", imp)
	}

	if _, ok := RadialImpulse(vmath.Vec2{X: 70, Y: 50}, anchor, 10, 0.2, rng); ok {
		t.Error("outside radius pushed")
	}

	imp, ok = RadialImpulse(anchor, anchor, 10, 0.2, rng)
	if !ok || math.Abs(vmath.V2Mag(imp)-0.2) > 1e-9 {
		t.Errorf("coincident point impulse %+v ok=%v", imp, ok)
	}
}

func TestOffScreen(t *testing.T) {
	if OffScreen(vmath.Vec2{X: 5, Y: 5}, 10, 10, 2) {
		t.Error("inside reported off screen")
	}
	if OffScreen(vmath.Vec2{X: 11, Y: 5}, 10, 10, 2) {
		t.Error("within margin reported off screen")
	}
	if !OffScreen(vmath.Vec2{X: 13, Y: 5}, 10, 10, 2) {
		t.Error("past margin not reported off screen")
	}
}
