package thought

import (
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/google/uuid"

	"github.com/lixenwraith/aether/parameter"
	"github.com/lixenwraith/aether/physics"
	"github.com/lixenwraith/aether/vmath"
)

// env is the per-frame context shared by every particle update
type env struct {
	cfg      *Config
	rng      vmath.Source
	clock    time.Duration
	frac     float64
	width    float64
	height   float64
	anchor   vmath.Vec2
	bounds   physics.Bounds
	spring   harmonica.Spring
	centered uuid.UUID
}

// Advance steps every particle by dt, then retires faded particles and enforces the cap
func (f *Field) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	f.clock += dt

	e := env{
		cfg:      &f.cfg,
		rng:      f.rng,
		clock:    f.clock,
		frac:     float64(dt) / float64(parameter.ReferenceFrame),
		width:    f.width,
		height:   f.height,
		anchor:   f.anchor,
		bounds:   physics.Inset(f.width, f.height, f.cfg.EdgeMargin, f.cfg.BottomReserve),
		spring:   f.scaleSpring(dt),
		centered: f.centered,
	}

	out := f.scratch[:0]
	for _, t := range f.thoughts {
		next := advance(t, &e)
		if retired(next, &e) {
			if next.ID == f.centered {
				f.centered = uuid.Nil
			}
			f.stats.Retired++
			continue
		}
		out = append(out, next)
	}

	// Swap buffers and clear the stale tail so dropped strings can be collected
	old := f.thoughts
	f.thoughts = out
	for i := range old {
		old[i] = Thought{}
	}
	f.scratch = old[:0]

	f.enforceCap()
}

// advance returns the next state of t, the input value is not modified
func advance(t Thought, e *env) Thought {
	p := e.cfg.profile(t.Kind)
	pinned := e.centered != uuid.Nil && t.ID == e.centered

	// Lifecycle
	t.Phase, t.AnchorTime = nextPhase(t, e)

	switch {
	case pinned:
		t.Pos = e.anchor
		t.Vel = vmath.Vec2{}

	case p.HoldUntilDrifting && t.Phase != PhaseDrifting:
		// Frozen in place, boundary policy still applies below

	default:
		physics.Integrate(&t.Kinetic, e.frac)

		if imp, ok := physics.RadialImpulse(t.Pos, e.anchor, e.cfg.ExclusionRadius, e.cfg.ExclusionStrength*e.frac, e.rng); ok {
			physics.ApplyImpulse(&t.Kinetic, imp)
		}
		physics.ApplyImpulse(&t.Kinetic, physics.Jitter(e.rng, e.cfg.Wander*e.frac))

		physics.Damp(&t.Kinetic, p.Damping, e.frac)
		physics.CapSpeed(&t.Kinetic, e.cfg.MaxSpeed)
	}

	if !pinned {
		switch p.Edge {
		case EdgeBounceClamp:
			physics.BounceClamp(&t.Kinetic, e.bounds, e.cfg.Restitution)
		case EdgeReflect:
			physics.ReflectBounds(&t.Kinetic, e.bounds)
		}
	}

	t.Opacity = opacityAt(t.Age(e.clock), t.Phase, e.cfg, p)

	target := 1.0
	if t.Phase != PhaseDrifting {
		target = e.cfg.EmergeScale
	}
	t.Scale, t.scaleVel = e.spring.Update(t.Scale, t.scaleVel, target)

	return t
}

// nextPhase applies the time-gated transitions, at most one per frame so every phase is observed
func nextPhase(t Thought, e *env) (Phase, time.Duration) {
	inPhase := e.clock - t.AnchorTime
	switch t.Phase {
	case PhaseEmerging:
		if t.Age(e.clock) >= e.cfg.EmergeDuration {
			return PhaseSettling, e.clock
		}
	case PhaseSettling:
		if inPhase >= e.cfg.SettleDuration {
			return PhaseDrifting, e.clock
		}
	}
	return t.Phase, t.AnchorTime
}

// opacityAt derives opacity from age and phase
// Emerging ramps in; afterwards a linear decay from FadeStart toward FadeFloor, never increasing
func opacityAt(age time.Duration, phase Phase, cfg *Config, p Profile) float64 {
	if phase == PhaseEmerging {
		return vmath.Clamp(float64(age)/float64(cfg.EmergeFadeIn), 0, 1)
	}
	o := p.FadeStart - age.Seconds()*p.FadePerSecond
	if o < p.FadeFloor {
		o = p.FadeFloor
	}
	return vmath.Clamp(o, 0, 1)
}

// retired reports removal eligibility: fully faded, and for escaping particles also off-screen
func retired(t Thought, e *env) bool {
	if t.Phase == PhaseEmerging || t.Opacity > 0 {
		return false
	}
	if e.cfg.profile(t.Kind).Edge == EdgeEscape {
		return physics.OffScreen(t.Pos, e.width, e.height, e.cfg.OffScreenMargin)
	}
	return true
}

func (c *Config) profile(k Kind) Profile {
	if k == KindResponse {
		return c.Response
	}
	return c.Question
}
