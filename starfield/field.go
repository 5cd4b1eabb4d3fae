package starfield

import (
	"time"

	"github.com/lixenwraith/aether/parameter"
	"github.com/lixenwraith/aether/vmath"
)

// Star is one depth point, Lateral is the offset from the projection axis
type Star struct {
	Lateral vmath.Vec2
	Z       float64
	Size    float64
	Opacity float64

	// Wraps counts recycles of this slot
	Wraps uint32
}

// Shape selects how a sprite is drawn
type Shape uint8

const (
	ShapeCircle Shape = iota
	ShapeStreak
)

// Sprite is a projected star in viewport units
type Sprite struct {
	X, Y  float64
	Size  float64
	Alpha float64
	Shape Shape

	// Angle and Length describe the streak axis, zero for circles
	Angle  float64
	Length float64
}

// Field is the fixed star pool, owned by the frame goroutine
type Field struct {
	cfg   Config
	rng   vmath.Source
	stars []Star

	width, height float64
	worldScale    float64

	recycled uint64
}

// NewField seeds Count stars at random depth in (0, ZMax]
func NewField(cfg Config, rng vmath.Source, width, height float64) *Field {
	f := &Field{
		cfg:   cfg,
		rng:   rng,
		stars: make([]Star, cfg.Count),
	}
	for i := range f.stars {
		s := &f.stars[i]
		f.scatter(s)
		s.Z = cfg.ZMax * (1 - rng.Float64())
		s.Size = vmath.Range(rng, cfg.SizeMin, cfg.SizeMax)
		s.Opacity = vmath.Range(rng, cfg.OpacityMin, cfg.OpacityMax)
	}
	f.Resize(width, height)
	return f
}

// Resize updates the projection plane
func (f *Field) Resize(width, height float64) {
	f.width, f.height = width, height
	f.worldScale = width / f.cfg.ReferenceWidth
}

// Tick moves every star toward the viewer by BaseSpeed*multiplier per reference frame
// Stars reaching the viewer are recycled to exactly ZMax with a fresh lateral offset
func (f *Field) Tick(multiplier float64, dt time.Duration) {
	if dt <= 0 {
		return
	}
	step := f.cfg.BaseSpeed * multiplier * float64(dt) / float64(parameter.ReferenceFrame)
	for i := range f.stars {
		s := &f.stars[i]
		s.Z -= step
		if s.Z <= 0 {
			f.scatter(s)
			s.Z = f.cfg.ZMax
			s.Wraps++
			f.recycled++
		}
	}
}

func (f *Field) scatter(s *Star) {
	s.Lateral = vmath.Vec2{
		X: (f.rng.Float64() - 0.5) * f.cfg.Spread,
		Y: (f.rng.Float64() - 0.5) * f.cfg.Spread,
	}
}

// Sprites projects the pool onto the viewport, stretch switches every star to a radial streak
func (f *Field) Sprites(stretch bool) []Sprite {
	return f.AppendSprites(make([]Sprite, 0, len(f.stars)), stretch)
}

// AppendSprites appends the projected pool to dst
func (f *Field) AppendSprites(dst []Sprite, stretch bool) []Sprite {
	cx, cy := f.width/2, f.height/2
	for i := range f.stars {
		s := &f.stars[i]
		k := vmath.Perspective(f.cfg.FocalLength, s.Z)

		sp := Sprite{
			X:     cx + s.Lateral.X*k*f.worldScale,
			Y:     cy + s.Lateral.Y*k*f.worldScale,
			Size:  s.Size * k,
			Alpha: vmath.Clamp(s.Opacity*(1-s.Z/f.cfg.ZMax), 0, 1),
		}
		if stretch {
			sp.Size *= f.cfg.StretchFactor
			sp.Shape = ShapeStreak
			sp.Angle = vmath.RadialAngle(sp.X-cx, sp.Y-cy)
			sp.Length = sp.Size * f.cfg.StreakRatio * f.worldScale
		}
		dst = append(dst, sp)
	}
	return dst
}

// Stars returns a copy of the pool
func (f *Field) Stars() []Star {
	out := make([]Star, len(f.stars))
	copy(out, f.stars)
	return out
}

// Len returns the pool size, constant for the field lifetime
func (f *Field) Len() int {
	return len(f.stars)
}

// Recycled returns the cumulative recycle count
func (f *Field) Recycled() uint64 {
	return f.recycled
}
