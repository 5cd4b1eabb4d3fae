package render

import (
	"math"
	"time"

	"github.com/aquilax/go-perlin"

	"github.com/lixenwraith/aether/parameter"
)

// Backdrop paints the radial gradient and the slow perlin haze behind everything else
type Backdrop struct {
	noise *perlin.Perlin
	haze  bool
}

// NewBackdrop creates a backdrop; haze false paints the plain gradient
func NewBackdrop(seed int64, haze bool) *Backdrop {
	return &Backdrop{
		noise: perlin.NewPerlin(parameter.HazeAlpha, parameter.HazeBeta, parameter.HazeOctaves, seed),
		haze:  haze,
	}
}

// Draw fills every cell background at simulation time t
func (b *Backdrop) Draw(c *Canvas, t time.Duration) {
	w, h := c.Size()
	if w == 0 || h == 0 {
		return
	}

	// Distances in viewport units so the gradient stays circular
	cx, cy := float64(w)/2, float64(h)
	reach := math.Hypot(cx, cy)
	drift := t.Seconds() * parameter.HazeDriftPerSec

	for y := 0; y < h; y++ {
		vy := (float64(y) + 0.5) * 2
		for x := 0; x < w; x++ {
			vx := float64(x) + 0.5
			d := math.Hypot(vx-cx, vy-cy) / reach
			bg := Lerp(RgbBackdropCenter, RgbBackdropEdge, d)

			if b.haze {
				n := b.noise.Noise3D(vx*parameter.HazeScale, vy*parameter.HazeScale, drift)
				// Noise is roughly [-1, 1], only the upper half lights the haze
				if n > 0 {
					bg = Add(bg, RgbHaze, n*parameter.HazeIntensity*(1-d))
				}
			}
			c.SetBgOnly(x, y, bg)
		}
	}
}
