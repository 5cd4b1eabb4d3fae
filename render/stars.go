package render

import (
	"math"

	"github.com/lixenwraith/aether/starfield"
)

// Circle glyphs by projected size
const (
	starSmall  = '·'
	starMedium = '•'
	starLarge  = '●'
)

// starGlyph picks the circle glyph for a projected size
func starGlyph(size float64) rune {
	switch {
	case size < 0.8:
		return starSmall
	case size < 1.6:
		return starMedium
	default:
		return starLarge
	}
}

// streakGlyph picks the line glyph closest to direction theta, y pointing down
func streakGlyph(theta float64) rune {
	a := math.Mod(theta, math.Pi)
	if a < 0 {
		a += math.Pi
	}
	switch {
	case a < math.Pi/8 || a >= 7*math.Pi/8:
		return '─'
	case a < 3*math.Pi/8:
		return '\\'
	case a < 5*math.Pi/8:
		return '|'
	default:
		return '/'
	}
}

// drawStars plots sprites given in viewport units, one cell is 1x2 units
func drawStars(c *Canvas, sprites []starfield.Sprite) {
	for i := range sprites {
		sp := &sprites[i]
		if sp.Alpha <= 0 {
			continue
		}
		if sp.Shape == starfield.ShapeStreak {
			drawStreak(c, sp)
			continue
		}
		c.SetGlyph(cellOf(sp.X), cellOf(sp.Y/2), starGlyph(sp.Size), RgbStar, sp.Alpha, 0)
	}
}

// drawStreak walks the long axis, which is perpendicular to the sprite angle
func drawStreak(c *Canvas, sp *starfield.Sprite) {
	theta := sp.Angle - math.Pi/2
	glyph := streakGlyph(theta)
	dx, dy := math.Cos(theta), math.Sin(theta)

	steps := max(1, int(math.Round(sp.Length)))
	lastX, lastY := math.MinInt, math.MinInt
	for i := 0; i < steps; i++ {
		// Centered on the sprite position
		t := float64(i) - float64(steps-1)/2
		x := cellOf(sp.X + dx*t)
		y := cellOf((sp.Y + dy*t) / 2)
		if x == lastX && y == lastY {
			continue
		}
		lastX, lastY = x, y

		// Head leads outward, the tail fades toward the center
		fade := 0.5 + 0.5*float64(i+1)/float64(steps)
		c.SetGlyph(x, y, glyph, RgbStar, sp.Alpha*fade, 0)
	}
}
