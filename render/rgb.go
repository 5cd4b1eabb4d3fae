package render

import "github.com/gdamore/tcell/v2"

// RGB is an 8-bit truecolor value, converted to tcell only at flush
type RGB struct {
	R, G, B uint8
}

var RGBBlack = RGB{}

// Tcell converts to a truecolor tcell.Color
func (c RGB) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// each combines two colors channel by channel
func each(a, b RGB, fn func(x, y int) int) RGB {
	return RGB{
		R: clamp8(fn(int(a.R), int(b.R))),
		G: clamp8(fn(int(a.G), int(b.G))),
		B: clamp8(fn(int(a.B), int(b.B))),
	}
}

func clamp8(v int) uint8 {
	switch {
	case v > 255:
		return 255
	case v < 0:
		return 0
	}
	return uint8(v)
}

// Lerp moves from a toward b by t in [0, 1], channels truncate
func Lerp(a, b RGB, t float64) RGB {
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	}
	return each(a, b, func(x, y int) int {
		return int(float64(x) + t*float64(y-x))
	})
}

// Blend composites src over dst at alpha
func Blend(dst, src RGB, alpha float64) RGB {
	return Lerp(dst, src, alpha)
}

// Add brightens dst by src with saturation, then fades the result in by alpha
func Add(dst, src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	return Lerp(dst, each(dst, src, func(x, y int) int { return x + y }), alpha)
}

// Screen is the inverse multiply 1-(1-dst)(1-src), it never darkens
func Screen(dst, src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	// (x + (x >> 8) + 1) >> 8 approximates x / 255
	screened := each(dst, src, func(x, y int) int {
		p := (255 - x) * (255 - y)
		return 255 - (p+(p>>8)+1)>>8
	})
	return Lerp(dst, screened, alpha)
}

// Max keeps the brighter channel of dst and src
func Max(dst, src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	return Lerp(dst, each(dst, src, func(x, y int) int { return max(x, y) }), alpha)
}

// Scale multiplies every channel by factor, saturating above 255
func Scale(c RGB, factor float64) RGB {
	return each(c, c, func(x, _ int) int { return int(float64(x) * factor) })
}
