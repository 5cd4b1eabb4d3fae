package render

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/aether/parameter"
)

// drawOrb paints the pulsing landing orb centered on the canvas
func drawOrb(c *Canvas, t time.Duration) {
	w, h := c.Size()
	cx, cy := float64(w)/2, float64(h)

	phase := 2 * math.Pi * t.Seconds() / parameter.OrbPulsePeriod.Seconds()
	pulse := 0.5 + 0.5*math.Sin(phase)
	radius := parameter.OrbRadius * (0.92 + 0.16*pulse)
	glow := radius * 2

	x0, x1 := int(cx-glow)-1, int(cx+glow)+1
	y0, y1 := int((cy-glow)/2)-1, int((cy+glow)/2)+1
	for y := y0; y <= y1; y++ {
		vy := (float64(y) + 0.5) * 2
		for x := x0; x <= x1; x++ {
			d := math.Hypot(float64(x)+0.5-cx, vy-cy)
			switch {
			case d <= radius:
				core := 1 - d/radius
				c.Set(x, y, 0, RGB{}, RgbOrbCore, BlendScreenBg, 0.35+0.5*core*(0.6+0.4*pulse), 0)
			case d <= glow:
				falloff := 1 - (d-radius)/(glow-radius)
				c.Set(x, y, 0, RGB{}, RgbOrbGlow, BlendAddBg, falloff*falloff*(0.5+0.5*pulse), 0)
			}
		}
	}

	hintRow := min(int((cy+glow)/2)+2, h-parameter.InputRowOffset)
	putCentered(c, int(cx), hintRow, parameter.LandingHint, RgbPrompt, 0.5+0.4*pulse, 0)
}

// drawPrompt paints the input line: typed text, the idle placeholder, or a breathing marker while busy
func drawPrompt(c *Canvas, input string, busy bool, t time.Duration) {
	w, h := c.Size()
	row := h - parameter.InputRowOffset
	if row < 0 {
		return
	}
	cx := w / 2

	if busy {
		breath := 0.35 + 0.3*math.Sin(2*math.Pi*t.Seconds()/parameter.OrbPulsePeriod.Seconds())
		putCentered(c, cx, row, "·  ·  ·", RgbBusy, breath, 0)
		return
	}
	if input == "" {
		putCentered(c, cx, row, parameter.InputPlaceholder, RgbPrompt, 0.8, tcell.AttrItalic)
		return
	}

	// Keep the tail visible when the line outgrows the screen
	limit := max(w-4, 1)
	shown := input
	for runewidth.StringWidth(shown) > limit {
		_, size := utf8.DecodeRuneInString(shown)
		shown = shown[size:]
	}
	end := putText(c, cx-runewidth.StringWidth(shown)/2, row, shown, RgbInput, 1, 0)
	c.SetGlyph(end, row, '▏', RgbInput, 0.7, tcell.AttrBlink)
}

// drawHUD paints the metrics line on the top row
func drawHUD(c *Canvas, line string) {
	w, _ := c.Size()
	if w == 0 {
		return
	}
	for x := 0; x < w; x++ {
		c.Set(x, 0, ' ', RGB{}, RgbHUDBackdrop, BlendReplace, 1, 0)
	}
	line = strings.TrimSpace(line)
	if runewidth.StringWidth(line) > w-1 {
		line = runewidth.Truncate(line, w-1, "…")
	}
	putText(c, 1, 0, line, RgbHUD, 1, 0)
}
