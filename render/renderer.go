package render

import (
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/aether/parameter"
	"github.com/lixenwraith/aether/scene"
	"github.com/lixenwraith/aether/session"
	"github.com/lixenwraith/aether/status"
)

// Config selects optional presentation layers
type Config struct {
	// Haze enables the perlin backdrop haze
	Haze bool `toml:"haze"`
	// HUD shows the metrics line at start, toggled at runtime
	HUD bool `toml:"hud"`
	// TextWidth wraps thought text, in columns
	TextWidth int `toml:"text_width"`
}

// DefaultConfig returns the full presentation with the HUD hidden
func DefaultConfig() Config {
	return Config{Haze: true, TextWidth: parameter.MaxTextWidth}
}

// Renderer composes a session View onto a canvas and flushes it to a tcell screen
// Draw runs on one goroutine; ToggleHUD may be called from any
type Renderer struct {
	screen   tcell.Screen
	canvas   *Canvas
	backdrop *Backdrop
	registry *status.Registry
	cfg      Config
	hud      atomic.Bool
}

// NewRenderer creates a renderer for screen, registry feeds the HUD and may be nil
func NewRenderer(screen tcell.Screen, cfg Config, registry *status.Registry, seed int64) *Renderer {
	if cfg.TextWidth <= 0 {
		cfg.TextWidth = parameter.MaxTextWidth
	}
	w, h := screen.Size()
	r := &Renderer{
		screen:   screen,
		canvas:   NewCanvas(w, h),
		backdrop: NewBackdrop(seed, cfg.Haze),
		registry: registry,
		cfg:      cfg,
	}
	r.hud.Store(cfg.HUD)
	return r
}

// ToggleHUD flips the metrics line
func (r *Renderer) ToggleHUD() {
	for {
		old := r.hud.Load()
		if r.hud.CompareAndSwap(old, !old) {
			return
		}
	}
}

// Canvas exposes the last composed frame
func (r *Renderer) Canvas() *Canvas {
	return r.canvas
}

// Draw composes one frame; a nil view draws nothing
func (r *Renderer) Draw(v *session.View, elapsed time.Duration) {
	if v == nil {
		return
	}

	w, h := r.screen.Size()
	if cw, ch := r.canvas.Size(); cw != w || ch != h {
		r.canvas.Resize(w, h)
	} else {
		r.canvas.Clear()
	}
	c := r.canvas

	r.backdrop.Draw(c, elapsed)
	drawStars(c, v.Stars)

	switch v.Scene {
	case scene.Landing:
		drawOrb(c, elapsed)
	case scene.Active:
		drawThoughts(c, v.Thoughts, r.cfg.TextWidth)
		if v.Accepting {
			drawPrompt(c, v.Input, v.Busy, elapsed)
		}
	}

	if r.hud.Load() && r.registry != nil {
		drawHUD(c, r.registry.Format())
	}

	c.Flush(r.screen)
}
