package session

import (
	"time"

	"github.com/lixenwraith/aether/scene"
	"github.com/lixenwraith/aether/starfield"
	"github.com/lixenwraith/aether/thought"
	"github.com/lixenwraith/aether/vmath"
)

// View is the immutable per-frame snapshot handed to the presentation layer
// Slices are freshly allocated each frame and never written after publication
type View struct {
	Frame       uint64
	Scene       scene.Scene
	TimeInScene time.Duration

	// Width and Height are viewport units: terminal columns and rows * 2
	Width, Height float64
	Anchor        vmath.Vec2

	Thoughts []thought.Snapshot
	Stars    []starfield.Sprite
	Stretch  bool

	Busy      bool
	Accepting bool
	Input     string
}
