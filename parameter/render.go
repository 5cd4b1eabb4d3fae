package parameter

import "time"

// Layout
const (
	// InputRowOffset is the input line distance from the bottom row
	InputRowOffset = 3

	// MaxTextWidth wraps thought text (columns)
	MaxTextWidth = 44

	// MinThoughtAlpha is the visual floor for non-latest thoughts
	MinThoughtAlpha = 0.4

	// OrbRadius is the landing orb radius in viewport units
	OrbRadius = 9.0

	// OrbPulsePeriod is one full landing orb pulse
	OrbPulsePeriod = 2 * time.Second

	// InputPlaceholder is shown on the empty input line while idle
	InputPlaceholder = "Speak to the quiet"

	// LandingHint is shown under the orb
	LandingHint = "press enter"
)

// Backdrop haze
const (
	HazeAlpha       = 2.0
	HazeBeta        = 2.0
	HazeOctaves     = 3
	HazeScale       = 0.06
	HazeDriftPerSec = 0.05
	HazeIntensity   = 0.35
)
