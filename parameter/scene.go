package parameter

import "time"

// Scene timing and star speed per scene
const (
	// TransitionDuration is the fixed Transitioning scene length
	TransitionDuration = 2500 * time.Millisecond

	SpeedLanding       = 1.0
	SpeedTransitioning = 50.0
	SpeedActive        = 2.0
)

// Generation and speech defaults
const (
	// FallbackThought replaces a failed or empty generation
	FallbackThought = "Silence sometimes answers more honestly than words."

	// GenerationTimeout bounds a single completion request
	GenerationTimeout = 30 * time.Second

	// SpeechTimeout bounds synthesis plus playback of one reply
	SpeechTimeout = 60 * time.Second

	// InputMaxLength caps the typed line
	InputMaxLength = 280

	// DefaultModel is the OpenRouter model slug used without configuration
	DefaultModel = "openai/gpt-4o-mini"

	// DefaultAppTitle is sent as the OpenRouter X-Title header
	DefaultAppTitle = "aether"
)
