package parameter

import "time"

// Frame Loop & Engine Timing
const (
	// FrameUpdateInterval is the simulation and rendering frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// ReferenceFrame is the frame duration all per-frame velocities and impulses are expressed in
	ReferenceFrame = time.Second / 60

	// MaxFrameStep caps a single simulation step after stalls (suspend, debugger, slow terminal)
	MaxFrameStep = 100 * time.Millisecond

	// SpawnQueueSize is the capacity of the cross-goroutine spawn request channel
	SpawnQueueSize = 64

	// CueQueueSize bounds pending sound cues, extra cues are dropped
	CueQueueSize = 8
)
