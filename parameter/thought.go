package parameter

import "time"

// Viewport units: one terminal column is 1 unit wide, one row is 2 units tall.
// Velocities are units per ReferenceFrame, impulses are units per ReferenceFrame added per frame.

// Thought Field population
const (
	// MaxThoughts caps the live particle set, oldest evicted first
	MaxThoughts = 12

	// SpawnPadding keeps random spawn points away from the viewport edges
	SpawnPadding = 12.0

	// EdgeMargin is the boundary inset used by the edge policies
	EdgeMargin = 8.0

	// BottomReserve keeps particles above the input line area
	BottomReserve = 10.0

	// OffScreenMargin is how far past the viewport an exiting particle must travel before removal
	OffScreenMargin = 4.0
)

// Thought Field kinetics
const (
	// ThoughtMaxSpeed caps velocity magnitude for every particle
	ThoughtMaxSpeed = 0.6

	// ThoughtRestitution is the energy kept by a soft bounce
	ThoughtRestitution = 0.8

	// ThoughtWander is the per-axis random impulse amplitude applied each frame
	ThoughtWander = 0.004

	// ExclusionRadius is the protected radius around the anchor
	ExclusionRadius = 18.0

	// ExclusionStrength is the outward impulse magnitude applied inside the exclusion radius
	ExclusionStrength = 0.01
)

// Thought lifecycle timing
const (
	// EmergeDuration is the time a particle stays in the emerging phase
	EmergeDuration = 700 * time.Millisecond

	// SettleDuration is the time a particle stays in the settling phase
	SettleDuration = 2400 * time.Millisecond

	// EmergeFadeIn is the time the opacity ramp takes to reach 1 while emerging
	EmergeFadeIn = 333 * time.Millisecond

	// EmergeScale is the visual scale of a fresh particle, settling to 1.0 once drifting
	EmergeScale = 1.1

	// ScaleSpringFrequency and ScaleSpringDamping shape the scale settling spring
	ScaleSpringFrequency = 4.0
	ScaleSpringDamping   = 1.0
)

// Question profile (transient)
const (
	QuestionExitSpeed     = 0.45
	QuestionDriftSpeed    = 0.03
	QuestionExitDamping   = 1.0
	QuestionDriftDamping  = 0.985
	QuestionFadeStart     = 0.9
	QuestionFadePerSecond = 0.25
	QuestionFadeFloor     = 0.0
)

// Response profile (persistent)
const (
	ResponseDriftSpeed    = 0.02
	ResponseDamping       = 0.99
	ResponseFadeStart     = 0.9
	ResponseFadePerSecond = 1.0 / 120.0
	ResponseFadeFloor     = 0.35

	// ResponseReleaseSpeed is the outward impulse magnitude given to a superseded centered response
	ResponseReleaseSpeed = 0.05
)
