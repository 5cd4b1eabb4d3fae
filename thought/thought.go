package thought

import (
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/aether/physics"
)

// Thought is one drifting text particle, a value owned by the Field arena
type Thought struct {
	ID       uuid.UUID
	Text     string
	Kind     Kind
	Modality Modality

	physics.Kinetic

	Phase   Phase
	Opacity float64
	Scale   float64

	// CreatedAt and AnchorTime are on the field's simulation clock
	// AnchorTime marks entry into the current phase
	CreatedAt  time.Duration
	AnchorTime time.Duration

	scaleVel float64
}

// Age returns time since creation on the given simulation clock
func (t Thought) Age(clock time.Duration) time.Duration {
	return clock - t.CreatedAt
}

// Snapshot is the immutable per-frame view of a Thought for presentation
type Snapshot struct {
	ID       uuid.UUID
	Text     string
	Kind     Kind
	Modality Modality
	Phase    Phase
	X, Y     float64
	Opacity  float64
	Scale    float64
	Centered bool
	Latest   bool
}
