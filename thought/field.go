package thought

import (
	"io"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/google/uuid"

	"github.com/lixenwraith/aether/parameter"
	"github.com/lixenwraith/aether/physics"
	"github.com/lixenwraith/aether/vmath"
)

// Stats are cumulative field counters
type Stats struct {
	Spawned uint64
	Evicted uint64
	Retired uint64
}

// Field owns the live particle arena, newest first
// Not safe for concurrent use: one frame goroutine owns it, other goroutines enqueue spawn requests
type Field struct {
	cfg Config
	rng vmath.Source
	ids io.Reader

	width, height float64
	anchor        vmath.Vec2
	clock         time.Duration

	thoughts []Thought
	scratch  []Thought

	// centered is the single pinned response, uuid.Nil when none
	centered uuid.UUID

	springDt float64
	spring   harmonica.Spring

	stats Stats
}

// NewField creates an empty field over a width x height viewport
// A source that also implements io.Reader supplies particle ids, making them reproducible
func NewField(cfg Config, rng vmath.Source, width, height float64) *Field {
	f := &Field{
		cfg:      cfg,
		rng:      rng,
		thoughts: make([]Thought, 0, cfg.MaxThoughts+2),
		scratch:  make([]Thought, 0, cfg.MaxThoughts+2),
	}
	if r, ok := rng.(io.Reader); ok {
		f.ids = r
	}
	f.Resize(width, height)
	return f
}

// Resize updates the viewport; the anchor follows the center of the usable area
func (f *Field) Resize(width, height float64) {
	f.width, f.height = width, height
	usable := height - f.cfg.BottomReserve
	if usable < 0 {
		usable = height
	}
	f.anchor = vmath.Vec2{X: width / 2, Y: usable / 2}
}

// Size returns the viewport extent
func (f *Field) Size() (width, height float64) {
	return f.width, f.height
}

// Anchor returns the exclusion zone center
func (f *Field) Anchor() vmath.Vec2 {
	return f.anchor
}

// Clock returns the simulation time accumulated by Advance
func (f *Field) Clock() time.Duration {
	return f.clock
}

// Len returns the live particle count
func (f *Field) Len() int {
	return len(f.thoughts)
}

// Stats returns cumulative counters
func (f *Field) Stats() Stats {
	return f.stats
}

// Thoughts returns a copy of the arena, newest first
func (f *Field) Thoughts() []Thought {
	out := make([]Thought, len(f.thoughts))
	copy(out, f.thoughts)
	return out
}

// Centered returns the pinned response if any
func (f *Field) Centered() (Thought, bool) {
	if i := f.indexOf(f.centered); i >= 0 {
		return f.thoughts[i], true
	}
	return Thought{}, false
}

// IsCentered reports whether id is the pinned response
func (f *Field) IsCentered(id uuid.UUID) bool {
	return id != uuid.Nil && id == f.centered
}

// SpawnQuestion inserts a transient question particle
func (f *Field) SpawnQuestion(text string, m Modality) Thought {
	t := f.newThought(text, KindQuestion, m, f.cfg.Question)
	f.insert(t)
	return t
}

// SpawnResponse inserts a response particle
// With centered responses the new particle is pinned at the anchor and the previous one is released
func (f *Field) SpawnResponse(text string, m Modality) Thought {
	t := f.newThought(text, KindResponse, m, f.cfg.Response)
	if f.cfg.CenteredResponses {
		f.release()
		t.Pos = f.anchor
		t.Vel = vmath.Vec2{}
		f.centered = t.ID
	}
	f.insert(t)
	return t
}

// release unpins the centered response with a randomized low-speed outward impulse
func (f *Field) release() {
	i := f.indexOf(f.centered)
	f.centered = uuid.Nil
	if i < 0 {
		return
	}
	speed := f.cfg.ReleaseSpeed * vmath.Range(f.rng, 0.5, 1.0)
	physics.SetImpulse(&f.thoughts[i].Kinetic, vmath.V2FromAngle(vmath.Angle(f.rng), speed))
	physics.CapSpeed(&f.thoughts[i].Kinetic, f.cfg.MaxSpeed)
}

func (f *Field) newThought(text string, kind Kind, m Modality, p Profile) Thought {
	t := Thought{
		ID:         f.newID(),
		Text:       text,
		Kind:       kind,
		Modality:   m,
		Phase:      PhaseEmerging,
		Opacity:    0,
		Scale:      f.cfg.EmergeScale,
		CreatedAt:  f.clock,
		AnchorTime: f.clock,
	}
	t.Pos = f.spawnPoint(p.SpawnAt)
	if p.Edge == EdgeEscape {
		t.Vel = vmath.V2FromAngle(vmath.Angle(f.rng), p.InitialSpeed)
	} else {
		t.Vel = vmath.Vec2{X: vmath.Signed(f.rng) * p.InitialSpeed, Y: vmath.Signed(f.rng) * p.InitialSpeed}
	}
	physics.CapSpeed(&t.Kinetic, f.cfg.MaxSpeed)
	return t
}

func (f *Field) spawnPoint(at SpawnPoint) vmath.Vec2 {
	if at == SpawnCenter {
		return f.anchor
	}
	b := physics.Inset(f.width, f.height, f.cfg.SpawnPadding, f.cfg.BottomReserve)
	return vmath.Vec2{
		X: vmath.Range(f.rng, b.MinX, b.MaxX),
		Y: vmath.Range(f.rng, b.MinY, b.MaxY),
	}
}

func (f *Field) newID() uuid.UUID {
	if f.ids != nil {
		if id, err := uuid.NewRandomFromReader(f.ids); err == nil {
			return id
		}
	}
	return uuid.New()
}

// insert prepends t and enforces the cap
func (f *Field) insert(t Thought) {
	f.thoughts = append(f.thoughts, Thought{})
	copy(f.thoughts[1:], f.thoughts[:len(f.thoughts)-1])
	f.thoughts[0] = t
	f.stats.Spawned++
	f.enforceCap()
}

// enforceCap evicts from the tail (oldest) regardless of phase or opacity
func (f *Field) enforceCap() {
	for len(f.thoughts) > f.cfg.MaxThoughts {
		last := len(f.thoughts) - 1
		if f.thoughts[last].ID == f.centered {
			f.centered = uuid.Nil
		}
		f.thoughts[last] = Thought{}
		f.thoughts = f.thoughts[:last]
		f.stats.Evicted++
	}
}

func (f *Field) indexOf(id uuid.UUID) int {
	if id == uuid.Nil {
		return -1
	}
	for i := range f.thoughts {
		if f.thoughts[i].ID == id {
			return i
		}
	}
	return -1
}

// Snapshot returns the presentation view, newest first
func (f *Field) Snapshot() []Snapshot {
	out := make([]Snapshot, len(f.thoughts))
	for i, t := range f.thoughts {
		out[i] = Snapshot{
			ID:       t.ID,
			Text:     t.Text,
			Kind:     t.Kind,
			Modality: t.Modality,
			Phase:    t.Phase,
			X:        t.Pos.X,
			Y:        t.Pos.Y,
			Opacity:  t.Opacity,
			Scale:    t.Scale,
			Centered: t.ID == f.centered,
			Latest:   i == 0,
		}
	}
	return out
}

// scaleSpring returns the settling spring for a frame of dt, rebuilt only when dt changes
func (f *Field) scaleSpring(dt time.Duration) harmonica.Spring {
	secs := dt.Seconds()
	if secs != f.springDt {
		f.springDt = secs
		f.spring = harmonica.NewSpring(secs, parameter.ScaleSpringFrequency, parameter.ScaleSpringDamping)
	}
	return f.spring
}
