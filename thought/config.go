package thought

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/aether/parameter"
)

// Profile is the per-kind motion and fade parameter set
type Profile struct {
	SpawnAt       SpawnPoint `toml:"spawn_at"`
	InitialSpeed  float64    `toml:"initial_speed"`
	Damping       float64    `toml:"damping"`
	FadeStart     float64    `toml:"fade_start"`
	FadeFloor     float64    `toml:"fade_floor"`
	FadePerSecond float64    `toml:"fade_per_second"`
	Edge          EdgePolicy `toml:"edge"`

	// HoldUntilDrifting freezes motion until the drifting phase
	HoldUntilDrifting bool `toml:"hold_until_drifting"`
}

// Config tunes the Thought Field, all lengths in viewport units
type Config struct {
	MaxThoughts       int           `toml:"max_thoughts"`
	SpawnPadding      float64       `toml:"spawn_padding"`
	EdgeMargin        float64       `toml:"edge_margin"`
	BottomReserve     float64       `toml:"bottom_reserve"`
	OffScreenMargin   float64       `toml:"offscreen_margin"`
	MaxSpeed          float64       `toml:"max_speed"`
	Restitution       float64       `toml:"restitution"`
	Wander            float64       `toml:"wander"`
	ExclusionRadius   float64       `toml:"exclusion_radius"`
	ExclusionStrength float64       `toml:"exclusion_strength"`
	EmergeDuration    time.Duration `toml:"emerge_duration"`
	SettleDuration    time.Duration `toml:"settle_duration"`
	EmergeFadeIn      time.Duration `toml:"emerge_fade_in"`
	EmergeScale       float64       `toml:"emerge_scale"`

	// SpawnQuestions adds a question particle per submission next to the response
	SpawnQuestions bool `toml:"spawn_questions"`

	// CenteredResponses pins the newest response at the anchor
	CenteredResponses bool    `toml:"centered_responses"`
	ReleaseSpeed      float64 `toml:"release_speed"`

	Question Profile `toml:"question"`
	Response Profile `toml:"response"`
}

// ExitQuestions is the question profile that bursts from the center and flies off-screen
func ExitQuestions() Profile {
	return Profile{
		SpawnAt:       SpawnCenter,
		InitialSpeed:  parameter.QuestionExitSpeed,
		Damping:       parameter.QuestionExitDamping,
		FadeStart:     parameter.QuestionFadeStart,
		FadeFloor:     parameter.QuestionFadeFloor,
		FadePerSecond: parameter.QuestionFadePerSecond,
		Edge:          EdgeEscape,
	}
}

// DriftQuestions is the question profile that floats like any other thought and fades in place
func DriftQuestions() Profile {
	return Profile{
		SpawnAt:       SpawnRandom,
		InitialSpeed:  parameter.QuestionDriftSpeed,
		Damping:       parameter.QuestionDriftDamping,
		FadeStart:     parameter.QuestionFadeStart,
		FadeFloor:     parameter.QuestionFadeFloor,
		FadePerSecond: parameter.QuestionFadePerSecond,
		Edge:          EdgeBounceClamp,
	}
}

// DriftResponses is the persistent profile for responses that never fully disappear
func DriftResponses() Profile {
	return Profile{
		SpawnAt:       SpawnCenter,
		InitialSpeed:  parameter.ResponseDriftSpeed,
		Damping:       parameter.ResponseDamping,
		FadeStart:     parameter.ResponseFadeStart,
		FadeFloor:     parameter.ResponseFadeFloor,
		FadePerSecond: parameter.ResponseFadePerSecond,
		Edge:          EdgeBounceClamp,
	}
}

// DefaultConfig returns the centered-response variant with exiting questions
func DefaultConfig() Config {
	return Config{
		MaxThoughts:       parameter.MaxThoughts,
		SpawnPadding:      parameter.SpawnPadding,
		EdgeMargin:        parameter.EdgeMargin,
		BottomReserve:     parameter.BottomReserve,
		OffScreenMargin:   parameter.OffScreenMargin,
		MaxSpeed:          parameter.ThoughtMaxSpeed,
		Restitution:       parameter.ThoughtRestitution,
		Wander:            parameter.ThoughtWander,
		ExclusionRadius:   parameter.ExclusionRadius,
		ExclusionStrength: parameter.ExclusionStrength,
		EmergeDuration:    parameter.EmergeDuration,
		SettleDuration:    parameter.SettleDuration,
		EmergeFadeIn:      parameter.EmergeFadeIn,
		EmergeScale:       parameter.EmergeScale,
		SpawnQuestions:    true,
		CenteredResponses: true,
		ReleaseSpeed:      parameter.ResponseReleaseSpeed,
		Question:          ExitQuestions(),
		Response:          DriftResponses(),
	}
}

// Validate returns the first violated constraint
func (c Config) Validate() error {
	if c.MaxThoughts <= 0 {
		return errors.New("max_thoughts must be > 0")
	}
	if c.MaxSpeed <= 0 {
		return errors.New("max_speed must be > 0")
	}
	if c.Restitution < 0 || c.Restitution > 1 {
		return errors.New("restitution must be within [0, 1]")
	}
	if c.Wander < 0 || c.ExclusionRadius < 0 || c.ExclusionStrength < 0 {
		return errors.New("wander and exclusion values must be >= 0")
	}
	if c.EmergeDuration < 0 || c.SettleDuration < 0 || c.EmergeFadeIn <= 0 {
		return errors.New("lifecycle durations must be >= 0 and emerge_fade_in > 0")
	}
	if c.CenteredResponses && c.ReleaseSpeed <= 0 {
		return errors.New("release_speed must be > 0 with centered responses")
	}
	if err := c.Question.validate(); err != nil {
		return fmt.Errorf("question: %w", err)
	}
	if err := c.Response.validate(); err != nil {
		return fmt.Errorf("response: %w", err)
	}
	if c.Response.FadeFloor <= 0 {
		return errors.New("response: fade_floor must be > 0, responses never fully disappear")
	}
	return nil
}

func (p Profile) validate() error {
	if p.FadeStart < 0 || p.FadeStart > 1 || p.FadeFloor < 0 || p.FadeFloor > p.FadeStart {
		return errors.New("fade values must satisfy 0 <= fade_floor <= fade_start <= 1")
	}
	if p.FadePerSecond < 0 {
		return errors.New("fade_per_second must be >= 0")
	}
	if p.InitialSpeed < 0 || p.Damping <= 0 || p.Damping > 1 {
		return errors.New("initial_speed must be >= 0 and damping within (0, 1]")
	}
	return nil
}
