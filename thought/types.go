package thought

import "fmt"

// Kind separates the two conversational rhythms: ephemeral utterance, lingering reply
type Kind uint8

const (
	KindQuestion Kind = iota
	KindResponse
)

func (k Kind) String() string {
	switch k {
	case KindQuestion:
		return "question"
	case KindResponse:
		return "response"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Modality is the input channel a submission came from, presentational only
type Modality uint8

const (
	ModalityText Modality = iota
	ModalityVoice
)

func (m Modality) String() string {
	if m == ModalityVoice {
		return "voice"
	}
	return "text"
}

// Phase is the time-gated lifecycle stage, it only moves forward
type Phase uint8

const (
	PhaseEmerging Phase = iota
	PhaseSettling
	PhaseDrifting
)

func (p Phase) String() string {
	switch p {
	case PhaseEmerging:
		return "emerging"
	case PhaseSettling:
		return "settling"
	case PhaseDrifting:
		return "drifting"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// EdgePolicy selects how a particle interacts with the viewport boundary
type EdgePolicy uint8

const (
	// EdgeBounceClamp inverts velocity with energy loss and clamps position inside the margin
	EdgeBounceClamp EdgePolicy = iota
	// EdgeReflect inverts the outward velocity component once the margin is crossed
	EdgeReflect
	// EdgeEscape lets the particle leave the viewport, it is removed once faded and off-screen
	EdgeEscape
)

var edgeNames = map[EdgePolicy]string{
	EdgeBounceClamp: "bounce",
	EdgeReflect:     "reflect",
	EdgeEscape:      "escape",
}

func (e EdgePolicy) String() string {
	if s, ok := edgeNames[e]; ok {
		return s
	}
	return fmt.Sprintf("edge(%d)", uint8(e))
}

func (e EdgePolicy) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *EdgePolicy) UnmarshalText(b []byte) error {
	for k, v := range edgeNames {
		if v == string(b) {
			*e = k
			return nil
		}
	}
	return fmt.Errorf("unknown edge policy %q (want bounce, reflect or escape)", b)
}

// SpawnPoint selects where a new particle appears
type SpawnPoint uint8

const (
	SpawnCenter SpawnPoint = iota
	SpawnRandom
)

func (s SpawnPoint) String() string {
	if s == SpawnRandom {
		return "random"
	}
	return "center"
}

func (s SpawnPoint) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SpawnPoint) UnmarshalText(b []byte) error {
	switch string(b) {
	case "center":
		*s = SpawnCenter
	case "random":
		*s = SpawnRandom
	default:
		return fmt.Errorf("unknown spawn point %q (want center or random)", b)
	}
	return nil
}
