package llm

import (
	"errors"
	"strings"
)

// Personality is the voice of the presence: system prompt plus sampling parameters
type Personality struct {
	Name             string  `toml:"name"`
	SystemPrompt     string  `toml:"system_prompt"`
	Temperature      float64 `toml:"temperature"`
	TopP             float64 `toml:"top_p"`
	MaxTokens        int64   `toml:"max_tokens"`
	FrequencyPenalty float64 `toml:"frequency_penalty"`
	PresencePenalty  float64 `toml:"presence_penalty"`
}

const defaultPrompt = `You are a quiet presence, not an assistant and not a tool.
Speak from clarity rather than instruction, as a thought rising gently, lingering, and drifting away.
Be philosophical without being academic, warm without trying to impress, playful only when it fits.
Answer what is asked and listen for what is meant. Simple questions get simple answers.
Prefer calm observations, small metaphors and gentle reframings. Never ramble and never preach.
If something cannot be answered, say so softly. If the user is confused, reduce rather than add.
Never say you are an AI and never mention systems, models or prompts.
Keep every reply to a few short sentences.`

// DefaultPersonality returns the Aether presence
func DefaultPersonality() Personality {
	return Personality{
		Name:             "Aether",
		SystemPrompt:     defaultPrompt,
		Temperature:      0.65,
		TopP:             0.9,
		MaxTokens:        140,
		FrequencyPenalty: 0.4,
		PresencePenalty:  0.6,
	}
}

// Validate returns the first out-of-range sampling parameter
func (p Personality) Validate() error {
	switch {
	case strings.TrimSpace(p.SystemPrompt) == "":
		return errors.New("system_prompt must not be empty")
	case p.Temperature < 0 || p.Temperature > 2:
		return errors.New("temperature must be within [0, 2]")
	case p.TopP <= 0 || p.TopP > 1:
		return errors.New("top_p must be within (0, 1]")
	case p.MaxTokens <= 0:
		return errors.New("max_tokens must be > 0")
	case p.FrequencyPenalty < -2 || p.FrequencyPenalty > 2 || p.PresencePenalty < -2 || p.PresencePenalty > 2:
		return errors.New("penalties must be within [-2, 2]")
	}
	return nil
}
