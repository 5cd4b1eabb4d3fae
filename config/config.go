package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/aether/audio"
	"github.com/lixenwraith/aether/llm"
	"github.com/lixenwraith/aether/parameter"
	"github.com/lixenwraith/aether/render"
	"github.com/lixenwraith/aether/starfield"
	"github.com/lixenwraith/aether/thought"
)

// ErrMissingKey reports a provider selected without credentials
var ErrMissingKey = errors.New("missing api key")

// Environment variables consulted when the file leaves a credential empty
const (
	EnvOpenRouterKey   = "OPENROUTER_API_KEY"
	EnvOpenAIKey       = "OPENAI_API_KEY"
	EnvElevenLabsKey   = "ELEVENLABS_API_KEY"
	EnvElevenLabsVoice = "ELEVENLABS_VOICE_ID"
	EnvOpenRouterModel = "AETHER_MODEL"
	EnvSpeechProvider  = "AETHER_SPEECH"
)

// Provider selects the speech synthesizer
type Provider string

const (
	ProviderNone       Provider = "none"
	ProviderElevenLabs Provider = "elevenlabs"
	ProviderOpenAI     Provider = "openai"
)

// Scene configures the scene graph source
type Scene struct {
	// FSMPath replaces the embedded scene graph when set
	FSMPath string `toml:"fsm_path"`
}

// LLM configures the reply generator
type LLM struct {
	BaseURL     string          `toml:"base_url"`
	APIKey      string          `toml:"api_key"`
	Model       string          `toml:"model"`
	Referer     string          `toml:"referer"`
	Title       string          `toml:"title"`
	Timeout     time.Duration   `toml:"timeout"`
	Personality llm.Personality `toml:"personality"`
}

// ClientConfig returns the endpoint part consumed by llm.NewClient
func (l LLM) ClientConfig() llm.Config {
	return llm.Config{
		BaseURL: l.BaseURL,
		APIKey:  l.APIKey,
		Model:   l.Model,
		Referer: l.Referer,
		Title:   l.Title,
		Timeout: l.Timeout,
	}
}

// CheckKey returns ErrMissingKey when no credential is configured
func (l LLM) CheckKey() error {
	if l.APIKey == "" {
		return fmt.Errorf("llm: %w (set %s or [llm] api_key)", ErrMissingKey, EnvOpenRouterKey)
	}
	return nil
}

// Speech configures reply narration
type Speech struct {
	Provider Provider `toml:"provider"`

	// SpeakAll voices typed submissions too
	SpeakAll bool          `toml:"speak_all"`
	Timeout  time.Duration `toml:"timeout"`

	ElevenLabs audio.ElevenLabsConfig   `toml:"elevenlabs"`
	OpenAI     audio.OpenAISpeechConfig `toml:"openai"`
}

// CheckKey returns ErrMissingKey when the selected provider lacks credentials
func (s Speech) CheckKey() error {
	switch s.Provider {
	case ProviderElevenLabs:
		if s.ElevenLabs.APIKey == "" {
			return fmt.Errorf("speech: %w (set %s)", ErrMissingKey, EnvElevenLabsKey)
		}
	case ProviderOpenAI:
		if s.OpenAI.APIKey == "" {
			return fmt.Errorf("speech: %w (set %s)", ErrMissingKey, EnvOpenAIKey)
		}
	}
	return nil
}

// Audio configures the output device
type Audio struct {
	// Enabled opens the speaker, speech playback needs it
	Enabled bool `toml:"enabled"`
	// Cues plays the activation whoosh and the reply chime
	Cues bool `toml:"cues"`
}

// Config is the complete runtime configuration, sections mirror the TOML file
type Config struct {
	// Seed drives the simulation sources, zero picks a time-based seed
	Seed uint64 `toml:"seed"`

	Thoughts thought.Config   `toml:"thoughts"`
	Stars    starfield.Config `toml:"stars"`
	Scene    Scene            `toml:"scene"`
	LLM      LLM              `toml:"llm"`
	Speech   Speech           `toml:"speech"`
	Audio    Audio            `toml:"audio"`
	Render   render.Config    `toml:"render"`
}

// Default returns the full default set
func Default() Config {
	return Config{
		Thoughts: thought.DefaultConfig(),
		Stars:    starfield.DefaultConfig(),
		LLM: LLM{
			BaseURL:     llm.DefaultBaseURL,
			Model:       parameter.DefaultModel,
			Title:       parameter.DefaultAppTitle,
			Timeout:     parameter.GenerationTimeout,
			Personality: llm.DefaultPersonality(),
		},
		Speech: Speech{
			Provider:   ProviderNone,
			Timeout:    parameter.SpeechTimeout,
			ElevenLabs: audio.DefaultElevenLabsConfig(),
		},
		Audio:  Audio{Enabled: true, Cues: true},
		Render: render.DefaultConfig(),
	}
}

// Load overlays the TOML file at path on the defaults, then fills credentials from the environment
// An empty path skips the file
func Load(path string) (Config, error) {
	return load(path, os.Getenv)
}

func load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return cfg, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	}
	cfg.applyEnv(getenv)
	return cfg, nil
}

// applyEnv fills only values the file left empty
func (c *Config) applyEnv(getenv func(string) string) {
	fill := func(dst *string, key string) {
		if *dst == "" {
			*dst = getenv(key)
		}
	}
	fill(&c.LLM.APIKey, EnvOpenRouterKey)
	fill(&c.Speech.OpenAI.APIKey, EnvOpenAIKey)
	fill(&c.Speech.ElevenLabs.APIKey, EnvElevenLabsKey)
	fill(&c.Speech.ElevenLabs.VoiceID, EnvElevenLabsVoice)

	if m := getenv(EnvOpenRouterModel); m != "" {
		c.LLM.Model = m
	}
	if p := getenv(EnvSpeechProvider); p != "" {
		c.Speech.Provider = Provider(strings.ToLower(p))
	}
}

// Validate returns the first violated constraint, credentials are checked separately
func (c Config) Validate() error {
	if err := c.Thoughts.Validate(); err != nil {
		return fmt.Errorf("thoughts: %w", err)
	}
	if err := c.Stars.Validate(); err != nil {
		return fmt.Errorf("stars: %w", err)
	}
	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	if err := c.Speech.validate(); err != nil {
		return fmt.Errorf("speech: %w", err)
	}
	if c.Render.TextWidth <= 0 {
		return errors.New("render: text_width must be > 0")
	}
	return nil
}

func (l LLM) validate() error {
	switch {
	case strings.TrimSpace(l.Model) == "":
		return errors.New("model must not be empty")
	case l.Timeout < 0:
		return errors.New("timeout must be >= 0")
	}
	if err := l.Personality.Validate(); err != nil {
		return fmt.Errorf("personality: %w", err)
	}
	return nil
}

func (s Speech) validate() error {
	if s.Timeout < 0 {
		return errors.New("timeout must be >= 0")
	}
	switch s.Provider {
	case ProviderNone, "":
	case ProviderElevenLabs:
		if s.ElevenLabs.VoiceID == "" {
			return fmt.Errorf("elevenlabs voice_id required (set %s)", EnvElevenLabsVoice)
		}
		if s.ElevenLabs.Stability < 0 || s.ElevenLabs.Stability > 1 ||
			s.ElevenLabs.SimilarityBoost < 0 || s.ElevenLabs.SimilarityBoost > 1 {
			return errors.New("elevenlabs voice settings must be within [0, 1]")
		}
	case ProviderOpenAI:
	default:
		return fmt.Errorf("unknown provider %q (want none, elevenlabs or openai)", s.Provider)
	}
	return nil
}
