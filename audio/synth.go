package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/lixenwraith/aether/parameter"
)

// DefaultElevenLabsURL is the ElevenLabs API root
const DefaultElevenLabsURL = "https://api.elevenlabs.io"

// ElevenLabsConfig selects the voice and its settings
type ElevenLabsConfig struct {
	BaseURL         string  `toml:"base_url"`
	APIKey          string  `toml:"api_key"`
	VoiceID         string  `toml:"voice_id"`
	ModelID         string  `toml:"model_id"`
	Stability       float64 `toml:"stability"`
	SimilarityBoost float64 `toml:"similarity_boost"`
}

// DefaultElevenLabsConfig returns the calm voice settings without credentials
func DefaultElevenLabsConfig() ElevenLabsConfig {
	return ElevenLabsConfig{
		BaseURL:         DefaultElevenLabsURL,
		Stability:       parameter.VoiceStability,
		SimilarityBoost: parameter.VoiceSimilarityBoost,
	}
}

// ElevenLabs synthesizes speech through the ElevenLabs text-to-speech REST endpoint
type ElevenLabs struct {
	cfg    ElevenLabsConfig
	client *http.Client
}

// NewElevenLabs creates the synthesizer, client may be nil
func NewElevenLabs(cfg ElevenLabsConfig, client *http.Client) (*ElevenLabs, error) {
	if cfg.APIKey == "" || cfg.VoiceID == "" {
		return nil, errors.New("elevenlabs: api key and voice id required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultElevenLabsURL
	}
	if client == nil {
		client = &http.Client{Timeout: parameter.SpeechTimeout}
	}
	return &ElevenLabs{cfg: cfg, client: client}, nil
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type ttsRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id,omitempty"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

// Synthesize posts text and returns the MP3 body, the caller closes it
func (e *ElevenLabs) Synthesize(ctx context.Context, text string) (io.ReadCloser, error) {
	body, err := json.Marshal(ttsRequest{
		Text:    text,
		ModelID: e.cfg.ModelID,
		VoiceSettings: voiceSettings{
			Stability:       e.cfg.Stability,
			SimilarityBoost: e.cfg.SimilarityBoost,
		},
	})
	if err != nil {
		return nil, err
	}

	endpoint, err := url.JoinPath(e.cfg.BaseURL, "v1", "text-to-speech", e.cfg.VoiceID)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", e.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("elevenlabs: status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}
	return resp.Body, nil
}

// OpenAISpeechConfig selects the OpenAI speech model and voice
type OpenAISpeechConfig struct {
	BaseURL string        `toml:"base_url"`
	APIKey  string        `toml:"api_key"`
	Model   string        `toml:"model"`
	Voice   string        `toml:"voice"`
	Timeout time.Duration `toml:"timeout"`
}

// OpenAISpeech synthesizes speech through the OpenAI audio speech endpoint
type OpenAISpeech struct {
	client openai.Client
	model  string
	voice  string
}

// NewOpenAISpeech creates the synthesizer
func NewOpenAISpeech(cfg OpenAISpeechConfig) (*OpenAISpeech, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai speech: api key required")
	}
	if cfg.Model == "" {
		cfg.Model = string(openai.SpeechModelTTS1)
	}
	if cfg.Voice == "" {
		cfg.Voice = string(openai.AudioSpeechNewParamsVoiceSage)
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey), option.WithMaxRetries(0)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	return &OpenAISpeech{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
		voice:  cfg.Voice,
	}, nil
}

// Synthesize requests MP3 speech for text, the caller closes the body
func (o *OpenAISpeech) Synthesize(ctx context.Context, text string) (io.ReadCloser, error) {
	resp, err := o.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Input:          text,
		Model:          openai.SpeechModel(o.model),
		Voice:          openai.AudioSpeechNewParamsVoice(o.voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return nil, fmt.Errorf("openai speech: %w", err)
	}
	return resp.Body, nil
}
