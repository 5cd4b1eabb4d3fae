package main

import (
	"context"
	"errors"
	"log"

	"github.com/lixenwraith/aether/audio"
	"github.com/lixenwraith/aether/config"
	"github.com/lixenwraith/aether/llm"
)

var errOffline = errors.New("no generator configured")

// offline fails every request so the session answers with its fallback thought
var offline = llm.GeneratorFunc(func(context.Context, string) (string, error) {
	return "", errOffline
})

// newGenerator builds the LLM client, degrading to offline without credentials
func newGenerator(cfg config.LLM, logger *log.Logger) llm.Generator {
	if err := cfg.CheckKey(); err != nil {
		logger.Printf("%v, replies use the fallback thought", err)
		return offline
	}
	client, err := llm.NewClient(cfg.ClientConfig(), cfg.Personality)
	if err != nil {
		logger.Printf("llm: %v, replies use the fallback thought", err)
		return offline
	}
	logger.Printf("llm: model %s at %s", cfg.Model, cfg.BaseURL)
	return client
}

// newSpeaker builds the narration pipeline; any missing piece yields a silent speaker
func newSpeaker(cfg config.Speech, player audio.Player, logger *log.Logger) audio.Speaker {
	if cfg.Provider == config.ProviderNone || cfg.Provider == "" {
		return audio.NopSpeaker{}
	}
	if player == nil {
		logger.Printf("speech: %s selected but audio output is unavailable", cfg.Provider)
		return audio.NopSpeaker{}
	}
	if err := cfg.CheckKey(); err != nil {
		logger.Printf("%v, speech disabled", err)
		return audio.NopSpeaker{}
	}

	var (
		synth audio.Synthesizer
		err   error
	)
	switch cfg.Provider {
	case config.ProviderElevenLabs:
		synth, err = audio.NewElevenLabs(cfg.ElevenLabs, nil)
	case config.ProviderOpenAI:
		synth, err = audio.NewOpenAISpeech(cfg.OpenAI)
	default:
		err = errors.New("unknown provider")
	}
	if err != nil {
		logger.Printf("speech: %s: %v, speech disabled", cfg.Provider, err)
		return audio.NopSpeaker{}
	}
	logger.Printf("speech: %s", cfg.Provider)
	return audio.NewVoice(synth, player)
}
