package audio

import (
	"context"
	"fmt"
	"io"
)

// Speaker voices a reply, Speak returns when playback finished or ctx ended
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Synthesizer converts text to an MP3 stream
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (io.ReadCloser, error)
}

// Player plays an MP3 stream, the channel closes when playback ends
// Playback stops when ctx is done
type Player interface {
	Play(ctx context.Context, r io.ReadCloser) (<-chan struct{}, error)
}

// Voice joins a remote synthesizer to local playback
type Voice struct {
	synth  Synthesizer
	player Player
}

// NewVoice creates a Speaker from a synthesizer and a player
func NewVoice(synth Synthesizer, player Player) *Voice {
	return &Voice{synth: synth, player: player}
}

// Speak synthesizes text and blocks until playback ends or ctx is done, which also silences it
func (v *Voice) Speak(ctx context.Context, text string) error {
	rc, err := v.synth.Synthesize(ctx, text)
	if err != nil {
		return fmt.Errorf("synthesize: %w", err)
	}
	done, err := v.player.Play(ctx, rc)
	if err != nil {
		return fmt.Errorf("play: %w", err)
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NopSpeaker discards speech, used when audio or a synthesizer is unavailable
type NopSpeaker struct{}

func (NopSpeaker) Speak(context.Context, string) error { return nil }

var (
	_ Speaker     = (*Voice)(nil)
	_ Speaker     = NopSpeaker{}
	_ Player      = (*SoundManager)(nil)
	_ Synthesizer = (*ElevenLabs)(nil)
	_ Synthesizer = (*OpenAISpeech)(nil)
)
