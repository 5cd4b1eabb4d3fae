package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/aether/parameter"
)

// ErrNotInitialized is returned by Play before Initialize succeeded or after Cleanup
var ErrNotInitialized = errors.New("audio not initialized")

// SoundManager owns the speaker and mixes tones and decoded speech
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	sampleRate  beep.SampleRate
	whoosh      *beep.Ctrl
	playing     []*playback
	initialized bool
}

// playback tracks one speech stream so cancellation and Cleanup can silence it
type playback struct {
	ctrl *beep.Ctrl
	done chan struct{}
	once sync.Once
}

func newPlayback(s beep.Streamer) *playback {
	p := &playback{done: make(chan struct{})}
	// The callback runs on the speaker goroutine with the speaker lock held, it must not take sm.mu
	p.ctrl = &beep.Ctrl{Streamer: beep.Seq(s, beep.Callback(p.finish))}
	return p
}

// stop drops the stream from the mixer on its next pull and releases the waiter
func (p *playback) stop() {
	speaker.Lock()
	p.ctrl.Paused = true
	p.ctrl.Streamer = nil
	speaker.Unlock()
	p.finish()
}

func (p *playback) finish() {
	p.once.Do(func() { close(p.done) })
}

func (p *playback) finished() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// NewSoundManager creates a new sound manager at the configured output rate
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:      &beep.Mixer{},
		sampleRate: beep.SampleRate(parameter.AudioSampleRate),
	}
}

// Initialize sets up the speaker, safe to call more than once
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sm.sampleRate, sm.sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds, the speaker itself stays open for the process
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	if sm.whoosh != nil {
		sm.whoosh.Paused = true
	}
	sm.mixer.Clear()
	speaker.Unlock()

	for _, p := range sm.playing {
		p.stop()
	}
	sm.whoosh = nil
	sm.playing = nil
	sm.initialized = false
}

// add mixes s in, caller holds sm.mu
func (sm *SoundManager) add(s beep.Streamer) {
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// PlayChime plays the soft tone marking a new reply
func (sm *SoundManager) PlayChime() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	if s, err := NewChime(sm.sampleRate); err == nil {
		sm.add(s)
	}
}

// PlayWhoosh plays the rising sweep over d, restarting it if already playing
func (sm *SoundManager) PlayWhoosh(d time.Duration) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	if sm.whoosh != nil {
		speaker.Lock()
		sm.whoosh.Paused = true
		speaker.Unlock()
	}

	if d <= 0 {
		d = parameter.TransitionDuration
	}
	n := sm.sampleRate.N(d)
	ctrl := &beep.Ctrl{Streamer: withVolume(beep.Take(n, NewWhooshGenerator(sm.sampleRate, n)), parameter.WhooshVolume)}
	sm.whoosh = ctrl
	sm.add(ctrl)
}

// Play decodes an MP3 stream fully, then mixes it in; the returned channel closes when playback ends or ctx is done
// The reader is owned by the manager and closed once decoded. Decoding holds no lock, so slow network
// reads never stall the speaker or the cue methods
func (sm *SoundManager) Play(ctx context.Context, r io.ReadCloser) (<-chan struct{}, error) {
	if !sm.ready() {
		r.Close()
		return nil, ErrNotInitialized
	}

	buf, err := decodeMP3(r, sm.sampleRate)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := newPlayback(buf.Streamer(0, buf.Len()))

	sm.mu.Lock()
	if !sm.initialized {
		sm.mu.Unlock()
		return nil, ErrNotInitialized
	}
	live := sm.playing[:0]
	for _, q := range sm.playing {
		if !q.finished() {
			live = append(live, q)
		}
	}
	sm.playing = append(live, p)
	sm.add(p.ctrl)
	sm.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			p.stop()
		case <-p.done:
		}
	}()
	return p.done, nil
}

func (sm *SoundManager) ready() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// decodeMP3 reads r to the end into a buffer at the output rate and closes r
func decodeMP3(r io.ReadCloser, sr beep.SampleRate) (*beep.Buffer, error) {
	stream, format, err := mp3.Decode(r)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("decode mp3: %w", err)
	}
	defer stream.Close()

	var s beep.Streamer = stream
	if format.SampleRate != sr {
		s = beep.Resample(parameter.AudioResampleQuality, format.SampleRate, sr, stream)
	}
	format.SampleRate = sr

	buf := beep.NewBuffer(format)
	buf.Append(s)
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("decode mp3: %w", err)
	}
	return buf, nil
}

// NewChime returns a sine tone with a soft attack and exponential tail
func NewChime(sr beep.SampleRate) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, parameter.ChimeFrequency)
	if err != nil {
		return nil, err
	}
	n := sr.N(parameter.ChimeDuration)
	return withVolume(newEnvelope(beep.Take(n, sine), n, sr.N(parameter.ChimeAttack)), parameter.ChimeVolume), nil
}

func withVolume(s beep.Streamer, volume float64) beep.Streamer {
	return &effects.Volume{Streamer: s, Base: 2, Volume: volume}
}
