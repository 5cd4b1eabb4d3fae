package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/aether/audio"
	"github.com/lixenwraith/aether/core"
	"github.com/lixenwraith/aether/engine"
	"github.com/lixenwraith/aether/llm"
	"github.com/lixenwraith/aether/parameter"
	"github.com/lixenwraith/aether/scene"
	"github.com/lixenwraith/aether/starfield"
	"github.com/lixenwraith/aether/status"
	"github.com/lixenwraith/aether/thought"
	"github.com/lixenwraith/aether/vmath"
)

var (
	// ErrNotAccepting is returned while the scene does not take input
	ErrNotAccepting = errors.New("not accepting input")
	// ErrBusy is returned while a submission is in flight, nothing is queued
	ErrBusy = errors.New("busy")
)

// Sounds plays the ambient cues, satisfied by audio.SoundManager
// Calls come from the cue goroutine, never from the frame loop
type Sounds interface {
	PlayChime()
	PlayWhoosh(d time.Duration)
}

type nopSounds struct{}

func (nopSounds) PlayChime()               {}
func (nopSounds) PlayWhoosh(time.Duration) {}

// Options configure a Session
type Options struct {
	Thoughts thought.Config
	Stars    starfield.Config

	// Cols and Rows are the terminal size in cells
	Cols, Rows int

	// Seed feeds the simulation sources, zero picks a time-based seed
	Seed uint64

	Generator llm.Generator
	Speaker   audio.Speaker
	Sounds    Sounds

	// SpeakAll voices typed submissions too, voice submissions are always spoken
	SpeakAll bool

	GenerationTimeout time.Duration
	SpeechTimeout     time.Duration

	// FSMPath overrides the embedded scene graph
	FSMPath string

	Clock    engine.TimeProvider
	Logger   *log.Logger
	Registry *status.Registry
}

type spawnRequest struct {
	kind     thought.Kind
	text     string
	modality thought.Modality
}

// Session conducts one conversation: it owns the simulations and bridges input and collaborators into the frame loop
type Session struct {
	opts Options

	sched    *engine.Scheduler
	scene    *scene.Controller
	thoughts *thought.Field
	stars    *starfield.Field

	// Cross-goroutine inputs, drained by the frame goroutine
	spawns chan spawnRequest
	// Sound cues leave the frame goroutine through cues
	cues   chan func()
	resize atomic.Pointer[[2]int]
	input  atomic.Pointer[string]

	busy atomic.Bool
	view atomic.Pointer[View]

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *log.Logger

	statLive      *atomic.Int64
	statSpawned   *atomic.Int64
	statEvicted   *atomic.Int64
	statRetired   *atomic.Int64
	statRecycled  *atomic.Int64
	statBusy      *atomic.Bool
	statLLMFail   *atomic.Int64
	statSpeakFail *atomic.Int64
}

// New builds the simulations, the scheduler and the scene controller
// The frame loop is not started, call Start or drive Step directly
func New(opts Options) (*Session, error) {
	if err := opts.Thoughts.Validate(); err != nil {
		return nil, fmt.Errorf("thoughts: %w", err)
	}
	if err := opts.Stars.Validate(); err != nil {
		return nil, fmt.Errorf("stars: %w", err)
	}
	if opts.Generator == nil {
		return nil, errors.New("generator required")
	}
	if opts.Speaker == nil {
		opts.Speaker = audio.NopSpeaker{}
	}
	if opts.Sounds == nil {
		opts.Sounds = nopSounds{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.Registry == nil {
		opts.Registry = status.NewRegistry()
	}
	if opts.GenerationTimeout <= 0 {
		opts.GenerationTimeout = parameter.GenerationTimeout
	}
	if opts.SpeechTimeout <= 0 {
		opts.SpeechTimeout = parameter.SpeechTimeout
	}
	if opts.Seed == 0 {
		opts.Seed = uint64(time.Now().UnixNano())
	}

	w, h := viewport(opts.Cols, opts.Rows)
	reg := opts.Registry
	s := &Session{
		opts:          opts,
		sched:         engine.NewScheduler(opts.Clock, parameter.FrameUpdateInterval, parameter.MaxFrameStep, reg),
		thoughts:      thought.NewField(opts.Thoughts, vmath.NewFastRand(opts.Seed), w, h),
		stars:         starfield.NewField(opts.Stars, vmath.NewFastRand(opts.Seed^0x9e3779b97f4a7c15), w, h),
		spawns:        make(chan spawnRequest, parameter.SpawnQueueSize),
		cues:          make(chan func(), parameter.CueQueueSize),
		logger:        opts.Logger,
		statLive:      reg.Ints.Get(status.KeyThoughtsLive),
		statSpawned:   reg.Ints.Get(status.KeyThoughtsSpawned),
		statEvicted:   reg.Ints.Get(status.KeyThoughtsEvicted),
		statRetired:   reg.Ints.Get(status.KeyThoughtsRetired),
		statRecycled:  reg.Ints.Get(status.KeyStarsRecycled),
		statBusy:      reg.Bools.Get(status.KeyInputBusy),
		statLLMFail:   reg.Ints.Get(status.KeyLLMFailures),
		statSpeakFail: reg.Ints.Get(status.KeySpeechFailures),
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.runCues()

	ctrl, err := scene.NewController(s.sched, scene.Options{
		FSMPath:     opts.FSMPath,
		ThoughtStep: s.stepThoughts,
		Logger:      opts.Logger,
		Registry:    reg,
	})
	if err != nil {
		return nil, err
	}
	s.scene = ctrl
	ctrl.OnChange(s.sceneChanged)

	// Task order: inputs and scene first, then stars; the thought task is appended when Active begins
	s.sched.Register("scene", s.stepScene)
	s.sched.Register("stars", s.stepStars)
	s.sched.OnFrameEnd(s.publish)

	s.publish()
	return s, nil
}

func viewport(cols, rows int) (float64, float64) {
	return float64(max(cols, 1)), float64(max(rows, 1) * 2)
}

// Start runs the frame loop in the background
func (s *Session) Start() {
	s.sched.Start()
}

// Step runs one frame synchronously, for headless use and tests
func (s *Session) Step(dt time.Duration) {
	s.sched.Step(dt)
}

// FrameDone signals completed frames for the presentation side
func (s *Session) FrameDone() <-chan struct{} {
	return s.sched.FrameDone()
}

// Close stops the frame loop, cancels the scene tasks and waits for in-flight speech
func (s *Session) Close() {
	s.sched.Stop()
	s.scene.Close()
	s.cancel()
	s.wg.Wait()
}

// Activate forwards the landing gesture to the scene controller
func (s *Session) Activate() bool {
	return s.scene.Activate()
}

// Scene returns the current scene
func (s *Session) Scene() scene.Scene {
	return s.scene.Scene()
}

// Busy reports whether a submission is in flight
func (s *Session) Busy() bool {
	return s.busy.Load()
}

// Resize records a terminal size change, applied at the start of the next frame
func (s *Session) Resize(cols, rows int) {
	s.resize.Store(&[2]int{cols, rows})
}

// SetInput mirrors the input line into the published view
func (s *Session) SetInput(text string) {
	s.input.Store(&text)
}

// View returns the latest published frame snapshot
func (s *Session) View() *View {
	return s.view.Load()
}

// Submit turns one user utterance into a question particle, a reply particle and optional speech
// Blocks for the generation call; the frame loop keeps running and later submissions fail with ErrBusy
func (s *Session) Submit(ctx context.Context, text string, m thought.Modality) error {
	if !s.scene.AcceptsInput() {
		return ErrNotAccepting
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if !s.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	s.statBusy.Store(true)
	defer func() {
		s.busy.Store(false)
		s.statBusy.Store(false)
	}()

	if s.opts.Thoughts.SpawnQuestions {
		s.enqueue(spawnRequest{kind: thought.KindQuestion, text: text, modality: m})
	}

	reply := s.generate(ctx, text)
	s.enqueue(spawnRequest{kind: thought.KindResponse, text: reply, modality: m})

	if m == thought.ModalityVoice || s.opts.SpeakAll {
		s.speak(reply)
	}
	return nil
}

// generate calls the generator, substituting the fallback thought on failure or an empty reply
func (s *Session) generate(ctx context.Context, text string) string {
	ctx, cancel := context.WithTimeout(ctx, s.opts.GenerationTimeout)
	defer cancel()

	reply, err := s.opts.Generator.Generate(ctx, text)
	if err == nil {
		reply = strings.TrimSpace(reply)
		if reply == "" {
			err = llm.ErrEmptyReply
		}
	}
	if err != nil {
		s.statLLMFail.Add(1)
		s.logger.Printf("generate: %v, using fallback", err)
		return parameter.FallbackThought
	}
	return reply
}

// speak voices the reply in the background, failures are logged and otherwise swallowed
func (s *Session) speak(text string) {
	s.wg.Add(1)
	core.Go(func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(s.ctx, s.opts.SpeechTimeout)
		defer cancel()
		if err := s.opts.Speaker.Speak(ctx, text); err != nil {
			s.statSpeakFail.Add(1)
			s.logger.Printf("speak: %v", err)
		}
	})
}

// enqueue hands a spawn to the frame goroutine, dropping it when the queue is full
func (s *Session) enqueue(req spawnRequest) {
	select {
	case s.spawns <- req:
	default:
		s.logger.Printf("spawn queue full, dropped %s", req.kind)
	}
}

func (s *Session) sceneChanged(from, to scene.Scene) {
	if to == scene.Transitioning {
		d := s.scene.TransitionDuration()
		s.cue(func() { s.opts.Sounds.PlayWhoosh(d) })
	}
}

// cue queues a sound for the cue goroutine, dropping it when the queue is full
func (s *Session) cue(fn func()) {
	select {
	case s.cues <- fn:
	default:
		s.logger.Printf("cue queue full, dropped")
	}
}

// runCues plays queued cues until Close, a slow audio device only delays other cues
func (s *Session) runCues() {
	s.wg.Add(1)
	core.Go(func() {
		defer s.wg.Done()
		for {
			select {
			case <-s.ctx.Done():
				return
			case fn := <-s.cues:
				fn()
			}
		}
	})
}
