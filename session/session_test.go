package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lixenwraith/aether/engine"
	"github.com/lixenwraith/aether/llm"
	"github.com/lixenwraith/aether/parameter"
	"github.com/lixenwraith/aether/scene"
	"github.com/lixenwraith/aether/starfield"
	"github.com/lixenwraith/aether/status"
	"github.com/lixenwraith/aether/thought"
)

type countingSounds struct {
	chimes, whooshes atomic.Int32
	whooshLen        atomic.Int64
}

func (c *countingSounds) PlayChime() { c.chimes.Add(1) }
func (c *countingSounds) PlayWhoosh(d time.Duration) {
	c.whooshLen.Store(int64(d))
	c.whooshes.Add(1)
}

// stuckSounds blocks every chime until release is closed, like a speaker held by a stalled stream
type stuckSounds struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *stuckSounds) PlayChime() {
	s.once.Do(func() { close(s.entered) })
	<-s.release
}
func (s *stuckSounds) PlayWhoosh(time.Duration) {}

type recordingSpeaker struct {
	mu     sync.Mutex
	spoken []string
	err    error
	block  bool
}

func (r *recordingSpeaker) Speak(ctx context.Context, text string) error {
	r.mu.Lock()
	r.spoken = append(r.spoken, text)
	r.mu.Unlock()
	if r.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return r.err
}

func (r *recordingSpeaker) texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.spoken...)
}

var echo = llm.GeneratorFunc(func(_ context.Context, text string) (string, error) {
	return "reply to " + text, nil
})

func newTestSession(t *testing.T, mutate func(*Options)) *Session {
	t.Helper()
	opts := Options{
		Thoughts:  thought.DefaultConfig(),
		Stars:     starfield.DefaultConfig(),
		Cols:      60,
		Rows:      40,
		Seed:      42,
		Generator: echo,
		Clock:     engine.NewMockTimeProvider(time.Unix(0, 0)),
		Registry:  status.NewRegistry(),
	}
	if mutate != nil {
		mutate(&opts)
	}
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

// activate runs the landing gesture and steps through the transition
func activate(t *testing.T, s *Session) {
	t.Helper()
	if !s.Activate() {
		t.Fatal("Activate rejected")
	}
	for i := 0; i < 30; i++ {
		s.Step(100 * time.Millisecond)
	}
	if s.Scene() != scene.Active {
		t.Fatalf("scene = %v after transition, want active", s.Scene())
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestNewRequiresGenerator(t *testing.T) {
	_, err := New(Options{Thoughts: thought.DefaultConfig(), Stars: starfield.DefaultConfig()})
	if err == nil {
		t.Fatal("expected error without generator")
	}
}

func TestInitialView(t *testing.T) {
	s := newTestSession(t, nil)

	v := s.View()
	if v == nil {
		t.Fatal("no view published at construction")
	}
	if v.Scene != scene.Landing || v.Accepting {
		t.Errorf("initial view scene=%v accepting=%v", v.Scene, v.Accepting)
	}
	if v.Width != 60 || v.Height != 80 {
		t.Errorf("viewport = %vx%v, want 60x80", v.Width, v.Height)
	}
	if len(v.Stars) != starfield.DefaultConfig().Count {
		t.Errorf("stars = %d, want %d", len(v.Stars), starfield.DefaultConfig().Count)
	}
	if len(v.Thoughts) != 0 {
		t.Errorf("thoughts = %d at landing", len(v.Thoughts))
	}
}

func TestSubmitBeforeActive(t *testing.T) {
	s := newTestSession(t, nil)
	if err := s.Submit(context.Background(), "hello", thought.ModalityText); !errors.Is(err, ErrNotAccepting) {
		t.Errorf("Submit on landing = %v, want ErrNotAccepting", err)
	}

	s.Activate()
	s.Step(100 * time.Millisecond)
	if err := s.Submit(context.Background(), "hello", thought.ModalityText); !errors.Is(err, ErrNotAccepting) {
		t.Errorf("Submit while transitioning = %v, want ErrNotAccepting", err)
	}
}

func TestThoughtTaskStartsWithActive(t *testing.T) {
	s := newTestSession(t, nil)
	for _, name := range s.sched.Tasks() {
		if name == scene.ThoughtTaskName {
			t.Fatal("thought task registered before Active")
		}
	}
	activate(t, s)

	found := false
	for _, name := range s.sched.Tasks() {
		found = found || name == scene.ThoughtTaskName
	}
	if !found {
		t.Errorf("tasks = %v, want %q", s.sched.Tasks(), scene.ThoughtTaskName)
	}
}

func TestSubmitFallbackOnFailure(t *testing.T) {
	s := newTestSession(t, func(o *Options) {
		o.Generator = llm.GeneratorFunc(func(context.Context, string) (string, error) {
			return "", errors.New("dial tcp: network is unreachable")
		})
	})
	activate(t, s)

	if err := s.Submit(context.Background(), "What is stillness?", thought.ModalityText); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if s.Busy() {
		t.Error("busy flag still set after failed generation")
	}
	s.Step(16 * time.Millisecond)

	v := s.View()
	if len(v.Thoughts) != 2 {
		t.Fatalf("thoughts = %d, want question and response", len(v.Thoughts))
	}
	resp, q := v.Thoughts[0], v.Thoughts[1]
	if resp.Kind != thought.KindResponse || resp.Text != "Silence sometimes answers more honestly than words." {
		t.Errorf("response = %v %q", resp.Kind, resp.Text)
	}
	if q.Kind != thought.KindQuestion || q.Text != "What is stillness?" {
		t.Errorf("question = %v %q", q.Kind, q.Text)
	}
	if v.Busy {
		t.Error("view reports busy")
	}
	if got := s.opts.Registry.Ints.Get(status.KeyLLMFailures).Load(); got != 1 {
		t.Errorf("llm failures = %d, want 1", got)
	}
}

func TestSubmitEmptyReplyUsesFallback(t *testing.T) {
	s := newTestSession(t, func(o *Options) {
		o.Generator = llm.GeneratorFunc(func(context.Context, string) (string, error) {
			return "   ", nil
		})
	})
	activate(t, s)

	if err := s.Submit(context.Background(), "anyone?", thought.ModalityText); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	s.Step(16 * time.Millisecond)
	if got := s.View().Thoughts[0].Text; got != parameter.FallbackThought {
		t.Errorf("response = %q, want fallback", got)
	}
}

func TestSubmitBlankIsNoop(t *testing.T) {
	s := newTestSession(t, nil)
	activate(t, s)

	if err := s.Submit(context.Background(), "   \t", thought.ModalityText); err != nil {
		t.Fatalf("blank Submit: %v", err)
	}
	s.Step(16 * time.Millisecond)
	if n := len(s.View().Thoughts); n != 0 {
		t.Errorf("blank input spawned %d thoughts", n)
	}
}

func TestSubmitWhileBusy(t *testing.T) {
	release := make(chan struct{})
	s := newTestSession(t, func(o *Options) {
		o.Generator = llm.GeneratorFunc(func(ctx context.Context, text string) (string, error) {
			<-release
			return "slow " + text, nil
		})
	})
	activate(t, s)

	done := make(chan error, 1)
	go func() { done <- s.Submit(context.Background(), "first", thought.ModalityText) }()
	waitFor(t, "busy", s.Busy)

	if err := s.Submit(context.Background(), "second", thought.ModalityText); !errors.Is(err, ErrBusy) {
		t.Errorf("second Submit = %v, want ErrBusy", err)
	}

	// The frame loop keeps running during the call
	s.Step(16 * time.Millisecond)
	if !s.View().Busy {
		t.Error("view does not report busy during generation")
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	if s.Busy() {
		t.Error("busy flag not released")
	}

	s.Step(16 * time.Millisecond)
	for _, th := range s.View().Thoughts {
		if th.Text == "second" || th.Text == "slow second" {
			t.Errorf("rejected submission was queued: %q", th.Text)
		}
	}
}

func TestTwentySubmissionsKeepNewest(t *testing.T) {
	s := newTestSession(t, func(o *Options) {
		o.Thoughts.SpawnQuestions = false
	})
	activate(t, s)

	for i := 0; i < 20; i++ {
		if err := s.Submit(context.Background(), fmt.Sprintf("input %d", i), thought.ModalityText); err != nil {
			t.Fatalf("Submit %d: %v", i, err)
		}
		s.Step(16 * time.Millisecond)
		if n := len(s.View().Thoughts); n > 12 {
			t.Fatalf("after submit %d: %d thoughts, cap 12", i, n)
		}
	}

	v := s.View()
	if len(v.Thoughts) != 12 {
		t.Fatalf("thoughts = %d, want 12", len(v.Thoughts))
	}
	for i, th := range v.Thoughts {
		want := fmt.Sprintf("reply to input %d", 19-i)
		if th.Text != want {
			t.Errorf("thoughts[%d] = %q, want %q", i, th.Text, want)
		}
	}
	if !v.Thoughts[0].Latest || !v.Thoughts[0].Centered {
		t.Error("newest response is not latest and centered")
	}
}

func TestSubmitWithQuestionsRespectsCap(t *testing.T) {
	s := newTestSession(t, nil)
	activate(t, s)

	for i := 0; i < 20; i++ {
		if err := s.Submit(context.Background(), fmt.Sprintf("input %d", i), thought.ModalityText); err != nil {
			t.Fatalf("Submit %d: %v", i, err)
		}
	}
	s.Step(16 * time.Millisecond)

	v := s.View()
	if len(v.Thoughts) != 12 {
		t.Fatalf("thoughts = %d, want 12", len(v.Thoughts))
	}
	if v.Thoughts[0].Text != "reply to input 19" || v.Thoughts[1].Text != "input 19" {
		t.Errorf("newest = %q, %q", v.Thoughts[0].Text, v.Thoughts[1].Text)
	}
	if got := s.opts.Registry.Ints.Get(status.KeyThoughtsEvicted).Load(); got != 28 {
		t.Errorf("evicted metric = %d, want 28", got)
	}
}

func TestVoiceSubmissionIsSpokenWithoutWaiting(t *testing.T) {
	sp := &recordingSpeaker{block: true}
	s := newTestSession(t, func(o *Options) { o.Speaker = sp })
	activate(t, s)

	returned := make(chan error, 1)
	go func() { returned <- s.Submit(context.Background(), "listen", thought.ModalityVoice) }()

	select {
	case err := <-returned:
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Submit waited for speech")
	}
	if s.Busy() {
		t.Error("busy held during playback")
	}

	waitFor(t, "speech", func() bool { return len(sp.texts()) == 1 })
	if got := sp.texts()[0]; got != "reply to listen" {
		t.Errorf("spoken %q", got)
	}

	// Close cancels the blocked playback
	s.Close()
}

func TestTypedSubmissionSilentUnlessSpeakAll(t *testing.T) {
	sp := &recordingSpeaker{}
	s := newTestSession(t, func(o *Options) { o.Speaker = sp })
	activate(t, s)

	if err := s.Submit(context.Background(), "quiet", thought.ModalityText); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	s.Close()
	if n := len(sp.texts()); n != 0 {
		t.Errorf("typed submission spoken %d times", n)
	}

	sp = &recordingSpeaker{}
	s = newTestSession(t, func(o *Options) {
		o.Speaker = sp
		o.SpeakAll = true
	})
	activate(t, s)
	if err := s.Submit(context.Background(), "aloud", thought.ModalityText); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	s.Close()
	if got := sp.texts(); len(got) != 1 || got[0] != "reply to aloud" {
		t.Errorf("spoken = %q", got)
	}
}

func TestSpeechFailureSwallowed(t *testing.T) {
	sp := &recordingSpeaker{err: errors.New("tts quota")}
	reg := status.NewRegistry()
	s := newTestSession(t, func(o *Options) {
		o.Speaker = sp
		o.Registry = reg
	})
	activate(t, s)

	if err := s.Submit(context.Background(), "speak", thought.ModalityVoice); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	s.Close()
	if got := reg.Ints.Get(status.KeySpeechFailures).Load(); got != 1 {
		t.Errorf("speech failures = %d, want 1", got)
	}
}

func TestSoundCues(t *testing.T) {
	snd := &countingSounds{}
	s := newTestSession(t, func(o *Options) { o.Sounds = snd })
	activate(t, s)
	waitFor(t, "whoosh", func() bool { return snd.whooshes.Load() == 1 })
	if got := time.Duration(snd.whooshLen.Load()); got != parameter.TransitionDuration {
		t.Errorf("whoosh length = %v, want %v", got, parameter.TransitionDuration)
	}

	for i := 0; i < 3; i++ {
		if err := s.Submit(context.Background(), fmt.Sprintf("q%d", i), thought.ModalityText); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	s.Step(16 * time.Millisecond)
	waitFor(t, "one chime per response", func() bool { return snd.chimes.Load() == 3 })
}

func TestBlockedCueNeverStallsFrames(t *testing.T) {
	snd := &stuckSounds{entered: make(chan struct{}), release: make(chan struct{})}
	s := newTestSession(t, func(o *Options) { o.Sounds = snd })
	defer close(snd.release)
	activate(t, s)

	for i := 0; i < 3; i++ {
		if err := s.Submit(context.Background(), fmt.Sprintf("q%d", i), thought.ModalityText); err != nil {
			t.Fatalf("Submit: %v", err)
		}
		s.Step(16 * time.Millisecond)
	}
	select {
	case <-snd.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("chime never played")
	}

	// The cue goroutine is stuck in PlayChime; frames and further replies must keep flowing
	done := make(chan struct{})
	go func() {
		for i := 0; i < 20; i++ {
			_ = s.Submit(context.Background(), fmt.Sprintf("more%d", i), thought.ModalityText)
			s.Step(16 * time.Millisecond)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Step blocked behind a stalled sound cue")
	}
	if v := s.View(); len(v.Thoughts) == 0 {
		t.Error("no thoughts published while the cue was stalled")
	}
}

func TestResizeAppliedNextFrame(t *testing.T) {
	s := newTestSession(t, nil)
	s.Resize(100, 30)
	if v := s.View(); v.Width != 60 {
		t.Errorf("resize applied before a frame: width %v", v.Width)
	}
	s.Step(16 * time.Millisecond)
	v := s.View()
	if v.Width != 100 || v.Height != 60 {
		t.Errorf("viewport = %vx%v, want 100x60", v.Width, v.Height)
	}
	if v.Anchor.X != 50 {
		t.Errorf("anchor x = %v, want 50", v.Anchor.X)
	}
}

func TestInputMirroredInView(t *testing.T) {
	s := newTestSession(t, nil)
	s.SetInput("half a tho")
	s.Step(16 * time.Millisecond)
	if got := s.View().Input; got != "half a tho" {
		t.Errorf("view input = %q", got)
	}
}

func TestViewsAreIndependent(t *testing.T) {
	s := newTestSession(t, nil)
	activate(t, s)
	before := s.View()
	star := before.Stars[0]

	for i := 0; i < 30; i++ {
		s.Step(16 * time.Millisecond)
	}
	if before.Stars[0] != star {
		t.Error("published view mutated by later frames")
	}
	after := s.View()
	if after == before {
		t.Fatal("no new view published")
	}
	if after.Stars[0] == star {
		t.Error("stars did not move between views")
	}
}

func TestRealLoopPublishes(t *testing.T) {
	s, err := New(Options{
		Thoughts:  thought.DefaultConfig(),
		Stars:     starfield.DefaultConfig(),
		Cols:      40,
		Rows:      20,
		Generator: echo,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	s.Start()
	select {
	case <-s.FrameDone():
	case <-time.After(time.Second):
		t.Fatal("no frame completed")
	}
	if s.View().Frame == 0 && s.sched.Frames() == 0 {
		t.Error("frame counter not advancing")
	}
}
