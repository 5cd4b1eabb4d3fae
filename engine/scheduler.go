package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/aether/core"
	"github.com/lixenwraith/aether/status"
)

// TaskFunc is one simulation step, dt is the clamped frame delta
type TaskFunc func(dt time.Duration)

// Task is a registered per-frame callback
// Cancel is the cancellation token: a cancelled task is never invoked again and is dropped on the next frame
type Task struct {
	name      string
	fn        TaskFunc
	cancelled atomic.Bool
}

// Name returns the registration name
func (t *Task) Name() string {
	return t.name
}

// Cancel stops further invocations, safe to call from any goroutine and more than once
func (t *Task) Cancel() {
	t.cancelled.Store(true)
}

// Cancelled reports whether Cancel was called
func (t *Task) Cancelled() bool {
	return t.cancelled.Load()
}

// Scheduler runs registered tasks sequentially on a fixed frame interval
// All tasks share one goroutine, so state touched only from tasks needs no locking
type Scheduler struct {
	clock    TimeProvider
	interval time.Duration
	maxStep  time.Duration

	mu    sync.Mutex
	tasks []*Task
	batch []*Task

	// Frame timing, owned by the loop goroutine
	lastFrame    time.Time
	nextDeadline time.Time

	frameCount atomic.Uint64

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	// frameDone signals the presentation side that a frame completed
	frameDone chan struct{}

	// frameEnd runs after every task of a frame, on the frame goroutine
	frameEnd func()

	statFrames *atomic.Int64
}

// NewScheduler creates a scheduler; maxStep caps dt after stalls, zero disables the cap
func NewScheduler(clock TimeProvider, interval, maxStep time.Duration, reg *status.Registry) *Scheduler {
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Scheduler{
		clock:      clock,
		interval:   interval,
		maxStep:    maxStep,
		stopChan:   make(chan struct{}),
		frameDone:  make(chan struct{}, 1),
		statFrames: reg.Ints.Get(status.KeyFrames),
	}
}

// Register adds a task to run after every already registered task
// Safe to call from inside a running task, the new task first runs on the next frame
func (s *Scheduler) Register(name string, fn TaskFunc) *Task {
	t := &Task{name: name, fn: fn}
	s.mu.Lock()
	s.tasks = append(s.tasks, t)
	s.mu.Unlock()
	return t
}

// Tasks returns the names of live tasks in run order
func (s *Scheduler) Tasks() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Cancelled() {
			names = append(names, t.name)
		}
	}
	return names
}

// OnFrameEnd sets the hook run after all tasks of each frame, must be called before Start
func (s *Scheduler) OnFrameEnd(fn func()) {
	s.frameEnd = fn
}

// FrameDone delivers a signal after each completed frame, frames are coalesced when unread
func (s *Scheduler) FrameDone() <-chan struct{} {
	return s.frameDone
}

// Frames returns the number of completed frames
func (s *Scheduler) Frames() uint64 {
	return s.frameCount.Load()
}

// Step runs one frame synchronously with the given delta
// Used by the loop and directly by headless callers; must not run concurrently with a started loop
func (s *Scheduler) Step(dt time.Duration) {
	if s.maxStep > 0 && dt > s.maxStep {
		dt = s.maxStep
	}

	// Snapshot under lock and prune cancelled tasks, tasks run unlocked so they may Register
	s.mu.Lock()
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.Cancelled() {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
	s.batch = append(s.batch[:0], live...)
	s.mu.Unlock()

	for _, t := range s.batch {
		// Re-check: an earlier task in this frame may have cancelled a later one
		if t.Cancelled() {
			continue
		}
		t.fn(dt)
	}

	if s.frameEnd != nil {
		s.frameEnd()
	}

	n := s.frameCount.Add(1)
	s.statFrames.Store(int64(n))

	select {
	case s.frameDone <- struct{}{}:
	default:
	}
}

// Start begins the frame loop
func (s *Scheduler) Start() {
	if s.running.CompareAndSwap(false, true) {
		s.wg.Add(1)
		// Use core.Go for safe execution with centralized crash handling
		core.Go(s.loop)
	}
}

// Stop halts the frame loop and waits for the in-flight frame
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		if s.running.CompareAndSwap(true, false) {
			s.wg.Wait()
		}
	})
}

// loop runs frames on deadline with drift correction
func (s *Scheduler) loop() {
	defer s.wg.Done()

	now := s.clock.Now()
	s.lastFrame = now
	s.nextDeadline = now.Add(s.interval)

	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-timer.C:
		}

		now = s.clock.Now()
		if now.Before(s.nextDeadline) {
			timer.Reset(s.nextDeadline.Sub(now))
			continue
		}

		s.Step(now.Sub(s.lastFrame))
		s.lastFrame = now

		s.nextDeadline = s.nextDeadline.Add(s.interval)
		// Fell too far behind, resynchronize instead of bursting
		if now.Sub(s.nextDeadline) > s.interval*2 {
			s.nextDeadline = now.Add(s.interval)
		}

		sleep := s.nextDeadline.Sub(s.clock.Now())
		if sleep < 0 {
			sleep = 0
		}
		timer.Reset(sleep)
	}
}
