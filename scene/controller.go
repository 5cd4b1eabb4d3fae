package scene

import (
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/lixenwraith/aether/asset"
	"github.com/lixenwraith/aether/engine"
	"github.com/lixenwraith/aether/engine/fsm"
	"github.com/lixenwraith/aether/parameter"
	"github.com/lixenwraith/aether/status"
)

// EventActivate is the user gesture leaving Landing
const EventActivate fsm.EventType = 1

// ThoughtTaskName is the scheduler name of the Thought Field task
const ThoughtTaskName = "thoughts"

// Options configure a Controller
type Options struct {
	// FSMPath overrides the embedded scene graph
	FSMPath string

	// ThoughtStep is registered with the scheduler when the thought field starts
	ThoughtStep engine.TaskFunc

	Logger   *log.Logger
	Registry *status.Registry
}

// ChangeFunc observes a scene transition
type ChangeFunc func(from, to Scene)

// Controller drives the scene graph and exposes the per-scene presentation parameters
// Safe for concurrent use: Activate comes from the input side, Update from the frame loop
type Controller struct {
	mu      sync.Mutex
	machine *fsm.Machine[*Controller]

	scene     Scene
	speed     float64
	stretch   bool
	accepting bool
	thoughts  bool

	// transition is the TransitionElapsed guard length of the loaded graph
	transition time.Duration

	sched       *engine.Scheduler
	thoughtStep engine.TaskFunc
	tasks       []*engine.Task

	onChange []ChangeFunc
	pending  [][2]Scene

	logger    *log.Logger
	statScene *status.AtomicString
}

type starSpeedArgs struct {
	Multiplier float64 `toml:"multiplier"`
}

type enabledArgs struct {
	Enabled bool `toml:"enabled"`
}

// NewController loads the scene graph and enters the initial scene
// sched may be nil, in which case StartThoughts only flips ThoughtsRunning
func NewController(sched *engine.Scheduler, opts Options) (*Controller, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.Registry == nil {
		opts.Registry = status.NewRegistry()
	}

	c := &Controller{
		machine:     fsm.NewMachine[*Controller](),
		sched:       sched,
		thoughtStep: opts.ThoughtStep,
		transition:  parameter.TransitionDuration,
		logger:      opts.Logger,
		statScene:   opts.Registry.Strings.Get(status.KeySceneCurrent),
	}
	c.register()

	if err := fsm.LoadConfigAuto(c.machine, opts.FSMPath, asset.DefaultSceneFSM); err != nil {
		return nil, fmt.Errorf("scene graph: %w", err)
	}
	for name := range stateScene {
		if _, ok := c.machine.GetStateID(name); !ok {
			return nil, fmt.Errorf("scene graph: missing state '%s'", name)
		}
	}
	if err := c.machine.Init(c); err != nil {
		return nil, fmt.Errorf("scene graph: %w", err)
	}
	c.scene = stateScene[c.machine.ActiveStateName()]
	c.statScene.Store(c.scene.String())
	return c, nil
}

// register binds the scene actions, guards and events the graph may reference
func (c *Controller) register() {
	m := c.machine

	m.RegisterActionArgs("SetStarSpeed", func(c *Controller, args any) {
		c.speed = args.(*starSpeedArgs).Multiplier
	}, func() any { return &starSpeedArgs{Multiplier: 1} })

	m.RegisterActionArgs("SetStretch", func(c *Controller, args any) {
		c.stretch = args.(*enabledArgs).Enabled
	}, func() any { return &enabledArgs{} })

	m.RegisterActionArgs("AcceptInput", func(c *Controller, args any) {
		c.accepting = args.(*enabledArgs).Enabled
	}, func() any { return &enabledArgs{} })

	m.RegisterAction("StartThoughts", func(c *Controller, _ any) {
		c.startThoughts()
	})

	m.RegisterGuardFactory("StateTimeExceeds", fsm.StateTimeExceeds[*Controller])

	// ms defaults to parameter.TransitionDuration
	m.RegisterGuardFactory("TransitionElapsed", func(m *fsm.Machine[*Controller], args map[string]any) (fsm.GuardFunc[*Controller], error) {
		d := parameter.TransitionDuration
		if _, ok := args["ms"]; ok {
			var err error
			if d, err = fsm.MillisArg(args, "ms"); err != nil {
				return nil, fmt.Errorf("TransitionElapsed %w", err)
			}
		}
		c.transition = d
		return func(*Controller) bool { return m.TimeInState() >= d }, nil
	})

	// Registration only fails for EventTick
	_ = m.RegisterEvent("Activate", EventActivate)
}

func (c *Controller) startThoughts() {
	if c.thoughts {
		return
	}
	c.thoughts = true
	if c.sched != nil && c.thoughtStep != nil {
		c.tasks = append(c.tasks, c.sched.Register(ThoughtTaskName, c.thoughtStep))
	}
}

// Activate handles the user gesture, accepted only in Landing
func (c *Controller) Activate() bool {
	c.mu.Lock()
	ok := c.scene == Landing && c.machine.HandleEvent(c, EventActivate)
	if ok {
		c.sync()
	}
	changes := c.takePending()
	c.mu.Unlock()

	c.notify(changes)
	return ok
}

// Update advances scene time, the transition timer is the only driver out of Transitioning
func (c *Controller) Update(dt time.Duration) {
	c.mu.Lock()
	c.machine.Update(c, dt)
	c.sync()
	changes := c.takePending()
	c.mu.Unlock()

	c.notify(changes)
}

// sync derives the scene from the active graph state and queues change notifications
func (c *Controller) sync() {
	next, ok := stateScene[c.machine.ActiveStateName()]
	if !ok || next == c.scene {
		return
	}
	c.logger.Printf("scene: %s -> %s", c.scene, next)
	c.pending = append(c.pending, [2]Scene{c.scene, next})
	c.scene = next
	c.statScene.Store(next.String())
}

func (c *Controller) takePending() [][2]Scene {
	if len(c.pending) == 0 {
		return nil
	}
	out := make([][2]Scene, len(c.pending))
	copy(out, c.pending)
	c.pending = c.pending[:0]
	return out
}

func (c *Controller) notify(changes [][2]Scene) {
	if len(changes) == 0 {
		return
	}
	c.mu.Lock()
	observers := append([]ChangeFunc(nil), c.onChange...)
	c.mu.Unlock()
	for _, ch := range changes {
		for _, fn := range observers {
			fn(ch[0], ch[1])
		}
	}
}

// OnChange registers an observer called outside the controller lock after each transition
func (c *Controller) OnChange(fn ChangeFunc) {
	c.mu.Lock()
	c.onChange = append(c.onChange, fn)
	c.mu.Unlock()
}

// Scene returns the current scene
func (c *Controller) Scene() Scene {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scene
}

// SpeedMultiplier returns the star speed multiplier of the current scene
func (c *Controller) SpeedMultiplier() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// Stretch reports whether stars render as radial streaks
func (c *Controller) Stretch() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stretch
}

// AcceptsInput reports whether submissions are accepted
func (c *Controller) AcceptsInput() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accepting
}

// ThoughtsRunning reports whether the thought field has been started
func (c *Controller) ThoughtsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.thoughts
}

// TransitionDuration returns the Transitioning length the loaded graph waits for
func (c *Controller) TransitionDuration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transition
}

// TimeInScene returns the time spent in the current scene
func (c *Controller) TimeInScene() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.TimeInState()
}

// Close cancels every scheduler task the controller registered
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.tasks {
		t.Cancel()
	}
	c.tasks = nil
}
