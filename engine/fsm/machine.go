package fsm

import (
	"fmt"
	"time"
)

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes:           make(map[StateID]*Node[T]),
		guardReg:        make(map[string]GuardFunc[T]),
		guardFactoryReg: make(map[string]GuardFactoryFunc[T]),
		actionReg:       make(map[string]actionEntry[T]),
		eventReg:        make(map[string]EventType),
	}
}

// RegisterGuard adds a predicate function to the registry
func (m *Machine[T]) RegisterGuard(name string, fn GuardFunc[T]) {
	m.guardReg[name] = fn
}

// RegisterGuardFactory adds a parameterized guard factory to the registry
func (m *Machine[T]) RegisterGuardFactory(name string, factory GuardFactoryFunc[T]) {
	m.guardFactoryReg[name] = factory
}

// RegisterAction adds an argument-less side-effect function to the registry
func (m *Machine[T]) RegisterAction(name string, fn ActionFunc[T]) {
	m.actionReg[name] = actionEntry[T]{fn: fn}
}

// RegisterActionArgs adds a side-effect whose config args are decoded into a fresh newArgs() value at load
func (m *Machine[T]) RegisterActionArgs(name string, fn ActionFunc[T], newArgs func() any) {
	m.actionReg[name] = actionEntry[T]{fn: fn, newArgs: newArgs}
}

// RegisterEvent maps a config trigger name to an event type
func (m *Machine[T]) RegisterEvent(name string, et EventType) error {
	if et == EventTick {
		return fmt.Errorf("event '%s': type 0 is reserved for Tick", name)
	}
	m.eventReg[name] = et
	return nil
}

// Init enters the initial state, executing OnEnter from Root down
func (m *Machine[T]) Init(ctx T) error {
	node, ok := m.nodes[m.InitialStateID]
	if !ok || m.InitialStateID == StateNone {
		return fmt.Errorf("initial state ID %d not found", m.InitialStateID)
	}

	m.activeStateID = m.InitialStateID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)

	for _, id := range m.activePath {
		if n, exists := m.nodes[id]; exists {
			runActions(ctx, n.OnEnter)
		}
	}
	return nil
}

// Update advances time in state and evaluates tick transitions, bubbling leaf to root
// At most one transition fires per Update
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if m.activeStateID == StateNone {
		return
	}
	m.timeInState += dt
	m.fire(ctx, EventTick)
}

// HandleEvent routes an external event, returns true if it triggered a transition
func (m *Machine[T]) HandleEvent(ctx T, et EventType) bool {
	if m.activeStateID == StateNone || et == EventTick {
		return false
	}
	return m.fire(ctx, et)
}

func (m *Machine[T]) fire(ctx T, et EventType) bool {
	currID := m.activeStateID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Event != et {
				continue
			}
			if trans.Guard == nil || trans.Guard(ctx) {
				m.transition(ctx, trans.TargetID)
				return true
			}
		}
		currID = node.ParentID
	}
	return false
}

// transition performs the state change: exit up to the LCA, enter down to the target
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	if m.activeStateID == targetID {
		return
	}

	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: attempted transition to unknown state ID %d", targetID))
	}

	lcaIndex := -1
	currentPath := m.activePath
	targetPath := targetNode.Path
	for i := 0; i < len(currentPath) && i < len(targetPath); i++ {
		if currentPath[i] != targetPath[i] {
			break
		}
		lcaIndex = i
	}

	for i := len(currentPath) - 1; i > lcaIndex; i-- {
		if node, exists := m.nodes[currentPath[i]]; exists {
			runActions(ctx, node.OnExit)
		}
	}

	// State is committed before OnEnter so enter actions observe the new state
	m.activeStateID = targetID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], targetPath...)

	for i := lcaIndex + 1; i < len(targetPath); i++ {
		if node, exists := m.nodes[targetPath[i]]; exists {
			runActions(ctx, node.OnEnter)
		}
	}
}

func runActions[T any](ctx T, actions []Action[T]) {
	for _, a := range actions {
		a.Func(ctx, a.Args)
	}
}

// TimeInState returns time elapsed since the last transition
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}

// ActiveStateID returns the current leaf state
func (m *Machine[T]) ActiveStateID() StateID {
	return m.activeStateID
}

// ActiveStateName returns the current leaf state name, empty before Init
func (m *Machine[T]) ActiveStateName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// GetStateID resolves a state name to ID
func (m *Machine[T]) GetStateID(name string) (StateID, bool) {
	for id, node := range m.nodes {
		if node.Name == name {
			return id, true
		}
	}
	return StateNone, false
}

// MillisArg reads a millisecond duration from guard args, int or float
func MillisArg(args map[string]any, key string) (time.Duration, error) {
	var d time.Duration
	switch v := args[key].(type) {
	case int64:
		d = time.Duration(v) * time.Millisecond
	case float64:
		d = time.Duration(v * float64(time.Millisecond))
	case int:
		d = time.Duration(v) * time.Millisecond
	default:
		return 0, fmt.Errorf("requires numeric '%s', got %T", key, args[key])
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %v", d)
	}
	return d, nil
}

// StateTimeExceeds is the duration guard factory, args: ms (int or float)
func StateTimeExceeds[T any](m *Machine[T], args map[string]any) (GuardFunc[T], error) {
	d, err := MillisArg(args, "ms")
	if err != nil {
		return nil, fmt.Errorf("StateTimeExceeds %w", err)
	}
	return func(T) bool {
		return m.TimeInState() >= d
	}, nil
}
