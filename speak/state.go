package speak

import "slices"

// StateType represents the navigator's session state.
type StateType int

const (
	// StateUninitialized means no session has been set up.
	StateUninitialized StateType = iota
	// StatePositioned means a position is set and nothing is being emitted.
	StatePositioned
	// StateEmitting means chunks are being pulled.
	StateEmitting
	// StateExhausted means the end of the document was reached.
	StateExhausted
)

// String returns the string representation of the state.
func (s StateType) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StatePositioned:
		return "positioned"
	case StateEmitting:
		return "emitting"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// StateMachine manages session state transitions.
type StateMachine struct {
	current     StateType
	transitions map[StateType][]StateType
	onEnter     map[StateType]func(from StateType)
}

// NewStateMachine creates a state machine with the valid transitions.
// Uninitialized is never re-entered.
func NewStateMachine() *StateMachine {
	return &StateMachine{
		current: StateUninitialized,
		transitions: map[StateType][]StateType{
			StateUninitialized: {StatePositioned},
			StatePositioned:    {StatePositioned, StateEmitting, StateExhausted},
			StateEmitting:      {StateEmitting, StatePositioned, StateExhausted},
			StateExhausted:     {StateExhausted, StatePositioned},
		},
		onEnter: make(map[StateType]func(StateType)),
	}
}

// Transition attempts to move to the given state.
func (sm *StateMachine) Transition(to StateType) bool {
	if !slices.Contains(sm.transitions[sm.current], to) {
		return false
	}

	from := sm.current
	sm.current = to

	if fn, ok := sm.onEnter[to]; ok && fn != nil {
		fn(from)
	}
	return true
}

// Current returns the current state.
func (sm *StateMachine) Current() StateType {
	return sm.current
}

// CanTransition checks if a transition is valid.
func (sm *StateMachine) CanTransition(to StateType) bool {
	return slices.Contains(sm.transitions[sm.current], to)
}

// OnEnter registers a callback for entering a state.
func (sm *StateMachine) OnEnter(state StateType, fn func(from StateType)) {
	sm.onEnter[state] = fn
}
