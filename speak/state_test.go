package speak

import "testing"

func TestStateTransitions(t *testing.T) {
	tests := []struct {
		from  StateType
		to    StateType
		valid bool
	}{
		{StateUninitialized, StatePositioned, true},
		{StateUninitialized, StateEmitting, false},
		{StatePositioned, StateEmitting, true},
		{StatePositioned, StatePositioned, true},
		{StateEmitting, StateExhausted, true},
		{StateExhausted, StatePositioned, true},
		{StateExhausted, StateEmitting, false},
		{StateEmitting, StateUninitialized, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			sm := NewStateMachine()
			sm.current = tt.from

			if got := sm.CanTransition(tt.to); got != tt.valid {
				t.Errorf("CanTransition() = %v, want %v", got, tt.valid)
			}
			if got := sm.Transition(tt.to); got != tt.valid {
				t.Errorf("Transition() = %v, want %v", got, tt.valid)
			}

			want := tt.from
			if tt.valid {
				want = tt.to
			}
			if sm.Current() != want {
				t.Errorf("Current() = %v, want %v", sm.Current(), want)
			}
		})
	}
}

func TestStateOnEnter(t *testing.T) {
	sm := NewStateMachine()

	var from []StateType
	sm.OnEnter(StateExhausted, func(f StateType) { from = append(from, f) })

	sm.Transition(StatePositioned)
	sm.Transition(StateEmitting)
	sm.Transition(StateExhausted)

	if len(from) != 1 || from[0] != StateEmitting {
		t.Errorf("OnEnter callbacks = %v, want [emitting]", from)
	}
}
