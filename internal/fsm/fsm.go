// Package fsm holds the room lifecycle state machine. It has no side effects:
// callers consult it before persisting a status change.
package fsm

import (
	"errors"
	"fmt"
)

// State is a room lifecycle state.
type State string

const (
	Waiting State = "waiting"
	Playing State = "playing"
	Ended   State = "ended"
)

// Event triggers a transition.
type Event string

const (
	EventCreate Event = "create"
	EventJoin   Event = "join"
	EventStart  Event = "start"
	EventVote   Event = "vote"
	EventEnd    Event = "end"
)

// ErrIllegalTransition is returned for any (state, event) pair outside the table.
var ErrIllegalTransition = errors.New("fsm: illegal transition")

var transitions = map[State]map[Event]State{
	Waiting: {
		EventCreate: Waiting,
		EventJoin:   Waiting,
		EventStart:  Playing,
	},
	Playing: {
		EventVote: Playing,
		EventEnd:  Ended,
	},
	Ended: {},
}

// CanTransition reports whether event is legal in state.
func CanTransition(state State, event Event) bool {
	_, ok := transitions[state][event]
	return ok
}

// Next returns the state reached by applying event to state. On an illegal
// pair it returns the unchanged state and an error wrapping ErrIllegalTransition.
func Next(state State, event Event) (State, error) {
	next, ok := transitions[state][event]
	if !ok {
		return state, fmt.Errorf("%w: %s on %s", ErrIllegalTransition, event, state)
	}
	return next, nil
}

// Terminal reports whether no event can leave state.
func Terminal(state State) bool {
	return len(transitions[state]) == 0
}
