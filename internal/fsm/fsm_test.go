package fsm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		state State
		event Event
		want  State
		ok    bool
	}{
		{Waiting, EventCreate, Waiting, true},
		{Waiting, EventJoin, Waiting, true},
		{Waiting, EventStart, Playing, true},
		{Waiting, EventVote, Waiting, false},
		{Waiting, EventEnd, Waiting, false},
		{Playing, EventVote, Playing, true},
		{Playing, EventEnd, Ended, true},
		{Playing, EventJoin, Playing, false},
		{Playing, EventStart, Playing, false},
		{Playing, EventCreate, Playing, false},
		{Ended, EventCreate, Ended, false},
		{Ended, EventJoin, Ended, false},
		{Ended, EventStart, Ended, false},
		{Ended, EventVote, Ended, false},
		{Ended, EventEnd, Ended, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.state)+"/"+string(tt.event), func(t *testing.T) {
			assert.Equal(t, tt.ok, CanTransition(tt.state, tt.event))

			got, err := Next(tt.state, tt.event)
			assert.Equal(t, tt.want, got)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, ErrIllegalTransition))
			}
		})
	}
}

func TestUnknownState(t *testing.T) {
	assert.False(t, CanTransition(State("bogus"), EventStart))
	_, err := Next(State("bogus"), EventStart)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestTerminal(t *testing.T) {
	assert.True(t, Terminal(Ended))
	assert.False(t, Terminal(Waiting))
	assert.False(t, Terminal(Playing))
}
