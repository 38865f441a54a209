package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"undercover/backend/internal/fsm"
	"undercover/backend/internal/models"
)

func TestUndercoverCount(t *testing.T) {
	tests := []struct {
		players int
		want    int
		wantErr bool
	}{
		{players: 0, wantErr: true},
		{players: 2, wantErr: true},
		{players: 3, want: 1},
		{players: 5, want: 1},
		{players: 6, want: 2},
		{players: 8, want: 2},
		{players: 9, want: 3},
		{players: 12, want: 3},
		{players: 13, wantErr: true},
	}
	for _, tt := range tests {
		got, err := UndercoverCount(tt.players)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidPlayerCount, "players=%d", tt.players)
			continue
		}
		require.NoError(t, err, "players=%d", tt.players)
		assert.Equal(t, tt.want, got, "players=%d", tt.players)
	}
}

func playingRoom(players, undercovers, eliminated []string) *models.Room {
	return &models.Room{
		ID:           "1234",
		Creator:      players[0],
		Players:      players,
		Status:       fsm.Playing,
		Undercovers:  undercovers,
		Eliminated:   eliminated,
		CurrentRound: 1,
	}
}

func TestEvaluate(t *testing.T) {
	six := []string{"a", "b", "c", "d", "e", "f"}
	tests := []struct {
		name        string
		players     []string
		undercovers []string
		eliminated  []string
		want        Outcome
	}{
		{"no eliminations", six, []string{"e", "f"}, nil, OutcomeContinue},
		{"one civilian out", six, []string{"e", "f"}, []string{"a"}, OutcomeContinue},
		{"parity", six, []string{"e", "f"}, []string{"a", "b"}, OutcomeUndercoversWin},
		{"all undercovers out", six, []string{"e", "f"}, []string{"e", "f"}, OutcomeCiviliansWin},
		{"below three", []string{"a", "b", "c"}, []string{"c"}, []string{"a"}, OutcomeUndercoversWin},
		{"civilians first even below three", []string{"a", "b", "c"}, []string{"c"}, []string{"c"}, OutcomeCiviliansWin},
		{"one undercover left", []string{"a", "b", "c", "d"}, []string{"d"}, []string{"a"}, OutcomeContinue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := playingRoom(tt.players, tt.undercovers, tt.eliminated)
			assert.Equal(t, tt.want, Evaluate(room))
		})
	}
}

func TestOutcome(t *testing.T) {
	assert.False(t, OutcomeContinue.Finished())
	assert.True(t, OutcomeCiviliansWin.Finished())
	assert.True(t, OutcomeUndercoversWin.Finished())
	assert.Equal(t, "civilians_win", OutcomeCiviliansWin.String())
	assert.Empty(t, OutcomeContinue.Message())
}

func TestDomainErrors(t *testing.T) {
	err := errInvalidIndex(7)
	assert.ErrorIs(t, err, ErrInvalidIndex)
	assert.NotErrorIs(t, err, ErrRoomFull)

	de, ok := AsDomain(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidIndex, de.Code)

	_, ok = AsDomain(assert.AnError)
	assert.False(t, ok)
}

func TestRoomLocks(t *testing.T) {
	var l roomLocks
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.lock("1234")
			counter++
			unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
	assert.Zero(t, l.size())

	unlockA := l.lock("a")
	unlockB := l.lock("b")
	assert.Equal(t, 2, l.size())
	unlockA()
	unlockB()
	assert.Zero(t, l.size())
}
