package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"undercover/backend/internal/fsm"
)

func TestNewRoomIncludesCreator(t *testing.T) {
	now := time.Now()
	room := NewRoom("1234", "alice", now)

	assert.Equal(t, []string{"alice"}, room.Players)
	assert.Equal(t, fsm.Waiting, room.Status)
	assert.Equal(t, 1, room.CurrentRound)
	assert.True(t, room.IsCreator("alice"))
	assert.True(t, room.IsPlayer("alice"))
	assert.Empty(t, room.Undercovers)
	assert.Empty(t, room.Eliminated)
	assert.Equal(t, now, room.LastActive)
}

func TestRoomIndexing(t *testing.T) {
	room := NewRoom("1234", "a", time.Now())
	room.Players = append(room.Players, "b", "c")

	assert.Equal(t, 1, room.IndexOf("a"))
	assert.Equal(t, 3, room.IndexOf("c"))
	assert.Equal(t, 0, room.IndexOf("zz"))

	p, ok := room.PlayerAt(2)
	assert.True(t, ok)
	assert.Equal(t, "b", p)

	_, ok = room.PlayerAt(0)
	assert.False(t, ok)
	_, ok = room.PlayerAt(4)
	assert.False(t, ok)
}

func TestRemainingKeepsOrder(t *testing.T) {
	room := NewRoom("1234", "a", time.Now())
	room.Players = append(room.Players, "b", "c", "d")
	room.Eliminated = []string{"c", "a"}

	assert.Equal(t, []string{"b", "d"}, room.Remaining())
	assert.Len(t, room.Players, 4, "elimination must not shrink players")
}

func TestWordFor(t *testing.T) {
	room := NewRoom("1234", "a", time.Now())
	room.Players = append(room.Players, "b")
	assert.Equal(t, "", room.WordFor("a"))

	room.Words = &WordPair{Civilian: "apple", Undercover: "pear"}
	room.Undercovers = []string{"b"}

	assert.Equal(t, "apple", room.WordFor("a"))
	assert.Equal(t, "pear", room.WordFor("b"))
}

func TestRoomJSONRoundTrip(t *testing.T) {
	room := NewRoom("4321", "a", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	room.Words = &WordPair{Civilian: "summer", Undercover: "winter"}

	data, err := json.Marshal(room)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"room_id":"4321"`)
	assert.Contains(t, string(data), `"status":"waiting"`)

	var decoded Room
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, room.ID, decoded.ID)
	assert.Equal(t, *room.Words, *decoded.Words)
	assert.True(t, room.CreatedAt.Equal(decoded.CreatedAt))
}

func TestUserBackReference(t *testing.T) {
	u := &User{ID: "alice", DisplayName: "Player1"}
	assert.False(t, u.InRoom())
	u.JoinRoom("1234")
	assert.True(t, u.InRoom())
	u.LeaveRoom()
	assert.False(t, u.InRoom())
}

func TestRecordTableName(t *testing.T) {
	assert.Equal(t, "game_records", Record{}.TableName())
}
