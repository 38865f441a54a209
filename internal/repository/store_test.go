package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"undercover/backend/internal/fsm"
	"undercover/backend/internal/models"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStores(clock *fakeClock, ttl time.Duration) (*RoomStore, *UserStore, *MemoryBackend) {
	backend := NewMemoryBackend().WithClock(clock.Now)
	rooms := NewRoomRepository(backend, ttl)
	rooms.now = clock.Now
	return rooms, NewUserRepository(backend), backend
}

func TestRoomStoreSaveAndGet(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	rooms, _, _ := newTestStores(clock, 2*time.Hour)

	room := models.NewRoom("1234", "alice", clock.Now())
	room.Players = append(room.Players, "bob")
	clock.Advance(time.Minute)
	require.NoError(t, rooms.Save(ctx, room))

	assert.Equal(t, clock.Now(), room.LastActive, "save refreshes last active")

	got, err := rooms.Get(ctx, "1234")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, got.Players)
	assert.Equal(t, fsm.Waiting, got.Status)

	// The stored record is a copy, not the caller's pointer.
	got.Players = append(got.Players, "mallory")
	again, err := rooms.Get(ctx, "1234")
	require.NoError(t, err)
	assert.Len(t, again.Players, 2)
}

func TestRoomStorePreservesPlayingState(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	rooms, _, _ := newTestStores(clock, time.Hour)

	room := models.NewRoom("5678", "alice", clock.Now())
	room.Players = append(room.Players, "bob", "carol", "dave")
	room.Status = fsm.Playing
	room.Words = &models.WordPair{Civilian: "apple", Undercover: "banana"}
	room.Undercovers = []string{"carol"}
	room.Eliminated = []string{"bob"}
	room.CurrentRound = 2
	require.NoError(t, rooms.Save(ctx, room))

	got, err := rooms.Get(ctx, "5678")
	require.NoError(t, err)
	if diff := cmp.Diff(room, got); diff != "" {
		t.Errorf("stored room mismatch (-want +got):\n%s", diff)
	}
}

func TestRoomStoreRollingExpiration(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	rooms, _, backend := newTestStores(clock, 2*time.Hour)

	room := models.NewRoom("1234", "alice", clock.Now())
	require.NoError(t, rooms.Save(ctx, room))

	clock.Advance(90 * time.Minute)
	require.NoError(t, rooms.Save(ctx, room))

	clock.Advance(90 * time.Minute)
	ok, err := rooms.Exists(ctx, "1234")
	require.NoError(t, err)
	assert.True(t, ok, "second save refreshed the ttl")

	clock.Advance(31 * time.Minute)
	ok, err = rooms.Exists(ctx, "1234")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = rooms.Get(ctx, "1234")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, backend.Sweep())
}

func TestRoomStoreDelete(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Now()}
	rooms, _, _ := newTestStores(clock, time.Hour)

	require.NoError(t, rooms.Save(ctx, models.NewRoom("5555", "a", clock.Now())))
	require.NoError(t, rooms.Delete(ctx, "5555"))

	_, err := rooms.Get(ctx, "5555")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserStoreNeverExpires(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Now()}
	_, users, _ := newTestStores(clock, time.Hour)

	require.NoError(t, users.Save(ctx, &models.User{ID: "alice", DisplayName: "Player1", CurrentRoomID: "1234"}))
	clock.Advance(365 * 24 * time.Hour)

	u, err := users.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "1234", u.CurrentRoomID)
	assert.Equal(t, "Player1", u.DisplayName)

	ok, err := users.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, users.Delete(ctx, "alice"))
	_, err = users.Get(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRoomsAndUsersDoNotCollide(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Now()}
	rooms, users, _ := newTestStores(clock, time.Hour)

	require.NoError(t, users.Save(ctx, &models.User{ID: "1234"}))
	ok, err := rooms.Exists(ctx, "1234")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSplitKey(t *testing.T) {
	kind, id := splitKey("room:1234")
	assert.Equal(t, "room", kind)
	assert.Equal(t, "1234", id)

	kind, id = splitKey("user:o:abc")
	assert.Equal(t, "user", kind)
	assert.Equal(t, "o:abc", id)

	kind, id = splitKey("bare")
	assert.Equal(t, "", kind)
	assert.Equal(t, "bare", id)
}
