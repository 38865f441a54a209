package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"undercover/backend/internal/models"
)

// RoomStore implements RoomRepository on a Backend.
type RoomStore struct {
	backend Backend
	ttl     time.Duration
	now     func() time.Time
}

// NewRoomRepository creates a RoomStore whose records expire ttl after the last save.
func NewRoomRepository(backend Backend, ttl time.Duration) *RoomStore {
	if backend == nil {
		panic("backend cannot be nil for RoomStore")
	}
	return &RoomStore{backend: backend, ttl: ttl, now: time.Now}
}

func (s *RoomStore) Get(ctx context.Context, id string) (*models.Room, error) {
	data, err := s.backend.Get(ctx, roomKey(id))
	if err != nil {
		return nil, err
	}
	var room models.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, fmt.Errorf("repository: decode room %s: %w", id, err)
	}
	return &room, nil
}

func (s *RoomStore) Save(ctx context.Context, room *models.Room) error {
	room.Touch(s.now().UTC())
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("repository: encode room %s: %w", room.ID, err)
	}
	return s.backend.Set(ctx, roomKey(room.ID), data, s.ttl)
}

func (s *RoomStore) Delete(ctx context.Context, id string) error {
	return s.backend.Delete(ctx, roomKey(id))
}

func (s *RoomStore) Exists(ctx context.Context, id string) (bool, error) {
	return s.backend.Exists(ctx, roomKey(id))
}

// UserStore implements UserRepository on a Backend.
type UserStore struct {
	backend Backend
}

func NewUserRepository(backend Backend) *UserStore {
	if backend == nil {
		panic("backend cannot be nil for UserStore")
	}
	return &UserStore{backend: backend}
}

func (s *UserStore) Get(ctx context.Context, id string) (*models.User, error) {
	data, err := s.backend.Get(ctx, userKey(id))
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("repository: decode user %s: %w", id, err)
	}
	return &user, nil
}

func (s *UserStore) Save(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("repository: encode user %s: %w", user.ID, err)
	}
	return s.backend.Set(ctx, userKey(user.ID), data, 0)
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	return s.backend.Delete(ctx, userKey(id))
}

func (s *UserStore) Exists(ctx context.Context, id string) (bool, error) {
	return s.backend.Exists(ctx, userKey(id))
}
