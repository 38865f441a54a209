// Package repository persists rooms and users as whole serialized records in
// a key-value backend (memory, Redis or Postgres).
package repository

import (
	"context"
	"errors"
	"time"

	"undercover/backend/internal/models"
)

// ErrNotFound is returned when the record is absent or expired.
var ErrNotFound = errors.New("repository: record not found")

// RoomRepository stores rooms with a rolling expiration.
type RoomRepository interface {
	// Get returns ErrNotFound if the room does not exist.
	Get(ctx context.Context, id string) (*models.Room, error)
	// Save writes the whole room and refreshes LastActive and its expiration.
	Save(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

// UserRepository stores users without expiration.
type UserRepository interface {
	// Get returns ErrNotFound if the user does not exist.
	Get(ctx context.Context, id string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

// Backend is the raw key-value capability the repositories are built on.
// A zero ttl means the key never expires.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

const (
	roomPrefix = models.RecordKindRoom + ":"
	userPrefix = models.RecordKindUser + ":"
)

func roomKey(id string) string { return roomPrefix + id }
func userKey(id string) string { return userPrefix + id }
