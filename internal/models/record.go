package models

import (
	"time"
)

// Record kinds stored in the game_records table.
const (
	RecordKindRoom = "room"
	RecordKindUser = "user"
)

// Record is a serialized room or user kept in Postgres. The whole entity is
// written as one payload so a save either lands completely or not at all.
type Record struct {
	Kind      string     `gorm:"primaryKey;size:16"`
	Key       string     `gorm:"primaryKey;size:128"`
	Payload   []byte     `gorm:"not null"`
	ExpiresAt *time.Time `gorm:"index"` // nil never expires
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the gorm default.
func (Record) TableName() string {
	return "game_records"
}
