package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"undercover/backend/internal/models"
)

// GormBackend keeps records in the game_records table. Expired rows are
// treated as absent and removed by Purge.
type GormBackend struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormBackend(db *gorm.DB) *GormBackend {
	if db == nil {
		panic("gorm db cannot be nil for GormBackend")
	}
	return &GormBackend{db: db, now: time.Now}
}

// splitKey maps "room:1234" to ("room", "1234").
func splitKey(key string) (string, string) {
	kind, id, ok := strings.Cut(key, ":")
	if !ok {
		return "", key
	}
	return kind, id
}

func (g *GormBackend) Get(ctx context.Context, key string) ([]byte, error) {
	kind, id := splitKey(key)

	var rec models.Record
	err := g.db.WithContext(ctx).
		Where("kind = ? AND key = ?", kind, id).
		Where("expires_at IS NULL OR expires_at > ?", g.now()).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("postgres: failed to get %s: %w", key, err)
	}
	return rec.Payload, nil
}

func (g *GormBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	kind, id := splitKey(key)

	rec := models.Record{Kind: kind, Key: id, Payload: value}
	if ttl > 0 {
		exp := g.now().Add(ttl)
		rec.ExpiresAt = &exp
	}

	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kind"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "expires_at", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("postgres: failed to set %s: %w", key, err)
	}
	return nil
}

func (g *GormBackend) Delete(ctx context.Context, key string) error {
	kind, id := splitKey(key)
	err := g.db.WithContext(ctx).
		Where("kind = ? AND key = ?", kind, id).
		Delete(&models.Record{}).Error
	if err != nil {
		return fmt.Errorf("postgres: failed to delete %s: %w", key, err)
	}
	return nil
}

func (g *GormBackend) Exists(ctx context.Context, key string) (bool, error) {
	kind, id := splitKey(key)

	var count int64
	err := g.db.WithContext(ctx).Model(&models.Record{}).
		Where("kind = ? AND key = ?", kind, id).
		Where("expires_at IS NULL OR expires_at > ?", g.now()).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("postgres: failed to check %s: %w", key, err)
	}
	return count > 0, nil
}

// Purge deletes expired rows and returns how many were removed.
func (g *GormBackend) Purge(ctx context.Context) (int64, error) {
	res := g.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", g.now()).
		Delete(&models.Record{})
	if res.Error != nil {
		return 0, fmt.Errorf("postgres: failed to purge expired records: %w", res.Error)
	}
	return res.RowsAffected, nil
}
