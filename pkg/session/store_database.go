package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Record is the relational shape of a persisted session.
type Record struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Data      []byte    `gorm:"type:blob"`
	ExpiresAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (Record) TableName() string { return "web_sessions" }

// DatabaseStore persists sessions in a relational database via GORM.
// Survives restarts; suits deployments without Redis.
type DatabaseStore struct {
	db  *gorm.DB
	ttl time.Duration
}

// NewDatabaseStore migrates the sessions table and returns the store.
func NewDatabaseStore(db *gorm.DB, ttl time.Duration) (*DatabaseStore, error) {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("session: migrate: %w", err)
	}
	return &DatabaseStore{db: db, ttl: ttl}, nil
}

func (s *DatabaseStore) Load(ctx context.Context, id string) (map[string]interface{}, error) {
	var rec Record
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: load %s: %w", id, err)
	}
	if time.Now().After(rec.ExpiresAt) {
		_ = s.Delete(ctx, id)
		return nil, nil
	}

	var data map[string]interface{}
	if err := json.Unmarshal(rec.Data, &data); err != nil {
		return nil, fmt.Errorf("session: decode %s: %w", id, err)
	}
	return data, nil
}

func (s *DatabaseStore) Save(ctx context.Context, id string, data map[string]interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session: encode %s: %w", id, err)
	}

	rec := Record{ID: id, Data: raw, ExpiresAt: time.Now().Add(s.ttl)}
	return s.db.WithContext(ctx).Save(&rec).Error
}

func (s *DatabaseStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&Record{}, "id = ?", id).Error
}
