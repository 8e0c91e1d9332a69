package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Snapshot is the GORM row model for one persisted collection.
type Snapshot struct {
	Key       string `gorm:"primaryKey"`
	Data      string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// GormBackend stores snapshots through a GORM handle, one row per key.
// The handle is typically a Postgres connection from config.ConnectDB.
type GormBackend struct {
	db *gorm.DB
}

func NewGormBackend(db *gorm.DB) (*GormBackend, error) {
	if err := db.AutoMigrate(&Snapshot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate snapshots table: %w", err)
	}
	return &GormBackend{db: db}, nil
}

func (g *GormBackend) Load(key string) ([]byte, bool, error) {
	var snap Snapshot
	err := g.db.First(&snap, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return []byte(snap.Data), true, nil
}

func (g *GormBackend) Save(key string, data []byte) error {
	snap := Snapshot{Key: key, Data: string(data), UpdatedAt: time.Now()}
	err := g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&snap).Error
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (g *GormBackend) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
