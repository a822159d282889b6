package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DB struct {
	db *gorm.DB
}

func NewDB(db *gorm.DB) *DB {
	return &DB{db: db}
}

// Migrate creates the snapshot table if needed.
func (d *DB) Migrate() error {
	return d.db.AutoMigrate(&Snapshot{})
}

// SaveSnapshot serializes value and replaces whatever is stored under key.
func (d *DB) SaveSnapshot(key string, value any) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("snapshot key cannot be empty")
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", key, err)
	}

	snapshot := &Snapshot{Key: key, Data: string(data)}
	err = d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(snapshot).Error
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}

	return nil
}

// LoadSnapshot decodes the snapshot stored under key into dst. It reports
// false when nothing has been saved yet.
func (d *DB) LoadSnapshot(key string, dst any) (bool, error) {
	if strings.TrimSpace(key) == "" {
		return false, errors.New("snapshot key cannot be empty")
	}

	snapshot := &Snapshot{}
	result := d.db.Where(&Snapshot{Key: key}).Limit(1).Find(snapshot)
	if result.Error != nil {
		return false, fmt.Errorf("load snapshot %s: %w", key, result.Error)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	if err := json.Unmarshal([]byte(snapshot.Data), dst); err != nil {
		return false, fmt.Errorf("decode snapshot %s: %w", key, err)
	}

	return true, nil
}
