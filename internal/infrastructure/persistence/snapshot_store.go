package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pricebook/backend/internal/domain/pricebook"
	"github.com/pricebook/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLSnapshotStore keeps snapshots in the snapshots table of a SQL database
type SQLSnapshotStore struct {
	db *Database
}

var _ pricebook.SnapshotStore = (*SQLSnapshotStore)(nil)

// NewSQLSnapshotStore wraps db. Call Migrate before first use.
func NewSQLSnapshotStore(db *Database) *SQLSnapshotStore {
	return &SQLSnapshotStore{db: db}
}

// Migrate creates the snapshots table when missing
func (s *SQLSnapshotStore) Migrate() error {
	if err := s.db.DB.AutoMigrate(&models.SnapshotModel{}); err != nil {
		return fmt.Errorf("failed to migrate snapshots table: %w", err)
	}
	return nil
}

// Load reads the payload under key
func (s *SQLSnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	var m models.SnapshotModel
	err := s.db.DB.WithContext(ctx).Where("snapshot_key = ?", key).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pricebook.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return []byte(m.Payload), nil
}

// Save upserts the payload under key
func (s *SQLSnapshotStore) Save(ctx context.Context, key string, payload []byte) error {
	m := models.SnapshotModel{Key: key, Payload: string(payload), UpdatedAt: time.Now()}
	err := s.db.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "snapshot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&m).Error
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Delete removes the payload under key
func (s *SQLSnapshotStore) Delete(ctx context.Context, key string) error {
	err := s.db.DB.WithContext(ctx).Where("snapshot_key = ?", key).Delete(&models.SnapshotModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (s *SQLSnapshotStore) Close() error {
	return s.db.Close()
}
