package models

import "time"

// SnapshotModel stores one serialised catalog per key.
type SnapshotModel struct {
	Key       string    `gorm:"column:snapshot_key;type:varchar(128);primaryKey"`
	Payload   string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SnapshotModel) TableName() string {
	return "snapshots"
}
