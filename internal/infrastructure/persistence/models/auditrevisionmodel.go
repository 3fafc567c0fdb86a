package models

import (
	"time"

	"gorm.io/datatypes"

	"abono/internal/shared/constants"
)

// AuditRevisionModel represents the append-only revision store. The
// auto-increment primary key doubles as the revision number, which gives
// non-decreasing, never-reused numbering for free.
type AuditRevisionModel struct {
	ID         uint64         `gorm:"primarykey"`
	Timestamp  time.Time      `gorm:"not null;index:idx_revision_timestamp"`
	EntityType string         `gorm:"not null;size:30;index:idx_revision_entity,priority:1"`
	EntityID   uint           `gorm:"not null;index:idx_revision_entity,priority:2"`
	ChangeKind string         `gorm:"not null;size:10"`
	Snapshot   datatypes.JSON `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (AuditRevisionModel) TableName() string {
	return constants.TableAuditRevisions
}
