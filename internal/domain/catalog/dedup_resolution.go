package catalog

import (
	"time"

	"github.com/google/uuid"
)

// DedupResolution is the audit record of one resolved duplicate group:
// which service ids were deactivated in favor of which canonical id.
type DedupResolution struct {
	ID                    int64     `gorm:"primaryKey;autoIncrement"`
	ProviderID            uuid.UUID `gorm:"type:uuid;not null;index"`
	DisplayName           string    `gorm:"type:varchar(500);not null"`
	DisplayCategory       string    `gorm:"type:varchar(200);not null"`
	Rate                  string    `gorm:"type:varchar(32);not null"`
	CanonicalServiceID    int64     `gorm:"not null;index"`
	DeactivatedServiceIDs string    `gorm:"type:text;not null"` // comma-separated ids
	ResolvedAt            time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DedupResolution) TableName() string {
	return "dedup_resolutions"
}
