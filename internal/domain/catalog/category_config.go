package catalog

import (
	"strings"
	"time"

	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/shared"
)

// CategoryConfig holds presentation ordering for one display category.
// Rows are mutated by admin tooling and bootstrapped by catalog sync when a
// previously unseen category appears upstream.
type CategoryConfig struct {
	shared.SequentialEntity
	Name      string `gorm:"type:varchar(200);not null;uniqueIndex"`
	SortOrder int    `gorm:"not null;default:0"`
	IsActive  bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CategoryConfig) TableName() string {
	return "category_configs"
}

// NewCategoryConfig creates a category config
func NewCategoryConfig(name string, sortOrder int) (*CategoryConfig, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}
	now := time.Now()
	return &CategoryConfig{
		SequentialEntity: shared.SequentialEntity{CreatedAt: now, UpdatedAt: now},
		Name:             name,
		SortOrder:        sortOrder,
		IsActive:         true,
	}, nil
}
