package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/catalog"
)

// GormDedupResolutionRepository implements catalog.DedupResolutionRepository using GORM
type GormDedupResolutionRepository struct {
	db *gorm.DB
}

// NewGormDedupResolutionRepository creates a new GormDedupResolutionRepository
func NewGormDedupResolutionRepository(db *gorm.DB) *GormDedupResolutionRepository {
	return &GormDedupResolutionRepository{db: db}
}

// Save records one resolved group
func (r *GormDedupResolutionRepository) Save(ctx context.Context, resolution *catalog.DedupResolution) error {
	return r.db.WithContext(ctx).Create(resolution).Error
}

// FindRecent returns the most recent resolutions, newest first
func (r *GormDedupResolutionRepository) FindRecent(ctx context.Context, limit int) ([]catalog.DedupResolution, error) {
	var resolutions []catalog.DedupResolution
	if err := r.db.WithContext(ctx).
		Order("resolved_at DESC, id DESC").
		Limit(limit).
		Find(&resolutions).Error; err != nil {
		return nil, err
	}
	return resolutions, nil
}
