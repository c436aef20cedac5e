package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/provider"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/shared"
)

// GormProviderRepository implements provider.Repository using GORM
type GormProviderRepository struct {
	db *gorm.DB
}

// NewGormProviderRepository creates a new GormProviderRepository
func NewGormProviderRepository(db *gorm.DB) *GormProviderRepository {
	return &GormProviderRepository{db: db}
}

// FindByID finds a provider by its ID
func (r *GormProviderRepository) FindByID(ctx context.Context, id uuid.UUID) (*provider.Provider, error) {
	var p provider.Provider
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindActive finds all providers with status = active
func (r *GormProviderRepository) FindActive(ctx context.Context) ([]provider.Provider, error) {
	var providers []provider.Provider
	if err := r.db.WithContext(ctx).
		Where("status = ?", provider.StatusActive).
		Order("name ASC").
		Find(&providers).Error; err != nil {
		return nil, err
	}
	return providers, nil
}

// FindAll finds all providers
func (r *GormProviderRepository) FindAll(ctx context.Context) ([]provider.Provider, error) {
	var providers []provider.Provider
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&providers).Error; err != nil {
		return nil, err
	}
	return providers, nil
}

// Save creates or updates a provider
func (r *GormProviderRepository) Save(ctx context.Context, p *provider.Provider) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// UpdateSyncStatus persists only the sync-status fields of a provider, so a
// concurrent operator edit of connection parameters is never clobbered
func (r *GormProviderRepository) UpdateSyncStatus(ctx context.Context, p *provider.Provider) error {
	return r.db.WithContext(ctx).
		Model(&provider.Provider{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"sync_status":    p.SyncStatus,
			"sync_error":     p.SyncError,
			"last_synced_at": p.LastSyncedAt,
			"updated_at":     p.UpdatedAt,
		}).Error
}
