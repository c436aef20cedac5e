package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/catalog"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/shared"
)

// GormServiceRepository implements catalog.ServiceRepository using GORM
type GormServiceRepository struct {
	db *gorm.DB
}

// NewGormServiceRepository creates a new GormServiceRepository
func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

// FindByID finds a service by its ID
func (r *GormServiceRepository) FindByID(ctx context.Context, id int64) (*catalog.Service, error) {
	var s catalog.Service
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindByProviderAndExternalID finds a service by its identity pair
func (r *GormServiceRepository) FindByProviderAndExternalID(ctx context.Context, providerID uuid.UUID, externalServiceID string) (*catalog.Service, error) {
	var s catalog.Service
	if err := r.db.WithContext(ctx).
		Where("provider_id = ? AND external_service_id = ?", providerID, externalServiceID).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindByProvider finds all services belonging to a provider
func (r *GormServiceRepository) FindByProvider(ctx context.Context, providerID uuid.UUID) ([]catalog.Service, error) {
	var services []catalog.Service
	if err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// FindActive finds all services with status = active
func (r *GormServiceRepository) FindActive(ctx context.Context) ([]catalog.Service, error) {
	var services []catalog.Service
	if err := r.db.WithContext(ctx).
		Where("status = ?", catalog.ServiceStatusActive).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// DistinctActiveDisplayCategories returns the distinct display_category
// values across active services
func (r *GormServiceRepository) DistinctActiveDisplayCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.db.WithContext(ctx).
		Model(&catalog.Service{}).
		Where("status = ?", catalog.ServiceStatusActive).
		Distinct().
		Order("display_category ASC").
		Pluck("display_category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Create inserts a newly ingested service
func (r *GormServiceRepository) Create(ctx context.Context, s *catalog.Service) error {
	err := r.db.WithContext(ctx).Create(s).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	return err
}

// Save updates a service
func (r *GormServiceRepository) Save(ctx context.Context, s *catalog.Service) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// UpdateDerivedFields conditionally patches average_time and description.
// The WHERE clause re-checks that the stored values still differ, so the
// check and the write are one atomic statement and an identical concurrent
// patch costs no row write.
func (r *GormServiceRepository) UpdateDerivedFields(ctx context.Context, id int64, averageTime, description string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&catalog.Service{}).
		Where("id = ? AND (average_time <> ? OR description <> ?)", id, averageTime, description).
		Updates(map[string]any{
			"average_time": averageTime,
			"description":  description,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RenameDisplayCategory batch-rewrites display_category for all active
// services currently carrying the old spelling
func (r *GormServiceRepository) RenameDisplayCategory(ctx context.Context, oldName, newName string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&catalog.Service{}).
		Where("display_category = ? AND status = ?", oldName, catalog.ServiceStatusActive).
		Update("display_category", newName)
	return result.RowsAffected, result.Error
}

// DeactivateServices sets status = inactive on the given ids
func (r *GormServiceRepository) DeactivateServices(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&catalog.Service{}).
		Where("id IN ? AND status = ?", ids, catalog.ServiceStatusActive).
		Update("status", catalog.ServiceStatusInactive)
	return result.RowsAffected, result.Error
}
