package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ServiceRepository defines the interface for service persistence
type ServiceRepository interface {
	// FindByID finds a service by its ID
	FindByID(ctx context.Context, id int64) (*Service, error)

	// FindByProviderAndExternalID finds a service by its identity pair
	FindByProviderAndExternalID(ctx context.Context, providerID uuid.UUID, externalServiceID string) (*Service, error)

	// FindByProvider finds all services belonging to a provider
	FindByProvider(ctx context.Context, providerID uuid.UUID) ([]Service, error)

	// FindActive finds all services with status = active
	FindActive(ctx context.Context) ([]Service, error)

	// DistinctActiveDisplayCategories returns the distinct display_category
	// values across active services
	DistinctActiveDisplayCategories(ctx context.Context) ([]string, error)

	// Create inserts a newly ingested service
	Create(ctx context.Context, s *Service) error

	// Save updates a service
	Save(ctx context.Context, s *Service) error

	// UpdateDerivedFields conditionally patches average_time and description
	// of one service: the write applies only if the stored values still
	// differ from the incoming ones, atomically with the check. Returns true
	// if a row was written.
	UpdateDerivedFields(ctx context.Context, id int64, averageTime, description string) (bool, error)

	// RenameDisplayCategory batch-rewrites display_category for all active
	// services currently carrying the old spelling. Returns affected rows.
	RenameDisplayCategory(ctx context.Context, oldName, newName string) (int64, error)

	// DeactivateServices sets status = inactive on the given ids. Returns
	// the number of rows that were still active.
	DeactivateServices(ctx context.Context, ids []int64) (int64, error)
}

// CategoryConfigRepository defines the interface for category config persistence
type CategoryConfigRepository interface {
	// FindAll returns all category configs ordered by sort order
	FindAll(ctx context.Context) ([]CategoryConfig, error)

	// FindByName finds a category config by its unique name
	FindByName(ctx context.Context, name string) (*CategoryConfig, error)

	// EnsureExists creates a config for the category if none exists yet.
	// Used by catalog bootstrap when new upstream categories appear.
	EnsureExists(ctx context.Context, name string) error

	// Save creates or updates a category config
	Save(ctx context.Context, c *CategoryConfig) error
}

// DedupResolutionRepository persists the audit trail of dedup runs
type DedupResolutionRepository interface {
	// Save records one resolved group
	Save(ctx context.Context, r *DedupResolution) error

	// FindRecent returns the most recent resolutions, newest first
	FindRecent(ctx context.Context, limit int) ([]DedupResolution, error)
}
