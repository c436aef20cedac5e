package provider

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for provider persistence.
// The sync core reads providers and updates only their sync-status fields;
// everything else belongs to the operator tooling.
type Repository interface {
	// FindByID finds a provider by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Provider, error)

	// FindActive finds all providers with status = active
	FindActive(ctx context.Context) ([]Provider, error)

	// FindAll finds all providers
	FindAll(ctx context.Context) ([]Provider, error)

	// Save creates or updates a provider
	Save(ctx context.Context, p *Provider) error

	// UpdateSyncStatus persists only the sync-status fields of a provider
	UpdateSyncStatus(ctx context.Context, p *Provider) error
}
