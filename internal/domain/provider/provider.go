package provider

import (
	"strings"
	"time"

	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/shared"
)

// Status represents the operational status of a provider
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// SyncStatus records the outcome of the most recent catalog sync attempt
type SyncStatus string

const (
	SyncStatusNever   SyncStatus = "never"
	SyncStatusSuccess SyncStatus = "success"
	SyncStatusFailed  SyncStatus = "failed"
)

// Provider is an upstream vendor selling services through its own HTTP API.
// Operators create and edit providers; the sync core only reads connection
// parameters and writes back the sync-status fields.
type Provider struct {
	shared.BaseEntity
	Name         string     `gorm:"type:varchar(100);not null"`
	APIURL       string     `gorm:"type:varchar(500);not null"`
	APIKey       string     `gorm:"type:varchar(200);not null"`
	Currency     string     `gorm:"type:varchar(10);not null;default:'USD'"`
	Status       Status     `gorm:"type:varchar(20);not null;default:'active';index"`
	SyncStatus   SyncStatus `gorm:"type:varchar(20);not null;default:'never'"`
	SyncError    string     `gorm:"type:text"`
	LastSyncedAt *time.Time
}

// TableName returns the table name for GORM
func (Provider) TableName() string {
	return "providers"
}

// NewProvider creates a new provider
func NewProvider(name, apiURL, apiKey, currency string) (*Provider, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PROVIDER_NAME", "Provider name cannot be empty")
	}
	if strings.TrimSpace(apiURL) == "" {
		return nil, shared.NewDomainError("INVALID_PROVIDER_URL", "Provider API URL cannot be empty")
	}
	if currency == "" {
		currency = "USD"
	}

	return &Provider{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		APIURL:     strings.TrimSpace(apiURL),
		APIKey:     apiKey,
		Currency:   strings.ToUpper(currency),
		Status:     StatusActive,
		SyncStatus: SyncStatusNever,
	}, nil
}

// IsActive returns true if the provider participates in catalog sync
func (p *Provider) IsActive() bool {
	return p.Status == StatusActive
}

// MarkSyncSuccess records a successful catalog sync attempt
func (p *Provider) MarkSyncSuccess() {
	now := time.Now()
	p.SyncStatus = SyncStatusSuccess
	p.SyncError = ""
	p.LastSyncedAt = &now
	p.UpdatedAt = now
}

// MarkSyncFailed records a failed catalog sync attempt with the cause.
// Existing services of the provider are left untouched.
func (p *Provider) MarkSyncFailed(cause string) {
	now := time.Now()
	p.SyncStatus = SyncStatusFailed
	p.SyncError = cause
	p.LastSyncedAt = &now
	p.UpdatedAt = now
}
