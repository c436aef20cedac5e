package catalog

import (
	"strings"
	"time"

	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceStatus represents the status of a catalog service
type ServiceStatus string

const (
	ServiceStatusActive   ServiceStatus = "active"
	ServiceStatusInactive ServiceStatus = "inactive"
)

// Service is a locally-cataloged resellable offering tied to exactly one
// provider listing. Identity is the (ProviderID, ExternalServiceID) pair and
// is immutable once set. OriginalName and OriginalCategory capture the raw
// upstream values at first ingest and are never overwritten afterwards, even
// if the provider later renames the service.
type Service struct {
	shared.SequentialEntity
	ProviderID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_service_provider_external,priority:1"`
	ExternalServiceID string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_service_provider_external,priority:2"`
	OriginalName      string          `gorm:"type:varchar(500);not null"`
	OriginalCategory  string          `gorm:"type:varchar(200);not null"`
	DisplayName       string          `gorm:"type:varchar(500);not null"`
	DisplayCategory   string          `gorm:"type:varchar(200);not null;index"`
	Rate              decimal.Decimal `gorm:"type:decimal(18,5);not null;default:0"`
	Min               int             `gorm:"not null;default:0"`
	Max               int             `gorm:"not null;default:0"`
	AverageTime       string          `gorm:"type:varchar(100)"`
	Description       string          `gorm:"type:text"`
	Status            ServiceStatus   `gorm:"type:varchar(20);not null;default:'active';index"`
	Verified          bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Service) TableName() string {
	return "services"
}

// NewService creates a service at first ingest of a provider record.
// Display fields default to the original upstream values; they become
// independently editable afterwards.
func NewService(providerID uuid.UUID, externalServiceID, name, category string) (*Service, error) {
	if providerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROVIDER_ID", "Provider ID is required")
	}
	externalServiceID = strings.TrimSpace(externalServiceID)
	if externalServiceID == "" {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "External service ID is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SERVICE_NAME", "Service name cannot be empty")
	}
	category = strings.TrimSpace(category)

	now := time.Now()
	return &Service{
		SequentialEntity:  shared.SequentialEntity{CreatedAt: now, UpdatedAt: now},
		ProviderID:        providerID,
		ExternalServiceID: externalServiceID,
		OriginalName:      name,
		OriginalCategory:  category,
		DisplayName:       name,
		DisplayCategory:   category,
		Status:            ServiceStatusActive,
	}, nil
}

// SetPricing sets rate and quantity bounds. Pricing changes after first
// ingest are an explicit operator action; the field sync path never calls
// this.
func (s *Service) SetPricing(rate decimal.Decimal, min, max int) error {
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Rate cannot be negative")
	}
	if min < 0 || max < 0 {
		return shared.NewDomainError("INVALID_QUANTITY_BOUNDS", "Quantity bounds cannot be negative")
	}
	s.Rate = rate
	s.Min = min
	s.Max = max
	s.Touch()
	return nil
}

// ApplyDerivedFields overwrites average time and description, the only two
// fields the field sync engine may touch. Returns true if either value
// actually changed so callers can skip no-op writes.
func (s *Service) ApplyDerivedFields(averageTime, description string) bool {
	if s.AverageTime == averageTime && s.Description == description {
		return false
	}
	s.AverageTime = averageTime
	s.Description = description
	s.Touch()
	return true
}

// RenameDisplayCategory rewrites the customer-facing category. Original
// category is untouched.
func (s *Service) RenameDisplayCategory(category string) {
	s.DisplayCategory = category
	s.Touch()
}

// Deactivate removes the service from the active catalog
func (s *Service) Deactivate() {
	s.Status = ServiceStatusInactive
	s.Touch()
}

// IsActive returns true if the service is part of the active catalog
func (s *Service) IsActive() bool {
	return s.Status == ServiceStatusActive
}

// DedupKey identifies the group of equivalent active listings this service
// belongs to. Among active services no two may share the same key; the
// deduplicator enforces this with business logic rather than a uniqueness
// constraint because resolution means choosing a survivor, not rejecting.
type DedupKey struct {
	DisplayName     string
	DisplayCategory string
	ProviderID      uuid.UUID
	Rate            string
}

// DedupKeyOf builds the dedup grouping key for a service
func DedupKeyOf(s *Service) DedupKey {
	return DedupKey{
		DisplayName:     s.DisplayName,
		DisplayCategory: s.DisplayCategory,
		ProviderID:      s.ProviderID,
		Rate:            s.Rate.String(),
	}
}
