package order

import (
	"errors"

	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrOrderNotCancelable indicates a cancel request against an order that
	// is no longer pending or processing
	ErrOrderNotCancelable = errors.New("order: order is not cancelable")

	// ErrRefillNotEligible indicates a refill request the provider has not
	// flagged the order as eligible for
	ErrRefillNotEligible = errors.New("order: order is not eligible for refill")
)

// Status is the canonical order status vocabulary. Provider-native status
// strings are mapped into it during reconciliation.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusPartial    Status = "partial"
	StatusCanceled   Status = "canceled"
)

// statusRank orders statuses along the lifecycle. Reconciliation only moves
// forward; completed, partial and canceled share a terminal rank so a
// provider glitch can never swap one terminal state for another.
var statusRank = map[Status]int{
	StatusPending:    0,
	StatusProcessing: 1,
	StatusCompleted:  2,
	StatusPartial:    2,
	StatusCanceled:   2,
}

// IsValid returns true if the status is part of the canonical vocabulary
func (s Status) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if no further provider-driven transition is
// expected. partial is terminal for status purposes though remains may
// still update.
func (s Status) IsTerminal() bool {
	return statusRank[s] == 2
}

// Order references exactly one service and hence exactly one provider.
// After creation it is mutated only by the reconciliation engine and never
// deleted, only status-transitioned.
type Order struct {
	shared.SequentialEntity
	ServiceID       int64           `gorm:"not null;index"`
	ProviderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ExternalOrderID string          `gorm:"type:varchar(64);index"`
	Quantity        int             `gorm:"not null"`
	Charge          decimal.Decimal `gorm:"type:decimal(18,5);not null;default:0"`
	StartCount      int             `gorm:"not null;default:0"`
	Remains         int             `gorm:"not null;default:0"`
	Status          Status          `gorm:"type:varchar(20);not null;default:'pending';index"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// CanCancel returns true while a cancel request may still be proxied upstream
func (o *Order) CanCancel() bool {
	return o.Status == StatusPending || o.Status == StatusProcessing
}

// ApplyRemoteState folds the provider-reported state into the order.
// Status moves forward only: a stale or glitched upstream read can never
// regress the canonical status (e.g. processing back to pending) or swap
// one terminal status for another. Remains and start count update whenever
// reported, including on an unchanged status. Returns true if anything
// changed.
func (o *Order) ApplyRemoteState(status Status, remains, startCount *int) bool {
	changed := false

	if status.IsValid() && status != o.Status && statusRank[status] > statusRank[o.Status] {
		o.Status = status
		changed = true
	}
	if remains != nil && *remains != o.Remains {
		o.Remains = *remains
		changed = true
	}
	if startCount != nil && *startCount != o.StartCount {
		o.StartCount = *startCount
		changed = true
	}

	if changed {
		o.Touch()
	}
	return changed
}

// MarkCanceled applies an explicitly requested, upstream-confirmed
// cancellation. This is the only path that moves an order to canceled from
// a non-terminal state locally.
func (o *Order) MarkCanceled() error {
	if !o.CanCancel() {
		return ErrOrderNotCancelable
	}
	o.Status = StatusCanceled
	o.Touch()
	return nil
}

// MarkSubmitted records the provider-assigned order id after submission
func (o *Order) MarkSubmitted(externalOrderID string) {
	o.ExternalOrderID = externalOrderID
	o.Touch()
}
