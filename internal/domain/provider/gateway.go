package provider

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Gateway Errors
// ---------------------------------------------------------------------------

var (
	// ErrProviderUnreachable indicates a network failure, timeout or non-2xx
	// response from the provider API. There is no automatic retry; the caller
	// records the failure and moves on to its next unit of work.
	ErrProviderUnreachable = errors.New("provider: upstream unreachable")

	// ErrProviderInvalidResponse indicates a 2xx response whose body does not
	// match the expected shape (e.g. an error object where an array was
	// expected). The provider's existing catalog is left untouched.
	ErrProviderInvalidResponse = errors.New("provider: invalid upstream response")
)

// ---------------------------------------------------------------------------
// Gateway Value Objects
// ---------------------------------------------------------------------------

// RawService is one validated record from a provider's service listing.
// Only shape validation happens at this boundary; semantic normalization
// (derived average time, description, category unification) is deferred.
type RawService struct {
	// ExternalID is the provider's own identifier for the service
	ExternalID string
	// Name is the raw upstream service name
	Name string
	// Category is the raw upstream category
	Category string
	// Rate is the upstream price per 1000 units
	Rate decimal.Decimal
	// Min is the minimum order quantity
	Min int
	// Max is the maximum order quantity
	Max int
	// AverageTime is the provider-supplied fulfillment time, if any
	AverageTime string
	// Description is the provider-supplied description, if any
	Description string
}

// RemoteOrder is the provider-reported state of one placed order
type RemoteOrder struct {
	// Status is the provider-native status string, unmapped
	Status string
	// Remains is the undelivered quantity, when reported
	Remains *int
	// StartCount is the counter value at fulfillment start, when reported
	StartCount *int
	// Charge is the provider-side charge, when reported
	Charge decimal.Decimal
	// Currency is the settlement currency of the charge
	Currency string
	// RefillEligible is the provider's refill flag; refill eligibility is
	// never inferred locally
	RefillEligible bool
}

// ---------------------------------------------------------------------------
// Gateway Port
// ---------------------------------------------------------------------------

// Gateway is the port to a provider's HTTP API. One implementation speaks
// the common SMM-panel form-encoded protocol; the domain layer only sees
// typed results and the two sentinel failures above.
type Gateway interface {
	// FetchCatalog retrieves the provider's full service listing
	FetchCatalog(ctx context.Context, p *Provider) ([]RawService, error)

	// GetOrder retrieves the provider-reported state of one order
	GetOrder(ctx context.Context, p *Provider, externalOrderID string) (*RemoteOrder, error)

	// RequestRefill asks the provider to refill an order. The local order
	// status is not changed here; a later refresh picks up any effect.
	RequestRefill(ctx context.Context, p *Provider, externalOrderID string) error

	// RequestCancel asks the provider to cancel an order
	RequestCancel(ctx context.Context, p *Provider, externalOrderID string) error
}
