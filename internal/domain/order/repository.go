package order

import "context"

// Repository defines the interface for order persistence
type Repository interface {
	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id int64) (*Order, error)

	// FindOpen finds all orders in a non-terminal status, oldest first.
	// This is the worklist the refresh scheduler walks.
	FindOpen(ctx context.Context, limit int) ([]Order, error)

	// CountByServiceIDs returns, for each given service id, how many orders
	// reference it. Services with no orders are absent from the map.
	CountByServiceIDs(ctx context.Context, serviceIDs []int64) (map[int64]int64, error)

	// Save creates or updates an order
	Save(ctx context.Context, o *Order) error

	// UpdateReconciledState conditionally persists status, remains and
	// start_count: the write applies only while the stored status still
	// equals expectedStatus, atomically with the check, so a competing
	// writer's transition is never overwritten. Returns
	// shared.ErrPersistenceConflict semantics via (false, nil) when the
	// guard no longer holds.
	UpdateReconciledState(ctx context.Context, o *Order, expectedStatus Status) (bool, error)
}
