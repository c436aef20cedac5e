package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/order"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/shared"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindOpen finds all orders in a non-terminal status, oldest first
func (r *GormOrderRepository) FindOpen(ctx context.Context, limit int) ([]order.Order, error) {
	var orders []order.Order
	if err := r.db.WithContext(ctx).
		Where("status IN ?", []order.Status{order.StatusPending, order.StatusProcessing}).
		Order("id ASC").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CountByServiceIDs returns, for each given service id, how many orders
// reference it
func (r *GormOrderRepository) CountByServiceIDs(ctx context.Context, serviceIDs []int64) (map[int64]int64, error) {
	if len(serviceIDs) == 0 {
		return map[int64]int64{}, nil
	}

	type serviceCount struct {
		ServiceID int64
		Count     int64
	}
	var rows []serviceCount
	if err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Select("service_id, COUNT(*) AS count").
		Where("service_id IN ?", serviceIDs).
		Group("service_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[int64]int64, len(rows))
	for _, row := range rows {
		counts[row.ServiceID] = row.Count
	}
	return counts, nil
}

// Save creates or updates an order
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Save(o).Error
}

// UpdateReconciledState conditionally persists status, remains and
// start_count. The WHERE clause pins the stored status to the one observed
// at read time, so a transition committed by a competing writer in between
// is never overwritten; the caller sees (false, nil) and re-reads.
func (r *GormOrderRepository) UpdateReconciledState(ctx context.Context, o *order.Order, expectedStatus order.Status) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("id = ? AND status = ?", o.ID, expectedStatus).
		Updates(map[string]any{
			"status":      o.Status,
			"remains":     o.Remains,
			"start_count": o.StartCount,
			"updated_at":  o.UpdatedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
