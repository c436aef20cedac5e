package reconcile

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/order"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/provider"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/shared"
)

// StatusMapper translates a provider-native status string into the canonical
// vocabulary. Unknown strings map to nothing and leave the order untouched.
type StatusMapper interface {
	Map(providerID uuid.UUID, raw string) (order.Status, bool)
}

// Service reconciles local order state against providers. All order
// mutations flow through here after submission: refresh folds provider state
// in, refill and cancel proxy explicit requests upstream.
type Service struct {
	orderRepo    order.Repository
	providerRepo provider.Repository
	gateway      provider.Gateway
	mapper       StatusMapper
	logger       *zap.Logger
}

// NewService creates an order reconciliation service
func NewService(
	orderRepo order.Repository,
	providerRepo provider.Repository,
	gateway provider.Gateway,
	mapper StatusMapper,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		orderRepo:    orderRepo,
		providerRepo: providerRepo,
		gateway:      gateway,
		mapper:       mapper,
		logger:       logger.Named("reconcile"),
	}
}

// RefreshOrder pulls the provider-reported state of one order and folds it
// into the local record. The write is conditional on the status observed at
// read time; losing that race returns shared.ErrPersistenceConflict and the
// caller may simply refresh again.
func (s *Service) RefreshOrder(ctx context.Context, orderID int64) (*order.Order, error) {
	o, p, err := s.loadOrderWithProvider(ctx, orderID)
	if err != nil {
		return nil, err
	}

	remote, err := s.gateway.GetOrder(ctx, p, o.ExternalOrderID)
	if err != nil {
		return nil, err
	}

	observedStatus := o.Status
	mapped, known := s.mapper.Map(p.ID, remote.Status)
	if !known {
		s.logger.Warn("Unknown provider status, applying counters only",
			zap.Int64("order_id", o.ID),
			zap.String("provider", p.Name),
			zap.String("raw_status", remote.Status),
		)
		mapped = o.Status
	}

	if !o.ApplyRemoteState(mapped, remote.Remains, remote.StartCount) {
		return o, nil
	}

	written, err := s.orderRepo.UpdateReconciledState(ctx, o, observedStatus)
	if err != nil {
		return nil, err
	}
	if !written {
		return nil, shared.ErrPersistenceConflict
	}
	return o, nil
}

// RefreshOpenOrders refreshes every non-terminal order, oldest first. Orders
// fail independently; one bad order or provider never stalls the worklist.
func (s *Service) RefreshOpenOrders(ctx context.Context, limit int) (refreshed, failed int, err error) {
	open, err := s.orderRepo.FindOpen(ctx, limit)
	if err != nil {
		return 0, 0, err
	}
	for i := range open {
		if _, err := s.RefreshOrder(ctx, open[i].ID); err != nil {
			s.logger.Warn("Order refresh failed",
				zap.Int64("order_id", open[i].ID),
				zap.Error(err),
			)
			failed++
			continue
		}
		refreshed++
	}
	return refreshed, failed, nil
}

// RequestRefill proxies a refill request upstream. Eligibility is the
// provider's call: the current provider-reported refill flag is checked
// first and never inferred locally. The local order is not mutated; a later
// refresh picks up any effect.
func (s *Service) RequestRefill(ctx context.Context, orderID int64) error {
	o, p, err := s.loadOrderWithProvider(ctx, orderID)
	if err != nil {
		return err
	}

	remote, err := s.gateway.GetOrder(ctx, p, o.ExternalOrderID)
	if err != nil {
		return err
	}
	if !remote.RefillEligible {
		return order.ErrRefillNotEligible
	}

	return s.gateway.RequestRefill(ctx, p, o.ExternalOrderID)
}

// RequestCancel proxies a cancel request upstream. Only pending and
// processing orders qualify; the local status flips to canceled only after
// the provider confirms, so an upstream rejection leaves the order exactly
// as it was.
func (s *Service) RequestCancel(ctx context.Context, orderID int64) (*order.Order, error) {
	o, p, err := s.loadOrderWithProvider(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.CanCancel() {
		return nil, order.ErrOrderNotCancelable
	}

	if err := s.gateway.RequestCancel(ctx, p, o.ExternalOrderID); err != nil {
		return nil, err
	}

	observedStatus := o.Status
	if err := o.MarkCanceled(); err != nil {
		return nil, err
	}
	written, err := s.orderRepo.UpdateReconciledState(ctx, o, observedStatus)
	if err != nil {
		return nil, err
	}
	if !written {
		return nil, shared.ErrPersistenceConflict
	}

	s.logger.Info("Order canceled upstream",
		zap.Int64("order_id", o.ID),
		zap.String("provider", p.Name),
	)
	return o, nil
}

func (s *Service) loadOrderWithProvider(ctx context.Context, orderID int64) (*order.Order, *provider.Provider, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	p, err := s.providerRepo.FindByID(ctx, o.ProviderID)
	if err != nil {
		return nil, nil, err
	}
	return o, p, nil
}
