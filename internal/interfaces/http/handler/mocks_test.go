package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/application/dedup"
	catalogsync "github.com/SUPRAJ-8/NepoSMM-sub002/internal/application/sync"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/catalog"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/order"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/provider"
)

type mockProviderRepo struct {
	mock.Mock
}

func (m *mockProviderRepo) FindByID(ctx context.Context, id uuid.UUID) (*provider.Provider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Provider), args.Error(1)
}

func (m *mockProviderRepo) FindActive(ctx context.Context) ([]provider.Provider, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]provider.Provider), args.Error(1)
}

func (m *mockProviderRepo) FindAll(ctx context.Context) ([]provider.Provider, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]provider.Provider), args.Error(1)
}

func (m *mockProviderRepo) Save(ctx context.Context, p *provider.Provider) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProviderRepo) UpdateSyncStatus(ctx context.Context, p *provider.Provider) error {
	return m.Called(ctx, p).Error(0)
}

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockOrderRepo) FindOpen(ctx context.Context, limit int) ([]order.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *mockOrderRepo) CountByServiceIDs(ctx context.Context, serviceIDs []int64) (map[int64]int64, error) {
	args := m.Called(ctx, serviceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int64), args.Error(1)
}

func (m *mockOrderRepo) Save(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOrderRepo) UpdateReconciledState(ctx context.Context, o *order.Order, expectedStatus order.Status) (bool, error) {
	args := m.Called(ctx, o, expectedStatus)
	return args.Bool(0), args.Error(1)
}

type mockReconciler struct {
	mock.Mock
}

func (m *mockReconciler) RefreshOrder(ctx context.Context, orderID int64) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockReconciler) RequestRefill(ctx context.Context, orderID int64) error {
	return m.Called(ctx, orderID).Error(0)
}

func (m *mockReconciler) RequestCancel(ctx context.Context, orderID int64) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type mockSyncService struct {
	mock.Mock
}

func (m *mockSyncService) SyncAll(ctx context.Context) (*catalogsync.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogsync.Report), args.Error(1)
}

func (m *mockSyncService) SyncProvider(ctx context.Context, p *provider.Provider) catalogsync.ProviderReport {
	args := m.Called(ctx, p)
	return args.Get(0).(catalogsync.ProviderReport)
}

type mockDedupService struct {
	mock.Mock
}

func (m *mockDedupService) Deduplicate(ctx context.Context) (*dedup.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dedup.Report), args.Error(1)
}

type mockResolutionRepo struct {
	mock.Mock
}

func (m *mockResolutionRepo) Save(ctx context.Context, r *catalog.DedupResolution) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockResolutionRepo) FindRecent(ctx context.Context, limit int) ([]catalog.DedupResolution, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.DedupResolution), args.Error(1)
}

type mockServiceRepo struct {
	mock.Mock
}

func (m *mockServiceRepo) FindByID(ctx context.Context, id int64) (*catalog.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Service), args.Error(1)
}

func (m *mockServiceRepo) FindByProviderAndExternalID(ctx context.Context, providerID uuid.UUID, externalServiceID string) (*catalog.Service, error) {
	args := m.Called(ctx, providerID, externalServiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Service), args.Error(1)
}

func (m *mockServiceRepo) FindByProvider(ctx context.Context, providerID uuid.UUID) ([]catalog.Service, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Service), args.Error(1)
}

func (m *mockServiceRepo) FindActive(ctx context.Context) ([]catalog.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Service), args.Error(1)
}

func (m *mockServiceRepo) DistinctActiveDisplayCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockServiceRepo) Create(ctx context.Context, s *catalog.Service) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockServiceRepo) Save(ctx context.Context, s *catalog.Service) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockServiceRepo) UpdateDerivedFields(ctx context.Context, id int64, averageTime, description string) (bool, error) {
	args := m.Called(ctx, id, averageTime, description)
	return args.Bool(0), args.Error(1)
}

func (m *mockServiceRepo) RenameDisplayCategory(ctx context.Context, oldName, newName string) (int64, error) {
	args := m.Called(ctx, oldName, newName)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockServiceRepo) DeactivateServices(ctx context.Context, ids []int64) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) FindAll(ctx context.Context) ([]catalog.CategoryConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.CategoryConfig), args.Error(1)
}

func (m *mockCategoryRepo) FindByName(ctx context.Context, name string) (*catalog.CategoryConfig, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.CategoryConfig), args.Error(1)
}

func (m *mockCategoryRepo) EnsureExists(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *mockCategoryRepo) Save(ctx context.Context, c *catalog.CategoryConfig) error {
	return m.Called(ctx, c).Error(0)
}
