package sync

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/catalog"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/provider"
)

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
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockServiceRepo) Save(ctx context.Context, s *catalog.Service) error {
	args := m.Called(ctx, s)
	return args.Error(0)
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
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *mockCategoryRepo) Save(ctx context.Context, c *catalog.CategoryConfig) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

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
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProviderRepo) UpdateSyncStatus(ctx context.Context, p *provider.Provider) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) FetchCatalog(ctx context.Context, p *provider.Provider) ([]provider.RawService, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]provider.RawService), args.Error(1)
}

func (m *mockGateway) GetOrder(ctx context.Context, p *provider.Provider, externalOrderID string) (*provider.RemoteOrder, error) {
	args := m.Called(ctx, p, externalOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.RemoteOrder), args.Error(1)
}

func (m *mockGateway) RequestRefill(ctx context.Context, p *provider.Provider, externalOrderID string) error {
	args := m.Called(ctx, p, externalOrderID)
	return args.Error(0)
}

func (m *mockGateway) RequestCancel(ctx context.Context, p *provider.Provider, externalOrderID string) error {
	args := m.Called(ctx, p, externalOrderID)
	return args.Error(0)
}

type mockSyncLock struct {
	mock.Mock
}

func (m *mockSyncLock) Acquire(ctx context.Context, providerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, providerID)
	return args.Bool(0), args.Error(1)
}

func (m *mockSyncLock) Release(ctx context.Context, providerID uuid.UUID) error {
	args := m.Called(ctx, providerID)
	return args.Error(0)
}
