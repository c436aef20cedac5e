package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/provider"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/shared"
)

func setupProviderTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&provider.Provider{}))
	return db
}

func newTestProvider(t *testing.T, name string) *provider.Provider {
	t.Helper()
	p, err := provider.NewProvider(name, "https://"+name+".example.com/api/v2", "key-"+name, "USD")
	require.NoError(t, err)
	return p
}

func TestGormProviderRepository_SaveAndFindByID(t *testing.T) {
	db := setupProviderTestDB(t)
	repo := NewGormProviderRepository(db)
	ctx := context.Background()

	p := newTestProvider(t, "panel-a")
	require.NoError(t, repo.Save(ctx, p))

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)
	assert.Equal(t, "panel-a", found.Name)
	assert.Equal(t, provider.StatusActive, found.Status)
	assert.Equal(t, provider.SyncStatusNever, found.SyncStatus)
}

func TestGormProviderRepository_FindByIDNotFound(t *testing.T) {
	db := setupProviderTestDB(t)
	repo := NewGormProviderRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormProviderRepository_FindActive(t *testing.T) {
	db := setupProviderTestDB(t)
	repo := NewGormProviderRepository(db)
	ctx := context.Background()

	active := newTestProvider(t, "panel-b")
	require.NoError(t, repo.Save(ctx, active))

	inactive := newTestProvider(t, "panel-a")
	inactive.Status = provider.StatusInactive
	require.NoError(t, repo.Save(ctx, inactive))

	providers, err := repo.FindActive(ctx)
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, active.ID, providers[0].ID)
}

func TestGormProviderRepository_FindAllOrdersByName(t *testing.T) {
	db := setupProviderTestDB(t)
	repo := NewGormProviderRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newTestProvider(t, "zeta")))
	require.NoError(t, repo.Save(ctx, newTestProvider(t, "alpha")))

	providers, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, providers, 2)
	assert.Equal(t, "alpha", providers[0].Name)
	assert.Equal(t, "zeta", providers[1].Name)
}

func TestGormProviderRepository_UpdateSyncStatus(t *testing.T) {
	db := setupProviderTestDB(t)
	repo := NewGormProviderRepository(db)
	ctx := context.Background()

	p := newTestProvider(t, "panel-a")
	require.NoError(t, repo.Save(ctx, p))

	// Simulate an operator edit racing the sync status write. The URL
	// change must survive because UpdateSyncStatus only touches sync fields.
	require.NoError(t, db.Model(&provider.Provider{}).
		Where("id = ?", p.ID).
		Update("api_url", "https://moved.example.com/api/v2").Error)

	p.MarkSyncFailed("connection refused")
	require.NoError(t, repo.UpdateSyncStatus(ctx, p))

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, provider.SyncStatusFailed, found.SyncStatus)
	assert.Equal(t, "connection refused", found.SyncError)
	assert.Equal(t, "https://moved.example.com/api/v2", found.APIURL)
}
