package sync

import (
	"context"
	"errors"
	gosync "sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/catalog"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/provider"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/shared"
)

// ErrSyncInProgress is returned when a catalog sync for the same provider is
// already running. The caller should not treat this as a failure; the running
// sync will produce the same result.
var ErrSyncInProgress = errors.New("sync: provider sync already in progress")

// SyncLock serializes catalog syncs per provider across processes
type SyncLock interface {
	// Acquire takes the sync lock for a provider. Returns false when another
	// sync already holds it.
	Acquire(ctx context.Context, providerID uuid.UUID) (bool, error)

	// Release frees the lock
	Release(ctx context.Context, providerID uuid.UUID) error
}

// ProviderReport summarizes one provider's catalog sync
type ProviderReport struct {
	ProviderID   uuid.UUID `json:"provider_id"`
	ProviderName string    `json:"provider_name"`
	Created      int       `json:"created"`
	Updated      int       `json:"updated"`
	Unchanged    int       `json:"unchanged"`
	Skipped      int       `json:"skipped"`
	Error        string    `json:"error,omitempty"`
}

// Failed reports whether the provider's sync aborted
func (r ProviderReport) Failed() bool {
	return r.Error != ""
}

// Report summarizes a full catalog sync run
type Report struct {
	Providers         []ProviderReport `json:"providers"`
	CategoriesUnified int64            `json:"categories_unified"`
	Duration          time.Duration    `json:"duration"`
}

// CatalogSyncService pulls provider catalogs, patches derived fields on
// existing services and ingests new ones. Providers fail independently: one
// unreachable upstream never blocks the rest of the run.
type CatalogSyncService struct {
	providerRepo provider.Repository
	serviceRepo  catalog.ServiceRepository
	categoryRepo catalog.CategoryConfigRepository
	gateway      provider.Gateway
	normalizer   *Normalizer
	unifier      *CategoryUnifier
	lock         SyncLock
	workers      int
	logger       *zap.Logger
}

// NewCatalogSyncService creates a catalog sync service. workers bounds the
// number of providers synced concurrently.
func NewCatalogSyncService(
	providerRepo provider.Repository,
	serviceRepo catalog.ServiceRepository,
	categoryRepo catalog.CategoryConfigRepository,
	gateway provider.Gateway,
	unifier *CategoryUnifier,
	lock SyncLock,
	workers int,
	logger *zap.Logger,
) *CatalogSyncService {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogSyncService{
		providerRepo: providerRepo,
		serviceRepo:  serviceRepo,
		categoryRepo: categoryRepo,
		gateway:      gateway,
		normalizer:   NewNormalizer(),
		unifier:      unifier,
		lock:         lock,
		workers:      workers,
		logger:       logger.Named("catalog-sync"),
	}
}

// SyncAll syncs every active provider through a bounded worker pool, then
// runs category unification once over the combined result
func (s *CatalogSyncService) SyncAll(ctx context.Context) (*Report, error) {
	started := time.Now()

	providers, err := s.providerRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	var (
		mu      gosync.Mutex
		wg      gosync.WaitGroup
		reports = make([]ProviderReport, 0, len(providers))
		sem     = make(chan struct{}, s.workers)
	)
	for i := range providers {
		p := providers[i]
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			report := s.SyncProvider(ctx, &p)
			mu.Lock()
			reports = append(reports, report)
			mu.Unlock()
		}()
	}
	wg.Wait()

	unified, err := s.unifier.Unify(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Providers:         reports,
		CategoriesUnified: unified,
		Duration:          time.Since(started),
	}
	s.logger.Info("Catalog sync run finished",
		zap.Int("providers", len(reports)),
		zap.Int64("categories_unified", unified),
		zap.Duration("duration", report.Duration),
	)
	return report, nil
}

// SyncProvider syncs one provider's catalog. Failures are recorded on the
// provider and in the returned report; the provider's existing services stay
// untouched on failure.
func (s *CatalogSyncService) SyncProvider(ctx context.Context, p *provider.Provider) ProviderReport {
	report := ProviderReport{ProviderID: p.ID, ProviderName: p.Name}
	log := s.logger.With(zap.String("provider", p.Name))

	acquired, err := s.lock.Acquire(ctx, p.ID)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	if !acquired {
		report.Error = ErrSyncInProgress.Error()
		return report
	}
	defer func() {
		if err := s.lock.Release(ctx, p.ID); err != nil {
			log.Warn("Failed to release sync lock", zap.Error(err))
		}
	}()

	raw, err := s.gateway.FetchCatalog(ctx, p)
	if err != nil {
		log.Warn("Catalog fetch failed", zap.Error(err))
		p.MarkSyncFailed(err.Error())
		if uerr := s.providerRepo.UpdateSyncStatus(ctx, p); uerr != nil {
			log.Error("Failed to record sync failure", zap.Error(uerr))
		}
		report.Error = err.Error()
		return report
	}

	existing, err := s.serviceRepo.FindByProvider(ctx, p.ID)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	byExternalID := make(map[string]*catalog.Service, len(existing))
	for i := range existing {
		byExternalID[existing[i].ExternalServiceID] = &existing[i]
	}

	for _, r := range raw {
		if current, ok := byExternalID[r.ExternalID]; ok {
			written, err := s.patchService(ctx, current, r)
			if err != nil {
				report.Error = err.Error()
				return report
			}
			if written {
				report.Updated++
			} else {
				report.Unchanged++
			}
			continue
		}

		if err := s.ingestService(ctx, p, r); err != nil {
			var derr *shared.DomainError
			if errors.As(err, &derr) {
				log.Warn("Skipping malformed catalog record",
					zap.String("external_id", r.ExternalID),
					zap.Error(err),
				)
				report.Skipped++
				continue
			}
			report.Error = err.Error()
			return report
		}
		report.Created++
	}

	p.MarkSyncSuccess()
	if err := s.providerRepo.UpdateSyncStatus(ctx, p); err != nil {
		report.Error = err.Error()
		return report
	}

	log.Info("Provider catalog synced",
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("unchanged", report.Unchanged),
		zap.Int("skipped", report.Skipped),
	)
	return report
}

// patchService applies the field sync rules to an already-cataloged service.
// Only average_time and description may change; the conditional repository
// write skips the row entirely when both are already current.
func (s *CatalogSyncService) patchService(ctx context.Context, current *catalog.Service, r provider.RawService) (bool, error) {
	averageTime, description := s.normalizer.DerivedFields(r)
	if !current.ApplyDerivedFields(averageTime, description) {
		return false, nil
	}
	return s.serviceRepo.UpdateDerivedFields(ctx, current.ID, averageTime, description)
}

// ingestService catalogs a service seen for the first time
func (s *CatalogSyncService) ingestService(ctx context.Context, p *provider.Provider, r provider.RawService) error {
	svc, err := s.normalizer.Normalize(r, p)
	if err != nil {
		return err
	}
	if canonical := s.unifier.Resolve(svc.DisplayCategory); canonical != svc.DisplayCategory {
		svc.RenameDisplayCategory(canonical)
	}
	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return err
	}
	return s.categoryRepo.EnsureExists(ctx, svc.DisplayCategory)
}
