package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/application/dedup"
	catalogsync "github.com/SUPRAJ-8/NepoSMM-sub002/internal/application/sync"
)

// CatalogSyncer runs a full catalog sync across all active providers
type CatalogSyncer interface {
	SyncAll(ctx context.Context) (*catalogsync.Report, error)
}

// Deduplicator collapses duplicate service listings after a sync pass
type Deduplicator interface {
	Deduplicate(ctx context.Context) (*dedup.Report, error)
}

// CatalogSyncSchedulerConfig holds configuration for the periodic catalog sync
type CatalogSyncSchedulerConfig struct {
	// Interval is how often a full catalog sync runs
	Interval time.Duration
	// RunTimeout is the maximum time a single sync pass can take
	RunTimeout time.Duration
	// DedupAfterSync runs deduplication after each successful sync pass
	DedupAfterSync bool
}

// DefaultCatalogSyncSchedulerConfig returns default configuration
func DefaultCatalogSyncSchedulerConfig() CatalogSyncSchedulerConfig {
	return CatalogSyncSchedulerConfig{
		Interval:       6 * time.Hour,
		RunTimeout:     30 * time.Minute,
		DedupAfterSync: true,
	}
}

// Validate validates the configuration
func (c *CatalogSyncSchedulerConfig) Validate() error {
	if c.Interval <= 0 {
		return ErrInvalidConfig
	}
	if c.RunTimeout <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// CatalogSyncScheduler triggers full catalog syncs on a fixed interval.
// The first pass runs immediately on Start so a fresh deployment does not
// wait a full interval for its catalog.
type CatalogSyncScheduler struct {
	config CatalogSyncSchedulerConfig
	syncer CatalogSyncer
	dedup  Deduplicator
	logger *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewCatalogSyncScheduler creates a new catalog sync scheduler
func NewCatalogSyncScheduler(config CatalogSyncSchedulerConfig, syncer CatalogSyncer, dedup Deduplicator, logger *zap.Logger) (*CatalogSyncScheduler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &CatalogSyncScheduler{
		config: config,
		syncer: syncer,
		dedup:  dedup,
		logger: logger,
	}, nil
}

// Start starts the scheduler
func (s *CatalogSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Catalog sync scheduler started",
		zap.Duration("interval", s.config.Interval),
		zap.Duration("run_timeout", s.config.RunTimeout),
		zap.Bool("dedup_after_sync", s.config.DedupAfterSync),
	)

	return nil
}

// Stop gracefully stops the scheduler
func (s *CatalogSyncScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Catalog sync scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Catalog sync scheduler stop timed out")
		return ctx.Err()
	}
}

// runLoop runs an initial sync pass, then one per interval tick
func (s *CatalogSyncScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	s.runOnce(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

// runOnce executes a single sync pass with a timeout
func (s *CatalogSyncScheduler) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.RunTimeout)
	defer cancel()

	report, err := s.syncer.SyncAll(runCtx)
	if err != nil {
		s.logger.Error("Scheduled catalog sync failed", zap.Error(err))
		return
	}

	failed := 0
	for _, pr := range report.Providers {
		if pr.Failed() {
			failed++
		}
	}

	s.logger.Info("Scheduled catalog sync completed",
		zap.Int("providers", len(report.Providers)),
		zap.Int("providers_failed", failed),
		zap.Int64("categories_unified", report.CategoriesUnified),
		zap.Duration("duration", report.Duration),
	)

	if !s.config.DedupAfterSync {
		return
	}

	dedupReport, err := s.dedup.Deduplicate(runCtx)
	if err != nil {
		s.logger.Error("Post-sync deduplication failed", zap.Error(err))
		return
	}

	s.logger.Info("Post-sync deduplication completed",
		zap.Int("groups_resolved", dedupReport.GroupsResolved),
		zap.Int64("services_deactivated", dedupReport.ServicesDeactivated),
		zap.Duration("duration", dedupReport.Duration),
	)
}
