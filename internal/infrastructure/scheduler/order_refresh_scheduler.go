package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// OrderRefresher refreshes open orders against their providers
type OrderRefresher interface {
	RefreshOpenOrders(ctx context.Context, limit int) (refreshed, failed int, err error)
}

// OrderRefreshSchedulerConfig holds configuration for the open-order poller
type OrderRefreshSchedulerConfig struct {
	// PollInterval is how often the open-order worklist is walked
	PollInterval time.Duration
	// BatchSize is the maximum number of open orders refreshed per pass
	BatchSize int
	// RunTimeout is the maximum time a single pass can take
	RunTimeout time.Duration
}

// DefaultOrderRefreshSchedulerConfig returns default configuration
func DefaultOrderRefreshSchedulerConfig() OrderRefreshSchedulerConfig {
	return OrderRefreshSchedulerConfig{
		PollInterval: 5 * time.Minute,
		BatchSize:    200,
		RunTimeout:   4 * time.Minute,
	}
}

// Validate validates the configuration
func (c *OrderRefreshSchedulerConfig) Validate() error {
	if c.PollInterval <= 0 {
		return ErrInvalidConfig
	}
	if c.BatchSize <= 0 {
		return ErrInvalidConfig
	}
	if c.RunTimeout <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// OrderRefreshScheduler walks the open-order worklist on a fixed interval
type OrderRefreshScheduler struct {
	config    OrderRefreshSchedulerConfig
	refresher OrderRefresher
	logger    *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewOrderRefreshScheduler creates a new open-order refresh scheduler
func NewOrderRefreshScheduler(config OrderRefreshSchedulerConfig, refresher OrderRefresher, logger *zap.Logger) (*OrderRefreshScheduler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &OrderRefreshScheduler{
		config:    config,
		refresher: refresher,
		logger:    logger,
	}, nil
}

// Start starts the scheduler
func (s *OrderRefreshScheduler) Start(ctx context.Context) error {
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

	s.logger.Info("Order refresh scheduler started",
		zap.Duration("poll_interval", s.config.PollInterval),
		zap.Int("batch_size", s.config.BatchSize),
	)

	return nil
}

// Stop gracefully stops the scheduler
func (s *OrderRefreshScheduler) Stop(ctx context.Context) error {
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
		s.logger.Info("Order refresh scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Order refresh scheduler stop timed out")
		return ctx.Err()
	}
}

// runLoop polls the worklist once per interval tick
func (s *OrderRefreshScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.PollInterval)
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

// runOnce executes a single refresh pass with a timeout
func (s *OrderRefreshScheduler) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.RunTimeout)
	defer cancel()

	refreshed, failed, err := s.refresher.RefreshOpenOrders(runCtx, s.config.BatchSize)
	if err != nil {
		s.logger.Error("Open order refresh pass failed", zap.Error(err))
		return
	}

	if refreshed == 0 && failed == 0 {
		return
	}

	s.logger.Info("Open order refresh pass completed",
		zap.Int("refreshed", refreshed),
		zap.Int("failed", failed),
	)
}
