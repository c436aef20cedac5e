package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRefresher struct {
	calls     atomic.Int32
	called    chan struct{}
	lastLimit atomic.Int32
	err       error
}

func (f *fakeRefresher) RefreshOpenOrders(ctx context.Context, limit int) (int, int, error) {
	f.calls.Add(1)
	f.lastLimit.Store(int32(limit))
	select {
	case f.called <- struct{}{}:
	default:
	}
	if f.err != nil {
		return 0, 0, f.err
	}
	return 3, 1, nil
}

func testRefreshSchedulerConfig() OrderRefreshSchedulerConfig {
	return OrderRefreshSchedulerConfig{
		PollInterval: 20 * time.Millisecond,
		BatchSize:    50,
		RunTimeout:   time.Second,
	}
}

func TestOrderRefreshSchedulerConfig_Validate(t *testing.T) {
	cfg := DefaultOrderRefreshSchedulerConfig()
	assert.NoError(t, cfg.Validate())

	cfg.PollInterval = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultOrderRefreshSchedulerConfig()
	cfg.BatchSize = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestOrderRefreshScheduler_PollsWithConfiguredBatchSize(t *testing.T) {
	refresher := &fakeRefresher{called: make(chan struct{}, 1)}

	s, err := NewOrderRefreshScheduler(testRefreshSchedulerConfig(), refresher, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	waitForSignal(t, refresher.called, "expected a refresh pass on the poll tick")
	assert.Equal(t, int32(50), refresher.lastLimit.Load())
}

func TestOrderRefreshScheduler_KeepsPollingAfterFailedPass(t *testing.T) {
	refresher := &fakeRefresher{called: make(chan struct{}, 1), err: assert.AnError}

	s, err := NewOrderRefreshScheduler(testRefreshSchedulerConfig(), refresher, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	waitForSignal(t, refresher.called, "expected a refresh pass on the poll tick")
	waitForSignal(t, refresher.called, "expected polling to continue after a failed pass")
}

func TestOrderRefreshScheduler_StopHaltsPolling(t *testing.T) {
	refresher := &fakeRefresher{called: make(chan struct{}, 1)}

	s, err := NewOrderRefreshScheduler(testRefreshSchedulerConfig(), refresher, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	waitForSignal(t, refresher.called, "expected a refresh pass on the poll tick")
	require.NoError(t, s.Stop(context.Background()))

	drainDeadline := time.After(60 * time.Millisecond)
	for {
		select {
		case <-refresher.called:
		case <-drainDeadline:
			after := refresher.calls.Load()
			time.Sleep(60 * time.Millisecond)
			assert.Equal(t, after, refresher.calls.Load())
			return
		}
	}
}
