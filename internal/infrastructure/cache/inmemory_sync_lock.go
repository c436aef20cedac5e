package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemorySyncLock is the single-process fallback used when Redis is not
// configured. Semantics match RedisSyncLock, including TTL expiry of
// abandoned locks.
type InMemorySyncLock struct {
	mu    sync.Mutex
	ttl   time.Duration
	held  map[uuid.UUID]time.Time
	clock func() time.Time
}

// NewInMemorySyncLock creates an in-memory sync lock
func NewInMemorySyncLock(ttl time.Duration) *InMemorySyncLock {
	return &InMemorySyncLock{
		ttl:   ttl,
		held:  make(map[uuid.UUID]time.Time),
		clock: time.Now,
	}
}

// Acquire takes the sync lock for a provider. Returns false when another
// sync already holds it and the hold has not expired.
func (l *InMemorySyncLock) Acquire(_ context.Context, providerID uuid.UUID) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if expiry, ok := l.held[providerID]; ok && now.Before(expiry) {
		return false, nil
	}
	l.held[providerID] = now.Add(l.ttl)
	return true, nil
}

// Release frees the lock
func (l *InMemorySyncLock) Release(_ context.Context, providerID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, providerID)
	return nil
}
