// Package cache keeps the active opening of each user close at hand.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/livro_caixa/internal/core/domain"
	portsrepo "github.com/SscSPs/livro_caixa/internal/core/ports/repositories"
)

type memoryEntry struct {
	opening   domain.Opening
	expiresAt time.Time
}

// MemoryDrawerCache is a process-local DrawerCache for single instance deployments.
type MemoryDrawerCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

var _ portsrepo.DrawerCache = (*MemoryDrawerCache)(nil)

// MemoryOption configures a MemoryDrawerCache.
type MemoryOption func(*MemoryDrawerCache)

// WithMemoryClock overrides the clock used for expiry.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(c *MemoryDrawerCache) {
		c.now = now
	}
}

// NewMemoryDrawerCache builds an in-memory cache. A ttl of zero keeps entries until invalidated.
func NewMemoryDrawerCache(ttl time.Duration, opts ...MemoryOption) *MemoryDrawerCache {
	c := &MemoryDrawerCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *MemoryDrawerCache) Get(_ context.Context, userID string) (*domain.Opening, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[userID]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		c.mu.Lock()
		// Only drop the entry we saw; a fresher Set may have raced us.
		if cur, still := c.entries[userID]; still && cur.expiresAt.Equal(entry.expiresAt) {
			delete(c.entries, userID)
		}
		c.mu.Unlock()
		return nil, false, nil
	}
	opening := entry.opening
	return &opening, true, nil
}

func (c *MemoryDrawerCache) Set(_ context.Context, opening domain.Opening) error {
	entry := memoryEntry{opening: opening}
	if c.ttl > 0 {
		entry.expiresAt = c.now().Add(c.ttl)
	}
	c.mu.Lock()
	c.entries[opening.UserID] = entry
	c.mu.Unlock()
	return nil
}

func (c *MemoryDrawerCache) Invalidate(_ context.Context, userID string) error {
	c.mu.Lock()
	delete(c.entries, userID)
	c.mu.Unlock()
	return nil
}
