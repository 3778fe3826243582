package cache

import (
	"context"
	"sync"
	"time"

	"github.com/nerva-io/nerva/types"
)

type memoryEntry struct {
	value     interface{}
	expiresAt time.Time
}

type MemoryCache struct {
	ctx        context.Context
	logger     types.Logger
	defaultTTL time.Duration
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	done       chan struct{}
	closeOnce  sync.Once
}

func NewMemoryCache(ctx context.Context, config *types.CacheConfig, logger types.Logger) *MemoryCache {
	defaultTTL := config.DefaultTTL
	if defaultTTL <= 0 {
		defaultTTL = time.Hour
	}

	cache := &MemoryCache{
		ctx:        ctx,
		logger:     logger,
		defaultTTL: defaultTTL,
		entries:    make(map[string]memoryEntry),
		done:       make(chan struct{}),
	}

	go cache.janitor()

	return cache
}

func (m *MemoryCache) Get(key string) (interface{}, bool) {
	if key == "" {
		return nil, false
	}

	m.mu.RLock()
	entry, exists := m.entries[key]
	m.mu.RUnlock()

	if !exists || time.Now().After(entry.expiresAt) {
		return nil, false
	}

	return entry.value, true
}

func (m *MemoryCache) Set(key string, value interface{}, ttl time.Duration) error {
	if key == "" {
		return types.ErrCacheKeyEmpty
	}

	if ttl <= 0 {
		ttl = m.defaultTTL
	}

	m.mu.Lock()
	m.entries[key] = memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	m.mu.Unlock()

	return nil
}

func (m *MemoryCache) Delete(key string) error {
	if key == "" {
		return types.ErrCacheKeyEmpty
	}

	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()

	return nil
}

func (m *MemoryCache) Ping(_ context.Context) error {
	return nil
}

func (m *MemoryCache) Close() error {
	m.closeOnce.Do(func() {
		close(m.done)
	})
	return nil
}

func (m *MemoryCache) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.evictExpired()
		case <-m.done:
			return
		case <-m.ctx.Done():
			return
		}
	}
}

func (m *MemoryCache) evictExpired() {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for key, entry := range m.entries {
		if now.After(entry.expiresAt) {
			delete(m.entries, key)
		}
	}
}
