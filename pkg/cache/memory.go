package cache

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	value    []byte
	expireAt time.Time
}

func (m *memoryItem) expired() bool {
	return time.Now().After(m.expireAt)
}

// Memory implements Service with in-process storage and a periodic cleanup
// ticker. Expired items are also dropped lazily on read.
type Memory struct {
	mu     sync.RWMutex
	data   map[string]*memoryItem
	ticker *time.Ticker
}

// NewMemory creates an in-memory cache.
func NewMemory(opts ...MemoryOption) *Memory {
	cfg := &MemoryConfig{
		CleanupInterval: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	m := &Memory{
		data:   make(map[string]*memoryItem),
		ticker: time.NewTicker(cfg.CleanupInterval),
	}
	go m.cleanupExpired()
	return m
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	item, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrCacheMiss
	}
	if item.expired() {
		m.mu.Lock()
		delete(m.data, key)
		m.mu.Unlock()
		return nil, ErrCacheMiss
	}
	return item.value, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	expireAt := time.Now().Add(ttl)
	if ttl <= 0 {
		expireAt = time.Now().Add(24 * time.Hour)
	}
	m.mu.Lock()
	m.data[key] = &memoryItem{value: value, expireAt: expireAt}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, key := range keys {
		delete(m.data, key)
	}
	m.mu.Unlock()
	return nil
}

func (m *Memory) cleanupExpired() {
	for range m.ticker.C {
		m.mu.Lock()
		for key, item := range m.data {
			if item.expired() {
				delete(m.data, key)
			}
		}
		m.mu.Unlock()
	}
}

// Close stops the cleanup ticker.
func (m *Memory) Close() error {
	if m.ticker != nil {
		m.ticker.Stop()
	}
	return nil
}
