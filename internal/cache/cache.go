// Package cache holds read-through caches for raw provider responses.
package cache

import (
	"context"
	"sync"
	"time"
)

// Cache stores raw provider response bodies by request key.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// entry stores one cached body with expiry.
type entry struct {
	expiresAt time.Time
	body      []byte
}

// Memory is a process-local TTL cache with a soft size cap.
type Memory struct {
	TTL      time.Duration
	MaxItems int

	now   func() time.Time
	mu    sync.RWMutex
	items map[string]entry
}

// NewMemory creates an in-memory cache. A non-positive ttl disables caching.
func NewMemory(ttl time.Duration, maxItems int) *Memory {
	return &Memory{
		TTL:      ttl,
		MaxItems: maxItems,
		now:      time.Now,
		items:    make(map[string]entry),
	}
}

// Get returns the cached body for key if present and not expired.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.TTL <= 0 {
		return nil, false, nil
	}

	m.mu.RLock()
	e, ok := m.items[key]
	m.mu.RUnlock()

	if !ok || !m.now().Before(e.expiresAt) {
		return nil, false, nil
	}
	return e.body, true, nil
}

// Set stores body under key until TTL elapses.
func (m *Memory) Set(_ context.Context, key string, body []byte) error {
	if m.TTL <= 0 {
		return nil
	}

	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = entry{expiresAt: now.Add(m.TTL), body: body}

	// best-effort cap: drop expired entries first, then arbitrary ones
	if m.MaxItems > 0 && len(m.items) > m.MaxItems {
		for k, v := range m.items {
			if !now.Before(v.expiresAt) {
				delete(m.items, k)
			}
		}
		for k := range m.items {
			if len(m.items) <= m.MaxItems {
				break
			}
			if k == key {
				continue
			}
			delete(m.items, k)
		}
	}
	return nil
}

// Len reports the number of stored entries, expired or not.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
