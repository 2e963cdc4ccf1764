package cache

import (
	"sync"
	"time"
)

// CounterStore is an in-memory fixed-window counter with expiration, used
// for per-session request throttling.
type CounterStore struct {
	mu    sync.Mutex
	items map[string]*counterItem
}

type counterItem struct {
	count       int
	windowStart time.Time
}

// NewCounterStore creates a new in-memory counter store
func NewCounterStore() *CounterStore {
	store := &CounterStore{
		items: make(map[string]*counterItem),
	}

	// Cleanup goroutine removes stale windows
	go store.cleanupExpired()

	return store
}

// Incr increments the counter for key within the given window and returns
// the new count plus the window start time. A new window begins when the
// previous one has elapsed.
func (cs *CounterStore) Incr(key string, window time.Duration) (int, time.Time) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	now := time.Now()
	item, exists := cs.items[key]
	if !exists || now.Sub(item.windowStart) >= window {
		item = &counterItem{count: 0, windowStart: now}
		cs.items[key] = item
	}

	item.count++
	return item.count, item.windowStart
}

// Reset removes the counter for key
func (cs *CounterStore) Reset(key string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	delete(cs.items, key)
}

// cleanupExpired periodically removes windows older than an hour
func (cs *CounterStore) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cs.mu.Lock()
		now := time.Now()
		for key, item := range cs.items {
			if now.Sub(item.windowStart) > time.Hour {
				delete(cs.items, key)
			}
		}
		cs.mu.Unlock()
	}
}
