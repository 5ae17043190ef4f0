package repository

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// DefaultMemoryCacheEntries bounds a MemoryCache built with maxEntries <= 0.
const DefaultMemoryCacheEntries = 10_000

type memoryEntry struct {
	key       string
	value     string
	expiresAt time.Time // zero means no expiry
}

// MemoryCache is a process-local CacheRepository. Entries expire after ttl
// and, once maxEntries is reached, the oldest entry is evicted on Set.
type MemoryCache struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	entries    map[string]*list.Element
	order      *list.List // oldest write at the front
	now        func() time.Time
}

// NewMemoryCache creates a cache. A ttl <= 0 keeps entries until evicted.
func NewMemoryCache(ttl time.Duration, maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoryCacheEntries
	}
	return &MemoryCache{
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		now:        time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.entries[key]
	if !ok {
		return "", false
	}
	entry := elem.Value.(*memoryEntry)
	if m.expired(entry) {
		m.remove(elem)
		return "", false
	}
	return entry.value, true
}

func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expiresAt time.Time
	if m.ttl > 0 {
		expiresAt = m.now().Add(m.ttl)
	}

	if elem, ok := m.entries[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.value = value
		entry.expiresAt = expiresAt
		m.order.MoveToBack(elem)
		return nil
	}

	m.purgeExpired()
	for m.order.Len() >= m.maxEntries {
		m.remove(m.order.Front())
	}

	m.entries[key] = m.order.PushBack(&memoryEntry{key: key, value: value, expiresAt: expiresAt})
	return nil
}

// Len returns the number of stored entries, expired ones included until
// the next Set purges them.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

func (m *MemoryCache) expired(entry *memoryEntry) bool {
	return !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt)
}

// purgeExpired drops expired entries from the front. Every write shares the
// same ttl, so write order is expiry order.
func (m *MemoryCache) purgeExpired() {
	for elem := m.order.Front(); elem != nil; elem = m.order.Front() {
		if !m.expired(elem.Value.(*memoryEntry)) {
			return
		}
		m.remove(elem)
	}
}

func (m *MemoryCache) remove(elem *list.Element) {
	entry := m.order.Remove(elem).(*memoryEntry)
	delete(m.entries, entry.key)
}
