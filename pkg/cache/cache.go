package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type item struct {
	value string
	exp   time.Time // zero = no expiry
}

type entry struct {
	key  string
	item item
	elem *list.Element
}

// Memory is an in-process TTL store with optional LRU capacity.
type Memory struct {
	mu       sync.Mutex
	items    map[string]*entry
	order    *list.List // MRU at front, LRU at back
	maxItems int        // 0 = unlimited
	now      func() time.Time
	stop     chan struct{}
	closed   bool
}

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithMaxItems caps the number of entries; the least recently used one is evicted.
// Keep it at 0 for revocation data: an evicted entry would un-revoke a token early.
func WithMaxItems(n int) MemoryOption {
	return func(m *Memory) {
		if n < 0 {
			n = 0
		}
		m.maxItems = n
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

// NewMemory returns an empty store. When janitor > 0 a goroutine purges
// expired entries on that interval until Close.
func NewMemory(janitor time.Duration, opts ...MemoryOption) *Memory {
	m := &Memory{
		items: make(map[string]*entry),
		order: list.New(),
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	if janitor > 0 {
		go m.janitor(janitor)
	}
	return m
}

// Get returns the value if present and not expired.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", false, ErrClosed
	}

	e, ok := m.items[key]
	if !ok {
		return "", false, nil
	}
	if m.expired(e.item, m.now()) {
		// lazy delete
		m.removeNoLock(key)
		return "", false, nil
	}
	m.order.MoveToFront(e.elem)
	return e.item.value, true, nil
}

// Set stores a value. ttl <= 0 means no expiry.
func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	var exp time.Time
	if ttl > 0 {
		exp = m.now().Add(ttl)
	}
	if e, ok := m.items[key]; ok {
		e.item = item{value: value, exp: exp}
		m.order.MoveToFront(e.elem)
		return nil
	}

	e := &entry{key: key, item: item{value: value, exp: exp}}
	e.elem = m.order.PushFront(e)
	m.items[key] = e
	if m.maxItems > 0 && m.order.Len() > m.maxItems {
		m.evictLRUNoLock()
	}
	return nil
}

// Delete removes a key.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.removeNoLock(key)
	return nil
}

// Len reports the number of stored entries, expired ones included until purged.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close stops the janitor. Later calls fail with ErrClosed.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	close(m.stop)
	return nil
}

// Purge drops every expired entry.
func (m *Memory) Purge() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for k, e := range m.items {
		if m.expired(e.item, now) {
			m.removeNoLock(k)
		}
	}
}

func (m *Memory) janitor(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			m.Purge()
		case <-m.stop:
			return
		}
	}
}

func (m *Memory) expired(it item, now time.Time) bool {
	return !it.exp.IsZero() && !now.Before(it.exp)
}

// removeNoLock removes key from map/list; caller must hold m.mu.
func (m *Memory) removeNoLock(key string) {
	if e, ok := m.items[key]; ok {
		m.order.Remove(e.elem)
		delete(m.items, key)
	}
}

// evictLRUNoLock removes one LRU entry; caller must hold m.mu.
func (m *Memory) evictLRUNoLock() {
	back := m.order.Back()
	if back == nil {
		return
	}
	m.order.Remove(back)
	if e, ok := back.Value.(*entry); ok {
		delete(m.items, e.key)
	}
}

var _ ClosableStore = (*Memory)(nil)
