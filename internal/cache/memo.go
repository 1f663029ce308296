package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type memoKey struct {
	userID string
	year   int
}

type memoEntry[T any] struct {
	key       memoKey
	asOf      string
	value     T
	expiresAt time.Time
}

// Memo is an LRU with TTL keyed by (user, year). Each entry remembers the
// calendar day it was computed on and is ignored once that day has passed.
type Memo[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	now     func() time.Time
	items   map[memoKey]*list.Element
	byUser  map[string]map[int]struct{}
	gens    map[string]uint64
	lru     *list.List
}

// NewMemo creates a memo holding at most maxSize entries for ttl each.
func NewMemo[T any](maxSize int, ttl time.Duration) *Memo[T] {
	if maxSize <= 0 {
		maxSize = 1024
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Memo[T]{
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
		items:   make(map[memoKey]*list.Element),
		byUser:  make(map[string]map[int]struct{}),
		gens:    make(map[string]uint64),
		lru:     list.New(),
	}
}

func dayStamp(t time.Time) string {
	return t.Format("2006-01-02")
}

// Get returns the value computed for (userID, year) on the same calendar day as asOf.
func (m *Memo[T]) Get(userID string, year int, asOf time.Time) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	elem, ok := m.items[memoKey{userID: userID, year: year}]
	if !ok {
		return zero, false
	}
	entry := elem.Value.(*memoEntry[T])
	if m.now().After(entry.expiresAt) || entry.asOf != dayStamp(asOf) {
		m.removeElement(elem)
		return zero, false
	}
	m.lru.MoveToFront(elem)
	return entry.value, true
}

// Generation returns userID's invalidation counter. Read it before computing
// a value and hand it to SetIfGeneration.
func (m *Memo[T]) Generation(userID string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gens[userID]
}

// Set stores value for (userID, year) as computed on asOf's calendar day.
func (m *Memo[T]) Set(userID string, year int, asOf time.Time, value T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(userID, year, asOf, value)
}

// SetIfGeneration stores value only if userID has not been invalidated since
// gen was read. It reports whether the value was stored.
func (m *Memo[T]) SetIfGeneration(userID string, year int, gen uint64, asOf time.Time, value T) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gens[userID] != gen {
		return false
	}
	m.set(userID, year, asOf, value)
	return true
}

func (m *Memo[T]) set(userID string, year int, asOf time.Time, value T) {
	key := memoKey{userID: userID, year: year}
	entry := &memoEntry[T]{
		key:       key,
		asOf:      dayStamp(asOf),
		value:     value,
		expiresAt: m.now().Add(m.ttl),
	}

	if elem, ok := m.items[key]; ok {
		elem.Value = entry
		m.lru.MoveToFront(elem)
		return
	}

	m.items[key] = m.lru.PushFront(entry)
	years, ok := m.byUser[userID]
	if !ok {
		years = make(map[int]struct{})
		m.byUser[userID] = years
	}
	years[year] = struct{}{}

	if m.lru.Len() > m.maxSize {
		if oldest := m.lru.Back(); oldest != nil {
			m.removeElement(oldest)
		}
	}
}

// Invalidate drops every year memoized for userID and bumps its generation.
func (m *Memo[T]) Invalidate(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gens[userID]++
	for year := range m.byUser[userID] {
		if elem, ok := m.items[memoKey{userID: userID, year: year}]; ok {
			m.removeElement(elem)
		}
	}
	delete(m.byUser, userID)
	return nil
}

// CleanExpired removes expired entries and returns how many were dropped.
func (m *Memo[T]) CleanExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	var stale []*list.Element
	for elem := m.lru.Front(); elem != nil; elem = elem.Next() {
		if now.After(elem.Value.(*memoEntry[T]).expiresAt) {
			stale = append(stale, elem)
		}
	}
	for _, elem := range stale {
		m.removeElement(elem)
	}
	return len(stale)
}

// Len returns the number of memoized entries.
func (m *Memo[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *Memo[T]) removeElement(elem *list.Element) {
	entry := elem.Value.(*memoEntry[T])
	delete(m.items, entry.key)
	if years, ok := m.byUser[entry.key.userID]; ok {
		delete(years, entry.key.year)
		if len(years) == 0 {
			delete(m.byUser, entry.key.userID)
		}
	}
	m.lru.Remove(elem)
}
