package cache

import (
	"container/list"
	"context"
	"sync"
)

// MemoryIndex is the in-process Index implementation: an insertion-ordered
// map with strict FIFO eviction once the configured capacity is exceeded.
// A single RWMutex guards all mutation and iteration; at the intended
// scale (low thousands of entries) the linear scan is sub-millisecond and
// finer-grained locking would buy nothing.
type MemoryIndex struct {
	mu      sync.RWMutex
	maxSize int
	order   *list.List // Entry values, front = oldest insertion
	byKey   map[string]*list.Element
	onEvict func(Entry)
}

// MemoryOption configures a MemoryIndex.
type MemoryOption func(*MemoryIndex)

// WithOnEvict registers a hook invoked for every evicted entry. The hook
// runs while the index lock is held and must not call back into the index.
func WithOnEvict(fn func(Entry)) MemoryOption {
	return func(m *MemoryIndex) {
		m.onEvict = fn
	}
}

// NewMemoryIndex creates an in-memory index holding at most maxSize entries.
func NewMemoryIndex(maxSize int, opts ...MemoryOption) (*MemoryIndex, error) {
	if maxSize <= 0 {
		return nil, ErrInvalidMaxSize
	}
	m := &MemoryIndex{
		maxSize: maxSize,
		order:   list.New(),
		byKey:   make(map[string]*list.Element),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Add inserts e at the newest position. An exact-key collision overwrites
// the prior entry and moves it to the newest position, refreshing its
// recency for eviction. Eviction then removes oldest entries until the
// size invariant holds again; the loop form keeps the invariant correct
// even if SetMaxSize shrank the capacity since the last insert.
func (m *MemoryIndex) Add(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.byKey[e.Key]; ok {
		el.Value = e
		m.order.MoveToBack(el)
	} else {
		m.byKey[e.Key] = m.order.PushBack(e)
	}

	for m.order.Len() > m.maxSize {
		oldest := m.order.Front()
		evicted := oldest.Value.(Entry)
		m.order.Remove(oldest)
		delete(m.byKey, evicted.Key)
		if m.onEvict != nil {
			m.onEvict(evicted)
		}
	}
	return nil
}

// Nearest scans all entries matching fingerprint and returns the one with
// the highest cosine similarity. Iteration is in insertion order and a
// later entry must be strictly better to displace the current best, so
// exact ties favor older entries.
func (m *MemoryIndex) Nearest(_ context.Context, fingerprint string, vector []float32) (Entry, float64, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var (
		best      Entry
		bestScore float64
		found     bool
	)
	for el := m.order.Front(); el != nil; el = el.Next() {
		e := el.Value.(Entry)
		if e.Params.Fingerprint() != fingerprint {
			continue
		}
		score := Cosine(vector, e.Embedding)
		if !found || score > bestScore {
			best = e
			bestScore = score
			found = true
		}
	}
	return best, bestScore, found, nil
}

// Clear removes all entries.
func (m *MemoryIndex) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.order.Init()
	m.byKey = make(map[string]*list.Element)
	return nil
}

// Len returns the current entry count.
func (m *MemoryIndex) Len(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.order.Len(), nil
}

// SetMaxSize changes the capacity. Shrinking does not evict immediately;
// the next Add restores the invariant.
func (m *MemoryIndex) SetMaxSize(maxSize int) error {
	if maxSize <= 0 {
		return ErrInvalidMaxSize
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxSize = maxSize
	return nil
}

// Ensure MemoryIndex implements Index
var _ Index = (*MemoryIndex)(nil)
