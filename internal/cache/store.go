// Package cache implements the gateway's in-memory response cache: a fixed
// set of named TTL stores, deterministic key derivation, a cache-aside call
// wrapper, and CDN cache-control header synthesis.
package cache

import (
	"container/list"
	"sync"
	"time"
)

type entry struct {
	key       string
	value     []byte
	expiresAt time.Time
}

// Store is a bounded in-memory TTL cache for one category. Entries expire
// lazily on read; insertion past capacity evicts the oldest surviving entry.
// Safe for concurrent use.
type Store struct {
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
	items      map[string]*list.Element
	queue      *list.List // front = oldest insertion, back = newest

	hits   uint64
	misses uint64

	now func() time.Time
}

// CategoryStats is a point-in-time snapshot of one category.
type CategoryStats struct {
	Size       int    `json:"size"`
	MaxEntries int    `json:"maxEntries"`
	TTLSeconds int    `json:"ttlSeconds"`
	Hits       uint64 `json:"hits"`
	Misses     uint64 `json:"misses"`
}

func NewStore(maxEntries int, ttl time.Duration) *Store {
	return &Store{
		maxEntries: maxEntries,
		ttl:        ttl,
		items:      make(map[string]*list.Element),
		queue:      list.New(),
		now:        time.Now,
	}
}

// Get returns the stored value for key, or false when the key is absent or
// its age exceeds the TTL at the moment of the call. Expired entries are
// removed on the way out.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.items[key]
	if !ok {
		s.misses++
		return nil, false
	}

	e := elem.Value.(*entry)
	if s.now().After(e.expiresAt) {
		s.removeElement(elem)
		s.misses++
		return nil, false
	}

	s.hits++
	// return a copy to avoid external mutation
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true
}

// Set inserts or overwrites. An overwrite re-enters the eviction queue at
// the back and gets a fresh expiry.
func (s *Store) Set(key string, value []byte) {
	b := make([]byte, len(value))
	copy(b, value)

	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.items[key]; ok {
		s.removeElement(elem)
	} else if s.queue.Len() >= s.maxEntries {
		s.evictOldest()
	}

	e := &entry{key: key, value: b, expiresAt: s.now().Add(s.ttl)}
	s.items[key] = s.queue.PushBack(e)
}

// Clear drops every entry and returns how many were removed.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.queue.Len()
	s.items = make(map[string]*list.Element)
	s.queue.Init()
	return n
}

// Stats prunes expired entries first so the reported size counts only
// entries that would still be served as hits.
func (s *Store) Stats() CategoryStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for elem := s.queue.Front(); elem != nil; {
		next := elem.Next()
		if now.After(elem.Value.(*entry).expiresAt) {
			s.removeElement(elem)
		}
		elem = next
	}

	return CategoryStats{
		Size:       s.queue.Len(),
		MaxEntries: s.maxEntries,
		TTLSeconds: int(s.ttl.Seconds()),
		Hits:       s.hits,
		Misses:     s.misses,
	}
}

// TTL returns the category's configured time-to-live.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

func (s *Store) evictOldest() {
	if elem := s.queue.Front(); elem != nil {
		s.removeElement(elem)
	}
}

func (s *Store) removeElement(elem *list.Element) {
	s.queue.Remove(elem)
	delete(s.items, elem.Value.(*entry).key)
}
