package cache

import (
	"fmt"
	"testing"
	"time"
)

// fakeClock lets tests advance time without sleeping.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(maxEntries int, ttl time.Duration) (*Store, *fakeClock) {
	clock := newFakeClock()
	s := NewStore(maxEntries, ttl)
	s.now = clock.Now
	return s, clock
}

func TestStore_TTLExpiry(t *testing.T) {
	s, clock := newTestStore(10, 30*time.Second)

	s.Set("k", []byte("v"))

	b, ok := s.Get("k")
	if !ok || string(b) != "v" {
		t.Fatalf("ok=%v b=%q", ok, string(b))
	}

	clock.Advance(29 * time.Second)
	if _, ok := s.Get("k"); !ok {
		t.Fatal("entry expired before TTL elapsed")
	}

	clock.Advance(2 * time.Second)
	if _, ok := s.Get("k"); ok {
		t.Fatal("expected expired key")
	}
}

func TestStore_CapacityEviction(t *testing.T) {
	s, _ := newTestStore(3, time.Minute)

	for i := 0; i < 4; i++ {
		s.Set(fmt.Sprintf("k%d", i), []byte("v"))
	}

	if got := s.Stats().Size; got != 3 {
		t.Fatalf("size=%d want 3", got)
	}
	if _, ok := s.Get("k0"); ok {
		t.Fatal("oldest entry should have been evicted")
	}
	for _, k := range []string{"k1", "k2", "k3"} {
		if _, ok := s.Get(k); !ok {
			t.Fatalf("entry %q unexpectedly missing", k)
		}
	}
}

func TestStore_OverwriteRefreshesEntry(t *testing.T) {
	s, clock := newTestStore(2, 30*time.Second)

	s.Set("a", []byte("1"))
	s.Set("b", []byte("2"))

	clock.Advance(20 * time.Second)
	s.Set("a", []byte("1b"))

	// "a" was re-inserted, so inserting a third key must evict "b".
	s.Set("c", []byte("3"))
	if _, ok := s.Get("b"); ok {
		t.Fatal("expected b to be evicted as oldest")
	}

	// the overwrite also reset a's expiry
	clock.Advance(20 * time.Second)
	b, ok := s.Get("a")
	if !ok || string(b) != "1b" {
		t.Fatalf("ok=%v b=%q", ok, string(b))
	}
}

func TestStore_ClearAndStats(t *testing.T) {
	s, clock := newTestStore(10, 30*time.Second)

	s.Set("a", []byte("1"))
	s.Set("b", []byte("2"))

	s.Get("a")       // hit
	s.Get("missing") // miss

	st := s.Stats()
	if st.Size != 2 || st.MaxEntries != 10 || st.TTLSeconds != 30 {
		t.Fatalf("stats=%+v", st)
	}
	if st.Hits != 1 || st.Misses != 1 {
		t.Fatalf("hits=%d misses=%d", st.Hits, st.Misses)
	}

	// expired entries don't count toward size
	clock.Advance(time.Minute)
	if got := s.Stats().Size; got != 0 {
		t.Fatalf("size after expiry=%d want 0", got)
	}

	s.Set("c", []byte("3"))
	if n := s.Clear(); n != 1 {
		t.Fatalf("cleared=%d want 1", n)
	}
	if _, ok := s.Get("c"); ok {
		t.Fatal("entry survived Clear")
	}
}

func TestStore_GetReturnsCopy(t *testing.T) {
	s, _ := newTestStore(10, time.Minute)

	s.Set("k", []byte("abc"))
	b, _ := s.Get("k")
	b[0] = 'x'

	b2, _ := s.Get("k")
	if string(b2) != "abc" {
		t.Fatalf("stored value mutated: %q", string(b2))
	}
}
