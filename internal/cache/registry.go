package cache

import (
	"time"

	"marketd/internal/config"
)

// Well-known category names. Anything else resolves to CategoryDefault.
const (
	CategoryMarkets = "markets"
	CategoryCharts  = "charts"
	CategoryTickers = "tickers"
	CategoryDefault = "default"

	// ClearAll is the pseudo-category accepted by Clear.
	ClearAll = "all"
)

// Options configures one category.
type Options struct {
	MaxEntries int
	TTL        time.Duration
}

// Registry is the process-wide set of cache categories, built once at
// startup. It is passed in explicitly so tests can construct isolated
// instances.
type Registry struct {
	categories map[string]*Store
}

// NewRegistry builds a registry from per-category options. A "default"
// category is always present.
func NewRegistry(opts map[string]Options) *Registry {
	r := &Registry{categories: make(map[string]*Store, len(opts)+1)}
	for name, o := range opts {
		r.categories[name] = NewStore(o.MaxEntries, o.TTL)
	}
	if _, ok := r.categories[CategoryDefault]; !ok {
		r.categories[CategoryDefault] = NewStore(100, 60*time.Second)
	}
	return r
}

// FromConfig builds the fixed category set used by the gateway.
func FromConfig(c config.Cache) *Registry {
	secs := func(n int) time.Duration { return time.Duration(n) * time.Second }
	return NewRegistry(map[string]Options{
		CategoryMarkets: {MaxEntries: c.MarketsEntries, TTL: secs(c.MarketsTTLSec)},
		CategoryCharts:  {MaxEntries: c.ChartsEntries, TTL: secs(c.ChartsTTLSec)},
		CategoryTickers: {MaxEntries: c.TickersEntries, TTL: secs(c.TickersTTLSec)},
		CategoryDefault: {MaxEntries: c.DefaultEntries, TTL: secs(c.DefaultTTLSec)},
	})
}

// Category returns the store for name, falling back to "default" for
// unknown names.
func (r *Registry) Category(name string) *Store {
	if s, ok := r.categories[name]; ok {
		return s
	}
	return r.categories[CategoryDefault]
}

// Clear empties the named category, or every category for "all". Unknown
// names are a no-op returning 0.
func (r *Registry) Clear(name string) int {
	if name == ClearAll {
		total := 0
		for _, s := range r.categories {
			total += s.Clear()
		}
		return total
	}
	s, ok := r.categories[name]
	if !ok {
		return 0
	}
	return s.Clear()
}

// Stats snapshots every category.
func (r *Registry) Stats() map[string]CategoryStats {
	out := make(map[string]CategoryStats, len(r.categories))
	for name, s := range r.categories {
		out[name] = s.Stats()
	}
	return out
}
