package cache

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/sync/singleflight"

	"marketd/internal/apperrors"
)

// FetchFunc produces a fresh response payload on a cache miss.
type FetchFunc func(ctx context.Context) (any, error)

// Call identifies one cacheable invocation for key derivation. Parameters
// are passed as typed primitives; there is no runtime filtering of opaque
// framework objects.
type Call struct {
	Op     string
	Prefix string
	Args   []string
	Named  map[string]string
}

// Result is the outcome of a cached call: the JSON payload, the cache
// headers to attach, and whether it was served from the store.
type Result struct {
	Body    []byte
	Headers []Header
	Hit     bool
}

// Observer receives best-effort hit/miss notifications per category.
type Observer interface {
	CacheHit(category string)
	CacheMiss(category string)
}

// Cacher is the sole point of cache interaction for request handlers.
// Concurrent misses for the same key are collapsed into one upstream call.
type Cacher struct {
	reg      *Registry
	group    singleflight.Group
	observer Observer
}

func NewCacher(reg *Registry, observer Observer) *Cacher {
	return &Cacher{reg: reg, observer: observer}
}

// Do serves the call from the category store on a hit; on a miss it runs
// fetch, JSON-encodes the payload, stores it and serves it. Fetch failures
// propagate untouched and are never stored; there is no stale-on-error
// fallback. The ttl argument only shapes the response headers — entry
// expiry follows the category's configured TTL.
func (c *Cacher) Do(ctx context.Context, category string, ttl time.Duration, call Call, fetch FetchFunc) (Result, error) {
	key := DeriveKey(call.Op, call.Prefix, call.Args, call.Named)
	store := c.reg.Category(category)

	if b, ok := store.Get(key); ok {
		if c.observer != nil {
			c.observer.CacheHit(category)
		}
		return Result{Body: b, Headers: HeadersFor(ttl), Hit: true}, nil
	}
	if c.observer != nil {
		c.observer.CacheMiss(category)
	}

	v, err, _ := c.group.Do(category+":"+key, func() (any, error) {
		payload, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, apperrors.NewSerialization("encode response payload", err)
		}
		store.Set(key, b)
		return b, nil
	})
	if err != nil {
		return Result{}, err
	}

	return Result{Body: v.([]byte), Headers: HeadersFor(ttl), Hit: false}, nil
}
