package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"marketd/internal/cache"
)

func TestHealthEndpoint(t *testing.T) {
	_, app := newTestAPI(&stubUpstream{})

	resp, body := doReq(t, app, http.MethodGet, "/api/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}

	var h struct {
		Status     string                         `json:"status"`
		Timestamp  string                         `json:"timestamp"`
		CacheStats map[string]cache.CategoryStats `json:"cache_stats"`
	}
	if err := json.Unmarshal(body, &h); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if h.Status != "healthy" || h.Timestamp == "" {
		t.Fatalf("health=%+v", h)
	}
	if len(h.CacheStats) != 4 {
		t.Fatalf("categories=%d want 4", len(h.CacheStats))
	}
}

func TestClearCache_Scoping(t *testing.T) {
	api, app := newTestAPI(&stubUpstream{})

	// populate two categories
	doReq(t, app, http.MethodGet, "/api/markets")
	doReq(t, app, http.MethodGet, "/api/tickers/vanry")

	resp, body := doReq(t, app, http.MethodPost, "/api/admin/clear-cache?cache_type=markets")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	var out struct {
		CacheType string `json:"cache_type"`
		Cleared   int    `json:"cleared"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.CacheType != "markets" || out.Cleared != 1 {
		t.Fatalf("clear=%+v", out)
	}

	// tickers entry survived
	if st := api.registry.Stats()[cache.CategoryTickers]; st.Size != 1 {
		t.Fatalf("tickers size=%d want 1", st.Size)
	}

	// clearing everything reports the remaining entry
	_, body = doReq(t, app, http.MethodPost, "/api/admin/clear-cache")
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.CacheType != "all" || out.Cleared != 1 {
		t.Fatalf("clear all=%+v", out)
	}

	// unknown categories are a no-op, not an error
	resp, body = doReq(t, app, http.MethodPost, "/api/admin/clear-cache?cache_type=bogus")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Cleared != 0 {
		t.Fatalf("bogus clear=%+v", out)
	}
}

func TestCacheStatsEndpoint(t *testing.T) {
	_, app := newTestAPI(&stubUpstream{})

	doReq(t, app, http.MethodGet, "/api/markets")
	doReq(t, app, http.MethodGet, "/api/markets") // hit

	resp, body := doReq(t, app, http.MethodGet, "/api/admin/cache-stats")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}

	var out struct {
		Stats map[string]cache.CategoryStats `json:"stats"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	st := out.Stats[cache.CategoryMarkets]
	if st.Size != 1 || st.MaxEntries != 100 || st.TTLSeconds != 30 {
		t.Fatalf("markets stats=%+v", st)
	}
	if st.Hits != 1 || st.Misses != 1 {
		t.Fatalf("hits=%d misses=%d", st.Hits, st.Misses)
	}
}
