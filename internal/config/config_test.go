package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Gateway.Addr() != ":8080" {
		t.Fatalf("unexpected gateway address: %q", cfg.Gateway.Addr())
	}
	if cfg.Cache.MarketsTTLSec != 30 {
		t.Fatalf("markets ttl = %d, want 30", cfg.Cache.MarketsTTLSec)
	}
	if cfg.Cache.ChartsTTLSec != 60 {
		t.Fatalf("charts ttl = %d, want 60", cfg.Cache.ChartsTTLSec)
	}
	if cfg.Cache.TickersTTLSec != 30 {
		t.Fatalf("tickers ttl = %d, want 30", cfg.Cache.TickersTTLSec)
	}
	if cfg.Upstream.BaseURL != "https://api.coingecko.com/api/v3" {
		t.Fatalf("unexpected upstream base url: %q", cfg.Upstream.BaseURL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CACHE_TTL_MARKETS", "5")
	t.Setenv("CACHE_TTL_CHARTS", "120")
	t.Setenv("COINGECKO_API_KEY", "cg-test-key")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Cache.MarketsTTLSec != 5 {
		t.Fatalf("markets ttl = %d, want 5", cfg.Cache.MarketsTTLSec)
	}
	if cfg.Cache.ChartsTTLSec != 120 {
		t.Fatalf("charts ttl = %d, want 120", cfg.Cache.ChartsTTLSec)
	}
	if cfg.Upstream.APIKey != "cg-test-key" {
		t.Fatalf("api key = %q", cfg.Upstream.APIKey)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
gateway:
  address: ":9090"
cache:
  markets_ttl_sec: 10
  markets_entries: 3
upstream:
  base_url: "http://upstream.local/api/v3"
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Gateway.Addr() != ":9090" {
		t.Fatalf("address = %q, want :9090", cfg.Gateway.Addr())
	}
	if cfg.Cache.MarketsTTLSec != 10 || cfg.Cache.MarketsEntries != 3 {
		t.Fatalf("markets cache = (%d, %d)", cfg.Cache.MarketsTTLSec, cfg.Cache.MarketsEntries)
	}
	if cfg.Upstream.BaseURL != "http://upstream.local/api/v3" {
		t.Fatalf("base url = %q", cfg.Upstream.BaseURL)
	}
}

func TestPretty(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	out, err := cfg.Pretty()
	if err != nil {
		t.Fatalf("Pretty returned error: %v", err)
	}
	if out == "" {
		t.Fatal("Pretty returned empty string")
	}
}
