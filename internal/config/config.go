package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Gateway  Gateway  `yaml:"gateway"`
	Cache    Cache    `yaml:"cache"`
	Upstream Upstream `yaml:"upstream"`
	CORS     CORS     `yaml:"cors"`
}

type Gateway struct {
	Address            string `yaml:"address"              env:"GATEWAY_ADDR"             env-default:":8080"`
	ReadTimeoutSec     int    `yaml:"read_timeout_sec"     env:"GATEWAY_READ_TIMEOUT"     env-default:"15"`
	WriteTimeoutSec    int    `yaml:"write_timeout_sec"    env:"GATEWAY_WRITE_TIMEOUT"    env-default:"15"`
	IdleTimeoutSec     int    `yaml:"idle_timeout_sec"     env:"GATEWAY_IDLE_TIMEOUT"     env-default:"60"`
	ShutdownTimeoutSec int    `yaml:"shutdown_timeout_sec" env:"GATEWAY_SHUTDOWN_TIMEOUT" env-default:"15"`
}

// Cache holds per-category TTL and capacity knobs. Categories are fixed at
// startup; the registry is never repartitioned at runtime.
type Cache struct {
	MarketsTTLSec  int `yaml:"markets_ttl_sec"  env:"CACHE_TTL_MARKETS"  env-default:"30"`
	ChartsTTLSec   int `yaml:"charts_ttl_sec"   env:"CACHE_TTL_CHARTS"   env-default:"60"`
	TickersTTLSec  int `yaml:"tickers_ttl_sec"  env:"CACHE_TTL_TICKERS"  env-default:"30"`
	DefaultTTLSec  int `yaml:"default_ttl_sec"  env:"CACHE_TTL_DEFAULT"  env-default:"60"`
	MarketsEntries int `yaml:"markets_entries"  env:"CACHE_MAX_MARKETS"  env-default:"100"`
	ChartsEntries  int `yaml:"charts_entries"   env:"CACHE_MAX_CHARTS"   env-default:"500"`
	TickersEntries int `yaml:"tickers_entries"  env:"CACHE_MAX_TICKERS"  env-default:"200"`
	DefaultEntries int `yaml:"default_entries"  env:"CACHE_MAX_DEFAULT"  env-default:"100"`

	Warm     bool   `yaml:"warm"      env:"CACHE_WARM"      env-default:"false"`
	WarmCoin string `yaml:"warm_coin" env:"CACHE_WARM_COIN" env-default:"vanry"`
}

type Upstream struct {
	BaseURL    string `yaml:"base_url"    env:"COINGECKO_BASE_URL" env-default:"https://api.coingecko.com/api/v3"`
	APIKey     string `yaml:"api_key"     env:"COINGECKO_API_KEY"  env-default:""`
	TimeoutSec int    `yaml:"timeout_sec" env:"COINGECKO_TIMEOUT"  env-default:"10"`
}

type CORS struct {
	Origins string `yaml:"origins" env:"CORS_ORIGINS" env-default:"http://localhost:3000,https://localhost:3000"`
}

// Load reads an optional YAML file and applies environment overrides.
// A missing file is not an error: env-defaults carry the full configuration.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, fmt.Errorf("read config %q: %w", path, err)
			}
			return &cfg, nil
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return &cfg, nil
}

func (g Gateway) Addr() string {
	if strings.TrimSpace(g.Address) == "" {
		return ":8080"
	}
	return g.Address
}

func (u Upstream) Timeout() time.Duration {
	if u.TimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(u.TimeoutSec) * time.Second
}

// Pretty returns the YAML form of the config for startup logging.
func (c *Config) Pretty() (string, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return string(b), nil
}
