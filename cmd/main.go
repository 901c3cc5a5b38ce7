package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"marketd/internal/cache"
	"marketd/internal/coingecko"
	"marketd/internal/config"
	"marketd/internal/metrics"
	httpserver "marketd/internal/server/http"
	"marketd/pkg/cfg"
	"marketd/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	env := cfg.String("APP_ENV", "dev")

	cleanup := logger.Setup(env)
	defer cleanup()

	configPath := cfg.String("APP_CONFIG", "config.yaml")

	conf, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	m := metrics.New()
	registry := cache.FromConfig(conf.Cache)
	cacher := cache.NewCacher(registry, m)
	upstream := coingecko.New(conf.Upstream, m)

	api := httpserver.NewAPI(conf, upstream, cacher, registry, m)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if conf.Cache.Warm {
		go func() {
			if err := httpserver.Warm(ctx, api); err != nil {
				log.Printf("cache warm-up: %v", err)
			}
		}()
	}

	srv := httpserver.New(conf, api)

	go func() {
		if err := srv.Start(ctx); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// wait for signal
	<-ctx.Done()
	// give some time for graceful shutdown
	time.Sleep(time.Second)
}
