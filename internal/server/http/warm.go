package httpserver

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"
)

// Warm pre-populates the three categories for the configured coin so the
// first dashboard load after a deploy is served from cache. Individual
// failures are tolerated: warming is best-effort and must not block startup.
func Warm(ctx context.Context, api *API) error {
	coin := api.cfg.Cache.WarmCoin

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if _, err := api.marketsCached(gctx, 100, 1); err != nil {
			log.Printf("[marketd] warm markets failed: %v", err)
		}
		return nil
	})
	g.Go(func() error {
		if _, err := api.chartCached(gctx, coin, "usd", 7); err != nil {
			log.Printf("[marketd] warm chart coin=%s failed: %v", coin, err)
		}
		return nil
	})
	g.Go(func() error {
		if _, err := api.tickersCached(gctx, coin, "USDT"); err != nil {
			log.Printf("[marketd] warm tickers coin=%s failed: %v", coin, err)
		}
		return nil
	})

	return g.Wait()
}
