package httpserver

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"marketd/internal/apperrors"
	"marketd/internal/cache"
	"marketd/internal/coingecko"
	"marketd/internal/config"
	"marketd/internal/metrics"
)

var validChartDays = []int{1, 7, 30, 90, 365}

// MarketData is the upstream surface the handlers depend on.
type MarketData interface {
	Markets(ctx context.Context, q coingecko.MarketsQuery) ([]coingecko.Market, error)
	MarketChart(ctx context.Context, coinID string, q coingecko.ChartQuery) (*coingecko.MarketChart, error)
	Tickers(ctx context.Context, coinID string) (*coingecko.TickersPage, error)
}

// API holds the handler dependencies. Handlers reach the store only through
// the cacher; admin handlers use the registry's Clear/Stats surface.
type API struct {
	cfg      *config.Config
	upstream MarketData
	cacher   *cache.Cacher
	registry *cache.Registry
	metrics  *metrics.Metrics
}

func NewAPI(cfg *config.Config, upstream MarketData, cacher *cache.Cacher, registry *cache.Registry, m *metrics.Metrics) *API {
	return &API{cfg: cfg, upstream: upstream, cacher: cacher, registry: registry, metrics: m}
}

func (a *API) getMarkets(c *fiber.Ctx) error {
	logf := reqLogger(c)

	limit := c.QueryInt("limit", 100)
	if limit < 1 || limit > 250 {
		return sendError(c, logf, apperrors.NewValidation("limit must be between 1 and 250"))
	}
	page := c.QueryInt("page", 1)
	if page < 1 {
		return sendError(c, logf, apperrors.NewValidation("page must be >= 1"))
	}

	res, err := a.marketsCached(c.UserContext(), limit, page)
	if err != nil {
		logf("markets limit=%d page=%d failed: %v", limit, page, err)
		return sendError(c, logf, err)
	}

	logf("markets limit=%d page=%d hit=%v", limit, page, res.Hit)
	return sendCached(c, res)
}

func (a *API) marketsCached(ctx context.Context, limit, page int) (cache.Result, error) {
	call := cache.Call{
		Op:     "get_markets",
		Prefix: "markets",
		Named: map[string]string{
			"limit": strconv.Itoa(limit),
			"page":  strconv.Itoa(page),
		},
	}

	return a.cacher.Do(ctx, cache.CategoryMarkets, a.ttl(cache.CategoryMarkets), call, func(ctx context.Context) (any, error) {
		markets, err := a.upstream.Markets(ctx, coingecko.MarketsQuery{VsCurrency: "usd", PerPage: limit, Page: page})
		if err != nil {
			return nil, err
		}

		data := make([]CoinMarketData, 0, len(markets))
		for _, m := range markets {
			data = append(data, toCoinMarketData(m))
		}
		return MarketResponse{Data: data, Total: estimatedCoinCount, Page: page, PerPage: limit}, nil
	})
}

func (a *API) getCoinChart(c *fiber.Ctx) error {
	logf := reqLogger(c)

	coinID := c.Params("id")
	days := c.QueryInt("days", 7)
	vsCurrency := c.Query("vs_currency", "usd")

	if !validDays(days) {
		return sendError(c, logf, apperrors.NewValidation("days must be one of: 1, 7, 30, 90, 365"))
	}

	res, err := a.chartCached(c.UserContext(), coinID, vsCurrency, days)
	if err != nil {
		logf("chart coin=%s days=%d failed: %v", coinID, days, err)
		return sendError(c, logf, err)
	}

	logf("chart coin=%s days=%d hit=%v", coinID, days, res.Hit)
	return sendCached(c, res)
}

func (a *API) chartCached(ctx context.Context, coinID, vsCurrency string, days int) (cache.Result, error) {
	call := cache.Call{
		Op:     "get_coin_chart",
		Prefix: "chart",
		Args:   []string{coinID},
		Named: map[string]string{
			"days":        strconv.Itoa(days),
			"vs_currency": vsCurrency,
		},
	}

	return a.cacher.Do(ctx, cache.CategoryCharts, a.ttl(cache.CategoryCharts), call, func(ctx context.Context) (any, error) {
		chart, err := a.upstream.MarketChart(ctx, coinID, coingecko.ChartQuery{VsCurrency: vsCurrency, Days: days})
		if err != nil {
			return nil, err
		}

		return ChartResponse{
			CoinID:       coinID,
			VsCurrency:   vsCurrency,
			Days:         days,
			Prices:       orEmpty(chart.Prices),
			MarketCaps:   orEmpty(chart.MarketCaps),
			TotalVolumes: orEmpty(chart.TotalVolumes),
		}, nil
	})
}

func (a *API) getCoinTickers(c *fiber.Ctx) error {
	logf := reqLogger(c)

	coinID := c.Params("id")
	target := c.Query("target", "USDT")

	res, err := a.tickersCached(c.UserContext(), coinID, target)
	if err != nil {
		logf("tickers coin=%s target=%s failed: %v", coinID, target, err)
		return sendError(c, logf, err)
	}

	logf("tickers coin=%s target=%s hit=%v", coinID, target, res.Hit)
	return sendCached(c, res)
}

func (a *API) tickersCached(ctx context.Context, coinID, target string) (cache.Result, error) {
	call := cache.Call{
		Op:     "get_coin_tickers",
		Prefix: "tickers",
		Args:   []string{coinID},
		Named:  map[string]string{"target": target},
	}

	return a.cacher.Do(ctx, cache.CategoryTickers, a.ttl(cache.CategoryTickers), call, func(ctx context.Context) (any, error) {
		page, err := a.upstream.Tickers(ctx, coinID)
		if err != nil {
			return nil, err
		}

		raw := page.Tickers
		if strings.EqualFold(coinID, "vanry") || strings.EqualFold(target, "USDT") {
			raw = filterTickers(raw, target)
		}

		tickers := make([]TickerData, 0, len(raw))
		for _, t := range raw {
			// malformed upstream rows (missing pair identity) are dropped
			if t.Base == "" || t.Target == "" {
				continue
			}
			tickers = append(tickers, toTickerData(t))
		}
		return TickersResponse{CoinID: coinID, Tickers: tickers}, nil
	})
}

func (a *API) ttl(category string) time.Duration {
	return a.registry.Category(category).TTL()
}

func validDays(days int) bool {
	for _, d := range validChartDays {
		if d == days {
			return true
		}
	}
	return false
}

func orEmpty(v [][]float64) [][]float64 {
	if v == nil {
		return [][]float64{}
	}
	return v
}

// sendCached writes a wrapper result: cache headers first, then the stored
// JSON payload byte-for-byte.
func sendCached(c *fiber.Ctx, res cache.Result) error {
	for _, h := range res.Headers {
		c.Set(h.Name, h.Value)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(res.Body)
}

func sendError(c *fiber.Ctx, logf func(string, ...any), err error) error {
	status := apperrors.StatusFor(err)

	detail := "internal server error"
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		detail = appErr.Message
	} else {
		logf("unexpected error: %v", err)
	}

	return c.Status(status).JSON(fiber.Map{"detail": detail})
}
