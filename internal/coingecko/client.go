// Package coingecko is the upstream CoinGecko REST client. It makes a
// single attempt per call with a bounded timeout and translates upstream
// failures into the gateway's error taxonomy at this boundary.
package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"marketd/internal/apperrors"
	"marketd/internal/config"
)

const userAgent = "marketd/1.0"

// Recorder receives best-effort upstream call outcomes.
type Recorder interface {
	UpstreamRequest(endpoint, outcome string)
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	rec     Recorder
}

func New(cfg config.Upstream, rec Recorder) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout()},
		rec:     rec,
	}
}

// MarketsQuery shapes a /coins/markets call.
type MarketsQuery struct {
	VsCurrency string
	PerPage    int
	Page       int
}

func (c *Client) Markets(ctx context.Context, q MarketsQuery) ([]Market, error) {
	params := url.Values{}
	params.Set("vs_currency", q.VsCurrency)
	params.Set("order", "market_cap_desc")
	params.Set("per_page", strconv.Itoa(q.PerPage))
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("sparkline", "false")
	params.Set("price_change_percentage", "24h")

	var out []Market
	if err := c.get(ctx, "coins/markets", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ChartQuery shapes a /coins/{id}/market_chart call. Interval follows the
// upstream convention: hourly for a single day, daily otherwise.
type ChartQuery struct {
	VsCurrency string
	Days       int
}

func (c *Client) MarketChart(ctx context.Context, coinID string, q ChartQuery) (*MarketChart, error) {
	interval := "daily"
	if q.Days <= 1 {
		interval = "hourly"
	}

	params := url.Values{}
	params.Set("vs_currency", q.VsCurrency)
	params.Set("days", strconv.Itoa(q.Days))
	params.Set("interval", interval)

	var out MarketChart
	if err := c.get(ctx, "coins/"+url.PathEscape(coinID)+"/market_chart", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Tickers(ctx context.Context, coinID string) (*TickersPage, error) {
	params := url.Values{}
	params.Set("include_exchange_logo", "false")
	params.Set("page", "1")
	params.Set("depth", "true")

	var out TickersPage
	if err := c.get(ctx, "coins/"+url.PathEscape(coinID)+"/tickers", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, dst any) error {
	err := c.doGet(ctx, endpoint, params, dst)
	if c.rec != nil {
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		c.rec.UpstreamRequest(endpoint, outcome)
	}
	return err
}

func (c *Client) doGet(ctx context.Context, endpoint string, params url.Values, dst any) error {
	target := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-cg-pro-api-key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		var netErr interface{ Timeout() bool }
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			log.Printf("[coingecko] %s timed out: %v", endpoint, err)
			return apperrors.NewUnavailable("external API timed out", err)
		}
		log.Printf("[coingecko] %s request error: %v", endpoint, err)
		return apperrors.NewUnavailable("service temporarily unavailable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		log.Printf("[coingecko] rate limit exceeded on %s", endpoint)
		return apperrors.NewRateLimit("API rate limit exceeded")
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.NewNotFound("coin not found")
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		log.Printf("[coingecko] %s returned status %d", endpoint, resp.StatusCode)
		return apperrors.NewUpstream(fmt.Sprintf("external API error (status %d)", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewUpstream("read external API response", err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return apperrors.NewUpstream("decode external API response", err)
	}
	return nil
}
