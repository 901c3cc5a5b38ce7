package coingecko

// Market is one row of the upstream /coins/markets response, narrowed to
// the fields the gateway exposes. Numeric fields are pointers because the
// upstream reports null for delisted or thin markets.
type Market struct {
	ID                       string   `json:"id"`
	Symbol                   string   `json:"symbol"`
	Name                     string   `json:"name"`
	Image                    string   `json:"image"`
	CurrentPrice             *float64 `json:"current_price"`
	MarketCap                *int64   `json:"market_cap"`
	MarketCapRank            *int     `json:"market_cap_rank"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
	TotalVolume              *float64 `json:"total_volume"`
	CirculatingSupply        *float64 `json:"circulating_supply"`
	TotalSupply              *float64 `json:"total_supply"`
}

// MarketChart is the upstream /coins/{id}/market_chart response. Each inner
// pair is [timestamp_ms, value].
type MarketChart struct {
	Prices       [][]float64 `json:"prices"`
	MarketCaps   [][]float64 `json:"market_caps"`
	TotalVolumes [][]float64 `json:"total_volumes"`
}

// TickerMarket identifies the exchange a ticker trades on.
type TickerMarket struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
}

// Ticker is one trading pair from /coins/{id}/tickers.
type Ticker struct {
	Base                   string             `json:"base"`
	Target                 string             `json:"target"`
	Market                 TickerMarket       `json:"market"`
	Last                   float64            `json:"last"`
	Volume                 float64            `json:"volume"`
	ConvertedLast          map[string]float64 `json:"converted_last"`
	ConvertedVolume        map[string]float64 `json:"converted_volume"`
	TrustScore             string             `json:"trust_score"`
	BidAskSpreadPercentage *float64           `json:"bid_ask_spread_percentage"`
	Timestamp              string             `json:"timestamp"`
	LastTradedAt           string             `json:"last_traded_at"`
	LastFetchAt            string             `json:"last_fetch_at"`
	IsAnomaly              bool               `json:"is_anomaly"`
	IsStale                bool               `json:"is_stale"`
	TradeURL               *string            `json:"trade_url"`
}

// TickersPage is the upstream /coins/{id}/tickers response.
type TickersPage struct {
	Name    string   `json:"name"`
	Tickers []Ticker `json:"tickers"`
}
