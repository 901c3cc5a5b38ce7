package httpserver

// Response schemas served to the dashboard frontend. The shapes are fixed:
// upstream fields are remapped here and nowhere else.

type CoinMarketData struct {
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

type MarketResponse struct {
	Data    []CoinMarketData `json:"data"`
	Total   int              `json:"total"`
	Page    int              `json:"page"`
	PerPage int              `json:"per_page"`
}

type ChartResponse struct {
	CoinID       string      `json:"coin_id"`
	VsCurrency   string      `json:"vs_currency"`
	Days         int         `json:"days"`
	Prices       [][]float64 `json:"prices"`
	MarketCaps   [][]float64 `json:"market_caps"`
	TotalVolumes [][]float64 `json:"total_volumes"`
}

type TickerData struct {
	Base                   string             `json:"base"`
	Target                 string             `json:"target"`
	Market                 map[string]string  `json:"market"`
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

type TickersResponse struct {
	CoinID  string       `json:"coin_id"`
	Tickers []TickerData `json:"tickers"`
}
