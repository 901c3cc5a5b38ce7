package httpserver

import (
	"sort"
	"strings"

	"marketd/internal/coingecko"
)

// estimatedCoinCount stands in for a total the upstream does not report.
const estimatedCoinCount = 10000

func toCoinMarketData(m coingecko.Market) CoinMarketData {
	return CoinMarketData{
		ID:                       m.ID,
		Symbol:                   m.Symbol,
		Name:                     m.Name,
		Image:                    m.Image,
		CurrentPrice:             m.CurrentPrice,
		MarketCap:                m.MarketCap,
		MarketCapRank:            m.MarketCapRank,
		PriceChangePercentage24h: m.PriceChangePercentage24h,
		TotalVolume:              m.TotalVolume,
		CirculatingSupply:        m.CirculatingSupply,
		TotalSupply:              m.TotalSupply,
	}
}

func toTickerData(t coingecko.Ticker) TickerData {
	return TickerData{
		Base:                   t.Base,
		Target:                 t.Target,
		Market:                 map[string]string{"name": t.Market.Name, "identifier": t.Market.Identifier},
		Last:                   t.Last,
		Volume:                 t.Volume,
		ConvertedLast:          t.ConvertedLast,
		ConvertedVolume:        t.ConvertedVolume,
		TrustScore:             t.TrustScore,
		BidAskSpreadPercentage: t.BidAskSpreadPercentage,
		Timestamp:              t.Timestamp,
		LastTradedAt:           t.LastTradedAt,
		LastFetchAt:            t.LastFetchAt,
		IsAnomaly:              t.IsAnomaly,
		IsStale:                t.IsStale,
		TradeURL:               t.TradeURL,
	}
}

var trustScoreOrder = map[string]int{"green": 3, "yellow": 2, "red": 1}

// filterTickers keeps pairs quoted in target and orders them by volume
// descending, breaking ties on trust score (green > yellow > red).
func filterTickers(tickers []coingecko.Ticker, target string) []coingecko.Ticker {
	filtered := make([]coingecko.Ticker, 0, len(tickers))
	for _, t := range tickers {
		if strings.EqualFold(t.Target, target) {
			filtered = append(filtered, t)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Volume != filtered[j].Volume {
			return filtered[i].Volume > filtered[j].Volume
		}
		return trustScoreOrder[filtered[i].TrustScore] > trustScoreOrder[filtered[j].TrustScore]
	})
	return filtered
}
