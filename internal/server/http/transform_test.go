package httpserver

import (
	"testing"

	"marketd/internal/coingecko"
)

func TestFilterTickers(t *testing.T) {
	tickers := []coingecko.Ticker{
		{Base: "VANRY", Target: "usdt", Volume: 10, TrustScore: "red"},
		{Base: "VANRY", Target: "BTC", Volume: 99, TrustScore: "green"},
		{Base: "VANRY", Target: "USDT", Volume: 10, TrustScore: "green"},
		{Base: "VANRY", Target: "USDT", Volume: 40, TrustScore: "yellow"},
	}

	got := filterTickers(tickers, "USDT")
	if len(got) != 3 {
		t.Fatalf("filtered=%d want 3", len(got))
	}
	// volume descending, trust score breaks the tie
	if got[0].Volume != 40 {
		t.Fatalf("got[0]=%+v", got[0])
	}
	if got[1].TrustScore != "green" || got[2].TrustScore != "red" {
		t.Fatalf("tie order: %s then %s", got[1].TrustScore, got[2].TrustScore)
	}
}

func TestFilterTickers_NoMatches(t *testing.T) {
	got := filterTickers([]coingecko.Ticker{{Base: "X", Target: "EUR"}}, "USDT")
	if len(got) != 0 {
		t.Fatalf("filtered=%d want 0", len(got))
	}
}

func TestToCoinMarketData(t *testing.T) {
	price := 1.5
	rank := 7
	m := coingecko.Market{ID: "vanry", Symbol: "vanry", Name: "Vanar Chain", Image: "img", CurrentPrice: &price, MarketCapRank: &rank}

	out := toCoinMarketData(m)
	if out.ID != "vanry" || *out.CurrentPrice != 1.5 || *out.MarketCapRank != 7 {
		t.Fatalf("out=%+v", out)
	}
	if out.MarketCap != nil || out.TotalSupply != nil {
		t.Fatalf("nil upstream fields must stay nil: %+v", out)
	}
}
