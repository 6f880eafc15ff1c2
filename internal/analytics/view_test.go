package analytics

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradedesk/tradedesk-backend/internal/domain"
)

func position(ticker string, shares, avgCost, price float64, sector string) *domain.Position {
	return &domain.Position{
		ID:           uuid.New(),
		Ticker:       ticker,
		Shares:       shares,
		AvgCost:      avgCost,
		CurrentPrice: price,
		Sector:       sector,
	}
}

func TestEffectivePrice_FallbackChain(t *testing.T) {
	p := position("AAPL", 10, 100, 105, "Technology")

	// No quote: stored price is authoritative.
	price, live := EffectivePrice(p, nil)
	assert.Equal(t, 105.0, price)
	assert.False(t, live)

	// Day close wins over everything.
	price, live = EffectivePrice(p, &domain.Quote{DayClose: 110, LastTradePrice: 108})
	assert.Equal(t, 110.0, price)
	assert.True(t, live)

	// Zero day close falls through to last trade.
	price, live = EffectivePrice(p, &domain.Quote{DayClose: 0, LastTradePrice: 108})
	assert.Equal(t, 108.0, price)
	assert.True(t, live)

	// Entirely zero quote is treated as absent.
	price, live = EffectivePrice(p, &domain.Quote{})
	assert.Equal(t, 105.0, price)
	assert.False(t, live)
}

func TestBuildPositionView_UsesLiveQuote(t *testing.T) {
	p := position("AAPL", 50, 142.30, 140.00, "Technology")
	view := BuildPositionView(p, &domain.Quote{DayClose: 147.85})

	assert.True(t, view.LivePrice)
	assert.InDelta(t, 7115.00, view.CostBasis, 1e-9)
	assert.InDelta(t, 7392.50, view.MarketValue, 1e-9)
	assert.InDelta(t, 277.50, view.UnrealizedPnL, 1e-9)
	assert.InDelta(t, 3.9006, view.ReturnPct, 1e-4)
}

func TestBuildPortfolioView_Totals(t *testing.T) {
	positions := []*domain.Position{
		position("AAPL", 10, 100, 110, "Technology"),
		position("XOM", 20, 50, 45, ""),
	}

	view := BuildPortfolioView(positions, nil)
	require.Len(t, view.Positions, 2)

	// AAPL: value 1100 cost 1000; XOM: value 900 cost 1000.
	assert.InDelta(t, 2000, view.TotalValue, 1e-9)
	assert.InDelta(t, 2000, view.TotalCost, 1e-9)
	assert.InDelta(t, 0, view.TotalPnL, 1e-9)
	assert.InDelta(t, 0, view.TotalReturnPct, 1e-9)

	// Sector rollup carries the "Other" fallback.
	require.Len(t, view.BySector, 2)
	assert.Equal(t, "Technology", view.BySector[0].Category)
	assert.Equal(t, OtherSector, view.BySector[1].Category)
}

func TestBuildPortfolioView_EmptyPortfolio(t *testing.T) {
	view := BuildPortfolioView(nil, nil)
	assert.Empty(t, view.Positions)
	assert.Equal(t, 0.0, view.TotalValue)
	assert.Equal(t, 0.0, view.TotalReturnPct)
}

func TestRankByPnL(t *testing.T) {
	views := []PositionView{
		{Ticker: "FLAT", UnrealizedPnL: 0},
		{Ticker: "WIN", UnrealizedPnL: 500},
		{Ticker: "LOSS", UnrealizedPnL: -200},
	}

	ranked := RankByPnL(views)
	assert.Equal(t, "WIN", ranked[0].Ticker)
	assert.Equal(t, "FLAT", ranked[1].Ticker)
	assert.Equal(t, "LOSS", ranked[2].Ticker)

	// Input slice is untouched.
	assert.Equal(t, "FLAT", views[0].Ticker)
}
