package analytics

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradedesk/tradedesk-backend/internal/domain"
)

func trade(tt domain.TradeType, ticker string, shares, price, fees float64, date string) *domain.TradeRecord {
	return &domain.TradeRecord{
		ID:     uuid.New(),
		Type:   tt,
		Ticker: ticker,
		Shares: shares,
		Price:  price,
		Fees:   fees,
		Date:   date,
	}
}

func TestTradesByDate_MergesSameDay(t *testing.T) {
	// Two buys on the same day merge into a single bucket: 10*5 + 2*5 = 60.
	trades := []*domain.TradeRecord{
		trade(domain.TradeTypeBuy, "AAPL", 10, 5, 0, "2026-01-01"),
		trade(domain.TradeTypeBuy, "MSFT", 2, 5, 0, "2026-01-01"),
	}

	buckets := TradesByDate(trades)
	require.Len(t, buckets, 1)
	assert.Equal(t, "2026-01-01", buckets[0].Date)
	assert.InDelta(t, 60, buckets[0].Buys, 1e-9)
	assert.InDelta(t, 0, buckets[0].Sells, 1e-9)
}

func TestTradesByDate_OrderedAscending(t *testing.T) {
	trades := []*domain.TradeRecord{
		trade(domain.TradeTypeSell, "AAPL", 5, 150, 1.5, "2026-02-10"),
		trade(domain.TradeTypeBuy, "AAPL", 10, 140, 1.0, "2026-01-05"),
		trade(domain.TradeTypeBuy, "MSFT", 3, 400, 2.0, "2026-01-20"),
	}

	buckets := TradesByDate(trades)
	require.Len(t, buckets, 3)
	assert.Equal(t, []string{"2026-01-05", "2026-01-20", "2026-02-10"},
		[]string{buckets[0].Date, buckets[1].Date, buckets[2].Date})
	assert.InDelta(t, 1400, buckets[0].Buys, 1e-9)
	assert.InDelta(t, 750, buckets[2].Sells, 1e-9)
}

func TestCumulativeFees_RunningSum(t *testing.T) {
	buckets := []DateBucket{
		{Date: "2026-01-01", Fees: 1.5},
		{Date: "2026-01-02", Fees: 0},
		{Date: "2026-01-03", Fees: 3.25},
	}

	points := CumulativeFees(buckets)
	require.Len(t, points, 3)
	assert.InDelta(t, 1.5, points[0].CumulativeFee, 1e-9)
	assert.InDelta(t, 1.5, points[1].CumulativeFee, 1e-9)
	assert.InDelta(t, 4.75, points[2].CumulativeFee, 1e-9)

	// Non-decreasing by construction.
	for i := 1; i < len(points); i++ {
		assert.GreaterOrEqual(t, points[i].CumulativeFee, points[i-1].CumulativeFee)
	}
}

func TestVolumeByTicker_TopN(t *testing.T) {
	var trades []*domain.TradeRecord
	// 12 tickers with strictly increasing volume.
	tickers := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"}
	for i, ticker := range tickers {
		trades = append(trades, trade(domain.TradeTypeBuy, ticker, float64(i+1), 100, 0, "2026-01-01"))
	}

	rollup := VolumeByTicker(trades, DefaultTickerLimit)
	require.Len(t, rollup, 10)
	assert.Equal(t, "L", rollup[0].Category)
	assert.InDelta(t, 1200, rollup[0].Total, 1e-9)
	// "A" and "B" fall off the end.
	for _, row := range rollup {
		assert.NotEqual(t, "A", row.Category)
		assert.NotEqual(t, "B", row.Category)
	}

	// No truncation when limit is zero.
	assert.Len(t, VolumeByTicker(trades, 0), 12)
}

func TestValueBySector_OtherFallback(t *testing.T) {
	positions := []*domain.Position{
		{Ticker: "AAPL", Shares: 10, CurrentPrice: 100, Sector: "Technology"},
		{Ticker: "XOM", Shares: 5, CurrentPrice: 100, Sector: ""},
		{Ticker: "ZZZ", Shares: 1, CurrentPrice: 100, Sector: "   "},
	}

	rollup := ValueBySector(positions)
	require.Len(t, rollup, 2)
	assert.Equal(t, "Technology", rollup[0].Category)
	assert.InDelta(t, 1000, rollup[0].Total, 1e-9)
	assert.Equal(t, OtherSector, rollup[1].Category)
	assert.InDelta(t, 600, rollup[1].Total, 1e-9)
}

func TestAggregations_Idempotent(t *testing.T) {
	trades := []*domain.TradeRecord{
		trade(domain.TradeTypeBuy, "AAPL", 10, 140, 1, "2026-01-05"),
		trade(domain.TradeTypeSell, "AAPL", 5, 150, 1, "2026-02-10"),
		trade(domain.TradeTypeBuy, "MSFT", 3, 400, 2, "2026-01-05"),
	}
	positions := []*domain.Position{
		{Ticker: "AAPL", Shares: 10, CurrentPrice: 150, Sector: "Technology"},
		{Ticker: "XOM", Shares: 5, CurrentPrice: 110},
	}

	// Re-running any aggregation over an unchanged snapshot is
	// byte-identical: no hidden state, no randomness.
	assert.Equal(t, TradesByDate(trades), TradesByDate(trades))
	assert.Equal(t, VolumeByTicker(trades, 10), VolumeByTicker(trades, 10))
	assert.Equal(t, ValueBySector(positions), ValueBySector(positions))
	assert.Equal(t, CumulativeFees(TradesByDate(trades)), CumulativeFees(TradesByDate(trades)))
}
