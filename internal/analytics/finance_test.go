package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinancePrimitives_ConcreteScenario(t *testing.T) {
	// Position: 50 shares @ 142.30 avg cost, current price 147.85
	shares, avgCost, price := 50.0, 142.30, 147.85

	assert.InDelta(t, 7115.00, CostBasis(shares, avgCost), 1e-9)
	assert.InDelta(t, 7392.50, MarketValue(shares, price), 1e-9)

	pnl := UnrealizedPnL(shares, avgCost, price)
	assert.InDelta(t, 277.50, pnl, 1e-9)
	assert.InDelta(t, 3.9006, ReturnPct(pnl, CostBasis(shares, avgCost)), 1e-4)
}

func TestUnrealizedPnL_IsValueMinusCost(t *testing.T) {
	cases := []struct{ shares, avgCost, price float64 }{
		{0, 0, 0},
		{10, 5, 5},
		{10, 5, 7.25},
		{3.5, 120.10, 98.40},
		{1000, 0.0001, 0.0002},
	}
	for _, c := range cases {
		got := UnrealizedPnL(c.shares, c.avgCost, c.price)
		want := MarketValue(c.shares, c.price) - CostBasis(c.shares, c.avgCost)
		assert.Equal(t, want, got)
	}
}

func TestReturnPct_ZeroCostBasis(t *testing.T) {
	assert.Equal(t, 0.0, ReturnPct(100, 0))
	assert.Equal(t, 0.0, ReturnPct(0, 0))
	assert.Equal(t, 0.0, ReturnPct(-50, 0))
}

func TestReturnPct_NegativePnL(t *testing.T) {
	assert.InDelta(t, -10.0, ReturnPct(-100, 1000), 1e-9)
}
