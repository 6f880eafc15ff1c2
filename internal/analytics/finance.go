// Package analytics implements the dashboard's calculation engine:
// per-position financial primitives, risk-based position sizing, trade
// and portfolio aggregation, and the derived-view assembler.
//
// Every function in this package is a pure transform over an input
// snapshot: no state, no side effects, safe for concurrent callers.
package analytics

// MarketValue returns the current market value of a holding.
func MarketValue(shares, price float64) float64 {
	return shares * price
}

// CostBasis returns the total acquisition cost of a holding.
func CostBasis(shares, avgCost float64) float64 {
	return shares * avgCost
}

// UnrealizedPnL returns the open profit or loss of a holding.
func UnrealizedPnL(shares, avgCost, price float64) float64 {
	return MarketValue(shares, price) - CostBasis(shares, avgCost)
}

// ReturnPct returns the percentage return of pnl over cost basis.
// A zero cost basis yields 0: a free position has no meaningful return.
func ReturnPct(pnl, costBasis float64) float64 {
	if costBasis <= 0 {
		return 0
	}
	return pnl / costBasis * 100
}
