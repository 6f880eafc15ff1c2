package analytics

import (
	"sort"

	"github.com/tradedesk/tradedesk-backend/internal/domain"
)

// PositionView is the derived per-position view model.
type PositionView struct {
	ID            string  `json:"id"`
	Ticker        string  `json:"ticker"`
	Sector        string  `json:"sector"`
	Shares        float64 `json:"shares"`
	AvgCost       float64 `json:"avgCost"`
	Price         float64 `json:"price"`
	LivePrice     bool    `json:"livePrice"`
	MarketValue   float64 `json:"marketValue"`
	CostBasis     float64 `json:"costBasis"`
	UnrealizedPnL float64 `json:"unrealizedPnl"`
	ReturnPct     float64 `json:"returnPct"`
}

// PortfolioView is the derived portfolio-level view model.
type PortfolioView struct {
	TotalValue     float64         `json:"totalValue"`
	TotalCost      float64         `json:"totalCost"`
	TotalPnL       float64         `json:"totalPnl"`
	TotalReturnPct float64         `json:"totalReturnPct"`
	Positions      []PositionView  `json:"positions"`
	BySector       []CategoryTotal `json:"bySector"`
}

// EffectivePrice resolves the price used for a position's valuation.
//
// The fallback chain is a policy contract: a live quote, when present,
// overrides the stored price with its day close, then its last trade
// price; zero live values are treated as absent and the stored
// CurrentPrice is authoritative.
func EffectivePrice(p *domain.Position, q *domain.Quote) (price float64, live bool) {
	if q != nil {
		if q.DayClose > 0 {
			return q.DayClose, true
		}
		if q.LastTradePrice > 0 {
			return q.LastTradePrice, true
		}
	}
	return p.CurrentPrice, false
}

// BuildPositionView combines a position with an optional live quote and
// computes its derived figures.
func BuildPositionView(p *domain.Position, q *domain.Quote) PositionView {
	price, live := EffectivePrice(p, q)
	costBasis := CostBasis(p.Shares, p.AvgCost)
	pnl := UnrealizedPnL(p.Shares, p.AvgCost, price)
	return PositionView{
		ID:            p.ID.String(),
		Ticker:        p.Ticker,
		Sector:        p.Sector,
		Shares:        p.Shares,
		AvgCost:       p.AvgCost,
		Price:         price,
		LivePrice:     live,
		MarketValue:   MarketValue(p.Shares, price),
		CostBasis:     costBasis,
		UnrealizedPnL: pnl,
		ReturnPct:     ReturnPct(pnl, costBasis),
	}
}

// BuildPortfolioView assembles the full derived view from a positions
// snapshot and a per-ticker quote lookup (quotes may be nil or sparse).
// The sector rollup values stored prices, per the chart contract.
func BuildPortfolioView(positions []*domain.Position, quotes map[string]*domain.Quote) PortfolioView {
	view := PortfolioView{
		Positions: make([]PositionView, 0, len(positions)),
		BySector:  ValueBySector(positions),
	}
	for _, p := range positions {
		pv := BuildPositionView(p, quotes[p.Ticker])
		view.Positions = append(view.Positions, pv)
		view.TotalValue += pv.MarketValue
		view.TotalCost += pv.CostBasis
	}
	view.TotalPnL = view.TotalValue - view.TotalCost
	view.TotalReturnPct = ReturnPct(view.TotalPnL, view.TotalCost)
	return view
}

// RankByPnL sorts position views descending by unrealized P&L.
func RankByPnL(views []PositionView) []PositionView {
	ranked := make([]PositionView, len(views))
	copy(ranked, views)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].UnrealizedPnL != ranked[j].UnrealizedPnL {
			return ranked[i].UnrealizedPnL > ranked[j].UnrealizedPnL
		}
		return ranked[i].Ticker < ranked[j].Ticker
	})
	return ranked
}
