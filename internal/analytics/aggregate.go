package analytics

import (
	"sort"
	"strings"

	"github.com/tradedesk/tradedesk-backend/internal/domain"
)

// OtherSector is the bucket positions fall into when no sector is set.
const OtherSector = "Other"

// DefaultTickerLimit caps the by-ticker volume rollup for display.
const DefaultTickerLimit = 10

// DateBucket is one day of trade activity. Buys and Sells are notional
// volume (shares * price); Fees is the fee sum for the day.
type DateBucket struct {
	Date  string  `json:"date"`
	Buys  float64 `json:"buys"`
	Sells float64 `json:"sells"`
	Fees  float64 `json:"fees"`
}

// FeePoint is one point of the cumulative fee series.
type FeePoint struct {
	Date          string  `json:"date"`
	CumulativeFee float64 `json:"cumulativeFee"`
}

// CategoryTotal is one row of a grouped rollup (ticker or sector).
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// TradesByDate groups trades by exact date-string equality and orders
// buckets by ascending date string. Dates are opaque keys here; the
// ordering is only calendar-correct for YYYY-MM-DD input, which the
// domain layer enforces on creation.
func TradesByDate(trades []*domain.TradeRecord) []DateBucket {
	byDate := make(map[string]*DateBucket)
	for _, t := range trades {
		b, ok := byDate[t.Date]
		if !ok {
			b = &DateBucket{Date: t.Date}
			byDate[t.Date] = b
		}
		notional := t.Shares * t.Price
		switch t.Type {
		case domain.TradeTypeBuy:
			b.Buys += notional
		case domain.TradeTypeSell:
			b.Sells += notional
		}
		b.Fees += t.Fees
	}

	buckets := make([]DateBucket, 0, len(byDate))
	for _, b := range byDate {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Date < buckets[j].Date
	})
	return buckets
}

// CumulativeFees scans the date-ordered rollup left to right and returns
// the running fee total per bucket. Monotonically non-decreasing by
// construction.
func CumulativeFees(buckets []DateBucket) []FeePoint {
	points := make([]FeePoint, 0, len(buckets))
	var running float64
	for _, b := range buckets {
		running += b.Fees
		points = append(points, FeePoint{Date: b.Date, CumulativeFee: running})
	}
	return points
}

// VolumeByTicker groups all trades by ticker, sums notional volume, and
// returns the top limit tickers by total, descending. The truncation is
// a display policy; limit <= 0 means no truncation.
func VolumeByTicker(trades []*domain.TradeRecord, limit int) []CategoryTotal {
	totals := make(map[string]float64)
	for _, t := range trades {
		totals[t.Ticker] += t.Shares * t.Price
	}
	rollup := sortedTotals(totals)
	if limit > 0 && len(rollup) > limit {
		rollup = rollup[:limit]
	}
	return rollup
}

// ValueBySector groups positions by sector, sums market value at the
// stored current price, and sorts descending by total. Positions with no
// sector set group under OtherSector.
func ValueBySector(positions []*domain.Position) []CategoryTotal {
	totals := make(map[string]float64)
	for _, p := range positions {
		sector := strings.TrimSpace(p.Sector)
		if sector == "" {
			sector = OtherSector
		}
		totals[sector] += p.Shares * p.CurrentPrice
	}
	return sortedTotals(totals)
}

func sortedTotals(totals map[string]float64) []CategoryTotal {
	rollup := make([]CategoryTotal, 0, len(totals))
	for category, total := range totals {
		rollup = append(rollup, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(rollup, func(i, j int) bool {
		if rollup[i].Total != rollup[j].Total {
			return rollup[i].Total > rollup[j].Total
		}
		// Tie-break on name so identical snapshots aggregate identically.
		return rollup[i].Category < rollup[j].Category
	})
	return rollup
}
