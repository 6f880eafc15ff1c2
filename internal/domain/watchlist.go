package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Signal represents the trade signal attached to a watchlist entry.
type Signal string

const (
	SignalBuy   Signal = "BUY"
	SignalSell  Signal = "SELL"
	SignalHold  Signal = "HOLD"
	SignalWatch Signal = "WATCH"
)

// WatchlistEntry represents a candidate trade being tracked.
//
// EntryTarget <= StopLoss is a recognized degenerate case for position
// sizing (long-bias risk model), not a validation error: the entry is
// stored as-is and the sizer reports it as an invalid stop.
type WatchlistEntry struct {
	ID          uuid.UUID
	Ticker      string
	EntryTarget float64
	StopLoss    float64
	TakeProfit  float64
	Signal      Signal
	Sector      string
	CreatedAt   time.Time
}

// Validate ensures the watchlist entry adheres to domain rules.
func (w *WatchlistEntry) Validate() error {
	if strings.TrimSpace(w.Ticker) == "" {
		return errors.New("ticker is required")
	}
	if w.EntryTarget < 0 || w.StopLoss < 0 || w.TakeProfit < 0 {
		return errors.New("price levels must be non-negative")
	}
	switch w.Signal {
	case SignalBuy, SignalSell, SignalHold, SignalWatch:
	default:
		return errors.New("signal must be BUY, SELL, HOLD or WATCH")
	}
	return nil
}
