package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TradeType represents the direction of an executed trade.
type TradeType string

const (
	TradeTypeBuy  TradeType = "BUY"
	TradeTypeSell TradeType = "SELL"
)

// tradeDateLayout is the required format for TradeRecord.Date. Dates are
// treated as opaque string keys by the aggregation engine, and
// lexicographic ordering is only correct for this layout, so the format
// is enforced here at the boundary.
const tradeDateLayout = "2006-01-02"

// TradeRecord represents an executed trade in the journal. Records are
// immutable once created; deletion is the only mutation.
type TradeRecord struct {
	ID        uuid.UUID
	Type      TradeType
	Ticker    string
	Shares    float64
	Price     float64
	Fees      float64
	Date      string // YYYY-MM-DD
	Notes     string
	CreatedAt time.Time
}

// Validate ensures the trade record adheres to domain rules.
func (t *TradeRecord) Validate() error {
	if strings.TrimSpace(t.Ticker) == "" {
		return errors.New("ticker is required")
	}
	if t.Type != TradeTypeBuy && t.Type != TradeTypeSell {
		return errors.New("trade type must be BUY or SELL")
	}
	if t.Shares <= 0 {
		return errors.New("shares must be positive")
	}
	if t.Price < 0 {
		return errors.New("price must be non-negative")
	}
	if t.Fees < 0 {
		return errors.New("fees must be non-negative")
	}
	if _, err := time.Parse(tradeDateLayout, t.Date); err != nil {
		return errors.New("date must be in YYYY-MM-DD format")
	}
	return nil
}
