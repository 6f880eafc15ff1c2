package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Position represents a portfolio holding. Shares and AvgCost are set at
// creation (average-cost accounting, no lot tracking) and are never
// recomputed by the analytics engine.
type Position struct {
	ID           uuid.UUID
	Ticker       string
	Shares       float64
	AvgCost      float64
	CurrentPrice float64
	Sector       string
	CreatedAt    time.Time
}

// Validate ensures the position adheres to domain rules.
func (p *Position) Validate() error {
	if strings.TrimSpace(p.Ticker) == "" {
		return errors.New("ticker is required")
	}
	if p.Shares < 0 {
		return errors.New("shares must be non-negative")
	}
	if p.AvgCost < 0 {
		return errors.New("avg cost must be non-negative")
	}
	if p.CurrentPrice < 0 {
		return errors.New("current price must be non-negative")
	}
	return nil
}
