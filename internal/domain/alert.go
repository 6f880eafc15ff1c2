package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AlertCondition represents the price crossing an alert watches for.
type AlertCondition string

const (
	AlertAbove AlertCondition = "ABOVE"
	AlertBelow AlertCondition = "BELOW"
)

// Alert represents a price alert. The scheduler marks it triggered when
// a live quote crosses the threshold; triggered alerts stay in the list
// until deleted.
type Alert struct {
	ID        uuid.UUID
	Ticker    string
	Condition AlertCondition
	Threshold float64
	Triggered bool
	Message   string
	CreatedAt time.Time
}

// Validate ensures the alert adheres to domain rules.
func (a *Alert) Validate() error {
	if strings.TrimSpace(a.Ticker) == "" {
		return errors.New("ticker is required")
	}
	if a.Condition != AlertAbove && a.Condition != AlertBelow {
		return errors.New("condition must be ABOVE or BELOW")
	}
	if a.Threshold <= 0 {
		return errors.New("threshold must be positive")
	}
	return nil
}
