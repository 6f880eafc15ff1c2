package domain

import (
	"errors"
	"time"
)

// RiskSettings holds the account-level inputs for position sizing.
// There is exactly one row per installation (single-user dashboard).
type RiskSettings struct {
	AccountSize     float64
	RiskPercentage  float64
	FlatFeePerTrade float64
	UpdatedAt       time.Time
}

// DefaultRiskSettings are seeded on first read.
func DefaultRiskSettings() RiskSettings {
	return RiskSettings{
		AccountSize:     10000,
		RiskPercentage:  1,
		FlatFeePerTrade: 0,
	}
}

// Validate ensures the risk settings adhere to domain rules.
func (r *RiskSettings) Validate() error {
	if r.AccountSize <= 0 {
		return errors.New("account size must be positive")
	}
	if r.RiskPercentage <= 0 || r.RiskPercentage > 100 {
		return errors.New("risk percentage must be in (0, 100]")
	}
	if r.FlatFeePerTrade < 0 {
		return errors.New("flat fee must be non-negative")
	}
	return nil
}
