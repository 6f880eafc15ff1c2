package analytics

import "math"

// SizingInput carries the inputs for a risk-based position sizing
// computation: the planned trade levels plus the account risk settings.
type SizingInput struct {
	EntryTarget    float64
	StopLoss       float64
	TakeProfit     float64
	AccountSize    float64
	RiskPercentage float64
	FlatFee        float64
}

// Sizing is the result of a position sizing computation.
//
// PotentialProfit and RiskRewardRatio are deliberately unclamped: a
// take-profit below the entry produces negative values, surfaced via
// TargetBelowEntry so the UI can warn instead of the engine silently
// correcting the target.
type Sizing struct {
	Shares           int64
	RiskAmount       float64
	RiskPerShare     float64
	TotalCost        float64
	PotentialProfit  float64
	RiskRewardRatio  float64
	TargetBelowEntry bool
}

// Size translates a risk budget into a trade size.
//
// The second return value is false when the stop-loss is at or above the
// entry target. That is a recognized degenerate case under the long-bias
// risk model ("invalid stop loss"), not an error: callers must branch on
// it and render a message rather than a share count.
//
// Shares are floored, never fractional. A result of 0 shares is valid
// and means the risk budget cannot afford a single share.
func Size(in SizingInput) (Sizing, bool) {
	riskPerShare := in.EntryTarget - in.StopLoss
	if riskPerShare <= 0 {
		return Sizing{}, false
	}

	riskAmount := in.AccountSize * (in.RiskPercentage / 100)
	shares := int64(math.Floor(riskAmount / riskPerShare))
	if shares < 0 {
		shares = 0
	}

	return Sizing{
		Shares:           shares,
		RiskAmount:       riskAmount,
		RiskPerShare:     riskPerShare,
		TotalCost:        float64(shares)*in.EntryTarget + in.FlatFee,
		PotentialProfit:  float64(shares)*(in.TakeProfit-in.EntryTarget) - in.FlatFee,
		RiskRewardRatio:  (in.TakeProfit - in.EntryTarget) / riskPerShare,
		TargetBelowEntry: in.TakeProfit < in.EntryTarget,
	}, true
}
