package domain

import "context"

// Quote is a live market-data snapshot for a single ticker, as returned
// by the market-data collaborator. A nil *Quote means the quote is
// unavailable and stored prices are authoritative.
type Quote struct {
	Ticker         string
	DayClose       float64
	LastTradePrice float64
	PreviousClose  float64
}

// QuoteProvider defines the interface to the market-data collaborator.
// Implementations return (nil, nil) when a quote is unavailable; errors
// are reserved for transport failures the caller may want to log.
type QuoteProvider interface {
	GetLiveQuote(ctx context.Context, ticker string) (*Quote, error)
}
