package trades

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tradedesk/tradedesk-backend/internal/analytics"
	"github.com/tradedesk/tradedesk-backend/internal/domain"
)

// TradeService handles the trade journal: creation, deletion, and the
// chart aggregates derived from it. Trade records are immutable, so
// there is no update path.
type TradeService struct {
	TradeRepo domain.TradeRepository
	Logger    *zap.Logger
}

// NewTradeService creates a new TradeService instance
func NewTradeService(tradeRepo domain.TradeRepository, logger *zap.Logger) *TradeService {
	return &TradeService{
		TradeRepo: tradeRepo,
		Logger:    logger,
	}
}

// CreateTradeInput carries the fields for a new trade record
type CreateTradeInput struct {
	Type   domain.TradeType
	Ticker string
	Shares float64
	Price  float64
	Fees   float64
	Date   string
	Notes  string
}

// Summary bundles the chart aggregates computed from the full journal
// snapshot. Everything is recomputed per request; at journal scale
// (tens to low hundreds of records) a full rescan beats bookkeeping.
type Summary struct {
	ByDate         []analytics.DateBucket    `json:"byDate"`
	CumulativeFees []analytics.FeePoint      `json:"cumulativeFees"`
	ByTicker       []analytics.CategoryTotal `json:"byTicker"`
	TotalTrades    int                       `json:"totalTrades"`
}

// Create validates and stores a new trade record
func (s *TradeService) Create(ctx context.Context, input CreateTradeInput) (*domain.TradeRecord, error) {
	trade := &domain.TradeRecord{
		ID:        uuid.New(),
		Type:      input.Type,
		Ticker:    input.Ticker,
		Shares:    input.Shares,
		Price:     input.Price,
		Fees:      input.Fees,
		Date:      input.Date,
		Notes:     input.Notes,
		CreatedAt: time.Now(),
	}
	if err := trade.Validate(); err != nil {
		return nil, err
	}
	if err := s.TradeRepo.Create(ctx, trade); err != nil {
		return nil, fmt.Errorf("create trade: %w", err)
	}
	s.Logger.Info("trade recorded",
		zap.String("id", trade.ID.String()),
		zap.String("ticker", trade.Ticker),
		zap.String("type", string(trade.Type)),
		zap.Float64("shares", trade.Shares))
	return trade, nil
}

// Delete removes a trade record
func (s *TradeService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.TradeRepo.Delete(ctx, id)
}

// List returns the full journal snapshot
func (s *TradeService) List(ctx context.Context) ([]*domain.TradeRecord, error) {
	return s.TradeRepo.List(ctx)
}

// Summarize computes the chart aggregates from the current snapshot.
func (s *TradeService) Summarize(ctx context.Context) (*Summary, error) {
	trades, err := s.TradeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}

	byDate := analytics.TradesByDate(trades)
	return &Summary{
		ByDate:         byDate,
		CumulativeFees: analytics.CumulativeFees(byDate),
		ByTicker:       analytics.VolumeByTicker(trades, analytics.DefaultTickerLimit),
		TotalTrades:    len(trades),
	}, nil
}
