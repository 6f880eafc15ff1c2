package portfolio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tradedesk/tradedesk-backend/internal/analytics"
	"github.com/tradedesk/tradedesk-backend/internal/domain"
)

// quoteFetchConcurrency bounds the parallel live-quote prefetch for the
// portfolio overview.
const quoteFetchConcurrency = 4

// PortfolioService handles portfolio holding operations
type PortfolioService struct {
	PositionRepo domain.PositionRepository
	Quotes       domain.QuoteProvider
	Logger       *zap.Logger
}

// NewPortfolioService creates a new PortfolioService instance
func NewPortfolioService(positionRepo domain.PositionRepository, quotes domain.QuoteProvider, logger *zap.Logger) *PortfolioService {
	return &PortfolioService{
		PositionRepo: positionRepo,
		Quotes:       quotes,
		Logger:       logger,
	}
}

// CreatePositionInput carries the fields for a new position
type CreatePositionInput struct {
	Ticker       string
	Shares       float64
	AvgCost      float64
	CurrentPrice float64
	Sector       string
}

// Create validates and stores a new position
func (s *PortfolioService) Create(ctx context.Context, input CreatePositionInput) (*domain.Position, error) {
	p := &domain.Position{
		ID:           uuid.New(),
		Ticker:       input.Ticker,
		Shares:       input.Shares,
		AvgCost:      input.AvgCost,
		CurrentPrice: input.CurrentPrice,
		Sector:       input.Sector,
		CreatedAt:    time.Now(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.PositionRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create position: %w", err)
	}
	s.Logger.Info("position created",
		zap.String("id", p.ID.String()),
		zap.String("ticker", p.Ticker))
	return p, nil
}

// Update replaces the mutable fields of an existing position
func (s *PortfolioService) Update(ctx context.Context, id uuid.UUID, input CreatePositionInput) (*domain.Position, error) {
	existing, err := s.PositionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Ticker = input.Ticker
	existing.Shares = input.Shares
	existing.AvgCost = input.AvgCost
	existing.CurrentPrice = input.CurrentPrice
	existing.Sector = input.Sector
	if err := existing.Validate(); err != nil {
		return nil, err
	}
	if err := s.PositionRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update position: %w", err)
	}
	return existing, nil
}

// Delete removes a position
func (s *PortfolioService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.PositionRepo.Delete(ctx, id)
}

// List returns the raw positions snapshot
func (s *PortfolioService) List(ctx context.Context) ([]*domain.Position, error) {
	return s.PositionRepo.List(ctx)
}

// Overview assembles the derived portfolio view. Live quotes are
// prefetched concurrently; a failed or missing quote falls back to the
// stored price, so the overview never fails because market data is down.
func (s *PortfolioService) Overview(ctx context.Context) (*analytics.PortfolioView, error) {
	positions, err := s.PositionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}

	quotes := s.fetchQuotes(ctx, positions)
	view := analytics.BuildPortfolioView(positions, quotes)
	view.Positions = analytics.RankByPnL(view.Positions)
	return &view, nil
}

// fetchQuotes fetches live quotes for every distinct ticker in the
// snapshot. Quote failures are logged and treated as absent.
func (s *PortfolioService) fetchQuotes(ctx context.Context, positions []*domain.Position) map[string]*domain.Quote {
	if s.Quotes == nil || len(positions) == 0 {
		return nil
	}

	tickers := make([]string, 0, len(positions))
	seen := make(map[string]bool)
	for _, p := range positions {
		if !seen[p.Ticker] {
			seen[p.Ticker] = true
			tickers = append(tickers, p.Ticker)
		}
	}

	var mu sync.Mutex
	quotes := make(map[string]*domain.Quote, len(tickers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(quoteFetchConcurrency)
	for _, ticker := range tickers {
		g.Go(func() error {
			quote, err := s.Quotes.GetLiveQuote(gctx, ticker)
			if err != nil {
				s.Logger.Warn("live quote fetch failed, using stored price",
					zap.String("ticker", ticker), zap.Error(err))
				return nil
			}
			if quote != nil {
				mu.Lock()
				quotes[ticker] = quote
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	return quotes
}
