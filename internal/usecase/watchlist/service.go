package watchlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tradedesk/tradedesk-backend/internal/analytics"
	"github.com/tradedesk/tradedesk-backend/internal/domain"
)

// WatchlistService handles watchlist operations and position sizing
type WatchlistService struct {
	WatchlistRepo domain.WatchlistRepository
	SettingsRepo  domain.SettingsRepository
	Logger        *zap.Logger
}

// NewWatchlistService creates a new WatchlistService instance
func NewWatchlistService(watchlistRepo domain.WatchlistRepository, settingsRepo domain.SettingsRepository, logger *zap.Logger) *WatchlistService {
	return &WatchlistService{
		WatchlistRepo: watchlistRepo,
		SettingsRepo:  settingsRepo,
		Logger:        logger,
	}
}

// EntryInput carries the fields for a new or updated watchlist entry
type EntryInput struct {
	Ticker      string
	EntryTarget float64
	StopLoss    float64
	TakeProfit  float64
	Signal      domain.Signal
	Sector      string
}

// SizedEntry decorates a watchlist entry with its sizing computation.
// Sizing is nil when the stop-loss sits at or above the entry target;
// the UI renders InvalidStop as "invalid stop loss" in that case.
type SizedEntry struct {
	Entry       *domain.WatchlistEntry
	Sizing      *analytics.Sizing
	InvalidStop bool
}

// Create validates and stores a new watchlist entry
func (s *WatchlistService) Create(ctx context.Context, input EntryInput) (*domain.WatchlistEntry, error) {
	entry := &domain.WatchlistEntry{
		ID:          uuid.New(),
		Ticker:      input.Ticker,
		EntryTarget: input.EntryTarget,
		StopLoss:    input.StopLoss,
		TakeProfit:  input.TakeProfit,
		Signal:      input.Signal,
		Sector:      input.Sector,
		CreatedAt:   time.Now(),
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if err := s.WatchlistRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create watchlist entry: %w", err)
	}
	s.Logger.Info("watchlist entry created",
		zap.String("id", entry.ID.String()),
		zap.String("ticker", entry.Ticker),
		zap.String("signal", string(entry.Signal)))
	return entry, nil
}

// Update replaces the mutable fields of an existing entry
func (s *WatchlistService) Update(ctx context.Context, id uuid.UUID, input EntryInput) (*domain.WatchlistEntry, error) {
	existing, err := s.WatchlistRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Ticker = input.Ticker
	existing.EntryTarget = input.EntryTarget
	existing.StopLoss = input.StopLoss
	existing.TakeProfit = input.TakeProfit
	existing.Signal = input.Signal
	existing.Sector = input.Sector
	if err := existing.Validate(); err != nil {
		return nil, err
	}
	if err := s.WatchlistRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update watchlist entry: %w", err)
	}
	return existing, nil
}

// Delete removes a watchlist entry
func (s *WatchlistService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.WatchlistRepo.Delete(ctx, id)
}

// List returns all watchlist entries decorated with sizing computed from
// the current risk settings.
func (s *WatchlistService) List(ctx context.Context) ([]SizedEntry, error) {
	entries, err := s.WatchlistRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}

	settings, err := s.currentSettings(ctx)
	if err != nil {
		return nil, err
	}

	sized := make([]SizedEntry, 0, len(entries))
	for _, entry := range entries {
		sized = append(sized, sizeEntry(entry, settings))
	}
	return sized, nil
}

// Sizing computes the sizing for a single entry by ID.
func (s *WatchlistService) Sizing(ctx context.Context, id uuid.UUID) (*SizedEntry, error) {
	entry, err := s.WatchlistRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	settings, err := s.currentSettings(ctx)
	if err != nil {
		return nil, err
	}

	sized := sizeEntry(entry, settings)
	return &sized, nil
}

func (s *WatchlistService) currentSettings(ctx context.Context) (*domain.RiskSettings, error) {
	settings, err := s.SettingsRepo.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		defaults := domain.DefaultRiskSettings()
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load risk settings: %w", err)
	}
	return settings, nil
}

func sizeEntry(entry *domain.WatchlistEntry, settings *domain.RiskSettings) SizedEntry {
	result, ok := analytics.Size(analytics.SizingInput{
		EntryTarget:    entry.EntryTarget,
		StopLoss:       entry.StopLoss,
		TakeProfit:     entry.TakeProfit,
		AccountSize:    settings.AccountSize,
		RiskPercentage: settings.RiskPercentage,
		FlatFee:        settings.FlatFeePerTrade,
	})
	if !ok {
		return SizedEntry{Entry: entry, InvalidStop: true}
	}
	return SizedEntry{Entry: entry, Sizing: &result}
}
