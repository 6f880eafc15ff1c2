package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tradedesk/tradedesk-backend/internal/domain"
)

// SettingsService handles risk settings reads and updates
type SettingsService struct {
	SettingsRepo domain.SettingsRepository
	Logger       *zap.Logger
}

// NewSettingsService creates a new SettingsService instance
func NewSettingsService(settingsRepo domain.SettingsRepository, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		SettingsRepo: settingsRepo,
		Logger:       logger,
	}
}

// Get returns the current risk settings, seeding defaults on first read.
func (s *SettingsService) Get(ctx context.Context) (*domain.RiskSettings, error) {
	current, err := s.SettingsRepo.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		defaults := domain.DefaultRiskSettings()
		defaults.UpdatedAt = time.Now()
		if err := s.SettingsRepo.Save(ctx, &defaults); err != nil {
			return nil, fmt.Errorf("seed default settings: %w", err)
		}
		s.Logger.Info("seeded default risk settings")
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return current, nil
}

// UpdateInput carries the new risk settings values
type UpdateInput struct {
	AccountSize     float64
	RiskPercentage  float64
	FlatFeePerTrade float64
}

// Update validates and stores new risk settings
func (s *SettingsService) Update(ctx context.Context, input UpdateInput) (*domain.RiskSettings, error) {
	next := &domain.RiskSettings{
		AccountSize:     input.AccountSize,
		RiskPercentage:  input.RiskPercentage,
		FlatFeePerTrade: input.FlatFeePerTrade,
		UpdatedAt:       time.Now(),
	}
	if err := next.Validate(); err != nil {
		return nil, err
	}
	if err := s.SettingsRepo.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}
	s.Logger.Info("risk settings updated",
		zap.Float64("accountSize", next.AccountSize),
		zap.Float64("riskPct", next.RiskPercentage))
	return next, nil
}
