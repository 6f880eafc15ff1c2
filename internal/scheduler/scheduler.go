// Package scheduler runs the periodic alert evaluation.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/tradedesk/tradedesk-backend/internal/usecase/alerts"
)

// Scheduler manages the cron tasks.
type Scheduler struct {
	cron   *cron.Cron
	alerts *alerts.AlertService
	logger *zap.Logger
	ctx    context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, alertService *alerts.AlertService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		alerts: alertService,
		logger: logger,
		ctx:    ctx,
	}
}

// Register adds the alert evaluation task on the given cron spec.
func (s *Scheduler) Register(alertCron string) error {
	if _, err := s.cron.AddFunc(alertCron, s.evaluateAlerts); err != nil {
		return fmt.Errorf("register alert task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// RunNow evaluates alerts immediately (manual trigger at startup).
func (s *Scheduler) RunNow() {
	s.evaluateAlerts()
}

func (s *Scheduler) evaluateAlerts() {
	s.logger.Debug("evaluating price alerts")
	if err := s.alerts.Evaluate(s.ctx); err != nil {
		s.logger.Error("alert evaluation failed", zap.Error(err))
	}
}
