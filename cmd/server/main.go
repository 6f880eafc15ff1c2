package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tradedesk/tradedesk-backend/internal/adapter/assistant"
	"github.com/tradedesk/tradedesk-backend/internal/adapter/httpapi"
	"github.com/tradedesk/tradedesk-backend/internal/adapter/marketdata"
	"github.com/tradedesk/tradedesk-backend/internal/adapter/repository/postgres"
	"github.com/tradedesk/tradedesk-backend/internal/config"
	"github.com/tradedesk/tradedesk-backend/internal/scheduler"
	"github.com/tradedesk/tradedesk-backend/internal/usecase/alerts"
	"github.com/tradedesk/tradedesk-backend/internal/usecase/portfolio"
	"github.com/tradedesk/tradedesk-backend/internal/usecase/settings"
	"github.com/tradedesk/tradedesk-backend/internal/usecase/trades"
	"github.com/tradedesk/tradedesk-backend/internal/usecase/watchlist"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("load config", err)
	}

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync() //nolint:errcheck

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	db, err := postgres.NewDB(cfg.DSN())
	if err != nil {
		logger.Fatal("connect to database", zap.Error(err))
	}
	defer db.Close()

	positionRepo := postgres.NewPositionRepository(db)
	watchlistRepo := postgres.NewWatchlistRepository(db)
	tradeRepo := postgres.NewTradeRepository(db)
	alertRepo := postgres.NewAlertRepository(db)
	settingsRepo := postgres.NewSettingsRepository(db)

	quotes := marketdata.NewClient(cfg.MarketData.BaseURL, cfg.MarketData.APIKey, logger)

	portfolioService := portfolio.NewPortfolioService(positionRepo, quotes, logger)
	watchlistService := watchlist.NewWatchlistService(watchlistRepo, settingsRepo, logger)
	tradeService := trades.NewTradeService(tradeRepo, logger)
	alertService := alerts.NewAlertService(alertRepo, quotes, logger)
	settingsService := settings.NewSettingsService(settingsRepo, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var chatAssistant httpapi.Assistant
	if cfg.Assistant.APIKey != "" {
		client, err := assistant.NewClient(ctx, cfg.Assistant.APIKey, cfg.Assistant.Model, logger)
		if err != nil {
			logger.Fatal("create assistant client", zap.Error(err))
		}
		chatAssistant = client
	} else {
		logger.Warn("assistant api key not set, chat endpoint disabled")
	}

	sched := scheduler.NewScheduler(ctx, alertService, logger)
	if err := sched.Register(cfg.Schedule.AlertCron); err != nil {
		logger.Fatal("register scheduler tasks", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	api := httpapi.NewServer(
		portfolioService, watchlistService, tradeService,
		alertService, settingsService, quotes, chatAssistant, logger,
	)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           api.Handler(cfg.HTTP.APIToken),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := cfg.Build()
	if err != nil {
		fatal("build logger", err)
	}
	return logger
}

func fatal(msg string, err error) {
	os.Stderr.WriteString(msg + ": " + err.Error() + "\n")
	os.Exit(1)
}
