package main

import (
	"context"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/sansu-dojo/drill-api/internal/config"
	"github.com/sansu-dojo/drill-api/internal/domain/ebbinghaus"
	"github.com/sansu-dojo/drill-api/internal/platform/logger"
	"github.com/sansu-dojo/drill-api/internal/platform/redis"
	"github.com/sansu-dojo/drill-api/internal/service/analytics"
	"github.com/sansu-dojo/drill-api/internal/service/review"
	"github.com/sansu-dojo/drill-api/internal/service/streak"
)

// application bundles the server's wired dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	redisClient *goredis.Client

	reviewService    review.ReviewService
	analyticsService analytics.AnalyticsService
	streakService    streak.StreakService
}

// initializeApp loads configuration, sets up logging, connects to Redis, and
// wires the services.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("redis_addr", cfg.Redis.Addr))

	client, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to set up redis: %w", err)
	}

	recordStore := redis.NewReviewRecordStore(client, log)
	streakStore := redis.NewStudyStreakStore(client, log)
	engine := ebbinghaus.NewDefaultService()

	return &application{
		config:      cfg,
		logger:      log,
		redisClient: client,
		reviewService: review.NewReviewService(
			recordStore, engine, cfg.Review.RecordTTL, log),
		analyticsService: analytics.NewAnalyticsService(recordStore, log),
		streakService: streak.NewStreakService(
			streakStore, cfg.Review.StreakDailyGoal, log),
	}, nil
}

// cleanup releases resources on shutdown.
func (app *application) cleanup() {
	if err := app.redisClient.Close(); err != nil {
		app.logger.Error("failed to close redis client", slog.Any("error", err))
	}
}
