package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/actuallystonmai/chef-recommendation-service/internal/cache"
	"github.com/actuallystonmai/chef-recommendation-service/internal/config"
	"github.com/actuallystonmai/chef-recommendation-service/internal/handler"
	"github.com/actuallystonmai/chef-recommendation-service/internal/logging"
	"github.com/actuallystonmai/chef-recommendation-service/internal/repository"
	"github.com/actuallystonmai/chef-recommendation-service/internal/router"
	"github.com/actuallystonmai/chef-recommendation-service/internal/scoring"
	"github.com/actuallystonmai/chef-recommendation-service/internal/service"
	"github.com/actuallystonmai/chef-recommendation-service/seeds"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// ------------ PostgreSQL ---------------
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to parse database config")
	}
	poolConfig.MaxConns = int32(cfg.DBPoolSize)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := waitForDB(ctx, pool); err != nil {
		logging.Fatal().Err(err).Msg("database not ready")
	}
	logging.Info().Msg("connected to PostgreSQL")

	// ------------ Run Migrations ---------------
	// for migrate-down using CLI command
	if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
		if err := migrateDown(ctx, pool); err != nil {
			logging.Fatal().Err(err).Msg("failed to migrate down")
		}
		return
	}

	if err := migrateUp(ctx, pool); err != nil {
		logging.Fatal().Err(err).Msg("failed to migrate up")
	}

	// ------------ Setup Seed Data ---------------
	if err := checkSeed(ctx, pool); err != nil {
		logging.Fatal().Err(err).Msg("failed to check seed")
	}

	// ------------ Redis ---------------
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to parse redis url")
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logging.Warn().Err(err).Msg("redis unavailable, feeds will be generated uncached")
	} else {
		logging.Info().Msg("connected to Redis")
	}

	// ---------------- Wiring --------------------
	repo := repository.New(pool)
	feedCache := cache.NewCache(rdb, cfg.CacheTTL, cfg.TrendingCacheTTL)
	scorer := scoring.NewScorer(cfg.Weights)
	svc := service.NewService(repo, feedCache, scorer, service.Options{
		CandidatePoolSize: cfg.CandidatePoolSize,
		BatchConcurrency:  cfg.BatchConcurrency,
	})
	h := handler.NewHandler(svc)
	r := router.Setup(h,
		router.Dependency{Name: "postgres", Ping: repo.Ping},
		router.Dependency{Name: "redis", Ping: feedCache.Ping},
	)

	logging.Info().
		Interface("weights", scorer.Weights().ToMap()).
		Int("candidate_pool_size", cfg.CandidatePoolSize).
		Msg("scorer configured")

	// ---------------- Server --------------------
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("server forced to shutdown")
	}
	logging.Info().Msg("server exited")
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		logging.Info().Int("attempt", i+1).Msg("waiting for database")
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func migrateDown(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.down.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	logging.Info().Msg("migrations dropped successfully")
	return nil
}

func migrateUp(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.up.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	logging.Info().Msg("migrations applied successfully")
	return nil
}

func checkSeed(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("check users count: %w", err)
	}
	if count > 0 {
		logging.Info().Int("users", count).Msg("database already seeded, skipping")
		return nil
	}
	return seeds.Setup(ctx, pool)
}
