package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iamasit07/connectn/internal/config"
	"github.com/iamasit07/connectn/internal/repository/postgres"
	"github.com/iamasit07/connectn/internal/repository/redis"
	"github.com/iamasit07/connectn/internal/service/benchmark"
	"github.com/iamasit07/connectn/internal/service/cleanup"
	"github.com/iamasit07/connectn/internal/service/game"
	transportHttp "github.com/iamasit07/connectn/internal/transport/http"
	"github.com/iamasit07/connectn/internal/transport/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	envErr := config.LoadEnvFile()

	cfg := config.LoadConfig()
	config.SetupLogging(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if envErr != nil {
		log.Debug().Msg("no .env file found")
	}

	// 1. Persistence: Postgres when configured, memory otherwise
	var store benchmark.Store = benchmark.NewMemoryStore()
	var pruner cleanup.RunPruner
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(postgres.Options{
			Driver:             cfg.DBDriver,
			URL:                cfg.DatabaseURL,
			MaxOpenConns:       cfg.DBMaxOpenConns,
			MaxIdleConns:       cfg.DBMaxIdleConns,
			ConnMaxLifetimeMin: cfg.DBConnMaxLifetimeMin,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("database-init-failed")
		}
		defer db.Close()
		repo := postgres.NewBenchmarkRepo(db)
		store = repo
		pruner = repo
	} else {
		log.Warn().Msg("DATABASE_URL not set, benchmark runs are kept in memory")
	}

	// 2. Redis report cache, skipped when unreachable
	var cache benchmark.Cache
	if cfg.RedisURL != "" {
		if err := redis.InitRedis(cfg.RedisURL, cfg.RedisPassword); err != nil {
			log.Warn().Err(err).Msg("redis-init-failed")
		}
		defer redis.CloseRedis()
		if redis.IsRedisEnabled() && redis.RedisClient != nil {
			cache = redis.NewReportCache(redis.RedisClient, cfg.BenchmarkCacheTTL)
		}
	}

	// 3. Services
	sessionManager := game.NewSessionManager()
	benchmarks := benchmark.NewService(
		benchmark.NewRunner(cfg.BenchmarkWorkers),
		store,
		cache,
		benchmark.PlanOptions{
			Runs:           cfg.BenchmarkRuns,
			MinimaxDepth:   cfg.MinimaxDepth,
			AlphaBetaDepth: cfg.AlphaBetaDepth,
			MaxDepth:       cfg.MaxSearchDepth,
		},
		cfg.BenchmarkTimeout,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Background workers
	cleanup.NewWorker(sessionManager, pruner, cfg.SessionIdleTimeout, cfg.BenchmarkRetention, cfg.CleanupInterval).Start(ctx)

	// 5. Transport
	connManager := websocket.NewConnectionManager()
	wsHandler := websocket.NewHandler(connManager, sessionManager, cfg.AlphaBetaDepth, cfg.MaxSearchDepth, cfg.AllowedOrigins)
	router := transportHttp.NewRouter(transportHttp.RouterDeps{
		AllowedOrigins: cfg.AllowedOrigins,
		JWTSecret:      cfg.JWTSecret,
		Move: transportHttp.NewMoveHandler(transportHttp.SearchLimits{
			MinimaxDepth:   cfg.MinimaxDepth,
			AlphaBetaDepth: cfg.AlphaBetaDepth,
			MaxDepth:       cfg.MaxSearchDepth,
		}),
		Benchmarks: transportHttp.NewBenchmarkHandler(benchmarks),
		Watch:      transportHttp.NewWatchHandler(sessionManager),
		WebSocket:  wsHandler.HandleWebSocket,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server-starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server-error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("server-shutting-down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	connManager.CloseAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server-forced-shutdown")
	}
	done := make(chan struct{})
	go func() {
		benchmarks.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warn().Msg("benchmark-runs-abandoned")
	}

	log.Info().Msg("server-exited")
}
