package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sitedock/assist/internal/config"
	"github.com/sitedock/assist/internal/db"
	dbRedis "github.com/sitedock/assist/internal/db/redis"
	"github.com/sitedock/assist/internal/domain"
	logpkg "github.com/sitedock/assist/internal/logger"
	"github.com/sitedock/assist/internal/metrics"
	chunkrepo "github.com/sitedock/assist/internal/repository/chunk"
	"github.com/sitedock/assist/internal/repository/embcache"
	"github.com/sitedock/assist/internal/scheduler"
	"github.com/sitedock/assist/internal/source"
	chiTransport "github.com/sitedock/assist/internal/transport/chi"
	openaiTransport "github.com/sitedock/assist/internal/transport/openai"
	healthuc "github.com/sitedock/assist/internal/usecase/health"
	indexeruc "github.com/sitedock/assist/internal/usecase/indexer"
	queryuc "github.com/sitedock/assist/internal/usecase/query"
	storeuc "github.com/sitedock/assist/internal/usecase/store"
	"github.com/sitedock/assist/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting assist API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// rueidis speaks to both Redis and Valkey; the driver name only selects
	// the deployment flavor.
	var store db.Store
	switch cfg.Database.Driver {
	case "valkey", "redis":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.Register()
	metrics.RegisterHTTP()

	// Embedder chain: OpenAI -> Cached
	baseEmbedder := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Logger:     logger,
	})
	var embedder domain.Embedder = embcache.New(
		baseEmbedder,
		store,
		cfg.Storage.KeyPrefix,
		cfg.Embedding.Model,
		time.Duration(cfg.Embedding.CacheTTLHours)*time.Hour,
		metrics.EmbeddingCacheTotal,
		logger,
	)
	logger.Info("Embedder created",
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	generator := openaiTransport.NewGenerator(&openaiTransport.GeneratorConfig{
		APIKey:      cfg.Generation.APIKey,
		BaseURL:     cfg.Generation.BaseURL,
		Model:       cfg.Generation.Model,
		MaxTokens:   cfg.Generation.MaxTokens,
		Temperature: cfg.Generation.Temperature,
	})

	// Repositories and use case services
	repo := chunkrepo.New(store, cfg.Storage.KeyPrefix, logger)
	storeSvc := storeuc.New(repo, logger)

	dataSource := source.New(cfg.Source.Path, logger)
	indexerSvc := indexeruc.New(dataSource, storeSvc, embedder, logger).
		WithWindow(time.Duration(cfg.Indexing.WindowHours) * time.Hour).
		WithClearBeforeFull(cfg.Indexing.ClearBeforeFull)

	querySvc := queryuc.New(storeSvc, embedder, generator, logger).
		WithLimit(cfg.RAG.ResultLimit).
		WithConfidence(queryuc.ConfidenceConfig{
			ReferenceContentLength: cfg.RAG.ReferenceContentLength,
			ReferenceTypeDiversity: cfg.RAG.ReferenceTypeDiversity,
			StalenessHorizon:       time.Duration(cfg.RAG.StalenessHorizonDays) * 24 * time.Hour,
			SparseMetadataLevel:    cfg.RAG.SparseMetadataLevel,
			Cap:                    cfg.RAG.ConfidenceCap,
		})

	healthSvc := healthuc.New(store, baseEmbedder)

	// Scheduled indexing triggers
	fullTrigger := scheduler.New("full_index",
		time.Duration(cfg.Indexing.FullIntervalHours)*time.Hour,
		func(ctx context.Context) error {
			_, err := indexerSvc.FullIndex(ctx)
			return err
		}, logger)
	incTrigger := scheduler.New("incremental_index",
		time.Duration(cfg.Indexing.IncrementalIntervalMin)*time.Minute,
		func(ctx context.Context) error {
			_, err := indexerSvc.IncrementalIndex(ctx)
			return err
		}, logger)
	triggers := []*scheduler.Trigger{fullTrigger, incTrigger}
	fullTrigger.Start()
	incTrigger.Start()
	defer func() {
		for _, t := range triggers {
			t.Stop()
		}
	}()

	// HTTP server
	server := chiTransport.NewServer(querySvc, indexerSvc, storeSvc, healthSvc, triggers, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
