// Package app provides the application lifecycle management for pagegen.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/pagegen/internal/api"
	"github.com/jonesrussell/pagegen/internal/cache"
	"github.com/jonesrussell/pagegen/internal/config"
	"github.com/jonesrussell/pagegen/internal/database"
	"github.com/jonesrussell/pagegen/internal/generator"
	"github.com/jonesrussell/pagegen/internal/logger"
	"github.com/jonesrussell/pagegen/internal/metrics"
	"github.com/jonesrussell/pagegen/internal/seo"
)

const (
	// DefaultShutdownTimeout is the timeout for graceful shutdown
	DefaultShutdownTimeout = 30 * time.Second

	bootstrapTimeout = 30 * time.Second
	pingTimeout      = 5 * time.Second
)

// App holds the assembled service with all its dependencies
type App struct {
	config      *config.Config
	logger      logger.Logger
	db          *sqlx.DB
	redisClient redis.UniversalClient
	repo        *database.Repository
	pageCache   *cache.PageCache
	generator   *generator.Generator
	worker      *generator.Worker
	router      *api.Router
	version     string
}

// Options contains configuration for creating a new App
type Options struct {
	ConfigPath string
	Version    string
}

// New creates an App with all dependencies initialized
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	appLogger, err := logger.NewLogger(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	appLogger = appLogger.With(
		logger.String("service", "pagegen"),
		logger.String("version", opts.Version),
	)

	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		_ = appLogger.Sync()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	bootstrapCtx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
	defer cancel()
	if bootErr := database.Bootstrap(bootstrapCtx, db); bootErr != nil {
		db.Close()
		_ = appLogger.Sync()
		return nil, fmt.Errorf("bootstrap schema: %w", bootErr)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.URL,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancelPing := context.WithTimeout(context.Background(), pingTimeout)
	defer cancelPing()
	if pingErr := redisClient.Ping(pingCtx).Err(); pingErr != nil {
		db.Close()
		_ = appLogger.Sync()
		return nil, fmt.Errorf("connect to Redis: %w", pingErr)
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	repo := database.NewRepository(db)
	pageCache := cache.NewPageCache(redisClient, cfg.Generation.CacheTTL, m, appLogger)
	synth := seo.NewSynthesizer(cfg.Site)
	gen := generator.New(repo, repo, synth, m, appLogger)

	var worker *generator.Worker
	if cfg.Generation.Schedule != "" {
		worker = generator.NewWorker(gen, cfg.Generation.Schedule, appLogger)
	}

	router := api.NewRouter(repo, pageCache, gen, redisClient, cfg, appLogger, opts.Version)

	return &App{
		config:      cfg,
		logger:      appLogger,
		db:          db,
		redisClient: redisClient,
		repo:        repo,
		pageCache:   pageCache,
		generator:   gen,
		worker:      worker,
		router:      router,
		version:     opts.Version,
	}, nil
}

// RunServer starts the HTTP server and the scheduled generation worker (when
// configured) and blocks until shutdown.
func (a *App) RunServer(ctx context.Context) error {
	server := a.router.NewServer()

	if a.worker != nil {
		if err := a.worker.Start(ctx); err != nil {
			return err
		}
		defer a.worker.Stop()
	}

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server listening",
			logger.String("address", a.config.Server.Address),
		)
		serverErr <- server.ListenAndServe()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		a.logger.Info("shutting down gracefully",
			logger.String("signal", sig.String()),
		)
	case <-ctx.Done():
		a.logger.Info("shutting down on context cancellation")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("server error", logger.Error(err))
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("server shutdown error", logger.Error(err))
		return err
	}

	a.logger.Info("HTTP server stopped")
	return nil
}

// RunGeneration executes one full generation pass
func (a *App) RunGeneration(ctx context.Context) (*generator.Report, error) {
	return a.generator.Run(ctx)
}

// ClearPages removes all generated pages and flushes the page cache
func (a *App) ClearPages(ctx context.Context) (int64, error) {
	deleted, err := a.repo.DeleteAllPages(ctx)
	if err != nil {
		return 0, err
	}

	if flushErr := a.pageCache.Flush(ctx); flushErr != nil {
		a.logger.Warn("failed to flush page cache", logger.Error(flushErr))
	}

	return deleted, nil
}

// Logger returns the application logger
func (a *App) Logger() logger.Logger {
	return a.logger
}

// Close cleans up resources
func (a *App) Close() error {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close Redis client", logger.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close database", logger.Error(err))
		}
	}
	return a.logger.Sync()
}
