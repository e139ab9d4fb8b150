package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"movie-catalog/internal/auth"
	"movie-catalog/internal/config"
	"movie-catalog/internal/database"
	"movie-catalog/internal/handler"
	"movie-catalog/internal/metrics"
	"movie-catalog/internal/middleware"
	"movie-catalog/internal/repository"
	"movie-catalog/internal/repository/memory"
	"movie-catalog/internal/router"
	"movie-catalog/internal/service"
)

type App struct {
	server          *http.Server
	shutdownTimeout time.Duration
	cleanupFuncs    []func()
}

type stores struct {
	users   service.UserStore
	movies  service.MovieStore
	reviews service.ReviewStore
	health  interface{ Ping(ctx context.Context) error }
	close   func()
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	st, err := openStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	tokens, err := auth.NewTokenManager(cfg.JWTSecret)
	if err != nil {
		st.close()
		return nil, fmt.Errorf("failed to initialize token manager: %w", err)
	}
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	authService := service.NewAuthService(st.users, hasher, tokens, m)
	catalogService := service.NewCatalogService(st.movies, st.reviews)
	engine := service.NewAggregationEngine(st.movies, st.reviews, m)

	appRouter := router.New(cfg, middleware.NewAuthMiddleware(tokens), router.Handlers{
		Auth:   handler.NewAuthHandler(authService),
		Movie:  handler.NewMovieHandler(catalogService, engine),
		Review: handler.NewReviewHandler(catalogService),
		Health: handler.NewHealthHandler(st.health),
	}, m, reg)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		cleanupFuncs:    []func(){st.close},
	}, nil
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		slog.Warn("using in-memory store; data is lost on restart")
		mem := memory.New()
		return &stores{
			users:   mem.Users(),
			movies:  mem.Movies(),
			reviews: mem.Reviews(),
			health:  mem,
			close:   func() {},
		}, nil
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	sqlDB := db.SQL()
	slog.Info("database ready")

	return &stores{
		users:   repository.NewUserRepository(sqlDB),
		movies:  repository.NewMovieRepository(sqlDB),
		reviews: repository.NewReviewRepository(sqlDB),
		health:  db,
		close:   db.Close,
	}, nil
}

// Handler exposes the composed router for in-process tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

func (a *App) Run() error {
	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-serveErr:
		a.cleanup()
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-stop:
		slog.Info("shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	shutdownErr := a.server.Shutdown(ctx)
	a.cleanup()
	if shutdownErr != nil {
		return fmt.Errorf("graceful shutdown failed: %w", shutdownErr)
	}

	slog.Info("server stopped")
	return nil
}

func (a *App) cleanup() {
	for _, fn := range a.cleanupFuncs {
		fn()
	}
}
