package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/pflag"

	"github.com/Simplici0/laborcalc/internal/api"
	"github.com/Simplici0/laborcalc/internal/config"
	"github.com/Simplici0/laborcalc/internal/db"
	"github.com/Simplici0/laborcalc/internal/laborcost"
	"github.com/Simplici0/laborcalc/internal/logging"
	"github.com/Simplici0/laborcalc/internal/migrations"
	"github.com/Simplici0/laborcalc/internal/seed"
	"github.com/Simplici0/laborcalc/internal/store"
)

type server struct {
	auth         *authService
	db           *sql.DB
	calculator   *laborcost.Calculator
	calculations *store.Calculations
	wageRates    *store.WageRates
	logger       *slog.Logger
}

func newServer(database *sql.DB, sessionSecret string, logger *slog.Logger) *server {
	wageRates := store.NewWageRates(database)
	return &server{
		auth:         newAuthService(database, sessionSecret),
		db:           database,
		calculator:   laborcost.NewCalculator(wageRates),
		calculations: store.NewCalculations(database),
		wageRates:    wageRates,
		logger:       logger,
	}
}

func main() {
	envFile := pflag.String("env-file", ".env", "dotenv file read before the environment")
	pflag.Parse()

	cfg := config.Load(*envFile)
	logger := logging.New(os.Stderr, cfg.LogLevel)
	slog.SetDefault(logger)

	for _, w := range cfg.Warnings() {
		logger.Warn("configuration", "warning", w)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := migrations.Up(database, logger); err != nil {
		return err
	}

	stats, err := seed.Run(database, seed.Config{AdminEmail: cfg.AdminEmail, AdminPassword: cfg.AdminPassword})
	if err != nil {
		return err
	}
	logger.Info("seed complete", "inserts", stats.Inserts, "updates", stats.Updates)

	srv := newServer(database, cfg.SessionSecret, logger)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", httpServer.Addr, "env", cfg.Env)
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(corsPolicy)

	r.Get("/healthz", s.handleHealth)

	r.Post(api.CalculatePath, s.handleCalculate)
	r.Post("/api/login", s.handleLogin)
	r.Post("/api/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAdmin)
		r.Get("/api/calculations", s.handleCalculationsList)
		r.Get("/api/calculations/{id}", s.handleCalculationDetail)
		r.Get("/api/wage-rates", s.handleWageRatesList)
		r.Put("/api/wage-rates/{regime}/{code}", s.handleWageRateUpdate)
	})

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Error("health check failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
