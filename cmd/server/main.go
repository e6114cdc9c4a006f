package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thefamilyalliance/auth-service/internal/auth"
	"github.com/thefamilyalliance/auth-service/internal/config"
	"github.com/thefamilyalliance/auth-service/internal/lib/sl"
	"github.com/thefamilyalliance/auth-service/internal/middleware"
	"github.com/thefamilyalliance/auth-service/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", sl.Err(err))
		os.Exit(1)
	}
	log := setupLogger(cfg.Env)
	ctx := context.Background()

	// ── PostgreSQL ────────────────────────────────────────────
	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Error("postgres connect", sl.Err(err))
		os.Exit(1)
	}
	defer pool.Close()
	pg := store.NewPostgresStore(pool)
	if err := pg.Migrate(ctx); err != nil {
		log.Error("postgres migrate", sl.Err(err))
		os.Exit(1)
	}

	// ── Handlers ─────────────────────────────────────────────
	authHandler := auth.NewHandler(log, pg)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", authHandler)

	var handler http.Handler = middleware.CORS(cfg.AllowedOrigin)(mux)
	handler = middleware.Metrics(handler)
	handler = middleware.RequestLogger(log)(handler)
	handler = middleware.Recoverer(log)(handler)

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("auth service listening",
			slog.String("port", cfg.Port),
			slog.String("env", cfg.Env),
			slog.String("allowed_origin", cfg.AllowedOrigin),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", sl.Err(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutCtx)
}

func setupLogger(env string) *slog.Logger {
	if env == "prod" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
