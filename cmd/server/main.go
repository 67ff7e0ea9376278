package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/repochat/repochat/internal/config"
	"github.com/repochat/repochat/internal/handler"
	authmw "github.com/repochat/repochat/internal/middleware"
	"github.com/repochat/repochat/internal/service"
	"github.com/repochat/repochat/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Connect to database with retry
	ctx := context.Background()
	pool, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify required tables exist
	if err := store.StartupChecks(ctx, pool); err != nil {
		slog.Error("startup checks failed", "error", err)
		os.Exit(1)
	}

	// Mark clones interrupted by a previous crash as failed
	if err := store.MarkStaleClones(ctx, pool, cfg.CloneStaleMin); err != nil {
		slog.Error("stale clone sweep failed", "error", err)
		// Non-fatal, continue startup
	}

	// Initialize services
	st := store.New(pool)
	authSvc := service.NewAuthService(cfg.JWTSecret, cfg.JWTExpiryHours)
	ingestSvc := service.NewIngestService(st, cfg.CloneBasePath)
	llmSvc := service.NewLLMService(
		cfg.LLMProvider,
		cfg.LLMModel,
		cfg.AnthropicAPIKey,
		cfg.LLMMaxTokens,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(pool, authSvc)
	reposHandler := handler.NewReposHandler(st, ingestSvc)
	chatHandler := handler.NewChatHandler(cfg, st, llmSvc)

	// Build router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	// Health check (no auth required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, `{"status":"unhealthy","error":"%s"}`, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok"}`)
	})

	// Auth endpoints (no auth required — these issue tokens)
	r.Post("/v1/auth/login", authHandler.Login)

	// Protected endpoints
	r.Group(func(r chi.Router) {
		r.Use(authmw.AuthMiddleware(authSvc, cfg.AuthEnabled))

		// Repository management
		r.Post("/v1/repos", reposHandler.Clone)
		r.Get("/v1/repos", reposHandler.List)
		r.Get("/v1/repos/{id}", reposHandler.Get)
		r.Get("/v1/repos/{id}/files", reposHandler.Files)

		// Chat
		r.Post("/v1/repos/{id}/chat", chatHandler.Handle)

		// Admin-only endpoints (require admin role)
		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireRole("admin"))
			r.Delete("/v1/repos/{id}", reposHandler.Delete)
		})
	})

	slog.Info("auth configuration",
		"auth_enabled", cfg.AuthEnabled,
		"jwt_expiry_hours", cfg.JWTExpiryHours,
	)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Graceful shutdown
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("starting server", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-shutdownCtx.Done()
	slog.Info("shutting down server...")

	cancelCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(cancelCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
