// Package main is the entry point for the shop admin API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopadmin/internal/auth"
	"shopadmin/internal/cache"
	"shopadmin/internal/config"
	"shopadmin/internal/database"
	"shopadmin/internal/handlers"
	"shopadmin/internal/router"
	"shopadmin/internal/store"
)

func main() {
	// Structured logger for the whole process.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Redis for the response cache.
	redisClient, err := cache.Connect(cfg.RedisAddr(), cfg.RedisPassword)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	respCache := cache.NewResponseCache(redisClient, cache.DefaultTTL)

	// Token verification shares a secret with the identity provider.
	verifier := auth.NewVerifier(cfg.JWTSecret)

	// Initialize data stores.
	contentStore := store.NewContentStore(db)
	auditStore := store.NewAuditStore(db)
	productStore := store.NewProductStore(db)
	categoryStore := store.NewCategoryStore(db)
	orderStore := store.NewOrderStore(db)
	customerStore := store.NewCustomerStore(db)
	reviewStore := store.NewReviewStore(db)
	userStore := store.NewUserStore(db)
	settingStore := store.NewSettingStore(db)
	statsStore := store.NewStatsStore(db)

	// Create handler groups with their dependencies.
	api := router.API{
		Content:   handlers.NewContent(contentStore, auditStore, respCache),
		Public:    handlers.NewPublic(contentStore, respCache),
		Products:  handlers.NewProducts(productStore, categoryStore, auditStore),
		Orders:    handlers.NewOrders(orderStore, auditStore),
		Customers: handlers.NewCustomers(customerStore),
		Reviews:   handlers.NewReviews(reviewStore, auditStore),
		Users:     handlers.NewUsers(userStore, auditStore),
		Settings:  handlers.NewSettings(settingStore, auditStore),
		Dashboard: handlers.NewDashboard(statsStore, orderStore, productStore, customerStore, reviewStore, auditStore, respCache),
	}

	// Set up the Chi router with all middleware and routes.
	r := router.New(verifier, api)

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
