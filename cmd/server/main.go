package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anhbui5302/AnhBlogWebAPI/internal/config"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/database"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/logger"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/oauth"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/redis"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Debug)
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := openDatabase(cfg)
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", map[string]any{"error": err.Error()})
		}
	}()
	info := db.GetInfo()
	logger.Info("database ready", map[string]any{
		"driver":         info.Driver,
		"open_conns":     info.OpenConns,
		"max_open_conns": info.MaxOpenConns,
	})

	login, cleanup := setupLogin(ctx, cfg)
	defer cleanup()

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           routes.SetupRoutes(db, login, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", map[string]any{"error": err.Error()})
		}
	}()
	logger.Info("server started", map[string]any{"port": cfg.Server.Port})

	<-ctx.Done()
	logger.Info("shutdown signal received", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", map[string]any{"error": err.Error()})
		return
	}
	logger.Info("server stopped cleanly", nil)
}

// openDatabase picks primary, fallback or in-memory emergency mode from config.
func openDatabase(cfg *config.Config) *database.Database {
	primary, fallback := cfg.Database.Primary, cfg.Database.Fallback

	switch {
	case primary.Enable:
		fb := enabledOrEmpty(fallback)
		return database.InitWithFallback(primary.Driver, primary.DSN, fb.Driver, fb.DSN, cfg.Database.LogSQL)
	case fallback.Enable:
		return database.InitWithFallback(fallback.Driver, fallback.DSN, "", "", cfg.Database.LogSQL)
	default:
		logger.Warn("all databases disabled, running in emergency mode", nil)
		return database.InitWithFallback("sqlite", ":memory:", "", "", cfg.Database.LogSQL)
	}
}

// enabledOrEmpty drops a disabled fallback so InitWithFallback goes straight to
// emergency mode.
func enabledOrEmpty(c config.DBConnection) config.DBConnection {
	if !c.Enable {
		return config.DBConnection{}
	}
	return c
}

// setupLogin registers every provider that has credentials and picks the
// flow store: Redis when configured, process memory otherwise.
func setupLogin(ctx context.Context, cfg *config.Config) (*oauth.Login, func()) {
	var providers []oauth.Provider

	if cfg.OAuth.GoogleClientID != "" {
		google, err := oauth.NewGoogle(ctx, cfg.OAuth.GoogleClientID, cfg.OAuth.GoogleClientSecret,
			cfg.Server.BaseURL+"/google/callback")
		if err != nil {
			logger.Error("google login disabled", map[string]any{"error": err.Error()})
		} else {
			providers = append(providers, google)
		}
	}
	if cfg.OAuth.FacebookClientID != "" {
		facebook, err := oauth.NewFacebook(cfg.OAuth.FacebookClientID, cfg.OAuth.FacebookClientSecret,
			cfg.Server.BaseURL+"/facebook/callback")
		if err != nil {
			logger.Error("facebook login disabled", map[string]any{"error": err.Error()})
		} else {
			providers = append(providers, facebook)
		}
	}

	registry := oauth.NewRegistry(providers...)
	logger.Info("oauth providers registered", map[string]any{"providers": registry.Slugs()})

	if cfg.Redis.Addr == "" {
		return oauth.NewLogin(registry, oauth.NewMemoryFlowStore()), func() {}
	}

	client, err := redis.New(ctx, cfg.Redis.Addr, cfg.Redis.Password)
	if err != nil {
		logger.Warn("redis unavailable, keeping login flows in memory", map[string]any{
			"addr":  cfg.Redis.Addr,
			"error": err.Error(),
		})
		return oauth.NewLogin(registry, oauth.NewMemoryFlowStore()), func() {}
	}
	logger.Info("redis ready", map[string]any{"addr": cfg.Redis.Addr})

	return oauth.NewLogin(registry, oauth.NewRedisFlowStore(client.Client)), func() {
		if err := client.Close(); err != nil {
			logger.Error("failed to close redis", map[string]any{"error": err.Error()})
		}
	}
}
