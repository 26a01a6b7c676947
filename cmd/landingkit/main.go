// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the landingkit server. It loads
// configuration, connects to services, sets up routing, and starts the
// HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"landingkit/internal/builder"
	"landingkit/internal/cache"
	"landingkit/internal/config"
	"landingkit/internal/database"
	"landingkit/internal/engine"
	"landingkit/internal/handlers"
	"landingkit/internal/leads"
	"landingkit/internal/middleware"
	"landingkit/internal/models"
	"landingkit/internal/pages"
	"landingkit/internal/registry"
	"landingkit/internal/router"
	"landingkit/internal/storage"
	"landingkit/internal/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Structured logger: text in development, JSON elsewhere.
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"public_base_url", cfg.PublicBaseURL,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}
	if cfg.SeedDemo {
		if err := database.Seed(ctx, db); err != nil {
			return err
		}
	}

	valkeyClient, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		return err
	}
	defer valkeyClient.Close()

	// Renders from a previous deployment may use other markup.
	pageCache := cache.NewPageCache(valkeyClient, cfg.PageCacheTTL)
	if n, err := pageCache.InvalidateAll(ctx); err != nil {
		slog.Warn("page cache flush failed", "error", err)
	} else {
		slog.Info("page cache flushed", "keys", n)
	}

	// Object storage is optional; without it hero uploads answer 503.
	var images handlers.ImageStore
	storageClient, err := storage.New(storage.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		return err
	}
	if storageClient != nil {
		images = storageClient
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured, hero image uploads disabled")
	}

	templates := registry.New()
	eng, err := engine.New()
	if err != nil {
		return err
	}

	pageStore := store.NewPageStore(db)
	professionalStore := store.NewProfessionalStore(db)
	leadStore := store.NewLeadStore(db)

	sessions := builder.NewSessions(builder.Deps{
		Store:       pageStore,
		Templates:   templates,
		Delay:       cfg.AutosaveDelay,
		SaveTimeout: cfg.SaveTimeout,
		OnSaved: func(p models.Page) {
			if err := pageCache.Invalidate(context.Background(), p.CustomUsername); err != nil {
				slog.Warn("page cache invalidation failed", "slug", p.CustomUsername, "error", err)
			}
		},
	})
	sessions.StartJanitor(cfg.EditorIdleTTL, 0)
	defer sessions.Stop()

	manager := pages.NewManager(pageStore, templates, pageCache, cfg.PublicBaseURL)
	leadService := leads.NewService(leadStore, cfg.LeadRedirectURL)

	leadLimiter := middleware.NewRateLimiter(cfg.LeadRateLimit, cfg.LeadRateWindow)
	defer leadLimiter.Stop()

	r := router.New(router.Config{
		Public:        handlers.NewPublic(eng, pageStore, templates, leadService, pageCache),
		Pages:         handlers.NewPages(manager, templates, sessions),
		Editor:        handlers.NewEditor(sessions, eng, images),
		Leads:         handlers.NewLeads(leadService),
		Identity:      middleware.NewIdentity(cfg.AuthJWTSecret, cfg.AuthIssuer, cfg.AuthAudience, professionalStore),
		LeadLimiter:   leadLimiter,
		SecureCookies: !cfg.IsDev(),
		Checks: map[string]router.Check{
			"postgres": db.PingContext,
			"valkey":   func(ctx context.Context) error { return valkeyClient.Ping(ctx).Err() },
		},
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	// Give active requests up to 30 seconds to complete, then flush the
	// edits of every open editor.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	sessions.Stop()
	if err := sessions.CloseAll(shutdownCtx); err != nil {
		slog.Error("some editors could not be flushed", "error", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
