package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"shuttersync/internal/backend"
	"shuttersync/internal/config"
	"shuttersync/internal/feed"
	apphttp "shuttersync/internal/http"
	"shuttersync/internal/identity"
	"shuttersync/internal/ideas"
	applog "shuttersync/internal/log"
	"shuttersync/internal/repo"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", applog.FieldError, err)
		os.Exit(1)
	}

	ctx := context.Background()

	keyed, cleanup, err := backend.Open(cfg, logger)
	if err != nil {
		logger.Error("failed to open store backend", applog.FieldError, err)
		os.Exit(1)
	}
	defer cleanup()

	var publisher feed.Publisher = feed.NopPublisher{}
	if cfg.FeedURL != "" {
		client, err := feed.NewClient(cfg.FeedURL, cfg.FeedExchange, cfg.FeedQueue, logger)
		if err != nil {
			logger.Error("failed to connect change feed", applog.FieldError, err)
			os.Exit(1)
		}
		defer client.Close()
		publisher = client
		logger.Info("change feed connected", "exchange", cfg.FeedExchange, "queue", cfg.FeedQueue)
	}

	generator, err := ideas.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
	if err != nil {
		logger.Error("failed to initialize idea generator", applog.FieldError, err)
		os.Exit(1)
	}

	hub := repo.NewHub(keyed, logger)
	ident := identity.NewService(keyed, logger, cfg.SessionSecret, cfg.SessionTTL)

	srv := apphttp.NewServer(":"+cfg.Port, hub, ident, generator, publisher, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting shuttersync server", "port", cfg.Port, "backend", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigChan:
			logger.Info("shutdown signal received", "signal", sig.String())
		case <-gctx.Done():
			return gctx.Err()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("server stopped gracefully")
}
