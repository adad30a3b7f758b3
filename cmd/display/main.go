package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"millionaire-display/internal/config"
	"millionaire-display/internal/feed"
	"millionaire-display/internal/format"
	"millionaire-display/internal/logging"
	"millionaire-display/internal/rtdb"
	"millionaire-display/internal/screen"
	"millionaire-display/internal/server"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger setup failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("display stopped", zap.Error(err))
		stop()
		_ = logger.Sync()
		os.Exit(1)
	}
	logger.Info("display stopped")
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	databaseURL, namespace, authHost := cfg.DatabaseURL, "", ""
	if cfg.Local() {
		databaseURL = "http://" + cfg.DatabaseEmulatorHost
		namespace = cfg.ProjectID
		authHost = cfg.AuthEmulatorHost
	}

	auth := rtdb.NewAnonymousAuth(cfg.APIKey, authHost, nil)
	client := rtdb.NewClient(databaseURL, namespace, auth, nil, logger.Named("rtdb"))
	router := screen.NewRouter(ctx, screen.Options{
		RevealDelay:  cfg.TeamResultDelay(),
		StepInterval: cfg.StepperStep(),
		Formatter:    format.New(cfg.PrizeLocale),
		Logger:       logger.Named("screen"),
	})
	defer router.Stop()

	session := feed.NewSession(auth, client, router, logger.Named("feed"))
	srv := server.New(router, logger.Named("server"))
	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return session.Run(gctx)
	})
	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		logger.Info("display listening",
			zap.String("addr", httpSrv.Addr),
			zap.String("env", cfg.Env),
			zap.String("project", cfg.ProjectID),
		)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
