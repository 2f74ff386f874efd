package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dgnsrekt/fc-pro-number/internal/api"
	"github.com/dgnsrekt/fc-pro-number/internal/config"
	"github.com/dgnsrekt/fc-pro-number/internal/identity"
	"github.com/dgnsrekt/fc-pro-number/internal/server"
	"github.com/dgnsrekt/fc-pro-number/internal/session"
	"github.com/dgnsrekt/fc-pro-number/internal/share"
)

func main() {
	os.Exit(run())
}

// newLogger builds the server logger from logging.level. Debug gets the
// development encoder; everything else logs JSON.
func newLogger(logCfg config.LoggingConfig) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if logCfg.Level != "" {
		if err := level.UnmarshalText([]byte(logCfg.Level)); err != nil {
			return nil, fmt.Errorf("invalid logging.level %q: %w", logCfg.Level, err)
		}
	}

	var zapConfig zap.Config
	if level == zapcore.DebugLevel {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	return zapConfig.Build()
}

func run() int {
	// Load config
	cfg, err := config.Load(os.Getenv("FCPRO_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	// Setup logger
	logger, err := newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("configuration loaded",
		zap.String("port", cfg.Server.Port),
		zap.String("apiBaseURL", cfg.API.BaseURL),
		zap.String("appURL", cfg.App.URL),
		zap.Int64("fallbackFID", cfg.Identity.FallbackFID),
		zap.Int("ratePerSecond", cfg.API.RatePerSecond),
		zap.String("logLevel", logger.Level().String()),
	)

	client := api.NewClient(cfg.API.BaseURL, cfg.API.RatePerSecond, cfg.API.Timeout(), logger)
	sequencer := session.NewSequencer(
		identity.NewResolver(cfg.Identity.FallbackFID, logger),
		api.NewFetcher(client, logger),
		logger,
	)
	composer := share.NewComposer(cfg.App.ComposeURL, cfg.App.URL)

	srv := server.NewServer(sequencer, composer, cfg.App.URL, server.NewMetrics(), logger)

	// Create router
	router, err := server.NewRouter(srv, logger)
	if err != nil {
		logger.Error("failed to create router", zap.Error(err))
		return 1
	}

	// Setup HTTP server
	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
		return 1
	}

	logger.Info("server stopped")
	return 0
}
