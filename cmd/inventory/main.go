package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tair/warehouse-inventory/config"
	_ "github.com/tair/warehouse-inventory/docs"
	"github.com/tair/warehouse-inventory/internal/app"
	"github.com/tair/warehouse-inventory/pkg/logger"
	"github.com/tair/warehouse-inventory/pkg/tracing"
)

const serviceVersion = "1.0.0"

func main() {
	cfg := config.Load()

	// Initialize logger
	logger.Init(cfg.Server.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.Logger.Level)

	logger.Logger.Info().
		Str("service", cfg.Server.ServiceName).
		Str("environment", cfg.Server.Environment).
		Str("log_level", cfg.Logger.Level).
		Msg("Starting inventory service")

	// Initialize tracing
	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.Config{
			ServiceName:    cfg.Server.ServiceName,
			ServiceVersion: serviceVersion,
			Endpoint:       cfg.Tracing.Endpoint,
			SampleRatio:    cfg.Tracing.SampleRatio,
		})
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	server, cleanup, err := app.InitializeServer(cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize server")
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server stopped with error")
		return
	}

	logger.Logger.Info().Msg("Inventory service stopped")
}
