package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-parts-inventory/internal/app"
	"go-parts-inventory/internal/config"
	"go-parts-inventory/internal/repository"
	"go-parts-inventory/internal/ws"
	"go-parts-inventory/pkg/database"
	"go-parts-inventory/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// 1. Load Env
	envErr := config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	logger.Init(cfg.AppName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)
	if envErr != nil {
		logger.Logger.Warn().Msg(".env file not found, using process environment")
	}

	// 2. Setup Database
	dbCfg, err := cfg.Database()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Invalid database configuration")
	}
	db, err := database.Connect(dbCfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Str("driver", dbCfg.Driver).Msg("Failed to connect to database")
	}
	if err := repository.Migrate(db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to migrate database")
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Metrics registry with runtime collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// 5. Wiring and routes
	server := app.New(app.Options{
		AppName:     cfg.AppName,
		DB:          db,
		Hub:         wsHub,
		CORSOrigins: cfg.CORSOrigins,
		Registry:    registry,
	})

	// 6. Graceful Shutdown
	go func() {
		logger.Logger.Info().Str("port", cfg.Port).Str("driver", dbCfg.Driver).Msg("Starting server")
		if err := server.Listen(":" + cfg.Port); err != nil {
			logger.Logger.Panic().Err(err).Msg("Server stopped unexpectedly")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
	if err := server.Shutdown(); err != nil {
		logger.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	wsHub.Stop()
	if err := database.Close(db); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to close database")
	}

	logger.Logger.Info().Msg("Server exited")
}
