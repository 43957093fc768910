// backend-go/cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sellerdesk/stockwise/backend-go/internal/api"
	"github.com/sellerdesk/stockwise/backend-go/internal/cache"
	"github.com/sellerdesk/stockwise/backend-go/internal/config"
	"github.com/sellerdesk/stockwise/backend-go/internal/engine"
	"github.com/sellerdesk/stockwise/backend-go/internal/provider"
	"github.com/sellerdesk/stockwise/backend-go/internal/repository/postgres"
	"github.com/sellerdesk/stockwise/backend-go/internal/service"
	"github.com/sellerdesk/stockwise/backend-go/internal/storage"
	"github.com/sellerdesk/stockwise/backend-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize cache store; redis failures degrade to in-process
	store, err := cache.NewStore(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("cache unavailable, using in-memory store")
		store = cache.NewMemoryStore()
	}

	// Initialize snapshot archive
	var archive storage.SnapshotArchive = storage.NoopArchive{}
	if cfg.Archive.Enabled {
		minioArchive, err := storage.NewMinioArchive(cfg.Archive)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("snapshot archive unavailable, archival disabled")
		} else {
			archive = minioArchive
		}
	}

	// Initialize services
	providers := provider.NewHTTPProviders(cfg.Providers)
	analysisService := service.NewAnalysisService(service.Options{
		Providers: provider.Providers{
			Remains: providers,
			Storage: providers,
			Sales:   providers,
		},
		Cache:      store,
		Repo:       postgres.NewCostInputsRepository(db),
		Archive:    archive,
		Params:     engineParams(cfg.Engine),
		Rates:      engine.DefaultStorageRates(),
		PeriodDays: cfg.Providers.PeriodDays,
	})

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{AnalysisService: analysisService}, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

func engineParams(cfg config.EngineConfig) engine.Params {
	params := engine.DefaultParams()
	if cfg.SentinelDays > 0 {
		params.SentinelDaysOfInventory = cfg.SentinelDays
	}
	if cfg.DiscountFactor > 0 {
		params.DiscountSellThroughFactor = cfg.DiscountFactor
	}
	if cfg.OverstockDays > 0 {
		params.OverstockDays = cfg.OverstockDays
	}
	if cfg.DefaultDiscountPct > 0 {
		params.DefaultDiscountPercent = cfg.DefaultDiscountPct
	}
	if cfg.MediumStockMultiplier > 0 {
		params.MediumStockMultiplier = cfg.MediumStockMultiplier
	}
	if cfg.DefaultDailySales > 0 {
		params.DefaultDailySalesRate = cfg.DefaultDailySales
	}
	if cfg.FlatDailyStorageCost > 0 {
		params.FlatDailyStorageCost = cfg.FlatDailyStorageCost
	}
	return params
}
