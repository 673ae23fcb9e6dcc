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

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"property-api/config"
	"property-api/metrics"
	"property-api/routes"
	"property-api/services"
	"property-api/storage"
)

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	// Setup Database Connection
	db, err := storage.OpenPostgres(cfg, logging)
	if err != nil {
		logging.Fatal("Failed to connect to properties database", zap.Error(err))
	}

	if cfg.AutoMigrate {
		logging.Info("Running database auto-migration...")
		if err := storage.Migrate(db); err != nil {
			logging.Fatal("Auto-migration failed", zap.Error(err))
		}
	}
	if cfg.SeedOnStart {
		if _, err := storage.Seed(context.Background(), db, logging); err != nil {
			logging.Warn("Failed to seed fixture properties", zap.Error(err))
		}
	}

	// Setup Services
	propertyService := services.NewPropertyService(db, logging)

	// Setup Cron
	statsJob := services.NewStatsJob(propertyService, metrics.PropertiesListed, logging)
	cronScheduler := cron.New()
	if _, err := cronScheduler.AddJob(cfg.StatsCronSchedule, statsJob); err != nil {
		logging.Fatal("Invalid stats cron schedule", zap.String("schedule", cfg.StatsCronSchedule), zap.Error(err))
	}
	cronScheduler.Start()
	go statsJob.Run()

	// Setup Router
	router := routes.NewRouter(propertyService, logging)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Failed to run server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Info("Shutting down server...")

	<-cronScheduler.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := storage.Close(db); err != nil {
		logging.Error("Failed to close database", zap.Error(err))
	}
	logging.Info("Server exited")
}
