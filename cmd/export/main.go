package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"property-api/config"
	"property-api/services"
	"property-api/storage"
)

// Exportiert alle Properties als gzip-JSON nach S3 und behält die letzten EXPORT_KEEP Dateien.
func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	logging.Info("Starte Export-Prozess...")

	cfg, err := config.LoadExport()
	if err != nil {
		logging.Fatal("Fehler beim Laden der Konfiguration", zap.Error(err))
	}

	// 1. Datenbank öffnen
	db, err := storage.OpenPostgres(&cfg.Config, logging)
	if err != nil {
		logging.Fatal("Fehler beim Verbinden mit der Datenbank", zap.Error(err))
	}
	defer storage.Close(db)

	// 2. S3-Client erstellen
	s3Client, err := storage.NewS3Client(cfg)
	if err != nil {
		logging.Fatal("Fehler beim Erstellen des S3-Clients", zap.Error(err))
	}

	// 3. Exportieren, hochladen und alte Exporte rotieren
	exporter := &services.Exporter{
		Pager:     services.NewPropertyService(db, logging),
		Store:     storage.NewBucket(s3Client, cfg.S3Bucket),
		Logger:    logging,
		Prefix:    cfg.Prefix,
		PageSize:  cfg.PageSize,
		KeepFiles: cfg.KeepFiles,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	res, err := exporter.Run(ctx, time.Now())
	if err != nil {
		logging.Fatal("Export fehlgeschlagen", zap.Error(err))
	}
	logging.Info("Export-Prozess erfolgreich abgeschlossen.",
		zap.String("bucket", cfg.S3Bucket),
		zap.String("key", res.Key),
		zap.Int("properties", res.Exported),
		zap.Int("rotated", res.Deleted))
}
