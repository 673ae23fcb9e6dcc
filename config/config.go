package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config enthält alle Konfigurationsparameter des API-Servers aus Umgebungsvariablen.
type Config struct {
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	// Pool-Einstellungen für database/sql unter gorm
	DBMaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	DBMaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	DBConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`

	HTTPPort string `envconfig:"HTTP_PORT" default:"3000"`

	AutoMigrate bool `envconfig:"AUTO_MIGRATE" default:"true"`
	SeedOnStart bool `envconfig:"SEED_ON_START" default:"false"`

	StatsCronSchedule string `envconfig:"STATS_CRON_SCHEDULE" default:"*/5 * * * *"`
}

// DSN gibt den Data Source Name für die PostgreSQL-Verbindung zurück.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}

// ExportConfig wird nur vom Export-Kommando (cmd/export) benötigt.
type ExportConfig struct {
	Config

	S3URL     string `envconfig:"EXPORT_S3_URL" required:"true"`
	S3Region  string `envconfig:"EXPORT_S3_REGION" required:"true"`
	S3Key     string `envconfig:"EXPORT_S3_KEY" required:"true"`
	S3Secret  string `envconfig:"EXPORT_S3_SECRET" required:"true"`
	S3Bucket  string `envconfig:"EXPORT_S3_BUCKET" required:"true"`
	Prefix    string `envconfig:"EXPORT_PREFIX" default:"exports/"`
	KeepFiles int    `envconfig:"EXPORT_KEEP" default:"4"`
	PageSize  int    `envconfig:"EXPORT_PAGE_SIZE" default:"500"`
}

// LoadExport lädt Datenbank- und S3-Einstellungen für den Export.
func LoadExport() (*ExportConfig, error) {
	_ = godotenv.Load()
	var c ExportConfig
	err := envconfig.Process("", &c)
	return &c, err
}
