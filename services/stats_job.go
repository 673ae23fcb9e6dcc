package services

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// PropertyCounter liefert die Gesamtzahl gespeicherter Properties.
type PropertyCounter interface {
	Count(ctx context.Context) (int64, error)
}

// StatsJob aktualisiert periodisch die Gauge mit der Anzahl gelisteter Properties.
// Er erfüllt cron.Job und wird im Server per cron.AddJob eingeplant.
type StatsJob struct {
	Counter PropertyCounter
	Gauge   prometheus.Gauge
	Logger  *zap.Logger
	Timeout time.Duration
}

// NewStatsJob erstellt einen StatsJob mit 30s Timeout pro Lauf.
func NewStatsJob(counter PropertyCounter, gauge prometheus.Gauge, logger *zap.Logger) *StatsJob {
	return &StatsJob{
		Counter: counter,
		Gauge:   gauge,
		Logger:  logger,
		Timeout: 30 * time.Second,
	}
}

func (j *StatsJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.Timeout)
	defer cancel()

	count, err := j.Counter.Count(ctx)
	if err != nil {
		// Gauge behält den letzten bekannten Wert
		j.Logger.Error("Stats job failed", zap.Error(err))
		return
	}
	j.Gauge.Set(float64(count))
	j.Logger.Info("Stats job completed", zap.Int64("properties", count))
}
