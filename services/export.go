package services

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"property-api/models"
)

// PropertyPager liefert gefilterte Seiten samt Gesamtzahl, wie PropertyService.QueryMany.
type PropertyPager interface {
	QueryMany(ctx context.Context, q models.FilterQuery) ([]models.Property, int64, error)
}

// ObjectStore nimmt Export-Dateien entgegen und räumt alte Exporte auf.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte) error
	Rotate(ctx context.Context, prefix string, keep int) (int, error)
}

// Exporter schreibt einen Snapshot der Tabelle properties als gzip-komprimiertes JSON-Array.
type Exporter struct {
	Pager     PropertyPager
	Store     ObjectStore
	Logger    *zap.Logger
	Prefix    string
	PageSize  int
	KeepFiles int
}

// ExportResult beschreibt einen abgeschlossenen Export.
type ExportResult struct {
	Key      string
	Exported int
	Deleted  int
}

// Run exportiert alle Properties seitenweise nach id, lädt die Datei hoch und rotiert danach.
func (e *Exporter) Run(ctx context.Context, now time.Time) (*ExportResult, error) {
	if e.PageSize <= 0 {
		return nil, fmt.Errorf("invalid page size %d", e.PageSize)
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	exported, err := e.writeSnapshot(ctx, gz)
	if err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("close gzip stream: %w", err)
	}

	key := e.Prefix + "properties-" + now.UTC().Format("2006-01-02T15-04-05Z") + ".json.gz"
	if err := e.Store.Upload(ctx, key, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}
	e.Logger.Info("Export hochgeladen", zap.String("key", key), zap.Int("properties", exported))

	deleted, err := e.Store.Rotate(ctx, e.Prefix, e.KeepFiles)
	if err != nil {
		return nil, fmt.Errorf("rotate exports: %w", err)
	}
	return &ExportResult{Key: key, Exported: exported, Deleted: deleted}, nil
}

func (e *Exporter) writeSnapshot(ctx context.Context, gz *gzip.Writer) (int, error) {
	if _, err := gz.Write([]byte("[")); err != nil {
		return 0, err
	}

	exported := 0
	limit := e.PageSize
	for offset := 0; ; offset += limit {
		off := offset
		page, total, err := e.Pager.QueryMany(ctx, models.FilterQuery{Limit: &limit, Offset: &off})
		if err != nil {
			return exported, fmt.Errorf("load page at offset %d: %w", offset, err)
		}

		for _, p := range page {
			if exported > 0 {
				if _, err := gz.Write([]byte(",")); err != nil {
					return exported, err
				}
			}
			raw, err := json.Marshal(p)
			if err != nil {
				return exported, fmt.Errorf("encode property %d: %w", p.ID, err)
			}
			if _, err := gz.Write(raw); err != nil {
				return exported, err
			}
			exported++
		}

		if len(page) == 0 || int64(offset+len(page)) >= total {
			break
		}
	}

	if _, err := gz.Write([]byte("]")); err != nil {
		return exported, err
	}
	return exported, nil
}
