package storage

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"property-api/models"
)

// FixtureCount ist die Anzahl der Testdaten-Zeilen; auf einer frischen Tabelle erhalten sie die IDs 1..126.
const FixtureCount = 126

var (
	fixtureStreets = []string{
		"Harbour View", "Elm Road", "Quay Street", "Mill Lane", "Orchard Close",
		"Station Road", "Kings Avenue", "Beacon Hill", "Willow Way",
	}
	fixtureTypes = []string{"Single-Family", "Condo", "Townhouse", "Multi-Family"}
)

// FixtureProperties erzeugt deterministische Testdaten. Jede fünfte Zeile hat keinen Typ.
func FixtureProperties() []models.Property {
	out := make([]models.Property, 0, FixtureCount)
	for i := 0; i < FixtureCount; i++ {
		p := models.Property{
			Address:   fmt.Sprintf("%d %s", 10+i*3, fixtureStreets[i%len(fixtureStreets)]),
			Price:     math.Round((95000+float64(i)*4375.25)*100) / 100,
			Bedrooms:  1 + i%5,
			Bathrooms: 1 + i%3,
		}
		if i%5 != 4 {
			t := fixtureTypes[i%len(fixtureTypes)]
			p.Type = &t
		}
		out = append(out, p)
	}
	return out
}

// Seed füllt eine leere Tabelle mit den Testdaten. Ist bereits etwas gespeichert, passiert nichts.
func Seed(ctx context.Context, db *gorm.DB, log *zap.Logger) (int, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Property{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count properties: %w", err)
	}
	if count > 0 {
		log.Info("Seeding skipped, table not empty", zap.Int64("properties", count))
		return 0, nil
	}

	fixtures := FixtureProperties()
	if err := db.WithContext(ctx).CreateInBatches(&fixtures, 50).Error; err != nil {
		return 0, fmt.Errorf("seed properties: %w", err)
	}
	log.Info("Seeded properties", zap.Int("count", len(fixtures)))
	return len(fixtures), nil
}
