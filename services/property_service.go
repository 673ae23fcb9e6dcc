package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"property-api/models"
)

// ErrNotFound signalisiert, dass zu einer ID keine Property existiert.
var ErrNotFound = errors.New("property not found")

// PropertyService kapselt alle Zugriffe auf die Tabelle properties.
type PropertyService struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

// NewPropertyService erstellt eine neue Instanz des PropertyService.
func NewPropertyService(db *gorm.DB, logger *zap.Logger) *PropertyService {
	return &PropertyService{
		DB:     db,
		Logger: logger,
	}
}

// QueryByID lädt eine Property oder liefert ErrNotFound.
func (s *PropertyService) QueryByID(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	if err := s.DB.WithContext(ctx).First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query property %d: %w", id, err)
	}
	return &property, nil
}

// QueryMany liefert die gefilterte Seite und die Gesamtzahl aller Treffer (unabhängig von limit/offset).
func (s *PropertyService) QueryMany(ctx context.Context, q models.FilterQuery) ([]models.Property, int64, error) {
	filter := BuildFilter(q)

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Property{}).Scopes(filter.Where).Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}

	properties := make([]models.Property, 0)
	if count == 0 {
		return properties, 0, nil
	}
	if err := s.DB.WithContext(ctx).Scopes(filter.Where, filter.Paginate).Find(&properties).Error; err != nil {
		return nil, 0, fmt.Errorf("query properties: %w", err)
	}
	return properties, count, nil
}

// Count zählt alle Properties.
func (s *PropertyService) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Property{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count properties: %w", err)
	}
	return count, nil
}

// Create legt eine Property an; die ID vergibt die Datenbank.
func (s *PropertyService) Create(ctx context.Context, in models.PropertyInput) (*models.Property, error) {
	property := in.ToProperty()
	if err := s.DB.WithContext(ctx).Create(&property).Error; err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}
	s.Logger.Info("Property angelegt", zap.Uint("id", property.ID))
	return &property, nil
}

// Update überschreibt alle Felder außer der ID in einem einzigen UPDATE. Fehlt type im Input,
// wird die Spalte auf NULL gesetzt. Existiert die Zeile nicht, wird nichts angelegt.
func (s *PropertyService) Update(ctx context.Context, id uint, in models.PropertyInput) (*models.Property, error) {
	result := s.DB.WithContext(ctx).Model(&models.Property{ID: id}).Updates(map[string]interface{}{
		"address":   in.Address,
		"price":     in.Price,
		"bedrooms":  in.Bedrooms,
		"bathrooms": in.Bathrooms,
		"type":      in.Type,
	})
	if result.Error != nil {
		return nil, fmt.Errorf("update property %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	property := in.ToProperty()
	property.ID = id
	return &property, nil
}

// Delete löscht hart und gibt die Anzahl betroffener Zeilen zurück (0 oder 1).
func (s *PropertyService) Delete(ctx context.Context, id uint) (int64, error) {
	result := s.DB.WithContext(ctx).Delete(&models.Property{}, id)
	if result.Error != nil {
		return 0, fmt.Errorf("delete property %d: %w", id, result.Error)
	}
	if result.RowsAffected > 0 {
		s.Logger.Info("Property gelöscht", zap.Uint("id", id))
	}
	return result.RowsAffected, nil
}
