package models

// Property repräsentiert ein Immobilienangebot.
type Property struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	Address   string  `json:"address" gorm:"not null"`
	Price     float64 `json:"price" gorm:"type:numeric(12,2);not null"`
	Bedrooms  int     `json:"bedrooms" gorm:"not null"`
	Bathrooms int     `json:"bathrooms" gorm:"not null"`
	Type      *string `json:"type"` // nullable
}

// TableName gibt den expliziten Tabellennamen für GORM an.
func (Property) TableName() string {
	return "properties"
}

// PropertyInput ist der geprüfte Body für POST und PUT.
type PropertyInput struct {
	Address   string
	Price     float64
	Bedrooms  int
	Bathrooms int
	Type      *string
}

// ToProperty erzeugt eine Property ohne ID; die ID vergibt die Datenbank.
func (in PropertyInput) ToProperty() Property {
	return Property{
		Address:   in.Address,
		Price:     in.Price,
		Bedrooms:  in.Bedrooms,
		Bathrooms: in.Bathrooms,
		Type:      in.Type,
	}
}
