package models

// FilterQuery sammelt die optionalen Filter- und Paginierungsparameter von GET /properties.
// Ein nil-Feld bedeutet "nicht angegeben".
type FilterQuery struct {
	Address      *string  `form:"address" validate:"omitempty,utf8text,min=1"`
	AddressPart  *string  `form:"addressPart" validate:"omitempty,utf8text,min=1"`
	PriceMin     *float64 `form:"priceMin" validate:"omitempty,gt=0"`
	PriceMax     *float64 `form:"priceMax" validate:"omitempty,gt=0"`
	BedroomsMin  *int     `form:"bedroomsMin" validate:"omitempty,gt=0"`
	BedroomsMax  *int     `form:"bedroomsMax" validate:"omitempty,gt=0"`
	BathroomsMin *int     `form:"bathroomsMin" validate:"omitempty,gt=0"`
	BathroomsMax *int     `form:"bathroomsMax" validate:"omitempty,gt=0"`
	Type         *string  `form:"type" validate:"omitempty,utf8text,min=1"`

	// limit und offset nur gemeinsam
	Limit  *int `form:"limit" validate:"omitempty,gt=0"`
	Offset *int `form:"offset" validate:"omitempty,gte=0"`
}

// Paginated meldet, ob Limit und Offset gesetzt sind.
func (q FilterQuery) Paginated() bool {
	return q.Limit != nil && q.Offset != nil
}
