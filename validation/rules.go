package validation

import "property-api/models"

// paramKind legt fest, wie ein Query-Parameter aus Text gelesen wird. Wertebereiche
// (positiv, nicht leer, ...) stehen als validate-Tags an models.FilterQuery.
type paramKind int

const (
	textParam  paramKind = iota // beliebiger String
	moneyParam                  // Zahl, auf Cent gerundet
	countParam                  // ganze Zahl
)

type paramValue struct {
	text    string
	number  float64
	integer int
}

type paramRule struct {
	kind  paramKind
	apply func(q *models.FilterQuery, v paramValue)
}

// filterRules ist die vollständige Liste der erlaubten Parameter von GET /properties.
var filterRules = map[string]paramRule{
	"address":      {textParam, func(q *models.FilterQuery, v paramValue) { q.Address = &v.text }},
	"addressPart":  {textParam, func(q *models.FilterQuery, v paramValue) { q.AddressPart = &v.text }},
	"type":         {textParam, func(q *models.FilterQuery, v paramValue) { q.Type = &v.text }},
	"priceMin":     {moneyParam, func(q *models.FilterQuery, v paramValue) { q.PriceMin = &v.number }},
	"priceMax":     {moneyParam, func(q *models.FilterQuery, v paramValue) { q.PriceMax = &v.number }},
	"bedroomsMin":  {countParam, func(q *models.FilterQuery, v paramValue) { q.BedroomsMin = &v.integer }},
	"bedroomsMax":  {countParam, func(q *models.FilterQuery, v paramValue) { q.BedroomsMax = &v.integer }},
	"bathroomsMin": {countParam, func(q *models.FilterQuery, v paramValue) { q.BathroomsMin = &v.integer }},
	"bathroomsMax": {countParam, func(q *models.FilterQuery, v paramValue) { q.BathroomsMax = &v.integer }},
	"limit":        {countParam, func(q *models.FilterQuery, v paramValue) { q.Limit = &v.integer }},
	"offset":       {countParam, func(q *models.FilterQuery, v paramValue) { q.Offset = &v.integer }},
}

// propertyBody ist das Schema für POST und PUT. Pointer unterscheiden "fehlt" von Nullwerten.
// Die Preisgrenze entspricht der Spalte numeric(12,2).
type propertyBody struct {
	Address   *string  `json:"address" validate:"required,utf8text,min=1"`
	Price     *Decimal `json:"price" validate:"required,positive,precision=2,maxdecimal=9999999999.99"`
	Bedrooms  *Decimal `json:"bedrooms" validate:"required,integer,positive"`
	Bathrooms *Decimal `json:"bathrooms" validate:"required,integer,positive"`
	Type      *string  `json:"type" validate:"omitempty,utf8text,min=1"`
}
