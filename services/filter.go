package services

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"property-api/models"
)

// Page begrenzt eine Abfrage auf Limit Zeilen ab Offset.
type Page struct {
	Limit  int
	Offset int
}

// Filter ist das Prädikat über die Spalten von properties plus optionale Paginierung.
// Ein leeres Prädikat trifft alle Zeilen.
type Filter struct {
	Predicate []clause.Expression
	Page      *Page
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// BuildFilter übersetzt eine geprüfte FilterQuery. Jede Feldfamilie wird unabhängig
// behandelt, alle Bedingungen werden mit AND verknüpft.
func BuildFilter(q models.FilterQuery) Filter {
	var f Filter

	if q.Address != nil {
		f.Predicate = append(f.Predicate, clause.Eq{Column: "address", Value: *q.Address})
	}
	// address und addressPart dürfen zusammen vorkommen, dann gelten beide
	if q.AddressPart != nil {
		f.Predicate = append(f.Predicate, clause.Like{Column: "address", Value: "%" + likeEscaper.Replace(*q.AddressPart) + "%"})
	}
	if q.Type != nil {
		f.Predicate = append(f.Predicate, clause.Eq{Column: "type", Value: *q.Type})
	}

	f.Predicate = appendRange(f.Predicate, "price", q.PriceMin, q.PriceMax)
	f.Predicate = appendRange(f.Predicate, "bedrooms", q.BedroomsMin, q.BedroomsMax)
	f.Predicate = appendRange(f.Predicate, "bathrooms", q.BathroomsMin, q.BathroomsMax)

	if q.Paginated() {
		f.Page = &Page{Limit: *q.Limit, Offset: *q.Offset}
	}
	return f
}

// appendRange fügt genau eine inklusive Bereichsbedingung hinzu, falls eine der Grenzen gesetzt ist.
func appendRange[T int | float64](exprs []clause.Expression, column string, lo, hi *T) []clause.Expression {
	switch {
	case lo != nil && hi != nil:
		return append(exprs, clause.And(
			clause.Gte{Column: column, Value: *lo},
			clause.Lte{Column: column, Value: *hi},
		))
	case lo != nil:
		return append(exprs, clause.Gte{Column: column, Value: *lo})
	case hi != nil:
		return append(exprs, clause.Lte{Column: column, Value: *hi})
	}
	return exprs
}

// Where ist ein gorm-Scope, der das Prädikat anwendet.
func (f Filter) Where(db *gorm.DB) *gorm.DB {
	if len(f.Predicate) == 0 {
		return db
	}
	return db.Clauses(clause.Where{Exprs: f.Predicate})
}

// Paginate ist ein gorm-Scope für Sortierung und LIMIT/OFFSET. Sortiert wird immer nach id,
// damit Seiten über mehrere Aufrufe stabil bleiben.
func (f Filter) Paginate(db *gorm.DB) *gorm.DB {
	db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	if f.Page == nil {
		return db
	}
	return db.Limit(f.Page.Limit).Offset(f.Page.Offset)
}
