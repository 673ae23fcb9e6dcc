package validation

import (
	"math"
	"net/url"
	"sort"
	"strconv"

	"property-api/models"
)

// ParseFilterQueryString prüft den rohen Query-String. Paare, die sich nicht dekodieren
// lassen, führen zu einem Fehler statt stillschweigend zu entfallen.
func ParseFilterQueryString(raw string) (models.FilterQuery, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return models.FilterQuery{}, newError(FieldError{Field: "query", Rule: "encoding", Message: "must be a valid URL-encoded query string"})
	}
	return ParseFilterQuery(values)
}

// ParseFilterQuery liest die Query-Parameter von GET /properties. Unbekannte oder mehrfach
// angegebene Parameter werden abgelehnt; values wird nicht verändert.
func ParseFilterQuery(values url.Values) (models.FilterQuery, error) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var q models.FilterQuery
	var details []FieldError
	for _, name := range names {
		rule, ok := filterRules[name]
		if !ok {
			details = append(details, FieldError{Field: name, Rule: "unknown", Message: "is not allowed"})
			continue
		}
		if len(values[name]) != 1 {
			details = append(details, FieldError{Field: name, Rule: "single", Message: "must be given exactly once"})
			continue
		}
		v, fe := parseParam(name, rule.kind, values[name][0])
		if fe != nil {
			details = append(details, *fe)
			continue
		}
		rule.apply(&q, v)
	}
	if len(details) > 0 {
		return models.FilterQuery{}, newError(details...)
	}

	if err := check(q); err != nil {
		return models.FilterQuery{}, err
	}
	return q, nil
}

func parseParam(name string, kind paramKind, raw string) (paramValue, *FieldError) {
	switch kind {
	case moneyParam:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return paramValue{}, &FieldError{Field: name, Rule: "number", Message: "must be a number"}
		}
		return paramValue{number: math.Round(f*100) / 100}, nil
	case countParam:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return paramValue{}, &FieldError{Field: name, Rule: "number", Message: "must be a number"}
		}
		if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return paramValue{}, &FieldError{Field: name, Rule: "integer", Message: "must be an integer"}
		}
		return paramValue{integer: int(f)}, nil
	}
	return paramValue{text: normalizeText(raw)}, nil
}
