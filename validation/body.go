package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"property-api/models"
)

// ParseInsertUpdateBody dekodiert und prüft den JSON-Body von POST und PUT.
func ParseInsertUpdateBody(r io.Reader) (models.PropertyInput, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var body propertyBody
	if err := dec.Decode(&body); err != nil {
		return models.PropertyInput{}, decodeError(err)
	}
	// nach dem Objekt darf nur noch Whitespace folgen, auch kein überzähliges "}"
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return models.PropertyInput{}, newError(FieldError{Field: "body", Rule: "json", Message: "must contain a single JSON object"})
	}

	if err := check(body); err != nil {
		return models.PropertyInput{}, err
	}

	// die Tags haben Format und Bereich bereits geprüft
	price, _ := body.Price.Float64()
	bedrooms, _ := body.Bedrooms.Float64()
	bathrooms, _ := body.Bathrooms.Float64()
	return models.PropertyInput{
		Address:   normalizeText(*body.Address),
		Price:     price,
		Bedrooms:  int(bedrooms),
		Bathrooms: int(bathrooms),
		Type:      normalizePtr(body.Type),
	}, nil
}

const unknownFieldPrefix = "json: unknown field "

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return newError(FieldError{Field: field, Rule: "type", Message: "must be " + describeType(typeErr.Type)})
	case strings.HasPrefix(err.Error(), unknownFieldPrefix):
		field := strings.Trim(strings.TrimPrefix(err.Error(), unknownFieldPrefix), `"`)
		return newError(FieldError{Field: field, Rule: "unknown", Message: "is not allowed"})
	case errors.Is(err, io.EOF):
		return newError(FieldError{Field: "body", Rule: "required", Message: "is required"})
	}
	return newError(FieldError{Field: "body", Rule: "json", Message: fmt.Sprintf("must be valid JSON (%v)", err)})
}

func describeType(t reflect.Type) string {
	if t == nil {
		return "valid"
	}
	if t == decimalType {
		return "a number"
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.Struct, reflect.Map:
		return "a JSON object"
	}
	return "a " + t.Kind().String()
}
