package validation

import (
	"math"
	"strconv"
	"strings"
)

// ParseID prüft einen Pfadparameter :id. Erlaubt sind nur Dezimalziffern, der Wert muss
// positiv sein und in die serial-Spalte passen.
func ParseID(raw string) (uint, error) {
	if raw == "" || strings.TrimLeft(raw, "0123456789") != "" {
		return 0, newError(FieldError{Field: "id", Rule: "integer", Message: "must be a positive integer"})
	}

	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n > math.MaxInt32 {
		return 0, newError(FieldError{Field: "id", Rule: "max", Message: "must be less than or equal to 2147483647"})
	}
	if n == 0 {
		return 0, newError(FieldError{Field: "id", Rule: "positive", Message: "must be a positive integer"})
	}
	return uint(n), nil
}
