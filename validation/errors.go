package validation

import (
	"fmt"
	"strings"
)

// FieldError beschreibt einen verletzten Constraint für genau ein Feld.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Error ist das Ergebnis einer fehlgeschlagenen Prüfung. Es wird immer zurückgegeben, nie
// per panic geworfen.
type Error struct {
	Details []FieldError `json:"details"`
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, fmt.Sprintf("%q %s", d.Field, d.Message))
	}
	return strings.Join(parts, "; ")
}

func newError(details ...FieldError) *Error {
	return &Error{Details: details}
}
