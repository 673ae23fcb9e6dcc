package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"property-api/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Feldnamen wie im Request (json bzw. Query-Parameter) statt Go-Namen melden
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	if err := v.RegisterValidation("positive", isPositiveDecimal); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("precision", hasPrecision); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("maxdecimal", isAtMostDecimal); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("integer", isWholeNumber); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("utf8text", isStorableText); err != nil {
		panic(err)
	}
	v.RegisterStructValidation(paginationPair, models.FilterQuery{})
	return v
}

func isPositiveDecimal(fl validator.FieldLevel) bool {
	f, err := strconv.ParseFloat(fl.Field().String(), 64)
	return err == nil && f > 0 && !math.IsInf(f, 0)
}

func hasPrecision(fl validator.FieldLevel) bool {
	places, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return fractionDigits(fl.Field().String()) <= places
}

// isAtMostDecimal vergleicht eine Decimal mit der Obergrenze aus dem Tag-Parameter.
func isAtMostDecimal(fl validator.FieldLevel) bool {
	limit, err := strconv.ParseFloat(fl.Param(), 64)
	if err != nil {
		return false
	}
	f, err := strconv.ParseFloat(fl.Field().String(), 64)
	return err == nil && f <= limit
}

// isWholeNumber akzeptiert JSON-Zahlen ohne Nachkommaanteil (auch 2.0 oder 2e0) im int32-Bereich.
func isWholeNumber(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return false
	}
	return fractionDigits(s) == 0 && math.Abs(f) <= math.MaxInt32
}

// isStorableText lehnt Texte ab, die Postgres in text-Spalten nicht speichert.
func isStorableText(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
}

// paginationPair erzwingt: limit und offset entweder beide oder keiner.
func paginationPair(sl validator.StructLevel) {
	q := sl.Current().Interface().(models.FilterQuery)
	switch {
	case q.Limit != nil && q.Offset == nil:
		sl.ReportError(q.Offset, "offset", "Offset", "required_with", "limit")
	case q.Offset != nil && q.Limit == nil:
		sl.ReportError(q.Limit, "limit", "Limit", "required_with", "offset")
	}
}

// check führt die Struct-Tags aus und übersetzt die Fehler in *Error.
func check(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return newError(FieldError{Field: "body", Rule: "invalid", Message: err.Error()})
	}

	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return newError(details...)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Param() == "1" {
			return "must not be empty"
		}
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "gt":
		if fe.Param() == "0" {
			return "must be a positive number"
		}
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "positive":
		return "must be a positive number"
	case "maxdecimal":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "integer":
		return "must be an integer"
	case "utf8text":
		return "must be valid UTF-8 without NUL characters"
	case "precision":
		return fmt.Sprintf("must have no more than %s decimal places", fe.Param())
	case "required_with":
		return fmt.Sprintf("is required when %s is given", fe.Param())
	}
	return fmt.Sprintf("failed on the %q rule", fe.Tag())
}
