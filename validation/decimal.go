package validation

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
)

// Decimal hält eine JSON-Zahl in ihrer Textform, damit die Anzahl der Nachkommastellen
// ohne Rundungsfehler geprüft werden kann. Strings wie "12.50" werden abgelehnt.
type Decimal string

var decimalType = reflect.TypeOf(Decimal(""))

func (d *Decimal) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || (data[0] != '-' && (data[0] < '0' || data[0] > '9')) {
		if string(data) == "null" {
			return nil
		}
		return &json.UnmarshalTypeError{Value: jsonKind(data), Type: decimalType}
	}
	*d = Decimal(data)
	return nil
}

// Float64 wandelt den Text in einen float64.
func (d Decimal) Float64() (float64, error) {
	return strconv.ParseFloat(string(d), 64)
}

// fractionDigits zählt die signifikanten Nachkommastellen, z.B. "1.50" -> 1, "125e-3" -> 3.
func fractionDigits(s string) int {
	mantissa, exp := s, 0
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa = s[:i]
		exp, _ = strconv.Atoi(s[i+1:])
	}
	frac := ""
	if i := strings.IndexByte(mantissa, '.'); i >= 0 {
		frac = strings.TrimRight(mantissa[i+1:], "0")
	}
	if places := len(frac) - exp; places > 0 {
		return places
	}
	return 0
}

func jsonKind(data []byte) string {
	if len(data) == 0 {
		return "empty"
	}
	switch data[0] {
	case '"':
		return "string"
	case 't', 'f':
		return "bool"
	case '{':
		return "object"
	case '[':
		return "array"
	}
	return "value"
}
