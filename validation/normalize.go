package validation

import (
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizeText bringt Texte in Unicode-NFC, damit gespeicherte Adressen und Filterwerte
// unabhängig von der Eingabeform (z.B. "é" vs. "e"+Akzent) übereinstimmen.
func normalizeText(s string) string {
	normalized, _, err := transform.String(norm.NFC, s)
	if err != nil {
		return s
	}
	return normalized
}

func normalizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	n := normalizeText(*s)
	return &n
}
