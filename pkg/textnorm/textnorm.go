// Package textnorm normaliza texto libre antes de persistirlo: nombres de personas,
// patentes y términos de búsqueda.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CollapseSpaces recorta y colapsa espacios internos.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// PersonName "  maría   JOSÉ " -> "María José".
func PersonName(s string) string {
	// cases.Caser no es seguro para uso concurrente; se crea uno por llamada.
	return cases.Title(language.Spanish).String(CollapseSpaces(s))
}

// Patente normaliza una patente: mayúsculas, sin espacios ni guiones ("ab 123-cd" -> "AB123CD").
func Patente(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == '.' {
			return -1
		}
		return r
	}, s)
	return cases.Upper(language.Spanish).String(s)
}

// Fold quita tildes y pasa a minúsculas ("Cambio de Aceité" -> "cambio de aceite").
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Lower(language.Spanish).String(out)
}

// SearchPattern arma el patrón ILIKE para un término de búsqueda; "" si no hay término.
func SearchPattern(term string) string {
	term = CollapseSpaces(term)
	if term == "" {
		return ""
	}
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}
