// Package textnorm normaliza nombres de categoría: sin espacios sobrantes,
// sin tildes y con la primera letra en mayúscula.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripAccents elimina las marcas diacríticas (NFD + quitar Mn).
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Category "  frutas   TROPICALES " -> "Frutas tropicales"; "Lácteos" -> "Lacteos".
func Category(s string) string {
	s = strings.Join(strings.Fields(StripAccents(s)), " ")
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
