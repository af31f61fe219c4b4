// Package textnorm normaliza texto en portugués para comparaciones y nombres de archivo:
// quita acentos, compara sin mayúsculas y genera nombres seguros.
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

var folder = cases.Fold()

// StripAccents elimina las marcas diacríticas ("Código" -> "Codigo").
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Fold devuelve la forma sin acentos y en minúsculas, para comparar.
func Fold(s string) string {
	return folder.String(StripAccents(s))
}

// HeaderKey normaliza un encabezado de planilla: sin acentos, minúsculas, espacios
// colapsados y recortados.
func HeaderKey(s string) string {
	return strings.Join(strings.Fields(Fold(s)), " ")
}

// ContainsFold indica si s contiene sub ignorando mayúsculas y acentos.
func ContainsFold(s, sub string) bool {
	return strings.Contains(Fold(s), Fold(sub))
}

// NFC devuelve s en forma de composición canónica.
func NFC(s string) string {
	return norm.NFC.String(s)
}

// SafeFilename conserva letras, dígitos, espacio, '_' y '-' (sin acentos) y cambia
// los espacios por '_'.
func SafeFilename(s string) string {
	var b strings.Builder
	for _, r := range StripAccents(strings.TrimSpace(s)) {
		switch {
		case r == ' ':
			b.WriteRune('_')
		case r == '_' || r == '-':
			b.WriteRune(r)
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Title pone en mayúscula la primera letra de cada palabra (pt-BR).
func Title(s string) string {
	return cases.Title(language.BrazilianPortuguese).String(strings.ToLower(s))
}
