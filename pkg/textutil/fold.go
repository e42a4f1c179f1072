// Package textutil normaliza texto para búsquedas y slugs: el inventario se
// captura en español (bodega "Almacén", producto "Camisón") y las búsquedas
// deben ignorar tildes y mayúsculas.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold convierte a minúsculas y elimina diacríticos: "Almacén" -> "almacen".
func Fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// Slug genera un identificador URL-safe a partir de un nombre:
// minúsculas sin tildes, separadores no alfanuméricos colapsados a '-'.
func Slug(s string) string {
	folded := Fold(s)
	var b strings.Builder
	lastDash := true // evita '-' inicial
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
