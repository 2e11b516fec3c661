package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Canonical normaliza texto libre de atributos y nombres para comparaciones:
// NFC (composición Unicode), trim de espacios y minúsculas. Dos entradas que
// solo difieren en forma de composición o mayúsculas producen la misma salida
// ("Tamaño" escrito con o sin acento precompuesto colisionan, como debe ser).
func Canonical(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}

// Pair normaliza un par (unidad, subunidad) y lo devuelve como "unidad:subunidad",
// el formato con el que se construye la clave canónica de un material.
func Pair(unit, subUnit string) string {
	return Canonical(unit) + ":" + Canonical(subUnit)
}
