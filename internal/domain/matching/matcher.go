// Package matching contiene las funciones puras que cruzan renglones de pedido
// con materiales del catálogo y calculan las unidades consumidas.
package matching

import (
	"github.com/tu-usuario/imprenta-pos/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pos/pkg/normalize"
)

// Matches indica si un material aplica a un renglón de pedido: todas las
// selecciones del material deben estar presentes en las del renglón (subconjunto).
// Un material sin selecciones nunca aplica (el catálogo exige ≥1 al crear;
// esto es un invariante defensivo, no un camino vivo).
// El cruce es muchos-a-muchos: un mismo renglón puede disparar cero, uno o
// varios materiales y cada uno se procesa por separado.
func Matches(materialSelections, itemSelections []entity.Selection) bool {
	if len(materialSelections) == 0 {
		return false
	}
	have := make(map[string]bool, len(itemSelections))
	for _, s := range itemSelections {
		have[normalize.Pair(s.Unit, s.SubUnit)] = true
	}
	for _, s := range materialSelections {
		if !have[normalize.Pair(s.Unit, s.SubUnit)] {
			return false
		}
	}
	return true
}

// ComputeCount calcula las unidades consumidas por un renglón:
// base = páginas (mínimo 1); a doble cara se redondea hacia arriba la mitad.
// Las hojas dañadas se suman completas, sin dividir por dos aunque la
// impresión sea a doble cara (política literal del negocio, ver DESIGN.md).
func ComputeCount(pages int, doubleSided bool, spoiled int) int64 {
	if pages <= 0 {
		pages = 1
	}
	base := pages
	if doubleSided {
		base = (pages + 1) / 2
	}
	if spoiled < 0 {
		spoiled = 0
	}
	return int64(base) + int64(spoiled)
}
