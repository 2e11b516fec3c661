package entity

import (
	"sort"
	"strings"
	"time"

	"github.com/tu-usuario/imprenta-pos/pkg/normalize"
)

// Selection es un par de atributos (unidad, subunidad) de una opción de pedido,
// p.ej. ("Tamaño", "A4") o ("Color", "BN").
type Selection struct {
	Unit    string `json:"unit"`
	SubUnit string `json:"sub_unit"`
}

// Material representa un consumible del catálogo definido por el conjunto de
// selecciones que lo disparan. Un ítem de pedido que contenga TODAS las
// selecciones del material consume unidades de él.
type Material struct {
	ID         string
	Name       string
	Selections []Selection
	// Key clave canónica derivada de Selections (independiente del orden).
	// Dos materiales con el mismo conjunto de selecciones colisionan aquí
	// y se tratan como el mismo registro.
	Key       string
	CreatedAt time.Time
}

// SelectionKey deriva la clave canónica de un conjunto de selecciones:
// cada par se normaliza como "unidad:subunidad", se ordenan y se unen con "|".
// Es función pura del conjunto: el orden de entrada no importa.
func SelectionKey(selections []Selection) string {
	parts := make([]string, 0, len(selections))
	for _, s := range selections {
		parts = append(parts, normalize.Pair(s.Unit, s.SubUnit))
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}
