package entity

import "time"

// Store representa una tienda/sede con inventario propio (multi-tienda).
// Invariante: exactamente UNA tienda tiene IsOperational = true en todo el
// sistema; es la que recibe el consumo de los pedidos confirmados.
type Store struct {
	ID            string
	Name          string
	IsOperational bool
	CreatedAt     time.Time
}
