package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StoreStock es el stock de un material en una tienda (par único tienda+material).
// Stocked puede quedar negativo tras consumo sin existencias: es un sobregiro
// válido que debe mostrarse tal cual, nunca recortarse a cero.
type StoreStock struct {
	ID         string
	StoreID    string
	MaterialID string
	Stocked    int64
	// UnitCost costo promedio ponderado por unidad; se recalcula en entradas
	// con costo y en traslados entrantes.
	UnitCost  decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Remaining saldo disponible: stocked − consumido. Nunca se persiste,
// siempre se calcula fresco contra el total de consumo.
func (s *StoreStock) Remaining(used int64) int64 {
	return s.Stocked - used
}

// UsageTotal es el acumulado de consumo para un par (tienda, material).
// Entidad derivada/caché: debe ser igual a la suma de los UsageEvent del par,
// salvo inmediatamente después de un ajuste absoluto, que lo pone en cero.
// Se crea perezosamente en el primer consumo.
type UsageTotal struct {
	StoreID    string
	MaterialID string
	Total      int64
	UpdatedAt  time.Time
}
