package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/imprenta-pos/internal/domain/entity"
)

// StockRepository define el puerto para las filas de stock por tienda+material.
// Las mutaciones de contadores son incrementos atómicos a nivel de SQL,
// nunca leer-modificar-escribir, para no perder actualizaciones concurrentes.
type StockRepository interface {
	Create(stock *entity.StoreStock) error
	GetByID(id string) (*entity.StoreStock, error)
	GetByStoreAndMaterial(storeID, materialID string) (*entity.StoreStock, error)
	// GetByIDForUpdate bloquea la fila (SELECT ... FOR UPDATE); usar dentro de
	// una transacción para la secuencia leer-validar-escribir de los traslados.
	GetByIDForUpdate(id string) (*entity.StoreStock, error)
	ListByStore(storeID string) ([]*entity.StoreStock, error)
	// IncrementStocked suma delta (con signo) a stocked en una sola sentencia.
	// No recorta: stocked puede quedar negativo (sobregiro).
	IncrementStocked(id string, delta int64) error
	// SetStocked fija stocked en un valor absoluto (recuento físico).
	SetStocked(id string, value int64) error
	// ApplyDelta upsert atómico por par: crea la fila en cero (inactiva) si no
	// existe y le suma delta en la misma sentencia. Lo usa el registro de
	// consumo, que puede sobregirar un material aún no dado de alta en la tienda.
	ApplyDelta(storeID, materialID string, delta int64) error
	SetActive(id string, active bool) error
	SetUnitCost(id string, cost decimal.Decimal) error
	// ExistsByMaterial indica si algún stock (de cualquier tienda) referencia el material.
	ExistsByMaterial(materialID string) (bool, error)
	// Delete elimina la fila en duro; el borrado arrastra total de consumo y
	// los tres logs de eventos del par (una unidad transaccional).
	Delete(id string) error
}

// UsageTotalRepository define el puerto para el acumulado de consumo por par (tienda, material).
type UsageTotalRepository interface {
	// Get devuelve el total consumido; 0 si aún no existe la fila.
	Get(storeID, materialID string) (int64, error)
	// Add incrementa el total en delta con upsert atómico (create-if-absent).
	Add(storeID, materialID string, delta int64) error
	// Reset pone el total en 0 (tras un ajuste absoluto / recuento físico).
	Reset(storeID, materialID string) error
}
