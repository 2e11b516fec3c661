package repository

import "github.com/tu-usuario/imprenta-pos/internal/domain/entity"

// Puertos de los logs de eventos. Son bitácoras write-once/read-many:
// solo Create + lecturas, ningún update ni delete expuesto.

// UsageEventRepository log de consumos disparados por pedidos.
type UsageEventRepository interface {
	Create(event *entity.UsageEvent) error
	ListByStoreAndMaterial(storeID, materialID string) ([]*entity.UsageEvent, error)
}

// AdjustmentEventRepository log de ajustes de operador (snapshots).
type AdjustmentEventRepository interface {
	Create(event *entity.AdjustmentEvent) error
	ListByStock(stockID string) ([]*entity.AdjustmentEvent, error)
}

// TransferEventRepository log de traslados entre tiendas.
type TransferEventRepository interface {
	Create(event *entity.TransferEvent) error
	// ListByStock devuelve los traslados donde la fila participa como origen o destino.
	ListByStock(stockID string) ([]*entity.TransferEvent, error)
}
