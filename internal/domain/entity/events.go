package entity

import "time"

// Tipos de ajuste de stock.
const (
	AdjustmentKindAdd      = "add"      // alta inicial del material en la tienda
	AdjustmentKindDelta    = "delta"    // corrección incremental (+/-)
	AdjustmentKindAbsolute = "absolute" // recuento físico: fija stocked y resetea consumo
)

// UsageEvent registro inmutable de consumo disparado por un pedido confirmado.
// Solo se agrega, nunca se modifica.
type UsageEvent struct {
	ID         string
	StoreID    string
	MaterialID string
	OrderRef   string
	ItemIndex  int
	Count      int64
	CreatedAt  time.Time
}

// AdjustmentEvent registro inmutable de un ajuste de operador sobre una fila
// de stock. Es un snapshot, no un delta puro: SetTo guarda el saldo disponible
// exacto inmediatamente después de la operación, de modo que un lector
// posterior recupere el valor en ese instante sin reproducir todo el historial.
type AdjustmentEvent struct {
	ID           string
	StockID      string
	Kind         string // add, delta, absolute
	Delta        int64  // con signo; solo significativo para kind=delta
	SetTo        int64  // saldo disponible (stocked − consumido) tras la operación
	StockedAfter int64
	UsedAfter    int64
	Actor        string
	CreatedAt    time.Time
}

// TransferEvent registro inmutable de un traslado de stock entre tiendas.
type TransferEvent struct {
	ID          string
	MaterialID  string
	FromStoreID string
	ToStoreID   string
	FromStockID string
	ToStockID   string
	Qty         int64
	Actor       string
	CreatedAt   time.Time
}
