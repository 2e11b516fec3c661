package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddStockRequest body para POST /api/stores/:id/stock (alta de material en tienda).
type AddStockRequest struct {
	MaterialID string           `json:"material_id" validate:"required"`
	Initial    int64            `json:"initial" validate:"min=0"`
	UnitCost   *decimal.Decimal `json:"unit_cost,omitempty"`
	Actor      string           `json:"actor"`
}

// AdjustStockRequest body para POST /api/stock/:id/adjust.
// Mode delta: suma Value (con signo) al stocked.
// Mode absolute: fija stocked = Value y resetea el consumo acumulado (recuento físico).
type AdjustStockRequest struct {
	Mode     string           `json:"mode" validate:"required,oneof=delta absolute"`
	Value    int64            `json:"value"`
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"`
	Actor    string           `json:"actor"`
}

// TransferStockRequest body para POST /api/stock/:id/transfer.
type TransferStockRequest struct {
	ToStoreID string `json:"to_store_id" validate:"required"`
	Qty       int64  `json:"qty" validate:"required,gt=0"`
	Actor     string `json:"actor"`
}

// StockRowResponse una fila del listado de stock de una tienda.
// Remaining puede ser negativo: es un sobregiro y se muestra tal cual.
type StockRowResponse struct {
	StockID      string          `json:"stock_id"`
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_name"`
	Stocked      int64           `json:"stocked"`
	Used         int64           `json:"used"`
	Remaining    int64           `json:"remaining"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Active       bool            `json:"active"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// StockListResponse listado de stock de una tienda.
type StockListResponse struct {
	StoreID string             `json:"store_id"`
	Items   []StockRowResponse `json:"items"`
}

// InsufficientStockResponse cuerpo del rechazo de traslado por saldo insuficiente.
type InsufficientStockResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Remaining int64  `json:"remaining"`
	Requested int64  `json:"requested"`
}
