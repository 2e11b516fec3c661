package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/imprenta-pos/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pos/internal/domain/repository"
)

// Adaptadores de los tres logs de eventos. Son bitácoras append-only: solo
// INSERT y SELECT, ningún UPDATE ni DELETE expuesto (el borrado llega por
// cascada al eliminar la fila de stock o la tienda).

var (
	_ repository.UsageEventRepository      = (*UsageEventRepo)(nil)
	_ repository.AdjustmentEventRepository = (*AdjustmentEventRepo)(nil)
	_ repository.TransferEventRepository   = (*TransferEventRepo)(nil)
)

// UsageEventRepo log de consumos sobre PostgreSQL.
type UsageEventRepo struct {
	q Querier
}

// NewUsageEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUsageEventRepository(q Querier) *UsageEventRepo {
	return &UsageEventRepo{q: q}
}

// Create agrega un evento de consumo al log.
func (r *UsageEventRepo) Create(event *entity.UsageEvent) error {
	query := `
		INSERT INTO usage_events (id, store_id, material_id, order_ref, item_index, count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		event.ID, event.StoreID, event.MaterialID, event.OrderRef,
		event.ItemIndex, event.Count, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert usage event: %w", err)
	}
	return nil
}

// ListByStoreAndMaterial lista los consumos del par, más antiguos primero.
func (r *UsageEventRepo) ListByStoreAndMaterial(storeID, materialID string) ([]*entity.UsageEvent, error) {
	query := `
		SELECT id, store_id, material_id, order_ref, item_index, count, created_at
		FROM usage_events WHERE store_id = $1 AND material_id = $2
		ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, storeID, materialID)
	if err != nil {
		return nil, fmt.Errorf("list usage events: %w", err)
	}
	defer rows.Close()
	var list []*entity.UsageEvent
	for rows.Next() {
		var e entity.UsageEvent
		if err := rows.Scan(&e.ID, &e.StoreID, &e.MaterialID, &e.OrderRef, &e.ItemIndex, &e.Count, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan usage event: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// AdjustmentEventRepo log de ajustes de operador sobre PostgreSQL.
type AdjustmentEventRepo struct {
	q Querier
}

// NewAdjustmentEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentEventRepository(q Querier) *AdjustmentEventRepo {
	return &AdjustmentEventRepo{q: q}
}

// Create agrega un snapshot de ajuste al log.
func (r *AdjustmentEventRepo) Create(event *entity.AdjustmentEvent) error {
	query := `
		INSERT INTO adjustment_events (id, stock_id, kind, delta, set_to, stocked_after, used_after, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		event.ID, event.StockID, event.Kind, event.Delta, event.SetTo,
		event.StockedAfter, event.UsedAfter, event.Actor, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert adjustment event: %w", err)
	}
	return nil
}

// ListByStock lista los ajustes de una fila de stock, más antiguos primero.
func (r *AdjustmentEventRepo) ListByStock(stockID string) ([]*entity.AdjustmentEvent, error) {
	query := `
		SELECT id, stock_id, kind, delta, set_to, stocked_after, used_after, actor, created_at
		FROM adjustment_events WHERE stock_id = $1
		ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, stockID)
	if err != nil {
		return nil, fmt.Errorf("list adjustment events: %w", err)
	}
	defer rows.Close()
	var list []*entity.AdjustmentEvent
	for rows.Next() {
		var e entity.AdjustmentEvent
		if err := rows.Scan(&e.ID, &e.StockID, &e.Kind, &e.Delta, &e.SetTo, &e.StockedAfter, &e.UsedAfter, &e.Actor, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan adjustment event: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// TransferEventRepo log de traslados entre tiendas sobre PostgreSQL.
type TransferEventRepo struct {
	q Querier
}

// NewTransferEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferEventRepository(q Querier) *TransferEventRepo {
	return &TransferEventRepo{q: q}
}

// Create agrega un evento de traslado al log.
func (r *TransferEventRepo) Create(event *entity.TransferEvent) error {
	query := `
		INSERT INTO transfer_events (id, material_id, from_store_id, to_store_id, from_stock_id, to_stock_id, qty, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		event.ID, event.MaterialID, event.FromStoreID, event.ToStoreID,
		event.FromStockID, event.ToStockID, event.Qty, event.Actor, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer event: %w", err)
	}
	return nil
}

// ListByStock lista los traslados donde la fila participa como origen o
// destino, más antiguos primero.
func (r *TransferEventRepo) ListByStock(stockID string) ([]*entity.TransferEvent, error) {
	query := `
		SELECT id, material_id, from_store_id, to_store_id, from_stock_id, to_stock_id, qty, actor, created_at
		FROM transfer_events WHERE from_stock_id = $1 OR to_stock_id = $1
		ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, stockID)
	if err != nil {
		return nil, fmt.Errorf("list transfer events: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransferEvent
	for rows.Next() {
		var e entity.TransferEvent
		if err := rows.Scan(&e.ID, &e.MaterialID, &e.FromStoreID, &e.ToStoreID, &e.FromStockID, &e.ToStockID, &e.Qty, &e.Actor, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transfer event: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
