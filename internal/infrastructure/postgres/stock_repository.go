package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/imprenta-pos/internal/domain"
	"github.com/tu-usuario/imprenta-pos/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pos/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación del puerto StockRepository sobre PostgreSQL (usable con pool o tx).
// Todas las mutaciones de contadores son sentencias atómicas de incremento;
// la única secuencia leer-validar-escribir (traslados) corre bajo FOR UPDATE
// dentro de una transacción.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `id, store_id, material_id, stocked, unit_cost, active, created_at, updated_at`

// Create persiste una fila de stock nueva. El par tienda+material duplicado
// devuelve ErrDuplicate.
func (r *StockRepo) Create(stock *entity.StoreStock) error {
	query := `
		INSERT INTO store_stocks (id, store_id, material_id, stocked, unit_cost, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		stock.ID, stock.StoreID, stock.MaterialID, stock.Stocked,
		stock.UnitCost, stock.Active, stock.CreatedAt, stock.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock: %w", err)
	}
	return nil
}

// GetByID obtiene una fila de stock por ID; nil si no existe.
func (r *StockRepo) GetByID(id string) (*entity.StoreStock, error) {
	query := `SELECT ` + stockColumns + ` FROM store_stocks WHERE id = $1`
	return r.getOne(query, id)
}

// GetByIDForUpdate obtiene la fila y la bloquea (SELECT ... FOR UPDATE).
// Usar solo dentro de una transacción.
func (r *StockRepo) GetByIDForUpdate(id string) (*entity.StoreStock, error) {
	query := `SELECT ` + stockColumns + ` FROM store_stocks WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

// GetByStoreAndMaterial obtiene la fila del par tienda+material; nil si no existe.
func (r *StockRepo) GetByStoreAndMaterial(storeID, materialID string) (*entity.StoreStock, error) {
	query := `SELECT ` + stockColumns + ` FROM store_stocks WHERE store_id = $1 AND material_id = $2`
	return r.getOne(query, storeID, materialID)
}

func (r *StockRepo) getOne(query string, args ...any) (*entity.StoreStock, error) {
	var s entity.StoreStock
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.ID, &s.StoreID, &s.MaterialID, &s.Stocked, &s.UnitCost, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// ListByStore lista las filas de stock de una tienda.
func (r *StockRepo) ListByStore(storeID string) ([]*entity.StoreStock, error) {
	query := `SELECT ` + stockColumns + ` FROM store_stocks WHERE store_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.StoreStock
	for rows.Next() {
		var s entity.StoreStock
		if err := rows.Scan(&s.ID, &s.StoreID, &s.MaterialID, &s.Stocked, &s.UnitCost, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// IncrementStocked suma delta (con signo) a stocked en una sola sentencia.
// Sin recorte: stocked puede quedar negativo (sobregiro visible).
func (r *StockRepo) IncrementStocked(id string, delta int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE store_stocks SET stocked = stocked + $2, updated_at = now() WHERE id = $1`,
		id, delta,
	)
	if err != nil {
		return fmt.Errorf("increment stocked: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetStocked fija stocked en un valor absoluto (recuento físico).
func (r *StockRepo) SetStocked(id string, value int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE store_stocks SET stocked = $2, updated_at = now() WHERE id = $1`,
		id, value,
	)
	if err != nil {
		return fmt.Errorf("set stocked: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ApplyDelta upsert atómico por par: crea la fila en cero (inactiva) si no
// existe y le aplica delta en la misma sentencia. Lo usa el registro de
// consumo, que puede sobregirar un material aún no dado de alta en la tienda.
func (r *StockRepo) ApplyDelta(storeID, materialID string, delta int64) error {
	query := `
		INSERT INTO store_stocks (id, store_id, material_id, stocked, unit_cost, active, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, 0, false, now(), now())
		ON CONFLICT (store_id, material_id)
		DO UPDATE SET stocked = store_stocks.stocked + EXCLUDED.stocked, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, storeID, materialID, delta)
	if err != nil {
		return fmt.Errorf("apply stock delta: %w", err)
	}
	return nil
}

// SetActive marca la presencia blanda de la fila en el surtido de la tienda.
func (r *StockRepo) SetActive(id string, active bool) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE store_stocks SET active = $2, updated_at = now() WHERE id = $1`,
		id, active,
	)
	if err != nil {
		return fmt.Errorf("set stock active: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetUnitCost fija el costo promedio ponderado de la fila.
func (r *StockRepo) SetUnitCost(id string, cost decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE store_stocks SET unit_cost = $2, updated_at = now() WHERE id = $1`,
		id, cost,
	)
	if err != nil {
		return fmt.Errorf("set unit cost: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExistsByMaterial indica si alguna fila de stock (de cualquier tienda)
// referencia el material.
func (r *StockRepo) ExistsByMaterial(materialID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM store_stocks WHERE material_id = $1)`, materialID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists stock by material: %w", err)
	}
	return exists, nil
}

// Delete elimina la fila en duro. Los logs de ajustes y traslados caen por FK
// en cascada; los eventos de consumo y el total cuelgan del par (tienda,
// material), no de la fila, así que se limpian aquí mismo. Correr dentro de
// una transacción para que un borrado interrumpido no deje huérfanos.
func (r *StockRepo) Delete(id string) error {
	row, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if row == nil {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM usage_events WHERE store_id = $1 AND material_id = $2`,
		row.StoreID, row.MaterialID); err != nil {
		return fmt.Errorf("delete usage events: %w", err)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM usage_totals WHERE store_id = $1 AND material_id = $2`,
		row.StoreID, row.MaterialID); err != nil {
		return fmt.Errorf("delete usage total: %w", err)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM store_stocks WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	return nil
}
