package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/imprenta-pos/internal/domain/repository"
)

var _ repository.UsageTotalRepository = (*UsageTotalRepo)(nil)

// UsageTotalRepo implementación del puerto UsageTotalRepository sobre PostgreSQL.
// El acumulado se muta solo con upserts de incremento: nunca leer-modificar-
// escribir, o escritores concurrentes pierden actualizaciones.
type UsageTotalRepo struct {
	q Querier
}

// NewUsageTotalRepository construye el adaptador del acumulado de consumo. Pasar pool o tx (Querier).
func NewUsageTotalRepository(q Querier) *UsageTotalRepo {
	return &UsageTotalRepo{q: q}
}

// Get devuelve el total consumido del par; 0 si la fila aún no existe.
func (r *UsageTotalRepo) Get(storeID, materialID string) (int64, error) {
	var total int64
	err := r.q.QueryRow(context.Background(),
		`SELECT total FROM usage_totals WHERE store_id = $1 AND material_id = $2`,
		storeID, materialID,
	).Scan(&total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get usage total: %w", err)
	}
	return total, nil
}

// Add incrementa el total en delta, creando la fila si no existe, en una sola
// sentencia atómica.
func (r *UsageTotalRepo) Add(storeID, materialID string, delta int64) error {
	query := `
		INSERT INTO usage_totals (store_id, material_id, total, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (store_id, material_id)
		DO UPDATE SET total = usage_totals.total + EXCLUDED.total, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, storeID, materialID, delta)
	if err != nil {
		return fmt.Errorf("add usage total: %w", err)
	}
	return nil
}

// Reset pone el total del par en 0 (tras un recuento físico). Crear la fila en
// cero si no existe deja el estado igual de consistente.
func (r *UsageTotalRepo) Reset(storeID, materialID string) error {
	query := `
		INSERT INTO usage_totals (store_id, material_id, total, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (store_id, material_id)
		DO UPDATE SET total = 0, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, storeID, materialID)
	if err != nil {
		return fmt.Errorf("reset usage total: %w", err)
	}
	return nil
}
