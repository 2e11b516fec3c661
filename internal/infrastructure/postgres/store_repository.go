package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/imprenta-pos/internal/domain"
	"github.com/tu-usuario/imprenta-pos/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pos/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación del puerto StoreRepository sobre PostgreSQL (usable con pool o tx).
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador de persistencia para tiendas. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// Create persiste una tienda nueva. El nombre duplicado devuelve ErrDuplicate.
func (r *StoreRepo) Create(store *entity.Store) error {
	query := `
		INSERT INTO stores (id, name, is_operational, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		store.ID, store.Name, store.IsOperational, store.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// GetByID obtiene una tienda por ID; nil si no existe.
func (r *StoreRepo) GetByID(id string) (*entity.Store, error) {
	return r.getOne(`SELECT id, name, is_operational, created_at FROM stores WHERE id = $1`, id)
}

// GetByName obtiene una tienda por nombre; nil si no existe.
func (r *StoreRepo) GetByName(name string) (*entity.Store, error) {
	return r.getOne(`SELECT id, name, is_operational, created_at FROM stores WHERE name = $1`, name)
}

// GetOperational devuelve la única tienda operativa; nil si no hay ninguna.
func (r *StoreRepo) GetOperational() (*entity.Store, error) {
	return r.getOne(`SELECT id, name, is_operational, created_at FROM stores WHERE is_operational LIMIT 1`)
}

func (r *StoreRepo) getOne(query string, args ...any) (*entity.Store, error) {
	var s entity.Store
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.ID, &s.Name, &s.IsOperational, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return &s, nil
}

// List lista todas las tiendas.
func (r *StoreRepo) List() ([]*entity.Store, error) {
	query := `
		SELECT id, name, is_operational, created_at
		FROM stores ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Store
	for rows.Next() {
		var s entity.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.IsOperational, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Count devuelve el número de tiendas.
func (r *StoreRepo) Count() (int64, error) {
	var n int64
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM stores`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stores: %w", err)
	}
	return n, nil
}

// SetOperational marca la tienda indicada como operativa y desmarca el resto
// en una sola sentencia: nunca hay un instante con dos operativas ni con cero.
func (r *StoreRepo) SetOperational(id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE stores SET is_operational = (id = $1)`, id)
	if err != nil {
		return fmt.Errorf("set operational store: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una tienda por ID; las filas de stock de la tienda y sus logs
// caen por FK en cascada.
func (r *StoreRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
