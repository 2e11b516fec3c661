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

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación del puerto MaterialRepository sobre PostgreSQL (usable con pool o tx).
// Las selecciones viajan como JSONB; la clave canónica tiene unique index.
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador de persistencia del catálogo. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste un material nuevo. La clave canónica duplicada devuelve ErrDuplicate.
func (r *MaterialRepo) Create(material *entity.Material) error {
	query := `
		INSERT INTO materials (id, name, selections, key, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.Name, material.Selections, material.Key, material.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material por ID; nil si no existe.
func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	return r.getByField("id", id)
}

// GetByKey obtiene un material por su clave canónica; nil si no existe.
func (r *MaterialRepo) GetByKey(key string) (*entity.Material, error) {
	return r.getByField("key", key)
}

func (r *MaterialRepo) getByField(field, value string) (*entity.Material, error) {
	query := fmt.Sprintf(`
		SELECT id, name, selections, key, created_at
		FROM materials WHERE %s = $1`, field)
	var m entity.Material
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&m.ID, &m.Name, &m.Selections, &m.Key, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return &m, nil
}

// List lista el catálogo con paginación.
func (r *MaterialRepo) List(limit, offset int) ([]*entity.Material, error) {
	query := `
		SELECT id, name, selections, key, created_at
		FROM materials ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	return scanMaterials(rows)
}

// All devuelve el catálogo completo (el cruce de consumo lo recorre entero).
func (r *MaterialRepo) All() ([]*entity.Material, error) {
	query := `
		SELECT id, name, selections, key, created_at
		FROM materials ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("all materials: %w", err)
	}
	defer rows.Close()
	return scanMaterials(rows)
}

func scanMaterials(rows pgx.Rows) ([]*entity.Material, error) {
	var list []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(&m.ID, &m.Name, &m.Selections, &m.Key, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Delete elimina un material por ID.
func (r *MaterialRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
