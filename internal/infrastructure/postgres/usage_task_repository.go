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

var _ repository.UsageTaskRepository = (*UsageTaskRepo)(nil)

// UsageTaskRepo implementación del puerto UsageTaskRepository sobre PostgreSQL.
// Los renglones del pedido viajan como JSONB; las tareas pending sobreviven
// reinicios del proceso (at-least-once).
type UsageTaskRepo struct {
	q Querier
}

// NewUsageTaskRepository construye el adaptador de la cola de consumo. Pasar pool o tx (Querier).
func NewUsageTaskRepository(q Querier) *UsageTaskRepo {
	return &UsageTaskRepo{q: q}
}

const usageTaskColumns = `id, order_ref, items, status, attempts, last_error, created_at, updated_at`

// Create persiste una tarea nueva en estado pending.
func (r *UsageTaskRepo) Create(task *entity.UsageTask) error {
	query := `
		INSERT INTO usage_tasks (id, order_ref, items, status, attempts, last_error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		task.ID, task.OrderRef, task.Items, task.Status,
		task.Attempts, task.LastError, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert usage task: %w", err)
	}
	return nil
}

// GetByID obtiene una tarea por ID.
func (r *UsageTaskRepo) GetByID(id string) (*entity.UsageTask, error) {
	query := `SELECT ` + usageTaskColumns + ` FROM usage_tasks WHERE id = $1`
	var t entity.UsageTask
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.OrderRef, &t.Items, &t.Status, &t.Attempts, &t.LastError, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get usage task: %w", err)
	}
	return &t, nil
}

// ListPending devuelve tareas pending, más antiguas primero.
func (r *UsageTaskRepo) ListPending(limit int) ([]*entity.UsageTask, error) {
	query := `
		SELECT ` + usageTaskColumns + `
		FROM usage_tasks WHERE status = $1
		ORDER BY created_at ASC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, entity.UsageTaskPending, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending usage tasks: %w", err)
	}
	defer rows.Close()
	var list []*entity.UsageTask
	for rows.Next() {
		var t entity.UsageTask
		if err := rows.Scan(&t.ID, &t.OrderRef, &t.Items, &t.Status, &t.Attempts, &t.LastError, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan usage task: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// MarkDone cierra la tarea tras procesarla con éxito.
func (r *UsageTaskRepo) MarkDone(id string, attempts int) error {
	return r.mark(id, entity.UsageTaskDone, attempts, "")
}

// MarkFailed deja la tarea en failed con el último error (solo reporte).
func (r *UsageTaskRepo) MarkFailed(id string, attempts int, lastError string) error {
	return r.mark(id, entity.UsageTaskFailed, attempts, lastError)
}

func (r *UsageTaskRepo) mark(id, status string, attempts int, lastError string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE usage_tasks SET status = $2, attempts = $3, last_error = $4, updated_at = now() WHERE id = $1`,
		id, status, attempts, lastError,
	)
	if err != nil {
		return fmt.Errorf("mark usage task %s: %w", status, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
