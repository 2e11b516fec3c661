package repository

import "github.com/tu-usuario/imprenta-pos/internal/domain/entity"

// UsageTaskRepository define el puerto para la cola persistida de tareas de
// consumo. Las tareas pendientes sobreviven reinicios (at-least-once).
type UsageTaskRepository interface {
	Create(task *entity.UsageTask) error
	GetByID(id string) (*entity.UsageTask, error)
	// ListPending devuelve tareas en estado pending, más antiguas primero.
	ListPending(limit int) ([]*entity.UsageTask, error)
	// MarkDone cierra la tarea tras procesarla con éxito.
	MarkDone(id string, attempts int) error
	// MarkFailed deja la tarea en failed con el último error (solo reporte).
	MarkFailed(id string, attempts int, lastError string) error
}
