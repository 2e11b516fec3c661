package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/tu-usuario/imprenta-pos/internal/domain"
	"github.com/tu-usuario/imprenta-pos/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pos/internal/domain/repository"
	"github.com/tu-usuario/imprenta-pos/pkg/logger"
	"github.com/tu-usuario/imprenta-pos/pkg/metrics"
)

// UsageQueue cola at-least-once de tareas de consumo. Confirmar un pedido solo
// persiste una tarea pending y despierta al worker: la contabilidad de
// inventario nunca bloquea ni revierte un pedido ya confirmado. Una tarea que
// agota sus reintentos queda failed, se loguea y se cuenta en métricas; esa es
// toda la política de fallo — deriva conocida del libro que la reconstrucción
// de actividad tolera con su entrada de conciliación.
type UsageQueue struct {
	tasks      repository.UsageTaskRepository
	recorder   *UsageRecorder
	log        *logger.Logger
	wake       chan struct{}
	maxRetries int
}

// NewUsageQueue construye la cola. queueBuffer acota los avisos pendientes del
// canal de despertar; un aviso perdido no pierde la tarea, el barrido
// periódico la recoge igual.
func NewUsageQueue(
	tasks repository.UsageTaskRepository,
	recorder *UsageRecorder,
	log *logger.Logger,
	maxRetries, queueBuffer int,
) *UsageQueue {
	if maxRetries <= 0 {
		maxRetries = 5
	}
	if queueBuffer <= 0 {
		queueBuffer = 64
	}
	return &UsageQueue{
		tasks:      tasks,
		recorder:   recorder,
		log:        log,
		wake:       make(chan struct{}, queueBuffer),
		maxRetries: maxRetries,
	}
}

// Enqueue persiste la tarea de consumo de un pedido confirmado y despierta al
// worker. Devuelve la tarea en estado pending.
func (q *UsageQueue) Enqueue(ctx context.Context, orderRef string, items []entity.OrderItem) (*entity.UsageTask, error) {
	if orderRef == "" || len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	task := &entity.UsageTask{
		ID:        uuid.New().String(),
		OrderRef:  orderRef,
		Items:     items,
		Status:    entity.UsageTaskPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := q.tasks.Create(task); err != nil {
		return nil, err
	}
	select {
	case q.wake <- struct{}{}:
	default: // el barrido periódico la recogerá
	}
	return task, nil
}

// Run es el loop del worker; bloquea hasta que ctx se cancele. Al arrancar
// drena las tareas pending que hayan sobrevivido a un reinicio (at-least-once)
// y después procesa por aviso o por barrido periódico.
func (q *UsageQueue) Run(ctx context.Context) {
	sweep := time.NewTicker(30 * time.Second)
	defer sweep.Stop()

	q.drain(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-q.wake:
			q.drain(ctx)
		case <-sweep.C:
			q.drain(ctx)
		}
	}
}

func (q *UsageQueue) drain(ctx context.Context) {
	for {
		pending, err := q.tasks.ListPending(32)
		if err != nil {
			q.log.Error().Err(err).Msg("cola de consumo: listar pendientes")
			return
		}
		if len(pending) == 0 {
			return
		}
		for _, task := range pending {
			if ctx.Err() != nil {
				return
			}
			q.process(ctx, task)
		}
		if len(pending) < 32 {
			return
		}
	}
}

// process ejecuta una tarea con backoff exponencial. El error final es
// tragado a propósito respecto del pedido: solo log + métrica + estado failed.
func (q *UsageQueue) process(ctx context.Context, task *entity.UsageTask) {
	attempts := 0
	backoff := retry.WithMaxRetries(uint64(q.maxRetries), retry.NewExponential(200*time.Millisecond))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		if err := q.recorder.Record(ctx, task); err != nil {
			metrics.UsageTaskRetries.Inc()
			q.log.Warn().Err(err).
				Str("task_id", task.ID).
				Str("order_ref", task.OrderRef).
				Int("attempt", attempts).
				Msg("registro de consumo falló, se reintenta")
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		metrics.UsageTasksProcessed.WithLabelValues("failed").Inc()
		q.log.Error().Err(err).
			Str("task_id", task.ID).
			Str("order_ref", task.OrderRef).
			Int("attempts", attempts).
			Msg("registro de consumo agotó reintentos; el pedido no se ve afectado")
		if markErr := q.tasks.MarkFailed(task.ID, attempts, err.Error()); markErr != nil {
			q.log.Error().Err(markErr).Str("task_id", task.ID).Msg("marcar tarea failed")
		}
		return
	}

	metrics.UsageTasksProcessed.WithLabelValues("done").Inc()
	if err := q.tasks.MarkDone(task.ID, attempts); err != nil {
		q.log.Error().Err(err).Str("task_id", task.ID).Msg("marcar tarea done")
	}
}
