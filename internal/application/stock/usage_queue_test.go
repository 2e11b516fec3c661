package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/imprenta-pos/internal/application/stock"
	"github.com/tu-usuario/imprenta-pos/internal/domain"
	"github.com/tu-usuario/imprenta-pos/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pos/pkg/logger"
)

func newQueue(w *world, maxRetries int) *stock.UsageQueue {
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	return stock.NewUsageQueue(w.tasks, newRecorder(w), log, maxRetries, 8)
}

// Espera hasta que la tarea salga de pending o venza el plazo.
func waitSettled(t *testing.T, w *world, taskID string) *entity.UsageTask {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		task, err := w.tasks.GetByID(taskID)
		require.NoError(t, err)
		if task.Status != entity.UsageTaskPending {
			return task
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("la tarea nunca salió de pending")
	return nil
}

func TestEnqueue_PersistePendiente(t *testing.T) {
	w := newWorld()
	seedScenario(t, w)
	q := newQueue(w, 1)

	task, err := q.Enqueue(context.Background(), "orden-1", []entity.OrderItem{
		{Selections: []entity.Selection{{Unit: "tamaño", SubUnit: "a4"}}, Pages: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.UsageTaskPending, task.Status)
	assert.Equal(t, "orden-1", task.OrderRef)

	stored, err := w.tasks.GetByID(task.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.UsageTaskPending, stored.Status)
}

func TestEnqueue_EntradaInvalida(t *testing.T) {
	w := newWorld()
	q := newQueue(w, 1)

	_, err := q.Enqueue(context.Background(), "", []entity.OrderItem{{Pages: 1}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = q.Enqueue(context.Background(), "orden-1", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Camino feliz: encolar, procesar, tarea done y contadores movidos.
func TestQueue_ProcesaHastaDone(t *testing.T) {
	w := newWorld()
	storeID, materialID, stockID := seedScenario(t, w)
	q := newQueue(w, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Run(ctx)

	task, err := q.Enqueue(ctx, "orden-1", []entity.OrderItem{
		{Selections: []entity.Selection{{Unit: "tamaño", SubUnit: "a4"}}, Pages: 10, Spoiled: 2},
	})
	require.NoError(t, err)

	settled := waitSettled(t, w, task.ID)
	assert.Equal(t, entity.UsageTaskDone, settled.Status)
	assert.Equal(t, 1, settled.Attempts)

	row, _ := w.stocks.GetByID(stockID)
	used, _ := w.totals.Get(storeID, materialID)
	assert.Equal(t, int64(88), row.Stocked)
	assert.Equal(t, int64(12), used)
}

// Una tarea pending que sobrevivió a un reinicio se drena al arrancar el
// worker, sin necesidad de un nuevo aviso.
func TestQueue_DrenaAlArrancar(t *testing.T) {
	w := newWorld()
	storeID, materialID, _ := seedScenario(t, w)
	q := newQueue(w, 1)

	huerfana := task("orden-vieja", entity.OrderItem{
		Selections: []entity.Selection{{Unit: "tamaño", SubUnit: "a4"}},
		Pages:      4,
	})
	require.NoError(t, w.tasks.Create(huerfana))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Run(ctx)

	settled := waitSettled(t, w, huerfana.ID)
	assert.Equal(t, entity.UsageTaskDone, settled.Status)

	used, _ := w.totals.Get(storeID, materialID)
	assert.Equal(t, int64(4), used)
}

// Sin tienda operativa el registrador falla siempre: la tarea agota sus
// reintentos y queda failed con el último error, sin tocar ningún contador.
func TestQueue_AgotaReintentosYMarcaFailed(t *testing.T) {
	w := newWorld()
	// sin seedScenario: no hay tienda operativa
	q := newQueue(w, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Run(ctx)

	task, err := q.Enqueue(ctx, "orden-1", []entity.OrderItem{
		{Selections: []entity.Selection{{Unit: "tamaño", SubUnit: "a4"}}, Pages: 10},
	})
	require.NoError(t, err)

	settled := waitSettled(t, w, task.ID)
	assert.Equal(t, entity.UsageTaskFailed, settled.Status)
	assert.Equal(t, 2, settled.Attempts, "intento original + 1 reintento")
	assert.Contains(t, settled.LastError, "tienda operativa")
}
