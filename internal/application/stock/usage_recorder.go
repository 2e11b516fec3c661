package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/imprenta-pos/internal/application/ports"
	"github.com/tu-usuario/imprenta-pos/internal/domain"
	"github.com/tu-usuario/imprenta-pos/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pos/internal/domain/matching"
	"github.com/tu-usuario/imprenta-pos/internal/domain/repository"
	"github.com/tu-usuario/imprenta-pos/pkg/metrics"
)

// UsageRecorder registra el consumo de materiales de un pedido confirmado.
// Por cada renglón del pedido y cada material que le aplique: escribe un
// UsageEvent, incrementa el total de consumo del par (tienda operativa,
// material) y resta stocked en la misma cantidad. La resta no se recorta:
// stocked puede quedar negativo, es un sobregiro que debe verse en los reportes.
type UsageRecorder struct {
	stores    repository.StoreRepository
	materials repository.MaterialRepository
	txRunner  ports.TxRunner
}

// NewUsageRecorder construye el registrador.
func NewUsageRecorder(
	stores repository.StoreRepository,
	materials repository.MaterialRepository,
	txRunner ports.TxRunner,
) *UsageRecorder {
	return &UsageRecorder{stores: stores, materials: materials, txRunner: txRunner}
}

// Record procesa una tarea de consumo completa en una transacción: o queda
// registrado todo el consumo del pedido o nada, de modo que el reintento de la
// tarea no duplique cruces ya aplicados. La tienda operativa se resuelve aquí,
// al momento de procesar, no al encolar.
func (rec *UsageRecorder) Record(ctx context.Context, task *entity.UsageTask) error {
	operational, err := rec.stores.GetOperational()
	if err != nil {
		return fmt.Errorf("resolver tienda operativa: %w", err)
	}
	if operational == nil {
		return fmt.Errorf("resolver tienda operativa: %w", domain.ErrNotFound)
	}
	catalogue, err := rec.materials.All()
	if err != nil {
		return fmt.Errorf("cargar catálogo: %w", err)
	}

	now := time.Now()
	return rec.txRunner.Run(ctx, func(r ports.TxRepos) error {
		for idx, item := range task.Items {
			for _, material := range catalogue {
				if !matching.Matches(material.Selections, item.Selections) {
					continue
				}
				count := matching.ComputeCount(item.Pages, item.DoubleSided, item.Spoiled)

				if err := r.Usage.Create(&entity.UsageEvent{
					ID:         uuid.New().String(),
					StoreID:    operational.ID,
					MaterialID: material.ID,
					OrderRef:   task.OrderRef,
					ItemIndex:  idx,
					Count:      count,
					CreatedAt:  now,
				}); err != nil {
					return err
				}
				// Incremento atómico create-if-absent; nunca leer-modificar-escribir.
				if err := r.Totals.Add(operational.ID, material.ID, count); err != nil {
					return err
				}
				// Resta sin recorte; crea la fila en cero si el material aún
				// no estaba dado de alta en la tienda operativa.
				if err := r.Stocks.ApplyDelta(operational.ID, material.ID, -count); err != nil {
					return err
				}
				metrics.UsageEventsRecorded.Inc()
			}
		}
		return nil
	})
}
