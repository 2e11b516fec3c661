package stock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/imprenta-pos/internal/application/dto"
	"github.com/tu-usuario/imprenta-pos/internal/application/ports"
	"github.com/tu-usuario/imprenta-pos/internal/domain"
	"github.com/tu-usuario/imprenta-pos/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pos/internal/domain/matching"
	"github.com/tu-usuario/imprenta-pos/internal/domain/repository"
	"github.com/tu-usuario/imprenta-pos/pkg/metrics"
)

// TransferUseCase traslada cantidad de un material entre tiendas.
// Invariante de conservación: la suma de stocked de origen y destino no cambia
// con un traslado exitoso; solo cambia su distribución.
type TransferUseCase struct {
	stores   repository.StoreRepository
	txRunner ports.TxRunner
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(stores repository.StoreRepository, txRunner ports.TxRunner) *TransferUseCase {
	return &TransferUseCase{stores: stores, txRunner: txRunner}
}

// Transfer mueve qty unidades desde la fila de stock origen hacia la misma
// referencia de material en la tienda destino. La secuencia completa
// (leer saldo, validar, restar, sumar, log) corre en UNA transacción con la
// fila origen bloqueada (SELECT FOR UPDATE): dos traslados concurrentes desde
// el mismo origen no pueden pasar ambos la validación con un saldo viejo.
// Si qty supera el saldo disponible se rechaza con InsufficientStockError y
// ninguna fila queda tocada; nunca hay traslado parcial.
func (uc *TransferUseCase) Transfer(ctx context.Context, fromStockID string, in dto.TransferStockRequest) (*entity.TransferEvent, error) {
	if in.Qty <= 0 || in.ToStoreID == "" {
		return nil, domain.ErrInvalidInput
	}
	toStore, err := uc.stores.GetByID(in.ToStoreID)
	if err != nil {
		return nil, err
	}
	if toStore == nil {
		return nil, domain.ErrNotFound
	}

	var event *entity.TransferEvent
	err = uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		origin, err := r.Stocks.GetByIDForUpdate(fromStockID)
		if err != nil {
			return err
		}
		if origin == nil {
			return domain.ErrNotFound
		}
		if origin.StoreID == in.ToStoreID {
			return domain.ErrInvalidInput
		}

		// Saldo disponible del origen: stocked − consumido (total ausente = 0).
		used, err := r.Totals.Get(origin.StoreID, origin.MaterialID)
		if err != nil {
			return err
		}
		remaining := origin.Remaining(used)
		if in.Qty > remaining {
			metrics.TransfersRejected.Inc()
			return &domain.InsufficientStockError{Remaining: remaining, Requested: in.Qty}
		}

		if err := r.Stocks.IncrementStocked(origin.ID, -in.Qty); err != nil {
			return err
		}

		now := time.Now()
		dest, err := r.Stocks.GetByStoreAndMaterial(in.ToStoreID, origin.MaterialID)
		if err != nil {
			return err
		}
		if dest == nil {
			dest = &entity.StoreStock{
				ID:         uuid.New().String(),
				StoreID:    in.ToStoreID,
				MaterialID: origin.MaterialID,
				Stocked:    in.Qty,
				UnitCost:   origin.UnitCost,
				Active:     true,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := r.Stocks.Create(dest); err != nil {
				return err
			}
		} else {
			if err := r.Stocks.IncrementStocked(dest.ID, in.Qty); err != nil {
				return err
			}
			newCost := matching.AverageUnitCost(dest.Stocked, dest.UnitCost, in.Qty, origin.UnitCost)
			if err := r.Stocks.SetUnitCost(dest.ID, newCost); err != nil {
				return err
			}
		}

		event = &entity.TransferEvent{
			ID:          uuid.New().String(),
			MaterialID:  origin.MaterialID,
			FromStoreID: origin.StoreID,
			ToStoreID:   in.ToStoreID,
			FromStockID: origin.ID,
			ToStockID:   dest.ID,
			Qty:         in.Qty,
			Actor:       in.Actor,
			CreatedAt:   now,
		}
		return r.Transfers.Create(event)
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}
