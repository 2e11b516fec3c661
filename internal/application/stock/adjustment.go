package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/imprenta-pos/internal/application/dto"
	"github.com/tu-usuario/imprenta-pos/internal/application/ports"
	"github.com/tu-usuario/imprenta-pos/internal/domain"
	"github.com/tu-usuario/imprenta-pos/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pos/internal/domain/matching"
	"github.com/tu-usuario/imprenta-pos/internal/domain/repository"
)

// AdjustmentUseCase correcciones directas de stock por el operador: alta de
// material en tienda, ajuste incremental (delta) y recuento físico (absolute).
// Cada operación exitosa deja un AdjustmentEvent tipo snapshot en la bitácora.
type AdjustmentUseCase struct {
	stores    repository.StoreRepository
	materials repository.MaterialRepository
	stocks    repository.StockRepository
	txRunner  ports.TxRunner
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(
	stores repository.StoreRepository,
	materials repository.MaterialRepository,
	stocks repository.StockRepository,
	txRunner ports.TxRunner,
) *AdjustmentUseCase {
	return &AdjustmentUseCase{stores: stores, materials: materials, stocks: stocks, txRunner: txRunner}
}

// AddMaterial da de alta un material en una tienda con stock inicial ≥ 0.
// El alta duplicada de un material activo se rechaza. Queda registrada como
// AdjustmentEvent kind=add con SetTo igual al saldo inicial.
func (uc *AdjustmentUseCase) AddMaterial(ctx context.Context, storeID string, in dto.AddStockRequest) (*entity.StoreStock, error) {
	if in.MaterialID == "" || in.Initial < 0 {
		return nil, domain.ErrInvalidInput
	}
	store, err := uc.stores.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	material, err := uc.materials.GetByID(in.MaterialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	if existing, err := uc.stocks.GetByStoreAndMaterial(storeID, in.MaterialID); err != nil {
		return nil, err
	} else if existing != nil && existing.Active {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	unitCost := decimal.Zero
	if in.UnitCost != nil {
		unitCost = *in.UnitCost
	}
	row := &entity.StoreStock{
		ID:         uuid.New().String(),
		StoreID:    storeID,
		MaterialID: in.MaterialID,
		Stocked:    in.Initial,
		UnitCost:   unitCost,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		// El consumo pudo haber sobregirado el par antes del alta formal: si
		// existe una fila inactiva se reactiva sumando el inicial, si no se crea.
		existing, err := r.Stocks.GetByStoreAndMaterial(storeID, in.MaterialID)
		if err != nil {
			return err
		}
		if existing != nil {
			if err := r.Stocks.IncrementStocked(existing.ID, in.Initial); err != nil {
				return err
			}
			if err := r.Stocks.SetActive(existing.ID, true); err != nil {
				return err
			}
			if in.UnitCost != nil {
				newCost := matching.AverageUnitCost(existing.Stocked, existing.UnitCost, in.Initial, *in.UnitCost)
				if err := r.Stocks.SetUnitCost(existing.ID, newCost); err != nil {
					return err
				}
			}
			row = existing
			row.Stocked = existing.Stocked + in.Initial
			row.Active = true
		} else if err := r.Stocks.Create(row); err != nil {
			return err
		}

		used, err := r.Totals.Get(storeID, in.MaterialID)
		if err != nil {
			return err
		}
		return r.Adjustments.Create(&entity.AdjustmentEvent{
			ID:           uuid.New().String(),
			StockID:      row.ID,
			Kind:         entity.AdjustmentKindAdd,
			Delta:        in.Initial,
			SetTo:        row.Stocked - used,
			StockedAfter: row.Stocked,
			UsedAfter:    used,
			Actor:        in.Actor,
			CreatedAt:    now,
		})
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Adjust aplica una corrección sobre una fila de stock.
// delta: stocked += value. absolute: stocked = value y el consumo acumulado se
// resetea a cero — un recuento físico concilia el historial previo y el saldo
// pasa a ser exactamente value. Si el stocked resultante fuera negativo la
// operación se rechaza sin mutar nada.
func (uc *AdjustmentUseCase) Adjust(ctx context.Context, stockID string, in dto.AdjustStockRequest) (*entity.AdjustmentEvent, error) {
	if in.Mode != "delta" && in.Mode != "absolute" {
		return nil, domain.ErrInvalidInput
	}

	var event *entity.AdjustmentEvent
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		row, err := r.Stocks.GetByIDForUpdate(stockID)
		if err != nil {
			return err
		}
		if row == nil {
			return domain.ErrNotFound
		}

		var newStocked int64
		kind := entity.AdjustmentKindDelta
		switch in.Mode {
		case "delta":
			newStocked = row.Stocked + in.Value
		case "absolute":
			kind = entity.AdjustmentKindAbsolute
			newStocked = in.Value
		}
		if newStocked < 0 {
			return domain.ErrInvalidInput
		}

		switch kind {
		case entity.AdjustmentKindDelta:
			if err := r.Stocks.IncrementStocked(stockID, in.Value); err != nil {
				return err
			}
			if in.Value > 0 && in.UnitCost != nil {
				newCost := matching.AverageUnitCost(row.Stocked, row.UnitCost, in.Value, *in.UnitCost)
				if err := r.Stocks.SetUnitCost(stockID, newCost); err != nil {
					return err
				}
			}
		case entity.AdjustmentKindAbsolute:
			if err := r.Stocks.SetStocked(stockID, in.Value); err != nil {
				return err
			}
			if err := r.Totals.Reset(row.StoreID, row.MaterialID); err != nil {
				return err
			}
		}

		usedAfter := int64(0)
		if kind == entity.AdjustmentKindDelta {
			if usedAfter, err = r.Totals.Get(row.StoreID, row.MaterialID); err != nil {
				return err
			}
		}
		event = &entity.AdjustmentEvent{
			ID:           uuid.New().String(),
			StockID:      stockID,
			Kind:         kind,
			Delta:        in.Value,
			SetTo:        newStocked - usedAfter,
			StockedAfter: newStocked,
			UsedAfter:    usedAfter,
			Actor:        in.Actor,
			CreatedAt:    time.Now(),
		}
		return r.Adjustments.Create(event)
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

// Remove retira un material de una tienda: borrado duro de la fila que
// arrastra su total de consumo y los tres logs de eventos.
func (uc *AdjustmentUseCase) Remove(ctx context.Context, stockID string) error {
	row, err := uc.stocks.GetByID(stockID)
	if err != nil {
		return err
	}
	if row == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		return r.Stocks.Delete(stockID)
	})
}
