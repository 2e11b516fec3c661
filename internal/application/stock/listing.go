// Package stock implementa el libro de consumo multi-tienda: listados,
// ajustes de operador, traslados entre tiendas, registro de consumo
// post-venta y reconstrucción de la línea de tiempo de auditoría.
package stock

import (
	"github.com/tu-usuario/imprenta-pos/internal/application/dto"
	"github.com/tu-usuario/imprenta-pos/internal/domain"
	"github.com/tu-usuario/imprenta-pos/internal/domain/repository"
)

// ListingUseCase listado de stock por tienda (stocked, consumido, saldo).
type ListingUseCase struct {
	stores    repository.StoreRepository
	stocks    repository.StockRepository
	totals    repository.UsageTotalRepository
	materials repository.MaterialRepository
}

// NewListingUseCase construye el caso de uso.
func NewListingUseCase(
	stores repository.StoreRepository,
	stocks repository.StockRepository,
	totals repository.UsageTotalRepository,
	materials repository.MaterialRepository,
) *ListingUseCase {
	return &ListingUseCase{stores: stores, stocks: stocks, totals: totals, materials: materials}
}

// ListByStore devuelve el stock de una tienda con el saldo calculado fresco
// (stocked − consumido). El saldo negativo es un sobregiro y se devuelve tal cual.
func (uc *ListingUseCase) ListByStore(storeID string) (*dto.StockListResponse, error) {
	store, err := uc.stores.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	rows, err := uc.stocks.ListByStore(storeID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockRowResponse, 0, len(rows))
	for _, s := range rows {
		used, err := uc.totals.Get(s.StoreID, s.MaterialID)
		if err != nil {
			return nil, err
		}
		name := ""
		if m, err := uc.materials.GetByID(s.MaterialID); err == nil && m != nil {
			name = m.Name
		}
		items = append(items, dto.StockRowResponse{
			StockID:      s.ID,
			MaterialID:   s.MaterialID,
			MaterialName: name,
			Stocked:      s.Stocked,
			Used:         used,
			Remaining:    s.Remaining(used),
			UnitCost:     s.UnitCost,
			Active:       s.Active,
			UpdatedAt:    s.UpdatedAt,
		})
	}
	return &dto.StockListResponse{StoreID: storeID, Items: items}, nil
}
