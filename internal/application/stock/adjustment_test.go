package stock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/imprenta-pos/internal/application/dto"
	"github.com/tu-usuario/imprenta-pos/internal/application/stock"
	"github.com/tu-usuario/imprenta-pos/internal/domain"
	"github.com/tu-usuario/imprenta-pos/internal/domain/entity"
)

func newAdjustment(w *world) *stock.AdjustmentUseCase {
	return stock.NewAdjustmentUseCase(w.stores, w.materials, w.stocks, w.tx)
}

func TestAddMaterial_AltaConEventoInicial(t *testing.T) {
	w := newWorld()
	storeID, _, _ := seedScenario(t, w)
	require.NoError(t, w.materials.Create(&entity.Material{
		ID: "mat-sobre", Name: "Sobres",
		Selections: []entity.Selection{{Unit: "producto", SubUnit: "sobre"}},
		Key:        entity.SelectionKey([]entity.Selection{{Unit: "producto", SubUnit: "sobre"}}),
	}))
	uc := newAdjustment(w)

	cost := decimal.NewFromInt(40)
	row, err := uc.AddMaterial(context.Background(), storeID, dto.AddStockRequest{
		MaterialID: "mat-sobre", Initial: 500, UnitCost: &cost, Actor: "ana",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(500), row.Stocked)
	assert.True(t, row.Active)

	events, _ := w.adjust.ListByStock(row.ID)
	require.Len(t, events, 1)
	assert.Equal(t, entity.AdjustmentKindAdd, events[0].Kind)
	assert.Equal(t, int64(500), events[0].SetTo)
	assert.Equal(t, int64(500), events[0].StockedAfter)
	assert.Zero(t, events[0].UsedAfter)
	assert.Equal(t, "ana", events[0].Actor)
}

func TestAddMaterial_DuplicadoActivoRechazado(t *testing.T) {
	w := newWorld()
	storeID, materialID, _ := seedScenario(t, w)
	uc := newAdjustment(w)

	_, err := uc.AddMaterial(context.Background(), storeID, dto.AddStockRequest{
		MaterialID: materialID, Initial: 10,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Un alta sobre una fila que el consumo ya sobregiró reutiliza la fila:
// el inicial se suma al stocked negativo en vez de pisarlo.
func TestAddMaterial_SobreFilaSobregirada(t *testing.T) {
	w := newWorld()
	storeID, _, _ := seedScenario(t, w)
	require.NoError(t, w.materials.Create(&entity.Material{
		ID: "mat-foto", Name: "Papel fotográfico",
		Selections: []entity.Selection{{Unit: "papel", SubUnit: "foto"}},
		Key:        entity.SelectionKey([]entity.Selection{{Unit: "papel", SubUnit: "foto"}}),
	}))
	// El registrador de consumo creó la fila en negativo (inactiva)
	require.NoError(t, w.stocks.ApplyDelta(storeID, "mat-foto", -3))
	require.NoError(t, w.totals.Add(storeID, "mat-foto", 3))

	uc := newAdjustment(w)
	row, err := uc.AddMaterial(context.Background(), storeID, dto.AddStockRequest{
		MaterialID: "mat-foto", Initial: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(97), row.Stocked)
	assert.True(t, row.Active)

	events, _ := w.adjust.ListByStock(row.ID)
	require.Len(t, events, 1)
	// Saldo tras el alta: 97 − 3 consumidas = 94
	assert.Equal(t, int64(94), events[0].SetTo)
}

func TestAdjust_DeltaPositivo(t *testing.T) {
	w := newWorld()
	storeID, materialID, stockID := seedScenario(t, w)
	require.NoError(t, w.totals.Add(storeID, materialID, 12))
	uc := newAdjustment(w)

	event, err := uc.Adjust(context.Background(), stockID, dto.AdjustStockRequest{
		Mode: "delta", Value: 50, Actor: "ana",
	})
	require.NoError(t, err)

	row, _ := w.stocks.GetByID(stockID)
	assert.Equal(t, int64(150), row.Stocked)
	assert.Equal(t, entity.AdjustmentKindDelta, event.Kind)
	assert.Equal(t, int64(150), event.StockedAfter)
	assert.Equal(t, int64(12), event.UsedAfter)
	assert.Equal(t, int64(138), event.SetTo) // 150 − 12
}

func TestAdjust_DeltaNegativoQueDejaNegativoSeRechaza(t *testing.T) {
	w := newWorld()
	_, _, stockID := seedScenario(t, w)
	uc := newAdjustment(w)

	_, err := uc.Adjust(context.Background(), stockID, dto.AdjustStockRequest{
		Mode: "delta", Value: -150,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Sin mutación alguna
	row, _ := w.stocks.GetByID(stockID)
	assert.Equal(t, int64(100), row.Stocked)
	events, _ := w.adjust.ListByStock(stockID)
	assert.Empty(t, events)
}

// Recuento físico: fija stocked, resetea el consumo acumulado y el saldo pasa
// a ser exactamente el valor contado, sin importar el total previo.
func TestAdjust_AbsolutoReseteaConsumo(t *testing.T) {
	w := newWorld()
	storeID, materialID, stockID := seedScenario(t, w)
	require.NoError(t, w.totals.Add(storeID, materialID, 37))
	uc := newAdjustment(w)

	event, err := uc.Adjust(context.Background(), stockID, dto.AdjustStockRequest{
		Mode: "absolute", Value: 80, Actor: "ana",
	})
	require.NoError(t, err)

	row, _ := w.stocks.GetByID(stockID)
	used, _ := w.totals.Get(storeID, materialID)
	assert.Equal(t, int64(80), row.Stocked)
	assert.Zero(t, used)
	assert.Equal(t, int64(80), row.Remaining(used))

	assert.Equal(t, entity.AdjustmentKindAbsolute, event.Kind)
	assert.Equal(t, int64(80), event.SetTo)
	assert.Equal(t, int64(80), event.StockedAfter)
	assert.Zero(t, event.UsedAfter)
}

func TestAdjust_AbsolutoNegativoSeRechaza(t *testing.T) {
	w := newWorld()
	_, _, stockID := seedScenario(t, w)
	uc := newAdjustment(w)

	_, err := uc.Adjust(context.Background(), stockID, dto.AdjustStockRequest{
		Mode: "absolute", Value: -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjust_ModoInvalido(t *testing.T) {
	w := newWorld()
	_, _, stockID := seedScenario(t, w)
	uc := newAdjustment(w)

	_, err := uc.Adjust(context.Background(), stockID, dto.AdjustStockRequest{Mode: "otro", Value: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRemove_EliminaFila(t *testing.T) {
	w := newWorld()
	_, _, stockID := seedScenario(t, w)
	uc := newAdjustment(w)

	require.NoError(t, uc.Remove(context.Background(), stockID))
	row, _ := w.stocks.GetByID(stockID)
	assert.Nil(t, row)

	err := uc.Remove(context.Background(), stockID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
