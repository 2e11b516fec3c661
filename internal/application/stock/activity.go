package stock

import (
	"sort"
	"time"

	"github.com/tu-usuario/imprenta-pos/internal/application/dto"
	"github.com/tu-usuario/imprenta-pos/internal/domain"
	"github.com/tu-usuario/imprenta-pos/internal/domain/repository"
)

// ActivityUseCase reconstruye la línea de tiempo de auditoría de una fila de
// stock mezclando las tres bitácoras. Es solo lectura y nunca falla por
// historial incompleto: el replay es una narrativa de mejor esfuerzo y el
// saldo vivo (stocked − consumido, calculado fresco) es siempre el
// autoritativo; si no cuadran, la línea termina en una entrada de conciliación
// forzada al valor vivo.
type ActivityUseCase struct {
	stocks      repository.StockRepository
	totals      repository.UsageTotalRepository
	stores      repository.StoreRepository
	adjustments repository.AdjustmentEventRepository
	transfers   repository.TransferEventRepository
	usage       repository.UsageEventRepository
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(
	stocks repository.StockRepository,
	totals repository.UsageTotalRepository,
	stores repository.StoreRepository,
	adjustments repository.AdjustmentEventRepository,
	transfers repository.TransferEventRepository,
	usage repository.UsageEventRepository,
) *ActivityUseCase {
	return &ActivityUseCase{
		stocks: stocks, totals: totals, stores: stores,
		adjustments: adjustments, transfers: transfers, usage: usage,
	}
}

// rango de desempate cuando varias entradas comparten timestamp; es solo para
// una presentación estable, no tiene carga semántica.
const (
	rankAdjustment = 0
	rankTransfer   = 1
	rankUsage      = 2
)

type timelineEvent struct {
	at       time.Time
	rank     int
	seq      int
	entry    dto.ActivityEntry
	snapshot bool  // true: fija el saldo en snapshotTo
	to       int64 // valor del snapshot
	delta    int64 // cambio con signo para no-snapshots
}

// Timeline devuelve la línea de tiempo completa de una fila de stock.
func (uc *ActivityUseCase) Timeline(stockID string) (*dto.ActivityResponse, error) {
	row, err := uc.stocks.GetByID(stockID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}
	used, err := uc.totals.Get(row.StoreID, row.MaterialID)
	if err != nil {
		return nil, err
	}
	live := row.Remaining(used)

	events, err := uc.gather(stockID, row.StoreID, row.MaterialID)
	if err != nil {
		return nil, err
	}

	// Sin historial: una sola entrada sintética con el saldo vivo.
	if len(events) == 0 {
		return &dto.ActivityResponse{
			StockID:       stockID,
			LiveRemaining: live,
			Entries: []dto.ActivityEntry{{
				Type:    dto.ActivityCurrent,
				Balance: live,
				At:      time.Now(),
			}},
		}, nil
	}

	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].at.Equal(events[j].at) {
			return events[i].at.Before(events[j].at)
		}
		if events[i].rank != events[j].rank {
			return events[i].rank < events[j].rank
		}
		return events[i].seq < events[j].seq
	})

	entries := make([]dto.ActivityEntry, 0, len(events)+1)
	var balance int64
	for _, ev := range events {
		if ev.snapshot {
			balance = ev.to
		} else {
			balance += ev.delta
		}
		entry := ev.entry
		entry.Balance = balance
		entries = append(entries, entry)
	}

	// El replay puede no cuadrar con el saldo vivo: fallos del registrador de
	// consumo, logs borrados o correcciones por fuera. La conciliación fuerza
	// el estado final mostrado al valor autoritativo.
	reconciled := balance != live
	if reconciled {
		entries = append(entries, dto.ActivityEntry{
			Type:    dto.ActivityReconciliation,
			Balance: live,
			At:      time.Now(),
		})
	}

	return &dto.ActivityResponse{
		StockID:       stockID,
		LiveRemaining: live,
		Reconciled:    reconciled,
		Entries:       entries,
	}, nil
}

// gather junta las tres bitácoras de la fila como eventos de línea de tiempo:
// ajustes como snapshots autoritativos, traslados como delta con signo según
// la dirección y consumos como delta negativo.
func (uc *ActivityUseCase) gather(stockID, storeID, materialID string) ([]timelineEvent, error) {
	var events []timelineEvent
	seq := 0

	adjustments, err := uc.adjustments.ListByStock(stockID)
	if err != nil {
		return nil, err
	}
	for _, a := range adjustments {
		events = append(events, timelineEvent{
			at: a.CreatedAt, rank: rankAdjustment, seq: seq,
			snapshot: true, to: a.SetTo,
			entry: dto.ActivityEntry{
				Type:  dto.ActivityAdjustment,
				Kind:  a.Kind,
				Actor: a.Actor,
				At:    a.CreatedAt,
			},
		})
		seq++
	}

	transfers, err := uc.transfers.ListByStock(stockID)
	if err != nil {
		return nil, err
	}
	for _, t := range transfers {
		delta := t.Qty
		peerID := t.FromStoreID
		if t.FromStockID == stockID {
			delta = -t.Qty
			peerID = t.ToStoreID
		}
		peer := peerID
		if s, err := uc.stores.GetByID(peerID); err == nil && s != nil {
			peer = s.Name
		}
		events = append(events, timelineEvent{
			at: t.CreatedAt, rank: rankTransfer, seq: seq, delta: delta,
			entry: dto.ActivityEntry{
				Type:      dto.ActivityTransfer,
				Delta:     delta,
				PeerStore: peer,
				Actor:     t.Actor,
				At:        t.CreatedAt,
			},
		})
		seq++
	}

	usage, err := uc.usage.ListByStoreAndMaterial(storeID, materialID)
	if err != nil {
		return nil, err
	}
	for _, u := range usage {
		events = append(events, timelineEvent{
			at: u.CreatedAt, rank: rankUsage, seq: seq, delta: -u.Count,
			entry: dto.ActivityEntry{
				Type:     dto.ActivityUsage,
				Delta:    -u.Count,
				OrderRef: u.OrderRef,
				At:       u.CreatedAt,
			},
		})
		seq++
	}

	return events, nil
}
