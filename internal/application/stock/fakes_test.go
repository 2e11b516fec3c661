package stock_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/imprenta-pos/internal/application/ports"
	"github.com/tu-usuario/imprenta-pos/internal/domain"
	"github.com/tu-usuario/imprenta-pos/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia. Los contadores se mutan
// bajo mutex con incrementos por delta, igual que las sentencias SQL atómicas
// que sustituyen.
// ──────────────────────────────────────────────────────────────────────────────

type fakeMaterials struct {
	mu    sync.Mutex
	items map[string]*entity.Material
}

func newFakeMaterials() *fakeMaterials {
	return &fakeMaterials{items: map[string]*entity.Material{}}
}

func (f *fakeMaterials) Create(m *entity.Material) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.items {
		if it.Key == m.Key {
			return domain.ErrDuplicate
		}
	}
	cp := *m
	f.items[m.ID] = &cp
	return nil
}

func (f *fakeMaterials) GetByID(id string) (*entity.Material, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.items[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeMaterials) GetByKey(key string) (*entity.Material, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.items {
		if m.Key == key {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeMaterials) List(limit, offset int) ([]*entity.Material, error) {
	all, _ := f.All()
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeMaterials) All() ([]*entity.Material, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Material, 0, len(f.items))
	for _, m := range f.items {
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeMaterials) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
	return nil
}

type fakeStores struct {
	mu    sync.Mutex
	items map[string]*entity.Store
}

func newFakeStores() *fakeStores { return &fakeStores{items: map[string]*entity.Store{}} }

func (f *fakeStores) Create(s *entity.Store) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *s
	f.items[s.ID] = &cp
	return nil
}

func (f *fakeStores) GetByID(id string) (*entity.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.items[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeStores) GetByName(name string) (*entity.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.items {
		if s.Name == name {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStores) List() ([]*entity.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Store, 0, len(f.items))
	for _, s := range f.items {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStores) Count() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.items)), nil
}

func (f *fakeStores) GetOperational() (*entity.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.items {
		if s.IsOperational {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStores) SetOperational(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.items {
		s.IsOperational = s.ID == id
	}
	return nil
}

func (f *fakeStores) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
	return nil
}

type fakeStocks struct {
	mu    sync.Mutex
	items map[string]*entity.StoreStock
}

func newFakeStocks() *fakeStocks { return &fakeStocks{items: map[string]*entity.StoreStock{}} }

func (f *fakeStocks) Create(s *entity.StoreStock) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *s
	f.items[s.ID] = &cp
	return nil
}

func (f *fakeStocks) GetByID(id string) (*entity.StoreStock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.items[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeStocks) GetByIDForUpdate(id string) (*entity.StoreStock, error) {
	return f.GetByID(id)
}

func (f *fakeStocks) GetByStoreAndMaterial(storeID, materialID string) (*entity.StoreStock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.items {
		if s.StoreID == storeID && s.MaterialID == materialID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStocks) ListByStore(storeID string) ([]*entity.StoreStock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.StoreStock
	for _, s := range f.items {
		if s.StoreID == storeID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStocks) IncrementStocked(id string, delta int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Stocked += delta
	s.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStocks) SetStocked(id string, value int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Stocked = value
	s.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStocks) ApplyDelta(storeID, materialID string, delta int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.items {
		if s.StoreID == storeID && s.MaterialID == materialID {
			s.Stocked += delta
			s.UpdatedAt = time.Now()
			return nil
		}
	}
	id := "auto-" + storeID + "-" + materialID
	f.items[id] = &entity.StoreStock{
		ID: id, StoreID: storeID, MaterialID: materialID,
		Stocked: delta, Active: false, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	return nil
}

func (f *fakeStocks) SetActive(id string, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Active = active
	return nil
}

func (f *fakeStocks) SetUnitCost(id string, cost decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.UnitCost = cost
	return nil
}

func (f *fakeStocks) ExistsByMaterial(materialID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.items {
		if s.MaterialID == materialID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStocks) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
	return nil
}

type totalKey struct{ storeID, materialID string }

type fakeTotals struct {
	mu    sync.Mutex
	items map[totalKey]int64
}

func newFakeTotals() *fakeTotals { return &fakeTotals{items: map[totalKey]int64{}} }

func (f *fakeTotals) Get(storeID, materialID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[totalKey{storeID, materialID}], nil
}

func (f *fakeTotals) Add(storeID, materialID string, delta int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[totalKey{storeID, materialID}] += delta
	return nil
}

func (f *fakeTotals) Reset(storeID, materialID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[totalKey{storeID, materialID}] = 0
	return nil
}

type fakeUsageEvents struct {
	mu    sync.Mutex
	items []*entity.UsageEvent
}

func (f *fakeUsageEvents) Create(e *entity.UsageEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *e
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeUsageEvents) ListByStoreAndMaterial(storeID, materialID string) ([]*entity.UsageEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.UsageEvent
	for _, e := range f.items {
		if e.StoreID == storeID && e.MaterialID == materialID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeAdjustments struct {
	mu    sync.Mutex
	items []*entity.AdjustmentEvent
}

func (f *fakeAdjustments) Create(e *entity.AdjustmentEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *e
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeAdjustments) ListByStock(stockID string) ([]*entity.AdjustmentEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.AdjustmentEvent
	for _, e := range f.items {
		if e.StockID == stockID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeTransfers struct {
	mu    sync.Mutex
	items []*entity.TransferEvent
}

func (f *fakeTransfers) Create(e *entity.TransferEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *e
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeTransfers) ListByStock(stockID string) ([]*entity.TransferEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.TransferEvent
	for _, e := range f.items {
		if e.FromStockID == stockID || e.ToStockID == stockID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeTasks struct {
	mu    sync.Mutex
	items map[string]*entity.UsageTask
}

func newFakeTasks() *fakeTasks { return &fakeTasks{items: map[string]*entity.UsageTask{}} }

func (f *fakeTasks) Create(t *entity.UsageTask) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *t
	f.items[t.ID] = &cp
	return nil
}

func (f *fakeTasks) GetByID(id string) (*entity.UsageTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.items[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeTasks) ListPending(limit int) ([]*entity.UsageTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.UsageTask
	for _, t := range f.items {
		if t.Status == entity.UsageTaskPending {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeTasks) MarkDone(id string, attempts int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.items[id]; ok {
		t.Status = entity.UsageTaskDone
		t.Attempts = attempts
		t.UpdatedAt = time.Now()
	}
	return nil
}

func (f *fakeTasks) MarkFailed(id string, attempts int, lastError string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.items[id]; ok {
		t.Status = entity.UsageTaskFailed
		t.Attempts = attempts
		t.LastError = lastError
		t.UpdatedAt = time.Now()
	}
	return nil
}

// fakeTxRunner ejecuta el callback directamente sobre los mismos fakes; la
// atomicidad transaccional se prueba contra PostgreSQL, aquí interesa la lógica.
type fakeTxRunner struct{ repos ports.TxRepos }

func (f *fakeTxRunner) Run(_ context.Context, fn func(r ports.TxRepos) error) error {
	return fn(f.repos)
}

// world junta todos los fakes cableados para un test.
type world struct {
	materials *fakeMaterials
	stores    *fakeStores
	stocks    *fakeStocks
	totals    *fakeTotals
	usage     *fakeUsageEvents
	adjust    *fakeAdjustments
	transfers *fakeTransfers
	tasks     *fakeTasks
	tx        *fakeTxRunner
}

func newWorld() *world {
	w := &world{
		materials: newFakeMaterials(),
		stores:    newFakeStores(),
		stocks:    newFakeStocks(),
		totals:    newFakeTotals(),
		usage:     &fakeUsageEvents{},
		adjust:    &fakeAdjustments{},
		transfers: &fakeTransfers{},
		tasks:     newFakeTasks(),
	}
	w.tx = &fakeTxRunner{repos: ports.TxRepos{
		Materials:   w.materials,
		Stores:      w.stores,
		Stocks:      w.stocks,
		Totals:      w.totals,
		Usage:       w.usage,
		Adjustments: w.adjust,
		Transfers:   w.transfers,
		Tasks:       w.tasks,
	}}
	return w
}
