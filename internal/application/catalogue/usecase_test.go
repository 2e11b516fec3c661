package catalogue_test

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/imprenta-pos/internal/application/catalogue"
	"github.com/tu-usuario/imprenta-pos/internal/application/dto"
	"github.com/tu-usuario/imprenta-pos/internal/domain"
	"github.com/tu-usuario/imprenta-pos/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pos/internal/domain/repository"
)

// ─────────────────────────────────────────────
// Fakes en memoria
// ─────────────────────────────────────────────

type fakeMaterials struct {
	items map[string]*entity.Material
}

func newFakeMaterials() *fakeMaterials {
	return &fakeMaterials{items: make(map[string]*entity.Material)}
}

func (f *fakeMaterials) Create(m *entity.Material) error {
	for _, e := range f.items {
		if e.Key == m.Key {
			return domain.ErrDuplicate
		}
	}
	cp := *m
	f.items[m.ID] = &cp
	return nil
}

func (f *fakeMaterials) GetByID(id string) (*entity.Material, error) {
	if m, ok := f.items[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeMaterials) GetByKey(key string) (*entity.Material, error) {
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
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeMaterials) All() ([]*entity.Material, error) {
	var out []*entity.Material
	for _, m := range f.items {
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeMaterials) Delete(id string) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

// fakeStocks solo responde ExistsByMaterial; el resto del puerto no se toca
// desde el catálogo.
type fakeStocks struct {
	repository.StockRepository
	inUse map[string]bool
}

func (f *fakeStocks) ExistsByMaterial(materialID string) (bool, error) {
	return f.inUse[materialID], nil
}

func newUseCase() (*catalogue.UseCase, *fakeMaterials, *fakeStocks) {
	materials := newFakeMaterials()
	stocks := &fakeStocks{inUse: make(map[string]bool)}
	return catalogue.NewUseCase(materials, stocks), materials, stocks
}

// ─────────────────────────────────────────────
// Create
// ─────────────────────────────────────────────

func TestCreate_Basico(t *testing.T) {
	uc, materials, _ := newUseCase()

	out, err := uc.Create(dto.CreateMaterialRequest{
		Name: "Papel A4",
		Selections: []entity.Selection{
			{Unit: "tamaño", SubUnit: "a4"},
			{Unit: "color", SubUnit: "bn"},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.False(t, out.Conflict)
	assert.Equal(t, "color:bn|tamaño:a4", out.Key)

	stored, _ := materials.GetByID(out.ID)
	require.NotNil(t, stored)
	assert.Equal(t, "Papel A4", stored.Name)
}

// Mismo conjunto de selecciones en otro orden => conflicto con el original,
// nunca un segundo registro.
func TestCreate_DuplicadoDevuelveOriginal(t *testing.T) {
	uc, materials, _ := newUseCase()

	first, err := uc.Create(dto.CreateMaterialRequest{
		Name: "Papel A4",
		Selections: []entity.Selection{
			{Unit: "tamaño", SubUnit: "a4"},
			{Unit: "color", SubUnit: "bn"},
		},
	})
	require.NoError(t, err)

	second, err := uc.Create(dto.CreateMaterialRequest{
		Name: "Papel A4 (otra vez)",
		Selections: []entity.Selection{
			{Unit: "Color", SubUnit: " BN "},
			{Unit: "Tamaño", SubUnit: "A4"},
		},
	})
	require.NoError(t, err)
	assert.True(t, second.Conflict)
	assert.Equal(t, first.ID, second.ID, "se devuelve el registro original")
	assert.Equal(t, "Papel A4", second.Name)

	all, _ := materials.All()
	assert.Len(t, all, 1)
}

// Carrera entre dos creaciones equivalentes: si el unique de la clave salta en
// el INSERT, se resuelve releyendo al ganador.
func TestCreate_CarreraResuelveAlGanador(t *testing.T) {
	uc, materials, _ := newUseCase()

	winner := &entity.Material{
		ID:         "mat-ganador",
		Name:       "Papel A4",
		Selections: []entity.Selection{{Unit: "tamaño", SubUnit: "a4"}},
		Key:        entity.SelectionKey([]entity.Selection{{Unit: "tamaño", SubUnit: "a4"}}),
		CreatedAt:  time.Now(),
	}
	require.NoError(t, materials.Create(winner))

	out, err := uc.Create(dto.CreateMaterialRequest{
		Name:       "Papel A4",
		Selections: []entity.Selection{{Unit: "tamaño", SubUnit: "a4"}},
	})
	require.NoError(t, err)
	assert.True(t, out.Conflict)
	assert.Equal(t, "mat-ganador", out.ID)
}

func TestCreate_EntradaInvalida(t *testing.T) {
	uc, _, _ := newUseCase()

	cases := []dto.CreateMaterialRequest{
		{Name: "", Selections: []entity.Selection{{Unit: "tamaño", SubUnit: "a4"}}},
		{Name: "Papel", Selections: nil},
		{Name: "Papel", Selections: []entity.Selection{{Unit: "", SubUnit: "a4"}}},
		{Name: "Papel", Selections: []entity.Selection{{Unit: "tamaño", SubUnit: ""}}},
	}
	for _, in := range cases {
		_, err := uc.Create(in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// ─────────────────────────────────────────────
// List / Delete
// ─────────────────────────────────────────────

func TestList_Paginado(t *testing.T) {
	uc, _, _ := newUseCase()
	names := []string{"Cartulina", "Papel A4", "Tinta negra"}
	for i, name := range names {
		_, err := uc.Create(dto.CreateMaterialRequest{
			Name:       name,
			Selections: []entity.Selection{{Unit: "id", SubUnit: name}},
		})
		require.NoError(t, err, "material %d", i)
	}

	out, err := uc.List(2, 0)
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 2, out.Page.Limit)

	out, err = uc.List(2, 2)
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)
}

func TestDelete_Basico(t *testing.T) {
	uc, materials, _ := newUseCase()
	out, err := uc.Create(dto.CreateMaterialRequest{
		Name:       "Papel A4",
		Selections: []entity.Selection{{Unit: "tamaño", SubUnit: "a4"}},
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(out.ID))
	gone, _ := materials.GetByID(out.ID)
	assert.Nil(t, gone)
}

func TestDelete_MaterialEnUso(t *testing.T) {
	uc, _, stocks := newUseCase()
	out, err := uc.Create(dto.CreateMaterialRequest{
		Name:       "Papel A4",
		Selections: []entity.Selection{{Unit: "tamaño", SubUnit: "a4"}},
	})
	require.NoError(t, err)
	stocks.inUse[out.ID] = true

	err = uc.Delete(out.ID)
	assert.ErrorIs(t, err, domain.ErrMaterialInUse)
}

func TestDelete_NoExiste(t *testing.T) {
	uc, _, _ := newUseCase()
	assert.ErrorIs(t, uc.Delete("no-existe"), domain.ErrNotFound)
}
