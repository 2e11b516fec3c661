// Package catalogue implementa los casos de uso del catálogo de materiales.
package catalogue

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/imprenta-pos/internal/application/dto"
	"github.com/tu-usuario/imprenta-pos/internal/domain"
	"github.com/tu-usuario/imprenta-pos/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pos/internal/domain/repository"
)

// UseCase casos de uso CRUD del catálogo de materiales.
type UseCase struct {
	materials repository.MaterialRepository
	stocks    repository.StockRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(materials repository.MaterialRepository, stocks repository.StockRepository) *UseCase {
	return &UseCase{materials: materials, stocks: stocks}
}

// Create crea un material. La clave canónica rechaza duplicados: si ya existe
// un material con el mismo conjunto de selecciones (en cualquier orden) se
// devuelve el registro original marcado como conflicto, no un segundo registro.
// Eso hace el reintento del cliente idempotente.
func (uc *UseCase) Create(in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if in.Name == "" || len(in.Selections) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, s := range in.Selections {
		if s.Unit == "" || s.SubUnit == "" {
			return nil, domain.ErrInvalidInput
		}
	}

	key := entity.SelectionKey(in.Selections)
	if existing, err := uc.materials.GetByKey(key); err != nil {
		return nil, err
	} else if existing != nil {
		return toMaterialResponse(existing, true), nil
	}

	material := &entity.Material{
		ID:         uuid.New().String(),
		Name:       in.Name,
		Selections: in.Selections,
		Key:        key,
		CreatedAt:  time.Now(),
	}
	if err := uc.materials.Create(material); err != nil {
		// Carrera entre dos creaciones equivalentes: la segunda pierde el
		// unique de la clave y devuelve el registro que ganó.
		if errors.Is(err, domain.ErrDuplicate) {
			if existing, getErr := uc.materials.GetByKey(key); getErr == nil && existing != nil {
				return toMaterialResponse(existing, true), nil
			}
		}
		return nil, err
	}
	return toMaterialResponse(material, false), nil
}

// List lista el catálogo con paginación.
func (uc *UseCase) List(limit, offset int) (*dto.MaterialListResponse, error) {
	list, err := uc.materials.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m, false))
	}
	return &dto.MaterialListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un material solo si ninguna fila de stock lo referencia.
func (uc *UseCase) Delete(id string) error {
	material, err := uc.materials.GetByID(id)
	if err != nil {
		return err
	}
	if material == nil {
		return domain.ErrNotFound
	}
	inUse, err := uc.stocks.ExistsByMaterial(id)
	if err != nil {
		return err
	}
	if inUse {
		return domain.ErrMaterialInUse
	}
	return uc.materials.Delete(id)
}

func toMaterialResponse(m *entity.Material, conflict bool) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		ID:         m.ID,
		Name:       m.Name,
		Selections: m.Selections,
		Key:        m.Key,
		CreatedAt:  m.CreatedAt,
		Conflict:   conflict,
	}
}
