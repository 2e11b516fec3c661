// Package stores implementa los casos de uso de tiendas y el invariante de
// tienda operativa única.
package stores

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/imprenta-pos/internal/application/dto"
	"github.com/tu-usuario/imprenta-pos/internal/application/ports"
	"github.com/tu-usuario/imprenta-pos/internal/domain"
	"github.com/tu-usuario/imprenta-pos/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pos/internal/domain/repository"
)

// UseCase casos de uso CRUD de tiendas. En todo momento existe al menos una
// tienda y exactamente una es la operativa (destino del consumo de pedidos).
type UseCase struct {
	stores   repository.StoreRepository
	txRunner ports.TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(stores repository.StoreRepository, txRunner ports.TxRunner) *UseCase {
	return &UseCase{stores: stores, txRunner: txRunner}
}

// Create crea una tienda. La primera tienda del sistema queda operativa
// automáticamente; el nombre es único.
func (uc *UseCase) Create(in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if existing, err := uc.stores.GetByName(in.Name); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}

	count, err := uc.stores.Count()
	if err != nil {
		return nil, err
	}
	store := &entity.Store{
		ID:            uuid.New().String(),
		Name:          in.Name,
		IsOperational: count == 0,
		CreatedAt:     time.Now(),
	}
	if err := uc.stores.Create(store); err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// List lista todas las tiendas.
func (uc *UseCase) List() (*dto.StoreListResponse, error) {
	list, err := uc.stores.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.StoreResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStoreResponse(s))
	}
	return &dto.StoreListResponse{Items: items}, nil
}

// GetOperational devuelve la tienda operativa actual.
func (uc *UseCase) GetOperational() (*dto.StoreResponse, error) {
	store, err := uc.stores.GetOperational()
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	return toStoreResponse(store), nil
}

// SetOperational traslada el estado operativo a la tienda indicada.
// El repositorio lo hace en una sola sentencia (marca una, desmarca el resto),
// así que nunca hay un instante con dos tiendas operativas.
func (uc *UseCase) SetOperational(id string) error {
	store, err := uc.stores.GetByID(id)
	if err != nil {
		return err
	}
	if store == nil {
		return domain.ErrNotFound
	}
	return uc.stores.SetOperational(id)
}

// Delete elimina una tienda. Se rechaza borrar la última; si la tienda a
// borrar es la operativa, el estado operativo se reasigna a otra tienda dentro
// de la misma transacción, antes de completar el borrado. El borrado arrastra
// las filas de stock de la tienda con sus logs (FK en cascada).
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	store, err := uc.stores.GetByID(id)
	if err != nil {
		return err
	}
	if store == nil {
		return domain.ErrNotFound
	}
	count, err := uc.stores.Count()
	if err != nil {
		return err
	}
	if count <= 1 {
		return domain.ErrLastStore
	}

	return uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		if store.IsOperational {
			all, err := r.Stores.List()
			if err != nil {
				return err
			}
			for _, s := range all {
				if s.ID != id {
					if err := r.Stores.SetOperational(s.ID); err != nil {
						return err
					}
					break
				}
			}
		}
		return r.Stores.Delete(id)
	})
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	return &dto.StoreResponse{
		ID:            s.ID,
		Name:          s.Name,
		IsOperational: s.IsOperational,
		CreatedAt:     s.CreatedAt,
	}
}
