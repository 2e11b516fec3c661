package repository

import "github.com/tu-usuario/imprenta-pos/internal/domain/entity"

// StoreRepository define el puerto de persistencia para tiendas (DIP).
type StoreRepository interface {
	Create(store *entity.Store) error
	GetByID(id string) (*entity.Store, error)
	GetByName(name string) (*entity.Store, error)
	List() ([]*entity.Store, error)
	Count() (int64, error)
	// GetOperational devuelve la única tienda operativa.
	GetOperational() (*entity.Store, error)
	// SetOperational marca la tienda indicada como operativa y desmarca el
	// resto en una sola sentencia (nunca puede haber dos operativas).
	SetOperational(id string) error
	Delete(id string) error
}
