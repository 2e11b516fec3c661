package repository

import "github.com/tu-usuario/imprenta-pos/internal/domain/entity"

// MaterialRepository define el puerto de persistencia para el catálogo de materiales (DIP).
type MaterialRepository interface {
	Create(material *entity.Material) error
	GetByID(id string) (*entity.Material, error)
	// GetByKey busca por clave canónica; nil si no existe. Sustenta la
	// creación idempotente: misma clave => se devuelve el registro original.
	GetByKey(key string) (*entity.Material, error)
	List(limit, offset int) ([]*entity.Material, error)
	// All devuelve el catálogo completo; el cruce de consumo evalúa todos los
	// materiales contra cada renglón (el catálogo es pequeño por naturaleza).
	All() ([]*entity.Material, error)
	Delete(id string) error
}
