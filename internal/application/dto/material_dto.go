package dto

import (
	"time"

	"github.com/tu-usuario/imprenta-pos/internal/domain/entity"
)

// CreateMaterialRequest body para POST /api/materials.
type CreateMaterialRequest struct {
	Name       string             `json:"name" validate:"required,min=1,max=200"`
	Selections []entity.Selection `json:"selections" validate:"required,min=1"`
}

// MaterialResponse salida de un material del catálogo.
type MaterialResponse struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Selections []entity.Selection `json:"selections"`
	Key        string             `json:"key"`
	CreatedAt  time.Time          `json:"created_at"`
	// Conflict true cuando la creación encontró un material equivalente y se
	// devuelve el registro original (reintento idempotente del cliente).
	Conflict bool `json:"conflict,omitempty"`
}

// MaterialListResponse lista paginada de materiales.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
