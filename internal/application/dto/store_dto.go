package dto

import "time"

// CreateStoreRequest body para POST /api/stores.
type CreateStoreRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// StoreResponse salida de una tienda.
type StoreResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	IsOperational bool      `json:"is_operational"`
	CreatedAt     time.Time `json:"created_at"`
}

// StoreListResponse lista de tiendas (sin paginar: son pocas por diseño).
type StoreListResponse struct {
	Items []StoreResponse `json:"items"`
}
