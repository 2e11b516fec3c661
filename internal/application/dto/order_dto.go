package dto

import "github.com/tu-usuario/imprenta-pos/internal/domain/entity"

// OrderConfirmedRequest body para POST /api/orders/confirmed: aviso del
// subsistema de pedidos de que un pedido quedó confirmado y durable.
// La tienda operativa NO viaja en el request; se resuelve al procesar.
type OrderConfirmedRequest struct {
	OrderRef string             `json:"order_ref" validate:"required"`
	Items    []entity.OrderItem `json:"items" validate:"required,min=1"`
}

// OrderConfirmedResponse respuesta 202: la tarea quedó encolada.
type OrderConfirmedResponse struct {
	TaskID   string `json:"task_id"`
	OrderRef string `json:"order_ref"`
	Status   string `json:"status"`
}
