package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/imprenta-pos/internal/application/dto"
	"github.com/tu-usuario/imprenta-pos/internal/application/stock"
	"github.com/tu-usuario/imprenta-pos/internal/domain"
)

// OrderHandler recibe el aviso de pedido confirmado del subsistema de pedidos.
// El pedido ya está durable cuando llega el aviso: aquí solo se encola la
// tarea de consumo (at-least-once) y se responde 202. Un fallo posterior del
// registro de consumo nunca afecta al pedido.
type OrderHandler struct {
	queue *stock.UsageQueue
}

// NewOrderHandler construye el handler.
func NewOrderHandler(queue *stock.UsageQueue) *OrderHandler {
	return &OrderHandler{queue: queue}
}

// Confirmed godoc
// @Summary      Aviso de pedido confirmado
// @Description  Encola la tarea de registro de consumo del pedido y responde 202. La
//
//	tienda operativa no viaja en el request: se resuelve al procesar la
//	tarea, contra el estado vigente en ese momento.
//
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrderConfirmedRequest  true  "order_ref y renglones del pedido"
// @Success      202   {object}  dto.OrderConfirmedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders/confirmed [post]
func (h *OrderHandler) Confirmed(c *fiber.Ctx) error {
	var in dto.OrderConfirmedRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	task, err := h.queue.Enqueue(c.Context(), in.OrderRef, in.Items)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "order_ref y al menos un renglón son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusAccepted).JSON(dto.OrderConfirmedResponse{
		TaskID:   task.ID,
		OrderRef: task.OrderRef,
		Status:   task.Status,
	})
}
