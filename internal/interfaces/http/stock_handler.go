package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/imprenta-pos/internal/application/dto"
	"github.com/tu-usuario/imprenta-pos/internal/application/stock"
	"github.com/tu-usuario/imprenta-pos/internal/application/stores"
	"github.com/tu-usuario/imprenta-pos/internal/domain"
	"github.com/tu-usuario/imprenta-pos/internal/infrastructure/export"
)

// StockHandler maneja las peticiones HTTP del libro de stock: listado, altas,
// ajustes, traslados, actividad y exportaciones.
type StockHandler struct {
	listing    *stock.ListingUseCase
	adjustment *stock.AdjustmentUseCase
	transfer   *stock.TransferUseCase
	activity   *stock.ActivityUseCase
	stores     *stores.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(
	listing *stock.ListingUseCase,
	adjustment *stock.AdjustmentUseCase,
	transfer *stock.TransferUseCase,
	activity *stock.ActivityUseCase,
	storesUC *stores.UseCase,
) *StockHandler {
	return &StockHandler{
		listing: listing, adjustment: adjustment,
		transfer: transfer, activity: activity, stores: storesUC,
	}
}

// ListByStore godoc
// @Summary      Stock de una tienda
// @Description  Una fila por material con stocked, consumido y saldo (stocked − consumido,
//
//	calculado fresco; puede ser negativo por sobregiro).
//
// @Tags         stock
// @Produce      json
// @Param        id  path  string  true  "ID de la tienda"
// @Success      200  {object}  dto.StockListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{id}/stock [get]
func (h *StockHandler) ListByStore(c *fiber.Ctx) error {
	out, err := h.listing.ListByStore(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tienda no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// AddMaterial godoc
// @Summary      Dar de alta un material en una tienda
// @Description  Crea la fila de stock del par tienda+material. Un alta duplicada sobre
//
//	una fila activa devuelve 409; sobre una fila inactiva (dejada por un
//	sobregiro o una baja blanda) la reactiva sumando el stock inicial.
//
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la tienda"
// @Param        body  body  dto.AddStockRequest  true  "material_id, initial, unit_cost opcional"
// @Success      201   {object}  dto.StockRowResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stores/{id}/stock [post]
func (h *StockHandler) AddMaterial(c *fiber.Ctx) error {
	var in dto.AddStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	row, err := h.adjustment.AddMaterial(c.Context(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "material_id es requerido e initial no puede ser negativo"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tienda o material no encontrado"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_STOCKED", Message: "el material ya está dado de alta en la tienda"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"stock_id":    row.ID,
		"store_id":    row.StoreID,
		"material_id": row.MaterialID,
		"stocked":     row.Stocked,
		"active":      row.Active,
	})
}

// Adjust godoc
// @Summary      Ajustar una fila de stock
// @Description  mode=delta suma value (con signo) al stocked; mode=absolute fija
//
//	stocked=value y resetea el consumo acumulado (recuento físico). Un
//	resultado negativo se rechaza sin mutar nada.
//
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la fila de stock"
// @Param        body  body  dto.AdjustStockRequest  true  "mode, value, unit_cost opcional, actor"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	event, err := h.adjustment.Adjust(c.Context(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "mode debe ser delta o absolute y el stocked resultante no puede ser negativo"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "fila de stock no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"event_id":      event.ID,
		"kind":          event.Kind,
		"set_to":        event.SetTo,
		"stocked_after": event.StockedAfter,
		"used_after":    event.UsedAfter,
	})
}

// Transfer godoc
// @Summary      Trasladar stock entre tiendas
// @Description  Mueve qty unidades desde esta fila hacia la misma referencia de material
//
//	en otra tienda, en una sola transacción con bloqueo de fila. Si qty
//	supera el saldo disponible se rechaza con 409 y el saldo real; ningún
//	traslado parcial.
//
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la fila origen"
// @Param        body  body  dto.TransferStockRequest  true  "to_store_id, qty, actor"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/stock/{id}/transfer [post]
func (h *StockHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	event, err := h.transfer.Transfer(c.Context(), c.Params("id"), in)
	if err != nil {
		var insufficient *domain.InsufficientStockError
		if errors.As(err, &insufficient) {
			return c.Status(fiber.StatusConflict).JSON(dto.InsufficientStockResponse{
				Code:      "INSUFFICIENT_STOCK",
				Message:   fmt.Sprintf("saldo insuficiente: disponible %d, solicitado %d", insufficient.Remaining, insufficient.Requested),
				Remaining: insufficient.Remaining,
				Requested: insufficient.Requested,
			})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "qty debe ser positivo y la tienda destino distinta del origen"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "fila de stock o tienda destino no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"event_id":      event.ID,
		"from_stock_id": event.FromStockID,
		"to_stock_id":   event.ToStockID,
		"qty":           event.Qty,
	})
}

// Activity godoc
// @Summary      Línea de tiempo de una fila de stock
// @Description  Mezcla los logs de ajustes, traslados y consumos en una narrativa con
//
//	saldo corriente. El saldo vivo es siempre el autoritativo: si el replay
//	no cuadra, la línea termina en una entrada de conciliación forzada.
//
// @Tags         stock
// @Produce      json
// @Param        id  path  string  true  "ID de la fila de stock"
// @Success      200  {object}  dto.ActivityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/activity [get]
func (h *StockHandler) Activity(c *fiber.Ctx) error {
	out, err := h.activity.Timeline(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "fila de stock no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Quitar un material de una tienda
// @Description  Borrado duro de la fila de stock; arrastra el total de consumo y los
//
//	tres logs de eventos del par en una sola transacción.
//
// @Tags         stock
// @Produce      json
// @Param        id  path  string  true  "ID de la fila de stock"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [delete]
func (h *StockHandler) Remove(c *fiber.Ctx) error {
	if err := h.adjustment.Remove(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "fila de stock no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportXLSX godoc
// @Summary      Exportar el stock de una tienda a Excel
// @Tags         stock
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id  path  string  true  "ID de la tienda"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{id}/stock/export [get]
func (h *StockHandler) ExportXLSX(c *fiber.Ctx) error {
	storeName, rows, err := h.storeRows(c.Params("id"))
	if err != nil {
		return h.exportError(c, err)
	}
	data, err := export.StockXLSX(storeName, rows)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "stock-"+c.Params("id")+".xlsx"))
	return c.Send(data)
}

// RecountSheet godoc
// @Summary      Hoja de recuento físico en PDF
// @Description  Tabla de materiales con el saldo del sistema y una columna en blanco
//
//	para el conteo manual; el resultado entra como ajustes absolutos.
//
// @Tags         stock
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la tienda"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{id}/stock/recount-sheet [get]
func (h *StockHandler) RecountSheet(c *fiber.Ctx) error {
	storeName, rows, err := h.storeRows(c.Params("id"))
	if err != nil {
		return h.exportError(c, err)
	}
	data, err := export.RecountSheetPDF(storeName, rows)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "recuento-"+c.Params("id")+".pdf"))
	return c.Send(data)
}

func (h *StockHandler) storeRows(storeID string) (string, []dto.StockRowResponse, error) {
	list, err := h.listing.ListByStore(storeID)
	if err != nil {
		return "", nil, err
	}
	name := storeID
	if all, err := h.stores.List(); err == nil {
		for _, s := range all.Items {
			if s.ID == storeID {
				name = s.Name
				break
			}
		}
	}
	return name, list.Items, nil
}

func (h *StockHandler) exportError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tienda no encontrada"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
