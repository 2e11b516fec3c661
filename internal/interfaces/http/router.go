// Package http expone la API REST del libro de stock sobre Fiber.
package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tu-usuario/imprenta-pos/internal/application/catalogue"
	"github.com/tu-usuario/imprenta-pos/internal/application/stock"
	"github.com/tu-usuario/imprenta-pos/internal/application/stores"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogueUC    *catalogue.UseCase
	StoresUC       *stores.UseCase
	ListingUC      *stock.ListingUseCase
	AdjustmentUC   *stock.AdjustmentUseCase
	TransferUC     *stock.TransferUseCase
	ActivityUC     *stock.ActivityUseCase
	UsageQueue     *stock.UsageQueue
	MetricsEnabled bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.MetricsEnabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := app.Group("/api")

	// Catálogo de materiales
	materials := api.Group("/materials")
	materialHandler := NewMaterialHandler(deps.CatalogueUC)
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Delete("/:id", materialHandler.Delete)

	// Tiendas y estado operativo
	storesGroup := api.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoresUC)
	storesGroup.Post("/", storeHandler.Create)
	storesGroup.Get("/", storeHandler.List)
	storesGroup.Get("/operational", storeHandler.GetOperational)
	storesGroup.Put("/:id/operational", storeHandler.SetOperational)
	storesGroup.Delete("/:id", storeHandler.Delete)

	// Stock por tienda y por fila
	stockHandler := NewStockHandler(deps.ListingUC, deps.AdjustmentUC, deps.TransferUC, deps.ActivityUC, deps.StoresUC)
	storesGroup.Get("/:id/stock", stockHandler.ListByStore)
	storesGroup.Post("/:id/stock", stockHandler.AddMaterial)
	storesGroup.Get("/:id/stock/export", stockHandler.ExportXLSX)
	storesGroup.Get("/:id/stock/recount-sheet", stockHandler.RecountSheet)

	stockGroup := api.Group("/stock")
	stockGroup.Post("/:id/adjust", stockHandler.Adjust)
	stockGroup.Post("/:id/transfer", stockHandler.Transfer)
	stockGroup.Get("/:id/activity", stockHandler.Activity)
	stockGroup.Delete("/:id", stockHandler.Remove)

	// Aviso post-venta del subsistema de pedidos
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.UsageQueue)
	orders.Post("/confirmed", orderHandler.Confirmed)
}
