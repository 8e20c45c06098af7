package http

import (
	"github.com/gofiber/fiber/v2"

	appmovement "github.com/jhoicas/depo-terminal/internal/application/movement"
)

// Roles del terminal.
const (
	RoleOperator   = "operario"
	RoleSupervisor = "supervisor"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC    *appmovement.CatalogUseCase
	SelectionUC  *appmovement.SelectionUseCase
	GenerateUC   *appmovement.GenerateUseCase
	CollectionUC *appmovement.CollectionUseCase
	PickListUC   *appmovement.PickListUseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Todo va protegido con el token del operario,
// que además se reenvía al ERP.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Rutas fijas antes de las parametrizadas por :docType.
	catalog := NewCatalogHandler(deps.CatalogUC)
	api.Get("/stocks/search", catalog.StockCandidates)

	documents := NewDocumentHandler(deps.GenerateUC)
	api.Get("/documents/history", documents.History)
	api.Get("/documents/:headerId/correlation", documents.Correlation)

	doc := api.Group("/:docType")

	// Catálogo de órdenes
	doc.Get("/orders/headers", catalog.OrderHeaders)
	doc.Get("/orders/candidates", catalog.OrderCandidates)

	// Selección del operario
	selection := NewSelectionHandler(deps.SelectionUC)
	sel := doc.Group("/selection")
	sel.Get("/", selection.List)
	sel.Delete("/", selection.Clear)
	sel.Post("/toggle", selection.Toggle)
	sel.Put("/quantity", selection.SetQuantity)
	sel.Patch("/:id", selection.UpdateDetail)
	sel.Delete("/:id", selection.Remove)

	// Generación
	doc.Post("/documents/preview", documents.Preview)
	doc.Post("/documents", documents.Generate)

	// Recolección
	collection := NewCollectionHandler(deps.CollectionUC, deps.PickListUC)
	doc.Get("/assigned", collection.Assigned)
	assigned := doc.Group("/assigned/:headerId")
	assigned.Get("/progress", collection.Progress)
	assigned.Post("/scan", collection.Scan)
	assigned.Post("/collect", collection.Collect)
	assigned.Delete("/routes/:routeId", collection.DeleteRoute)
	assigned.Post("/complete", collection.Complete)
	assigned.Get("/pick-list.pdf", collection.PickList)
	assigned.Get("/scan-events", RequireRole(RoleSupervisor), collection.ScanEvents)
}
