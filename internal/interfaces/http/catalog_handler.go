package http

import (
	"github.com/gofiber/fiber/v2"

	appmovement "github.com/jhoicas/depo-terminal/internal/application/movement"
)

// CatalogHandler órdenes y stock libre sobre los que se arma la selección (protegido).
type CatalogHandler struct {
	uc *appmovement.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *appmovement.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// OrderHeaders godoc
// @Summary      Órdenes abiertas de una contraparte
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        docType       path   string  true  "transfer | shipment | subcontracting-issue | ..."
// @Param        customerCode  query  string  true  "Código de la contraparte"
// @Success      200  {array}   entity.OrderHeader
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/{docType}/orders/headers [get]
func (h *CatalogHandler) OrderHeaders(c *fiber.Ctx) error {
	headers, err := h.uc.OrderHeaders(requestContext(c), c.Params("docType"), c.Query("customerCode"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(headers)
}

// OrderCandidates godoc
// @Summary      Líneas seleccionables (modo orden)
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        docType       path   string  true   "Tipo de documento"
// @Param        customerCode  query  string  true   "Código de la contraparte"
// @Param        orderNo       query  string  false  "Filtra por número de orden"
// @Success      200  {array}   entity.Candidate
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/{docType}/orders/candidates [get]
func (h *CatalogHandler) OrderCandidates(c *fiber.Ctx) error {
	out, err := h.uc.OrderCandidates(requestContext(c), c.Params("docType"), c.Query("customerCode"), c.Query("orderNo"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// StockCandidates godoc
// @Summary      Búsqueda de stock libre (modo sin orden)
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  true  "Texto a buscar"
// @Success      200  {array}   entity.Candidate
// @Router       /api/stocks/search [get]
func (h *CatalogHandler) StockCandidates(c *fiber.Ctx) error {
	out, err := h.uc.StockCandidates(requestContext(c), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
