package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/depo-terminal/internal/application/dto"
	appmovement "github.com/jhoicas/depo-terminal/internal/application/movement"
	"github.com/jhoicas/depo-terminal/internal/domain/entity"
)

// SelectionHandler selección en curso del operario por tipo de documento (protegido).
type SelectionHandler struct {
	uc *appmovement.SelectionUseCase
}

// NewSelectionHandler construye el handler.
func NewSelectionHandler(uc *appmovement.SelectionUseCase) *SelectionHandler {
	return &SelectionHandler{uc: uc}
}

// List GET /api/:docType/selection
func (h *SelectionHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(GetUserID(c), c.Params("docType"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewSelectionResponse(items, nil))
}

// Toggle godoc
// @Summary      Alterna un candidato en la selección
// @Description  Si ya estaba, lo quita; si no, lo añade con el restante por importar (modo orden) o 0.
// @Tags         selection
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  entity.Candidate  true  "Candidato"
// @Success      200   {object}  dto.SelectionResponse
// @Router       /api/{docType}/selection/toggle [post]
func (h *SelectionHandler) Toggle(c *fiber.Ctx) error {
	var in entity.Candidate
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	selected, items, err := h.uc.Toggle(GetUserID(c), c.Params("docType"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewSelectionResponse(items, &selected))
}

// SetQuantity godoc
// @Summary      Fija la cantidad de un candidato
// @Description  Cantidad > 0 inserta o actualiza; 0, vacío o no numérico lo quita.
// @Tags         selection
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetQuantityRequest  true  "Candidato y cantidad"
// @Success      200   {object}  dto.SelectionResponse
// @Router       /api/{docType}/selection/quantity [put]
func (h *SelectionHandler) SetQuantity(c *fiber.Ctx) error {
	var in dto.SetQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	selected, items, err := h.uc.SetQuantity(GetUserID(c), c.Params("docType"), in.Candidate, string(in.Quantity))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewSelectionResponse(items, &selected))
}

// UpdateDetail PATCH /api/:docType/selection/:id
func (h *SelectionHandler) UpdateDetail(c *fiber.Ctx) error {
	var in dto.UpdateDetailRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	items, err := h.uc.UpdateDetail(GetUserID(c), c.Params("docType"), c.Params("id"), in.Field, in.Value)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewSelectionResponse(items, nil))
}

// Remove DELETE /api/:docType/selection/:id
func (h *SelectionHandler) Remove(c *fiber.Ctx) error {
	items, err := h.uc.Remove(GetUserID(c), c.Params("docType"), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewSelectionResponse(items, nil))
}

// Clear DELETE /api/:docType/selection
func (h *SelectionHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.Clear(GetUserID(c), c.Params("docType")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
