package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/depo-terminal/internal/application/dto"
	appmovement "github.com/jhoicas/depo-terminal/internal/application/movement"
)

// DocumentHandler generación de documentos y su historial local (protegido).
type DocumentHandler struct {
	uc *appmovement.GenerateUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *appmovement.GenerateUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

func (h *DocumentHandler) form(c *fiber.Ctx) (dto.GenerateDocumentRequest, error) {
	var in dto.GenerateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return in, err
	}
	// La sucursal del token manda si el formulario no la trae.
	if in.BranchCode == "" {
		in.BranchCode = GetBranchCode(c)
	}
	return in, nil
}

// Preview godoc
// @Summary      Previsualiza el documento sin enviarlo
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateDocumentRequest  true  "Formulario de cabecera"
// @Success      200   {object}  entity.GenerateRequest
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/{docType}/documents/preview [post]
func (h *DocumentHandler) Preview(c *fiber.Ctx) error {
	in, err := h.form(c)
	if err != nil {
		return badBody(c)
	}
	req, err := h.uc.Preview(requestContext(c), GetUserID(c), c.Params("docType"), in.HeaderForm)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(req)
}

// Generate godoc
// @Summary      Genera el documento en el ERP
// @Description  Envía cabecera, líneas y series en una sola petición. Si el ERP acepta, la selección se vacía.
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateDocumentRequest  true  "Formulario de cabecera"
// @Success      201   {object}  entity.GenerateResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/{docType}/documents [post]
func (h *DocumentHandler) Generate(c *fiber.Ctx) error {
	in, err := h.form(c)
	if err != nil {
		return badBody(c)
	}
	res, err := h.uc.Generate(requestContext(c), GetUserID(c), c.Params("docType"), in.HeaderForm)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// History GET /api/documents/history?limit=&offset=
func (h *DocumentHandler) History(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	docs, err := h.uc.History(c.UserContext(), GetUserID(c), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.GeneratedDocumentListResponse{
		Items: make([]dto.GeneratedDocumentResponse, 0, len(docs)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, d := range docs {
		out.Items = append(out.Items, dto.ToGeneratedDocumentResponse(d))
	}
	return c.JSON(out)
}

// Correlation GET /api/documents/:headerId/correlation
func (h *DocumentHandler) Correlation(c *fiber.Ctx) error {
	headerID, err := int64Param(c, "headerId")
	if err != nil {
		return writeError(c, err)
	}
	doc, err := h.uc.Correlation(c.UserContext(), headerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToGeneratedDocumentResponse(doc))
}
