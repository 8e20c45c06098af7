package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/depo-terminal/internal/application/dto"
	appmovement "github.com/jhoicas/depo-terminal/internal/application/movement"
	"github.com/jhoicas/depo-terminal/internal/domain"
	"github.com/jhoicas/depo-terminal/internal/domain/movement"
)

// CollectionHandler recolección en planta de los documentos asignados (protegido).
type CollectionHandler struct {
	uc       *appmovement.CollectionUseCase
	pickList *appmovement.PickListUseCase
}

// NewCollectionHandler construye el handler. pickList puede ser nil (sin PDF).
func NewCollectionHandler(uc *appmovement.CollectionUseCase, pickList *appmovement.PickListUseCase) *CollectionHandler {
	return &CollectionHandler{uc: uc, pickList: pickList}
}

func int64Param(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Field: name, Reason: "debe ser un entero positivo"}
	}
	return id, nil
}

// Assigned GET /api/:docType/assigned
func (h *CollectionHandler) Assigned(c *fiber.Ctx) error {
	docs, err := h.uc.AssignedDocuments(requestContext(c), c.Params("docType"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(docs)
}

// Progress godoc
// @Summary      Progreso de recolección del documento
// @Tags         collection
// @Security     Bearer
// @Produce      json
// @Param        docType   path  string  true  "Tipo de documento"
// @Param        headerId  path  int     true  "Id de cabecera en el ERP"
// @Success      200  {object}  movement.Progress
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/{docType}/assigned/{headerId}/progress [get]
func (h *CollectionHandler) Progress(c *fiber.Ctx) error {
	headerID, err := int64Param(c, "headerId")
	if err != nil {
		return writeError(c, err)
	}
	p, err := h.uc.Progress(requestContext(c), c.Params("docType"), headerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(p)
}

// Scan POST /api/:docType/assigned/:headerId/scan
// Identifica el stock leído sin registrar cantidad.
func (h *CollectionHandler) Scan(c *fiber.Ctx) error {
	headerID, err := int64Param(c, "headerId")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.Scan(requestContext(c), GetUserID(c), c.Params("docType"), headerID, in.Barcode)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// Collect godoc
// @Summary      Registra un escaneo con cantidad
// @Description  Crea una ruta contra la primera línea asignada del stock leído. El sobrante se señala, no se bloquea.
// @Description  Si la ruta se crea pero el ledger no se puede volver a pedir, responde 201 con stale=true.
// @Tags         collection
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CollectRequest  true  "Código, cantidad y lote"
// @Success      201   {object}  movement.CollectResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/{docType}/assigned/{headerId}/collect [post]
func (h *CollectionHandler) Collect(c *fiber.Ctx) error {
	headerID, err := int64Param(c, "headerId")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CollectRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	// Cantidad vacía o no numérica llega como cero y el caso de uso la rechaza.
	qty, _ := movement.ParseQuantity(string(in.Quantity))
	res, err := h.uc.Collect(requestContext(c), appmovement.CollectInput{
		OperatorID: GetUserID(c),
		DocType:    c.Params("docType"),
		HeaderID:   headerID,
		Barcode:    in.Barcode,
		Quantity:   qty,
		Lot:        in.LotDetails,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// DeleteRoute DELETE /api/:docType/assigned/:headerId/routes/:routeId
func (h *CollectionHandler) DeleteRoute(c *fiber.Ctx) error {
	headerID, err := int64Param(c, "headerId")
	if err != nil {
		return writeError(c, err)
	}
	routeID, err := int64Param(c, "routeId")
	if err != nil {
		return writeError(c, err)
	}
	p, err := h.uc.DeleteRoute(requestContext(c), GetUserID(c), c.Params("docType"), headerID, routeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(p)
}

// Complete POST /api/:docType/assigned/:headerId/complete
// Cierre explícito; no exige que todo esté recogido.
func (h *CollectionHandler) Complete(c *fiber.Ctx) error {
	headerID, err := int64Param(c, "headerId")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Complete(requestContext(c), GetUserID(c), c.Params("docType"), headerID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "documento completado"})
}

// PickList GET /api/:docType/assigned/:headerId/pick-list.pdf
func (h *CollectionHandler) PickList(c *fiber.Ctx) error {
	if h.pickList == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_AVAILABLE", Message: "hoja de recolección no configurada"})
	}
	headerID, err := int64Param(c, "headerId")
	if err != nil {
		return writeError(c, err)
	}
	pdf, err := h.pickList.Generate(requestContext(c), c.Params("docType"), headerID)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, "inline; filename=pick-list-"+strconv.FormatInt(headerID, 10)+".pdf")
	return c.Send(pdf)
}

// ScanEvents GET /api/:docType/assigned/:headerId/scan-events (supervisor)
func (h *CollectionHandler) ScanEvents(c *fiber.Ctx) error {
	headerID, err := int64Param(c, "headerId")
	if err != nil {
		return writeError(c, err)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	events, err := h.uc.ScanEvents(c.UserContext(), headerID, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"items": dto.ToScanEventResponses(events),
		"page":  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}
