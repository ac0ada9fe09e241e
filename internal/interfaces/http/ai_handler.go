package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-notas/internal/application/dto"
	"github.com/jhoicas/portal-notas/internal/application/extraction"
)

// AIHandler lectura asistida de notas fiscales.
type AIHandler struct {
	uc *extraction.ExtractionUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *extraction.ExtractionUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// Extract godoc
// @Summary      Leer datos de la imagen de una nota
// @Description  Recibe la imagen (campo image) y el borrador actual del formulario. Los valores
// @Description  leídos reemplazan al borrador; si el modelo falla el borrador vuelve sin cambios.
// @Tags         ai
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        image          formData  file    true   "imagen de la nota"
// @Param        supplierName   formData  string  false  "borrador"
// @Param        invoiceNumber  formData  string  false  "borrador"
// @Param        emissionDate   formData  string  false  "borrador"
// @Param        orderNumber    formData  string  false  "borrador"
// @Param        value          formData  string  false  "borrador"
// @Success      200  {object}  dto.ExtractionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ai/extract [post]
func (h *AIHandler) Extract(c *fiber.Ctx) error {
	var draft dto.InvoiceDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "imagen requerida (campo image)"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo leer la imagen"})
	}
	defer f.Close()

	out, err := h.uc.Extract(c.Context(), fh.Header.Get(fiber.HeaderContentType), f, draft)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
