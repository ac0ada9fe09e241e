package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-notas/internal/application/dto"
	"github.com/jhoicas/portal-notas/internal/application/supplier"
	"github.com/jhoicas/portal-notas/internal/domain"
)

// SupplierHandler catálogo de fornecedores.
type SupplierHandler struct {
	uc *supplier.SupplierUseCase
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *supplier.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// List godoc
// @Summary   Listar fornecedores
// @Tags      suppliers
// @Security  Bearer
// @Produce   json
// @Param     q       query     string  false  "nombre, razón social o CNPJ"
// @Param     active  query     bool    false  "solo activos"
// @Success   200     {array}   entity.Supplier
// @Router    /api/suppliers [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.uc.List(c.Context(), c.Query("q"), c.QueryBool("active", false)))
}

// Create alta de fornecedor.
// POST /api/suppliers
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), viewer(c), in)
	return reply(c, fiber.StatusCreated, out, err)
}

// Update edición de fornecedor.
// PUT /api/suppliers/:id
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), viewer(c), c.Params("id"), in)
	return reply(c, fiber.StatusOK, out, err)
}

// Lookup godoc
// @Summary      Consultar CNPJ en el registro público
// @Description  Si el registro no responde devuelve 200 con found=false para completar el formulario a mano.
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        cnpj  path      string  true  "CNPJ con o sin máscara"
// @Success      200   {object}  dto.SupplierLookupResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/suppliers/lookup/{cnpj} [get]
func (h *SupplierHandler) Lookup(c *fiber.Ctx) error {
	rec, err := h.uc.Lookup(c.Context(), viewer(c), c.Params("cnpj"))
	if err != nil {
		if errors.Is(err, domain.ErrExternalService) {
			return c.JSON(dto.SupplierLookupResponse{Message: "CNPJ não encontrado ou erro na consulta"})
		}
		return fail(c, err)
	}
	return c.JSON(dto.SupplierLookupResponse{Found: true, Record: rec})
}
