package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-notas/internal/application/dto"
	"github.com/jhoicas/portal-notas/internal/application/user"
	"github.com/jhoicas/portal-notas/internal/domain/sector"
)

// UserHandler administración de usuarios (solo ADMIN).
type UserHandler struct {
	uc *user.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *user.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary   Listar usuarios
// @Tags      users
// @Security  Bearer
// @Produce   json
// @Success   200  {array}   dto.UserResponse
// @Failure   403  {object}  dto.ErrorResponse
// @Router    /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), viewer(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary   Crear usuario
// @Tags      users
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     body  body      dto.CreateUserRequest  true  "usuario"
// @Success   201   {object}  dto.UserResponse
// @Failure   400   {object}  dto.ErrorResponse
// @Failure   409   {object}  dto.ErrorResponse
// @Router    /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), viewer(c), in)
	return reply(c, fiber.StatusCreated, out, err)
}

// Update edita un usuario; password vacío conserva el actual.
// PUT /api/users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), viewer(c), c.Params("id"), in)
	return reply(c, fiber.StatusOK, out, err)
}

// Sectors devuelve la lista fija de setores.
// GET /api/sectors
func Sectors(c *fiber.Ctx) error {
	return c.JSON(sector.All)
}
