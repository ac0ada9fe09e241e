package http

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-notas/internal/application/backup"
	"github.com/jhoicas/portal-notas/internal/application/dto"
	"github.com/jhoicas/portal-notas/internal/domain"
)

// SystemHandler respaldo, restauración y el acceso crudo al documento (ADMIN).
type SystemHandler struct {
	uc *backup.BackupUseCase
}

// NewSystemHandler construye el handler.
func NewSystemHandler(uc *backup.BackupUseCase) *SystemHandler {
	return &SystemHandler{uc: uc}
}

// Backup godoc
// @Summary   Exportar la base completa
// @Tags      system
// @Security  Bearer
// @Produce   json,text/csv
// @Param     format  query  string  false  "json (defecto) | csv"
// @Success   200
// @Failure   400  {object}  dto.ErrorResponse
// @Failure   403  {object}  dto.ErrorResponse
// @Router    /api/system/backup [get]
func (h *SystemHandler) Backup(c *fiber.Ctx) error {
	att, err := h.uc.Export(c.Context(), viewer(c), c.Query("format"))
	return sendFile(c, att, err)
}

// Restore godoc
// @Summary      Importar un respaldo
// @Description  Sin confirm=true solo devuelve la vista previa. Con confirmación reemplaza notas,
// @Description  usuarios y fornecedores. Un archivo inválido no aplica nada (422).
// @Tags         system
// @Security     Bearer
// @Accept       mpfd,json,text/csv
// @Produce      json
// @Param        confirm  query     bool    false  "aplicar"
// @Param        format   query     string  false  "json | csv (se deduce si falta)"
// @Success      200      {object}  dto.ImportPreview
// @Failure      422      {object}  dto.ErrorResponse
// @Router       /api/system/restore [post]
func (h *SystemHandler) Restore(c *fiber.Ctx) error {
	name, content, err := restoreBody(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "arquivo de backup requerido"})
	}
	out, err := h.uc.Import(c.Context(), viewer(c), name, content, c.Query("format"), c.QueryBool("confirm", false))
	return reply(c, fiber.StatusOK, out, err)
}

// Data devuelve el documento crudo {invoices, users, suppliers}.
// GET /api/data
func (h *SystemHandler) Data(c *fiber.Ctx) error {
	ds, err := h.uc.Dataset(c.Context(), viewer(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(ds)
}

// Save reemplaza el documento completo con el cuerpo recibido.
// POST /api/save
func (h *SystemHandler) Save(c *fiber.Ctx) error {
	out, err := h.uc.Import(c.Context(), viewer(c), "database.json", c.Body(), backup.FormatJSON, true)
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		return fail(c, err)
	}
	return reply(c, fiber.StatusOK, fiber.Map{"success": true, "applied": out.Applied}, err)
}

// restoreBody acepta multipart (campo file) o el cuerpo crudo.
func restoreBody(c *fiber.Ctx) (string, []byte, error) {
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return "", nil, err
		}
		defer f.Close()
		content, err := io.ReadAll(f)
		return fh.Filename, content, err
	}
	body := c.Body()
	if len(body) == 0 {
		return "", nil, io.ErrUnexpectedEOF
	}
	return "", append([]byte(nil), body...), nil
}
