package http

import (
	"bytes"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-notas/internal/application/dashboard"
	"github.com/jhoicas/portal-notas/internal/application/dto"
)

// DashboardHandler maneja los endpoints del panel financiero.
type DashboardHandler struct {
	uc *dashboard.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *dashboard.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Panel de inversión
// @Description  Total, top 10 fornecedores, top 5 colaboradores y conteo por estado sobre las notas
// @Description  visibles publicadas en el período. Con ai=true agrega el resumen automático.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        start  query     string  false  "YYYY-MM-DD"
// @Param        end    query     string  false  "YYYY-MM-DD"
// @Param        ai     query     bool    false  "incluir resumen IA"
// @Success      200    {object}  dto.DashboardResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context(), viewer(c), c.Query("start"), c.Query("end"), c.QueryBool("ai", false))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// PDF descarga el panel en PDF (incluye el resumen IA).
// GET /api/dashboard/report.pdf
func (h *DashboardHandler) PDF(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.uc.WritePDF(c.Context(), viewer(c), c.Query("start"), c.Query("end"), &buf); err != nil {
		return fail(c, err)
	}
	return sendFile(c, &dto.Attachment{
		FileName:    "dashboard_" + time.Now().Format("2006-01-02") + ".pdf",
		ContentType: "application/pdf",
		Content:     buf.Bytes(),
	}, nil)
}
