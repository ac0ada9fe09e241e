package http

import (
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/portal-notas/internal/application/dto"
	"github.com/jhoicas/portal-notas/internal/application/invoice"
	"github.com/jhoicas/portal-notas/internal/domain"
	"github.com/jhoicas/portal-notas/internal/domain/filter"
)

// InvoiceHandler maneja las notas fiscales (protegido).
type InvoiceHandler struct {
	uc *invoice.InvoiceUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *invoice.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// List godoc
// @Summary      Listar notas visibles
// @Description  Aplica el alcance del rol y los filtros; ordena por fecha de publicación descendente.
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        supplierName   query  string  false  "contiene, sin distinguir mayúsculas"
// @Param        invoiceNumber  query  string  false  "contiene"
// @Param        userName       query  string  false  "contiene"
// @Param        status         query  string  false  "EM_ANALISE | RECEBIDA | PENDENTE"
// @Param        sector         query  string  false  "solo ADMIN"
// @Param        exported       query  string  false  "all | yes | no"
// @Param        dateFrom       query  string  false  "emisión desde (YYYY-MM-DD)"
// @Param        dateTo         query  string  false  "emisión hasta"
// @Param        postDateFrom   query  string  false  "publicación desde"
// @Param        postDateTo     query  string  false  "publicación hasta"
// @Success      200  {object}  dto.InvoiceListResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	crit, err := criteria(c)
	if err != nil {
		return fail(c, err)
	}
	items := h.uc.List(c.Context(), viewer(c), crit)
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].Value)
	}
	return c.JSON(dto.InvoiceListResponse{Items: items, Count: len(items), TotalValue: total})
}

// Get obtiene una nota visible.
// GET /api/invoices/:id
func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	inv, err := h.uc.Get(c.Context(), viewer(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(inv)
}

// Create godoc
// @Summary      Publicar nota fiscal
// @Description  multipart/form-data con el campo file (PDF) y los datos de la nota, o JSON que
// @Description  referencia un archivo subido antes a /api/files (fileName/pdfUrl).
// @Tags         invoices
// @Security     Bearer
// @Accept       mpfd,json
// @Produce      json
// @Success      201  {object}  entity.Invoice
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	in, file, done, err := submission(c)
	if err != nil {
		return fail(c, err)
	}
	defer done()
	out, err := h.uc.Submit(c.Context(), viewer(c), in, file)
	return reply(c, fiber.StatusCreated, out, err)
}

// Update corrección de una nota: vuelve a EM_ANALISE.
// PUT /api/invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	in, file, done, err := submission(c)
	if err != nil {
		return fail(c, err)
	}
	defer done()
	out, err := h.uc.Resubmit(c.Context(), viewer(c), c.Params("id"), in, file)
	return reply(c, fiber.StatusOK, out, err)
}

// Delete elimina la nota (ADMIN).
// DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	err := h.uc.Delete(c.Context(), viewer(c), c.Params("id"))
	return reply(c, fiber.StatusNoContent, nil, err)
}

// Receive confirma la nota (ADMIN).
// POST /api/invoices/:id/receive
func (h *InvoiceHandler) Receive(c *fiber.Ctx) error {
	out, err := h.uc.Receive(c.Context(), viewer(c), c.Params("id"))
	return reply(c, fiber.StatusOK, out, err)
}

// Pendency godoc
// @Summary      Marcar nota como PENDENTE
// @Description  Motivo de 1 a 40 caracteres. Devuelve la nota y el aviso (mailto) para el remitente.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "id de la nota"
// @Param        body  body      dto.PendencyRequest  true  "motivo y aviso al gestor"
// @Success      200   {object}  dto.PendencyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pendency [post]
func (h *InvoiceHandler) Pendency(c *fiber.Ctx) error {
	var in dto.PendencyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ApplyPendency(c.Context(), viewer(c), c.Params("id"), in)
	return reply(c, fiber.StatusOK, out, err)
}

// Attachment descarga el PDF de la nota y la marca como exportada.
// GET /api/invoices/:id/attachment
func (h *InvoiceHandler) Attachment(c *fiber.Ctx) error {
	att, err := h.uc.DownloadAttachment(c.Context(), viewer(c), c.Params("id"))
	return sendFile(c, att, err)
}

// Attachments descarga en ZIP los adjuntos de la lista filtrada.
// GET /api/invoices/attachments.zip
func (h *InvoiceHandler) Attachments(c *fiber.Ctx) error {
	crit, err := criteria(c)
	if err != nil {
		return fail(c, err)
	}
	att, n, err := h.uc.BulkAttachments(c.Context(), viewer(c), crit)
	if att != nil {
		c.Set("X-Attachment-Count", fmt.Sprint(n))
	}
	return sendFile(c, att, err)
}

// Report relatorio CSV de la lista filtrada.
// GET /api/invoices/report.csv
func (h *InvoiceHandler) Report(c *fiber.Ctx) error {
	crit, err := criteria(c)
	if err != nil {
		return fail(c, err)
	}
	data, err := h.uc.ReportCSV(c.Context(), viewer(c), crit)
	return sendFile(c, &dto.Attachment{
		FileName:    "relatorio_notas_" + time.Now().Format("2006-01-02") + ".csv",
		ContentType: "text/csv; charset=utf-8",
		Content:     data,
	}, err)
}

// UploadFile guarda un adjunto suelto (primer paso del envío en dos pasos).
// POST /api/files
func (h *InvoiceHandler) UploadFile(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Nenhum arquivo enviado"})
	}
	up, closeFn, err := openUpload(fh)
	if err != nil {
		return fail(c, err)
	}
	defer closeFn()
	out, err := h.uc.UploadFile(c.Context(), *up)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func criteria(c *fiber.Ctx) (filter.Criteria, error) {
	var crit filter.Criteria
	if err := c.QueryParser(&crit); err != nil {
		return crit, fmt.Errorf("%w: filtros inválidos", domain.ErrInvalidInput)
	}
	return crit, nil
}

// submission lee el formulario de nota en multipart o JSON. done libera el archivo recibido.
// En multipart el archivo es opcional: la corrección puede conservar el adjunto anterior.
func submission(c *fiber.Ctx) (dto.SubmitInvoiceRequest, *invoice.Upload, func(), error) {
	var in dto.SubmitInvoiceRequest
	noop := func() {}
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if err := c.BodyParser(&in); err != nil {
			return in, nil, noop, fmt.Errorf("%w: cuerpo inválido", domain.ErrInvalidInput)
		}
		return in, nil, noop, nil
	}

	in = dto.SubmitInvoiceRequest{
		SupplierID:    c.FormValue("supplierId"),
		SupplierName:  c.FormValue("supplierName"),
		SupplierCNPJ:  c.FormValue("supplierCnpj"),
		InvoiceNumber: c.FormValue("invoiceNumber"),
		EmissionDate:  c.FormValue("emissionDate"),
		OrderNumber:   c.FormValue("orderNumber"),
		DocType:       c.FormValue("docType"),
		Observations:  c.FormValue("observations"),
		UserResponse:  c.FormValue("userResponse"),
		FileName:      c.FormValue("fileName"),
		PdfURL:        c.FormValue("pdfUrl"),
	}
	if raw := strings.TrimSpace(c.FormValue("value")); raw != "" {
		v, err := parseMoney(raw)
		if err != nil {
			return in, nil, noop, err
		}
		in.Value = v
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return in, nil, noop, nil
	}
	up, done, err := openUpload(fh)
	if err != nil {
		return in, nil, noop, err
	}
	return in, up, done, nil
}

func openUpload(fh *multipart.FileHeader) (*invoice.Upload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: no se pudo leer el archivo", domain.ErrInvalidInput)
	}
	return &invoice.Upload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Reader:      f,
	}, func() { _ = f.Close() }, nil
}

// parseMoney acepta "1234.56" y "1.234,56".
func parseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: valor inválido %q", domain.ErrInvalidInput, s)
	}
	return d, nil
}
