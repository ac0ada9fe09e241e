package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/portal-notas/internal/domain/entity"
)

// SubmitInvoiceRequest datos del formulario de nota. El archivo llega por multipart
// o se referencia con FileName/PdfURL de una subida previa a /api/files.
type SubmitInvoiceRequest struct {
	SupplierID    string          `json:"supplierId"`
	SupplierName  string          `json:"supplierName"` // solo si el fornecedor no está registrado
	SupplierCNPJ  string          `json:"supplierCnpj"`
	InvoiceNumber string          `json:"invoiceNumber"`
	EmissionDate  string          `json:"emissionDate"`
	OrderNumber   string          `json:"orderNumber"`
	Value         decimal.Decimal `json:"value"`
	DocType       string          `json:"docType"`
	Observations  string          `json:"observations"`
	UserResponse  string          `json:"userResponse"`
	FileName      string          `json:"fileName"`
	PdfURL        string          `json:"pdfUrl"`
}

// PendencyRequest marca una nota como PENDENTE.
type PendencyRequest struct {
	Reason        string `json:"reason"`
	NotifyManager bool   `json:"notifyManager"`
	ManagerEmail  string `json:"managerEmail"`
}

// MailDraft mensaje de pendencia listo para el cliente de correo.
type MailDraft struct {
	To        string `json:"to"`
	Cc        string `json:"cc,omitempty"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	MailtoURL string `json:"mailtoUrl"`
}

// PendencyResponse nota actualizada y, si se pidió, el aviso generado.
type PendencyResponse struct {
	Invoice      entity.Invoice `json:"invoice"`
	Notification *MailDraft     `json:"notification,omitempty"`
}

// InvoiceListResponse lista filtrada con su total.
type InvoiceListResponse struct {
	Items      []entity.Invoice `json:"items"`
	Count      int              `json:"count"`
	TotalValue decimal.Decimal  `json:"totalValue"`
}

// Attachment contenido de un adjunto listo para descargar.
type Attachment struct {
	FileName    string
	ContentType string
	Content     []byte
}
