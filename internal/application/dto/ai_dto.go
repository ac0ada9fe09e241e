package dto

import "github.com/shopspring/decimal"

// ExtractedInvoice campos que el modelo leyó de la imagen. Vacío = no encontrado.
type ExtractedInvoice struct {
	SupplierName  string           `json:"supplierName"`
	InvoiceNumber string           `json:"invoiceNumber"`
	EmissionDate  string           `json:"emissionDate"`
	OrderNumber   string           `json:"orderNumber"`
	Value         *decimal.Decimal `json:"value,omitempty"`
}

// InvoiceDraft borrador del formulario; Value queda como texto tal cual lo edita el usuario.
type InvoiceDraft struct {
	SupplierName  string `json:"supplierName" form:"supplierName"`
	InvoiceNumber string `json:"invoiceNumber" form:"invoiceNumber"`
	EmissionDate  string `json:"emissionDate" form:"emissionDate"`
	OrderNumber   string `json:"orderNumber" form:"orderNumber"`
	Value         string `json:"value" form:"value"`
}

// ExtractionResponse resultado de la lectura asistida. Si el modelo falla, Draft vuelve sin
// cambios, Extracted es false y Message explica el motivo.
type ExtractionResponse struct {
	Draft     InvoiceDraft `json:"draft"`
	Extracted bool         `json:"extracted"`
	Message   string       `json:"message,omitempty"`
}
