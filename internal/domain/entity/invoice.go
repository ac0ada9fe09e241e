package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// value se guarda como número JSON, igual que en los documentos existentes.
func init() { decimal.MarshalJSONWithoutQuotes = true }

// Estados del ciclo de vida de una nota fiscal. Los valores son los del documento persistido.
const (
	StatusUnderReview = "EM_ANALISE" // inicial; también tras cada corrección
	StatusReceived    = "RECEBIDA"   // confirmada por el administrador
	StatusPending     = "PENDENTE"   // el administrador pidió una corrección
)

// Tipos de vínculo de la nota.
const (
	DocTypeOrder    = "OSV"      // pedido / orden de servicio
	DocTypeContract = "CONTRATO" // contrato / medición
)

// Invoice es la nota fiscal de proveedor publicada por un colaborador.
// Los datos del remitente (UploadedBy, UserName, UserEmail, UserSector) son una
// fotografía del momento de la publicación y no siguen cambios posteriores del usuario.
type Invoice struct {
	ID                   string          `json:"id"`
	SupplierID           string          `json:"supplierId,omitempty"`
	SupplierName         string          `json:"supplierName"`
	SupplierCNPJ         string          `json:"supplierCnpj,omitempty"`
	InvoiceNumber        string          `json:"invoiceNumber"`
	EmissionDate         string          `json:"emissionDate"` // YYYY-MM-DD
	OrderNumber          string          `json:"orderNumber"`
	Value                decimal.Decimal `json:"value"`
	PdfURL               string          `json:"pdfUrl"`
	FileName             string          `json:"fileName"`
	UploadedBy           string          `json:"uploadedBy"`
	UserName             string          `json:"userName"`
	UserEmail            string          `json:"userEmail,omitempty"`
	UserSector           string          `json:"userSector"`
	CreatedAt            time.Time       `json:"createdAt"`
	Observations         string          `json:"observations,omitempty"`
	Status               string          `json:"status"`
	AdminObservations    string          `json:"adminObservations,omitempty"`
	ManagerNotifiedEmail string          `json:"managerNotifiedEmail,omitempty"`
	UserResponse         string          `json:"userResponse,omitempty"`
	DocType              string          `json:"docType"`
	IsExported           bool            `json:"isExported,omitempty"`
}

// PostDate devuelve la fecha de publicación (YYYY-MM-DD, UTC) usada en filtros y reportes.
func (i *Invoice) PostDate() string {
	return i.CreatedAt.UTC().Format("2006-01-02")
}

// ValidStatus indica si status es uno de los tres estados definidos.
func ValidStatus(status string) bool {
	switch status {
	case StatusUnderReview, StatusReceived, StatusPending:
		return true
	}
	return false
}

// ValidDocType indica si docType es OSV o CONTRATO.
func ValidDocType(docType string) bool {
	return docType == DocTypeOrder || docType == DocTypeContract
}
