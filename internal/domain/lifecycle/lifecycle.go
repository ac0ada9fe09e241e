// Package lifecycle es la máquina de estados de la nota fiscal:
//
//	alta ─────────────► EM_ANALISE
//	EM_ANALISE|PENDENTE ► RECEBIDA      (administrador)
//	cualquiera ────────► PENDENTE       (administrador, con motivo)
//	cualquiera ────────► EM_ANALISE     (corrección / re-envío)
//
// Las funciones son puras; la autorización por rol vive en internal/domain/access.
package lifecycle

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/portal-notas/internal/domain"
	"github.com/jhoicas/portal-notas/internal/domain/entity"
)

// MaxPendencyReasonLen es el largo máximo (en caracteres) del motivo de pendencia.
const MaxPendencyReasonLen = 40

// CanTransition indica si el paso from → to es aplicable. Entre los tres estados definidos
// todo paso es válido (RECEBIDA → RECEBIDA es un no-op); solo un estado desconocido lo impide.
func CanTransition(from, to string) bool {
	return entity.ValidStatus(from) && entity.ValidStatus(to)
}

// Submission son los datos de negocio que el remitente envía al publicar o corregir.
// Un estado enviado por el cliente se ignora siempre.
type Submission struct {
	SupplierID    string
	SupplierName  string
	SupplierCNPJ  string
	InvoiceNumber string
	EmissionDate  string
	OrderNumber   string
	Value         decimal.Decimal
	DocType       string
	Observations  string
	UserResponse  string
	FileName      string
	PdfURL        string
}

// Validate revisa campos obligatorios y formatos. requireFile se usa en el alta.
func (s Submission) Validate(requireFile bool) error {
	switch {
	case strings.TrimSpace(s.SupplierName) == "":
		return fmt.Errorf("%w: fornecedor es obligatorio", domain.ErrInvalidInput)
	case strings.TrimSpace(s.InvoiceNumber) == "":
		return fmt.Errorf("%w: número de nota es obligatorio", domain.ErrInvalidInput)
	case !entity.ValidDocType(s.DocType):
		return fmt.Errorf("%w: tipo de vínculo debe ser OSV o CONTRATO", domain.ErrInvalidInput)
	case s.Value.IsNegative():
		return fmt.Errorf("%w: el valor no puede ser negativo", domain.ErrInvalidInput)
	case requireFile && strings.TrimSpace(s.FileName) == "":
		return fmt.Errorf("%w: seleccione un archivo", domain.ErrInvalidInput)
	}
	if _, err := time.Parse("2006-01-02", s.EmissionDate); err != nil {
		return fmt.Errorf("%w: fecha de emisión debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
	}
	return nil
}

// NewInvoice arma la nota a partir del envío y la fotografía del remitente.
// El estado queda siempre en EM_ANALISE.
func NewInvoice(id string, s Submission, submitter entity.User, now time.Time) entity.Invoice {
	inv := entity.Invoice{
		ID:         id,
		UploadedBy: submitter.ID,
		UserName:   submitter.Name,
		UserEmail:  submitter.NotificationEmail,
		UserSector: submitter.Sector,
		CreatedAt:  now.UTC(),
		FileName:   s.FileName,
		PdfURL:     s.PdfURL,
	}
	applyBusinessFields(&inv, s)
	inv.Status = entity.StatusUnderReview
	return inv
}

// Resubmit aplica una corrección: conserva identidad, remitente, fecha de publicación y marca
// de exportación; vuelve a EM_ANALISE y limpia la pendencia anterior. El adjunto solo se
// reemplaza si el envío trae uno nuevo.
func Resubmit(inv entity.Invoice, s Submission) entity.Invoice {
	applyBusinessFields(&inv, s)
	if strings.TrimSpace(s.FileName) != "" {
		inv.FileName = s.FileName
		inv.PdfURL = s.PdfURL
	}
	inv.Status = entity.StatusUnderReview
	inv.AdminObservations = ""
	inv.ManagerNotifiedEmail = ""
	return inv
}

func applyBusinessFields(inv *entity.Invoice, s Submission) {
	inv.SupplierID = strings.TrimSpace(s.SupplierID)
	inv.SupplierName = strings.TrimSpace(s.SupplierName)
	inv.SupplierCNPJ = strings.TrimSpace(s.SupplierCNPJ)
	inv.InvoiceNumber = strings.TrimSpace(s.InvoiceNumber)
	inv.EmissionDate = s.EmissionDate
	inv.OrderNumber = strings.TrimSpace(s.OrderNumber)
	inv.Value = s.Value
	inv.DocType = s.DocType
	inv.Observations = s.Observations
	inv.UserResponse = s.UserResponse
}

// MarkReceived confirma la nota. Desde RECEBIDA no cambia nada.
func MarkReceived(inv *entity.Invoice) error {
	if !CanTransition(inv.Status, entity.StatusReceived) {
		return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, inv.Status, entity.StatusReceived)
	}
	inv.Status = entity.StatusReceived
	return nil
}

// Pendency es el pedido de corrección del administrador.
type Pendency struct {
	Reason        string
	NotifyManager bool
	ManagerEmail  string
}

// Validate exige motivo (1..40 caracteres) y, si se notifica al gestor, un email con "@".
func (p Pendency) Validate() error {
	reason := strings.TrimSpace(p.Reason)
	if reason == "" {
		return fmt.Errorf("%w: el motivo de la pendencia es obligatorio", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(reason) > MaxPendencyReasonLen {
		return fmt.Errorf("%w: el motivo admite hasta %d caracteres", domain.ErrInvalidInput, MaxPendencyReasonLen)
	}
	if p.NotifyManager && !strings.Contains(p.ManagerEmail, "@") {
		return fmt.Errorf("%w: email del gestor inválido", domain.ErrInvalidInput)
	}
	return nil
}

// ApplyPendency pasa la nota a PENDENTE con el motivo y, opcionalmente, el email del gestor.
func ApplyPendency(inv *entity.Invoice, p Pendency) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if !CanTransition(inv.Status, entity.StatusPending) {
		return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, inv.Status, entity.StatusPending)
	}
	inv.Status = entity.StatusPending
	inv.AdminObservations = strings.TrimSpace(p.Reason)
	inv.ManagerNotifiedEmail = ""
	if p.NotifyManager {
		inv.ManagerNotifiedEmail = strings.TrimSpace(p.ManagerEmail)
	}
	return nil
}

// MarkExported activa la marca de exportación. Devuelve true si cambió.
// La marca no se limpia nunca por sí sola.
func MarkExported(inv *entity.Invoice) bool {
	if inv.IsExported {
		return false
	}
	inv.IsExported = true
	return true
}
