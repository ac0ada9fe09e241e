package ports

import (
	"context"
	"io"

	"github.com/jhoicas/portal-notas/internal/application/dto"
	"github.com/jhoicas/portal-notas/internal/domain/report"
)

// MailComposer entrega el aviso de pendencia al canal de correo.
// Devuelve el borrador efectivamente entregado (p.ej. con la URL mailto).
type MailComposer interface {
	Compose(ctx context.Context, draft dto.MailDraft) (*dto.MailDraft, error)
}

// SupplierRegistry consulta datos públicos de un CNPJ.
type SupplierRegistry interface {
	LookupCNPJ(ctx context.Context, cnpj string) (*dto.RegistryRecord, error)
}

// ReportPDFGenerator genera la versión PDF del dashboard.
type ReportPDFGenerator interface {
	GenerateDashboard(w io.Writer, period string, summary report.Summary, aiSummary string) error
}

// ArchiveBuilder empaqueta adjuntos en un único archivo.
type ArchiveBuilder interface {
	Build(entries []ArchiveEntry) ([]byte, error)
}

// ArchiveEntry un archivo dentro del paquete.
type ArchiveEntry struct {
	Name    string
	Content []byte
}
