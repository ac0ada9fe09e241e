package ports

import (
	"context"

	"github.com/jhoicas/portal-notas/internal/application/dto"
	"github.com/jhoicas/portal-notas/internal/domain/entity"
)

// LLMService define el puerto de salida para los servicios de inteligencia artificial.
// Cualquier adaptador (Gemini, Anthropic, mock) debe implementar esta interfaz.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type LLMService interface {
	// SummarizeInvoices devuelve un resumen ejecutivo corto en portugués del conjunto de notas.
	SummarizeInvoices(ctx context.Context, invoices []entity.Invoice) (string, error)

	// ExtractInvoiceFields lee una imagen de nota fiscal y devuelve los campos reconocidos.
	ExtractInvoiceFields(ctx context.Context, mimeType string, image []byte) (*dto.ExtractedInvoice, error)
}
