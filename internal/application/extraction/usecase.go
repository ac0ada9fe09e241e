// Package extraction contiene la lectura asistida por IA de una imagen de nota fiscal
// para prellenar el formulario de publicación.
package extraction

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/portal-notas/internal/application/dto"
	"github.com/jhoicas/portal-notas/internal/application/ports"
	"github.com/jhoicas/portal-notas/internal/domain"
)

// MsgExtractionFailed se devuelve cuando el modelo no pudo leer la imagen.
const MsgExtractionFailed = "Não foi possível ler os dados da nota. Preencha os campos manualmente."

const (
	defaultTimeout  = 30 * time.Second
	defaultMaxBytes = 10 << 20
)

// ExtractionUseCase orquesta la lectura de la imagen con el LLM.
// Aplica un timeout a cada llamada para que la latencia externa no bloquee el servidor.
type ExtractionUseCase struct {
	llm      ports.LLMService
	timeout  time.Duration
	maxBytes int64
}

// NewExtractionUseCase construye el caso de uso inyectando el puerto LLMService.
func NewExtractionUseCase(llm ports.LLMService, timeout time.Duration) *ExtractionUseCase {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &ExtractionUseCase{llm: llm, timeout: timeout, maxBytes: defaultMaxBytes}
}

// Extract lee la imagen y combina lo reconocido con el borrador actual.
// Solo acepta imágenes; un fallo del modelo deja el borrador intacto y no es un error.
func (uc *ExtractionUseCase) Extract(ctx context.Context, mimeType string, r io.Reader, draft dto.InvoiceDraft) (*dto.ExtractionResponse, error) {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("%w: la lectura automática solo acepta imágenes (recibido %q)", domain.ErrInvalidInput, mimeType)
	}
	image, err := io.ReadAll(io.LimitReader(r, uc.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("extracción: leer imagen: %w", err)
	}
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: imagen vacía", domain.ErrInvalidInput)
	}
	if int64(len(image)) > uc.maxBytes {
		return nil, fmt.Errorf("%w: imagen supera %d bytes", domain.ErrInvalidInput, uc.maxBytes)
	}

	resp := &dto.ExtractionResponse{Draft: draft}
	if uc.llm == nil {
		resp.Message = MsgExtractionFailed
		return resp, nil
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	got, err := uc.llm.ExtractInvoiceFields(ctx, mimeType, image)
	if err != nil || got == nil {
		log.Warn().Err(err).Str("mime", mimeType).Int("bytes", len(image)).Msg("lectura IA no disponible")
		resp.Message = MsgExtractionFailed
		return resp, nil
	}
	resp.Draft = Merge(draft, got)
	resp.Extracted = true
	return resp, nil
}

// Merge aplica los valores reconocidos no vacíos; los vacíos conservan el borrador.
func Merge(draft dto.InvoiceDraft, got *dto.ExtractedInvoice) dto.InvoiceDraft {
	if got == nil {
		return draft
	}
	pick := func(extracted, current string) string {
		if v := strings.TrimSpace(extracted); v != "" {
			return v
		}
		return current
	}
	draft.SupplierName = pick(got.SupplierName, draft.SupplierName)
	draft.InvoiceNumber = pick(got.InvoiceNumber, draft.InvoiceNumber)
	draft.EmissionDate = pick(got.EmissionDate, draft.EmissionDate)
	draft.OrderNumber = pick(got.OrderNumber, draft.OrderNumber)
	if got.Value != nil {
		draft.Value = got.Value.String()
	}
	return draft
}
