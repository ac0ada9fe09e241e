package extraction_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-notas/internal/application/dto"
	"github.com/jhoicas/portal-notas/internal/application/extraction"
	"github.com/jhoicas/portal-notas/internal/domain"
	"github.com/jhoicas/portal-notas/internal/domain/entity"
)

type fakeLLM struct {
	out      *dto.ExtractedInvoice
	err      error
	mime     string
	image    []byte
	deadline bool
}

func (f *fakeLLM) SummarizeInvoices(context.Context, []entity.Invoice) (string, error) {
	return "", nil
}

func (f *fakeLLM) ExtractInvoiceFields(ctx context.Context, mimeType string, image []byte) (*dto.ExtractedInvoice, error) {
	f.mime, f.image = mimeType, image
	_, f.deadline = ctx.Deadline()
	return f.out, f.err
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// Merge
// ──────────────────────────────────────────────────────────────────────────────

func TestMerge_ValoresExtraidosGananVaciosConservan(t *testing.T) {
	draft := dto.InvoiceDraft{SupplierName: "Digitado", InvoiceNumber: "1", OrderNumber: "OS-9", Value: "10"}
	got := &dto.ExtractedInvoice{SupplierName: "ACME LTDA", InvoiceNumber: "  ", EmissionDate: "2024-01-05", Value: decPtr("1500.75")}

	out := extraction.Merge(draft, got)
	assert.Equal(t, "ACME LTDA", out.SupplierName)
	assert.Equal(t, "1", out.InvoiceNumber)
	assert.Equal(t, "2024-01-05", out.EmissionDate)
	assert.Equal(t, "OS-9", out.OrderNumber)
	assert.Equal(t, "1500.75", out.Value)
}

func TestMerge_SinValorConservaBorrador(t *testing.T) {
	out := extraction.Merge(dto.InvoiceDraft{Value: "42"}, &dto.ExtractedInvoice{})
	assert.Equal(t, "42", out.Value)
}

// ──────────────────────────────────────────────────────────────────────────────
// Extract
// ──────────────────────────────────────────────────────────────────────────────

func TestExtract_Exito(t *testing.T) {
	llm := &fakeLLM{out: &dto.ExtractedInvoice{InvoiceNumber: "777", Value: decPtr("99.9")}}
	uc := extraction.NewExtractionUseCase(llm, time.Second)

	resp, err := uc.Extract(context.Background(), "IMAGE/JPEG", strings.NewReader("jpegbytes"), dto.InvoiceDraft{SupplierName: "Beta"})
	require.NoError(t, err)
	assert.True(t, resp.Extracted)
	assert.Empty(t, resp.Message)
	assert.Equal(t, "Beta", resp.Draft.SupplierName)
	assert.Equal(t, "777", resp.Draft.InvoiceNumber)
	assert.Equal(t, "99.9", resp.Draft.Value)
	assert.Equal(t, "image/jpeg", llm.mime)
	assert.Equal(t, []byte("jpegbytes"), llm.image)
	assert.True(t, llm.deadline, "la llamada debe llevar timeout")
}

func TestExtract_FalloDelModeloNoEsError(t *testing.T) {
	uc := extraction.NewExtractionUseCase(&fakeLLM{err: errors.New("503")}, 0)
	draft := dto.InvoiceDraft{SupplierName: "Beta", Value: "5"}

	resp, err := uc.Extract(context.Background(), "image/png", strings.NewReader("x"), draft)
	require.NoError(t, err)
	assert.False(t, resp.Extracted)
	assert.Equal(t, extraction.MsgExtractionFailed, resp.Message)
	assert.Equal(t, draft, resp.Draft)
}

func TestExtract_SinModeloConfigurado(t *testing.T) {
	uc := extraction.NewExtractionUseCase(nil, 0)

	resp, err := uc.Extract(context.Background(), "image/png", strings.NewReader("x"), dto.InvoiceDraft{})
	require.NoError(t, err)
	assert.False(t, resp.Extracted)
}

func TestExtract_RechazaNoImagen(t *testing.T) {
	uc := extraction.NewExtractionUseCase(&fakeLLM{}, 0)

	_, err := uc.Extract(context.Background(), "application/pdf", strings.NewReader("%PDF"), dto.InvoiceDraft{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtract_RechazaImagenVacia(t *testing.T) {
	uc := extraction.NewExtractionUseCase(&fakeLLM{}, 0)

	_, err := uc.Extract(context.Background(), "image/png", strings.NewReader(""), dto.InvoiceDraft{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
