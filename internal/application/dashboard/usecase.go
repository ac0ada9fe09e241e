// Package dashboard contiene el caso de uso del panel: agregados del período por fecha de
// publicación, resumen ejecutivo generado por IA y su versión en PDF.
package dashboard

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/portal-notas/internal/application/dto"
	"github.com/jhoicas/portal-notas/internal/application/ports"
	"github.com/jhoicas/portal-notas/internal/application/state"
	"github.com/jhoicas/portal-notas/internal/domain"
	"github.com/jhoicas/portal-notas/internal/domain/access"
	"github.com/jhoicas/portal-notas/internal/domain/report"
)

// Mensajes fijos del resumen cuando no hay texto del modelo.
const (
	MsgNoInvoices    = "Nenhuma nota fiscal encontrada para o período selecionado."
	MsgSummaryFailed = "Não foi possível gerar o resumo automático."
	MsgNoData        = "Sem dados suficientes para análise."
)

const defaultSummaryTimeout = 30 * time.Second

// DashboardUseCase genera el panel sobre las notas visibles del viewer.
type DashboardUseCase struct {
	state   *state.Controller
	llm     ports.LLMService
	pdf     ports.ReportPDFGenerator
	timeout time.Duration
}

// NewDashboardUseCase construye el caso de uso. llm y pdf pueden ser nil.
func NewDashboardUseCase(st *state.Controller, llm ports.LLMService, pdf ports.ReportPDFGenerator) *DashboardUseCase {
	return &DashboardUseCase{state: st, llm: llm, pdf: pdf, timeout: defaultSummaryTimeout}
}

// WithTimeout cambia el límite de la llamada al modelo.
func (uc *DashboardUseCase) WithTimeout(d time.Duration) *DashboardUseCase {
	if d > 0 {
		uc.timeout = d
	}
	return uc
}

// Summary agrega las notas visibles publicadas entre start y end (inclusive, YYYY-MM-DD).
// Con withAI también pide el resumen ejecutivo; un fallo del modelo nunca es un error.
func (uc *DashboardUseCase) Summary(ctx context.Context, v access.Viewer, start, end string, withAI bool) (*dto.DashboardResponse, error) {
	s, err := uc.aggregate(v, start, end)
	if err != nil {
		return nil, err
	}
	resp := &dto.DashboardResponse{
		Start:            start,
		End:              end,
		InvoiceCount:     len(s.Invoices),
		TotalValue:       s.TotalValue,
		TotalValueLabel:  FormatBRL(s.TotalValue),
		TopSuppliers:     toRanked(s.TopSuppliers),
		TopCollaborators: toRanked(s.TopCollaborators),
		StatusCounts:     s.StatusCounts,
	}
	if withAI {
		resp.Summary = uc.aiSummary(ctx, s)
	}
	return resp, nil
}

// WritePDF escribe el panel del período en formato PDF.
func (uc *DashboardUseCase) WritePDF(ctx context.Context, v access.Viewer, start, end string, w io.Writer) error {
	if uc.pdf == nil {
		return fmt.Errorf("%w: generador de PDF no configurado", domain.ErrExternalService)
	}
	s, err := uc.aggregate(v, start, end)
	if err != nil {
		return err
	}
	if err := uc.pdf.GenerateDashboard(w, PeriodLabel(start, end), s, uc.aiSummary(ctx, s)); err != nil {
		return fmt.Errorf("dashboard: generar pdf: %w", err)
	}
	return nil
}

func (uc *DashboardUseCase) aggregate(v access.Viewer, start, end string) (report.Summary, error) {
	if err := checkDate(start); err != nil {
		return report.Summary{}, err
	}
	if err := checkDate(end); err != nil {
		return report.Summary{}, err
	}
	visible := access.Visible(uc.state.Snapshot().Invoices, v)
	return report.Aggregate(visible, start, end), nil
}

func (uc *DashboardUseCase) aiSummary(ctx context.Context, s report.Summary) string {
	if len(s.Invoices) == 0 {
		return MsgNoInvoices
	}
	if uc.llm == nil {
		return MsgNoData
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	text, err := uc.llm.SummarizeInvoices(ctx, s.Invoices)
	if err != nil {
		log.Warn().Err(err).Int("invoices", len(s.Invoices)).Msg("resumen IA no disponible")
		return MsgSummaryFailed
	}
	if strings.TrimSpace(text) == "" {
		return MsgNoData
	}
	return strings.TrimSpace(text)
}

// FormatBRL formatea un valor como moneda brasileña, ej: "R$ 1.234,56".
func FormatBRL(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return message.NewPrinter(language.BrazilianPortuguese).Sprintf("R$ %.2f", f)
}

// PeriodLabel describe el rango para el encabezado del reporte.
func PeriodLabel(start, end string) string {
	switch {
	case start == "" && end == "":
		return "Todo o período"
	case start == "":
		return "Até " + brDate(end)
	case end == "":
		return "A partir de " + brDate(start)
	}
	return brDate(start) + " a " + brDate(end)
}

func brDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02/01/2006")
}

func checkDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("%w: fecha %q no tiene formato YYYY-MM-DD", domain.ErrInvalidInput, s)
	}
	return nil
}

func toRanked(in []report.Ranked) []dto.RankedDTO {
	out := make([]dto.RankedDTO, 0, len(in))
	for _, r := range in {
		out = append(out, dto.RankedDTO{Name: r.Name, TotalValue: r.TotalValue, Count: r.Count})
	}
	return out
}
