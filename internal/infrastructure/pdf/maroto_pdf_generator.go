// Package pdf genera la versión PDF del panel de notas fiscales.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + período          │  fecha de emisión      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INDICADORES: total │ recebidas │ em análise │ pendentes     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: top fornecedores por valor                           │
//	│  TABLA: top colaboradores por valor                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMO IA                                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"io"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/portal-notas/internal/application/ports"
	"github.com/jhoicas/portal-notas/internal/domain/entity"
	"github.com/jhoicas/portal-notas/internal/domain/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 15, Green: 23, Blue: 42}
	colorGray    = &props.Color{Red: 100, Green: 116, Blue: 139}
	colorGreen   = &props.Color{Red: 22, Green: 163, Blue: 74}
	colorBlue    = &props.Color{Red: 37, Green: 99, Blue: 235}
	colorRed     = &props.Color{Red: 220, Green: 38, Blue: 38}
)

var _ ports.ReportPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.ReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	title string
	now   func() time.Time
}

// NewMarotoPDFGenerator construye el generador. title encabeza cada reporte.
func NewMarotoPDFGenerator(title string) *MarotoPDFGenerator {
	if title == "" {
		title = "Portal de Notas Fiscais"
	}
	return &MarotoPDFGenerator{title: title, now: time.Now}
}

// GenerateDashboard escribe el PDF del panel en w.
func (g *MarotoPDFGenerator) GenerateDashboard(w io.Writer, period string, s report.Summary, aiSummary string) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Dashboard Financeiro", true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, period, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(indicatorsRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle(fmt.Sprintf("TOP %d FORNECEDORES POR VALOR", report.TopSuppliers)))
	m.AddRows(rankingRows(s.TopSuppliers, "Fornecedor")...)
	m.AddRows(row.New(4))
	m.AddRows(sectionTitle(fmt.Sprintf("TOP %d COLABORADORES POR VALOR", report.TopCollaborators)))
	m.AddRows(rankingRows(s.TopCollaborators, "Colaborador")...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(sectionTitle("RESUMO EXECUTIVO (IA)"))
	m.AddRows(row.New(40).Add(col.New(12).Add(
		text.New(nonEmpty(aiSummary, "—"), props.Text{Size: 9, Top: 1, Left: 1, Right: 1}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("pdf: generar documento: %w", err)
	}
	if _, err := w.Write(doc.GetBytes()); err != nil {
		return fmt.Errorf("pdf: escribir documento: %w", err)
	}
	return nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title, period string, now time.Time) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Período de postagem: "+period, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("DASHBOARD FINANCEIRO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido em "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// indicatorsRow: investimento total y conteos por estado.
func indicatorsRow(s report.Summary) core.Row {
	box := func(label, value string, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: c, Top: 8,
			}),
		)
	}
	return row.New(18).Add(
		box("Investimento Total", "R$ "+formatMoney(s.TotalValue), colorPrimary),
		box("Notas Recebidas", strconv.Itoa(s.StatusCounts[entity.StatusReceived]), colorGreen),
		box("Em Análise", strconv.Itoa(s.StatusCounts[entity.StatusUnderReview]), colorBlue),
		box("Pendentes", strconv.Itoa(s.StatusCounts[entity.StatusPending]), colorRed),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

// rankingRows: cabecera + una fila por entrada del ranking.
func rankingRows(items []report.Ranked, nameLabel string) []core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorGray, Top: 1, Left: 1, Right: 1,
		}))
	}
	rows := []core.Row{row.New(6).Add(
		h("#", 1, align.Center),
		h(nameLabel, 7, align.Left),
		h("Notas", 1, align.Center),
		h("Valor", 3, align.Right),
	)}
	if len(items) == 0 {
		return append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Sem dados no período.", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		)))
	}
	for i, r := range items {
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(7).Add(text.New(r.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(strconv.Itoa(r.Count), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New("R$ "+formatMoney(r.TotalValue), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea con separador de miles "." y decimal ",".
// Ej: 1234567.5 → "1.234.567,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := false
	if s[0] == '-' {
		neg, s = true, s[1:]
	}
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+4)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "," + frac
	if neg {
		return "-" + out
	}
	return out
}
