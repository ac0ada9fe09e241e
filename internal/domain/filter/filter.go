// Package filter implementa el motor de visibilidad y filtros de la lista de notas.
package filter

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/portal-notas/internal/domain/access"
	"github.com/jhoicas/portal-notas/internal/domain/entity"
)

// Valores del filtro de exportación (tri-estado).
const (
	ExportedAny = "all"
	ExportedYes = "yes"
	ExportedNo  = "no"
)

// Criteria son predicados independientes combinados con AND. Un texto vacío no restringe.
// Las fechas se comparan como texto YYYY-MM-DD, que ordena igual que la cronología.
type Criteria struct {
	SupplierName  string `query:"supplierName"`
	InvoiceNumber string `query:"invoiceNumber"`
	UserName      string `query:"userName"`
	Status        string `query:"status"` // vacío = cualquiera
	Sector        string `query:"sector"` // vacío = todos (solo admin)
	Exported      string `query:"exported"`
	DateFrom      string `query:"dateFrom"`
	DateTo        string `query:"dateTo"`
	PostDateFrom  string `query:"postDateFrom"`
	PostDateTo    string `query:"postDateTo"`
}

// ForViewer fija el setor del viewer cuando no es administrador; el cliente no puede soltarlo.
func (c Criteria) ForViewer(v access.Viewer) Criteria {
	if !v.IsAdmin() {
		c.Sector = v.Sector
	}
	return c
}

type matcher struct {
	c        Criteria
	supplier string
	user     string
	fold     cases.Caser
}

func newMatcher(c Criteria) *matcher {
	m := &matcher{c: c, fold: cases.Fold()}
	m.supplier = m.fold.String(c.SupplierName)
	m.user = m.fold.String(c.UserName)
	return m
}

func (m *matcher) match(inv *entity.Invoice) bool {
	c := m.c
	if m.supplier != "" && !strings.Contains(m.fold.String(inv.SupplierName), m.supplier) {
		return false
	}
	if c.InvoiceNumber != "" && !strings.Contains(inv.InvoiceNumber, c.InvoiceNumber) {
		return false
	}
	if m.user != "" && !strings.Contains(m.fold.String(inv.UserName), m.user) {
		return false
	}
	if !isAny(c.Status) && inv.Status != c.Status {
		return false
	}
	if !isAny(c.Sector) && inv.UserSector != c.Sector {
		return false
	}
	switch strings.ToLower(c.Exported) {
	case ExportedYes:
		if !inv.IsExported {
			return false
		}
	case ExportedNo:
		if inv.IsExported {
			return false
		}
	}
	if !inRange(inv.EmissionDate, c.DateFrom, c.DateTo) {
		return false
	}
	return inRange(inv.PostDate(), c.PostDateFrom, c.PostDateTo)
}

func isAny(v string) bool {
	return v == "" || strings.EqualFold(v, "all")
}

// inRange compara de forma inclusiva; un límite vacío queda abierto.
func inRange(date, from, to string) bool {
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}

// Apply devuelve las notas que cumplen todos los criterios, de la más reciente a la más antigua.
func Apply(invoices []entity.Invoice, c Criteria) []entity.Invoice {
	m := newMatcher(c)
	out := make([]entity.Invoice, 0, len(invoices))
	for i := range invoices {
		if m.match(&invoices[i]) {
			out = append(out, invoices[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Query aplica primero la visibilidad del viewer (una sola vez) y después los criterios.
func Query(invoices []entity.Invoice, v access.Viewer, c Criteria) []entity.Invoice {
	return Apply(access.Visible(invoices, v), c.ForViewer(v))
}
