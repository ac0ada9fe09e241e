// Package report calcula los agregados del dashboard. Todo se recalcula en cada llamada.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/portal-notas/internal/domain/entity"
)

const (
	TopSuppliers     = 10
	TopCollaborators = 5
)

// Ranked es un total agrupado por nombre.
type Ranked struct {
	Name       string
	TotalValue decimal.Decimal
	Count      int
}

// Summary son los agregados sobre un subconjunto de notas.
type Summary struct {
	Invoices         []entity.Invoice
	TotalValue       decimal.Decimal
	TopSuppliers     []Ranked
	TopCollaborators []Ranked
	StatusCounts     map[string]int
}

// ByPostDate filtra por fecha de publicación, límites inclusivos y opcionales.
func ByPostDate(invoices []entity.Invoice, from, to string) []entity.Invoice {
	out := make([]entity.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		d := inv.PostDate()
		if from != "" && d < from {
			continue
		}
		if to != "" && d > to {
			continue
		}
		out = append(out, inv)
	}
	return out
}

// Aggregate calcula total, rankings y conteos por estado sobre el período [from, to].
func Aggregate(invoices []entity.Invoice, from, to string) Summary {
	subset := ByPostDate(invoices, from, to)
	s := Summary{
		Invoices:   subset,
		TotalValue: decimal.Zero,
		StatusCounts: map[string]int{
			entity.StatusReceived:    0,
			entity.StatusUnderReview: 0,
			entity.StatusPending:     0,
		},
	}
	for _, inv := range subset {
		s.TotalValue = s.TotalValue.Add(inv.Value)
		s.StatusCounts[inv.Status]++
	}
	s.TopSuppliers = rank(subset, func(i *entity.Invoice) string { return i.SupplierName }, TopSuppliers)
	s.TopCollaborators = rank(subset, func(i *entity.Invoice) string { return i.UserName }, TopCollaborators)
	return s
}

// rank agrupa por clave en orden de aparición y ordena de forma estable por total descendente,
// de modo que los empates conservan el orden de aparición.
func rank(invoices []entity.Invoice, key func(*entity.Invoice) string, n int) []Ranked {
	pos := make(map[string]int)
	groups := make([]Ranked, 0)
	for i := range invoices {
		k := key(&invoices[i])
		idx, ok := pos[k]
		if !ok {
			idx = len(groups)
			pos[k] = idx
			groups = append(groups, Ranked{Name: k, TotalValue: decimal.Zero})
		}
		groups[idx].TotalValue = groups[idx].TotalValue.Add(invoices[i].Value)
		groups[idx].Count++
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].TotalValue.GreaterThan(groups[j].TotalValue)
	})
	if len(groups) > n {
		groups = groups[:n]
	}
	return groups
}
