package dto

import "github.com/shopspring/decimal"

// DashboardResponse respuesta de GET /api/dashboard.
type DashboardResponse struct {
	Start            string          `json:"start,omitempty"`
	End              string          `json:"end,omitempty"`
	InvoiceCount     int             `json:"invoiceCount"`
	TotalValue       decimal.Decimal `json:"totalValue"`
	TotalValueLabel  string          `json:"totalValueLabel"` // R$ 1.234,56
	TopSuppliers     []RankedDTO     `json:"topSuppliers"`
	TopCollaborators []RankedDTO     `json:"topCollaborators"`
	StatusCounts     map[string]int  `json:"statusCounts"`
	Summary          string          `json:"summary,omitempty"`
}

// RankedDTO fila de ranking (fornecedor o colaborador).
type RankedDTO struct {
	Name       string          `json:"name"`
	TotalValue decimal.Decimal `json:"totalValue"`
	Count      int             `json:"count"`
}
