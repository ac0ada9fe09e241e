// Package ai contiene los adaptadores de LLM (Gemini y Anthropic) para el resumen ejecutivo
// del panel y la lectura de imágenes de notas fiscales.
package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/portal-notas/internal/application/dto"
	"github.com/jhoicas/portal-notas/internal/application/ports"
	"github.com/jhoicas/portal-notas/internal/domain/entity"
	"github.com/jhoicas/portal-notas/pkg/config"
)

const (
	summaryPrompt = `Analise estes dados de notas fiscais, incluindo os valores financeiros, e forneça um resumo executivo curto em Português sobre o volume de gastos, principais fornecedores por valor e tendências financeiras. Responda em texto corrido, sem markdown.`

	extractionPrompt = `Extraia as seguintes informações desta nota fiscal: Nome do Fornecedor (Razão Social), Número da Nota, Data de Emissão (formato YYYY-MM-DD), Valor Total da Nota (numérico) e Número do Pedido/OS se disponível.
Devolva ÚNICAMENTE um objeto JSON (sem markdown) com esta estrutura exata:
{"supplierName": "<texto>", "invoiceNumber": "<texto>", "emissionDate": "<YYYY-MM-DD>", "orderNumber": "<texto ou vazio>", "value": <número>}
Use string vazia para campos não encontrados.`

	// límite de notas enviadas al modelo en el resumen
	maxSummaryInvoices = 500
)

// New construye el adaptador según el proveedor. Sin API key devuelve nil: el colaborador
// queda deshabilitado y los casos de uso degradan a sus mensajes fijos.
func New(cfg config.AIConfig) ports.LLMService {
	switch strings.ToLower(cfg.Provider) {
	case "anthropic", "claude":
		if cfg.AnthropicAPIKey == "" {
			return nil
		}
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	default:
		if cfg.GeminiAPIKey == "" {
			return nil
		}
		return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
	}
}

// summaryRow proyección compacta de una nota para el prompt.
type summaryRow struct {
	Supplier string          `json:"fornecedor"`
	Value    decimal.Decimal `json:"valor"`
	Status   string          `json:"status"`
	Sector   string          `json:"setor"`
	User     string          `json:"colaborador"`
	Emission string          `json:"emissao"`
	Posted   string          `json:"postagem"`
	DocType  string          `json:"tipo"`
}

// summaryInput serializa las notas para el prompt del resumen.
func summaryInput(invoices []entity.Invoice) (string, error) {
	if len(invoices) > maxSummaryInvoices {
		invoices = invoices[:maxSummaryInvoices]
	}
	rows := make([]summaryRow, 0, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		rows = append(rows, summaryRow{
			Supplier: inv.SupplierName,
			Value:    inv.Value,
			Status:   inv.Status,
			Sector:   inv.UserSector,
			User:     inv.UserName,
			Emission: inv.EmissionDate,
			Posted:   inv.PostDate(),
			DocType:  inv.DocType,
		})
	}
	raw, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("AI: serializar notas: %w", err)
	}
	return summaryPrompt + "\n\n" + string(raw), nil
}

// extractionPayload es el JSON que esperamos recibir del modelo.
type extractionPayload struct {
	SupplierName  string          `json:"supplierName"`
	InvoiceNumber string          `json:"invoiceNumber"`
	EmissionDate  string          `json:"emissionDate"`
	OrderNumber   string          `json:"orderNumber"`
	Value         json.RawMessage `json:"value"`
}

// parseExtraction interpreta la respuesta del modelo. value puede venir como número o texto
// ("1.234,56", "R$ 99,90").
func parseExtraction(text string) (*dto.ExtractedInvoice, error) {
	clean := extractJSON(text)
	if clean == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON válido en la respuesta del modelo (respuesta: %s)", text)
	}
	var p extractionPayload
	if err := json.Unmarshal([]byte(clean), &p); err != nil {
		return nil, fmt.Errorf("AI: parsear JSON de extracción: %w (JSON extraído: %s)", err, clean)
	}
	out := &dto.ExtractedInvoice{
		SupplierName:  strings.TrimSpace(p.SupplierName),
		InvoiceNumber: strings.TrimSpace(p.InvoiceNumber),
		EmissionDate:  strings.TrimSpace(p.EmissionDate),
		OrderNumber:   strings.TrimSpace(p.OrderNumber),
	}
	if v, ok := parseValue(p.Value); ok {
		out.Value = &v
	}
	return out, nil
}

func parseValue(raw json.RawMessage) (decimal.Decimal, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return decimal.Decimal{}, false
	}
	if strings.HasPrefix(s, `"`) {
		var txt string
		if err := json.Unmarshal(raw, &txt); err != nil {
			return decimal.Decimal{}, false
		}
		s = normalizeBRL(txt)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// normalizeBRL convierte "R$ 1.234,56" en "1234.56".
func normalizeBRL(s string) string {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	return s
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque el modelo lo envuelva en markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON extrae el primer objeto JSON de un texto libre.
// Estrategia en dos pasos:
//  1. Eliminar bloques de código markdown (```json … ``` o ``` … ```).
//  2. Usar regex para capturar el primer bloque { … }.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}
