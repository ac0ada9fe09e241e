package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-notas/internal/domain/entity"
	"github.com/jhoicas/portal-notas/pkg/config"
)

// ────────────────────────────────────────────────────────────────
// parseo
// ────────────────────────────────────────────────────────────────

func TestExtractJSON_BloqueMarkdown(t *testing.T) {
	in := "Aqui está:\n```json\n{\"invoiceNumber\": \"123\"}\n```"
	assert.Equal(t, `{"invoiceNumber": "123"}`, extractJSON(in))
}

func TestExtractJSON_TextoAlrededor(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON(`Resultado: {"a":1} fim`))
	assert.Equal(t, "", extractJSON("sem json"))
}

func TestParseExtraction_ValorNumerico(t *testing.T) {
	got, err := parseExtraction(`{"supplierName":" Acme Ltda ","invoiceNumber":"991","emissionDate":"2024-03-05","orderNumber":"","value":1234.5}`)
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltda", got.SupplierName)
	assert.Equal(t, "991", got.InvoiceNumber)
	assert.Equal(t, "2024-03-05", got.EmissionDate)
	require.NotNil(t, got.Value)
	assert.True(t, decimal.RequireFromString("1234.5").Equal(*got.Value))
}

func TestParseExtraction_ValorComoTextoBRL(t *testing.T) {
	got, err := parseExtraction(`{"supplierName":"Beta","value":"R$ 1.234,56"}`)
	require.NoError(t, err)
	require.NotNil(t, got.Value)
	assert.Equal(t, "1234.56", got.Value.String())
}

func TestParseExtraction_ValorAusenteOInvalido(t *testing.T) {
	got, err := parseExtraction(`{"supplierName":"Beta","value":null}`)
	require.NoError(t, err)
	assert.Nil(t, got.Value)

	got, err = parseExtraction(`{"supplierName":"Beta","value":"n/d"}`)
	require.NoError(t, err)
	assert.Nil(t, got.Value)
}

func TestParseExtraction_SinJSON(t *testing.T) {
	_, err := parseExtraction("não consegui ler")
	assert.Error(t, err)
}

func TestSummaryInput_IncluyeNotas(t *testing.T) {
	prompt, err := summaryInput([]entity.Invoice{{
		SupplierName: "Acme",
		Value:        decimal.RequireFromString("10.5"),
		Status:       entity.StatusReceived,
		CreatedAt:    time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
	}})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(prompt, summaryPrompt))
	assert.Contains(t, prompt, `"fornecedor":"Acme"`)
	assert.Contains(t, prompt, `"valor":10.5`)
	assert.Contains(t, prompt, `"postagem":"2024-01-02"`)
}

func TestNew_SinAPIKeyDevuelveNil(t *testing.T) {
	assert.Nil(t, New(config.AIConfig{Provider: "gemini"}))
	assert.Nil(t, New(config.AIConfig{Provider: "anthropic", GeminiAPIKey: "x"}))
	assert.IsType(t, &AnthropicService{}, New(config.AIConfig{Provider: "anthropic", AnthropicAPIKey: "k"}))
	assert.IsType(t, &GeminiService{}, New(config.AIConfig{GeminiAPIKey: "k"}))
}

// ────────────────────────────────────────────────────────────────
// Gemini
// ────────────────────────────────────────────────────────────────

func TestGemini_ExtractInvoiceFields(t *testing.T) {
	var got geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "k1", r.URL.Query().Get("key"))
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &got))
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"{\"supplierName\":\"Acme\",\"invoiceNumber\":\"7\",\"value\":50}"}]}}]}`)
	}))
	defer srv.Close()

	svc := NewGeminiService("k1", "gemini-test").WithBaseURL(srv.URL)
	out, err := svc.ExtractInvoiceFields(context.Background(), "image/png", []byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, err)
	assert.Equal(t, "Acme", out.SupplierName)
	assert.Equal(t, "7", out.InvoiceNumber)
	require.NotNil(t, out.Value)
	assert.Equal(t, "50", out.Value.String())

	require.Len(t, got.Contents, 1)
	parts := got.Contents[0].Parts
	require.Len(t, parts, 2)
	require.NotNil(t, parts[1].InlineData)
	assert.Equal(t, "image/png", parts[1].InlineData.MimeType)
	assert.Equal(t, "iVBORw==", parts[1].InlineData.Data)
	assert.Equal(t, "application/json", got.GenerationConfig.ResponseMIMEType)
}

func TestGemini_SummarizeInvoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"  Gastos concentrados na Acme. "}]}}]}`)
	}))
	defer srv.Close()

	text, err := NewGeminiService("k", "").WithBaseURL(srv.URL).SummarizeInvoices(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Gastos concentrados na Acme.", text)
}

func TestGemini_ErrorDeAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"code":400,"message":"API key not valid"}}`)
	}))
	defer srv.Close()

	_, err := NewGeminiService("k", "").WithBaseURL(srv.URL).SummarizeInvoices(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestGemini_SinAPIKey(t *testing.T) {
	_, err := NewGeminiService("", "").SummarizeInvoices(context.Background(), nil)
	assert.Error(t, err)
}

// ────────────────────────────────────────────────────────────────
// Anthropic
// ────────────────────────────────────────────────────────────────

func TestAnthropic_ExtractInvoiceFields(t *testing.T) {
	var got anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "k2", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &got))
		_, _ = io.WriteString(w, `{"content":[{"type":"text","text":"Segue:\n{\"supplierName\":\"Beta\",\"emissionDate\":\"2024-02-01\",\"value\":\"99,90\"}"}]}`)
	}))
	defer srv.Close()

	svc := NewAnthropicService("k2", "claude-test").WithBaseURL(srv.URL)
	out, err := svc.ExtractInvoiceFields(context.Background(), "image/jpeg", []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, "Beta", out.SupplierName)
	assert.Equal(t, "2024-02-01", out.EmissionDate)
	require.NotNil(t, out.Value)
	assert.Equal(t, "99.9", out.Value.String())

	assert.Equal(t, "claude-test", got.Model)
	require.Len(t, got.Messages, 1)
	blocks := got.Messages[0].Content
	require.Len(t, blocks, 2)
	assert.Equal(t, "image", blocks[0].Type)
	require.NotNil(t, blocks[0].Source)
	assert.Equal(t, "image/jpeg", blocks[0].Source.MediaType)
	assert.Equal(t, "YWJj", blocks[0].Source.Data)
	assert.Equal(t, "text", blocks[1].Type)
}

func TestAnthropic_ErrorDeAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"type":"authentication_error","message":"invalid x-api-key"}}`)
	}))
	defer srv.Close()

	_, err := NewAnthropicService("k", "").WithBaseURL(srv.URL).SummarizeInvoices(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication_error")
}

func TestAnthropic_RespuestaVacia(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"content":[]}`)
	}))
	defer srv.Close()

	_, err := NewAnthropicService("k", "").WithBaseURL(srv.URL).SummarizeInvoices(context.Background(), nil)
	assert.Error(t, err)
}
