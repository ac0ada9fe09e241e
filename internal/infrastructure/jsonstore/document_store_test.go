package jsonstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-notas/internal/domain/entity"
	"github.com/jhoicas/portal-notas/internal/infrastructure/jsonstore"
)

func TestNew_CreaDocumentoVacio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "database.json")

	s, err := jsonstore.New(path)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"invoices":[],"users":[],"suppliers":[]}`, string(raw))

	ds, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, ds.Invoices)
	assert.Empty(t, ds.Users)
}

func TestLoad_DocumentoDelServidorAnterior(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	legacy := `{"invoices":[{"id":"k2x9","supplierName":"Acme","invoiceNumber":"12","emissionDate":"2024-01-05",
		"orderNumber":"OS-1","value":1500.25,"pdfUrl":"/PDF/nf.pdf","fileName":"nf.pdf","uploadedBy":"u1",
		"userName":"Ana","userSector":"Financeiro","createdAt":"2024-01-10T12:00:00.000Z","status":"EM_ANALISE","docType":"OSV"}],
		"users":[{"id":"admin-master","name":"Administrador Master","email":"delp","password":"delp1234","role":"ADMIN","sector":"Diretoria"}]}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	s, err := jsonstore.New(path)
	require.NoError(t, err)
	ds, err := s.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, ds.Invoices, 1)
	assert.True(t, ds.Invoices[0].Value.Equal(decimal.RequireFromString("1500.25")))
	assert.Equal(t, "2024-01-10", ds.Invoices[0].PostDate())
	assert.NotNil(t, ds.Suppliers, "colección ausente queda vacía")
	assert.Equal(t, "delp", ds.Users[0].Email)
}

func TestSave_SobrescribeYRecarga(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	s, err := jsonstore.New(path)
	require.NoError(t, err)

	ds := entity.NewDataset()
	ds.Invoices = append(ds.Invoices, entity.Invoice{
		ID: "1", SupplierName: "Beta", Value: decimal.RequireFromString("10.5"),
		Status: entity.StatusReceived, DocType: entity.DocTypeOrder,
		CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, s.Save(context.Background(), ds))

	again, err := jsonstore.New(path)
	require.NoError(t, err)
	got, err := again.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Invoices, 1)
	assert.Equal(t, entity.StatusReceived, got.Invoices[0].Status)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no quedan temporales")
}

func TestLoad_DocumentoCorrupto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	require.NoError(t, os.WriteFile(path, []byte("{invoices:"), 0o644))
	s, err := jsonstore.New(path)
	require.NoError(t, err)

	_, err = s.Load(context.Background())
	assert.Error(t, err)
}

func TestSave_ContextoCancelado(t *testing.T) {
	s, err := jsonstore.New(filepath.Join(t.TempDir(), "database.json"))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.Save(ctx, entity.NewDataset()))
}
