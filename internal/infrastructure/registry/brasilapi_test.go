package registry_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-notas/internal/domain"
	"github.com/jhoicas/portal-notas/internal/infrastructure/registry"
)

const acmeBody = `{"cnpj":"11222333000181","razao_social":"ACME INDUSTRIA LTDA","nome_fantasia":"",
"logradouro":"RUA DAS FLORES","numero":"100","complemento":"SALA 2","bairro":"CENTRO",
"municipio":"SAO PAULO","uf":"SP","cep":"01001000"}`

func TestLookupCNPJ_MapeaCampos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/11222333000181", r.URL.Path)
		_, _ = io.WriteString(w, acmeBody)
	}))
	defer srv.Close()

	rec, err := registry.NewBrasilAPI(srv.URL, time.Minute).LookupCNPJ(context.Background(), "11.222.333/0001-81")
	require.NoError(t, err)
	assert.Equal(t, "11.222.333/0001-81", rec.CNPJ)
	assert.Equal(t, "ACME INDUSTRIA LTDA", rec.Name, "sin nombre fantasía usa la razón social")
	assert.Equal(t, "ACME INDUSTRIA LTDA", rec.LegalName)
	assert.Equal(t, "RUA DAS FLORES", rec.Street)
	assert.Equal(t, "100", rec.Number)
	assert.Equal(t, "SALA 2", rec.Complement)
	assert.Equal(t, "CENTRO", rec.District)
	assert.Equal(t, "SAO PAULO", rec.City)
	assert.Equal(t, "SP", rec.State)
	assert.Equal(t, "01001000", rec.ZipCode)
}

func TestLookupCNPJ_UsaCache(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = io.WriteString(w, `{"razao_social":"BETA SA","nome_fantasia":"Beta"}`)
	}))
	defer srv.Close()

	api := registry.NewBrasilAPI(srv.URL, time.Minute)
	for i := 0; i < 3; i++ {
		rec, err := api.LookupCNPJ(context.Background(), "11222333000181")
		require.NoError(t, err)
		assert.Equal(t, "Beta", rec.Name)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestLookupCNPJ_NoEncontrado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := registry.NewBrasilAPI(srv.URL, time.Minute).LookupCNPJ(context.Background(), "11222333000181")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLookupCNPJ_ErrorDelServicio(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	api := registry.NewBrasilAPI(srv.URL, time.Minute)
	_, err := api.LookupCNPJ(context.Background(), "11222333000181")
	assert.ErrorIs(t, err, domain.ErrExternalService)
	_, err = api.LookupCNPJ(context.Background(), "11222333000181")
	assert.ErrorIs(t, err, domain.ErrExternalService)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "los errores no se cachean")
}
