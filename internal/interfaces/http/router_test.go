package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-notas/internal/application/auth"
	"github.com/jhoicas/portal-notas/internal/application/backup"
	"github.com/jhoicas/portal-notas/internal/application/dashboard"
	"github.com/jhoicas/portal-notas/internal/application/extraction"
	"github.com/jhoicas/portal-notas/internal/application/invoice"
	"github.com/jhoicas/portal-notas/internal/application/state"
	"github.com/jhoicas/portal-notas/internal/application/supplier"
	"github.com/jhoicas/portal-notas/internal/application/user"
	"github.com/jhoicas/portal-notas/internal/domain/entity"
	"github.com/jhoicas/portal-notas/internal/infrastructure/archive"
	"github.com/jhoicas/portal-notas/internal/infrastructure/filestore"
	"github.com/jhoicas/portal-notas/internal/infrastructure/mail"
	"github.com/jhoicas/portal-notas/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/portal-notas/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type portal struct {
	app   *fiber.App
	ctl   *state.Controller
	store *memory.DocumentStore
}

func newPortal(t *testing.T) portal {
	t.Helper()
	ds := entity.NewDataset()
	ds.Users = []entity.User{
		{ID: "admin-master", Name: "Administrador Master", Email: "delp", Password: "delp1234", Role: entity.RoleAdmin},
		{ID: "u1", Name: "Ana", Email: "ana", Password: "123", Role: entity.RoleUser, Sector: "Financeiro"},
		{ID: "u2", Name: "Bruno", Email: "bruno", Password: "456", Role: entity.RoleUser, Sector: "Logística"},
	}
	ds.Suppliers = []entity.Supplier{{ID: "s1", Name: "Acme", LegalName: "Acme Industrial Ltda", CNPJ: "11.222.333/0001-81", Active: true}}

	store := memory.NewDocumentStore(ds)
	ctl := state.NewController(store, ds)
	files, err := filestore.NewLocalStore(t.TempDir(), "/PDF", 0)
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       auth.NewAuthUseCase(ctl, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}),
		InvoiceUC:    invoice.NewInvoiceUseCase(ctl, files, mail.NewMailtoComposer(), archive.NewZipBuilder()),
		SupplierUC:   supplier.NewSupplierUseCase(ctl, nil),
		UserUC:       user.NewUserUseCase(ctl, false),
		DashboardUC:  dashboard.NewDashboardUseCase(ctl, nil, nil),
		ExtractionUC: extraction.NewExtractionUseCase(nil, 0),
		BackupUC:     backup.NewBackupUseCase(ctl),
		Files:        files,
		PublicPrefix: "/PDF",
		JWTSecret:    testJWTSecret,
	})
	return portal{app: app, ctl: ctl, store: store}
}

func (p portal) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := p.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (p portal) login(t *testing.T, login, password string) string {
	t.Helper()
	body := strings.NewReader(`{"login":"` + login + `","password":"` + password + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	resp := p.do(t, req)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return "Bearer " + out.Token
}

func authed(method, target, token string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", token)
	return req
}

// multipartInvoice arma el formulario de publicación con un PDF adjunto.
func multipartInvoice(t *testing.T, fields map[string]string, pdf string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if pdf != "" {
		fw, err := w.CreateFormFile("file", "nota.pdf")
		require.NoError(t, err)
		_, err = fw.Write([]byte(pdf))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func submitInvoice(t *testing.T, p portal, token string) map[string]interface{} {
	t.Helper()
	body, ct := multipartInvoice(t, map[string]string{
		"supplierId":    "s1",
		"invoiceNumber": "555",
		"emissionDate":  "2024-02-01",
		"orderNumber":   "OS-1",
		"value":         "1.234,50",
		"docType":       "OSV",
	}, "%PDF-1.4 nota")
	req := authed(http.MethodPost, "/api/invoices", token, body)
	req.Header.Set("Content-Type", ct)
	resp := p.do(t, req)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesIncorrectas(t *testing.T) {
	p := newPortal(t)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"login":"ana","password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := p.do(t, req)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"login":"nadie","password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	resp = p.do(t, req)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "USER_NOT_FOUND")
}

func TestMe_DevuelveUsuarioSinPassword(t *testing.T) {
	p := newPortal(t)
	token := p.login(t, "ANA", "123")
	resp := p.do(t, authed(http.MethodGet, "/api/auth/me", token, nil))
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"id":"u1"`)
	assert.NotContains(t, string(body), "123")
}

// ──────────────────────────────────────────────────────────────────────────────
// Notas
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoices_PublicarListarYDescargar(t *testing.T) {
	p := newPortal(t)
	ana := p.login(t, "ana", "123")
	inv := submitInvoice(t, p, ana)
	assert.Equal(t, entity.StatusUnderReview, inv["status"])
	assert.Equal(t, 1234.5, inv["value"])
	id := inv["id"].(string)

	// otro USER no la ve
	bruno := p.login(t, "bruno", "456")
	resp := p.do(t, authed(http.MethodGet, "/api/invoices", bruno, nil))
	var list struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	resp.Body.Close()
	assert.Equal(t, 0, list.Count)

	resp = p.do(t, authed(http.MethodGet, "/api/invoices/"+id, bruno, nil))
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// la autora descarga el adjunto y la nota queda exportada
	resp = p.do(t, authed(http.MethodGet, "/api/invoices/"+id+"/attachment", ana, nil))
	content, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "%PDF-1.4 nota", string(content))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "NOTA_555_ACME.pdf")

	resp = p.do(t, authed(http.MethodGet, "/api/invoices?exported=yes", ana, nil))
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	resp.Body.Close()
	assert.Equal(t, 1, list.Count)
}

func TestInvoices_AccionesDeAdminProtegidas(t *testing.T) {
	p := newPortal(t)
	ana := p.login(t, "ana", "123")
	id := submitInvoice(t, p, ana)["id"].(string)

	resp := p.do(t, authed(http.MethodPost, "/api/invoices/"+id+"/receive", ana, nil))
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = p.do(t, authed(http.MethodDelete, "/api/invoices/"+id, ana, nil))
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	admin := p.login(t, "delp", "delp1234")
	resp = p.do(t, authed(http.MethodPost, "/api/invoices/"+id+"/receive", admin, nil))
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.StatusReceived, out["status"])
}

func TestInvoices_PendenciaDevuelveMailto(t *testing.T) {
	p := newPortal(t)
	id := submitInvoice(t, p, p.login(t, "ana", "123"))["id"].(string)
	admin := p.login(t, "delp", "delp1234")

	req := authed(http.MethodPost, "/api/invoices/"+id+"/pendency", admin, strings.NewReader(`{"reason":"falta assinatura"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := p.do(t, req)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), `"status":"PENDENTE"`)
	assert.Contains(t, string(body), "mailto:")

	req = authed(http.MethodPost, "/api/invoices/"+id+"/pendency", admin, strings.NewReader(`{"reason":"   "}`))
	req.Header.Set("Content-Type", "application/json")
	resp = p.do(t, req)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInvoices_FalloDeGuardadoAvisaEnCabecera(t *testing.T) {
	p := newPortal(t)
	id := submitInvoice(t, p, p.login(t, "ana", "123"))["id"].(string)
	admin := p.login(t, "delp", "delp1234")

	p.store.SetFail(errors.New("disco lleno"))
	resp := p.do(t, authed(http.MethodPost, "/api/invoices/"+id+"/receive", admin, nil))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderPersistWarning))

	ds := p.ctl.Snapshot()
	assert.Equal(t, entity.StatusReceived, ds.Invoices[0].Status, "el cambio queda en memoria")
}

func TestInvoices_ReporteCSV(t *testing.T) {
	p := newPortal(t)
	ana := p.login(t, "ana", "123")
	submitInvoice(t, p, ana)

	resp := p.do(t, authed(http.MethodGet, "/api/invoices/report.csv", ana, nil))
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Acme")
	assert.Contains(t, string(body), "1234.50")
}

func TestFiles_ServidosBajoPrefijoPublico(t *testing.T) {
	p := newPortal(t)
	inv := submitInvoice(t, p, p.login(t, "ana", "123"))

	resp := p.do(t, httptest.NewRequest(http.MethodGet, inv["pdfUrl"].(string), nil))
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "%PDF-1.4 nota", string(body))

	resp = p.do(t, httptest.NewRequest(http.MethodGet, "/PDF/no-existe.pdf", nil))
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogos y sistema
// ──────────────────────────────────────────────────────────────────────────────

func TestSectors_ListaFija(t *testing.T) {
	p := newPortal(t)
	resp := p.do(t, authed(http.MethodGet, "/api/sectors", p.login(t, "ana", "123"), nil))
	var sectors []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sectors))
	resp.Body.Close()
	assert.Len(t, sectors, 30)
}

func TestSuppliers_LookupSinRegistroDegrada(t *testing.T) {
	p := newPortal(t)
	admin := p.login(t, "delp", "delp1234")
	resp := p.do(t, authed(http.MethodGet, "/api/suppliers/lookup/11222333000181", admin, nil))
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), `"found":false`)

	resp = p.do(t, authed(http.MethodGet, "/api/suppliers/lookup/123", admin, nil))
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUsers_SoloAdmin(t *testing.T) {
	p := newPortal(t)
	resp := p.do(t, authed(http.MethodGet, "/api/users", p.login(t, "ana", "123"), nil))
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = p.do(t, authed(http.MethodGet, "/api/users", p.login(t, "delp", "delp1234"), nil))
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, string(body), "delp1234")
}

func TestSystem_BackupYRestauracion(t *testing.T) {
	p := newPortal(t)
	admin := p.login(t, "delp", "delp1234")

	resp := p.do(t, authed(http.MethodGet, "/api/system/backup?format=json", admin, nil))
	backupJSON, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "BACKUP_TOTAL_DELP_")

	// vista previa: no aplica
	resp = p.do(t, authed(http.MethodPost, "/api/system/restore", admin, bytes.NewReader(backupJSON)))
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), `"applied":false`)

	// inválido: 422 y nada cambia
	resp = p.do(t, authed(http.MethodPost, "/api/system/restore?confirm=true&format=json", admin, strings.NewReader(`{"invoices":[]}`)))
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Len(t, p.ctl.Snapshot().Users, 3)
}

func TestSystem_DataYSave(t *testing.T) {
	p := newPortal(t)
	admin := p.login(t, "delp", "delp1234")

	resp := p.do(t, authed(http.MethodGet, "/api/data", p.login(t, "ana", "123"), nil))
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req := authed(http.MethodPost, "/api/save", admin, strings.NewReader(
		`{"invoices":[],"suppliers":[],"users":[{"id":"admin-master","name":"Admin","email":"delp","password":"x","role":"ADMIN"}]}`))
	req.Header.Set("Content-Type", "application/json")
	resp = p.do(t, req)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), `"success":true`)

	resp = p.do(t, authed(http.MethodGet, "/api/data", admin, nil))
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"invoices":[],"suppliers":[],"users":[{"id":"admin-master","name":"Admin","email":"delp","password":"x","role":"ADMIN","sector":""}]}`, string(body))
}
