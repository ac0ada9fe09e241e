// Package registry consulta datos públicos de CNPJ en BrasilAPI.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jhoicas/portal-notas/internal/application/dto"
	"github.com/jhoicas/portal-notas/internal/application/ports"
	"github.com/jhoicas/portal-notas/internal/domain"
	"github.com/jhoicas/portal-notas/pkg/cnpj"
)

var _ ports.SupplierRegistry = (*BrasilAPI)(nil)

// DefaultBaseURL endpoint público de CNPJ.
const DefaultBaseURL = "https://brasilapi.com.br/api/cnpj/v1"

// BrasilAPI adaptador de SupplierRegistry. Las respuestas correctas se guardan en caché durante ttl;
// los errores no se cachean.
type BrasilAPI struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
}

// NewBrasilAPI construye el adaptador. ttl <= 0 desactiva la expiración por tiempo.
func NewBrasilAPI(baseURL string, ttl time.Duration) *BrasilAPI {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &BrasilAPI{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cache:      cache.New(ttl, 10*time.Minute),
	}
}

type brasilAPIResponse struct {
	CNPJ         string `json:"cnpj"`
	RazaoSocial  string `json:"razao_social"`
	NomeFantasia string `json:"nome_fantasia"`
	Logradouro   string `json:"logradouro"`
	Numero       string `json:"numero"`
	Complemento  string `json:"complemento"`
	Bairro       string `json:"bairro"`
	Municipio    string `json:"municipio"`
	UF           string `json:"uf"`
	CEP          string `json:"cep"`
}

// LookupCNPJ devuelve los datos del CNPJ. 404 se traduce en domain.ErrNotFound.
func (b *BrasilAPI) LookupCNPJ(ctx context.Context, number string) (*dto.RegistryRecord, error) {
	digits := cnpj.Digits(number)
	if cached, ok := b.cache.Get(digits); ok {
		rec := cached.(dto.RegistryRecord)
		return &rec, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/"+digits, nil)
	if err != nil {
		return nil, fmt.Errorf("registry: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: registry: %v", domain.ErrExternalService, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("%w: registry: leer respuesta: %v", domain.ErrExternalService, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: CNPJ %s não encontrado", domain.ErrNotFound, cnpj.Format(digits))
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: registry HTTP %d", domain.ErrExternalService, resp.StatusCode)
	}

	var body brasilAPIResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("%w: registry: decodificar: %v", domain.ErrExternalService, err)
	}
	rec := toRecord(digits, body)
	b.cache.SetDefault(digits, rec)
	return &rec, nil
}

func toRecord(digits string, b brasilAPIResponse) dto.RegistryRecord {
	name := strings.TrimSpace(b.NomeFantasia)
	if name == "" {
		name = strings.TrimSpace(b.RazaoSocial)
	}
	return dto.RegistryRecord{
		CNPJ:       cnpj.Format(digits),
		Name:       name,
		LegalName:  strings.TrimSpace(b.RazaoSocial),
		Street:     b.Logradouro,
		Number:     b.Numero,
		Complement: b.Complemento,
		District:   b.Bairro,
		City:       b.Municipio,
		State:      b.UF,
		ZipCode:    b.CEP,
	}
}
