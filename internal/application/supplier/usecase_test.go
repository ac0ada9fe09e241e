package supplier_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-notas/internal/application/dto"
	"github.com/jhoicas/portal-notas/internal/application/state"
	"github.com/jhoicas/portal-notas/internal/application/supplier"
	"github.com/jhoicas/portal-notas/internal/domain"
	"github.com/jhoicas/portal-notas/internal/domain/access"
	"github.com/jhoicas/portal-notas/internal/domain/entity"
	"github.com/jhoicas/portal-notas/internal/infrastructure/memory"
)

var (
	admin = access.Viewer{ID: "a", Role: entity.RoleAdmin}
	user  = access.Viewer{ID: "u", Role: entity.RoleUser, Sector: "TI"}
)

type fakeRegistry struct {
	rec  *dto.RegistryRecord
	err  error
	hits []string
}

func (f *fakeRegistry) LookupCNPJ(ctx context.Context, cnpj string) (*dto.RegistryRecord, error) {
	f.hits = append(f.hits, cnpj)
	return f.rec, f.err
}

func newUseCase(reg *fakeRegistry) *supplier.SupplierUseCase {
	ctl := state.NewController(memory.NewDocumentStore(nil), nil)
	if reg == nil {
		return supplier.NewSupplierUseCase(ctl, nil)
	}
	return supplier.NewSupplierUseCase(ctl, reg)
}

func acme() dto.SupplierRequest {
	return dto.SupplierRequest{Name: "Acme", LegalName: "Acme Indústria Ltda", CNPJ: "11222333000181", State: "rj"}
}

func TestCreate_SoloAdminYActivoPorDefecto(t *testing.T) {
	uc := newUseCase(nil)
	_, err := uc.Create(context.Background(), user, acme())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	s, err := uc.Create(context.Background(), admin, acme())
	require.NoError(t, err)
	assert.True(t, s.Active)
	assert.Equal(t, "11.222.333/0001-81", s.CNPJ)
	assert.Equal(t, "RJ", s.State)
}

func TestCreate_Validaciones(t *testing.T) {
	uc := newUseCase(nil)
	in := acme()
	in.CNPJ = "123"
	_, err := uc.Create(context.Background(), admin, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = acme()
	in.LegalName = " "
	_, err = uc.Create(context.Background(), admin, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_Busqueda(t *testing.T) {
	uc := newUseCase(nil)
	_, err := uc.Create(context.Background(), admin, acme())
	require.NoError(t, err)
	other := dto.SupplierRequest{Name: "Beta", LegalName: "Beta SA", CNPJ: "19131243000197"}
	b, err := uc.Create(context.Background(), admin, other)
	require.NoError(t, err)

	assert.Len(t, uc.List(context.Background(), "", false), 2)
	assert.Len(t, uc.List(context.Background(), "INDÚSTRIA", false), 1)
	assert.Len(t, uc.List(context.Background(), "19131243", false), 1)
	assert.Len(t, uc.List(context.Background(), "11.222", false), 1)

	inactive := false
	other.Active = &inactive
	_, err = uc.Update(context.Background(), admin, b.ID, other)
	require.NoError(t, err)
	assert.Len(t, uc.List(context.Background(), "", true), 1)
}

func TestUpdate_NoExiste(t *testing.T) {
	uc := newUseCase(nil)
	_, err := uc.Update(context.Background(), admin, "x", acme())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLookup(t *testing.T) {
	reg := &fakeRegistry{rec: &dto.RegistryRecord{Name: "Fantasia", LegalName: "Razão"}}
	uc := newUseCase(reg)

	_, err := uc.Lookup(context.Background(), admin, "123")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, reg.hits, "no se consulta con menos de 14 dígitos")

	rec, err := uc.Lookup(context.Background(), admin, "11.222.333/0001-81")
	require.NoError(t, err)
	assert.Equal(t, "Fantasia", rec.Name)
	assert.Equal(t, []string{"11222333000181"}, reg.hits)

	reg.err = errors.New("timeout")
	_, err = uc.Lookup(context.Background(), admin, "11222333000181")
	assert.ErrorIs(t, err, domain.ErrExternalService)

	_, err = newUseCase(nil).Lookup(context.Background(), admin, "11222333000181")
	assert.ErrorIs(t, err, domain.ErrExternalService)
}

func TestMergeLookup_ConservaCNPJYContacto(t *testing.T) {
	form := dto.SupplierRequest{CNPJ: "11222333000181", ContactEmail: "x@y", Name: "viejo"}
	out := supplier.MergeLookup(form, dto.RegistryRecord{Name: "Novo", City: "Macaé", State: "RJ"})
	assert.Equal(t, "Novo", out.Name)
	assert.Equal(t, "Macaé", out.City)
	assert.Equal(t, "11222333000181", out.CNPJ)
	assert.Equal(t, "x@y", out.ContactEmail)
}
