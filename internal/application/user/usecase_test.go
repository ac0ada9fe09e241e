package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-notas/internal/application/auth"
	"github.com/jhoicas/portal-notas/internal/application/dto"
	"github.com/jhoicas/portal-notas/internal/application/state"
	"github.com/jhoicas/portal-notas/internal/application/user"
	"github.com/jhoicas/portal-notas/internal/domain"
	"github.com/jhoicas/portal-notas/internal/domain/access"
	"github.com/jhoicas/portal-notas/internal/domain/entity"
	"github.com/jhoicas/portal-notas/internal/infrastructure/memory"
)

var (
	admin   = access.Viewer{ID: "admin-master", Role: entity.RoleAdmin}
	manager = access.Viewer{ID: "m1", Role: entity.RoleManager, Sector: "Financeiro"}
)

func setup(hash bool) (*user.UserUseCase, *state.Controller) {
	ds := entity.NewDataset()
	ds.Users = []entity.User{{ID: "admin-master", Name: "Administrador Master", Email: "delp", Password: "delp1234", Role: entity.RoleAdmin}}
	ctl := state.NewController(memory.NewDocumentStore(ds), ds)
	return user.NewUserUseCase(ctl, hash), ctl
}

func validRequest() dto.CreateUserRequest {
	return dto.CreateUserRequest{Name: "Ana", Email: "ana", Password: "123", Role: "user", Sector: "Financeiro"}
}

func TestCreate_SoloAdmin(t *testing.T) {
	uc, _ := setup(false)
	_, err := uc.Create(context.Background(), manager, validRequest())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreate_ValidaYNormaliza(t *testing.T) {
	uc, ctl := setup(false)
	out, err := uc.Create(context.Background(), admin, validRequest())
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, out.Role)
	assert.NotEmpty(t, out.ID)
	assert.Len(t, ctl.Snapshot().Users, 2)

	bad := validRequest()
	bad.Email = "ANA2"
	bad.Sector = "Inexistente"
	_, err = uc.Create(context.Background(), admin, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad = validRequest()
	bad.Email = "ana3"
	bad.Role = "ROOT"
	_, err = uc.Create(context.Background(), admin, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad = validRequest()
	bad.Email = "ana4"
	bad.Password = ""
	_, err = uc.Create(context.Background(), admin, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_LoginDuplicado(t *testing.T) {
	uc, _ := setup(false)
	req := validRequest()
	req.Email = "DELP"
	_, err := uc.Create(context.Background(), admin, req)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	req.Email = "admin-master"
	_, err = uc.Create(context.Background(), admin, req)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists, "el login no puede coincidir con el id de otro usuario")
}

func TestUpdate_PasswordVacioConserva(t *testing.T) {
	uc, ctl := setup(false)
	created, err := uc.Create(context.Background(), admin, validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.Name = "Ana Maria"
	req.Password = ""
	req.Role = entity.RoleManager
	out, err := uc.Update(context.Background(), admin, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", out.Name)
	assert.Equal(t, entity.RoleManager, out.Role)

	ds := ctl.Snapshot()
	assert.Equal(t, "123", ds.Users[ds.UserIndex(created.ID)].Password)

	_, err = uc.Update(context.Background(), admin, "no-existe", req)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCreate_ConHash(t *testing.T) {
	uc, ctl := setup(true)
	created, err := uc.Create(context.Background(), admin, validRequest())
	require.NoError(t, err)

	ds := ctl.Snapshot()
	stored := ds.Users[ds.UserIndex(created.ID)].Password
	assert.True(t, auth.IsHashed(stored))
	assert.True(t, auth.CheckPassword(stored, "123"))
}

func TestList_SinPassword(t *testing.T) {
	uc, _ := setup(false)
	list, err := uc.List(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "delp", list[0].Email)
}
