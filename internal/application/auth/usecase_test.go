package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-notas/internal/application/auth"
	"github.com/jhoicas/portal-notas/internal/application/dto"
	"github.com/jhoicas/portal-notas/internal/application/state"
	"github.com/jhoicas/portal-notas/internal/domain"
	"github.com/jhoicas/portal-notas/internal/domain/entity"
	"github.com/jhoicas/portal-notas/internal/infrastructure/memory"
	"github.com/jhoicas/portal-notas/pkg/jwt"
)

const secret = "test-secret"

func newUseCase(t *testing.T, users ...entity.User) *auth.AuthUseCase {
	t.Helper()
	ds := entity.NewDataset()
	ds.Users = users
	ctl := state.NewController(memory.NewDocumentStore(ds), ds)
	return auth.NewAuthUseCase(ctl, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"})
}

func TestLogin_LoginSinDistinguirMayusculasOId(t *testing.T) {
	uc := newUseCase(t, entity.User{ID: "u-7", Email: "Gestor@Delp", Password: "abc", Role: entity.RoleManager, Sector: "Financeiro"})

	out, err := uc.Login(context.Background(), dto.LoginRequest{Login: "gestor@delp", Password: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "u-7", out.User.ID)

	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, claims.Role)
	assert.Equal(t, "Financeiro", claims.Sector)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Login: "u-7", Password: "abc"})
	assert.NoError(t, err, "el id literal también identifica")
}

func TestLogin_Errores(t *testing.T) {
	uc := newUseCase(t, entity.User{ID: "u1", Email: "ana", Password: "x", Role: entity.RoleUser})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Login: "ana", Password: "y"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Login: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Login: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_LoginIgualAlIdDeOtroUsuario(t *testing.T) {
	uc := newUseCase(t,
		entity.User{ID: "admin-master", Email: "delp", Password: "delp1234", Role: entity.RoleAdmin},
		entity.User{ID: "u-2", Email: "admin-master", Password: "xyz", Role: entity.RoleUser},
	)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Login: "admin-master", Password: "xyz"})
	require.NoError(t, err)
	assert.Equal(t, "u-2", out.User.ID)

	out, err = uc.Login(context.Background(), dto.LoginRequest{Login: "admin-master", Password: "delp1234"})
	require.NoError(t, err)
	assert.Equal(t, "admin-master", out.User.ID)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Login: "admin-master", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_HashBcrypt(t *testing.T) {
	hash, err := auth.HashPassword("segredo")
	require.NoError(t, err)
	uc := newUseCase(t, entity.User{ID: "u1", Email: "ana", Password: hash, Role: entity.RoleUser})

	_, err = uc.Login(context.Background(), dto.LoginRequest{Login: "ana", Password: "segredo"})
	assert.NoError(t, err)
	_, err = uc.Login(context.Background(), dto.LoginRequest{Login: "ana", Password: hash})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "el hash no sirve como contraseña")
}

func TestSeedAdmin_SoloConDirectorioVacio(t *testing.T) {
	uc := newUseCase(t)
	created, err := uc.SeedAdmin(context.Background(), auth.SeedConfig{Login: "delp", Password: "delp1234", NotificationEmail: "admin@delp.com.br"})
	require.NoError(t, err)
	assert.True(t, created)

	me, err := uc.Me(context.Background(), auth.MasterAdminID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, me.Role)
	assert.Equal(t, "delp", me.Email)

	created, err = uc.SeedAdmin(context.Background(), auth.SeedConfig{Login: "otro", Password: "x"})
	require.NoError(t, err)
	assert.False(t, created)
}

func TestCheckPassword(t *testing.T) {
	assert.True(t, auth.CheckPassword("abc", "abc"))
	assert.False(t, auth.CheckPassword("abc", "abd"))
	assert.False(t, auth.CheckPassword("", ""))
	assert.False(t, auth.IsHashed("delp1234"))
}
