package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/portal-notas/internal/application/dto"
	"github.com/jhoicas/portal-notas/internal/application/state"
	"github.com/jhoicas/portal-notas/internal/domain"
	"github.com/jhoicas/portal-notas/internal/domain/entity"
	"github.com/jhoicas/portal-notas/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SeedConfig datos del administrador inicial.
type SeedConfig struct {
	ID                string
	Name              string
	Login             string
	Password          string
	NotificationEmail string
	Hash              bool
}

// MasterAdminID id fijo del administrador inicial.
const MasterAdminID = "admin-master"

// AuthUseCase casos de uso de autenticación.
type AuthUseCase struct {
	state  *state.Controller
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(st *state.Controller, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{state: st, jwtCfg: jwtCfg}
}

// Login busca el usuario por login o id, verifica la contraseña y emite un JWT con rol y setor.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	identifier := strings.TrimSpace(in.Login)
	if identifier == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	ds := uc.state.Snapshot()
	// el primer usuario cuyo login o id coincide Y cuya contraseña confirma
	var user *entity.User
	matched := false
	for i := range ds.Users {
		if !ds.Users[i].MatchesLogin(identifier) {
			continue
		}
		matched = true
		if CheckPassword(ds.Users[i].Password, in.Password) {
			user = &ds.Users[i]
			break
		}
	}
	if user == nil {
		if matched {
			return nil, domain.ErrUnauthorized
		}
		return nil, domain.ErrUserNotFound
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, user.Sector, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login")
	return &dto.LoginResponse{Token: token, User: ToUserResponse(user)}, nil
}

// Me devuelve el usuario actual.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	ds := uc.state.Snapshot()
	idx := ds.UserIndex(userID)
	if idx < 0 {
		return nil, domain.ErrUserNotFound
	}
	out := ToUserResponse(&ds.Users[idx])
	return &out, nil
}

// CurrentUser devuelve la entidad completa del usuario (para snapshots de autoría).
func (uc *AuthUseCase) CurrentUser(userID string) (*entity.User, error) {
	ds := uc.state.Snapshot()
	idx := ds.UserIndex(userID)
	if idx < 0 {
		return nil, domain.ErrUserNotFound
	}
	u := ds.Users[idx]
	return &u, nil
}

// SeedAdmin crea el administrador inicial si el directorio de usuarios está vacío.
// Devuelve true si lo creó.
func (uc *AuthUseCase) SeedAdmin(ctx context.Context, cfg SeedConfig) (bool, error) {
	if cfg.ID == "" {
		cfg.ID = MasterAdminID
	}
	if cfg.Name == "" {
		cfg.Name = "Administrador Master"
	}
	password := cfg.Password
	if cfg.Hash {
		h, err := HashPassword(password)
		if err != nil {
			return false, err
		}
		password = h
	}
	created := false
	err := uc.state.Update(ctx, func(ds *entity.Dataset) error {
		if len(ds.Users) > 0 {
			return errSkip
		}
		ds.Users = append(ds.Users, entity.User{
			ID:                cfg.ID,
			Name:              cfg.Name,
			Email:             cfg.Login,
			NotificationEmail: cfg.NotificationEmail,
			Password:          password,
			Role:              entity.RoleAdmin,
		})
		created = true
		return nil
	})
	if errors.Is(err, errSkip) {
		return false, nil
	}
	if created {
		log.Info().Str("user_id", cfg.ID).Msg("administrador inicial creado")
	}
	return created, err
}

var errSkip = errors.New("auth: directorio de usuarios no vacío")

// ToUserResponse convierte la entidad a DTO sin la contraseña.
func ToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		NotificationEmail: u.NotificationEmail,
		Role:              u.Role,
		Sector:            u.Sector,
	}
}
