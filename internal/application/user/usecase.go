// Package user administra el directorio de usuarios (solo ADMIN).
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/portal-notas/internal/application/auth"
	"github.com/jhoicas/portal-notas/internal/application/dto"
	"github.com/jhoicas/portal-notas/internal/application/state"
	"github.com/jhoicas/portal-notas/internal/domain"
	"github.com/jhoicas/portal-notas/internal/domain/access"
	"github.com/jhoicas/portal-notas/internal/domain/entity"
	"github.com/jhoicas/portal-notas/internal/domain/sector"
)

// UserUseCase alta, edición y listado de usuarios. No hay borrado.
type UserUseCase struct {
	state         *state.Controller
	hashPasswords bool
}

// NewUserUseCase construye el caso de uso. Con hashPasswords las contraseñas nuevas se guardan con bcrypt.
func NewUserUseCase(st *state.Controller, hashPasswords bool) *UserUseCase {
	return &UserUseCase{state: st, hashPasswords: hashPasswords}
}

// List devuelve todos los usuarios sin contraseña.
func (uc *UserUseCase) List(ctx context.Context, v access.Viewer) ([]dto.UserResponse, error) {
	if !access.CanManageUsers(v) {
		return nil, domain.ErrForbidden
	}
	ds := uc.state.Snapshot()
	out := make([]dto.UserResponse, 0, len(ds.Users))
	for i := range ds.Users {
		out = append(out, auth.ToUserResponse(&ds.Users[i]))
	}
	return out, nil
}

// Create agrega un usuario. El login debe ser único sin distinguir mayúsculas.
func (uc *UserUseCase) Create(ctx context.Context, v access.Viewer, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !access.CanManageUsers(v) {
		return nil, domain.ErrForbidden
	}
	in = trim(in)
	if err := validate(in); err != nil {
		return nil, err
	}
	if in.Password == "" {
		return nil, fmt.Errorf("%w: password es obligatorio", domain.ErrInvalidInput)
	}
	password, err := uc.secret(in.Password)
	if err != nil {
		return nil, err
	}
	u := entity.User{
		ID:                uuid.New().String(),
		Name:              in.Name,
		Email:             in.Email,
		NotificationEmail: in.NotificationEmail,
		Password:          password,
		Role:              in.Role,
		Sector:            in.Sector,
	}
	err = uc.state.Update(ctx, func(ds *entity.Dataset) error {
		if loginTaken(ds, u.Email, "") {
			return domain.ErrEmailAlreadyExists
		}
		ds.Users = append(ds.Users, u)
		return nil
	})
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		return nil, err
	}
	log.Info().Str("user_id", u.ID).Str("role", u.Role).Msg("usuario creado")
	out := auth.ToUserResponse(&u)
	return &out, err
}

// Update modifica un usuario; un password vacío conserva el actual.
func (uc *UserUseCase) Update(ctx context.Context, v access.Viewer, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !access.CanManageUsers(v) {
		return nil, domain.ErrForbidden
	}
	in = trim(in)
	if err := validate(in); err != nil {
		return nil, err
	}
	var password string
	if in.Password != "" {
		p, err := uc.secret(in.Password)
		if err != nil {
			return nil, err
		}
		password = p
	}
	var updated entity.User
	err := uc.state.Update(ctx, func(ds *entity.Dataset) error {
		idx := ds.UserIndex(id)
		if idx < 0 {
			return domain.ErrUserNotFound
		}
		if loginTaken(ds, in.Email, id) {
			return domain.ErrEmailAlreadyExists
		}
		u := &ds.Users[idx]
		u.Name = in.Name
		u.Email = in.Email
		u.NotificationEmail = in.NotificationEmail
		u.Role = in.Role
		u.Sector = in.Sector
		if password != "" {
			u.Password = password
		}
		updated = *u
		return nil
	})
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		return nil, err
	}
	out := auth.ToUserResponse(&updated)
	return &out, err
}

func (uc *UserUseCase) secret(plain string) (string, error) {
	if !uc.hashPasswords {
		return plain, nil
	}
	return auth.HashPassword(plain)
}

func trim(in dto.CreateUserRequest) dto.CreateUserRequest {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.NotificationEmail = strings.TrimSpace(in.NotificationEmail)
	in.Role = strings.ToUpper(strings.TrimSpace(in.Role))
	in.Sector = strings.TrimSpace(in.Sector)
	return in
}

func validate(in dto.CreateUserRequest) error {
	if in.Name == "" || in.Email == "" {
		return fmt.Errorf("%w: nombre y login son obligatorios", domain.ErrInvalidInput)
	}
	if !entity.ValidRole(in.Role) {
		return fmt.Errorf("%w: rol inválido %q", domain.ErrInvalidInput, in.Role)
	}
	// el administrador puede no tener setor
	if in.Role != entity.RoleAdmin || in.Sector != "" {
		if !sector.IsValid(in.Sector) {
			return fmt.Errorf("%w: setor inválido %q", domain.ErrInvalidInput, in.Sector)
		}
	}
	if in.NotificationEmail != "" && !strings.Contains(in.NotificationEmail, "@") {
		return fmt.Errorf("%w: email de notificación inválido", domain.ErrInvalidInput)
	}
	return nil
}

func loginTaken(ds *entity.Dataset, login, exceptID string) bool {
	for i := range ds.Users {
		if ds.Users[i].ID == exceptID {
			continue
		}
		// el id literal también sirve para entrar
		if strings.EqualFold(ds.Users[i].Email, login) || ds.Users[i].ID == login {
			return true
		}
	}
	return false
}
