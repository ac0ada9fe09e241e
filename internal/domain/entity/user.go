package entity

import "strings"

// Roles válidos para User.
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER" // gestor de setor
	RoleUser    = "USER"
)

// User representa un usuario del portal. El documento persistido conserva los nombres
// de campo del almacén JSON original para que los respaldos existentes carguen sin cambios.
type User struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"` // identificador de login (puede no ser un email, ej. "delp")
	NotificationEmail string `json:"notificationEmail,omitempty"`
	Password          string `json:"password,omitempty"` // texto plano o hash bcrypt
	Role              string `json:"role"`
	Sector            string `json:"sector"`
}

// IsAdmin indica si el usuario tiene rol ADMIN.
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// MatchesLogin compara el identificador contra el login (sin distinguir mayúsculas) o el id literal.
func (u *User) MatchesLogin(identifier string) bool {
	if u == nil || identifier == "" {
		return false
	}
	return strings.EqualFold(u.Email, identifier) || u.ID == identifier
}

// ValidRole indica si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}
