package dto

// CreateUserRequest entrada para crear un usuario (solo ADMIN).
// Email es el login; NotificationEmail es opcional.
type CreateUserRequest struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	Role              string `json:"role"`
	Sector            string `json:"sector"`
	NotificationEmail string `json:"notificationEmail"`
}

// UpdateUserRequest igual que CreateUserRequest; un password vacío conserva el actual.
type UpdateUserRequest = CreateUserRequest

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	NotificationEmail string `json:"notificationEmail,omitempty"`
	Role              string `json:"role"`
	Sector            string `json:"sector"`
}

// LoginRequest entrada para login. Login acepta el login del usuario o su id.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
