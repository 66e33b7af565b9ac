package dto

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
	Passwd string `json:"passwd"`
	Rol    string `json:"rol,omitempty"`
	Activo *bool  `json:"activo,omitempty"`
}

// UpdateUserRequest entrada parcial para actualizar un usuario. Rol y activo solo los cambia un admin.
type UpdateUserRequest struct {
	Nombre *string `json:"nombre,omitempty"`
	Email  *string `json:"email,omitempty"`
	Rol    *string `json:"rol,omitempty"`
	Activo *bool   `json:"activo,omitempty"`
	Passwd *string `json:"passwd,omitempty"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
	Rol    string `json:"rol"`
	Activo bool   `json:"activo"`
}

// UserListQuery filtros de GET /api/usuarios.
type UserListQuery struct {
	Search string
	Activo *bool
	PageRequest
}

// BulkUserStateRequest cambio de estado múltiple de usuarios.
type BulkUserStateRequest struct {
	IDs    []int `json:"ids"`
	Activo bool  `json:"activo"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida del login: access token + usuario. El refresh token va en cookie.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// TokenPair resultado interno del login/refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// VerifyPasswordRequest entrada para comprobar la contraseña actual.
type VerifyPasswordRequest struct {
	Password string `json:"password"`
}
