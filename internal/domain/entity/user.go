package entity

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleUsuario = "usuario"
)

// User representa un usuario del sistema (tabla usuario).
type User struct {
	ID           int
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, usuario
	Active       bool
}

// ValidRole indica si el rol es uno de los admitidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUsuario
}
