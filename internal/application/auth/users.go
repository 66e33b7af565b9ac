package auth

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/duquediazn/tabula-backend/internal/application/dto"
	"github.com/duquediazn/tabula-backend/internal/domain"
	"github.com/duquediazn/tabula-backend/internal/domain/entity"
)

// Restricciones de los datos de usuario.
const (
	minNameLen     = 3
	maxNameLen     = 100
	minPasswordLen = 8
)

// HashPassword bcrypt con coste por defecto.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// NormalizeEmail minúsculas y sin espacios.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateNewUser nombre 3..100, email válido, password >= 8, rol usuario|admin si viene.
func ValidateNewUser(in dto.CreateUserRequest) error {
	if err := ValidateName(in.Nombre); err != nil {
		return err
	}
	if err := ValidateEmail(in.Email); err != nil {
		return err
	}
	if err := ValidatePassword(in.Passwd); err != nil {
		return err
	}
	if in.Rol != "" && !entity.ValidRole(in.Rol) {
		return fmt.Errorf("%w: rol inválido, debe ser 'usuario' o 'admin'", domain.ErrInvalidInput)
	}
	return nil
}

// ValidateName longitud del nombre.
func ValidateName(name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n < minNameLen || n > maxNameLen {
		return fmt.Errorf("%w: el nombre debe tener entre %d y %d caracteres", domain.ErrInvalidInput, minNameLen, maxNameLen)
	}
	return nil
}

// ValidatePassword longitud mínima de la contraseña.
func ValidatePassword(plain string) error {
	if utf8.RuneCountInString(plain) < minPasswordLen {
		return fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	}
	return nil
}

// ValidateEmail formato de email.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Address != strings.TrimSpace(email) {
		return fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	return nil
}

// ToUserResponse salida sin password.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:     u.ID,
		Nombre: u.Name,
		Email:  u.Email,
		Rol:    u.Role,
		Activo: u.Active,
	}
}
