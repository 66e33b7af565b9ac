package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/duquediazn/tabula-backend/internal/application/dto"
	"github.com/duquediazn/tabula-backend/internal/domain"
	"github.com/duquediazn/tabula-backend/internal/domain/access"
	"github.com/duquediazn/tabula-backend/internal/domain/entity"
	"github.com/duquediazn/tabula-backend/pkg/jwt"
)

// Locals keys para UserID y Role en Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// ActiveUserLoader resuelve el usuario del token contra la base de datos.
type ActiveUserLoader interface {
	ActiveUser(ctx context.Context, id int) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token JWT, comprueba que el usuario siga existiendo
// y activo, y deja UserID y Role en c.Locals. El rol se toma de la base de datos.
func AuthMiddleware(jwtSecret string, users ActiveUserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := bearerToken(c.Get("Authorization"))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: err.Error(), Message: "Authorization: Bearer <token> requerido"})
		}
		userID, _, err := jwt.Parse(jwtSecret, tokenString, jwt.KindAccess)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		user, err := users.ActiveUser(c.Context(), userID)
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "usuario no encontrado"})
		case errors.Is(err, domain.ErrInactiveUser):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "INACTIVE_USER", Message: "usuario inactivo"})
		case err != nil:
			return writeError(c, err)
		}
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalRole, user.Role)
		return c.Next()
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errors.New("MISSING_TOKEN")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("INVALID_TOKEN")
	}
	tok := strings.TrimSpace(parts[1])
	if tok == "" {
		return "", errors.New("MISSING_TOKEN")
	}
	return tok, nil
}

// RequireAdmin corta con 403 si el usuario autenticado no es admin.
// Debe ir después de AuthMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRole(c) != entity.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "se requiere rol admin"})
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth); 0 si no hay.
func GetUserID(c *fiber.Ctx) int {
	id, _ := c.Locals(LocalUserID).(int)
	return id
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	role, _ := c.Locals(LocalRole).(string)
	return role
}

// GetPrincipal identidad de la petición para la política de acceso.
func GetPrincipal(c *fiber.Ctx) access.Principal {
	return access.Principal{UserID: GetUserID(c), Role: GetRole(c)}
}
