package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/duquediazn/tabula-backend/internal/application/auth"
	"github.com/duquediazn/tabula-backend/internal/application/dto"
)

// Cookie del refresh token.
const (
	RefreshCookieName = "refresh_token"
	RefreshCookiePath = "/api/auth/refresh"
)

// CookieConfig atributos de la cookie del refresh token.
type CookieConfig struct {
	Secure bool
	MaxAge time.Duration
}

// AuthHandler maneja registro, login, refresh y perfil.
type AuthHandler struct {
	uc     *auth.AuthUseCase
	cookie CookieConfig
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{uc: uc, cookie: cookie}
}

// Register godoc
// @Summary      Registrar usuario (queda inactivo hasta que un admin lo active)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "nombre, email, passwd"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/registro [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	user, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return badRequest(c, "VALIDATION", "email y password son requeridos")
	}
	user, pair, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	h.setRefreshCookie(c, pair.RefreshToken, h.cookie.MaxAge)
	return c.JSON(dto.LoginResponse{AccessToken: pair.AccessToken, TokenType: "bearer", User: *user})
}

// Refresh godoc
// @Summary      Nuevo access token a partir de la cookie refresh_token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	tok, err := h.uc.Refresh(c.Context(), c.Cookies(RefreshCookieName))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"access_token": tok, "token_type": "bearer"})
}

// Logout godoc
// @Summary      Cerrar sesión (borra la cookie del refresh token)
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.setRefreshCookie(c, "", -time.Second)
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// Profile godoc
// @Summary      Usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Router       /api/auth/perfil [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user, err := h.uc.Profile(c.Context(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(user)
}

// VerifyPassword godoc
// @Summary      Comprobar la contraseña actual
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyPasswordRequest  true  "password"
// @Success      200   {object}  dto.MessageResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/verify-password [post]
func (h *AuthHandler) VerifyPassword(c *fiber.Ctx) error {
	var in dto.VerifyPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.VerifyPassword(c.Context(), GetPrincipal(c), in.Password); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "contraseña correcta"})
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, value string, maxAge time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     RefreshCookieName,
		Value:    value,
		Path:     RefreshCookiePath,
		MaxAge:   int(maxAge.Seconds()),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
