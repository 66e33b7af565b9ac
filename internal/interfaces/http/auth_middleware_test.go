package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duquediazn/tabula-backend/internal/domain"
	"github.com/duquediazn/tabula-backend/internal/domain/entity"
	apphttp "github.com/duquediazn/tabula-backend/internal/interfaces/http"
	pkgjwt "github.com/duquediazn/tabula-backend/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "tabula-test"
)

// fakeUsers resuelve usuarios activos como lo haría AuthUseCase.ActiveUser.
type fakeUsers map[int]*entity.User

func (f fakeUsers) ActiveUser(_ context.Context, id int) (*entity.User, error) {
	u, ok := f[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if !u.Active {
		return nil, domain.ErrInactiveUser
	}
	return u, nil
}

var testUsers = fakeUsers{
	1: {ID: 1, Name: "Admin", Role: entity.RoleAdmin, Active: true},
	7: {ID: 7, Name: "Ana", Role: entity.RoleUsuario, Active: true},
	9: {ID: 9, Name: "Baja", Role: entity.RoleUsuario, Active: false},
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para validar el JWT y cargar locals
//   - RequireAdmin opcional
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(adminOnly bool) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	handlers := []fiber.Handler{apphttp.AuthMiddleware(testJWTSecret, testUsers)}
	if adminOnly {
		handlers = append(handlers, apphttp.RequireAdmin())
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		p := apphttp.GetPrincipal(c)
		return c.JSON(fiber.Map{"ok": true, "user_id": p.UserID, "role": p.Role})
	})
	app.Get("/protected", handlers...)
	return app
}

// tokenFor genera un access token para el usuario indicado.
func tokenFor(t *testing.T, userID int, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, pkgjwt.KindAccess, testIssuer, time.Hour)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraePrincipal(t *testing.T) {
	app := buildTestApp(false)
	resp := doRequest(t, app, tokenFor(t, 7, entity.RoleUsuario))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(7), body["user_id"])
	assert.Equal(t, entity.RoleUsuario, body["role"])
}

func TestAuthMiddleware_RolSeTomaDeLaBaseDeDatos(t *testing.T) {
	// el token dice admin pero el usuario 7 es "usuario"
	app := buildTestApp(true)
	resp := doRequest(t, app, tokenFor(t, 7, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(false), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(false), "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(false), "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_RefreshTokenNoSirveComoAccess(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, 7, entity.RoleUsuario, pkgjwt.KindRefresh, testIssuer, time.Hour)
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(false), "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, 7, entity.RoleUsuario, pkgjwt.KindAccess, testIssuer, -time.Minute)
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(false), "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_UsuarioInexistente_Retorna404(t *testing.T) {
	resp := doRequest(t, buildTestApp(false), tokenFor(t, 404, entity.RoleUsuario))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAuthMiddleware_UsuarioInactivo_Retorna403(t *testing.T) {
	resp := doRequest(t, buildTestApp(false), tokenFor(t, 9, entity.RoleUsuario))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "INACTIVE_USER")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireAdmin
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAdmin_AdminAccede(t *testing.T) {
	resp := doRequest(t, buildTestApp(true), tokenFor(t, 1, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "admin debe poder acceder a ruta restringida a admin")
}

func TestRequireAdmin_UsuarioBloqueado(t *testing.T) {
	resp := doRequest(t, buildTestApp(true), tokenFor(t, 7, entity.RoleUsuario))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "FORBIDDEN")
}
