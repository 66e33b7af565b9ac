package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/duquediazn/tabula-backend/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse_ConRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 7, "usuario", pkgjwt.KindAccess, "tabula-test", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, role, err := pkgjwt.Parse(testSecret, tok, pkgjwt.KindAccess)
	require.NoError(t, err)
	assert.Equal(t, 7, userID)
	assert.Equal(t, "usuario", role)
}

func TestParse_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 1, "admin", pkgjwt.KindAccess, "tabula-test", -time.Minute)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok, pkgjwt.KindAccess)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 1, "admin", pkgjwt.KindAccess, "tabula-test", time.Minute)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok, pkgjwt.KindAccess)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestParse_RefreshNoSirveComoAccess(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 1, "admin", pkgjwt.KindRefresh, "tabula-test", time.Hour)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok, pkgjwt.KindAccess)
	assert.Error(t, err, "un refresh token no debe aceptarse como access token")
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", 1, "admin", pkgjwt.KindAccess, "x", time.Minute)
	assert.Error(t, err)
}
