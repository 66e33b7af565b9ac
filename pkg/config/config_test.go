package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("SECRET_KEY", "secreto")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.JWT.AccessMinutes)
	assert.Equal(t, 7, cfg.JWT.RefreshDays)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 256, cfg.Inventory.NotifyQueueSize)
	assert.False(t, cfg.Inventory.ApplyStockOnMovement)
	assert.Equal(t, 60*time.Second, cfg.Redis.TTL)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.Equal(t, 2, cfg.DB.MinConns)
	assert.Equal(t, time.Hour, cfg.DB.MaxConnLifetime)
	assert.Equal(t, 30*time.Minute, cfg.DB.MaxConnIdleTime)
	assert.Equal(t, time.Minute, cfg.DB.HealthCheckPeriod)
}

func TestLoad_SinSecretKey_Error(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	_, err := Load()
	assert.Error(t, err, "SECRET_KEY es obligatoria")
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("SECRET_KEY", "secreto")
	t.Setenv("ACCESS_TOKEN_DURATION", "15")
	t.Setenv("STOCK_APPLY_ON_MOVEMENT", "true")
	t.Setenv("HTTP_PORT", "9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.JWT.AccessMinutes)
	assert.True(t, cfg.Inventory.ApplyStockOnMovement)
	assert.Equal(t, "0.0.0.0:9000", cfg.HTTP.Addr())
}

func TestLoad_LimitesDelPool(t *testing.T) {
	t.Setenv("SECRET_KEY", "secreto")
	t.Setenv("DB_MAX_CONNS", "8")
	t.Setenv("DB_MIN_CONNS", "1")
	t.Setenv("DB_MAX_CONN_IDLE_MINUTES", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.DB.MaxConns)
	assert.Equal(t, 1, cfg.DB.MinConns)
	assert.Equal(t, 5*time.Minute, cfg.DB.MaxConnIdleTime)
}

func TestLoad_MinConnsMayorQueMax_Error(t *testing.T) {
	t.Setenv("SECRET_KEY", "secreto")
	t.Setenv("DB_MAX_CONNS", "2")
	t.Setenv("DB_MIN_CONNS", "5")

	_, err := Load()
	assert.ErrorContains(t, err, "DB_MIN_CONNS")
}

func TestDBConfig_DSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "tabula", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/tabula?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
