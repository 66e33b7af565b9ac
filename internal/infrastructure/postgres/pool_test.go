package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duquediazn/tabula-backend/internal/domain"
	"github.com/duquediazn/tabula-backend/pkg/config"
	"github.com/duquediazn/tabula-backend/pkg/logger"
)

func TestPoolConfig_AplicaLimitesDeConfig(t *testing.T) {
	cfg := config.DBConfig{
		Host: "db.interna", Port: 5433, User: "app", Password: "secreto", DBName: "tabula", SSLMode: "disable",
		MaxConns: 8, MinConns: 1,
		MaxConnLifetime: 20 * time.Minute, MaxConnIdleTime: 5 * time.Minute, HealthCheckPeriod: 15 * time.Second,
	}

	pc, err := PoolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, int32(8), pc.MaxConns)
	assert.Equal(t, int32(1), pc.MinConns)
	assert.Equal(t, 20*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, 5*time.Minute, pc.MaxConnIdleTime)
	assert.Equal(t, 15*time.Second, pc.HealthCheckPeriod)
	// el host se usa tal cual, sin resolverlo
	assert.Equal(t, "db.interna", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "tabula", pc.ConnConfig.Database)
}

func TestPoolConfig_DatabaseURLTienePrioridad(t *testing.T) {
	pc, err := PoolConfig(config.DBConfig{
		DatabaseURL: "postgres://u:p@otra-bd:6543/inventario?sslmode=disable",
		Host:        "ignorado", Port: 5432, DBName: "tabula",
		MaxConns: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, "otra-bd", pc.ConnConfig.Host)
	assert.Equal(t, "inventario", pc.ConnConfig.Database)
	assert.Equal(t, int32(4), pc.MaxConns)
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := PoolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@host:puerto/db"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewPool_SinServidor_StorageUnavailable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	pool, err := NewPool(ctx, config.DBConfig{
		DatabaseURL: "postgres://u:p@127.0.0.1:1/tabula?sslmode=disable&connect_timeout=1",
		MaxConns:    1,
	}, logger.Nop())

	assert.Nil(t, pool)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}
