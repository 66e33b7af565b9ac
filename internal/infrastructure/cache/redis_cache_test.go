package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duquediazn/tabula-backend/internal/application/ports"
	"github.com/duquediazn/tabula-backend/internal/infrastructure/cache"
	"github.com/duquediazn/tabula-backend/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type totals struct {
	Almacen  string `json:"almacen"`
	Cantidad int    `json:"cantidad"`
}

func setup(t *testing.T) (*miniredis.Miniredis, *cache.RedisCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, cache.NewRedisCache(client, time.Minute, logger.Nop())
}

func TestRedisCache_SetYGet(t *testing.T) {
	_, c := setup(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "reports:stock:almacenes", []totals{{"Central", 10}}))

	var got []totals
	require.NoError(t, c.Get(ctx, "reports:stock:almacenes", &got))
	assert.Equal(t, []totals{{"Central", 10}}, got)
}

func TestRedisCache_MissDevuelveErrCacheMiss(t *testing.T) {
	_, c := setup(t)

	var got []totals
	err := c.Get(context.Background(), "reports:no-existe", &got)

	assert.ErrorIs(t, err, ports.ErrCacheMiss)
}

func TestRedisCache_TTL(t *testing.T) {
	mr, c := setup(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "reports:stock:categorias", []totals{}))

	mr.FastForward(2 * time.Minute)

	var got []totals
	assert.ErrorIs(t, c.Get(ctx, "reports:stock:categorias", &got), ports.ErrCacheMiss)
}

func TestRedisCache_InvalidateReportsSoloBorraInformes(t *testing.T) {
	mr, c := setup(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "reports:stock:almacenes", 1))
	require.NoError(t, c.Set(ctx, "reports:stock:semaforo:2025-03-10", 2))
	require.NoError(t, mr.Set("session:abc", "x"))

	require.NoError(t, c.InvalidateReports(ctx))

	assert.False(t, mr.Exists("reports:stock:almacenes"))
	assert.False(t, mr.Exists("reports:stock:semaforo:2025-03-10"))
	assert.True(t, mr.Exists("session:abc"))
}

func TestRedisCache_InvalidateSinClaves(t *testing.T) {
	_, c := setup(t)
	assert.NoError(t, c.InvalidateReports(context.Background()))
}

func TestRedisCache_ServidorCaidoDevuelveError(t *testing.T) {
	mr, c := setup(t)
	mr.Close()

	var got int
	err := c.Get(context.Background(), "reports:x", &got)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrCacheMiss)
}
