package ports

import (
	"context"
	"errors"
)

// ErrCacheMiss la clave no está en caché.
var ErrCacheMiss = errors.New("cache miss")

// ReportCache caché de reportes de stock. Se invalida tras cada movimiento confirmado.
type ReportCache interface {
	// Get deserializa el valor en dest; ErrCacheMiss si no existe.
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	InvalidateReports(ctx context.Context) error
}

// NopReportCache caché desactivada: siempre miss.
type NopReportCache struct{}

func (NopReportCache) Get(context.Context, string, any) error  { return ErrCacheMiss }
func (NopReportCache) Set(context.Context, string, any) error  { return nil }
func (NopReportCache) InvalidateReports(context.Context) error { return nil }
