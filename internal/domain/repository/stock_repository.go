package repository

import (
	"context"
	"time"

	"github.com/duquediazn/tabula-backend/internal/domain/entity"
)

// StockRepository puerto del libro de stock: consultas agregadas y aplicación de deltas.
type StockRepository interface {
	List(ctx context.Context, f StockFilter) ([]entity.StockView, int, error)
	// Expiring stock con cantidad > 0 y fecha_cad en (from, to].
	Expiring(ctx context.Context, from, to time.Time, p Page) ([]entity.StockView, int, error)
	ProductByWarehouse(ctx context.Context, productCode int, p Page) ([]entity.StockTotal, int, error)
	WarehouseByProduct(ctx context.Context, warehouseCode int) ([]entity.StockTotal, error)
	TotalsByWarehouse(ctx context.Context) ([]entity.StockTotal, error)
	TotalsByCategory(ctx context.Context) ([]entity.StockTotal, error)
	CategoryProducts(ctx context.Context, categoryID int) ([]entity.StockTotal, error)
	// SumExpiringBetween suma cantidades con fecha_cad en (from, to].
	SumExpiringBetween(ctx context.Context, from, to time.Time) (int, error)
	// SumNotExpiringBefore suma cantidades sin fecha_cad o con fecha_cad > t.
	SumNotExpiringBefore(ctx context.Context, t time.Time) (int, error)
	AvailableLots(ctx context.Context, productCode, warehouseCode int) ([]entity.LotAvailability, error)
	History(ctx context.Context, f HistoryFilter) ([]entity.StockHistoryEntry, int, error)

	// Increase suma cantidad al lote (lo crea si no existe).
	Increase(ctx context.Context, line entity.MovementLine) error
	// Decrease resta cantidad solo si hay suficiente; devuelve ErrInsufficientStock si no.
	Decrease(ctx context.Context, line entity.MovementLine) error
}
