package repository

import (
	"context"

	"github.com/duquediazn/tabula-backend/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(ctx context.Context, w *entity.Warehouse) error
	GetByCode(ctx context.Context, code int) (*entity.Warehouse, error)
	Update(ctx context.Context, w *entity.Warehouse) error
	List(ctx context.Context, f WarehouseFilter) ([]*entity.Warehouse, int, error)
	Delete(ctx context.Context, code int) error
	// ActiveCodes devuelve, de los códigos pedidos, los que existen y están activos.
	ActiveCodes(ctx context.Context, codes []int) ([]int, error)
	HasStock(ctx context.Context, code int) (bool, error)
	HasMovements(ctx context.Context, code int) (bool, error)
}
