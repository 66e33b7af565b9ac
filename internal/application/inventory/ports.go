package inventory

import (
	"context"

	"github.com/duquediazn/tabula-backend/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		warehouseRepo repository.WarehouseRepository,
		stockRepo repository.StockRepository,
	) error) error
}
