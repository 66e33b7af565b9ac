package repository

import (
	"context"

	"github.com/duquediazn/tabula-backend/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByCode(ctx context.Context, code int) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, int, error)
	Delete(ctx context.Context, code int) error
	// ActiveCodes devuelve, de los códigos pedidos, los que existen y están activos.
	ActiveCodes(ctx context.Context, codes []int) ([]int, error)
	HasStock(ctx context.Context, code int) (bool, error)
	HasMovements(ctx context.Context, code int) (bool, error)
}
