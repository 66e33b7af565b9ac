package repository

import (
	"context"

	"github.com/duquediazn/tabula-backend/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id int) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	List(ctx context.Context, p Page) ([]*entity.Category, int, error)
	Delete(ctx context.Context, id int) error
	HasProducts(ctx context.Context, id int) (bool, error)
}
