// Package mocks dobles testify de los puertos de repositorio para los tests de casos de uso.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/duquediazn/tabula-backend/internal/domain/entity"
	"github.com/duquediazn/tabula-backend/internal/domain/repository"
)

var (
	_ repository.MovementRepository  = (*MovementRepo)(nil)
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
	_ repository.CategoryRepository  = (*CategoryRepo)(nil)
	_ repository.UserRepository      = (*UserRepo)(nil)
	_ repository.StockRepository     = (*StockRepo)(nil)
)

// ──── MovementRepo ────

type MovementRepo struct{ mock.Mock }

func (m *MovementRepo) Create(ctx context.Context, mov *entity.Movement) error {
	return m.Called(ctx, mov).Error(0)
}

func (m *MovementRepo) AddLines(ctx context.Context, lines []entity.MovementLine) error {
	return m.Called(ctx, lines).Error(0)
}

func (m *MovementRepo) GetByID(ctx context.Context, id int) (*entity.Movement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Movement), args.Error(1)
}

func (m *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entity.Movement), args.Int(1), args.Error(2)
}

func (m *MovementRepo) ListBetween(ctx context.Context, from, to time.Time, userID *int) ([]*entity.Movement, error) {
	args := m.Called(ctx, from, to, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Movement), args.Error(1)
}

func (m *MovementRepo) LinesByMovementIDs(ctx context.Context, ids []int) (map[int][]entity.MovementLine, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int][]entity.MovementLine), args.Error(1)
}

func (m *MovementRepo) ListLinesDetailed(ctx context.Context, movementID int, p repository.Page) ([]entity.MovementLineDetail, int, error) {
	args := m.Called(ctx, movementID, p)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]entity.MovementLineDetail), args.Int(1), args.Error(2)
}

func (m *MovementRepo) CountByType(ctx context.Context, userID *int) (map[string]int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

// ──── ProductRepo ────

type ProductRepo struct{ mock.Mock }

func (m *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *ProductRepo) GetByCode(ctx context.Context, code int) (*entity.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entity.Product), args.Int(1), args.Error(2)
}

func (m *ProductRepo) Delete(ctx context.Context, code int) error {
	return m.Called(ctx, code).Error(0)
}

func (m *ProductRepo) ActiveCodes(ctx context.Context, codes []int) ([]int, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *ProductRepo) HasStock(ctx context.Context, code int) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *ProductRepo) HasMovements(ctx context.Context, code int) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// ──── WarehouseRepo ────

type WarehouseRepo struct{ mock.Mock }

func (m *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	return m.Called(ctx, w).Error(0)
}

func (m *WarehouseRepo) GetByCode(ctx context.Context, code int) (*entity.Warehouse, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Warehouse), args.Error(1)
}

func (m *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	return m.Called(ctx, w).Error(0)
}

func (m *WarehouseRepo) List(ctx context.Context, f repository.WarehouseFilter) ([]*entity.Warehouse, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entity.Warehouse), args.Int(1), args.Error(2)
}

func (m *WarehouseRepo) Delete(ctx context.Context, code int) error {
	return m.Called(ctx, code).Error(0)
}

func (m *WarehouseRepo) ActiveCodes(ctx context.Context, codes []int) ([]int, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *WarehouseRepo) HasStock(ctx context.Context, code int) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *WarehouseRepo) HasMovements(ctx context.Context, code int) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// ──── CategoryRepo ────

type CategoryRepo struct{ mock.Mock }

func (m *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CategoryRepo) GetByID(ctx context.Context, id int) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CategoryRepo) List(ctx context.Context, p repository.Page) ([]*entity.Category, int, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entity.Category), args.Int(1), args.Error(2)
}

func (m *CategoryRepo) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CategoryRepo) HasProducts(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// ──── UserRepo ────

type UserRepo struct{ mock.Mock }

func (m *UserRepo) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserRepo) GetByID(ctx context.Context, id int) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *UserRepo) Update(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserRepo) List(ctx context.Context, f repository.UserFilter) ([]*entity.User, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entity.User), args.Int(1), args.Error(2)
}

func (m *UserRepo) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *UserRepo) HasMovements(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// ──── StockRepo ────

type StockRepo struct{ mock.Mock }

func (m *StockRepo) List(ctx context.Context, f repository.StockFilter) ([]entity.StockView, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]entity.StockView), args.Int(1), args.Error(2)
}

func (m *StockRepo) Expiring(ctx context.Context, from, to time.Time, p repository.Page) ([]entity.StockView, int, error) {
	args := m.Called(ctx, from, to, p)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]entity.StockView), args.Int(1), args.Error(2)
}

func (m *StockRepo) ProductByWarehouse(ctx context.Context, productCode int, p repository.Page) ([]entity.StockTotal, int, error) {
	args := m.Called(ctx, productCode, p)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]entity.StockTotal), args.Int(1), args.Error(2)
}

func (m *StockRepo) WarehouseByProduct(ctx context.Context, warehouseCode int) ([]entity.StockTotal, error) {
	return m.totals(m.Called(ctx, warehouseCode))
}

func (m *StockRepo) TotalsByWarehouse(ctx context.Context) ([]entity.StockTotal, error) {
	return m.totals(m.Called(ctx))
}

func (m *StockRepo) TotalsByCategory(ctx context.Context) ([]entity.StockTotal, error) {
	return m.totals(m.Called(ctx))
}

func (m *StockRepo) CategoryProducts(ctx context.Context, categoryID int) ([]entity.StockTotal, error) {
	return m.totals(m.Called(ctx, categoryID))
}

func (m *StockRepo) totals(args mock.Arguments) ([]entity.StockTotal, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.StockTotal), args.Error(1)
}

func (m *StockRepo) SumExpiringBetween(ctx context.Context, from, to time.Time) (int, error) {
	args := m.Called(ctx, from, to)
	return args.Int(0), args.Error(1)
}

func (m *StockRepo) SumNotExpiringBefore(ctx context.Context, t time.Time) (int, error) {
	args := m.Called(ctx, t)
	return args.Int(0), args.Error(1)
}

func (m *StockRepo) AvailableLots(ctx context.Context, productCode, warehouseCode int) ([]entity.LotAvailability, error) {
	args := m.Called(ctx, productCode, warehouseCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LotAvailability), args.Error(1)
}

func (m *StockRepo) History(ctx context.Context, f repository.HistoryFilter) ([]entity.StockHistoryEntry, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]entity.StockHistoryEntry), args.Int(1), args.Error(2)
}

func (m *StockRepo) Increase(ctx context.Context, line entity.MovementLine) error {
	return m.Called(ctx, line).Error(0)
}

func (m *StockRepo) Decrease(ctx context.Context, line entity.MovementLine) error {
	return m.Called(ctx, line).Error(0)
}
