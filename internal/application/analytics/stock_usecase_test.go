package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/duquediazn/tabula-backend/internal/application/dto"
	"github.com/duquediazn/tabula-backend/internal/application/ports"
	"github.com/duquediazn/tabula-backend/internal/domain"
	"github.com/duquediazn/tabula-backend/internal/domain/access"
	"github.com/duquediazn/tabula-backend/internal/domain/entity"
	"github.com/duquediazn/tabula-backend/internal/domain/repository"
	"github.com/duquediazn/tabula-backend/internal/mocks"
	"github.com/duquediazn/tabula-backend/pkg/logger"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newStockUC(repo *mocks.StockRepo, cache ports.ReportCache, now time.Time) *StockUseCase {
	uc := NewStockUseCase(repo, cache, logger.Nop())
	uc.now = func() time.Time { return now }
	return uc
}

func TestAddMonths_AjustaFinDeMes(t *testing.T) {
	cases := []struct {
		in     time.Time
		months int
		want   time.Time
	}{
		{date(2025, time.January, 31), 1, date(2025, time.February, 28)},
		{date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{date(2025, time.August, 31), 6, date(2026, time.February, 28)},
		{date(2025, time.March, 10), 1, date(2025, time.April, 10)},
		{date(2025, time.December, 15), 1, date(2026, time.January, 15)},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, AddMonths(tc.in, tc.months), "%s + %d meses", tc.in.Format(time.DateOnly), tc.months)
	}
}

func TestSemaphore_TramosYCache(t *testing.T) {
	repo := &mocks.StockRepo{}
	cache := &mocks.ReportCache{}
	uc := newStockUC(repo, cache, time.Date(2025, time.January, 31, 18, 0, 0, 0, time.UTC))

	hoy := date(2025, time.January, 31)
	unMes := date(2025, time.February, 28)
	seisMeses := date(2025, time.July, 31)

	cache.On("Get", mock.Anything, "reports:stock:semaforo:2025-01-31", mock.Anything).Return(ports.ErrCacheMiss)
	cache.On("Set", mock.Anything, "reports:stock:semaforo:2025-01-31", mock.Anything).Return(nil)
	repo.On("SumExpiringBetween", mock.Anything, hoy, unMes).Return(5, nil)
	repo.On("SumExpiringBetween", mock.Anything, unMes, seisMeses).Return(20, nil)
	repo.On("SumNotExpiringBefore", mock.Anything, seisMeses).Return(300, nil)

	out, err := uc.Semaphore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &dto.StockSemaphoreResponse{CaducaYa: 5, CaducaProximamente: 20, NoCaduca: 300}, out)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestSemaphore_ErrorDeRepositorio(t *testing.T) {
	repo := &mocks.StockRepo{}
	uc := newStockUC(repo, nil, date(2025, time.March, 10))

	repo.On("SumExpiringBetween", mock.Anything, mock.Anything, mock.Anything).Return(0, domain.ErrStorageUnavailable)
	repo.On("SumNotExpiringBefore", mock.Anything, mock.Anything).Return(0, nil)

	_, err := uc.Semaphore(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestTotalsByWarehouse_CacheHitNoConsultaBD(t *testing.T) {
	repo := &mocks.StockRepo{}
	cache := &mocks.ReportCache{}
	uc := newStockUC(repo, cache, date(2025, time.March, 10))

	cache.On("Get", mock.Anything, "reports:stock:almacenes", mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(2).(*[]dto.StockByWarehouseResponse)
			*dest = []dto.StockByWarehouseResponse{{CodigoAlmacen: 1, NombreAlmacen: "Central", TotalCantidad: 9}}
		}).Return(nil)

	out, err := uc.TotalsByWarehouse(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 9, out[0].TotalCantidad)
	repo.AssertNotCalled(t, "TotalsByWarehouse", mock.Anything)
}

func TestTotalsByCategory_CacheCaidaSigueFuncionando(t *testing.T) {
	repo := &mocks.StockRepo{}
	cache := &mocks.ReportCache{}
	uc := newStockUC(repo, cache, date(2025, time.March, 10))

	cache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis caído"))
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis caído"))
	repo.On("TotalsByCategory", mock.Anything).Return([]entity.StockTotal{{Key: 2, Name: "Lacteos", Quantity: 40}}, nil)

	out, err := uc.TotalsByCategory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []dto.StockByCategoryResponse{{IDCategoria: 2, NombreCategoria: "Lacteos", CantidadTotal: 40}}, out)
}

func TestExpiring_RangoEnMeses(t *testing.T) {
	repo := &mocks.StockRepo{}
	uc := newStockUC(repo, nil, date(2025, time.March, 10))

	repo.On("Expiring", mock.Anything, date(2025, time.April, 10), date(2025, time.June, 10), repository.Page{Limit: 10}).
		Return([]entity.StockView{}, 0, nil)

	out, err := uc.Expiring(context.Background(), 1, 2, dto.PageRequest{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Total)
	repo.AssertExpectations(t)
}

func TestExpiring_ParametrosInvalidos(t *testing.T) {
	uc := newStockUC(&mocks.StockRepo{}, nil, date(2025, time.March, 10))

	_, err := uc.Expiring(context.Background(), 0, 0, dto.PageRequest{Limit: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistory_NoAdminRestringido(t *testing.T) {
	repo := &mocks.StockRepo{}
	uc := newStockUC(repo, nil, date(2025, time.March, 10))
	p := access.Principal{UserID: 7, Role: entity.RoleUsuario}

	repo.On("History", mock.Anything, mock.MatchedBy(func(f repository.HistoryFilter) bool {
		return f.UserID != nil && *f.UserID == 7
	})).Return([]entity.StockHistoryEntry{{MovementID: 1, Type: "entrada", UserName: "Ana", Quantity: 3}}, 1, nil)

	out, err := uc.History(context.Background(), p, nil, nil, dto.PageRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "Ana", out.Data[0].Usuario)
}

func TestAvailableLots_ParametrosObligatorios(t *testing.T) {
	uc := newStockUC(&mocks.StockRepo{}, nil, date(2025, time.March, 10))

	_, err := uc.AvailableLots(context.Background(), 0, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
