package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/duquediazn/tabula-backend/internal/application/dto"
	appinventory "github.com/duquediazn/tabula-backend/internal/application/inventory"
	"github.com/duquediazn/tabula-backend/internal/domain"
	"github.com/duquediazn/tabula-backend/internal/domain/access"
	"github.com/duquediazn/tabula-backend/internal/domain/entity"
	"github.com/duquediazn/tabula-backend/internal/domain/repository"
	"github.com/duquediazn/tabula-backend/internal/mocks"
	"github.com/duquediazn/tabula-backend/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var (
	fixedNow = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	adminP   = access.Principal{UserID: 1, Role: entity.RoleAdmin}
	userP    = access.Principal{UserID: 7, Role: entity.RoleUsuario}
)

// fakeTxRunner ejecuta fn con repositorios mock y registra si hubo commit.
type fakeTxRunner struct {
	movs       *mocks.MovementRepo
	products   *mocks.ProductRepo
	warehouses *mocks.WarehouseRepo
	stock      *mocks.StockRepo
	commits    int
	rollbacks  int
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	stockRepo repository.StockRepository,
) error) error {
	if err := fn(f.movs, f.products, f.warehouses, f.stock); err != nil {
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}

type fixture struct {
	tx       *fakeTxRunner
	users    *mocks.UserRepo
	notifier *mocks.Notifier
	cache    *mocks.ReportCache
	uc       *appinventory.RegisterMovementUseCase
}

func newFixture(t *testing.T, opts ...appinventory.Option) *fixture {
	t.Helper()
	f := &fixture{
		tx: &fakeTxRunner{
			movs:       &mocks.MovementRepo{},
			products:   &mocks.ProductRepo{},
			warehouses: &mocks.WarehouseRepo{},
			stock:      &mocks.StockRepo{},
		},
		users:    &mocks.UserRepo{},
		notifier: &mocks.Notifier{},
		cache:    &mocks.ReportCache{},
	}
	opts = append([]appinventory.Option{
		appinventory.WithClock(func() time.Time { return fixedNow }),
		appinventory.WithReportCache(f.cache),
	}, opts...)
	f.uc = appinventory.NewRegisterMovementUseCase(f.tx, f.users, f.notifier, logger.Nop(), opts...)
	return f
}

// expectHeader simula el INSERT ... RETURNING de la cabecera.
func (f *fixture) expectHeader(id int) {
	f.tx.movs.On("Create", mock.Anything, mock.AnythingOfType("*entity.Movement")).
		Run(func(args mock.Arguments) {
			m := args.Get(1).(*entity.Movement)
			m.ID = id
			m.Date = fixedNow
		}).Return(nil).Once()
}

func salidaAdminPara7() dto.CreateMovementRequest {
	return dto.CreateMovementRequest{
		Tipo:      entity.MovementTypeSalida,
		IDUsuario: 7,
		Lineas: []dto.MovementLineRequest{
			{CodigoAlmacen: 1, CodigoProducto: 100, Cantidad: 3},
			{CodigoAlmacen: 1, CodigoProducto: 200, Lote: "L-2", Cantidad: 1},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_AdminSalidaParaOtroUsuario_OK(t *testing.T) {
	f := newFixture(t)
	f.expectHeader(55)
	f.tx.warehouses.On("ActiveCodes", mock.Anything, []int{1}).Return([]int{1}, nil)
	f.tx.products.On("ActiveCodes", mock.Anything, []int{100, 200}).Return([]int{100, 200}, nil)
	f.tx.movs.On("AddLines", mock.Anything, mock.MatchedBy(func(lines []entity.MovementLine) bool {
		return len(lines) == 2 &&
			lines[0].LineID == 1 && lines[0].ProductCode == 100 && lines[0].Lot == entity.LotNone &&
			lines[1].LineID == 2 && lines[1].ProductCode == 200 && lines[1].Lot == "L-2" &&
			lines[0].MovementID == 55 && lines[1].MovementID == 55
	})).Return(nil)
	f.users.On("GetByID", mock.Anything, 7).Return(&entity.User{ID: 7, Name: "Ana"}, nil)
	f.cache.On("InvalidateReports", mock.Anything).Return(nil)

	out, err := f.uc.Register(context.Background(), adminP, salidaAdminPara7())
	require.NoError(t, err)

	assert.Equal(t, 55, out.IDMov, "el id de cabecera lo asigna el almacenamiento")
	assert.Equal(t, 7, out.IDUsuario)
	assert.Equal(t, "Ana", out.NombreUsuario)
	require.Len(t, out.Lineas, 2)
	assert.Equal(t, 1, out.Lineas[0].IDLinea)
	assert.Equal(t, 2, out.Lineas[1].IDLinea)
	assert.Equal(t, 1, f.tx.commits)
	assert.Equal(t, []string{"Nuevo movimiento registrado: 55 (salida)"}, f.notifier.Sent(),
		"se difunde exactamente un evento tras el commit")
	f.tx.movs.AssertExpectations(t)
	f.cache.AssertExpectations(t)
}

func TestRegister_ProductoInactivo_RollbackSinNotificar(t *testing.T) {
	f := newFixture(t)
	f.expectHeader(56)
	f.tx.warehouses.On("ActiveCodes", mock.Anything, []int{1}).Return([]int{1}, nil)
	f.tx.products.On("ActiveCodes", mock.Anything, []int{100, 200}).Return([]int{100}, nil)

	out, err := f.uc.Register(context.Background(), adminP, salidaAdminPara7())
	require.Error(t, err)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "[200]", "el error nombra el producto inactivo")

	assert.Equal(t, 0, f.tx.commits)
	assert.Equal(t, 1, f.tx.rollbacks)
	f.tx.movs.AssertNotCalled(t, "AddLines", mock.Anything, mock.Anything)
	assert.Empty(t, f.notifier.Sent(), "sin commit no hay notificación")
}

func TestRegister_AlmacenDesconocido_Rollback(t *testing.T) {
	f := newFixture(t)
	f.expectHeader(57)
	f.tx.warehouses.On("ActiveCodes", mock.Anything, []int{1}).Return([]int{}, nil)

	_, err := f.uc.Register(context.Background(), adminP, salidaAdminPara7())
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "almacenes")
	assert.Equal(t, 0, f.tx.commits)
	f.tx.products.AssertNotCalled(t, "ActiveCodes", mock.Anything, mock.Anything)
}

func TestRegister_NoAdminParaOtroUsuario_ForbiddenSinTocarBD(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Register(context.Background(), userP, dto.CreateMovementRequest{
		Tipo: entity.MovementTypeEntrada, IDUsuario: 8,
		Lineas: []dto.MovementLineRequest{{CodigoAlmacen: 1, CodigoProducto: 1, Cantidad: 1}},
	})
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 0, f.tx.commits+f.tx.rollbacks, "no se abre transacción")
	f.tx.movs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_EntradaCaducaHoy_InvalidInput(t *testing.T) {
	f := newFixture(t)
	hoy := dto.NewDate(fixedNow)

	_, err := f.uc.Register(context.Background(), userP, dto.CreateMovementRequest{
		Tipo: entity.MovementTypeEntrada, IDUsuario: 7,
		Lineas: []dto.MovementLineRequest{{CodigoAlmacen: 1, CodigoProducto: 1, FechaCad: &hoy, Cantidad: 1}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	f.tx.movs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_ErrorDeAlmacenamiento_SePropaga(t *testing.T) {
	f := newFixture(t)
	storeErr := errors.Join(domain.ErrStorageUnavailable, errors.New("conexión rechazada"))
	f.tx.movs.On("Create", mock.Anything, mock.Anything).Return(storeErr)

	_, err := f.uc.Register(context.Background(), adminP, salidaAdminPara7())
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.Empty(t, f.notifier.Sent())
}

func TestRegister_NombreDeUsuarioNoResuelto_Desconocido(t *testing.T) {
	f := newFixture(t)
	f.expectHeader(58)
	f.tx.warehouses.On("ActiveCodes", mock.Anything, mock.Anything).Return([]int{1}, nil)
	f.tx.products.On("ActiveCodes", mock.Anything, mock.Anything).Return([]int{100, 200}, nil)
	f.tx.movs.On("AddLines", mock.Anything, mock.Anything).Return(nil)
	f.users.On("GetByID", mock.Anything, 7).Return(nil, errors.New("timeout"))
	f.cache.On("InvalidateReports", mock.Anything).Return(errors.New("redis caído"))

	out, err := f.uc.Register(context.Background(), adminP, salidaAdminPara7())
	require.NoError(t, err, "los fallos posteriores al commit no llegan al llamante")
	assert.Equal(t, "Desconocido", out.NombreUsuario)
	assert.Len(t, f.notifier.Sent(), 1)
}

func TestRegister_CienLineas_OK(t *testing.T) {
	f := newFixture(t)
	f.expectHeader(59)
	req := dto.CreateMovementRequest{Tipo: entity.MovementTypeSalida, IDUsuario: 7}
	for i := 0; i < 100; i++ {
		req.Lineas = append(req.Lineas, dto.MovementLineRequest{CodigoAlmacen: 1, CodigoProducto: 1, Cantidad: 1})
	}
	f.tx.warehouses.On("ActiveCodes", mock.Anything, []int{1}).Return([]int{1}, nil)
	f.tx.products.On("ActiveCodes", mock.Anything, []int{1}).Return([]int{1}, nil)
	f.tx.movs.On("AddLines", mock.Anything, mock.MatchedBy(func(lines []entity.MovementLine) bool {
		for i, l := range lines {
			if l.LineID != i+1 {
				return false
			}
		}
		return len(lines) == 100
	})).Return(nil)
	f.users.On("GetByID", mock.Anything, 7).Return(&entity.User{ID: 7, Name: "Ana"}, nil)
	f.cache.On("InvalidateReports", mock.Anything).Return(nil)

	out, err := f.uc.Register(context.Background(), userP, req)
	require.NoError(t, err)
	assert.Len(t, out.Lineas, 100)
}

func TestRegister_AplicaStock_SalidaInsuficiente_Rollback(t *testing.T) {
	f := newFixture(t, appinventory.WithStockApply(true))
	f.expectHeader(60)
	f.tx.warehouses.On("ActiveCodes", mock.Anything, mock.Anything).Return([]int{1}, nil)
	f.tx.products.On("ActiveCodes", mock.Anything, mock.Anything).Return([]int{100, 200}, nil)
	f.tx.movs.On("AddLines", mock.Anything, mock.Anything).Return(nil)
	f.tx.stock.On("Decrease", mock.Anything, mock.MatchedBy(func(l entity.MovementLine) bool { return l.ProductCode == 100 })).Return(nil)
	f.tx.stock.On("Decrease", mock.Anything, mock.MatchedBy(func(l entity.MovementLine) bool { return l.ProductCode == 200 })).
		Return(domain.ErrInsufficientStock)

	_, err := f.uc.Register(context.Background(), adminP, salidaAdminPara7())
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "stock insuficiente")
	assert.Equal(t, 0, f.tx.commits)
	assert.Empty(t, f.notifier.Sent())
}

func TestRegister_AplicaStock_EntradaSuma(t *testing.T) {
	f := newFixture(t, appinventory.WithStockApply(true))
	f.expectHeader(61)
	req := salidaAdminPara7()
	req.Tipo = entity.MovementTypeEntrada
	f.tx.warehouses.On("ActiveCodes", mock.Anything, mock.Anything).Return([]int{1}, nil)
	f.tx.products.On("ActiveCodes", mock.Anything, mock.Anything).Return([]int{100, 200}, nil)
	f.tx.movs.On("AddLines", mock.Anything, mock.Anything).Return(nil)
	f.tx.stock.On("Increase", mock.Anything, mock.Anything).Return(nil).Twice()
	f.users.On("GetByID", mock.Anything, 7).Return(&entity.User{ID: 7, Name: "Ana"}, nil)
	f.cache.On("InvalidateReports", mock.Anything).Return(nil)

	_, err := f.uc.Register(context.Background(), adminP, req)
	require.NoError(t, err)
	f.tx.stock.AssertNumberOfCalls(t, "Increase", 2)
	assert.Equal(t, 1, f.tx.commits)
}
