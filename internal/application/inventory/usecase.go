package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/duquediazn/tabula-backend/internal/application/dto"
	"github.com/duquediazn/tabula-backend/internal/application/ports"
	"github.com/duquediazn/tabula-backend/internal/domain"
	"github.com/duquediazn/tabula-backend/internal/domain/access"
	"github.com/duquediazn/tabula-backend/internal/domain/entity"
	invdomain "github.com/duquediazn/tabula-backend/internal/domain/inventory"
	"github.com/duquediazn/tabula-backend/internal/domain/repository"
	"github.com/duquediazn/tabula-backend/pkg/logger"
)

// unknownUserName nombre devuelto cuando no se puede resolver el usuario tras el commit.
const unknownUserName = "Desconocido"

// RegisterMovementUseCase registra movimientos (cabecera + líneas) de forma transaccional:
// valida, comprueba que almacenes y productos estén activos dentro de la misma tx,
// inserta las líneas 1..N y, solo tras el Commit, notifica a los observadores.
type RegisterMovementUseCase struct {
	txRunner   TxRunner
	userRepo   repository.UserRepository
	notifier   ports.Notifier
	cache      ports.ReportCache
	log        *logger.Logger
	applyStock bool
	now        func() time.Time
}

// Option configura el caso de uso.
type Option func(*RegisterMovementUseCase)

// WithStockApply aplica los deltas de stock dentro de la transacción del movimiento.
func WithStockApply(on bool) Option {
	return func(uc *RegisterMovementUseCase) { uc.applyStock = on }
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *RegisterMovementUseCase) { uc.now = now }
}

// WithReportCache caché de reportes a invalidar tras cada movimiento.
func WithReportCache(c ports.ReportCache) Option {
	return func(uc *RegisterMovementUseCase) { uc.cache = c }
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	userRepo repository.UserRepository,
	notifier ports.Notifier,
	log *logger.Logger,
	opts ...Option,
) *RegisterMovementUseCase {
	uc := &RegisterMovementUseCase{
		txRunner: txRunner,
		userRepo: userRepo,
		notifier: notifier,
		cache:    ports.NopReportCache{},
		log:      log.Component("movimientos"),
		now:      time.Now,
	}
	for _, o := range opts {
		o(uc)
	}
	return uc
}

// Register valida y persiste el movimiento. Errores posibles (envueltos):
// ErrForbidden, ErrInvalidInput, ErrIntegrityConflict, ErrStorageUnavailable.
func (uc *RegisterMovementUseCase) Register(ctx context.Context, p access.Principal, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	input := toMovementInput(in)
	if err := invdomain.ValidateMovement(input, p, uc.now()); err != nil {
		return nil, err
	}
	warehouseCodes, productCodes := invdomain.DistinctCodes(input.Lines)

	var mov *entity.Movement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		warehouseRepo repository.WarehouseRepository,
		stockRepo repository.StockRepository,
	) error {
		m := &entity.Movement{Type: input.Type, UserID: input.UserID}
		if err := movRepo.Create(ctx, m); err != nil {
			return err
		}

		found, err := warehouseRepo.ActiveCodes(ctx, warehouseCodes)
		if err != nil {
			return err
		}
		if missing := invdomain.Missing(warehouseCodes, found); len(missing) > 0 {
			return fmt.Errorf("%w: los siguientes almacenes no existen o están inactivos: %v", domain.ErrInvalidInput, missing)
		}
		found, err = productRepo.ActiveCodes(ctx, productCodes)
		if err != nil {
			return err
		}
		if missing := invdomain.Missing(productCodes, found); len(missing) > 0 {
			return fmt.Errorf("%w: los siguientes productos no existen o están inactivos: %v", domain.ErrInvalidInput, missing)
		}

		lines := invdomain.BuildLines(m.ID, input.Lines)
		if err := movRepo.AddLines(ctx, lines); err != nil {
			return err
		}
		if uc.applyStock {
			if err := applyStock(ctx, stockRepo, m.Type, lines); err != nil {
				return err
			}
		}
		m.Lines = lines
		mov = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.afterCommit(ctx, mov)
	mov.UserName = uc.userName(ctx, mov.UserID)
	return toMovementResponse(mov), nil
}

func applyStock(ctx context.Context, stockRepo repository.StockRepository, movType string, lines []entity.MovementLine) error {
	for _, l := range lines {
		var err error
		if movType == entity.MovementTypeEntrada {
			err = stockRepo.Increase(ctx, l)
		} else {
			err = stockRepo.Decrease(ctx, l)
		}
		if errors.Is(err, domain.ErrInsufficientStock) {
			return fmt.Errorf("%w: stock insuficiente para el producto %d, lote '%s', en el almacén %d",
				domain.ErrInvalidInput, l.ProductCode, l.Lot, l.WarehouseCode)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// afterCommit efectos posteriores al commit; sus fallos se registran y no llegan al llamante.
func (uc *RegisterMovementUseCase) afterCommit(ctx context.Context, m *entity.Movement) {
	uc.notifier.Broadcast(fmt.Sprintf("Nuevo movimiento registrado: %d (%s)", m.ID, m.Type))
	if err := uc.cache.InvalidateReports(ctx); err != nil {
		uc.log.Warn().Err(err).Int("id_mov", m.ID).Msg("invalidar caché de reportes")
	}
}

func (uc *RegisterMovementUseCase) userName(ctx context.Context, id int) string {
	u, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		uc.log.Warn().Err(err).Int("id_usuario", id).Msg("no se pudo resolver el nombre de usuario")
		return unknownUserName
	}
	if u == nil {
		return unknownUserName
	}
	return u.Name
}
