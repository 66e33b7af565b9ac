package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/duquediazn/tabula-backend/internal/application/dto"
	"github.com/duquediazn/tabula-backend/internal/domain"
	"github.com/duquediazn/tabula-backend/internal/domain/access"
	"github.com/duquediazn/tabula-backend/internal/domain/entity"
	invdomain "github.com/duquediazn/tabula-backend/internal/domain/inventory"
	"github.com/duquediazn/tabula-backend/internal/domain/repository"
)

// MovementQueryUseCase lecturas del diario de movimientos.
// Los usuarios no admin solo ven sus propios movimientos.
type MovementQueryUseCase struct {
	movRepo repository.MovementRepository
	now     func() time.Time
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(movRepo repository.MovementRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{movRepo: movRepo, now: time.Now}
}

// List movimientos filtrados y paginados, cada uno con sus líneas.
func (uc *MovementQueryUseCase) List(ctx context.Context, p access.Principal, q dto.MovementListQuery) (*dto.Paginated[dto.MovementResponse], error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	if q.Tipo != "" && !entity.ValidMovementType(q.Tipo) {
		return nil, fmt.Errorf("%w: tipo de movimiento %q no válido", domain.ErrInvalidInput, q.Tipo)
	}
	f := repository.MovementFilter{
		Search: q.Search,
		Type:   q.Tipo,
		From:   q.FechaDesde,
		To:     q.FechaHasta,
		Page:   repository.Page{Limit: q.Limit, Offset: q.Offset},
	}
	if scope := p.OwnerScope(); scope != nil {
		f.UserID = scope
	} else {
		f.UserID = q.UsuarioID
	}

	movs, total, err := uc.movRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(movs))
	for _, m := range movs {
		ids = append(ids, m.ID)
	}
	lines, err := uc.movRepo.LinesByMovementIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		m.Lines = lines[m.ID]
		out = append(out, *toMovementResponse(m))
	}
	page := dto.NewPaginated(out, total, q.PageRequest)
	return &page, nil
}

// LastYear cabeceras de los movimientos de los últimos 12 meses.
func (uc *MovementQueryUseCase) LastYear(ctx context.Context, p access.Principal) ([]dto.MovementGraphResponse, error) {
	now := uc.now()
	to := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
	from := to.AddDate(-1, 0, 0)
	movs, err := uc.movRepo.ListBetween(ctx, from, to, p.OwnerScope())
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementGraphResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovementGraphResponse{IDMov: m.ID, IDUsuario: m.UserID, Fecha: m.Date, Tipo: m.Type})
	}
	return out, nil
}

// Get movimiento por id: ErrNotFound si no existe, ErrForbidden si no es del usuario.
func (uc *MovementQueryUseCase) Get(ctx context.Context, p access.Principal, id int) (*dto.MovementResponse, error) {
	m, err := uc.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	lines, err := uc.movRepo.LinesByMovementIDs(ctx, []int{m.ID})
	if err != nil {
		return nil, err
	}
	m.Lines = lines[m.ID]
	return toMovementResponse(m), nil
}

// Lines líneas de un movimiento con nombres de producto y almacén.
func (uc *MovementQueryUseCase) Lines(ctx context.Context, p access.Principal, id int, page dto.PageRequest) (*dto.Paginated[dto.MovementLineDetailResponse], error) {
	if err := page.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	if _, err := uc.load(ctx, p, id); err != nil {
		return nil, err
	}
	details, total, err := uc.movRepo.ListLinesDetailed(ctx, id, repository.Page{Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementLineDetailResponse, 0, len(details))
	for _, d := range details {
		out = append(out, dto.MovementLineDetailResponse{
			MovementLineResponse: toLineResponse(d.MovementLine),
			NombreProducto:       d.ProductName,
			NombreAlmacen:        d.WarehouseName,
		})
	}
	res := dto.NewPaginated(out, total, page)
	return &res, nil
}

// SummaryByType recuento de movimientos por tipo (siempre Entrada y Salida, aunque sean 0).
func (uc *MovementQueryUseCase) SummaryByType(ctx context.Context, p access.Principal) ([]dto.MovementSummaryResponse, error) {
	counts, err := uc.movRepo.CountByType(ctx, p.OwnerScope())
	if err != nil {
		return nil, err
	}
	return []dto.MovementSummaryResponse{
		{Tipo: "Entrada", Cantidad: counts[entity.MovementTypeEntrada]},
		{Tipo: "Salida", Cantidad: counts[entity.MovementTypeSalida]},
	}, nil
}

// Detail movimiento con líneas detalladas (todas), para el comprobante PDF.
func (uc *MovementQueryUseCase) Detail(ctx context.Context, p access.Principal, id int) (*entity.Movement, []entity.MovementLineDetail, error) {
	m, err := uc.load(ctx, p, id)
	if err != nil {
		return nil, nil, err
	}
	details, _, err := uc.movRepo.ListLinesDetailed(ctx, id, repository.Page{Limit: invdomain.MaxMovementLines})
	if err != nil {
		return nil, nil, err
	}
	return m, details, nil
}

func (uc *MovementQueryUseCase) load(ctx context.Context, p access.Principal, id int) (*entity.Movement, error) {
	m, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: movimiento %d", domain.ErrNotFound, id)
	}
	if err := access.Authorize(p, m.UserID, "no tienes permiso para ver este movimiento"); err != nil {
		return nil, err
	}
	return m, nil
}
