package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/duquediazn/tabula-backend/internal/application/dto"
	"github.com/duquediazn/tabula-backend/internal/application/ports"
	"github.com/duquediazn/tabula-backend/internal/domain"
	"github.com/duquediazn/tabula-backend/internal/domain/access"
	"github.com/duquediazn/tabula-backend/internal/domain/entity"
	"github.com/duquediazn/tabula-backend/internal/domain/repository"
	"github.com/duquediazn/tabula-backend/pkg/logger"
)

const maxWarehouseDescLen = 100

// WarehouseUseCase casos de uso para almacenes.
type WarehouseUseCase struct {
	repo  repository.WarehouseRepository
	cache ports.ReportCache
	log   *logger.Logger
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository, cache ports.ReportCache, log *logger.Logger) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, cache: cache, log: log}
}

// Create crea un almacén (activo por defecto). Solo admin.
func (uc *WarehouseUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if err := access.RequireAdmin(p); err != nil {
		return nil, err
	}
	desc := strings.TrimSpace(in.Descripcion)
	if err := validateWarehouseDesc(desc); err != nil {
		return nil, err
	}
	w := &entity.Warehouse{Description: desc, Active: true}
	if in.Activo != nil {
		w.Active = *in.Activo
	}
	if err := uc.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return toWarehouseResponse(w), nil
}

// GetByCode obtiene un almacén. Un usuario no admin no puede ver almacenes inactivos.
func (uc *WarehouseUseCase) GetByCode(ctx context.Context, p access.Principal, code int) (*dto.WarehouseResponse, error) {
	w, err := uc.load(ctx, code)
	if err != nil {
		return nil, err
	}
	if !w.Active && !p.IsAdmin() {
		return nil, fmt.Errorf("%w: no tienes permiso para ver este almacén", domain.ErrForbidden)
	}
	return toWarehouseResponse(w), nil
}

// List lista almacenes por descripción y estado.
func (uc *WarehouseUseCase) List(ctx context.Context, q dto.WarehouseListQuery) (*dto.Paginated[dto.WarehouseResponse], error) {
	if err := validatePage(q.PageRequest); err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, repository.WarehouseFilter{
		Search: strings.TrimSpace(q.Search),
		Active: q.Activo,
		Page:   toPage(q.PageRequest),
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		out = append(out, *toWarehouseResponse(w))
	}
	res := dto.NewPaginated(out, total, q.PageRequest)
	return &res, nil
}

// Update actualiza un almacén. No se puede desactivar si contiene stock. Solo admin.
func (uc *WarehouseUseCase) Update(ctx context.Context, p access.Principal, code int, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if err := access.RequireAdmin(p); err != nil {
		return nil, err
	}
	w, err := uc.load(ctx, code)
	if err != nil {
		return nil, err
	}
	if in.Descripcion != nil {
		desc := strings.TrimSpace(*in.Descripcion)
		if err := validateWarehouseDesc(desc); err != nil {
			return nil, err
		}
		w.Description = desc
	}
	if in.Activo != nil {
		if w.Active && !*in.Activo {
			hasStock, err := uc.repo.HasStock(ctx, code)
			if err != nil {
				return nil, err
			}
			if hasStock {
				return nil, fmt.Errorf("%w: no se puede desactivar un almacén con stock", domain.ErrInvalidInput)
			}
		}
		w.Active = *in.Activo
	}
	if err := uc.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	invalidateReports(ctx, uc.cache, uc.log)
	return toWarehouseResponse(w), nil
}

// SetState activa o desactiva varios almacenes; omite inexistentes, sin cambio y con stock al desactivar.
func (uc *WarehouseUseCase) SetState(ctx context.Context, p access.Principal, in dto.BulkStateRequest) (*dto.BulkStateResponse, error) {
	if err := access.RequireAdmin(p); err != nil {
		return nil, err
	}
	if len(in.Codigos) == 0 {
		return nil, fmt.Errorf("%w: debe indicar al menos un almacén", domain.ErrInvalidInput)
	}
	res := &dto.BulkStateResponse{Actualizados: []int{}, Omitidos: []int{}}
	for _, code := range in.Codigos {
		w, err := uc.repo.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if w == nil || w.Active == in.Activo {
			res.Omitidos = append(res.Omitidos, code)
			continue
		}
		if !in.Activo {
			hasStock, err := uc.repo.HasStock(ctx, code)
			if err != nil {
				return nil, err
			}
			if hasStock {
				res.Omitidos = append(res.Omitidos, code)
				continue
			}
		}
		w.Active = in.Activo
		if err := uc.repo.Update(ctx, w); err != nil {
			return nil, err
		}
		res.Actualizados = append(res.Actualizados, code)
	}
	return res, nil
}

// Delete elimina un almacén sin movimientos. Solo admin.
func (uc *WarehouseUseCase) Delete(ctx context.Context, p access.Principal, code int) error {
	if err := access.RequireAdmin(p); err != nil {
		return err
	}
	if _, err := uc.load(ctx, code); err != nil {
		return err
	}
	used, err := uc.repo.HasMovements(ctx, code)
	if err != nil {
		return err
	}
	if used {
		return fmt.Errorf("%w: el almacén tiene movimientos asociados, desactívalo en su lugar", domain.ErrInvalidInput)
	}
	if err := uc.repo.Delete(ctx, code); err != nil {
		return err
	}
	invalidateReports(ctx, uc.cache, uc.log)
	return nil
}

func (uc *WarehouseUseCase) load(ctx context.Context, code int) (*entity.Warehouse, error) {
	w, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("%w: almacén %d", domain.ErrNotFound, code)
	}
	return w, nil
}

func validateWarehouseDesc(desc string) error {
	if desc == "" || len([]rune(desc)) > maxWarehouseDescLen {
		return fmt.Errorf("%w: la descripción es obligatoria (máximo %d caracteres)", domain.ErrInvalidInput, maxWarehouseDescLen)
	}
	return nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{Codigo: w.Code, Descripcion: w.Description, Activo: w.Active}
}
