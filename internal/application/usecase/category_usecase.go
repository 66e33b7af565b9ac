package usecase

import (
	"context"
	"fmt"

	"github.com/duquediazn/tabula-backend/internal/application/dto"
	"github.com/duquediazn/tabula-backend/internal/application/ports"
	"github.com/duquediazn/tabula-backend/internal/domain"
	"github.com/duquediazn/tabula-backend/internal/domain/access"
	"github.com/duquediazn/tabula-backend/internal/domain/entity"
	"github.com/duquediazn/tabula-backend/internal/domain/repository"
	"github.com/duquediazn/tabula-backend/pkg/logger"
	"github.com/duquediazn/tabula-backend/pkg/textnorm"
)

const maxCategoryNameLen = 50

// CategoryUseCase casos de uso para categorías de producto.
type CategoryUseCase struct {
	repo  repository.CategoryRepository
	cache ports.ReportCache
	log   *logger.Logger
}

func NewCategoryUseCase(repo repository.CategoryRepository, cache ports.ReportCache, log *logger.Logger) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, cache: cache, log: log}
}

// List categorías paginadas (cualquier usuario autenticado).
func (uc *CategoryUseCase) List(ctx context.Context, q dto.PageRequest) (*dto.Paginated[dto.CategoryResponse], error) {
	if err := validatePage(q); err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, toPage(q))
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCategoryResponse(c))
	}
	res := dto.NewPaginated(out, total, q)
	return &res, nil
}

// Create crea una categoría con el nombre normalizado. Solo admin.
func (uc *CategoryUseCase) Create(ctx context.Context, p access.Principal, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := access.RequireAdmin(p); err != nil {
		return nil, err
	}
	name, err := uc.uniqueName(ctx, in.Nombre, 0)
	if err != nil {
		return nil, err
	}
	c := &entity.Category{Name: name}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	out := toCategoryResponse(c)
	return &out, nil
}

// Update renombra una categoría. Solo admin.
func (uc *CategoryUseCase) Update(ctx context.Context, p access.Principal, id int, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := access.RequireAdmin(p); err != nil {
		return nil, err
	}
	c, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	name, err := uc.uniqueName(ctx, in.Nombre, id)
	if err != nil {
		return nil, err
	}
	c.Name = name
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	invalidateReports(ctx, uc.cache, uc.log)
	out := toCategoryResponse(c)
	return &out, nil
}

// Delete elimina una categoría sin productos asociados. Solo admin.
func (uc *CategoryUseCase) Delete(ctx context.Context, p access.Principal, id int) error {
	if err := access.RequireAdmin(p); err != nil {
		return err
	}
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	used, err := uc.repo.HasProducts(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return fmt.Errorf("%w: la categoría tiene productos asociados", domain.ErrInvalidInput)
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *CategoryUseCase) load(ctx context.Context, id int) (*entity.Category, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: categoría %d", domain.ErrNotFound, id)
	}
	return c, nil
}

func (uc *CategoryUseCase) uniqueName(ctx context.Context, raw string, selfID int) (string, error) {
	name := textnorm.Category(raw)
	if name == "" || len([]rune(name)) > maxCategoryNameLen {
		return "", fmt.Errorf("%w: el nombre de la categoría es obligatorio (máximo %d caracteres)", domain.ErrInvalidInput, maxCategoryNameLen)
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return "", err
	}
	if existing != nil && existing.ID != selfID {
		return "", fmt.Errorf("%w: ya existe la categoría %s", domain.ErrInvalidInput, name)
	}
	return name, nil
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Nombre: c.Name}
}
