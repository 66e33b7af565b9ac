package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/duquediazn/tabula-backend/internal/application/dto"
	"github.com/duquediazn/tabula-backend/internal/domain"
	"github.com/duquediazn/tabula-backend/internal/domain/access"
	"github.com/duquediazn/tabula-backend/internal/domain/entity"
	"github.com/duquediazn/tabula-backend/internal/domain/repository"
)

var skuPattern = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

const maxProductNameLen = 100

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía movimientos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crea un nuevo producto activo. Solo admin.
func (uc *ProductUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := access.RequireAdmin(p); err != nil {
		return nil, err
	}
	sku := strings.TrimSpace(in.SKU)
	name := strings.TrimSpace(in.NombreCorto)
	if err := validateProductFields(sku, name); err != nil {
		return nil, err
	}
	if err := uc.ensureSKUFree(ctx, sku, 0); err != nil {
		return nil, err
	}
	category, err := uc.ensureCategory(ctx, in.IDCategoria)
	if err != nil {
		return nil, err
	}
	product := &entity.Product{
		SKU:          sku,
		ShortName:    name,
		Description:  in.Descripcion,
		CategoryID:   in.IDCategoria,
		Active:       true,
		CategoryName: category.Name,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByCode obtiene un producto. Un usuario no admin no puede ver productos inactivos.
func (uc *ProductUseCase) GetByCode(ctx context.Context, p access.Principal, code int) (*dto.ProductResponse, error) {
	product, err := uc.load(ctx, code)
	if err != nil {
		return nil, err
	}
	if !product.Active && !p.IsAdmin() {
		return nil, fmt.Errorf("%w: no tienes permiso para ver este producto", domain.ErrForbidden)
	}
	return toProductResponse(product), nil
}

// List lista productos. El filtro de estado solo lo usa un admin; el resto ve solo activos.
func (uc *ProductUseCase) List(ctx context.Context, p access.Principal, q dto.ProductListQuery) (*dto.Paginated[dto.ProductResponse], error) {
	if err := validatePage(q.PageRequest); err != nil {
		return nil, err
	}
	f := repository.ProductFilter{
		Search:     strings.TrimSpace(q.Search),
		CategoryID: q.IDCategoria,
		Active:     q.Activo,
		Page:       toPage(q.PageRequest),
	}
	if !p.IsAdmin() {
		active := true
		f.Active = &active
	}
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, product := range list {
		out = append(out, *toProductResponse(product))
	}
	res := dto.NewPaginated(out, total, q.PageRequest)
	return &res, nil
}

// Update actualiza un producto. Cualquier usuario autenticado; activo solo lo cambia un admin.
func (uc *ProductUseCase) Update(ctx context.Context, p access.Principal, code int, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.load(ctx, code)
	if err != nil {
		return nil, err
	}
	if in.Activo != nil && !p.IsAdmin() {
		return nil, fmt.Errorf("%w: solo un administrador puede cambiar el estado de un producto", domain.ErrForbidden)
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku != product.SKU {
			if err := uc.ensureSKUFree(ctx, sku, code); err != nil {
				return nil, err
			}
		}
		product.SKU = sku
	}
	if in.NombreCorto != nil {
		product.ShortName = strings.TrimSpace(*in.NombreCorto)
	}
	if err := validateProductFields(product.SKU, product.ShortName); err != nil {
		return nil, err
	}
	if in.Descripcion != nil {
		product.Description = in.Descripcion
	}
	if in.IDCategoria != nil && *in.IDCategoria != product.CategoryID {
		category, err := uc.ensureCategory(ctx, *in.IDCategoria)
		if err != nil {
			return nil, err
		}
		product.CategoryID = category.ID
		product.CategoryName = category.Name
	}
	if in.Activo != nil {
		product.Active = *in.Activo
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// SetState activa o desactiva varios productos. Se omiten los inexistentes, los que ya
// están en ese estado y, al desactivar, los que aún tienen stock.
func (uc *ProductUseCase) SetState(ctx context.Context, p access.Principal, in dto.BulkStateRequest) (*dto.BulkStateResponse, error) {
	if err := access.RequireAdmin(p); err != nil {
		return nil, err
	}
	if len(in.Codigos) == 0 {
		return nil, fmt.Errorf("%w: debe indicar al menos un producto", domain.ErrInvalidInput)
	}
	res := &dto.BulkStateResponse{Actualizados: []int{}, Omitidos: []int{}}
	for _, code := range in.Codigos {
		product, err := uc.repo.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if product == nil || product.Active == in.Activo {
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
		product.Active = in.Activo
		if err := uc.repo.Update(ctx, product); err != nil {
			return nil, err
		}
		res.Actualizados = append(res.Actualizados, code)
	}
	return res, nil
}

// Delete elimina un producto sin movimientos. Solo admin.
func (uc *ProductUseCase) Delete(ctx context.Context, p access.Principal, code int) error {
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
		return fmt.Errorf("%w: el producto tiene movimientos asociados, desactívalo en su lugar", domain.ErrInvalidInput)
	}
	return uc.repo.Delete(ctx, code)
}

func (uc *ProductUseCase) load(ctx context.Context, code int) (*entity.Product, error) {
	product, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, code)
	}
	return product, nil
}

func (uc *ProductUseCase) ensureSKUFree(ctx context.Context, sku string, selfCode int) error {
	existing, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return err
	}
	if existing != nil && existing.Code != selfCode {
		return fmt.Errorf("%w: ya existe un producto con SKU %s", domain.ErrInvalidInput, sku)
	}
	return nil
}

func (uc *ProductUseCase) ensureCategory(ctx context.Context, id int) (*entity.Category, error) {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: la categoría %d no existe", domain.ErrInvalidInput, id)
	}
	return category, nil
}

func validateProductFields(sku, name string) error {
	if !skuPattern.MatchString(sku) {
		return fmt.Errorf("%w: el SKU debe tener entre 3 y 20 caracteres en mayúsculas o dígitos", domain.ErrInvalidInput)
	}
	if name == "" || len([]rune(name)) > maxProductNameLen {
		return fmt.Errorf("%w: el nombre corto es obligatorio (máximo %d caracteres)", domain.ErrInvalidInput, maxProductNameLen)
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		Codigo:          p.Code,
		SKU:             p.SKU,
		NombreCorto:     p.ShortName,
		Descripcion:     p.Description,
		IDCategoria:     p.CategoryID,
		NombreCategoria: p.CategoryName,
		Activo:          p.Active,
	}
}
