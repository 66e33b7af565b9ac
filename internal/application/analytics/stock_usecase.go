// Package analytics contiene los casos de uso de consulta del stock:
// listados por lote, totales agregados, caducidades e historial.
package analytics

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
	"github.com/duquediazn/tabula-backend/internal/domain/repository"
	"github.com/duquediazn/tabula-backend/pkg/logger"
)

// Claves de caché de los reportes agregados.
const (
	cacheKeySemaphore  = "reports:stock:semaforo:%s"
	cacheKeyWarehouses = "reports:stock:almacenes"
	cacheKeyCategories = "reports:stock:categorias"
)

// StockUseCase consultas read-only sobre el libro de stock.
// Los agregados globales se cachean; la caché se invalida tras cada movimiento.
type StockUseCase struct {
	stockRepo repository.StockRepository
	cache     ports.ReportCache
	log       *logger.Logger
	now       func() time.Time
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(stockRepo repository.StockRepository, cache ports.ReportCache, log *logger.Logger) *StockUseCase {
	if cache == nil {
		cache = ports.NopReportCache{}
	}
	return &StockUseCase{stockRepo: stockRepo, cache: cache, log: log.Component("stock"), now: time.Now}
}

// List stock por lote, opcionalmente filtrado por almacén y/o producto.
func (uc *StockUseCase) List(ctx context.Context, warehouseCode, productCode *int, page dto.PageRequest) (*dto.Paginated[dto.StockResponse], error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}
	rows, total, err := uc.stockRepo.List(ctx, repository.StockFilter{
		WarehouseCode: warehouseCode,
		ProductCode:   productCode,
		Page:          toPage(page),
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewPaginated(toStockResponses(rows), total, page)
	return &out, nil
}

// Expiring stock con fecha_cad en (hoy+desde meses, hoy+desde+hasta meses].
func (uc *StockUseCase) Expiring(ctx context.Context, fromMonths, spanMonths int, page dto.PageRequest) (*dto.Paginated[dto.StockResponse], error) {
	if fromMonths < 0 || spanMonths < 1 {
		return nil, fmt.Errorf("%w: desde debe ser >= 0 y hasta >= 1", domain.ErrInvalidInput)
	}
	if err := validatePage(page); err != nil {
		return nil, err
	}
	from := AddMonths(today(uc.now()), fromMonths)
	to := AddMonths(from, spanMonths)
	rows, total, err := uc.stockRepo.Expiring(ctx, from, to, toPage(page))
	if err != nil {
		return nil, err
	}
	out := dto.NewPaginated(toStockResponses(rows), total, page)
	return &out, nil
}

// ProductSummary total de un producto en cada almacén.
func (uc *StockUseCase) ProductSummary(ctx context.Context, productCode int, page dto.PageRequest) (*dto.Paginated[dto.StockSummaryResponse], error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}
	rows, total, err := uc.stockRepo.ProductByWarehouse(ctx, productCode, toPage(page))
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockSummaryResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.StockSummaryResponse{
			CodigoProducto: productCode,
			CodigoAlmacen:  r.Key,
			NombreAlmacen:  r.Name,
			TotalCantidad:  r.Quantity,
		})
	}
	out := dto.NewPaginated(items, total, page)
	return &out, nil
}

// WarehousePie total por producto dentro de un almacén.
func (uc *StockUseCase) WarehousePie(ctx context.Context, warehouseCode int) ([]dto.StockPieResponse, error) {
	rows, err := uc.stockRepo.WarehouseByProduct(ctx, warehouseCode)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockPieResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StockPieResponse{CodigoProducto: r.Key, NombreProducto: r.Name, TotalCantidad: r.Quantity})
	}
	return out, nil
}

// TotalsByWarehouse total de unidades por almacén (cacheado).
func (uc *StockUseCase) TotalsByWarehouse(ctx context.Context) ([]dto.StockByWarehouseResponse, error) {
	var out []dto.StockByWarehouseResponse
	if uc.cached(ctx, cacheKeyWarehouses, &out) {
		return out, nil
	}
	rows, err := uc.stockRepo.TotalsByWarehouse(ctx)
	if err != nil {
		return nil, err
	}
	out = make([]dto.StockByWarehouseResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StockByWarehouseResponse{CodigoAlmacen: r.Key, NombreAlmacen: r.Name, TotalCantidad: r.Quantity})
	}
	uc.store(ctx, cacheKeyWarehouses, out)
	return out, nil
}

// TotalsByCategory total de unidades por categoría (cacheado).
func (uc *StockUseCase) TotalsByCategory(ctx context.Context) ([]dto.StockByCategoryResponse, error) {
	var out []dto.StockByCategoryResponse
	if uc.cached(ctx, cacheKeyCategories, &out) {
		return out, nil
	}
	rows, err := uc.stockRepo.TotalsByCategory(ctx)
	if err != nil {
		return nil, err
	}
	out = make([]dto.StockByCategoryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StockByCategoryResponse{IDCategoria: r.Key, NombreCategoria: r.Name, CantidadTotal: r.Quantity})
	}
	uc.store(ctx, cacheKeyCategories, out)
	return out, nil
}

// CategoryProducts total por producto de una categoría.
func (uc *StockUseCase) CategoryProducts(ctx context.Context, categoryID int) ([]dto.StockByProductInCategoryResponse, error) {
	rows, err := uc.stockRepo.CategoryProducts(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockByProductInCategoryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StockByProductInCategoryResponse{CodigoProducto: r.Key, NombreProducto: r.Name, CantidadTotal: r.Quantity})
	}
	return out, nil
}

// AvailableLots lotes con stock > 0 de un producto en un almacén.
func (uc *StockUseCase) AvailableLots(ctx context.Context, productCode, warehouseCode int) ([]dto.AvailableLotResponse, error) {
	if productCode <= 0 || warehouseCode <= 0 {
		return nil, fmt.Errorf("%w: producto y almacen son obligatorios", domain.ErrInvalidInput)
	}
	rows, err := uc.stockRepo.AvailableLots(ctx, productCode, warehouseCode)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AvailableLotResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.AvailableLotResponse{Lote: r.Lot, FechaCad: dto.DatePtr(r.ExpiryDate), Cantidad: r.Quantity})
	}
	return out, nil
}

// History líneas de movimiento como historial de stock; un usuario no admin solo ve las suyas.
func (uc *StockUseCase) History(ctx context.Context, p access.Principal, warehouseCode, productCode *int, page dto.PageRequest) (*dto.Paginated[dto.StockHistoryResponse], error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}
	rows, total, err := uc.stockRepo.History(ctx, repository.HistoryFilter{
		WarehouseCode: warehouseCode,
		ProductCode:   productCode,
		UserID:        p.OwnerScope(),
		Page:          toPage(page),
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockHistoryResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.StockHistoryResponse{
			IDMovimiento:   r.MovementID,
			Fecha:          r.Date,
			Tipo:           r.Type,
			CodigoAlmacen:  r.WarehouseCode,
			CodigoProducto: r.ProductCode,
			SKUProducto:    r.SKU,
			Lote:           r.Lot,
			Cantidad:       r.Quantity,
			Usuario:        r.UserName,
		})
	}
	out := dto.NewPaginated(items, total, page)
	return &out, nil
}

// cached lee de caché; cualquier fallo distinto de miss se registra y se trata como miss.
func (uc *StockUseCase) cached(ctx context.Context, key string, dest any) bool {
	err := uc.cache.Get(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, ports.ErrCacheMiss) {
		uc.log.Warn().Err(err).Str("key", key).Msg("lectura de caché")
	}
	return false
}

func (uc *StockUseCase) store(ctx context.Context, key string, v any) {
	if err := uc.cache.Set(ctx, key, v); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("escritura de caché")
	}
}

func validatePage(p dto.PageRequest) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	return nil
}

func toPage(p dto.PageRequest) repository.Page {
	return repository.Page{Limit: p.Limit, Offset: p.Offset}
}

func toStockResponses(rows []entity.StockView) []dto.StockResponse {
	out := make([]dto.StockResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StockResponse{
			CodigoAlmacen:  r.WarehouseCode,
			NombreAlmacen:  r.WarehouseName,
			CodigoProducto: r.ProductCode,
			NombreProducto: r.ProductName,
			SKU:            r.SKU,
			Lote:           r.Lot,
			FechaCad:       dto.DatePtr(r.ExpiryDate),
			Cantidad:       r.Quantity,
		})
	}
	return out
}
