package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/duquediazn/tabula-backend/internal/application/analytics"
)

// StockHandler lecturas de stock e informes (protegido).
type StockHandler struct {
	uc *analytics.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *analytics.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// List godoc
// @Summary      Stock por lote; filtros opcionales por almacén y producto en la ruta
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "1..1000"  default(10)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {object}  dto.Paginated[dto.StockResponse]
// @Router       /api/stock [get]
// @Router       /api/stock/almacen/{codigo_almacen} [get]
// @Router       /api/stock/almacen/{codigo_almacen}/producto/{codigo_producto} [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	warehouse, product, err := stockScope(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := pageQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.Context(), warehouse, product, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de líneas de movimiento (los no admin solo ven las suyas)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Paginated[dto.StockHistoryResponse]
// @Router       /api/stock/historial [get]
// @Router       /api/stock/producto/{codigo_producto}/historial [get]
// @Router       /api/stock/almacen/{codigo_almacen}/historial [get]
// @Router       /api/stock/almacen/{codigo_almacen}/producto/{codigo_producto}/historial [get]
func (h *StockHandler) History(c *fiber.Ctx) error {
	warehouse, product, err := stockScope(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := pageQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.History(c.Context(), GetPrincipal(c), warehouse, product, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// stockScope lee codigo_almacen/codigo_producto de la ruta si existen.
func stockScope(c *fiber.Ctx) (warehouse, product *int, err error) {
	if c.Params("codigo_almacen") != "" {
		n, err := intParam(c, "codigo_almacen")
		if err != nil {
			return nil, nil, err
		}
		warehouse = &n
	}
	if c.Params("codigo_producto") != "" {
		n, err := intParam(c, "codigo_producto")
		if err != nil {
			return nil, nil, err
		}
		product = &n
	}
	return warehouse, product, nil
}

// Expiring godoc
// @Summary      Stock que caduca entre hoy+desde y hoy+desde+hasta meses
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        desde  query  int  false  ">= 0"  default(0)
// @Param        hasta  query  int  false  ">= 1"  default(1)
// @Success      200  {object}  dto.Paginated[dto.StockResponse]
// @Router       /api/stock/producto/caducidad [get]
func (h *StockHandler) Expiring(c *fiber.Ctx) error {
	from, err := intQuery(c, "desde", 0)
	if err != nil {
		return writeError(c, err)
	}
	span, err := intQuery(c, "hasta", 1)
	if err != nil {
		return writeError(c, err)
	}
	page, err := pageQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Expiring(c.Context(), from, span, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ProductSummary godoc
// @Summary      Total de un producto por almacén
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        codigo_producto  path  int  true  "Código del producto"
// @Success      200  {object}  dto.Paginated[dto.StockSummaryResponse]
// @Router       /api/stock/producto/{codigo_producto} [get]
func (h *StockHandler) ProductSummary(c *fiber.Ctx) error {
	code, err := intParam(c, "codigo_producto")
	if err != nil {
		return writeError(c, err)
	}
	page, err := pageQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ProductSummary(c.Context(), code, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// WarehousePie godoc
// @Summary      Total por producto dentro de un almacén
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        codigo_almacen  path  int  true  "Código del almacén"
// @Success      200  {array}  dto.StockPieResponse
// @Router       /api/stock/almacen/{codigo_almacen}/detalle [get]
func (h *StockHandler) WarehousePie(c *fiber.Ctx) error {
	code, err := intParam(c, "codigo_almacen")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.WarehousePie(c.Context(), code)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TotalsByWarehouse godoc
// @Summary      Total de unidades por almacén
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockByWarehouseResponse
// @Router       /api/stock/almacenes/detalle [get]
func (h *StockHandler) TotalsByWarehouse(c *fiber.Ctx) error {
	out, err := h.uc.TotalsByWarehouse(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TotalsByCategory godoc
// @Summary      Total de unidades por categoría
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockByCategoryResponse
// @Router       /api/stock/categorias-producto [get]
func (h *StockHandler) TotalsByCategory(c *fiber.Ctx) error {
	out, err := h.uc.TotalsByCategory(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CategoryProducts godoc
// @Summary      Total por producto de una categoría
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id_categoria  path  int  true  "Id de la categoría"
// @Success      200  {array}  dto.StockByProductInCategoryResponse
// @Router       /api/stock/categoria/{id_categoria}/productos [get]
func (h *StockHandler) CategoryProducts(c *fiber.Ctx) error {
	id, err := intParam(c, "id_categoria")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CategoryProducts(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Semaphore godoc
// @Summary      Unidades por tramo de caducidad
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockSemaphoreResponse
// @Router       /api/stock/semaforo [get]
func (h *StockHandler) Semaphore(c *fiber.Ctx) error {
	out, err := h.uc.Semaphore(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AvailableLots godoc
// @Summary      Lotes con stock de un producto en un almacén
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        producto  query  int  true  "Código del producto"
// @Param        almacen   query  int  true  "Código del almacén"
// @Success      200  {array}  dto.AvailableLotResponse
// @Router       /api/stock/lotes-disponibles [get]
func (h *StockHandler) AvailableLots(c *fiber.Ctx) error {
	product, err := intQuery(c, "producto", 0)
	if err != nil {
		return writeError(c, err)
	}
	warehouse, err := intQuery(c, "almacen", 0)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.AvailableLots(c.Context(), product, warehouse)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
