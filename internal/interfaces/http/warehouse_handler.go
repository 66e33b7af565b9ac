package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/duquediazn/tabula-backend/internal/application/dto"
	"github.com/duquediazn/tabula-backend/internal/application/usecase"
)

// WarehouseHandler maneja las peticiones HTTP para almacenes (protegido).
type WarehouseHandler struct {
	uc *usecase.WarehouseUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *usecase.WarehouseUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear almacén (admin)
// @Tags         almacenes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWarehouseRequest  true  "descripcion"
// @Success      201   {object}  dto.WarehouseResponse
// @Router       /api/almacenes [post]
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar almacenes
// @Tags         almacenes
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "descripción"
// @Param        estado  query  bool    false  "activo"
// @Success      200  {object}  dto.Paginated[dto.WarehouseResponse]
// @Router       /api/almacenes [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	page, err := pageQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	active, err := optBoolQuery(c, "estado")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.Context(), dto.WarehouseListQuery{Search: c.Query("search"), Activo: active, PageRequest: page})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener almacén por código
// @Tags         almacenes
// @Security     Bearer
// @Produce      json
// @Param        codigo  path  int  true  "Código del almacén"
// @Success      200  {object}  dto.WarehouseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/almacenes/{codigo} [get]
func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	code, err := intParam(c, "codigo")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByCode(c.Context(), GetPrincipal(c), code)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar almacén (admin)
// @Tags         almacenes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        codigo  path  int  true  "Código del almacén"
// @Param        body    body  dto.UpdateWarehouseRequest  true  "descripcion, activo"
// @Success      200  {object}  dto.WarehouseResponse
// @Router       /api/almacenes/{codigo} [put]
func (h *WarehouseHandler) Update(c *fiber.Ctx) error {
	code, err := intParam(c, "codigo")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetPrincipal(c), code, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetState godoc
// @Summary      Activar/desactivar varios almacenes (admin)
// @Tags         almacenes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkStateRequest  true  "codigos, activo"
// @Success      200   {object}  dto.BulkStateResponse
// @Router       /api/almacenes/estado-multiple [put]
func (h *WarehouseHandler) SetState(c *fiber.Ctx) error {
	var in dto.BulkStateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SetState(c.Context(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar almacén sin movimientos (admin)
// @Tags         almacenes
// @Security     Bearer
// @Produce      json
// @Param        codigo  path  int  true  "Código del almacén"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/almacenes/{codigo} [delete]
func (h *WarehouseHandler) Delete(c *fiber.Ctx) error {
	code, err := intParam(c, "codigo")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.Context(), GetPrincipal(c), code); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "almacén eliminado"})
}
