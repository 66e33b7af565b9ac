package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/duquediazn/tabula-backend/internal/application/dto"
	"github.com/duquediazn/tabula-backend/internal/application/inventory"
	"github.com/duquediazn/tabula-backend/internal/application/ports"
)

// MovementHandler maneja las peticiones HTTP de movimientos (protegido).
type MovementHandler struct {
	register *inventory.RegisterMovementUseCase
	query    *inventory.MovementQueryUseCase
	voucher  ports.VoucherGenerator
}

// NewMovementHandler construye el handler.
func NewMovementHandler(register *inventory.RegisterMovementUseCase, query *inventory.MovementQueryUseCase, voucher ports.VoucherGenerator) *MovementHandler {
	return &MovementHandler{register: register, query: query, voucher: voucher}
}

// Create godoc
// @Summary      Registrar movimiento (cabecera + líneas) en una transacción
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "tipo, id_usuario, lineas"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/movimientos [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido: "+err.Error())
	}
	out, err := h.register.Register(c.Context(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos (los no admin solo ven los suyos)
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        search       query  string  false  "nombre de usuario"
// @Param        tipo         query  string  false  "entrada | salida"
// @Param        fecha_desde  query  string  false  "YYYY-MM-DD"
// @Param        fecha_hasta  query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        usuario_id   query  int     false  "solo admin"
// @Param        limit        query  int     false  "1..1000"  default(10)
// @Param        offset       query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.Paginated[dto.MovementResponse]
// @Router       /api/movimientos [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	q, err := movementListQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.query.List(c.Context(), GetPrincipal(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func movementListQuery(c *fiber.Ctx) (dto.MovementListQuery, error) {
	page, err := pageQuery(c)
	if err != nil {
		return dto.MovementListQuery{}, err
	}
	from, err := optDateQuery(c, "fecha_desde", false)
	if err != nil {
		return dto.MovementListQuery{}, err
	}
	to, err := optDateQuery(c, "fecha_hasta", true)
	if err != nil {
		return dto.MovementListQuery{}, err
	}
	userID, err := optIntQuery(c, "usuario_id")
	if err != nil {
		return dto.MovementListQuery{}, err
	}
	return dto.MovementListQuery{
		Search:      c.Query("search"),
		Tipo:        c.Query("tipo"),
		FechaDesde:  from,
		FechaHasta:  to,
		UsuarioID:   userID,
		PageRequest: page,
	}, nil
}

// LastYear godoc
// @Summary      Movimientos de los últimos 12 meses (gráfica)
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MovementGraphResponse
// @Router       /api/movimientos/last-year [get]
func (h *MovementHandler) LastYear(c *fiber.Ctx) error {
	out, err := h.query.LastYear(c.Context(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SummaryByType godoc
// @Summary      Número de movimientos por tipo
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MovementSummaryResponse
// @Router       /api/movimientos/resumen/tipo [get]
func (h *MovementHandler) SummaryByType(c *fiber.Ctx) error {
	out, err := h.query.SummaryByType(c.Context(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento con sus líneas
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "id_mov"
// @Success      200  {object}  dto.MovementResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movimientos/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	id, err := intParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.query.Get(c.Context(), GetPrincipal(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Lines godoc
// @Summary      Líneas de un movimiento con nombres de producto y almacén
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        id      path   int  true   "id_mov"
// @Param        limit   query  int  false  "1..1000"  default(10)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {object}  dto.Paginated[dto.MovementLineDetailResponse]
// @Router       /api/movimientos/{id}/lineas [get]
func (h *MovementHandler) Lines(c *fiber.Ctx) error {
	id, err := intParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	page, err := pageQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.query.Lines(c.Context(), GetPrincipal(c), id, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Comprobante PDF del movimiento
// @Tags         movimientos
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "id_mov"
// @Success      200  {file}  binary
// @Router       /api/movimientos/{id}/pdf [get]
func (h *MovementHandler) PDF(c *fiber.Ctx) error {
	id, err := intParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	mov, lines, err := h.query.Detail(c.Context(), GetPrincipal(c), id)
	if err != nil {
		return writeError(c, err)
	}
	doc, err := h.voucher.GenerateMovementPDF(c.Context(), mov, lines)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="movimiento-%d.pdf"`, id))
	return c.Send(doc)
}
