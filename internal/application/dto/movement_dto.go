package dto

import "time"

// MovementLineRequest línea en POST /api/movimientos.
type MovementLineRequest struct {
	CodigoAlmacen  int    `json:"codigo_almacen"`
	CodigoProducto int    `json:"codigo_producto"`
	Lote           string `json:"lote,omitempty"`
	FechaCad       *Date  `json:"fecha_cad,omitempty"`
	Cantidad       int    `json:"cantidad"`
}

// CreateMovementRequest body para POST /api/movimientos.
type CreateMovementRequest struct {
	Tipo      string                `json:"tipo"`
	IDUsuario int                   `json:"id_usuario"`
	Lineas    []MovementLineRequest `json:"lineas"`
}

// MovementLineResponse línea persistida.
type MovementLineResponse struct {
	IDMov          int    `json:"id_mov"`
	IDLinea        int    `json:"id_linea"`
	CodigoAlmacen  int    `json:"codigo_almacen"`
	CodigoProducto int    `json:"codigo_producto"`
	Lote           string `json:"lote"`
	FechaCad       *Date  `json:"fecha_cad,omitempty"`
	Cantidad       int    `json:"cantidad"`
}

// MovementResponse movimiento con sus líneas.
type MovementResponse struct {
	IDMov         int                    `json:"id_mov"`
	Fecha         time.Time              `json:"fecha"`
	Tipo          string                 `json:"tipo"`
	IDUsuario     int                    `json:"id_usuario"`
	NombreUsuario string                 `json:"nombre_usuario"`
	Lineas        []MovementLineResponse `json:"lineas"`
}

// MovementLineDetailResponse línea con nombres de producto y almacén.
type MovementLineDetailResponse struct {
	MovementLineResponse
	NombreProducto string `json:"nombre_producto"`
	NombreAlmacen  string `json:"nombre_almacen"`
}

// MovementSummaryResponse total de movimientos por tipo.
type MovementSummaryResponse struct {
	Tipo     string `json:"tipo"`
	Cantidad int    `json:"cantidad"`
}

// MovementGraphResponse punto para la gráfica del último año.
type MovementGraphResponse struct {
	IDMov     int       `json:"id_mov"`
	IDUsuario int       `json:"id_usuario"`
	Fecha     time.Time `json:"fecha"`
	Tipo      string    `json:"tipo"`
}

// MovementListQuery filtros de GET /api/movimientos.
type MovementListQuery struct {
	Search     string
	Tipo       string
	FechaDesde *time.Time
	FechaHasta *time.Time
	UsuarioID  *int
	PageRequest
}
