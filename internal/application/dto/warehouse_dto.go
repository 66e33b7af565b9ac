package dto

// CreateWarehouseRequest entrada para crear un almacén.
type CreateWarehouseRequest struct {
	Descripcion string `json:"descripcion"`
	Activo      *bool  `json:"activo,omitempty"`
}

// UpdateWarehouseRequest entrada parcial para actualizar un almacén.
type UpdateWarehouseRequest struct {
	Descripcion *string `json:"descripcion,omitempty"`
	Activo      *bool   `json:"activo,omitempty"`
}

// WarehouseResponse salida de un almacén.
type WarehouseResponse struct {
	Codigo      int    `json:"codigo"`
	Descripcion string `json:"descripcion"`
	Activo      bool   `json:"activo"`
}

// WarehouseListQuery filtros de GET /api/almacenes.
type WarehouseListQuery struct {
	Search string
	Activo *bool
	PageRequest
}
