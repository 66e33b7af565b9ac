package dto

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU         string  `json:"sku"`
	NombreCorto string  `json:"nombre_corto"`
	Descripcion *string `json:"descripcion,omitempty"`
	IDCategoria int     `json:"id_categoria"`
}

// UpdateProductRequest entrada parcial para actualizar un producto.
type UpdateProductRequest struct {
	SKU         *string `json:"sku,omitempty"`
	NombreCorto *string `json:"nombre_corto,omitempty"`
	Descripcion *string `json:"descripcion,omitempty"`
	IDCategoria *int    `json:"id_categoria,omitempty"`
	Activo      *bool   `json:"activo,omitempty"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	Codigo          int     `json:"codigo"`
	SKU             string  `json:"sku"`
	NombreCorto     string  `json:"nombre_corto"`
	Descripcion     *string `json:"descripcion"`
	IDCategoria     int     `json:"id_categoria"`
	NombreCategoria string  `json:"nombre_categoria"`
	Activo          bool    `json:"activo"`
}

// ProductListQuery filtros de GET /api/productos.
type ProductListQuery struct {
	Search      string
	IDCategoria *int
	Activo      *bool
	PageRequest
}

// BulkStateRequest cambio de estado múltiple (productos, almacenes).
type BulkStateRequest struct {
	Codigos []int `json:"codigos"`
	Activo  bool  `json:"activo"`
}

// BulkStateResponse resultado del cambio de estado múltiple.
type BulkStateResponse struct {
	Actualizados []int `json:"actualizados"`
	Omitidos     []int `json:"omitidos"`
}
