package repository

import "time"

// Page paginación por límite y desplazamiento.
type Page struct {
	Limit  int
	Offset int
}

// MovementFilter filtros del listado de movimientos. UserID nil = todos los usuarios.
type MovementFilter struct {
	Search string // nombre de usuario (ILIKE)
	Type   string
	From   *time.Time
	To     *time.Time
	UserID *int
	Page
}

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	Search     string // nombre corto o SKU
	CategoryID *int
	Active     *bool
	Page
}

// WarehouseFilter filtros del listado de almacenes.
type WarehouseFilter struct {
	Search string
	Active *bool
	Page
}

// UserFilter filtros del listado de usuarios.
type UserFilter struct {
	Search string // nombre o email
	Active *bool
	Page
}

// StockFilter filtros del listado de stock por lote.
type StockFilter struct {
	WarehouseCode *int
	ProductCode   *int
	Page
}

// HistoryFilter filtros del historial. UserID restringe a los movimientos de ese usuario.
type HistoryFilter struct {
	WarehouseCode *int
	ProductCode   *int
	UserID        *int
	Page
}
