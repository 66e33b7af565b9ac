package entity

// Product representa un producto del catálogo (tabla producto).
// Solo los productos activos pueden aparecer en nuevas líneas de movimiento.
type Product struct {
	Code        int
	SKU         string // único, ^[A-Z0-9]{3,20}$
	ShortName   string
	Description *string
	CategoryID  int
	Active      bool

	CategoryName string // solo lectura, resuelto por join
}
