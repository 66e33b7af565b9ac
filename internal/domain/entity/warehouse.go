package entity

// Warehouse representa un almacén (tabla almacen).
type Warehouse struct {
	Code        int
	Description string
	Active      bool
}
