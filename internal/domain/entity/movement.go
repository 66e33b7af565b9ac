package entity

import "time"

// Tipos de movimiento.
const (
	MovementTypeEntrada = "entrada"
	MovementTypeSalida  = "salida"
)

// LotNone lote por defecto cuando la línea no trae uno.
const LotNone = "SIN_LOTE"

// Movement cabecera de un movimiento (tabla movimientos). Inmutable una vez persistido.
type Movement struct {
	ID     int
	Date   time.Time
	Type   string
	UserID int
	Lines  []MovementLine

	UserName string // solo lectura, resuelto por join
}

// MovementLine línea de un movimiento. LineID es 1..N en el orden de envío.
type MovementLine struct {
	MovementID    int
	LineID        int
	WarehouseCode int
	ProductCode   int
	Lot           string
	ExpiryDate    *time.Time
	Quantity      int
}

// MovementLineDetail línea con los nombres de producto y almacén.
type MovementLineDetail struct {
	MovementLine
	ProductName   string
	WarehouseName string
}

// ValidMovementType indica si el tipo es entrada o salida.
func ValidMovementType(t string) bool {
	return t == MovementTypeEntrada || t == MovementTypeSalida
}
