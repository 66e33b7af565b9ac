package entity

import "time"

// Stock es la cantidad disponible por almacén, producto y lote.
type Stock struct {
	WarehouseCode int
	ProductCode   int
	Lot           string
	ExpiryDate    *time.Time
	Quantity      int
}

// StockView es una fila de stock con los nombres de almacén y producto resueltos.
type StockView struct {
	Stock
	WarehouseName string
	ProductName   string
	SKU           string
}

// StockTotal cantidad agregada bajo una clave (almacén, producto o categoría).
type StockTotal struct {
	Key      int
	Name     string
	Quantity int
}

// LotAvailability lote con stock positivo para un producto en un almacén.
type LotAvailability struct {
	Lot        string
	ExpiryDate *time.Time
	Quantity   int
}

// StockHistoryEntry línea de movimiento vista como historial de stock.
type StockHistoryEntry struct {
	MovementID    int
	Date          time.Time
	Type          string
	WarehouseCode int
	ProductCode   int
	SKU           string
	Lot           string
	Quantity      int
	UserName      string
}
