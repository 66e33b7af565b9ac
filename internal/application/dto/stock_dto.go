package dto

import "time"

// StockResponse fila de stock por lote.
type StockResponse struct {
	CodigoAlmacen  int    `json:"codigo_almacen"`
	NombreAlmacen  string `json:"nombre_almacen"`
	CodigoProducto int    `json:"codigo_producto"`
	NombreProducto string `json:"nombre_producto"`
	SKU            string `json:"sku"`
	Lote           string `json:"lote"`
	FechaCad       *Date  `json:"fecha_cad"`
	Cantidad       int    `json:"cantidad"`
}

// StockSummaryResponse total de un producto en un almacén.
type StockSummaryResponse struct {
	CodigoProducto int    `json:"codigo_producto"`
	CodigoAlmacen  int    `json:"codigo_almacen"`
	NombreAlmacen  string `json:"nombre_almacen"`
	TotalCantidad  int    `json:"total_cantidad"`
}

// StockByWarehouseResponse total por almacén.
type StockByWarehouseResponse struct {
	CodigoAlmacen int    `json:"codigo_almacen"`
	NombreAlmacen string `json:"nombre_almacen"`
	TotalCantidad int    `json:"total_cantidad"`
}

// StockPieResponse total por producto dentro de un almacén.
type StockPieResponse struct {
	CodigoProducto int    `json:"codigo_producto"`
	NombreProducto string `json:"nombre_producto"`
	TotalCantidad  int    `json:"total_cantidad"`
}

// StockByCategoryResponse total por categoría.
type StockByCategoryResponse struct {
	IDCategoria     int    `json:"id_categoria"`
	NombreCategoria string `json:"nombre_categoria"`
	CantidadTotal   int    `json:"cantidad_total"`
}

// StockByProductInCategoryResponse total por producto de una categoría.
type StockByProductInCategoryResponse struct {
	CodigoProducto int    `json:"codigo_producto"`
	NombreProducto string `json:"nombre_producto"`
	CantidadTotal  int    `json:"cantidad_total"`
}

// StockHistoryResponse línea de movimiento en el historial.
type StockHistoryResponse struct {
	IDMovimiento   int       `json:"id_movimiento"`
	Fecha          time.Time `json:"fecha"`
	Tipo           string    `json:"tipo"`
	CodigoAlmacen  int       `json:"codigo_almacen"`
	CodigoProducto int       `json:"codigo_producto"`
	SKUProducto    string    `json:"sku_producto"`
	Lote           string    `json:"lote"`
	Cantidad       int       `json:"cantidad"`
	Usuario        string    `json:"usuario"`
}

// StockSemaphoreResponse unidades por tramo de caducidad.
type StockSemaphoreResponse struct {
	CaducaYa           int `json:"caduca_ya"`
	CaducaProximamente int `json:"caduca_proximamente"`
	NoCaduca           int `json:"no_caduca"`
}

// AvailableLotResponse lote con stock disponible.
type AvailableLotResponse struct {
	Lote     string `json:"lote"`
	FechaCad *Date  `json:"fecha_cad"`
	Cantidad int    `json:"cantidad"`
}
