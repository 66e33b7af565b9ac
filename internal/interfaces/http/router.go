package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/duquediazn/tabula-backend/internal/application/analytics"
	"github.com/duquediazn/tabula-backend/internal/application/auth"
	"github.com/duquediazn/tabula-backend/internal/application/inventory"
	"github.com/duquediazn/tabula-backend/internal/application/ports"
	"github.com/duquediazn/tabula-backend/internal/application/usecase"
	"github.com/duquediazn/tabula-backend/internal/infrastructure/realtime"
	"github.com/duquediazn/tabula-backend/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	UserUC           *usecase.UserUseCase
	CategoryUC       *usecase.CategoryUseCase
	ProductUC        *usecase.ProductUseCase
	WarehouseUC      *usecase.WarehouseUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	MovementQuery    *inventory.MovementQueryUseCase
	StockUC          *analytics.StockUseCase
	Voucher          ports.VoucherGenerator
	Hub              *realtime.Hub
	JWTSecret        string
	Cookie           CookieConfig
	Log              *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Websocket (público, como el resto de avisos de solo lectura)
	wsHandler := NewWebSocketHandler(deps.Hub, deps.Log)
	app.Get("/ws/movimientos", wsHandler.Upgrade, wsHandler.Movements())

	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret, deps.AuthUC)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	authGroup.Post("/registro", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/perfil", requireAuth, authHandler.Profile)
	authGroup.Post("/verify-password", requireAuth, authHandler.VerifyPassword)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", requireAuth)

	// Usuarios
	users := protected.Group("/usuarios")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", RequireAdmin(), userHandler.List)
	users.Post("/", RequireAdmin(), userHandler.Create)
	users.Put("/estado-multiple", RequireAdmin(), userHandler.SetState)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", RequireAdmin(), userHandler.Delete)

	// Categorías
	categories := protected.Group("/categorias")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Productos
	products := protected.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Put("/estado-multiple", productHandler.SetState)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Almacenes
	warehouses := protected.Group("/almacenes")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Put("/estado-multiple", warehouseHandler.SetState)
	warehouses.Get("/:codigo", warehouseHandler.GetByID)
	warehouses.Put("/:codigo", warehouseHandler.Update)
	warehouses.Delete("/:codigo", warehouseHandler.Delete)

	// Movimientos (las rutas fijas antes de /:id)
	movements := protected.Group("/movimientos")
	movementHandler := NewMovementHandler(deps.RegisterMovement, deps.MovementQuery, deps.Voucher)
	movements.Get("/", movementHandler.List)
	movements.Post("/", movementHandler.Create)
	movements.Get("/last-year", movementHandler.LastYear)
	movements.Get("/resumen/tipo", movementHandler.SummaryByType)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Get("/:id/lineas", movementHandler.Lines)
	movements.Get("/:id/pdf", movementHandler.PDF)

	// Stock
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Get("/", stockHandler.List)
	stock.Get("/semaforo", stockHandler.Semaphore)
	stock.Get("/historial", stockHandler.History)
	stock.Get("/lotes-disponibles", stockHandler.AvailableLots)
	stock.Get("/almacenes/detalle", stockHandler.TotalsByWarehouse)
	stock.Get("/categorias-producto", stockHandler.TotalsByCategory)
	stock.Get("/categoria/:id_categoria/productos", stockHandler.CategoryProducts)
	stock.Get("/producto/caducidad", stockHandler.Expiring)
	stock.Get("/producto/:codigo_producto", stockHandler.ProductSummary)
	stock.Get("/producto/:codigo_producto/historial", stockHandler.History)
	stock.Get("/almacen/:codigo_almacen", stockHandler.List)
	stock.Get("/almacen/:codigo_almacen/detalle", stockHandler.WarehousePie)
	stock.Get("/almacen/:codigo_almacen/historial", stockHandler.History)
	stock.Get("/almacen/:codigo_almacen/producto/:codigo_producto", stockHandler.List)
	stock.Get("/almacen/:codigo_almacen/producto/:codigo_producto/historial", stockHandler.History)
}
