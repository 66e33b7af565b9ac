package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/duquediazn/tabula-backend/internal/application/analytics"
	"github.com/duquediazn/tabula-backend/internal/application/auth"
	"github.com/duquediazn/tabula-backend/internal/application/inventory"
	"github.com/duquediazn/tabula-backend/internal/application/ports"
	"github.com/duquediazn/tabula-backend/internal/application/usecase"
	"github.com/duquediazn/tabula-backend/internal/infrastructure/cache"
	infrapdf "github.com/duquediazn/tabula-backend/internal/infrastructure/pdf"
	"github.com/duquediazn/tabula-backend/internal/infrastructure/postgres"
	"github.com/duquediazn/tabula-backend/internal/infrastructure/realtime"
	httpRouter "github.com/duquediazn/tabula-backend/internal/interfaces/http"
	"github.com/duquediazn/tabula-backend/pkg/config"
	"github.com/duquediazn/tabula-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("stock_apply", cfg.Inventory.ApplyStockOnMovement).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if cfg.DB.AutoMigrate {
		if err := postgres.RunMigrations(ctx, cfg.DB.ConnectionString(), log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Caché de reportes: sin REDIS_ADDR queda desactivada
	var reportCache ports.ReportCache = ports.NopReportCache{}
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, caché de reportes desactivada")
		} else {
			defer client.Close()
			reportCache = cache.NewRedisCache(client, cfg.Redis.TTL, log)
		}
	}

	hub := realtime.NewHub(cfg.Inventory.NotifyQueueSize, log)
	go hub.Run(ctx)
	defer hub.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:        cfg.JWT.Secret,
		AccessMinutes: cfg.JWT.AccessMinutes,
		RefreshDays:   cfg.JWT.RefreshDays,
		Issuer:        cfg.JWT.Issuer,
	})
	registerMovementUC := inventory.NewRegisterMovementUseCase(
		txRunner, userRepo, hub, log,
		inventory.WithStockApply(cfg.Inventory.ApplyStockOnMovement),
		inventory.WithReportCache(reportCache),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.AccessLog(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.CORSOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tabula API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		UserUC:           usecase.NewUserUseCase(userRepo),
		CategoryUC:       usecase.NewCategoryUseCase(categoryRepo, reportCache, log),
		ProductUC:        usecase.NewProductUseCase(productRepo, categoryRepo),
		WarehouseUC:      usecase.NewWarehouseUseCase(warehouseRepo, reportCache, log),
		RegisterMovement: registerMovementUC,
		MovementQuery:    inventory.NewMovementQueryUseCase(movementRepo),
		StockUC:          analytics.NewStockUseCase(stockRepo, reportCache, log),
		Voucher:          infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
		Hub:              hub,
		JWTSecret:        cfg.JWT.Secret,
		Cookie: httpRouter.CookieConfig{
			Secure: cfg.JWT.SecureCookie,
			MaxAge: time.Duration(cfg.JWT.RefreshDays) * 24 * time.Hour,
		},
		Log: log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	stop()

	log.Info().Msg("aplicación detenida")
}
