package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/tenancy"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	domainRepo := postgres.NewCompanyDomainRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	taxonomyRepo := postgres.NewTaxonomyRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	countRepo := postgres.NewCountRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// El registro de hosts se carga una vez al arranque. Un dominio nuevo
	// requiere reinicio del proceso.
	var devTenant *entity.TenantRef
	if cfg.Tenancy.DevCompanyID != "" {
		devTenant = &entity.TenantRef{ID: cfg.Tenancy.DevCompanyID, Slug: cfg.Tenancy.DevTenantSlug}
	}
	resolver, err := tenancy.Load(ctx, tenancy.Config{
		BaseDomain: cfg.Tenancy.BaseDomain,
		Dev:        devTenant,
	}, domainRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar registro de dominios")
	}

	authUC := auth.NewAuthUseCase(userRepo, warehouseRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo)
	taxonomyUC := usecase.NewTaxonomyUseCase(categoryRepo, taxonomyRepo)
	countUC := usecase.NewCountUseCase(countRepo, warehouseRepo)
	analyticsUC := usecase.NewAnalyticsUseCase(analyticsRepo)
	moduleSvc := usecase.NewModuleService(companyRepo)
	inventoryQueryUC := inventory.NewQueryUseCase(stockRepo, locationRepo, movementRepo, warehouseRepo)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, productRepo, locationRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Resolver:         resolver,
		AuthUC:           authUC,
		WarehouseUC:      warehouseUC,
		ProductUC:        productUC,
		TaxonomyUC:       taxonomyUC,
		CountUC:          countUC,
		AnalyticsUC:      analyticsUC,
		InventoryQuery:   inventoryQueryUC,
		RegisterMovement: registerMovementUC,
		Modules:          moduleSvc,
		JWTSecret:        cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}
