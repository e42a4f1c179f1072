package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/tenancy"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Resolver         *tenancy.Resolver
	AuthUC           *auth.AuthUseCase
	WarehouseUC      *usecase.WarehouseUseCase
	ProductUC        *usecase.ProductUseCase
	TaxonomyUC       *usecase.TaxonomyUseCase
	CountUC          *usecase.CountUseCase
	AnalyticsUC      *usecase.AnalyticsUseCase
	InventoryQuery   *inventory.QueryUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	Modules          *usecase.ModuleService
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Todo salvo health, login y docs depende del tenant del host.
	app.Use(TenantMiddleware(deps.Resolver, "/health", "/api/auth/login", "/docs"))

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Resolver)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren sesión y ámbito de bodega válido)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Tenancy (protegido)
	tenancyGroup := protected.Group("/tenancy")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	tenancyGroup.Get("/warehouses", warehouseHandler.Options)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", warehouseHandler.Delete)

	// Products y taxonomías (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.TaxonomyUC)
	products.Get("/categories", productHandler.ListCategories)
	products.Post("/categories", productHandler.CreateCategory)
	products.Patch("/categories", productHandler.RenameCategory)
	listBrands, addBrand, renameBrand := productHandler.nameListHandlers("brand")
	products.Get("/brands", listBrands)
	products.Post("/brands", addBrand)
	products.Patch("/brands", renameBrand)
	listUoM, addUoM, renameUoM := productHandler.nameListHandlers("uom")
	products.Get("/uom", listUoM)
	products.Post("/uom", addUoM)
	products.Patch("/uom", renameUoM)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Inventory (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryQuery, deps.RegisterMovement)
	invGroup.Get("/", inventoryHandler.Summary)
	invGroup.Get("/summary", inventoryHandler.Summary)
	invGroup.Get("/locations", inventoryHandler.Locations)
	invGroup.Post("/locations", inventoryHandler.CreateLocation)
	invGroup.Get("/batches", inventoryHandler.Batches)
	invGroup.Get("/expiries", inventoryHandler.Expiries)
	invGroup.Get("/movements", inventoryHandler.Movements)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)

	countHandler := NewCountHandler(deps.CountUC)
	invGroup.Get("/counts", countHandler.List)
	invGroup.Post("/counts", countHandler.Create)
	invGroup.Patch("/counts/:id", countHandler.Update)

	// Purchasing (protegido, requiere módulo activo)
	purchasing := protected.Group("/purchasing", RequireModule("purchasing", deps.Modules))
	purchasingHandler := NewPurchasingHandler(deps.ProductUC)
	purchasing.Get("/search", purchasingHandler.Search)

	// Analytics (protegido, requiere módulo activo)
	analytics := protected.Group("/analytics", RequireModule("analytics", deps.Modules))
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analytics.Get("/overview", analyticsHandler.Overview)
	analytics.Get("/inventory", analyticsHandler.Inventory)
	analytics.Get("/operations", analyticsHandler.Operations)
}
