// seed puebla una base de desarrollo con una empresa demo completa:
// dominios, módulos, bodegas, ubicaciones, catálogo, usuarios y stock inicial.
//
// Uso: go run ./cmd/seed
// Es idempotente a nivel de empresa: si el slug demo ya existe, aborta.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/authz"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

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
	registerUC := inventory.NewRegisterMovementUseCase(postgres.NewTxRunner(pool), productRepo, locationRepo)

	if existing, err := companyRepo.GetBySlug("demo"); err != nil {
		log.Fatal().Err(err).Msg("consultar empresa demo")
	} else if existing != nil {
		log.Info().Str("company_id", existing.ID).Msg("la empresa demo ya existe, nada que hacer")
		return
	}

	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Slug:      "demo",
		Name:      "Almacenes Demo",
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	must(log, "crear empresa", companyRepo.Create(company))

	// Dominios: subdominio del wildcard y un dominio propio de ejemplo.
	base := cfg.Tenancy.BaseDomain
	if base == "" {
		base = "localhost"
	}
	must(log, "registrar subdominio", domainRepo.Create(&entity.CompanyDomain{
		Host:      "demo." + base,
		CompanyID: company.ID,
		Kind:      entity.DomainKindSubdomain,
		CreatedAt: now,
	}))
	must(log, "registrar dominio propio", domainRepo.Create(&entity.CompanyDomain{
		Host:      "almacenes-demo.cl",
		CompanyID: company.ID,
		Kind:      entity.DomainKindCustom,
		CreatedAt: now,
	}))

	// Módulos SaaS activos, sin vencimiento.
	for _, mod := range []string{entity.ModuleInventory, entity.ModuleAnalytics, entity.ModulePurchasing} {
		_, err := pool.Exec(ctx, `
			INSERT INTO company_modules (id, company_id, module_name, is_active, activated_at, created_at, updated_at)
			VALUES ($1, $2, $3, TRUE, now(), now(), now())
			ON CONFLICT (company_id, module_name) DO UPDATE SET is_active = TRUE`,
			uuid.New().String(), company.ID, mod)
		must(log, "activar módulo "+mod, err)
	}

	// Bodegas y ubicaciones.
	wh1 := &entity.Warehouse{ID: uuid.New().String(), CompanyID: company.ID, Code: "A1", Name: "Bodega Central", Address: "Av. Principal 100", CreatedAt: now, UpdatedAt: now}
	wh2 := &entity.Warehouse{ID: uuid.New().String(), CompanyID: company.ID, Code: "A2", Name: "Bodega Norte", Address: "Ruta 5 Norte km 12", CreatedAt: now, UpdatedAt: now}
	must(log, "crear bodega A1", warehouseRepo.Create(wh1))
	must(log, "crear bodega A2", warehouseRepo.Create(wh2))

	locs := map[string]*entity.Location{
		"staging-1": {ID: uuid.New().String(), CompanyID: company.ID, WarehouseID: wh1.ID, Code: "STAGING", Capacity: 0, CreatedAt: now, UpdatedAt: now},
		"a1-r1-b1":  {ID: uuid.New().String(), CompanyID: company.ID, WarehouseID: wh1.ID, Code: "A1-R1-B1", Capacity: 200, CreatedAt: now, UpdatedAt: now},
		"a1-r1-b2":  {ID: uuid.New().String(), CompanyID: company.ID, WarehouseID: wh1.ID, Code: "A1-R1-B2", Capacity: 200, CreatedAt: now, UpdatedAt: now},
		"a2-r1-b1":  {ID: uuid.New().String(), CompanyID: company.ID, WarehouseID: wh2.ID, Code: "A2-R1-B1", Capacity: 150, CreatedAt: now, UpdatedAt: now},
	}
	for name, loc := range locs {
		must(log, "crear ubicación "+name, locationRepo.Create(loc))
	}

	// Taxonomías y catálogo.
	cat := &entity.Category{ID: uuid.New().String(), CompanyID: company.ID, Name: "Abarrotes", CreatedAt: now, UpdatedAt: now}
	must(log, "crear categoría", categoryRepo.Create(cat))
	must(log, "agregar marca", taxonomyRepo.Add(company.ID, "brand", "Genérica"))
	must(log, "agregar uom pz", taxonomyRepo.Add(company.ID, "uom", "pz"))
	must(log, "agregar uom caja", taxonomyRepo.Add(company.ID, "uom", "caja"))

	products := []*entity.Product{
		{ID: uuid.New().String(), CompanyID: company.ID, SKU: "SKU-0001", Barcode: "7800000000017", Name: "Arroz Grado 1 1kg", Brand: "Genérica", CategoryID: cat.ID, UoM: "pz", Price: decimal.NewFromFloat(1290), Status: entity.ProductStatusActive, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New().String(), CompanyID: company.ID, SKU: "SKU-0002", Barcode: "7800000000024", Name: "Azúcar Blanca 1kg", Brand: "Genérica", CategoryID: cat.ID, UoM: "pz", Price: decimal.NewFromFloat(1090), Status: entity.ProductStatusActive, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New().String(), CompanyID: company.ID, SKU: "SKU-0003", Barcode: "7800000000031", Name: "Aceite Vegetal 900ml", Brand: "Genérica", CategoryID: cat.ID, UoM: "caja", Price: decimal.NewFromFloat(2490), Status: entity.ProductStatusActive, CreatedAt: now, UpdatedAt: now},
	}
	for _, p := range products {
		must(log, "crear producto "+p.SKU, productRepo.Create(p))
	}

	// Usuarios: admin con rol de empresa y un operario limitado a la bodega central.
	admin := seedUser(log, userRepo, "admin@demo.cl", "Admin Demo", "admin123")
	must(log, "rol de empresa para admin", userRepo.GrantCompanyRole(&entity.UserCompanyRole{
		UserID:    admin.ID,
		CompanyID: company.ID,
		Role:      entity.RoleAdmin,
		CreatedAt: now,
	}))
	operator := seedUser(log, userRepo, "operario@demo.cl", "Operario Bodega", "operario123")
	must(log, "acceso de bodega para operario", userRepo.GrantWarehouseAccess(&entity.UserWarehouseAccess{
		UserID:      operator.ID,
		WarehouseID: wh1.ID,
		CreatedAt:   now,
	}))

	// Stock inicial vía el pipeline real de movimientos: recepción + putaway.
	ac := authz.Context{UserID: admin.ID, CompanyID: company.ID, RoleScope: authz.ScopeCompany}
	for i, p := range products {
		qty := decimal.NewFromInt(int64(50 + i*25))
		_, err := registerUC.Register(ctx, ac, inventory.MovementInput{
			ProductID:    p.ID,
			ToLocationID: locs["staging-1"].ID,
			Qty:          qty,
			Reason:       entity.MovementReceive,
			Lot:          "L-2026-001",
		})
		must(log, "recepción "+p.SKU, err)
		_, err = registerUC.Register(ctx, ac, inventory.MovementInput{
			ProductID:      p.ID,
			FromLocationID: locs["staging-1"].ID,
			ToLocationID:   locs["a1-r1-b1"].ID,
			Qty:            qty,
			Reason:         entity.MovementPutaway,
			Lot:            "L-2026-001",
		})
		must(log, "putaway "+p.SKU, err)
	}

	log.Info().
		Str("company_id", company.ID).
		Str("host", "demo."+base).
		Msg("empresa demo creada")
}

func seedUser(log *logger.Logger, repo repository.UserRepository, email, name, password string) *entity.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	must(log, "hash de contraseña "+email, err)
	now := time.Now()
	u := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	must(log, "crear usuario "+email, repo.Create(u))
	return u
}

func must(log *logger.Logger, step string, err error) {
	if err != nil {
		log.Fatal().Err(err).Msg(step)
	}
}
