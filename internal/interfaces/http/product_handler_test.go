package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Almacen-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(companyID, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) SKUExists(companyID, sku string) (bool, error) {
	for _, p := range r.products {
		if p.CompanyID == companyID && p.SKU == sku {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProductRepo) Search(ctx context.Context, companyID string, f repository.ProductFilter) ([]*entity.Product, int, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.CompanyID == companyID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (r *fakeProductRepo) SearchPurchasing(ctx context.Context, companyID, q string, limit, offset int) ([]repository.PurchasingRow, int, error) {
	return nil, 0, nil
}

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

func (r *fakeCategoryRepo) Create(c *entity.Category) error { r.categories[c.ID] = c; return nil }
func (r *fakeCategoryRepo) GetByID(companyID, id string) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok || c.CompanyID != companyID {
		return nil, nil
	}
	return c, nil
}
func (r *fakeCategoryRepo) ListByCompany(companyID string) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.categories {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r *fakeCategoryRepo) NameExists(companyID, name, excludeID string) (bool, error) {
	return false, nil
}
func (r *fakeCategoryRepo) Rename(companyID, id, name string) error { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// App de prueba
// ──────────────────────────────────────────────────────────────────────────────

const foreignCompanyID = "00000000-0000-0000-0000-000000000099"

func buildProductApp(t *testing.T) *fiber.App {
	t.Helper()
	now := time.Now()
	productRepo := &fakeProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", CompanyID: testCompanyID, SKU: "SKU-0001", Name: "Arroz 1kg", UoM: "pz", Price: decimal.NewFromInt(1290), Status: entity.ProductStatusActive, CreatedAt: now, UpdatedAt: now},
		"p9": {ID: "p9", CompanyID: foreignCompanyID, SKU: "SKU-0009", Name: "Ajeno", UoM: "pz", Price: decimal.NewFromInt(990), Status: entity.ProductStatusActive, CreatedAt: now, UpdatedAt: now},
	}}
	categoryRepo := &fakeCategoryRepo{categories: map[string]*entity.Category{}}
	taxonomyUC := usecase.NewTaxonomyUseCase(categoryRepo, nil)
	handler := apphttp.NewProductHandler(usecase.NewProductUseCase(productRepo, categoryRepo), taxonomyUC)

	whRepo := &fakeWarehouseRepo{warehouses: map[string]*entity.Warehouse{
		"w1": {ID: "w1", CompanyID: testCompanyID, Code: "A1", Name: "Bodega A1"},
		"w9": {ID: "w9", CompanyID: foreignCompanyID, Code: "Z1", Name: "Bodega ajena"},
	}}
	whHandler := apphttp.NewWarehouseHandler(usecase.NewWarehouseUseCase(whRepo))

	app := fiber.New()
	products := app.Group("/api/products", apphttp.AuthMiddleware(testJWTSecret))
	products.Get("/:id", handler.GetByID)
	products.Put("/:id", handler.Update)
	warehouses := app.Group("/api/warehouses", apphttp.AuthMiddleware(testJWTSecret))
	warehouses.Get("/:id", whHandler.GetByID)
	warehouses.Put("/:id", whHandler.Update)
	return app
}

func doJSONRequest(t *testing.T, app *fiber.App, method, target string, body any) *http.Response {
	t.Helper()
	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, target, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "COMPANY", nil))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests: contrato 404 (nunca 200 con body null)
// ──────────────────────────────────────────────────────────────────────────────

// Un producto inexistente responde 404 con cuerpo de error, no 200 null.
func TestProductHandler_GetInexistenteEs404(t *testing.T) {
	app := buildProductApp(t)
	resp := doJSONRequest(t, app, http.MethodGet, "/api/products/no-existe", nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

// Un producto de otra empresa es indistinguible de uno inexistente.
func TestProductHandler_GetDeOtraEmpresaEs404(t *testing.T) {
	app := buildProductApp(t)
	resp := doJSONRequest(t, app, http.MethodGet, "/api/products/p9", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// El producto propio sí se devuelve.
func TestProductHandler_GetPropioEs200(t *testing.T) {
	app := buildProductApp(t)
	resp := doJSONRequest(t, app, http.MethodGet, "/api/products/p1", nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "SKU-0001", body["sku"])
}

// Actualizar un producto inexistente responde 404.
func TestProductHandler_UpdateInexistenteEs404(t *testing.T) {
	app := buildProductApp(t)
	resp := doJSONRequest(t, app, http.MethodPut, "/api/products/no-existe", fiber.Map{"name": "Nuevo"})
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

// Una bodega inexistente o de otra empresa responde 404.
func TestWarehouseHandler_GetInexistenteEs404(t *testing.T) {
	app := buildProductApp(t)

	for _, target := range []string{"/api/warehouses/no-existe", "/api/warehouses/w9"} {
		resp := doJSONRequest(t, app, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, target)
		resp.Body.Close()
	}
}

// Actualizar una bodega de otra empresa responde 404 y no escribe nada.
func TestWarehouseHandler_UpdateDeOtraEmpresaEs404(t *testing.T) {
	app := buildProductApp(t)
	resp := doJSONRequest(t, app, http.MethodPut, "/api/warehouses/w9", fiber.Map{"name": "Secuestrada"})
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "NOT_FOUND", body["code"])
}
