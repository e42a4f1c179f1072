package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
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

type fakeCountRepo struct {
	counts map[string]*entity.CyclicCount
}

func newFakeCountRepo() *fakeCountRepo {
	return &fakeCountRepo{counts: make(map[string]*entity.CyclicCount)}
}

func (r *fakeCountRepo) Create(c *entity.CyclicCount) error {
	cp := *c
	r.counts[c.ID] = &cp
	return nil
}

func (r *fakeCountRepo) GetByID(companyID, id string) (*entity.CyclicCount, error) {
	c, ok := r.counts[id]
	if !ok || c.CompanyID != companyID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCountRepo) Update(c *entity.CyclicCount) error {
	cp := *c
	r.counts[c.ID] = &cp
	return nil
}

func (r *fakeCountRepo) List(companyID string, f repository.CountFilter) ([]*entity.CyclicCount, int, error) {
	var out []*entity.CyclicCount
	for _, c := range r.counts {
		if c.CompanyID != companyID {
			continue
		}
		if f.WarehouseIDs != nil && !containsStr(f.WarehouseIDs, c.WarehouseID) {
			continue
		}
		if f.Status != "" && f.Status != "ALL" && c.Status != f.Status {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func containsStr(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

type fakeWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
}

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error { r.warehouses[w.ID] = w; return nil }
func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := r.warehouses[id]
	if !ok {
		return nil, nil
	}
	return w, nil
}
func (r *fakeWarehouseRepo) GetByCode(companyID, code string) (*entity.Warehouse, error) {
	for _, w := range r.warehouses {
		if w.CompanyID == companyID && w.Code == code {
			return w, nil
		}
	}
	return nil, nil
}
func (r *fakeWarehouseRepo) Update(w *entity.Warehouse) error { r.warehouses[w.ID] = w; return nil }
func (r *fakeWarehouseRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Warehouse, error) {
	return r.ListAllByCompany(companyID)
}
func (r *fakeWarehouseRepo) ListAllByCompany(companyID string) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.warehouses {
		if w.CompanyID == companyID {
			out = append(out, w)
		}
	}
	return out, nil
}
func (r *fakeWarehouseRepo) Delete(id string) error { delete(r.warehouses, id); return nil }

// ──────────────────────────────────────────────────────────────────────────────
// App de prueba con la cadena completa de middlewares
// ──────────────────────────────────────────────────────────────────────────────

func buildCountApp(t *testing.T) *fiber.App {
	t.Helper()
	whRepo := &fakeWarehouseRepo{warehouses: map[string]*entity.Warehouse{
		"w1": {ID: "w1", CompanyID: testCompanyID, Code: "A1", Name: "Bodega A1"},
		"w2": {ID: "w2", CompanyID: testCompanyID, Code: "A2", Name: "Bodega A2"},
	}}
	uc := usecase.NewCountUseCase(newFakeCountRepo(), whRepo)
	handler := apphttp.NewCountHandler(uc)

	app := fiber.New()
	counts := app.Group("/api/inventory/counts", apphttp.AuthMiddleware(testJWTSecret))
	counts.Get("/", handler.List)
	counts.Post("/", handler.Create)
	counts.Patch("/:id", handler.Update)
	return app
}

func postCount(t *testing.T, app *fiber.App, token string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/inventory/counts/", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Una sesión COMPANY planifica un conteo en cualquier bodega del tenant.
func TestCountHandler_CompanyCreaConteo(t *testing.T) {
	app := buildCountApp(t)
	token := tokenFor(t, "COMPANY", nil)

	resp := postCount(t, app, token, fiber.Map{
		"code":        "CC-001",
		"warehouseId": "w2",
		"scope":       entity.CountScopeByLocation,
		"scheduledAt": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"planned":     50,
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "CC-001", body["code"])
	assert.Equal(t, "PLANNED", body["status"])
}

// Un warehouseId forjado fuera del allow-list responde 403, aunque el body sea válido.
func TestCountHandler_WarehouseForjadoEs403(t *testing.T) {
	app := buildCountApp(t)
	token := tokenFor(t, "WAREHOUSE", []string{"w1"})

	resp := postCount(t, app, token, fiber.Map{
		"code":        "CC-002",
		"warehouseId": "w2",
		"scope":       entity.CountScopeByLocation,
		"scheduledAt": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "WAREHOUSE_NOT_ALLOWED", body["code"])
}

// Un conteo sin fecha programada es entrada inválida.
func TestCountHandler_SinFechaProgramadaEs400(t *testing.T) {
	app := buildCountApp(t)
	token := tokenFor(t, "COMPANY", nil)

	resp := postCount(t, app, token, fiber.Map{
		"code":        "CC-004",
		"warehouseId": "w1",
		"scope":       entity.CountScopeByLocation,
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "VALIDATION", body["code"])
}

// Una sesión WAREHOUSE sin bodegas asignadas no crea nada.
func TestCountHandler_SinBodegasAsignadasEs403(t *testing.T) {
	app := buildCountApp(t)
	token := tokenFor(t, "WAREHOUSE", nil)

	resp := postCount(t, app, token, fiber.Map{
		"code":        "CC-003",
		"warehouseId": "w1",
		"scope":       entity.CountScopeByLocation,
		"scheduledAt": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// El listado con scope WAREHOUSE solo devuelve conteos de bodegas permitidas.
func TestCountHandler_ListFiltradoPorScope(t *testing.T) {
	app := buildCountApp(t)
	companyToken := tokenFor(t, "COMPANY", nil)

	for _, wh := range []string{"w1", "w2"} {
		resp := postCount(t, app, companyToken, fiber.Map{
			"code":        "CC-" + wh,
			"warehouseId": wh,
			"scope":       entity.CountScopeByLocation,
			"scheduledAt": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	req := httptest.NewRequest(http.MethodGet, "/api/inventory/counts/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "WAREHOUSE", []string{"w1"}))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "w1", items[0].(map[string]any)["warehouseId"])
	assert.Equal(t, float64(1), body["total"])
}

// Un conteo cerrado es inmutable.
func TestCountHandler_ConteoCerradoEsInmutable(t *testing.T) {
	app := buildCountApp(t)
	token := tokenFor(t, "COMPANY", nil)

	resp := postCount(t, app, token, fiber.Map{
		"code":        "CC-010",
		"warehouseId": "w1",
		"scope":       entity.CountScopeByLocation,
		"scheduledAt": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	resp.Body.Close()
	id := created["id"].(string)

	patch := func(body any) *http.Response {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPatch, "/api/inventory/counts/"+id, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		out, err := app.Test(req, -1)
		require.NoError(t, err)
		return out
	}

	closeResp := patch(fiber.Map{"status": "CLOSED"})
	require.Equal(t, http.StatusOK, closeResp.StatusCode)
	closeResp.Body.Close()

	again := patch(fiber.Map{"counted": 10})
	defer again.Body.Close()
	assert.Equal(t, http.StatusBadRequest, again.StatusCode)
}
