package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/tenancy"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Almacen-api/internal/interfaces/http"
)

func testResolver() *tenancy.Resolver {
	return tenancy.NewResolver(
		tenancy.Config{
			BaseDomain: "tuapp.com",
			Dev:        &entity.TenantRef{ID: "dev-co", Slug: "dev"},
		},
		[]repository.ResolvedDomain{
			{Host: "acme.tuapp.com", Tenant: entity.TenantRef{ID: "co-acme", Slug: "acme"}},
			{Host: "bodegas-acme.cl", Tenant: entity.TenantRef{ID: "co-acme", Slug: "acme"}},
		},
	)
}

func buildTenantApp(skip ...string) *fiber.App {
	app := fiber.New()
	app.Use(apphttp.TenantMiddleware(testResolver(), skip...))
	handler := func(c *fiber.Ctx) error {
		tenant := apphttp.GetTenant(c)
		if tenant == nil {
			return c.JSON(fiber.Map{"tenant": nil})
		}
		return c.JSON(fiber.Map{"tenant": tenant.ID, "slug": tenant.Slug})
	}
	app.Get("/api/ping", handler)
	app.Get("/health", handler)
	app.Get("/dashboard", handler)
	return app
}

func doHostRequest(t *testing.T, app *fiber.App, target, host string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Host = host
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// Un subdominio registrado resuelve al tenant y lo deja disponible en locals.
func TestTenantMiddleware_SubdominioResuelve(t *testing.T) {
	app := buildTenantApp()
	resp := doHostRequest(t, app, "/api/ping", "acme.tuapp.com")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "co-acme", body["tenant"])
	assert.Equal(t, "acme", body["slug"])
}

// Un dominio propio (custom domain) resuelve igual que el subdominio.
func TestTenantMiddleware_DominioPropioResuelve(t *testing.T) {
	app := buildTenantApp()
	resp := doHostRequest(t, app, "/api/ping", "bodegas-acme.cl")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "co-acme", body["tenant"])
}

// Un host desconocido responde 401 JSON en rutas /api.
func TestTenantMiddleware_HostDesconocidoEs401EnAPI(t *testing.T) {
	app := buildTenantApp()
	resp := doHostRequest(t, app, "/api/ping", "intruso.otro.com")
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "COMPANY_UNRESOLVED", body["code"])
}

// Fuera de /api un host desconocido redirige a /login.
func TestTenantMiddleware_HostDesconocidoRedirigeEnPaginas(t *testing.T) {
	app := buildTenantApp()
	resp := doHostRequest(t, app, "/dashboard", "intruso.otro.com")
	defer resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

// Los prefijos del skip-list pasan sin resolver el tenant.
func TestTenantMiddleware_SkipListPasaSinTenant(t *testing.T) {
	app := buildTenantApp("/health")
	resp := doHostRequest(t, app, "/health", "intruso.otro.com")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Nil(t, body["tenant"])
}

// localhost cae al tenant de desarrollo configurado.
func TestTenantMiddleware_LocalhostUsaFallbackDev(t *testing.T) {
	app := buildTenantApp()
	resp := doHostRequest(t, app, "/api/ping", "localhost:3000")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "dev-co", body["tenant"])
}

// La cookie de empresa se siembra solo cuando falta.
func TestTenantMiddleware_SiembraCookieUnaVez(t *testing.T) {
	app := buildTenantApp()

	resp := doHostRequest(t, app, "/api/ping", "acme.tuapp.com")
	defer resp.Body.Close()
	var seeded *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == "companyId" {
			seeded = ck
		}
	}
	require.NotNil(t, seeded, "primera visita debe sembrar companyId")
	assert.Equal(t, "co-acme", seeded.Value)

	// Segunda visita con la cookie presente: no se reescribe.
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Host = "acme.tuapp.com"
	req.AddCookie(&http.Cookie{Name: "companyId", Value: "co-acme"})
	resp2, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp2.Body.Close()
	for _, ck := range resp2.Cookies() {
		assert.NotEqual(t, "companyId", ck.Name, "la cookie no debe reescribirse si ya existe")
	}
}
