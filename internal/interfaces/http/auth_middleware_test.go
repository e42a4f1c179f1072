package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain/authz"
	apphttp "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Almacen-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "almacen-test"
	testExpMin    = 60
)

// buildAuthApp construye una app Fiber mínima con AuthMiddleware y un handler
// que devuelve el contexto de autorización cargado en locals.
func buildAuthApp() *fiber.App {
	app := fiber.New()
	app.Get("/api/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		func(c *fiber.Ctx) error {
			ac := apphttp.GetAuthz(c)
			return c.JSON(fiber.Map{
				"userId":     ac.UserID,
				"companyId":  ac.CompanyID,
				"roleScope":  string(ac.RoleScope),
				"warehouses": ac.AllowedWarehouseIDs,
			})
		},
	)
	return app
}

// tokenFor genera un JWT con el scope y las bodegas indicadas.
func tokenFor(t *testing.T, scope string, warehouses []string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, scope, warehouses, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

// doAuthRequest lanza GET target con el token en el header Bearer.
func doAuthRequest(t *testing.T, app *fiber.App, target, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Un token válido con scope COMPANY carga el contexto completo en locals.
func TestAuthMiddleware_TokenCompanyCargaContexto(t *testing.T) {
	app := buildAuthApp()
	resp := doAuthRequest(t, app, "/api/protected", tokenFor(t, "COMPANY", nil))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, testUserID, body["userId"])
	assert.Equal(t, testCompanyID, body["companyId"])
	assert.Equal(t, "COMPANY", body["roleScope"])
}

// Un token con scope WAREHOUSE conserva la lista de bodegas normalizada.
func TestAuthMiddleware_TokenWarehouseConservaBodegas(t *testing.T) {
	app := buildAuthApp()
	resp := doAuthRequest(t, app, "/api/protected", tokenFor(t, "WAREHOUSE", []string{" w1 ", "w2", "w1"}))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "WAREHOUSE", body["roleScope"])
	assert.ElementsMatch(t, []any{"w1", "w2"}, body["warehouses"])
}

// Sin token la ruta /api responde 401 JSON.
func TestAuthMiddleware_SinTokenEs401(t *testing.T) {
	app := buildAuthApp()
	resp := doAuthRequest(t, app, "/api/protected", "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

// Un token firmado con otro secret se rechaza con 401.
func TestAuthMiddleware_FirmaIncorrectaEs401(t *testing.T) {
	forged, err := pkgjwt.Generate("otro-secret", testUserID, testCompanyID, "COMPANY", nil, testIssuer, testExpMin)
	require.NoError(t, err)

	app := buildAuthApp()
	resp := doAuthRequest(t, app, "/api/protected", forged)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

// Un token expirado se rechaza con 401.
func TestAuthMiddleware_TokenExpiradoEs401(t *testing.T) {
	expired, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, "COMPANY", nil, testIssuer, -5)
	require.NoError(t, err)

	app := buildAuthApp()
	resp := doAuthRequest(t, app, "/api/protected", expired)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Un scope desconocido en los claims es sesión inválida, no acceso amplio.
func TestAuthMiddleware_ScopeDesconocidoEs401(t *testing.T) {
	app := buildAuthApp()
	resp := doAuthRequest(t, app, "/api/protected", tokenFor(t, "SUPERADMIN", nil))
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

// Con scope WAREHOUSE, ?warehouse fuera del allow-list responde 403 en /api.
func TestAuthMiddleware_SelectorDeBodegaAjenaEs403(t *testing.T) {
	app := buildAuthApp()
	resp := doAuthRequest(t, app, "/api/protected?warehouse=w9", tokenFor(t, "WAREHOUSE", []string{"w1"}))
	defer resp.Body.Close()

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "WAREHOUSE_NOT_ALLOWED", body["code"])
}

// ?warehouse=all y una bodega del allow-list pasan el chequeo temprano.
func TestAuthMiddleware_SelectorPermitidoPasa(t *testing.T) {
	app := buildAuthApp()
	token := tokenFor(t, "WAREHOUSE", []string{"w1", "w2"})

	for _, target := range []string{"/api/protected?warehouse=all", "/api/protected?warehouse=w2"} {
		resp := doAuthRequest(t, app, target, token)
		assert.Equal(t, http.StatusOK, resp.StatusCode, target)
		resp.Body.Close()
	}
}

// Con scope COMPANY el selector de bodega no se restringe.
func TestAuthMiddleware_ScopeCompanyNoRestringeSelector(t *testing.T) {
	app := buildAuthApp()
	resp := doAuthRequest(t, app, "/api/protected?warehouse=w9", tokenFor(t, "COMPANY", nil))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// La cookie "token" sirve como credencial cuando no hay header Authorization.
func TestAuthMiddleware_CookieComoCredencial(t *testing.T) {
	app := buildAuthApp()
	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: tokenFor(t, "COMPANY", nil)})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Una cookie con token corrupto se limpia en la respuesta 401.
func TestAuthMiddleware_CookieCorruptaSeLimpia(t *testing.T) {
	app := buildAuthApp()
	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "no-es-un-jwt"})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var cleared bool
	for _, ck := range resp.Cookies() {
		if ck.Name == "token" && ck.Value == "" {
			cleared = true
		}
	}
	assert.True(t, cleared, "la cookie de sesión debe invalidarse")
}

// Fuera de /api el rechazo es redirect a /login, no JSON.
func TestAuthMiddleware_PaginaSinSesionRedirige(t *testing.T) {
	app := fiber.New()
	app.Get("/dashboard", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

// El scope normalizado viaja también como header para capas posteriores.
func TestAuthMiddleware_PropagaHeadersDeScope(t *testing.T) {
	app := fiber.New()
	app.Get("/api/echo", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"scope":      c.Get("x-role-scope"),
			"warehouses": c.Get("x-allowed-warehouses"),
		})
	})

	resp := doAuthRequest(t, app, "/api/echo", tokenFor(t, "WAREHOUSE", []string{"w1", "w2"}))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "WAREHOUSE", body["scope"])
	got := strings.Split(body["warehouses"].(string), ",")
	assert.ElementsMatch(t, []string{"w1", "w2"}, got)
}

// Un token válido de otra empresa no sirve en el dominio de este tenant.
func TestAuthMiddleware_TokenDeOtraEmpresaEs403(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.TenantMiddleware(testResolver()))
	app.Get("/api/protected", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	// testCompanyID no coincide con la empresa de acme.tuapp.com.
	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.Host = "acme.tuapp.com"
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "COMPANY", nil))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "TENANT_MISMATCH", body["code"])
}

// Sanity del contrato fail-closed del scope usado por el middleware.
func TestAuthMiddleware_ScopeValidContrato(t *testing.T) {
	assert.True(t, authz.ScopeCompany.Valid())
	assert.True(t, authz.ScopeWarehouse.Valid())
	assert.False(t, authz.RoleScope("").Valid())
	assert.False(t, authz.RoleScope("ADMIN").Valid())
}
