package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/authz"
	"github.com/jhoicas/Almacen-api/pkg/jwt"
)

// AuthMiddleware valida el token de sesión (Bearer header o cookie "token"),
// verifica que pertenezca al tenant resuelto y deja el authz.Context en Locals.
//
// El scope se evalúa fail-closed: un token sin role_scope válido es una sesión
// no autenticada. Con scope WAREHOUSE, un ?warehouse fuera del allow-list se
// rechaza aquí mismo con 403.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, fromCookie := extractToken(c)
		if tokenString == "" {
			return unauthorized(c, "MISSING_TOKEN", "sesión requerida")
		}

		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			if fromCookie {
				clearSessionCookie(c)
			}
			return unauthorized(c, "INVALID_TOKEN", "token inválido o expirado")
		}

		scope := authz.RoleScope(claims.RoleScope)
		if !scope.Valid() {
			if fromCookie {
				clearSessionCookie(c)
			}
			return unauthorized(c, "INVALID_TOKEN", "sesión sin scope válido")
		}

		// El token tiene que ser del tenant del host: un token válido de la
		// empresa A no sirve en el dominio de la empresa B.
		if tenant := GetTenant(c); tenant != nil && claims.CompanyID != tenant.ID {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:  "TENANT_MISMATCH",
				Error: "la sesión no pertenece a esta empresa",
			})
		}

		allowed := authz.NormalizeWarehouseIDs(claims.Warehouses)

		// Chequeo temprano del selector de bodega para rutas con ?warehouse.
		if requested := c.Query("warehouse"); requested != "" && requested != authz.AllWarehouses && scope == authz.ScopeWarehouse {
			if err := authz.AssertWarehouseAllowed(requested, scope, allowed); err != nil {
				if !strings.HasPrefix(c.Path(), "/api") {
					return c.Redirect("/", fiber.StatusFound)
				}
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Code:  "WAREHOUSE_NOT_ALLOWED",
					Error: "almacén no autorizado para esta sesión",
				})
			}
		}

		ac := authz.Context{
			UserID:              claims.UserID,
			CompanyID:           claims.CompanyID,
			RoleScope:           scope,
			AllowedWarehouseIDs: allowed,
		}
		c.Locals(LocalAuthz, ac)
		c.Request().Header.Set("x-role-scope", string(scope))
		c.Request().Header.Set("x-allowed-warehouses", strings.Join(allowed, ","))
		return c.Next()
	}
}

// GetAuthz devuelve el contexto de autorización de la sesión (después del middleware).
func GetAuthz(c *fiber.Ctx) authz.Context {
	v := c.Locals(LocalAuthz)
	if v == nil {
		return authz.Context{}
	}
	ac, _ := v.(authz.Context)
	return ac
}

// extractToken lee el token del header Authorization o de la cookie "token".
func extractToken(c *fiber.Ctx) (token string, fromCookie bool) {
	if authHeader := c.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1]), false
		}
		return "", false
	}
	return c.Cookies("token"), true
}

// clearSessionCookie invalida la cookie de sesión vencida o corrupta.
func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func unauthorized(c *fiber.Ctx, code, msg string) error {
	if !strings.HasPrefix(c.Path(), "/api") {
		return c.Redirect("/login", fiber.StatusFound)
	}
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Error: msg})
}
