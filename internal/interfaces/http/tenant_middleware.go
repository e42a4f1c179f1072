package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/tenancy"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// Locals keys del pipeline multi-tenant.
const (
	LocalTenant = "tenant" // *entity.TenantRef
	LocalAuthz  = "authz"  // authz.Context
)

// TenantMiddleware resuelve la empresa a partir del Host de la request y la
// deja en Locals. Corre antes que el middleware de sesión: sin tenant no hay
// request.
//
// Los prefijos en skip pasan sin resolver (health, login, docs). Un host no
// reconocido responde 401 JSON en rutas /api y redirige a /login en páginas.
func TenantMiddleware(resolver *tenancy.Resolver, skip ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		for _, prefix := range skip {
			if strings.HasPrefix(path, prefix) {
				return c.Next()
			}
		}

		tenant := resolver.Resolve(c.Hostname())
		if tenant == nil {
			if strings.HasPrefix(path, "/api") {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Code:  "COMPANY_UNRESOLVED",
					Error: "empresa no reconocida para este dominio",
				})
			}
			return c.Redirect("/login", fiber.StatusFound)
		}

		c.Locals(LocalTenant, tenant)
		c.Request().Header.Set("x-company-id", tenant.ID)
		c.Request().Header.Set("x-company-slug", tenant.Slug)

		// Único write del pipeline: refrescar la cookie de empresa si falta.
		if c.Cookies("companyId") == "" {
			c.Cookie(&fiber.Cookie{
				Name:     "companyId",
				Value:    tenant.ID,
				Path:     "/",
				Expires:  time.Now().Add(30 * 24 * time.Hour),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		return c.Next()
	}
}

// GetTenant devuelve el tenant resuelto para la request (nil si no hay).
func GetTenant(c *fiber.Ctx) *entity.TenantRef {
	v := c.Locals(LocalTenant)
	if v == nil {
		return nil
	}
	t, _ := v.(*entity.TenantRef)
	return t
}
