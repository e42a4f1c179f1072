package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/tenancy"
)

// AuthHandler maneja login y registro. La empresa nunca viaja en el body:
// se resuelve por host en cada request.
type AuthHandler struct {
	uc       *auth.AuthUseCase
	resolver *tenancy.Resolver
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, resolver *tenancy.Resolver) *AuthHandler {
	return &AuthHandler{uc: uc, resolver: resolver}
}

// tenantID resuelve la empresa del request. Login está en la lista de skip del
// TenantMiddleware, así que aquí se resuelve el host directamente.
func (h *AuthHandler) tenantID(c *fiber.Ctx) string {
	if t := GetTenant(c); t != nil {
		return t.ID
	}
	if t := h.resolver.Resolve(c.Hostname()); t != nil {
		return t.ID
	}
	return ""
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	companyID := h.tenantID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "COMPANY_UNRESOLVED", Error: "empresa no reconocida para este dominio"})
	}

	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Error: "email y password son requeridos"})
	}

	out, err := h.uc.Login(companyID, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Register godoc
// @Summary      Registrar usuario en el tenant actual
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, rol de empresa o bodegas"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	companyID := h.tenantID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "COMPANY_UNRESOLVED", Error: "empresa no reconocida para este dominio"})
	}

	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Error: "email y password son requeridos"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Error: "password debe tener al menos 8 caracteres"})
	}

	user, err := h.uc.RegisterUser(companyID, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}
