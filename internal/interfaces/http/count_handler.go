package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// CountHandler conteos cíclicos.
type CountHandler struct {
	uc *usecase.CountUseCase
}

// NewCountHandler construye el handler de conteos.
func NewCountHandler(uc *usecase.CountUseCase) *CountHandler {
	return &CountHandler{uc: uc}
}

// List godoc
// @Summary      Listar conteos cíclicos
// @Tags         counts
// @Produce      json
// @Param        warehouse  query  string  false  "id de bodega o all"
// @Param        status     query  string  false  "PLANNED|IN_PROGRESS|CLOSED"
// @Success      200  {object}  dto.CountListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/counts [get]
func (h *CountHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetAuthz(c), c.Query("warehouse"), c.Query("status"), parsePage(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Planificar conteo cíclico
// @Tags         counts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCountRequest  true  "conteo"
// @Success      201   {object}  dto.CountResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/inventory/counts [post]
func (h *CountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetAuthz(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Avanzar o cerrar un conteo
// @Tags         counts
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "count id"
// @Param        body  body  dto.UpdateCountRequest  true  "cantidad contada o estado"
// @Success      200   {object}  dto.CountResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/counts/{id} [patch]
func (h *CountHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetAuthz(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
