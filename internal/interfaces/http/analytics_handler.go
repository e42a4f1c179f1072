package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// AnalyticsHandler tableros de indicadores del almacén.
type AnalyticsHandler struct {
	uc *usecase.AnalyticsUseCase
}

// NewAnalyticsHandler construye el handler de analítica.
func NewAnalyticsHandler(uc *usecase.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Overview godoc
// @Summary      KPIs generales del almacén
// @Tags         analytics
// @Produce      json
// @Param        warehouse  query  string  false  "id de bodega o all"
// @Success      200  {object}  dto.OverviewResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/analytics/overview [get]
func (h *AnalyticsHandler) Overview(c *fiber.Ctx) error {
	out, err := h.uc.Overview(c.Context(), GetAuthz(c), c.Query("warehouse"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Inventory godoc
// @Summary      Carga por bodega y segmentación ABC
// @Tags         analytics
// @Produce      json
// @Param        warehouse  query  string  false  "id de bodega o all"
// @Success      200  {object}  dto.InventoryAnalyticsResponse
// @Router       /api/analytics/inventory [get]
func (h *AnalyticsHandler) Inventory(c *fiber.Ctx) error {
	out, err := h.uc.Inventory(c.Context(), GetAuthz(c), c.Query("warehouse"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Operations godoc
// @Summary      Actividad operativa por motivo
// @Tags         analytics
// @Produce      json
// @Param        warehouse  query  string  false  "id de bodega o all"
// @Success      200  {object}  dto.OperationsAnalyticsResponse
// @Router       /api/analytics/operations [get]
func (h *AnalyticsHandler) Operations(c *fiber.Ctx) error {
	out, err := h.uc.Operations(c.Context(), GetAuthz(c), c.Query("warehouse"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
