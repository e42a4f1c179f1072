package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// PurchasingHandler búsqueda de catálogo con stock agregado para compras.
type PurchasingHandler struct {
	uc *usecase.ProductUseCase
}

// NewPurchasingHandler construye el handler de compras.
func NewPurchasingHandler(uc *usecase.ProductUseCase) *PurchasingHandler {
	return &PurchasingHandler{uc: uc}
}

// Search godoc
// @Summary      Buscar productos para reposición
// @Tags         purchasing
// @Produce      json
// @Param        q  query  string  false  "texto"
// @Success      200  {object}  dto.PurchasingSearchResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/purchasing/search [get]
func (h *PurchasingHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.SearchPurchasing(c.Context(), GetAuthz(c).CompanyID, c.Query("q"), parsePage(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
