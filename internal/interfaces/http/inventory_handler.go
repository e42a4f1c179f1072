package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
)

// InventoryHandler consultas de existencias y registro de movimientos.
type InventoryHandler struct {
	queryUC    *inventory.QueryUseCase
	registerUC *inventory.RegisterMovementUseCase
}

// NewInventoryHandler construye el handler de inventario.
func NewInventoryHandler(queryUC *inventory.QueryUseCase, registerUC *inventory.RegisterMovementUseCase) *InventoryHandler {
	return &InventoryHandler{queryUC: queryUC, registerUC: registerUC}
}

func parsePage(c *fiber.Ctx) dto.PageRequest {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	return page
}

// Summary godoc
// @Summary      Existencias por producto
// @Tags         inventory
// @Produce      json
// @Param        warehouse  query  string  false  "id de bodega o all"
// @Param        q          query  string  false  "texto"
// @Param        low        query  number  false  "umbral de stock bajo"
// @Param        sort       query  string  false  "nameAsc|onHandAsc|expiryAsc"
// @Success      200  {object}  dto.InventoryListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/summary [get]
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	q := inventory.SummaryQuery{
		Warehouse: c.Query("warehouse"),
		Q:         c.Query("q"),
		Sort:      c.Query("sort"),
		Page:      parsePage(c),
	}
	if raw := c.Query("low"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			q.LowThreshold = &v
		}
	}
	out, err := h.queryUC.Summary(c.Context(), GetAuthz(c), q)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Locations godoc
// @Summary      Ubicaciones con ocupación
// @Tags         inventory
// @Produce      json
// @Param        warehouse  query  string  false  "id de bodega o all"
// @Param        q          query  string  false  "código de ubicación"
// @Param        sort       query  string  false  "codeAsc|occupancyAsc|productsDesc"
// @Success      200  {object}  dto.LocationListResponse
// @Router       /api/inventory/locations [get]
func (h *InventoryHandler) Locations(c *fiber.Ctx) error {
	q := inventory.LocationsQuery{
		Warehouse: c.Query("warehouse"),
		Q:         c.Query("q"),
		Sort:      c.Query("sort"),
		Page:      parsePage(c),
	}
	out, err := h.queryUC.Locations(c.Context(), GetAuthz(c), q)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// CreateLocation godoc
// @Summary      Crear ubicación
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocationRequest  true  "ubicación"
// @Success      201   {object}  dto.LocationItem
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/locations [post]
func (h *InventoryHandler) CreateLocation(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	out, err := h.queryUC.CreateLocation(GetAuthz(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Batches godoc
// @Summary      Lotes y series
// @Tags         inventory
// @Produce      json
// @Param        warehouse  query  string  false  "id de bodega o all"
// @Param        kind       query  string  false  "all|lot|serial"
// @Param        expiryDays query  int     false  "vencen dentro de N días"
// @Success      200  {object}  dto.BatchListResponse
// @Router       /api/inventory/batches [get]
func (h *InventoryHandler) Batches(c *fiber.Ctx) error {
	q := inventory.BatchesQuery{
		Warehouse: c.Query("warehouse"),
		Q:         c.Query("q"),
		Kind:      c.Query("kind", "all"),
		Sort:      c.Query("sort"),
		Page:      parsePage(c),
	}
	if raw := c.Query("expiryDays"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			q.ExpiryDays = &v
		}
	}
	out, err := h.queryUC.Batches(c.Context(), GetAuthz(c), q)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Expiries godoc
// @Summary      Próximos vencimientos
// @Tags         inventory
// @Produce      json
// @Param        warehouse  query  string  false  "id de bodega o all"
// @Param        days       query  int     false  "ventana en días (30 por defecto)"
// @Param        expired    query  bool    false  "incluir ya vencidos"
// @Success      200  {object}  dto.ExpiryListResponse
// @Router       /api/inventory/expiries [get]
func (h *InventoryHandler) Expiries(c *fiber.Ctx) error {
	q := inventory.ExpiriesQuery{
		Warehouse:   c.Query("warehouse"),
		Days:        c.QueryInt("days"),
		ShowExpired: c.QueryBool("expired"),
		Page:        parsePage(c),
	}
	out, err := h.queryUC.Expiries(c.Context(), GetAuthz(c), q)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Historial de movimientos
// @Tags         inventory
// @Produce      json
// @Param        warehouse  query  string  false  "id de bodega o all"
// @Param        reason     query  string  false  "RECEIVE|PUTAWAY|PICK|ADJUST|TRANSFER|RETURN"
// @Param        from       query  string  false  "fecha desde (RFC3339)"
// @Param        to         query  string  false  "fecha hasta (RFC3339)"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	q := inventory.MovementsQuery{
		Warehouse: c.Query("warehouse"),
		Q:         c.Query("q"),
		Reason:    c.Query("reason"),
		Page:      parsePage(c),
	}
	if raw := c.Query("from"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			q.From = &t
		}
	}
	if raw := c.Query("to"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			q.To = &t
		}
	}
	out, err := h.queryUC.Movements(c.Context(), GetAuthz(c), q)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "movimiento"
// @Success      201   {object}  dto.MovementItem
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	out, err := h.registerUC.RegisterFromRequest(c.Context(), GetAuthz(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
