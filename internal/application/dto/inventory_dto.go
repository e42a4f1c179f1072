package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// WarehouseQtyDTO desglose por bodega de una fila de inventario.
type WarehouseQtyDTO struct {
	WarehouseID string  `json:"warehouseId"`
	Warehouse   string  `json:"warehouse"`
	Qty         float64 `json:"qty"`
}

// InventoryItem resumen de existencia de un producto.
type InventoryItem struct {
	ProductID      string            `json:"productId"`
	SKU            string            `json:"sku"`
	Name           string            `json:"name"`
	UoM            string            `json:"uom"`
	OnHand         float64           `json:"onHand"`
	LocationsCount int               `json:"locationsCount"`
	LotsCount      int               `json:"lotsCount"`
	EarliestExpiry *time.Time        `json:"earliestExpiry,omitempty"`
	Breakdown      []WarehouseQtyDTO `json:"breakdown"`
}

// InventoryListResponse resumen de inventario paginado.
type InventoryListResponse struct {
	Items    []InventoryItem `json:"items"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
}

// LocationItem fila del listado de ubicaciones con ocupación.
type LocationItem struct {
	LocationID    string  `json:"locationId"`
	Code          string  `json:"code"`
	WarehouseID   string  `json:"warehouseId"`
	Warehouse     string  `json:"warehouse"`
	Capacity      int     `json:"capacity"`
	OnHand        float64 `json:"onHand"`
	ProductsCount int     `json:"productsCount"`
	Occupancy     int     `json:"occupancy"`
}

// LocationListResponse listado de ubicaciones paginado.
type LocationListResponse struct {
	Items    []LocationItem `json:"items"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

// CreateLocationRequest alta de ubicación (pasa por el guard de bodega).
type CreateLocationRequest struct {
	WarehouseID string `json:"warehouseId" validate:"required"`
	Code        string `json:"code" validate:"required"`
	Capacity    int    `json:"capacity"`
}

// BatchItem existencia desglosada por lote o serie.
type BatchItem struct {
	SKU       string     `json:"sku"`
	Name      string     `json:"name"`
	UoM       string     `json:"uom"`
	Location  string     `json:"location"`
	Warehouse string     `json:"warehouse"`
	Qty       float64    `json:"qty"`
	Lot       string     `json:"lot,omitempty"`
	Serial    string     `json:"serial,omitempty"`
	Expiry    *time.Time `json:"expiry,omitempty"`
}

// BatchListResponse listado de lotes/series paginado.
type BatchListResponse struct {
	Items    []BatchItem `json:"items"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

// ExpiryItem existencia próxima a vencer (o vencida).
type ExpiryItem struct {
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	UoM       string    `json:"uom"`
	Qty       float64   `json:"qty"`
	Lot       string    `json:"lot,omitempty"`
	Expiry    time.Time `json:"expiry"`
	DaysTo    int       `json:"daysTo"`
	Warehouse string    `json:"warehouse"`
	Location  string    `json:"location"`
}

// ExpiryListResponse listado de vencimientos paginado.
type ExpiryListResponse struct {
	Items    []ExpiryItem `json:"items"`
	Total    int          `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"pageSize"`
}

// RegisterMovementRequest alta de movimiento. Origen y destino opcionales
// según el motivo; al menos uno es obligatorio.
type RegisterMovementRequest struct {
	ProductID      string          `json:"productId" validate:"required"`
	FromLocationID string          `json:"fromLocationId"`
	ToLocationID   string          `json:"toLocationId"`
	Qty            decimal.Decimal `json:"qty" validate:"required"`
	Reason         string          `json:"reason" validate:"required"`
	Lot            string          `json:"lot"`
}

// MovementItem fila del historial de movimientos.
type MovementItem struct {
	ID     string          `json:"id"`
	TS     time.Time       `json:"ts"`
	Reason string          `json:"reason"`
	SKU    string          `json:"sku"`
	Name   string          `json:"name"`
	Qty    decimal.Decimal `json:"qty"`
	From   string          `json:"from,omitempty"`
	To     string          `json:"to,omitempty"`
	FromWh string          `json:"fromWh,omitempty"`
	ToWh   string          `json:"toWh,omitempty"`
}

// MovementListResponse historial de movimientos paginado.
type MovementListResponse struct {
	Items    []MovementItem `json:"items"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}
