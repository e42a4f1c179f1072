package dto

import "time"

// CreateCountRequest alta de conteo cíclico. WarehouseID pasa por el guard
// de asignación: un scope WAREHOUSE no puede programar conteos en bodegas ajenas.
type CreateCountRequest struct {
	Code        string    `json:"code" validate:"required"`
	WarehouseID string    `json:"warehouseId" validate:"required"`
	Area        string    `json:"area"`
	Scope       string    `json:"scope" validate:"required,oneof=BY_LOCATION BY_PRODUCT"`
	ScheduledAt time.Time `json:"scheduledAt" validate:"required"`
	Planned     int       `json:"planned"`
}

// UpdateCountRequest avance o cierre de un conteo.
type UpdateCountRequest struct {
	Status  *string `json:"status"`  // IN_PROGRESS | CLOSED
	Counted *int    `json:"counted"` // avance acumulado
}

// CountResponse salida de un conteo cíclico.
type CountResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Status      string    `json:"status"`
	WarehouseID string    `json:"warehouseId"`
	Area        string    `json:"area,omitempty"`
	Scope       string    `json:"scope"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Planned     int       `json:"planned"`
	Counted     int       `json:"counted"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CountListResponse listado de conteos.
type CountListResponse struct {
	Items []CountResponse `json:"items"`
	Total int             `json:"total"`
}
