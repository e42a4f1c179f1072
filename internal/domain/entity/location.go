package entity

import "time"

// Location es una ubicación física dentro de una bodega (rack-pasillo-nivel).
// Capacity en unidades; 0 = sin control de capacidad.
type Location struct {
	ID          string
	CompanyID   string
	WarehouseID string
	Code        string // "A1-R1-B1", "STAGING"
	Capacity    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
