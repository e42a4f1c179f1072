package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// LocationFilter filtros del listado de ubicaciones.
// WarehouseIDs nil = sin restricción (resultado del scope calculator).
type LocationFilter struct {
	WarehouseIDs []string
	Q            string
	Sort         string // occupancyDesc|occupancyAsc|codeAsc|productsDesc
	Limit        int
	Offset       int
}

// LocationOccupancy es una fila del listado de ubicaciones con su ocupación
// calculada en SQL: round(onHand/capacity*100) acotado a 100.
type LocationOccupancy struct {
	LocationID    string
	Code          string
	WarehouseID   string
	WarehouseName string
	Capacity      int
	OnHand        float64
	ProductsCount int
	Occupancy     int
}

// LocationRepository define el puerto de persistencia para Location (DIP).
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(companyID, id string) (*entity.Location, error)
	ListOccupancy(ctx context.Context, companyID string, f LocationFilter) ([]LocationOccupancy, int, error)
}
