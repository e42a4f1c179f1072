package repository

import (
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// CountFilter filtros del listado de conteos cíclicos.
type CountFilter struct {
	WarehouseIDs []string // nil = sin restricción
	Status       string   // "" o "ALL" = todos
	Limit        int
	Offset       int
}

// CountRepository define el puerto de persistencia para CyclicCount (DIP).
type CountRepository interface {
	Create(count *entity.CyclicCount) error
	GetByID(companyID, id string) (*entity.CyclicCount, error)
	Update(count *entity.CyclicCount) error
	// List devuelve los conteos ordenados por scheduled_at descendente.
	List(companyID string, f CountFilter) ([]*entity.CyclicCount, int, error)
}
