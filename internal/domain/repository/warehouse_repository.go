package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	// GetByCode busca por el par único (company_id, code).
	GetByCode(companyID, code string) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Warehouse, error)
	// ListAllByCompany devuelve todas las bodegas de la empresa ordenadas por nombre
	// (selector de bodega de la UI; el usecase aplica el allow-list de la sesión).
	ListAllByCompany(companyID string) ([]*entity.Warehouse, error)
	Delete(id string) error
}
