package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(companyID, id string) (*entity.Category, error)
	ListByCompany(companyID string) ([]*entity.Category, error)
	// NameExists verifica unicidad (case-insensitive) dentro de la empresa,
	// excluyendo opcionalmente un id (para renombrar).
	NameExists(companyID, name, excludeID string) (bool, error)
	Rename(companyID, id, name string) error
}
