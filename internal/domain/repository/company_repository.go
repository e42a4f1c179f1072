package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetBySlug(slug string) (*entity.Company, error)
	List(limit, offset int) ([]*entity.Company, error)
	// HasActiveModule verifica si la empresa tiene un módulo SaaS activo y no vencido.
	HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error)
}
