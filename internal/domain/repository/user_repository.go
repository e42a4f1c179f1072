package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User y sus grants (DIP).
// El email es global: FindByEmail no recibe empresa.
type UserRepository interface {
	Create(user *entity.User) error
	FindByEmail(email string) (*entity.User, error)
	GetByID(id string) (*entity.User, error)

	// ListCompanyRoles devuelve los roles del usuario en la empresa indicada.
	ListCompanyRoles(userID, companyID string) ([]*entity.UserCompanyRole, error)
	// ListWarehouseGrants devuelve los accesos por bodega del usuario
	// filtrados a bodegas de la empresa indicada (join con warehouses:
	// los grants cross-tenant nunca salen de aquí).
	ListWarehouseGrants(userID, companyID string) ([]*entity.UserWarehouseAccess, error)

	GrantCompanyRole(role *entity.UserCompanyRole) error
	GrantWarehouseAccess(grant *entity.UserWarehouseAccess) error
}
