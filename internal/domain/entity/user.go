package entity

import "time"

// Roles a nivel empresa (UserCompanyRole.Role).
const (
	RoleAdmin  = "ADMIN"
	RoleViewer = "VIEWER"
)

// User es una identidad global: el email es único en todo el sistema.
// La pertenencia a empresas se modela con UserCompanyRole (scope COMPANY)
// y UserWarehouseAccess (scope WAREHOUSE), nunca con un company_id directo.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserCompanyRole otorga a un usuario un rol sobre toda una empresa.
// Cualquier rol de empresa implica scope COMPANY: visibilidad de todas las bodegas.
type UserCompanyRole struct {
	UserID    string
	CompanyID string
	Role      string // ver constantes Role*
	CreatedAt time.Time
}

// UserWarehouseAccess otorga acceso a una bodega concreta (scope WAREHOUSE).
type UserWarehouseAccess struct {
	UserID      string
	WarehouseID string
	CreatedAt   time.Time
}
