package dto

import "time"

// LoginRequest credenciales de acceso. La empresa no viaja en el body:
// se resuelve por host antes de llegar aquí.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SessionResponse resultado del login: token firmado + snapshot de sesión.
type SessionResponse struct {
	Token        string       `json:"token"`
	User         UserResponse `json:"user"`
	CompanyID    string       `json:"company_id"`
	RoleScope    string       `json:"role_scope"` // COMPANY | WAREHOUSE
	WarehouseIDs []string     `json:"warehouse_ids"`
}

// RegisterRequest alta de usuario en el tenant actual. Exactamente uno:
// CompanyRole (scope COMPANY) o WarehouseIDs (scope WAREHOUSE).
type RegisterRequest struct {
	Email        string   `json:"email" validate:"required,email"`
	Password     string   `json:"password" validate:"required,min=8"`
	Name         string   `json:"name"`
	CompanyRole  string   `json:"company_role"`  // "" = sin rol de empresa
	WarehouseIDs []string `json:"warehouse_ids"` // grants por bodega
}

// UserResponse salida de un usuario (sin hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
