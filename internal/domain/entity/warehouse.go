package entity

import "time"

// Warehouse representa una bodega o sucursal donde se almacena inventario.
// El par (CompanyID, Code) es único: el código se repite entre empresas.
type Warehouse struct {
	ID        string
	CompanyID string
	Code      string // código corto: "A1", "NORTE"
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
