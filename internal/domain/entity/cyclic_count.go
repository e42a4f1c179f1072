package entity

import "time"

// Estados de un conteo cíclico.
const (
	CountStatusPlanned    = "PLANNED"
	CountStatusInProgress = "IN_PROGRESS"
	CountStatusClosed     = "CLOSED"
)

// Alcance de un conteo cíclico.
const (
	CountScopeByLocation = "BY_LOCATION"
	CountScopeByProduct  = "BY_PRODUCT"
)

// CyclicCount es un conteo cíclico programado sobre una bodega.
// Es una entidad con scope de bodega: su alta y edición pasan por el
// guard de asignación de almacén.
type CyclicCount struct {
	ID          string
	CompanyID   string
	Code        string // "CC-001"
	Status      string // ver CountStatus*
	WarehouseID string
	Area        string // pasillo/zona opcional ("" = toda la bodega)
	Scope       string // ver CountScope*
	ScheduledAt time.Time
	Planned     int // posiciones/productos a contar
	Counted     int // avance
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
