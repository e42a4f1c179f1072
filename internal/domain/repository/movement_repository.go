package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MovementFilter filtros del historial de movimientos.
// Un movimiento cae dentro del filtro de bodegas si su ubicación de origen
// O la de destino pertenece a alguna de ellas.
type MovementFilter struct {
	WarehouseIDs []string
	Q            string // sku, nombre o código de ubicación
	Reason       string // "" o "all" = todos
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// MovementRow movimiento con producto y ubicaciones ya unidos para el listado.
type MovementRow struct {
	ID              string
	TS              time.Time
	Reason          string
	SKU             string
	Name            string
	Qty             decimal.Decimal
	FromCode        string // "" si entrada
	ToCode          string // "" si salida
	FromWarehouseID string
	ToWarehouseID   string
	FromWarehouse   string
	ToWarehouse     string
}

// MovementRepository define el puerto de persistencia para Movement (DIP).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	List(ctx context.Context, companyID string, f MovementFilter) ([]MovementRow, int, error)
}
