package repository

import (
	"context"
	"time"
)

// OverviewKPIs tarjetas del dashboard de analítica.
type OverviewKPIs struct {
	OnHandUnits   float64
	ActiveSKUs    int
	Stockouts     int // productos activos con existencia cero
	NearExpiry30d int // lotes que vencen en los próximos 30 días
}

// TimeseriesPoint entradas/salidas netas de un día.
type TimeseriesPoint struct {
	Date time.Time
	In   float64
	Out  float64
	Net  float64
}

// TopProduct producto con más unidades movidas en el período.
type TopProduct struct {
	SKU   string
	Name  string
	Moved float64
}

// ABCSegment porcentaje del valor de inventario por segmento ABC.
type ABCSegment struct {
	Segment string // A | B | C
	Value   float64
}

// WarehouseLoad existencia total por bodega (analítica de inventario).
type WarehouseLoad struct {
	WarehouseID   string
	WarehouseName string
	OnHand        float64
	LocationsUsed int
}

// ReasonCount movimientos por motivo en el período (analítica de operaciones).
type ReasonCount struct {
	Reason string
	Count  int
	Units  float64
}

// AnalyticsRepository consultas de solo lectura para los dashboards.
// Todas reciben el filtro de bodegas ya calculado (nil = sin restricción);
// nunca re-derivan permisos.
type AnalyticsRepository interface {
	GetOverviewKPIs(ctx context.Context, companyID string, warehouseIDs []string) (OverviewKPIs, error)
	GetMovementTimeseries(ctx context.Context, companyID string, warehouseIDs []string, days int) ([]TimeseriesPoint, error)
	GetTopMovedProducts(ctx context.Context, companyID string, warehouseIDs []string, since time.Time, limit int) ([]TopProduct, error)
	GetABCSegments(ctx context.Context, companyID string) ([]ABCSegment, error)
	GetWarehouseLoads(ctx context.Context, companyID string, warehouseIDs []string) ([]WarehouseLoad, error)
	GetOperationsByReason(ctx context.Context, companyID string, warehouseIDs []string, days int) ([]ReasonCount, error)
}
