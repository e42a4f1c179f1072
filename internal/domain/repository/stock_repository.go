package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InventoryFilter filtros del resumen de inventario por producto.
type InventoryFilter struct {
	WarehouseIDs []string // nil = sin restricción
	Q            string
	LowThreshold *float64 // onHand <= umbral; nil = sin filtro
	Sort         string   // onHandDesc|onHandAsc|nameAsc|expiryAsc
	Limit        int
	Offset       int
}

// WarehouseQty desglose de existencia por bodega dentro de una fila de inventario.
type WarehouseQty struct {
	WarehouseID   string
	WarehouseName string
	Qty           float64
}

// InventoryRow resumen de existencia de un producto.
type InventoryRow struct {
	ProductID      string
	SKU            string
	Name           string
	UoM            string
	OnHand         float64
	LocationsCount int
	LotsCount      int
	EarliestExpiry *time.Time
	Breakdown      []WarehouseQty
}

// BatchFilter filtros del listado de lotes y series.
type BatchFilter struct {
	WarehouseIDs []string
	Q            string
	Kind         string // all|lot|serial
	ExpiryDays   *int   // vence en <= N días; nil = sin filtro
	Sort         string // expiryAsc|qtyDesc|qtyAsc|nameAsc
	Limit        int
	Offset       int
}

// BatchRow una existencia desglosada por lote o serie.
type BatchRow struct {
	ProductID     string
	SKU           string
	Name          string
	UoM           string
	LocationCode  string
	WarehouseID   string
	WarehouseName string
	Qty           float64
	Lot           string
	Serial        string
	Expiry        *time.Time
}

// ExpiryFilter filtros del listado de vencimientos.
type ExpiryFilter struct {
	WarehouseIDs []string
	Days         int  // ventana hacia adelante
	ShowExpired  bool // true = solo ya vencidos
	Limit        int
	Offset       int
}

// ExpiryRow una existencia con fecha de vencimiento y días restantes.
type ExpiryRow struct {
	SKU           string
	Name          string
	UoM           string
	Qty           float64
	Lot           string
	Expiry        time.Time
	DaysTo        int
	WarehouseID   string
	WarehouseName string
	LocationCode  string
}

// StockRepository define el puerto de lectura/mutación de existencias (DIP).
// Las lecturas agregan en SQL; ApplyDelta es la única mutación y corre
// siempre dentro de la transacción de un movimiento.
type StockRepository interface {
	InventorySummary(ctx context.Context, companyID string, f InventoryFilter) ([]InventoryRow, int, error)
	ListBatches(ctx context.Context, companyID string, f BatchFilter) ([]BatchRow, int, error)
	ListExpiries(ctx context.Context, companyID string, f ExpiryFilter) ([]ExpiryRow, int, error)
	// ApplyDelta suma (o resta) qty al stock de (product, location, lot).
	// Crea la fila si no existe; devuelve domain.ErrInsufficientStock si el
	// resultado quedaría negativo.
	ApplyDelta(ctx context.Context, companyID, productID, locationID, lot string, delta decimal.Decimal) error
}
