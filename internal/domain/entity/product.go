package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de producto.
const (
	ProductStatusActive   = "ACTIVE"
	ProductStatusInactive = "INACTIVE"
)

// Product representa un producto o SKU del catálogo (único por empresa).
// El stock se maneja por ubicación en StockEntry, nunca aquí.
type Product struct {
	ID         string
	CompanyID  string
	SKU        string // código único por empresa
	Barcode    string
	Name       string
	Brand      string
	CategoryID string
	UoM        string          // unidad de medida: "pz", "kg", "caja"
	Price      decimal.Decimal // precio de lista
	Status     string          // ACTIVE | INACTIVE
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Category agrupa productos dentro de una empresa (nombre único por empresa).
type Category struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
