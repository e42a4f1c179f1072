package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEntry es el stock actual de un producto en una ubicación, desglosado
// por lote o serie. Lot y Serial son excluyentes; ambos vacíos = stock suelto.
type StockEntry struct {
	ID         string
	CompanyID  string
	ProductID  string
	LocationID string
	Qty        decimal.Decimal
	Lot        string     // "" si no aplica
	Serial     string     // "" si no aplica; qty 1 por serie
	Expiry     *time.Time // nil = sin vencimiento
	UpdatedAt  time.Time
}
