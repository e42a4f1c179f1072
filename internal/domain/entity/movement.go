package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Motivos de movimiento de inventario.
const (
	MovementReceive  = "RECEIVE"  // entrada a staging (sin origen)
	MovementPutaway  = "PUTAWAY"  // de staging a ubicación final
	MovementPick     = "PICK"     // salida por pedido
	MovementAdjust   = "ADJUST"   // ajuste (origen o destino nulo)
	MovementTransfer = "TRANSFER" // traslado entre ubicaciones/bodegas
	MovementReturn   = "RETURN"   // devolución
)

// Movement es un movimiento de inventario entre ubicaciones.
// FromLocationID vacío = entrada; ToLocationID vacío = salida.
type Movement struct {
	ID             string
	CompanyID      string
	ProductID      string
	FromLocationID string // "" si es entrada
	ToLocationID   string // "" si es salida
	Qty            decimal.Decimal
	Reason         string // ver constantes Movement*
	Lot            string
	TS             time.Time
	CreatedBy      string // user_id del operador
	CreatedAt      time.Time
}
