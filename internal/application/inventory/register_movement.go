package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/authz"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de inventario entre ubicaciones
// de forma transaccional: delta en origen, delta en destino y registro del
// movimiento se confirman juntos o no se confirma nada.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		locationRepo: locationRepo,
	}
}

// MovementInput entrada para registrar un movimiento.
// FromLocationID vacío = entrada; ToLocationID vacío = salida.
type MovementInput struct {
	ProductID      string
	FromLocationID string
	ToLocationID   string
	Qty            decimal.Decimal
	Reason         string
	Lot            string
}

func validReason(reason string) bool {
	switch reason {
	case entity.MovementReceive, entity.MovementPutaway, entity.MovementPick,
		entity.MovementAdjust, entity.MovementTransfer, entity.MovementReturn:
		return true
	}
	return false
}

// endpointsValid verifica origen/destino mínimos según el motivo.
// RECEIVE y RETURN entran (solo destino), PICK sale (solo origen),
// PUTAWAY y TRANSFER mueven (ambos), ADJUST acepta cualquiera de los dos.
func endpointsValid(reason, from, to string) bool {
	switch reason {
	case entity.MovementReceive, entity.MovementReturn:
		return from == "" && to != ""
	case entity.MovementPick:
		return from != "" && to == ""
	case entity.MovementPutaway, entity.MovementTransfer:
		return from != "" && to != "" && from != to
	case entity.MovementAdjust:
		return from != "" || to != ""
	}
	return false
}

// Register valida producto, ubicaciones y permisos de bodega; luego aplica
// los deltas y guarda el movimiento en una sola transacción.
//
// El guard de asignación corre sobre las DOS bodegas involucradas: un scope
// WAREHOUSE no puede sacar stock de una bodega ajena ni meterlo en una.
func (uc *RegisterMovementUseCase) Register(ctx context.Context, ac authz.Context, in MovementInput) (*dto.MovementItem, error) {
	if !validReason(in.Reason) || !in.Qty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.ProductID == "" || !endpointsValid(in.Reason, in.FromLocationID, in.ToLocationID) {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(ac.CompanyID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	var fromCode, toCode string
	if in.FromLocationID != "" {
		loc, err := uc.locationRepo.GetByID(ac.CompanyID, in.FromLocationID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, domain.ErrNotFound
		}
		if err := authz.AssertWarehouseAllowed(loc.WarehouseID, ac.RoleScope, ac.AllowedWarehouseIDs); err != nil {
			return nil, err
		}
		fromCode = loc.Code
	}
	if in.ToLocationID != "" {
		loc, err := uc.locationRepo.GetByID(ac.CompanyID, in.ToLocationID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, domain.ErrNotFound
		}
		if err := authz.AssertWarehouseAllowed(loc.WarehouseID, ac.RoleScope, ac.AllowedWarehouseIDs); err != nil {
			return nil, err
		}
		toCode = loc.Code
	}

	now := time.Now()
	mov := &entity.Movement{
		ID:             uuid.New().String(),
		CompanyID:      ac.CompanyID,
		ProductID:      in.ProductID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Qty:            in.Qty,
		Reason:         in.Reason,
		Lot:            in.Lot,
		TS:             now,
		CreatedBy:      ac.UserID,
		CreatedAt:      now,
	}

	// Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace).
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error {
		if in.FromLocationID != "" {
			if err := stockRepo.ApplyDelta(ctx, ac.CompanyID, in.ProductID, in.FromLocationID, in.Lot, in.Qty.Neg()); err != nil {
				return err
			}
		}
		if in.ToLocationID != "" {
			if err := stockRepo.ApplyDelta(ctx, ac.CompanyID, in.ProductID, in.ToLocationID, in.Lot, in.Qty); err != nil {
				return err
			}
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}

	return &dto.MovementItem{
		ID:     mov.ID,
		TS:     mov.TS,
		Reason: mov.Reason,
		SKU:    product.SKU,
		Name:   product.Name,
		Qty:    mov.Qty,
		From:   fromCode,
		To:     toCode,
	}, nil
}

// RegisterFromRequest adapta el request HTTP al caso de uso Register.
func (uc *RegisterMovementUseCase) RegisterFromRequest(ctx context.Context, ac authz.Context, in dto.RegisterMovementRequest) (*dto.MovementItem, error) {
	return uc.Register(ctx, ac, MovementInput{
		ProductID:      in.ProductID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Qty:            in.Qty,
		Reason:         in.Reason,
		Lot:            in.Lot,
	})
}
