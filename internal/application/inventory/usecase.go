package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/authz"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/textutil"
)

// QueryUseCase lecturas de inventario: resumen por producto, ubicaciones,
// lotes, vencimientos e historial de movimientos. Toda lectura pasa primero
// por el cálculo del scope de bodegas; los repos reciben el filtro ya resuelto.
type QueryUseCase struct {
	stockRepo     repository.StockRepository
	locationRepo  repository.LocationRepository
	movementRepo  repository.MovementRepository
	warehouseRepo repository.WarehouseRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(
	stockRepo repository.StockRepository,
	locationRepo repository.LocationRepository,
	movementRepo repository.MovementRepository,
	warehouseRepo repository.WarehouseRepository,
) *QueryUseCase {
	return &QueryUseCase{
		stockRepo:     stockRepo,
		locationRepo:  locationRepo,
		movementRepo:  movementRepo,
		warehouseRepo: warehouseRepo,
	}
}

// SummaryQuery parámetros de GET /api/inventory.
type SummaryQuery struct {
	Warehouse    string
	Q            string
	LowThreshold *float64
	Sort         string
	Page         dto.PageRequest
}

// Summary existencia agregada por producto, con desglose por bodega.
func (uc *QueryUseCase) Summary(ctx context.Context, ac authz.Context, q SummaryQuery) (*dto.InventoryListResponse, error) {
	scope, err := authz.ComputeWarehouseScope(q.Warehouse, ac.RoleScope, ac.AllowedWarehouseIDs)
	if err != nil {
		return nil, err
	}
	q.Page.Normalize()
	rows, total, err := uc.stockRepo.InventorySummary(ctx, ac.CompanyID, repository.InventoryFilter{
		WarehouseIDs: scope,
		Q:            textutil.Fold(q.Q),
		LowThreshold: q.LowThreshold,
		Sort:         q.Sort,
		Limit:        q.Page.PageSize,
		Offset:       q.Page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryItem, 0, len(rows))
	for _, r := range rows {
		breakdown := make([]dto.WarehouseQtyDTO, 0, len(r.Breakdown))
		for _, b := range r.Breakdown {
			breakdown = append(breakdown, dto.WarehouseQtyDTO{WarehouseID: b.WarehouseID, Warehouse: b.WarehouseName, Qty: b.Qty})
		}
		items = append(items, dto.InventoryItem{
			ProductID:      r.ProductID,
			SKU:            r.SKU,
			Name:           r.Name,
			UoM:            r.UoM,
			OnHand:         r.OnHand,
			LocationsCount: r.LocationsCount,
			LotsCount:      r.LotsCount,
			EarliestExpiry: r.EarliestExpiry,
			Breakdown:      breakdown,
		})
	}
	return &dto.InventoryListResponse{Items: items, Total: total, Page: q.Page.Page, PageSize: q.Page.PageSize}, nil
}

// LocationsQuery parámetros de GET /api/inventory/locations.
type LocationsQuery struct {
	Warehouse string
	Q         string
	Sort      string
	Page      dto.PageRequest
}

// Locations ubicaciones con ocupación calculada.
func (uc *QueryUseCase) Locations(ctx context.Context, ac authz.Context, q LocationsQuery) (*dto.LocationListResponse, error) {
	scope, err := authz.ComputeWarehouseScope(q.Warehouse, ac.RoleScope, ac.AllowedWarehouseIDs)
	if err != nil {
		return nil, err
	}
	q.Page.Normalize()
	rows, total, err := uc.locationRepo.ListOccupancy(ctx, ac.CompanyID, repository.LocationFilter{
		WarehouseIDs: scope,
		Q:            textutil.Fold(q.Q),
		Sort:         q.Sort,
		Limit:        q.Page.PageSize,
		Offset:       q.Page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.LocationItem{
			LocationID:    r.LocationID,
			Code:          r.Code,
			WarehouseID:   r.WarehouseID,
			Warehouse:     r.WarehouseName,
			Capacity:      r.Capacity,
			OnHand:        r.OnHand,
			ProductsCount: r.ProductsCount,
			Occupancy:     r.Occupancy,
		})
	}
	return &dto.LocationListResponse{Items: items, Total: total, Page: q.Page.Page, PageSize: q.Page.PageSize}, nil
}

// CreateLocation alta de ubicación. La bodega destino tiene que ser del tenant
// y estar permitida para la sesión.
func (uc *QueryUseCase) CreateLocation(ac authz.Context, in dto.CreateLocationRequest) (*dto.LocationItem, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" || in.WarehouseID == "" || in.Capacity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := authz.AssertWarehouseAllowed(in.WarehouseID, ac.RoleScope, ac.AllowedWarehouseIDs); err != nil {
		return nil, err
	}
	wh, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil || wh.CompanyID != ac.CompanyID {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	loc := &entity.Location{
		ID:          uuid.New().String(),
		CompanyID:   ac.CompanyID,
		WarehouseID: in.WarehouseID,
		Code:        strings.ToUpper(code),
		Capacity:    in.Capacity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.locationRepo.Create(loc); err != nil {
		return nil, err
	}
	return &dto.LocationItem{
		LocationID:  loc.ID,
		Code:        loc.Code,
		WarehouseID: loc.WarehouseID,
		Warehouse:   wh.Name,
		Capacity:    loc.Capacity,
	}, nil
}

// BatchesQuery parámetros de GET /api/inventory/batches.
type BatchesQuery struct {
	Warehouse  string
	Q          string
	Kind       string // all|lot|serial
	ExpiryDays *int
	Sort       string
	Page       dto.PageRequest
}

// Batches existencias desglosadas por lote o número de serie.
func (uc *QueryUseCase) Batches(ctx context.Context, ac authz.Context, q BatchesQuery) (*dto.BatchListResponse, error) {
	scope, err := authz.ComputeWarehouseScope(q.Warehouse, ac.RoleScope, ac.AllowedWarehouseIDs)
	if err != nil {
		return nil, err
	}
	q.Page.Normalize()
	rows, total, err := uc.stockRepo.ListBatches(ctx, ac.CompanyID, repository.BatchFilter{
		WarehouseIDs: scope,
		Q:            textutil.Fold(q.Q),
		Kind:         q.Kind,
		ExpiryDays:   q.ExpiryDays,
		Sort:         q.Sort,
		Limit:        q.Page.PageSize,
		Offset:       q.Page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.BatchItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.BatchItem{
			SKU:       r.SKU,
			Name:      r.Name,
			UoM:       r.UoM,
			Location:  r.LocationCode,
			Warehouse: r.WarehouseName,
			Qty:       r.Qty,
			Lot:       r.Lot,
			Serial:    r.Serial,
			Expiry:    r.Expiry,
		})
	}
	return &dto.BatchListResponse{Items: items, Total: total, Page: q.Page.Page, PageSize: q.Page.PageSize}, nil
}

// ExpiriesQuery parámetros de GET /api/inventory/expiries.
type ExpiriesQuery struct {
	Warehouse   string
	Days        int
	ShowExpired bool
	Page        dto.PageRequest
}

// Expiries existencias que vencen dentro de la ventana (o ya vencidas).
func (uc *QueryUseCase) Expiries(ctx context.Context, ac authz.Context, q ExpiriesQuery) (*dto.ExpiryListResponse, error) {
	scope, err := authz.ComputeWarehouseScope(q.Warehouse, ac.RoleScope, ac.AllowedWarehouseIDs)
	if err != nil {
		return nil, err
	}
	if q.Days <= 0 {
		q.Days = 30
	}
	q.Page.Normalize()
	rows, total, err := uc.stockRepo.ListExpiries(ctx, ac.CompanyID, repository.ExpiryFilter{
		WarehouseIDs: scope,
		Days:         q.Days,
		ShowExpired:  q.ShowExpired,
		Limit:        q.Page.PageSize,
		Offset:       q.Page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ExpiryItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.ExpiryItem{
			SKU:       r.SKU,
			Name:      r.Name,
			UoM:       r.UoM,
			Qty:       r.Qty,
			Lot:       r.Lot,
			Expiry:    r.Expiry,
			DaysTo:    r.DaysTo,
			Warehouse: r.WarehouseName,
			Location:  r.LocationCode,
		})
	}
	return &dto.ExpiryListResponse{Items: items, Total: total, Page: q.Page.Page, PageSize: q.Page.PageSize}, nil
}

// MovementsQuery parámetros de GET /api/inventory/movements.
type MovementsQuery struct {
	Warehouse string
	Q         string
	Reason    string
	From      *time.Time
	To        *time.Time
	Page      dto.PageRequest
}

// Movements historial de movimientos. Un movimiento es visible si su origen
// O su destino cae dentro de las bodegas permitidas.
func (uc *QueryUseCase) Movements(ctx context.Context, ac authz.Context, q MovementsQuery) (*dto.MovementListResponse, error) {
	scope, err := authz.ComputeWarehouseScope(q.Warehouse, ac.RoleScope, ac.AllowedWarehouseIDs)
	if err != nil {
		return nil, err
	}
	q.Page.Normalize()
	rows, total, err := uc.movementRepo.List(ctx, ac.CompanyID, repository.MovementFilter{
		WarehouseIDs: scope,
		Q:            textutil.Fold(q.Q),
		Reason:       q.Reason,
		From:         q.From,
		To:           q.To,
		Limit:        q.Page.PageSize,
		Offset:       q.Page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.MovementItem{
			ID:     r.ID,
			TS:     r.TS,
			Reason: r.Reason,
			SKU:    r.SKU,
			Name:   r.Name,
			Qty:    r.Qty,
			From:   r.FromCode,
			To:     r.ToCode,
			FromWh: r.FromWarehouse,
			ToWh:   r.ToWarehouse,
		})
	}
	return &dto.MovementListResponse{Items: items, Total: total, Page: q.Page.Page, PageSize: q.Page.PageSize}, nil
}
