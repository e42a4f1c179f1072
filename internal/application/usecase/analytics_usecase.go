package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/authz"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// AnalyticsUseCase dashboards de analítica. Calcula el filtro de bodegas una
// sola vez por request y lo pasa a todas las consultas: cada gráfico ve
// exactamente el mismo recorte de datos.
type AnalyticsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(analyticsRepo repository.AnalyticsRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{analyticsRepo: analyticsRepo}
}

// Overview KPIs, serie diaria de 14 días, top productos movidos y segmentos ABC.
func (uc *AnalyticsUseCase) Overview(ctx context.Context, ac authz.Context, warehouse string) (*dto.OverviewResponse, error) {
	scope, err := authz.ComputeWarehouseScope(warehouse, ac.RoleScope, ac.AllowedWarehouseIDs)
	if err != nil {
		return nil, err
	}

	kpis, err := uc.analyticsRepo.GetOverviewKPIs(ctx, ac.CompanyID, scope)
	if err != nil {
		return nil, err
	}
	series, err := uc.analyticsRepo.GetMovementTimeseries(ctx, ac.CompanyID, scope, 14)
	if err != nil {
		return nil, err
	}
	top, err := uc.analyticsRepo.GetTopMovedProducts(ctx, ac.CompanyID, scope, time.Now().AddDate(0, 0, -30), 5)
	if err != nil {
		return nil, err
	}
	abc, err := uc.analyticsRepo.GetABCSegments(ctx, ac.CompanyID)
	if err != nil {
		return nil, err
	}

	resp := &dto.OverviewResponse{
		KPIs: dto.OverviewKPIsDTO{
			OnHandUnits:   kpis.OnHandUnits,
			ActiveSKUs:    kpis.ActiveSKUs,
			Stockouts:     kpis.Stockouts,
			NearExpiry30d: kpis.NearExpiry30d,
		},
		Timeseries:  toTimeseriesDTO(series),
		TopProducts: make([]dto.TopProductDTO, 0, len(top)),
		ABC:         toABCDTO(abc),
	}
	for _, t := range top {
		resp.TopProducts = append(resp.TopProducts, dto.TopProductDTO{SKU: t.SKU, Name: t.Name, Moved: t.Moved})
	}
	return resp, nil
}

// Inventory carga por bodega y segmentos ABC.
func (uc *AnalyticsUseCase) Inventory(ctx context.Context, ac authz.Context, warehouse string) (*dto.InventoryAnalyticsResponse, error) {
	scope, err := authz.ComputeWarehouseScope(warehouse, ac.RoleScope, ac.AllowedWarehouseIDs)
	if err != nil {
		return nil, err
	}
	loads, err := uc.analyticsRepo.GetWarehouseLoads(ctx, ac.CompanyID, scope)
	if err != nil {
		return nil, err
	}
	abc, err := uc.analyticsRepo.GetABCSegments(ctx, ac.CompanyID)
	if err != nil {
		return nil, err
	}
	resp := &dto.InventoryAnalyticsResponse{
		Loads: make([]dto.WarehouseLoadDTO, 0, len(loads)),
		ABC:   toABCDTO(abc),
	}
	for _, l := range loads {
		resp.Loads = append(resp.Loads, dto.WarehouseLoadDTO{
			WarehouseID:   l.WarehouseID,
			Warehouse:     l.WarehouseName,
			OnHand:        l.OnHand,
			LocationsUsed: l.LocationsUsed,
		})
	}
	return resp, nil
}

// Operations movimientos por motivo y serie diaria de 30 días.
func (uc *AnalyticsUseCase) Operations(ctx context.Context, ac authz.Context, warehouse string) (*dto.OperationsAnalyticsResponse, error) {
	scope, err := authz.ComputeWarehouseScope(warehouse, ac.RoleScope, ac.AllowedWarehouseIDs)
	if err != nil {
		return nil, err
	}
	byReason, err := uc.analyticsRepo.GetOperationsByReason(ctx, ac.CompanyID, scope, 30)
	if err != nil {
		return nil, err
	}
	series, err := uc.analyticsRepo.GetMovementTimeseries(ctx, ac.CompanyID, scope, 30)
	if err != nil {
		return nil, err
	}
	resp := &dto.OperationsAnalyticsResponse{
		ByReason:   make([]dto.ReasonCountDTO, 0, len(byReason)),
		Timeseries: toTimeseriesDTO(series),
	}
	for _, r := range byReason {
		resp.ByReason = append(resp.ByReason, dto.ReasonCountDTO{Reason: r.Reason, Count: r.Count, Units: r.Units})
	}
	return resp, nil
}

func toTimeseriesDTO(series []repository.TimeseriesPoint) []dto.TimeseriesPointDTO {
	out := make([]dto.TimeseriesPointDTO, 0, len(series))
	for _, p := range series {
		out = append(out, dto.TimeseriesPointDTO{
			Date: p.Date.Format("01-02"),
			In:   p.In,
			Out:  p.Out,
			Net:  p.Net,
		})
	}
	return out
}

func toABCDTO(abc []repository.ABCSegment) []dto.ABCSegmentDTO {
	out := make([]dto.ABCSegmentDTO, 0, len(abc))
	for _, s := range abc {
		out = append(out, dto.ABCSegmentDTO{Segment: s.Segment, Value: s.Value})
	}
	return out
}
