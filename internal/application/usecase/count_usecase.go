package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/authz"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// CountUseCase conteos cíclicos de inventario.
type CountUseCase struct {
	countRepo     repository.CountRepository
	warehouseRepo repository.WarehouseRepository
}

// NewCountUseCase construye el caso de uso.
func NewCountUseCase(countRepo repository.CountRepository, warehouseRepo repository.WarehouseRepository) *CountUseCase {
	return &CountUseCase{countRepo: countRepo, warehouseRepo: warehouseRepo}
}

// Create programa un conteo. La bodega destino tiene que pertenecer al tenant
// y estar dentro del allow-list de la sesión.
func (uc *CountUseCase) Create(ac authz.Context, in dto.CreateCountRequest) (*dto.CountResponse, error) {
	if strings.TrimSpace(in.Code) == "" || strings.TrimSpace(in.WarehouseID) == "" || in.ScheduledAt.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.Scope != entity.CountScopeByLocation && in.Scope != entity.CountScopeByProduct {
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
	count := &entity.CyclicCount{
		ID:          uuid.New().String(),
		CompanyID:   ac.CompanyID,
		Code:        strings.TrimSpace(in.Code),
		Status:      entity.CountStatusPlanned,
		WarehouseID: in.WarehouseID,
		Area:        strings.TrimSpace(in.Area),
		Scope:       in.Scope,
		ScheduledAt: in.ScheduledAt,
		Planned:     in.Planned,
		Counted:     0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.countRepo.Create(count); err != nil {
		return nil, err
	}
	resp := toCountResponse(count)
	return &resp, nil
}

// Update registra avance o cierra un conteo. Solo transiciones hacia adelante:
// PLANNED -> IN_PROGRESS -> CLOSED. Un conteo cerrado no se reabre.
func (uc *CountUseCase) Update(ac authz.Context, id string, in dto.UpdateCountRequest) (*dto.CountResponse, error) {
	count, err := uc.countRepo.GetByID(ac.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if count == nil {
		return nil, domain.ErrNotFound
	}
	if err := authz.AssertWarehouseAllowed(count.WarehouseID, ac.RoleScope, ac.AllowedWarehouseIDs); err != nil {
		return nil, err
	}
	if count.Status == entity.CountStatusClosed {
		return nil, domain.ErrInvalidInput
	}

	if in.Counted != nil {
		if *in.Counted < 0 {
			return nil, domain.ErrInvalidInput
		}
		count.Counted = *in.Counted
		if count.Status == entity.CountStatusPlanned {
			count.Status = entity.CountStatusInProgress
		}
	}
	if in.Status != nil {
		switch *in.Status {
		case entity.CountStatusInProgress:
			count.Status = entity.CountStatusInProgress
		case entity.CountStatusClosed:
			count.Status = entity.CountStatusClosed
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	count.UpdatedAt = time.Now()
	if err := uc.countRepo.Update(count); err != nil {
		return nil, err
	}
	resp := toCountResponse(count)
	return &resp, nil
}

// List conteos visibles para la sesión, filtrables por estado y bodega.
func (uc *CountUseCase) List(ac authz.Context, warehouse, status string, page dto.PageRequest) (*dto.CountListResponse, error) {
	scope, err := authz.ComputeWarehouseScope(warehouse, ac.RoleScope, ac.AllowedWarehouseIDs)
	if err != nil {
		return nil, err
	}
	page.Normalize()
	list, total, err := uc.countRepo.List(ac.CompanyID, repository.CountFilter{
		WarehouseIDs: scope,
		Status:       status,
		Limit:        page.PageSize,
		Offset:       page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CountResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toCountResponse(c))
	}
	return &dto.CountListResponse{Items: items, Total: total}, nil
}

func toCountResponse(c *entity.CyclicCount) dto.CountResponse {
	return dto.CountResponse{
		ID:          c.ID,
		Code:        c.Code,
		Status:      c.Status,
		WarehouseID: c.WarehouseID,
		Area:        c.Area,
		Scope:       c.Scope,
		ScheduledAt: c.ScheduledAt,
		Planned:     c.Planned,
		Counted:     c.Counted,
		CreatedAt:   c.CreatedAt,
	}
}
