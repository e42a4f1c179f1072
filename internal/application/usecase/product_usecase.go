package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/textutil"
)

// ProductUseCase casos de uso del catálogo de productos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crea un producto. SKU único por empresa (ErrDuplicate); la categoría
// debe existir en el tenant (ErrInvalidInput).
func (uc *ProductUseCase) Create(companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	if sku == "" || strings.TrimSpace(in.Name) == "" || in.UoM == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Status != entity.ProductStatusActive && in.Status != entity.ProductStatusInactive {
		return nil, domain.ErrInvalidInput
	}
	cat, err := uc.categoryRepo.GetByID(companyID, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrInvalidInput
	}
	exists, err := uc.repo.SKUExists(companyID, sku)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		SKU:        sku,
		Barcode:    in.Barcode,
		Name:       in.Name,
		Brand:      in.Brand,
		CategoryID: in.CategoryID,
		UoM:        in.UoM,
		Price:      in.Price,
		Status:     in.Status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto del tenant. nil si no existe.
func (uc *ProductUseCase) GetByID(companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update edición parcial de un producto (SKU inmutable).
func (uc *ProductUseCase) Update(companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.CategoryID != nil {
		cat, err := uc.categoryRepo.GetByID(companyID, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, domain.ErrInvalidInput
		}
		product.CategoryID = *in.CategoryID
	}
	if in.UoM != nil {
		product.UoM = *in.UoM
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Status != nil {
		if *in.Status != entity.ProductStatusActive && *in.Status != entity.ProductStatusInactive {
			return nil, domain.ErrInvalidInput
		}
		product.Status = *in.Status
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Search busca en el catálogo. El término q se normaliza (minúsculas, sin
// tildes) antes de llegar al repositorio.
func (uc *ProductUseCase) Search(ctx context.Context, companyID string, f repository.ProductFilter, page dto.PageRequest) (*dto.ProductListResponse, error) {
	f.Q = textutil.Fold(strings.TrimSpace(f.Q))
	f.Limit = page.PageSize
	f.Offset = page.Offset()
	list, total, err := uc.repo.Search(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: total, Page: page.Page, PageSize: page.PageSize}, nil
}

// SearchPurchasing buscador del módulo de compras: producto + existencia agregada.
func (uc *ProductUseCase) SearchPurchasing(ctx context.Context, companyID, q string, page dto.PageRequest) (*dto.PurchasingSearchResponse, error) {
	rows, total, err := uc.repo.SearchPurchasing(ctx, companyID, textutil.Fold(strings.TrimSpace(q)), page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchasingItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.PurchasingItem{
			ProductID:      r.ProductID,
			SKU:            r.SKU,
			Name:           r.Name,
			Brand:          r.Brand,
			UoM:            r.UoM,
			OnHand:         r.OnHand,
			LocationsCount: r.LocationsCount,
			LastMovementAt: r.LastMovementAt,
		})
	}
	return &dto.PurchasingSearchResponse{Items: items, Total: total, Page: page.Page, PageSize: page.PageSize}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:         p.ID,
		CompanyID:  p.CompanyID,
		SKU:        p.SKU,
		Barcode:    p.Barcode,
		Name:       p.Name,
		Brand:      p.Brand,
		CategoryID: p.CategoryID,
		UoM:        p.UoM,
		Price:      p.Price,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
