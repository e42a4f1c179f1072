package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TaxonomyUseCase catálogos auxiliares del producto: categorías (con id)
// y listas planas de marcas y unidades de medida.
type TaxonomyUseCase struct {
	categoryRepo repository.CategoryRepository
	taxonomyRepo repository.TaxonomyRepository
}

// NewTaxonomyUseCase construye el caso de uso.
func NewTaxonomyUseCase(categoryRepo repository.CategoryRepository, taxonomyRepo repository.TaxonomyRepository) *TaxonomyUseCase {
	return &TaxonomyUseCase{categoryRepo: categoryRepo, taxonomyRepo: taxonomyRepo}
}

// ListCategories categorías del tenant.
func (uc *TaxonomyUseCase) ListCategories(companyID string) ([]dto.CategoryResponse, error) {
	list, err := uc.categoryRepo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return items, nil
}

// CreateCategory crea una categoría; el nombre es único por empresa (case-insensitive).
func (uc *TaxonomyUseCase) CreateCategory(companyID, name string) (*dto.CategoryResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	exists, err := uc.categoryRepo.NameExists(companyID, name, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	cat := &entity.Category{ID: uuid.New().String(), CompanyID: companyID, Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.categoryRepo.Create(cat); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: cat.ID, Name: cat.Name}, nil
}

// RenameCategory renombra una categoría existente.
func (uc *TaxonomyUseCase) RenameCategory(companyID string, in dto.RenameCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	cat, err := uc.categoryRepo.GetByID(companyID, in.ID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	exists, err := uc.categoryRepo.NameExists(companyID, name, in.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	if err := uc.categoryRepo.Rename(companyID, in.ID, name); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: in.ID, Name: name}, nil
}

// ListNames lista plana por tipo (brand | uom).
func (uc *TaxonomyUseCase) ListNames(companyID, kind string) (*dto.NameListResponse, error) {
	items, err := uc.taxonomyRepo.List(companyID, kind)
	if err != nil {
		return nil, err
	}
	return &dto.NameListResponse{Items: items, Total: len(items)}, nil
}

// AddName agrega un término a una lista plana; único por empresa y tipo.
func (uc *TaxonomyUseCase) AddName(companyID, kind, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrInvalidInput
	}
	exists, err := uc.taxonomyRepo.Exists(companyID, kind, name)
	if err != nil {
		return "", err
	}
	if exists {
		return "", domain.ErrDuplicate
	}
	if err := uc.taxonomyRepo.Add(companyID, kind, name); err != nil {
		return "", err
	}
	return name, nil
}

// RenameName renombra un término de una lista plana por su nombre actual.
func (uc *TaxonomyUseCase) RenameName(companyID, kind string, in dto.RenameRequest) (string, error) {
	from := strings.TrimSpace(in.OldName)
	to := strings.TrimSpace(in.NewName)
	if to == "" {
		return "", domain.ErrInvalidInput
	}
	exists, err := uc.taxonomyRepo.Exists(companyID, kind, from)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", domain.ErrNotFound
	}
	dup, err := uc.taxonomyRepo.Exists(companyID, kind, to)
	if err != nil {
		return "", err
	}
	if dup {
		return "", domain.ErrDuplicate
	}
	if err := uc.taxonomyRepo.Rename(companyID, kind, from, to); err != nil {
		return "", err
	}
	return to, nil
}
