package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto.
type CreateProductRequest struct {
	SKU        string          `json:"sku" validate:"required"`
	Barcode    string          `json:"barcode"`
	Name       string          `json:"name" validate:"required"`
	Brand      string          `json:"brand"`
	CategoryID string          `json:"category_id" validate:"required"`
	UoM        string          `json:"uom" validate:"required"`
	Price      decimal.Decimal `json:"price"`
	Status     string          `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
}

// UpdateProductRequest edición parcial de producto (SKU inmutable).
type UpdateProductRequest struct {
	Barcode    *string          `json:"barcode"`
	Name       *string          `json:"name"`
	Brand      *string          `json:"brand"`
	CategoryID *string          `json:"category_id"`
	UoM        *string          `json:"uom"`
	Price      *decimal.Decimal `json:"price"`
	Status     *string          `json:"status"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID         string          `json:"id"`
	CompanyID  string          `json:"company_id"`
	SKU        string          `json:"sku"`
	Barcode    string          `json:"barcode,omitempty"`
	Name       string          `json:"name"`
	Brand      string          `json:"brand,omitempty"`
	CategoryID string          `json:"category_id"`
	UoM        string          `json:"uom"`
	Price      decimal.Decimal `json:"price"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado del catálogo.
type ProductListResponse struct {
	Items    []ProductResponse `json:"items"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
}

// CategoryResponse una categoría del catálogo.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NameListResponse listas planas (marcas, unidades de medida).
type NameListResponse struct {
	Items []string `json:"items"`
	Total int      `json:"total"`
}

// CreateNameRequest alta de un término plano (categoría, marca o UoM).
type CreateNameRequest struct {
	Name string `json:"name" validate:"required"`
}

// RenameRequest renombrar un término plano por nombre.
type RenameRequest struct {
	OldName string `json:"oldName" validate:"required"`
	NewName string `json:"newName" validate:"required"`
}

// RenameCategoryRequest renombrar una categoría por id.
type RenameCategoryRequest struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// PurchasingItem fila del buscador de compras.
type PurchasingItem struct {
	ProductID      string     `json:"product_id"`
	SKU            string     `json:"sku"`
	Name           string     `json:"name"`
	Brand          string     `json:"brand,omitempty"`
	UoM            string     `json:"uom"`
	OnHand         float64    `json:"onHand"`
	LocationsCount int        `json:"locationsCount"`
	LastMovementAt *time.Time `json:"lastMovementAt,omitempty"`
}

// PurchasingSearchResponse respuesta del buscador de compras.
type PurchasingSearchResponse struct {
	Items    []PurchasingItem `json:"items"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}
