package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ProductFilter filtros de búsqueda del catálogo.
// Q se compara contra name, sku y barcode sin tildes ni mayúsculas.
type ProductFilter struct {
	Q          string
	CategoryID string // "" o "all" = todas
	Status     string // "" o "ALL" = todos
	UoM        string
	Brand      string
	Sort       string // nameAsc|skuAsc|priceAsc|priceDesc|createdDesc
	Limit      int
	Offset     int
}

// PurchasingRow es una fila del buscador de compras: producto + existencia.
type PurchasingRow struct {
	ProductID      string
	SKU            string
	Name           string
	Brand          string
	UoM            string
	OnHand         float64
	LocationsCount int
	LastMovementAt *time.Time
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(companyID, id string) (*entity.Product, error)
	Update(product *entity.Product) error
	SKUExists(companyID, sku string) (bool, error)
	Search(ctx context.Context, companyID string, f ProductFilter) ([]*entity.Product, int, error)
	// SearchPurchasing busca productos con su existencia agregada para el
	// módulo de compras (solo lectura).
	SearchPurchasing(ctx context.Context, companyID, q string, limit, offset int) ([]PurchasingRow, int, error)
}
