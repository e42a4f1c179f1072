package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/textutil"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// searchText texto de búsqueda sin tildes ni mayúsculas, mantenido en cada escritura.
func searchText(p *entity.Product) string {
	return textutil.Fold(strings.Join([]string{p.SKU, p.Name, p.Barcode, p.Brand}, " "))
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, company_id, sku, barcode, name, brand, category_id, uom, price, status, search_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.CompanyID, product.SKU, product.Barcode, product.Name,
		product.Brand, product.CategoryID, product.UoM, product.Price, product.Status,
		searchText(product), product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID dentro de la empresa.
func (r *ProductRepo) GetByID(companyID, id string) (*entity.Product, error) {
	query := `
		SELECT id, company_id, sku, barcode, name, brand, COALESCE(category_id, ''), uom, price, status, created_at, updated_at
		FROM products WHERE company_id = $1 AND id = $2`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, companyID, id).Scan(
		&p.ID, &p.CompanyID, &p.SKU, &p.Barcode, &p.Name, &p.Brand,
		&p.CategoryID, &p.UoM, &p.Price, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza un producto existente. El SKU es inmutable.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET barcode = $3, name = $4, brand = $5, category_id = NULLIF($6, ''),
			uom = $7, price = $8, status = $9, search_text = $10, updated_at = $11
		WHERE company_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		product.CompanyID, product.ID, product.Barcode, product.Name, product.Brand,
		product.CategoryID, product.UoM, product.Price, product.Status,
		searchText(product), product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// SKUExists verifica unicidad del SKU dentro de la empresa.
func (r *ProductRepo) SKUExists(companyID, sku string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM products WHERE company_id = $1 AND sku = $2)`,
		companyID, sku,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check sku: %w", err)
	}
	return exists, nil
}

// Search busca en el catálogo con filtros y orden. f.Q llega ya sin tildes.
func (r *ProductRepo) Search(ctx context.Context, companyID string, f repository.ProductFilter) ([]*entity.Product, int, error) {
	where := []string{"company_id = $1"}
	args := []any{companyID}

	if f.Q != "" {
		args = append(args, "%"+f.Q+"%")
		where = append(where, fmt.Sprintf("search_text LIKE $%d", len(args)))
	}
	if f.CategoryID != "" && f.CategoryID != "all" {
		args = append(args, f.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if f.Status != "" && f.Status != "ALL" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.UoM != "" {
		args = append(args, f.UoM)
		where = append(where, fmt.Sprintf("uom = $%d", len(args)))
	}
	if f.Brand != "" {
		args = append(args, f.Brand)
		where = append(where, fmt.Sprintf("brand = $%d", len(args)))
	}
	whereSQL := strings.Join(where, " AND ")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE `+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	orderBy := "name ASC"
	switch f.Sort {
	case "skuAsc":
		orderBy = "sku ASC"
	case "priceAsc":
		orderBy = "price ASC"
	case "priceDesc":
		orderBy = "price DESC"
	case "createdDesc":
		orderBy = "created_at DESC"
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`
		SELECT id, company_id, sku, barcode, name, brand, COALESCE(category_id, ''), uom, price, status, created_at, updated_at
		FROM products WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		whereSQL, orderBy, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.SKU, &p.Barcode, &p.Name, &p.Brand,
			&p.CategoryID, &p.UoM, &p.Price, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

// SearchPurchasing productos con existencia agregada para el buscador de compras.
func (r *ProductRepo) SearchPurchasing(ctx context.Context, companyID, q string, limit, offset int) ([]repository.PurchasingRow, int, error) {
	where := "p.company_id = $1 AND p.status = 'ACTIVE'"
	args := []any{companyID}
	if q != "" {
		args = append(args, "%"+q+"%")
		where += fmt.Sprintf(" AND p.search_text LIKE $%d", len(args))
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products p WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count purchasing: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT
			p.id, p.sku, p.name, p.brand, p.uom,
			COALESCE(SUM(s.qty), 0)                              AS on_hand,
			COUNT(DISTINCT s.location_id) FILTER (WHERE s.qty > 0) AS locations_count,
			MAX(m.ts)                                            AS last_movement_at
		FROM products p
		LEFT JOIN stock_entries s ON s.product_id = p.id
		LEFT JOIN movements     m ON m.product_id = p.id
		WHERE %s
		GROUP BY p.id, p.sku, p.name, p.brand, p.uom
		ORDER BY p.name
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search purchasing: %w", err)
	}
	defer rows.Close()
	var list []repository.PurchasingRow
	for rows.Next() {
		var row repository.PurchasingRow
		if err := rows.Scan(&row.ProductID, &row.SKU, &row.Name, &row.Brand, &row.UoM,
			&row.OnHand, &row.LocationsCount, &row.LastMovementAt); err != nil {
			return nil, 0, fmt.Errorf("scan purchasing: %w", err)
		}
		list = append(list, row)
	}
	return list, total, rows.Err()
}
