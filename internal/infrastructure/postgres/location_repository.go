package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	pool *pgxpool.Pool
}

// NewLocationRepository construye el adaptador de persistencia para ubicaciones.
func NewLocationRepository(pool *pgxpool.Pool) *LocationRepo {
	return &LocationRepo{pool: pool}
}

// Create persiste una nueva ubicación. El par (warehouse_id, code) es único.
func (r *LocationRepo) Create(location *entity.Location) error {
	query := `
		INSERT INTO locations (id, company_id, warehouse_id, code, capacity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(context.Background(), query,
		location.ID, location.CompanyID, location.WarehouseID, location.Code,
		location.Capacity, location.CreatedAt, location.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID dentro de la empresa.
func (r *LocationRepo) GetByID(companyID, id string) (*entity.Location, error) {
	query := `
		SELECT id, company_id, warehouse_id, code, capacity, created_at, updated_at
		FROM locations WHERE company_id = $1 AND id = $2`
	var l entity.Location
	err := r.pool.QueryRow(context.Background(), query, companyID, id).Scan(
		&l.ID, &l.CompanyID, &l.WarehouseID, &l.Code, &l.Capacity, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// ListOccupancy ubicaciones con existencia, conteo de productos y ocupación
// calculada en SQL: round(on_hand / capacity * 100) acotada a 100.
// Capacidad cero se reporta como ocupación cero.
func (r *LocationRepo) ListOccupancy(ctx context.Context, companyID string, f repository.LocationFilter) ([]repository.LocationOccupancy, int, error) {
	where := []string{"l.company_id = $1"}
	args := []any{companyID}

	if len(f.WarehouseIDs) > 0 {
		var in string
		in, args = whereIn("l.warehouse_id", f.WarehouseIDs, args)
		where = append(where, in)
	}
	if f.Q != "" {
		args = append(args, "%"+f.Q+"%")
		where = append(where, fmt.Sprintf("(lower(l.code) LIKE $%d OR lower(w.name) LIKE $%d)", len(args), len(args)))
	}
	whereSQL := strings.Join(where, " AND ")

	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM locations l
		JOIN warehouses w ON w.id = l.warehouse_id
		WHERE ` + whereSQL
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count locations: %w", err)
	}

	orderBy := "occupancy DESC"
	switch f.Sort {
	case "occupancyAsc":
		orderBy = "occupancy ASC"
	case "codeAsc":
		orderBy = "l.code ASC"
	case "productsDesc":
		orderBy = "products_count DESC"
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`
		SELECT
			l.id, l.code, l.warehouse_id, w.name, l.capacity,
			COALESCE(SUM(s.qty), 0)                                AS on_hand,
			COUNT(DISTINCT s.product_id) FILTER (WHERE s.qty > 0)  AS products_count,
			CASE WHEN l.capacity > 0
				THEN LEAST(ROUND(COALESCE(SUM(s.qty), 0) / l.capacity * 100), 100)::INT
				ELSE 0
			END                                                    AS occupancy
		FROM locations l
		JOIN warehouses w ON w.id = l.warehouse_id
		LEFT JOIN stock_entries s ON s.location_id = l.id
		WHERE %s
		GROUP BY l.id, l.code, l.warehouse_id, w.name, l.capacity
		ORDER BY %s
		LIMIT $%d OFFSET $%d`, whereSQL, orderBy, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []repository.LocationOccupancy
	for rows.Next() {
		var row repository.LocationOccupancy
		if err := rows.Scan(&row.LocationID, &row.Code, &row.WarehouseID, &row.WarehouseName,
			&row.Capacity, &row.OnHand, &row.ProductsCount, &row.Occupancy); err != nil {
			return nil, 0, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, row)
	}
	return list, total, rows.Err()
}
