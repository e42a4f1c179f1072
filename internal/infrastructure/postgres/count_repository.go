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

var _ repository.CountRepository = (*CountRepo)(nil)

// CountRepo implementación del puerto CountRepository sobre PostgreSQL.
type CountRepo struct {
	pool *pgxpool.Pool
}

// NewCountRepository construye el adaptador de conteos cíclicos.
func NewCountRepository(pool *pgxpool.Pool) *CountRepo {
	return &CountRepo{pool: pool}
}

// Create persiste un nuevo conteo. El par (company_id, code) es único.
func (r *CountRepo) Create(count *entity.CyclicCount) error {
	query := `
		INSERT INTO cyclic_counts (id, company_id, code, status, warehouse_id, area, scope, scheduled_at, planned, counted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.pool.Exec(context.Background(), query,
		count.ID, count.CompanyID, count.Code, count.Status, count.WarehouseID,
		count.Area, count.Scope, count.ScheduledAt, count.Planned, count.Counted,
		count.CreatedAt, count.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert count: %w", err)
	}
	return nil
}

// GetByID obtiene un conteo por ID dentro de la empresa.
func (r *CountRepo) GetByID(companyID, id string) (*entity.CyclicCount, error) {
	query := `
		SELECT id, company_id, code, status, warehouse_id, area, scope, scheduled_at, planned, counted, created_at, updated_at
		FROM cyclic_counts WHERE company_id = $1 AND id = $2`
	var c entity.CyclicCount
	err := r.pool.QueryRow(context.Background(), query, companyID, id).Scan(
		&c.ID, &c.CompanyID, &c.Code, &c.Status, &c.WarehouseID, &c.Area, &c.Scope,
		&c.ScheduledAt, &c.Planned, &c.Counted, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get count: %w", err)
	}
	return &c, nil
}

// Update actualiza estado y avance de un conteo.
func (r *CountRepo) Update(count *entity.CyclicCount) error {
	query := `
		UPDATE cyclic_counts SET status = $3, counted = $4, updated_at = $5
		WHERE company_id = $1 AND id = $2`
	_, err := r.pool.Exec(context.Background(), query,
		count.CompanyID, count.ID, count.Status, count.Counted, count.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update count: %w", err)
	}
	return nil
}

// List conteos ordenados por scheduled_at descendente.
func (r *CountRepo) List(companyID string, f repository.CountFilter) ([]*entity.CyclicCount, int, error) {
	where := []string{"company_id = $1"}
	args := []any{companyID}

	if len(f.WarehouseIDs) > 0 {
		var in string
		in, args = whereIn("warehouse_id", f.WarehouseIDs, args)
		where = append(where, in)
	}
	if f.Status != "" && f.Status != "ALL" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	whereSQL := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM cyclic_counts WHERE `+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count counts: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`
		SELECT id, company_id, code, status, warehouse_id, area, scope, scheduled_at, planned, counted, created_at, updated_at
		FROM cyclic_counts WHERE %s
		ORDER BY scheduled_at DESC
		LIMIT $%d OFFSET $%d`, whereSQL, len(args)-1, len(args))

	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list counts: %w", err)
	}
	defer rows.Close()
	var list []*entity.CyclicCount
	for rows.Next() {
		var c entity.CyclicCount
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Code, &c.Status, &c.WarehouseID, &c.Area,
			&c.Scope, &c.ScheduledAt, &c.Planned, &c.Counted, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan count: %w", err)
		}
		list = append(list, &c)
	}
	return list, total, rows.Err()
}
