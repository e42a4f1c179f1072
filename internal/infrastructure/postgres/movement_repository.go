package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de movimientos. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento. Origen y destino vacíos se guardan como NULL.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.Movement) error {
	query := `
		INSERT INTO movements (id, company_id, product_id, from_location_id, to_location_id, qty, reason, lot, ts, created_by, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.CompanyID, movement.ProductID,
		movement.FromLocationID, movement.ToLocationID,
		movement.Qty, movement.Reason, movement.Lot,
		movement.TS, movement.CreatedBy, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// List historial con producto y ubicaciones unidas. El filtro de bodegas
// acepta un movimiento si su ubicación de origen O la de destino cae dentro.
func (r *MovementRepo) List(ctx context.Context, companyID string, f repository.MovementFilter) ([]repository.MovementRow, int, error) {
	where := []string{"m.company_id = $1"}
	args := []any{companyID}

	if len(f.WarehouseIDs) > 0 {
		var fromIn, toIn string
		fromIn, args = whereIn("lf.warehouse_id", f.WarehouseIDs, args)
		toIn, args = whereIn("lt.warehouse_id", f.WarehouseIDs, args)
		where = append(where, "("+fromIn+" OR "+toIn+")")
	}
	if f.Q != "" {
		args = append(args, "%"+f.Q+"%")
		where = append(where, fmt.Sprintf("(p.search_text LIKE $%d OR lower(lf.code) LIKE $%d OR lower(lt.code) LIKE $%d)", len(args), len(args), len(args)))
	}
	if f.Reason != "" && f.Reason != "all" {
		args = append(args, f.Reason)
		where = append(where, fmt.Sprintf("m.reason = $%d", len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		where = append(where, fmt.Sprintf("m.ts >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		where = append(where, fmt.Sprintf("m.ts <= $%d", len(args)))
	}
	whereSQL := strings.Join(where, " AND ")

	base := `
		FROM movements m
		JOIN products p ON p.id = m.product_id
		LEFT JOIN locations  lf ON lf.id = m.from_location_id
		LEFT JOIN locations  lt ON lt.id = m.to_location_id
		LEFT JOIN warehouses wf ON wf.id = lf.warehouse_id
		LEFT JOIN warehouses wt ON wt.id = lt.warehouse_id
		WHERE ` + whereSQL

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) `+base, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`
		SELECT
			m.id, m.ts, m.reason, p.sku, p.name, m.qty,
			COALESCE(lf.code, ''), COALESCE(lt.code, ''),
			COALESCE(wf.id, ''),   COALESCE(wt.id, ''),
			COALESCE(wf.name, ''), COALESCE(wt.name, '')
		%s
		ORDER BY m.ts DESC
		LIMIT $%d OFFSET $%d`, base, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []repository.MovementRow
	for rows.Next() {
		var row repository.MovementRow
		if err := rows.Scan(&row.ID, &row.TS, &row.Reason, &row.SKU, &row.Name, &row.Qty,
			&row.FromCode, &row.ToCode, &row.FromWarehouseID, &row.ToWarehouseID,
			&row.FromWarehouse, &row.ToWarehouse); err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, row)
	}
	return list, total, rows.Err()
}
