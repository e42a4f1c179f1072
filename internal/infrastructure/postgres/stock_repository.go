package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de existencias. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// InventorySummary existencia agregada por producto con desglose por bodega.
// El desglose se resuelve en una segunda consulta sobre los productos de la página.
func (r *StockRepo) InventorySummary(ctx context.Context, companyID string, f repository.InventoryFilter) ([]repository.InventoryRow, int, error) {
	where := []string{"p.company_id = $1", "p.status = 'ACTIVE'"}
	args := []any{companyID}

	if len(f.WarehouseIDs) > 0 {
		var in string
		in, args = whereIn("l.warehouse_id", f.WarehouseIDs, args)
		where = append(where, in)
	}
	if f.Q != "" {
		args = append(args, "%"+f.Q+"%")
		where = append(where, fmt.Sprintf("p.search_text LIKE $%d", len(args)))
	}
	whereSQL := strings.Join(where, " AND ")

	having := ""
	if f.LowThreshold != nil {
		args = append(args, *f.LowThreshold)
		having = fmt.Sprintf("HAVING COALESCE(SUM(s.qty), 0) <= $%d", len(args))
	}

	base := fmt.Sprintf(`
		FROM products p
		LEFT JOIN stock_entries s ON s.product_id = p.id
		LEFT JOIN locations     l ON l.id = s.location_id
		WHERE %s
		GROUP BY p.id, p.sku, p.name, p.uom
		%s`, whereSQL, having)

	var total int
	countQuery := `SELECT COUNT(*) FROM (SELECT p.id ` + base + `) sub`
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count inventory: %w", err)
	}

	orderBy := "on_hand DESC"
	switch f.Sort {
	case "onHandAsc":
		orderBy = "on_hand ASC"
	case "nameAsc":
		orderBy = "p.name ASC"
	case "expiryAsc":
		orderBy = "earliest_expiry ASC NULLS LAST"
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`
		SELECT
			p.id, p.sku, p.name, p.uom,
			COALESCE(SUM(s.qty), 0)                                 AS on_hand,
			COUNT(DISTINCT s.location_id) FILTER (WHERE s.qty > 0)  AS locations_count,
			COUNT(DISTINCT s.lot) FILTER (WHERE s.lot <> '')        AS lots_count,
			MIN(s.expiry)                                           AS earliest_expiry
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`, base, orderBy, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("inventory summary: %w", err)
	}
	defer rows.Close()
	var list []repository.InventoryRow
	ids := make([]string, 0, f.Limit)
	for rows.Next() {
		var row repository.InventoryRow
		if err := rows.Scan(&row.ProductID, &row.SKU, &row.Name, &row.UoM,
			&row.OnHand, &row.LocationsCount, &row.LotsCount, &row.EarliestExpiry); err != nil {
			return nil, 0, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, row)
		ids = append(ids, row.ProductID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(list) == 0 {
		return list, total, nil
	}

	breakdown, err := r.warehouseBreakdown(ctx, ids, f.WarehouseIDs)
	if err != nil {
		return nil, 0, err
	}
	for i := range list {
		list[i].Breakdown = breakdown[list[i].ProductID]
	}
	return list, total, nil
}

// warehouseBreakdown existencia por bodega para un conjunto de productos.
func (r *StockRepo) warehouseBreakdown(ctx context.Context, productIDs, warehouseIDs []string) (map[string][]repository.WarehouseQty, error) {
	var in string
	args := []any{}
	in, args = whereIn("s.product_id", productIDs, args)
	where := []string{in}
	if len(warehouseIDs) > 0 {
		var whIn string
		whIn, args = whereIn("l.warehouse_id", warehouseIDs, args)
		where = append(where, whIn)
	}
	query := fmt.Sprintf(`
		SELECT s.product_id, w.id, w.name, SUM(s.qty)
		FROM stock_entries s
		JOIN locations  l ON l.id = s.location_id
		JOIN warehouses w ON w.id = l.warehouse_id
		WHERE %s
		GROUP BY s.product_id, w.id, w.name
		HAVING SUM(s.qty) > 0
		ORDER BY w.name`, strings.Join(where, " AND "))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("inventory breakdown: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]repository.WarehouseQty)
	for rows.Next() {
		var productID string
		var wq repository.WarehouseQty
		if err := rows.Scan(&productID, &wq.WarehouseID, &wq.WarehouseName, &wq.Qty); err != nil {
			return nil, fmt.Errorf("scan breakdown: %w", err)
		}
		out[productID] = append(out[productID], wq)
	}
	return out, rows.Err()
}

// ListBatches existencias desglosadas por lote o número de serie.
func (r *StockRepo) ListBatches(ctx context.Context, companyID string, f repository.BatchFilter) ([]repository.BatchRow, int, error) {
	where := []string{"s.company_id = $1", "s.qty > 0", "(s.lot <> '' OR s.serial <> '')"}
	args := []any{companyID}

	if len(f.WarehouseIDs) > 0 {
		var in string
		in, args = whereIn("l.warehouse_id", f.WarehouseIDs, args)
		where = append(where, in)
	}
	if f.Q != "" {
		args = append(args, "%"+f.Q+"%")
		where = append(where, fmt.Sprintf("(p.search_text LIKE $%d OR lower(s.lot) LIKE $%d OR lower(s.serial) LIKE $%d)", len(args), len(args), len(args)))
	}
	switch f.Kind {
	case "lot":
		where = append(where, "s.lot <> ''")
	case "serial":
		where = append(where, "s.serial <> ''")
	}
	if f.ExpiryDays != nil {
		args = append(args, *f.ExpiryDays)
		where = append(where, fmt.Sprintf("s.expiry IS NOT NULL AND s.expiry <= now() + ($%d || ' days')::INTERVAL", len(args)))
	}
	whereSQL := strings.Join(where, " AND ")

	base := `
		FROM stock_entries s
		JOIN products   p ON p.id = s.product_id
		JOIN locations  l ON l.id = s.location_id
		JOIN warehouses w ON w.id = l.warehouse_id
		WHERE ` + whereSQL

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) `+base, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count batches: %w", err)
	}

	orderBy := "s.expiry ASC NULLS LAST"
	switch f.Sort {
	case "qtyDesc":
		orderBy = "s.qty DESC"
	case "qtyAsc":
		orderBy = "s.qty ASC"
	case "nameAsc":
		orderBy = "p.name ASC"
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`
		SELECT p.id, p.sku, p.name, p.uom, l.code, w.id, w.name, s.qty, s.lot, s.serial, s.expiry
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`, base, orderBy, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list []repository.BatchRow
	for rows.Next() {
		var row repository.BatchRow
		if err := rows.Scan(&row.ProductID, &row.SKU, &row.Name, &row.UoM, &row.LocationCode,
			&row.WarehouseID, &row.WarehouseName, &row.Qty, &row.Lot, &row.Serial, &row.Expiry); err != nil {
			return nil, 0, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, row)
	}
	return list, total, rows.Err()
}

// ListExpiries existencias que vencen dentro de la ventana, o ya vencidas.
func (r *StockRepo) ListExpiries(ctx context.Context, companyID string, f repository.ExpiryFilter) ([]repository.ExpiryRow, int, error) {
	where := []string{"s.company_id = $1", "s.qty > 0", "s.expiry IS NOT NULL"}
	args := []any{companyID}

	if len(f.WarehouseIDs) > 0 {
		var in string
		in, args = whereIn("l.warehouse_id", f.WarehouseIDs, args)
		where = append(where, in)
	}
	if f.ShowExpired {
		where = append(where, "s.expiry < now()")
	} else {
		args = append(args, f.Days)
		where = append(where, fmt.Sprintf("s.expiry >= now() AND s.expiry <= now() + ($%d || ' days')::INTERVAL", len(args)))
	}
	whereSQL := strings.Join(where, " AND ")

	base := `
		FROM stock_entries s
		JOIN products   p ON p.id = s.product_id
		JOIN locations  l ON l.id = s.location_id
		JOIN warehouses w ON w.id = l.warehouse_id
		WHERE ` + whereSQL

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) `+base, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count expiries: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`
		SELECT p.sku, p.name, p.uom, s.qty, s.lot, s.expiry,
			EXTRACT(DAY FROM s.expiry - now())::INT AS days_to,
			w.id, w.name, l.code
		%s
		ORDER BY s.expiry ASC
		LIMIT $%d OFFSET $%d`, base, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list expiries: %w", err)
	}
	defer rows.Close()
	var list []repository.ExpiryRow
	for rows.Next() {
		var row repository.ExpiryRow
		if err := rows.Scan(&row.SKU, &row.Name, &row.UoM, &row.Qty, &row.Lot, &row.Expiry,
			&row.DaysTo, &row.WarehouseID, &row.WarehouseName, &row.LocationCode); err != nil {
			return nil, 0, fmt.Errorf("scan expiry: %w", err)
		}
		list = append(list, row)
	}
	return list, total, rows.Err()
}

// ApplyDelta suma (o resta) qty a la fila (product, location, lot). Para restas
// la condición qty + delta >= 0 va en el UPDATE: nunca deja saldo negativo.
func (r *StockRepo) ApplyDelta(ctx context.Context, companyID, productID, locationID, lot string, delta decimal.Decimal) error {
	if delta.IsNegative() {
		cmd, err := r.q.Exec(ctx, `
			UPDATE stock_entries SET qty = qty + $5, updated_at = now()
			WHERE company_id = $1 AND product_id = $2 AND location_id = $3 AND lot = $4
			  AND qty + $5 >= 0`,
			companyID, productID, locationID, lot, delta,
		)
		if err != nil {
			return fmt.Errorf("apply delta: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrInsufficientStock
		}
		return nil
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_entries (id, company_id, product_id, location_id, qty, lot, serial, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $5, $4, '', now())
		ON CONFLICT (company_id, product_id, location_id, lot)
		DO UPDATE SET qty = stock_entries.qty + EXCLUDED.qty, updated_at = now()`,
		companyID, productID, locationID, lot, delta,
	)
	if err != nil {
		return fmt.Errorf("apply delta: %w", err)
	}
	return nil
}
