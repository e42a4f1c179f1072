package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para los dashboards de analítica.
// El filtro de bodegas llega ya calculado; estas consultas nunca re-derivan permisos.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// stockWhere arma el filtro de bodegas sobre stock_entries (vía locations).
func stockWhere(warehouseIDs []string, args []any) (string, []any) {
	if len(warehouseIDs) == 0 {
		return "", args
	}
	var in string
	in, args = whereIn("l.warehouse_id", warehouseIDs, args)
	return " AND " + in, args
}

// movementWhere arma el filtro de bodegas sobre movements: el movimiento cuenta
// si su origen O su destino cae dentro del conjunto.
func movementWhere(warehouseIDs []string, args []any) (string, []any) {
	if len(warehouseIDs) == 0 {
		return "", args
	}
	var fromIn, toIn string
	fromIn, args = whereIn("lf.warehouse_id", warehouseIDs, args)
	toIn, args = whereIn("lt.warehouse_id", warehouseIDs, args)
	return " AND (" + fromIn + " OR " + toIn + ")", args
}

// GetOverviewKPIs tarjetas del dashboard: unidades en mano, SKUs activos,
// quiebres de stock y lotes que vencen en 30 días.
func (r *AnalyticsRepo) GetOverviewKPIs(ctx context.Context, companyID string, warehouseIDs []string) (repository.OverviewKPIs, error) {
	var kpis repository.OverviewKPIs

	args := []any{companyID}
	whFilter, args := stockWhere(warehouseIDs, args)
	query := fmt.Sprintf(`
		SELECT
			COALESCE(SUM(s.qty), 0)                                              AS on_hand,
			COUNT(DISTINCT p.id) FILTER (WHERE s.qty > 0)                        AS active_skus,
			COUNT(*) FILTER (WHERE s.qty > 0 AND s.expiry IS NOT NULL
				AND s.expiry BETWEEN now() AND now() + INTERVAL '30 days')       AS near_expiry
		FROM products p
		LEFT JOIN stock_entries s ON s.product_id = p.id
		LEFT JOIN locations     l ON l.id = s.location_id
		WHERE p.company_id = $1 AND p.status = 'ACTIVE'%s`, whFilter)
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&kpis.OnHandUnits, &kpis.ActiveSKUs, &kpis.NearExpiry30d); err != nil {
		return kpis, fmt.Errorf("analytics.GetOverviewKPIs: %w", err)
	}

	// Quiebres: productos activos cuya existencia total (en las bodegas visibles) es cero.
	args = []any{companyID}
	whFilter, args = stockWhere(warehouseIDs, args)
	stockoutQuery := fmt.Sprintf(`
		SELECT COUNT(*) FROM (
			SELECT p.id
			FROM products p
			LEFT JOIN stock_entries s ON s.product_id = p.id
			LEFT JOIN locations     l ON l.id = s.location_id
			WHERE p.company_id = $1 AND p.status = 'ACTIVE'%s
			GROUP BY p.id
			HAVING COALESCE(SUM(s.qty), 0) = 0
		) sub`, whFilter)
	if err := r.pool.QueryRow(ctx, stockoutQuery, args...).Scan(&kpis.Stockouts); err != nil {
		return kpis, fmt.Errorf("analytics.GetOverviewKPIs stockouts: %w", err)
	}
	return kpis, nil
}

// GetMovementTimeseries entradas y salidas netas por día de los últimos `days` días.
// Entrada = movimiento sin origen; salida = movimiento sin destino. Los
// traslados no alteran el neto y quedan fuera.
func (r *AnalyticsRepo) GetMovementTimeseries(ctx context.Context, companyID string, warehouseIDs []string, days int) ([]repository.TimeseriesPoint, error) {
	args := []any{companyID, days}
	whFilter, args := movementWhere(warehouseIDs, args)
	query := fmt.Sprintf(`
		SELECT
			date_trunc('day', m.ts)                                        AS day,
			COALESCE(SUM(m.qty) FILTER (WHERE m.from_location_id IS NULL), 0) AS qty_in,
			COALESCE(SUM(m.qty) FILTER (WHERE m.to_location_id   IS NULL), 0) AS qty_out
		FROM movements m
		LEFT JOIN locations lf ON lf.id = m.from_location_id
		LEFT JOIN locations lt ON lt.id = m.to_location_id
		WHERE m.company_id = $1 AND m.ts >= now() - ($2 || ' days')::INTERVAL%s
		GROUP BY day
		ORDER BY day`, whFilter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetMovementTimeseries: %w", err)
	}
	defer rows.Close()
	var points []repository.TimeseriesPoint
	for rows.Next() {
		var p repository.TimeseriesPoint
		if err := rows.Scan(&p.Date, &p.In, &p.Out); err != nil {
			return nil, fmt.Errorf("analytics.GetMovementTimeseries scan: %w", err)
		}
		p.Net = p.In - p.Out
		points = append(points, p)
	}
	return points, rows.Err()
}

// GetTopMovedProducts productos con más unidades movidas desde `since`.
func (r *AnalyticsRepo) GetTopMovedProducts(ctx context.Context, companyID string, warehouseIDs []string, since time.Time, limit int) ([]repository.TopProduct, error) {
	args := []any{companyID, since}
	whFilter, args := movementWhere(warehouseIDs, args)
	args = append(args, limit)
	query := fmt.Sprintf(`
		SELECT p.sku, p.name, SUM(m.qty) AS moved
		FROM movements m
		JOIN products p ON p.id = m.product_id
		LEFT JOIN locations lf ON lf.id = m.from_location_id
		LEFT JOIN locations lt ON lt.id = m.to_location_id
		WHERE m.company_id = $1 AND m.ts >= $2%s
		GROUP BY p.sku, p.name
		ORDER BY moved DESC
		LIMIT $%d`, whFilter, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopMovedProducts: %w", err)
	}
	defer rows.Close()
	var list []repository.TopProduct
	for rows.Next() {
		var t repository.TopProduct
		if err := rows.Scan(&t.SKU, &t.Name, &t.Moved); err != nil {
			return nil, fmt.Errorf("analytics.GetTopMovedProducts scan: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// GetABCSegments clasifica el valor de inventario (qty × precio) en segmentos
// ABC por participación acumulada: A hasta 80%, B hasta 95%, C el resto.
// Devuelve el porcentaje del valor total que concentra cada segmento.
func (r *AnalyticsRepo) GetABCSegments(ctx context.Context, companyID string) ([]repository.ABCSegment, error) {
	const query = `
	WITH product_value AS (
		SELECT p.id, COALESCE(SUM(s.qty), 0) * p.price AS value
		FROM products p
		LEFT JOIN stock_entries s ON s.product_id = p.id
		WHERE p.company_id = $1 AND p.status = 'ACTIVE'
		GROUP BY p.id, p.price
	),
	ranked AS (
		SELECT value,
			SUM(value) OVER (ORDER BY value DESC) AS running,
			SUM(value) OVER ()                    AS grand_total
		FROM product_value
		WHERE value > 0
	)
	SELECT
		CASE
			WHEN running / grand_total <= 0.80 THEN 'A'
			WHEN running / grand_total <= 0.95 THEN 'B'
			ELSE 'C'
		END                                       AS segment,
		ROUND(SUM(value) / MAX(grand_total) * 100, 1) AS pct
	FROM ranked
	GROUP BY segment
	ORDER BY segment`

	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetABCSegments: %w", err)
	}
	defer rows.Close()
	var list []repository.ABCSegment
	for rows.Next() {
		var s repository.ABCSegment
		if err := rows.Scan(&s.Segment, &s.Value); err != nil {
			return nil, fmt.Errorf("analytics.GetABCSegments scan: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// GetWarehouseLoads existencia total y ubicaciones usadas por bodega.
func (r *AnalyticsRepo) GetWarehouseLoads(ctx context.Context, companyID string, warehouseIDs []string) ([]repository.WarehouseLoad, error) {
	where := "w.company_id = $1"
	args := []any{companyID}
	if len(warehouseIDs) > 0 {
		var in string
		in, args = whereIn("w.id", warehouseIDs, args)
		where += " AND " + in
	}
	query := fmt.Sprintf(`
		SELECT
			w.id, w.name,
			COALESCE(SUM(s.qty), 0)                                 AS on_hand,
			COUNT(DISTINCT s.location_id) FILTER (WHERE s.qty > 0)  AS locations_used
		FROM warehouses w
		LEFT JOIN locations     l ON l.warehouse_id = w.id
		LEFT JOIN stock_entries s ON s.location_id = l.id
		WHERE %s
		GROUP BY w.id, w.name
		ORDER BY on_hand DESC`, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetWarehouseLoads: %w", err)
	}
	defer rows.Close()
	var list []repository.WarehouseLoad
	for rows.Next() {
		var wl repository.WarehouseLoad
		if err := rows.Scan(&wl.WarehouseID, &wl.WarehouseName, &wl.OnHand, &wl.LocationsUsed); err != nil {
			return nil, fmt.Errorf("analytics.GetWarehouseLoads scan: %w", err)
		}
		list = append(list, wl)
	}
	return list, rows.Err()
}

// GetOperationsByReason movimientos agrupados por motivo en los últimos `days` días.
func (r *AnalyticsRepo) GetOperationsByReason(ctx context.Context, companyID string, warehouseIDs []string, days int) ([]repository.ReasonCount, error) {
	args := []any{companyID, days}
	whFilter, args := movementWhere(warehouseIDs, args)
	query := fmt.Sprintf(`
		SELECT m.reason, COUNT(*), COALESCE(SUM(m.qty), 0)
		FROM movements m
		LEFT JOIN locations lf ON lf.id = m.from_location_id
		LEFT JOIN locations lt ON lt.id = m.to_location_id
		WHERE m.company_id = $1 AND m.ts >= now() - ($2 || ' days')::INTERVAL%s
		GROUP BY m.reason
		ORDER BY COUNT(*) DESC`, whFilter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetOperationsByReason: %w", err)
	}
	defer rows.Close()
	var list []repository.ReasonCount
	for rows.Next() {
		var rc repository.ReasonCount
		if err := rows.Scan(&rc.Reason, &rc.Count, &rc.Units); err != nil {
			return nil, fmt.Errorf("analytics.GetOperationsByReason scan: %w", err)
		}
		list = append(list, rc)
	}
	return list, rows.Err()
}
