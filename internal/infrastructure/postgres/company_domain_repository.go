package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.CompanyDomainRepository = (*CompanyDomainRepo)(nil)

// CompanyDomainRepo implementación del puerto CompanyDomainRepository sobre PostgreSQL.
type CompanyDomainRepo struct {
	pool *pgxpool.Pool
}

// NewCompanyDomainRepository construye el adaptador del registro de dominios.
func NewCompanyDomainRepository(pool *pgxpool.Pool) *CompanyDomainRepo {
	return &CompanyDomainRepo{pool: pool}
}

// ListAll devuelve el registro host → empresa completo. El resolver lo carga
// una vez al arranque; el registro cabe en memoria sin problema.
func (r *CompanyDomainRepo) ListAll(ctx context.Context) ([]repository.ResolvedDomain, error) {
	query := `
		SELECT d.host, d.kind, c.id, c.slug, c.name
		FROM company_domains d
		JOIN companies c ON c.id = d.company_id
		WHERE c.status = 'active'
		ORDER BY d.host`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list domains: %w", err)
	}
	defer rows.Close()
	var list []repository.ResolvedDomain
	for rows.Next() {
		var d repository.ResolvedDomain
		if err := rows.Scan(&d.Host, &d.Kind, &d.Tenant.ID, &d.Tenant.Slug, &d.Tenant.Name); err != nil {
			return nil, fmt.Errorf("scan domain: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Create registra un host para una empresa. El host es PK: registrarlo dos
// veces es ErrDuplicate.
func (r *CompanyDomainRepo) Create(d *entity.CompanyDomain) error {
	query := `
		INSERT INTO company_domains (host, company_id, kind, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(context.Background(), query, d.Host, d.CompanyID, d.Kind, d.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert domain: %w", err)
	}
	return nil
}
