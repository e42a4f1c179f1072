package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.TaxonomyRepository = (*TaxonomyRepo)(nil)

// TaxonomyRepo listas planas por empresa (marcas, unidades de medida)
// sobre una sola tabla company_terms discriminada por kind.
type TaxonomyRepo struct {
	pool *pgxpool.Pool
}

// NewTaxonomyRepository construye el adaptador de listas planas.
func NewTaxonomyRepository(pool *pgxpool.Pool) *TaxonomyRepo {
	return &TaxonomyRepo{pool: pool}
}

// List términos de un tipo ordenados alfabéticamente.
func (r *TaxonomyRepo) List(companyID, kind string) ([]string, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT name FROM company_terms WHERE company_id = $1 AND kind = $2 ORDER BY name`,
		companyID, kind,
	)
	if err != nil {
		return nil, fmt.Errorf("list terms: %w", err)
	}
	defer rows.Close()
	var list []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan term: %w", err)
		}
		list = append(list, name)
	}
	return list, rows.Err()
}

// Exists verifica si un término existe (case-insensitive).
func (r *TaxonomyRepo) Exists(companyID, kind, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(context.Background(), `
		SELECT EXISTS (
			SELECT 1 FROM company_terms
			WHERE company_id = $1 AND kind = $2 AND lower(name) = lower($3)
		)`, companyID, kind, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check term: %w", err)
	}
	return exists, nil
}

// Add agrega un término.
func (r *TaxonomyRepo) Add(companyID, kind, name string) error {
	_, err := r.pool.Exec(context.Background(),
		`INSERT INTO company_terms (company_id, kind, name) VALUES ($1, $2, $3)`,
		companyID, kind, name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert term: %w", err)
	}
	return nil
}

// Rename renombra un término por su nombre actual.
func (r *TaxonomyRepo) Rename(companyID, kind, oldName, newName string) error {
	_, err := r.pool.Exec(context.Background(), `
		UPDATE company_terms SET name = $4
		WHERE company_id = $1 AND kind = $2 AND lower(name) = lower($3)`,
		companyID, kind, oldName, newName,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("rename term: %w", err)
	}
	return nil
}
