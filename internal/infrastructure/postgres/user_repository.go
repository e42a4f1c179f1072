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

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persiste un nuevo usuario. El email es único global.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, strings.ToLower(user.Email), user.PasswordHash, user.Name,
		user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByEmail busca un usuario por email (global, sin empresa).
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	query := `
		SELECT id, email, password_hash, name, is_active, created_at, updated_at
		FROM users WHERE email = $1`
	var u entity.User
	err := r.pool.QueryRow(context.Background(), query, strings.ToLower(email)).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `
		SELECT id, email, password_hash, name, is_active, created_at, updated_at
		FROM users WHERE id = $1`
	var u entity.User
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// ListCompanyRoles roles del usuario en la empresa indicada.
func (r *UserRepo) ListCompanyRoles(userID, companyID string) ([]*entity.UserCompanyRole, error) {
	query := `
		SELECT user_id, company_id, role, created_at
		FROM user_company_roles WHERE user_id = $1 AND company_id = $2`
	rows, err := r.pool.Query(context.Background(), query, userID, companyID)
	if err != nil {
		return nil, fmt.Errorf("list company roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.UserCompanyRole
	for rows.Next() {
		var role entity.UserCompanyRole
		if err := rows.Scan(&role.UserID, &role.CompanyID, &role.Role, &role.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan company role: %w", err)
		}
		list = append(list, &role)
	}
	return list, rows.Err()
}

// ListWarehouseGrants accesos por bodega del usuario, filtrados con join a
// warehouses a la empresa indicada. Un grant sobre una bodega de otra empresa
// nunca sale de esta consulta.
func (r *UserRepo) ListWarehouseGrants(userID, companyID string) ([]*entity.UserWarehouseAccess, error) {
	query := `
		SELECT a.user_id, a.warehouse_id, a.created_at
		FROM user_warehouse_access a
		JOIN warehouses w ON w.id = a.warehouse_id
		WHERE a.user_id = $1 AND w.company_id = $2
		ORDER BY a.created_at`
	rows, err := r.pool.Query(context.Background(), query, userID, companyID)
	if err != nil {
		return nil, fmt.Errorf("list warehouse grants: %w", err)
	}
	defer rows.Close()
	var list []*entity.UserWarehouseAccess
	for rows.Next() {
		var g entity.UserWarehouseAccess
		if err := rows.Scan(&g.UserID, &g.WarehouseID, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse grant: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}

// GrantCompanyRole otorga un rol de empresa.
func (r *UserRepo) GrantCompanyRole(role *entity.UserCompanyRole) error {
	query := `
		INSERT INTO user_company_roles (user_id, company_id, role, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, company_id) DO UPDATE SET role = EXCLUDED.role`
	_, err := r.pool.Exec(context.Background(), query,
		role.UserID, role.CompanyID, role.Role, role.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("grant company role: %w", err)
	}
	return nil
}

// GrantWarehouseAccess otorga acceso a una bodega.
func (r *UserRepo) GrantWarehouseAccess(grant *entity.UserWarehouseAccess) error {
	query := `
		INSERT INTO user_warehouse_access (user_id, warehouse_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, warehouse_id) DO NOTHING`
	_, err := r.pool.Exec(context.Background(), query,
		grant.UserID, grant.WarehouseID, grant.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("grant warehouse access: %w", err)
	}
	return nil
}
