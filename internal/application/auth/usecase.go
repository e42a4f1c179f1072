package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/authz"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login (activación de sesión) y registro.
type AuthUseCase struct {
	userRepo      repository.UserRepository
	warehouseRepo repository.WarehouseRepository
	jwtCfg        JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, warehouseRepo repository.WarehouseRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, warehouseRepo: warehouseRepo, jwtCfg: jwtCfg}
}

// Login verifica credenciales contra el tenant resuelto por host y activa la sesión.
//
// El scope se decide una sola vez aquí y es el único insumo de la emisión del token:
//   - cualquier rol de empresa           → COMPANY, allow-list vacío (acceso total implícito)
//   - solo grants de bodega              → WAREHOUSE, allow-list = grants filtrados al tenant
//   - scope WAREHOUSE con cero grants    → ErrNoWarehousesAssigned (403, login rechazado)
func (uc *AuthUseCase) Login(companyID string, in dto.LoginRequest) (*dto.SessionResponse, error) {
	user, err := uc.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		// Mismo error para usuario inexistente e inactivo: no filtrar cuáles emails existen.
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	roleScope, warehouseIDs, err := uc.deriveScope(user.ID, companyID)
	if err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, companyID, string(roleScope), warehouseIDs, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{
		Token:        token,
		User:         *toUserResponse(user),
		CompanyID:    companyID,
		RoleScope:    string(roleScope),
		WarehouseIDs: warehouseIDs,
	}, nil
}

// deriveScope recalcula el snapshot de capacidades desde las relaciones
// User/Company/Warehouse. Los grants cross-tenant ya vienen filtrados por el
// repositorio (join con warehouses del tenant).
func (uc *AuthUseCase) deriveScope(userID, companyID string) (authz.RoleScope, []string, error) {
	roles, err := uc.userRepo.ListCompanyRoles(userID, companyID)
	if err != nil {
		return "", nil, err
	}
	if len(roles) > 0 {
		return authz.ScopeCompany, []string{}, nil
	}

	grants, err := uc.userRepo.ListWarehouseGrants(userID, companyID)
	if err != nil {
		return "", nil, err
	}
	ids := make([]string, 0, len(grants))
	for _, g := range grants {
		ids = append(ids, g.WarehouseID)
	}
	ids = authz.NormalizeWarehouseIDs(ids)
	if len(ids) == 0 {
		return "", nil, domain.ErrNoWarehousesAssigned
	}
	return authz.ScopeWarehouse, ids, nil
}

// RegisterUser crea un usuario global y le asigna rol de empresa o grants de
// bodega en el tenant actual. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(companyID string, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if in.CompanyRole == "" && len(in.WarehouseIDs) == 0 {
		return nil, domain.ErrInvalidInput // sin rol ni grants el usuario no podría entrar nunca
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	if in.CompanyRole != "" {
		role := &entity.UserCompanyRole{UserID: user.ID, CompanyID: companyID, Role: in.CompanyRole, CreatedAt: now}
		if err := uc.userRepo.GrantCompanyRole(role); err != nil {
			return nil, err
		}
		return toUserResponse(user), nil
	}

	for _, whID := range authz.NormalizeWarehouseIDs(in.WarehouseIDs) {
		// Solo bodegas del tenant actual: un id ajeno es un intento de cross-tenant.
		wh, err := uc.warehouseRepo.GetByID(whID)
		if err != nil {
			return nil, err
		}
		if wh == nil || wh.CompanyID != companyID {
			return nil, domain.ErrWarehouseNotAllowed
		}
		grant := &entity.UserWarehouseAccess{UserID: user.ID, WarehouseID: whID, CreatedAt: now}
		if err := uc.userRepo.GrantWarehouseAccess(grant); err != nil {
			return nil, err
		}
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
