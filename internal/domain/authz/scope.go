// Package authz contiene la lógica pura de autorización por bodega.
// No conoce HTTP ni persistencia: recibe los claims de la sesión y decide.
package authz

import (
	"strings"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// RoleScope es el alcance de visibilidad de una sesión dentro del tenant.
type RoleScope string

const (
	// ScopeCompany: visibilidad sin restricción sobre todas las bodegas de la empresa.
	ScopeCompany RoleScope = "COMPANY"
	// ScopeWarehouse: visibilidad restringida al conjunto de bodegas otorgadas.
	ScopeWarehouse RoleScope = "WAREHOUSE"
)

// AllWarehouses es el valor centinela del query param ?warehouse que
// significa "todas las bodegas visibles para esta sesión".
const AllWarehouses = "all"

// Valid reporta si el scope es uno de los dos valores conocidos.
// Un scope ausente o desconocido se trata como no autenticado (fail-closed).
func (s RoleScope) Valid() bool {
	return s == ScopeCompany || s == ScopeWarehouse
}

// Context es el snapshot de capacidades de la sesión, resuelto una vez por
// request en el middleware y propagado explícitamente a los handlers.
type Context struct {
	UserID              string
	CompanyID           string
	RoleScope           RoleScope
	AllowedWarehouseIDs []string
}

// NormalizeWarehouseIDs limpia una lista de ids: recorta espacios, descarta
// vacíos y deduplica conservando el orden de la primera aparición.
func NormalizeWarehouseIDs(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, id := range raw {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// SplitWarehouseIDs parte una lista separada por comas ("w1, w2,,w1") y la normaliza.
func SplitWarehouseIDs(s string) []string {
	if s == "" {
		return nil
	}
	return NormalizeWarehouseIDs(strings.Split(s, ","))
}

// ComputeWarehouseScope calcula el filtro efectivo de bodegas para una lectura.
//
// Devuelve nil cuando no hay restricción (todas las bodegas de la empresa);
// un slice no vacío es el conjunto exacto de ids a filtrar.
//
//	COMPANY   + ""/"all"        -> nil (sin restricción)
//	COMPANY   + id              -> {id}   (la pertenencia al tenant la valida la capa de datos)
//	WAREHOUSE + ""/"all"        -> todas las otorgadas
//	WAREHOUSE + id ∈ otorgadas  -> {id}
//	WAREHOUSE + id ∉ otorgadas  -> ErrWarehouseNotAllowed
//	WAREHOUSE + sin otorgadas   -> ErrNoWarehousesAssigned
func ComputeWarehouseScope(requested string, scope RoleScope, allowed []string) ([]string, error) {
	requested = strings.TrimSpace(requested)

	if scope == ScopeCompany {
		if requested == "" || requested == AllWarehouses {
			return nil, nil
		}
		return []string{requested}, nil
	}

	granted := NormalizeWarehouseIDs(allowed)
	if len(granted) == 0 {
		return nil, domain.ErrNoWarehousesAssigned
	}
	if requested == "" || requested == AllWarehouses {
		return granted, nil
	}
	for _, id := range granted {
		if id == requested {
			return []string{requested}, nil
		}
	}
	return nil, domain.ErrWarehouseNotAllowed
}

// AssertWarehouseAllowed valida que una mutación dirigida a una bodega
// concreta esté permitida para la sesión. Evita escalar privilegios
// forjando warehouseId en el body de un POST/PATCH.
//
// target vacío pasa siempre: el recurso mutado no tiene scope de bodega.
func AssertWarehouseAllowed(target string, scope RoleScope, allowed []string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil
	}
	if scope == ScopeCompany {
		return nil
	}
	for _, id := range NormalizeWarehouseIDs(allowed) {
		if id == target {
			return nil
		}
	}
	return domain.ErrWarehouseNotAllowed
}
