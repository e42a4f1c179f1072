package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ResolvedDomain es una fila del registro de dominios con su tenant ya unido.
type ResolvedDomain struct {
	Host   string // minúsculas, sin puerto
	Kind   string // entity.DomainKindCustom | entity.DomainKindSubdomain
	Tenant entity.TenantRef
}

// CompanyDomainRepository define el puerto para cargar el registro
// host → empresa que alimenta al resolver de tenant.
type CompanyDomainRepository interface {
	// ListAll devuelve el registro completo (consulta única con join a companies).
	ListAll(ctx context.Context) ([]ResolvedDomain, error)
	Create(domain *entity.CompanyDomain) error
}
