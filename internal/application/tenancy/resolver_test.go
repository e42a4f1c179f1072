package tenancy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/tenancy"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

func newTestResolver(dev *entity.TenantRef) *tenancy.Resolver {
	domains := []repository.ResolvedDomain{
		{Host: "empresa-a.com", Kind: entity.DomainKindCustom, Tenant: entity.TenantRef{ID: "A", Slug: "a", Name: "Empresa A"}},
		{Host: "empresa-b.com", Kind: entity.DomainKindCustom, Tenant: entity.TenantRef{ID: "B", Slug: "b", Name: "Empresa B"}},
		{Host: "a.tuapp.com", Kind: entity.DomainKindSubdomain, Tenant: entity.TenantRef{ID: "A", Slug: "a", Name: "Empresa A"}},
		{Host: "b.tuapp.com", Kind: entity.DomainKindSubdomain, Tenant: entity.TenantRef{ID: "B", Slug: "b", Name: "Empresa B"}},
	}
	return tenancy.NewResolver(tenancy.Config{BaseDomain: "tuapp.com", Dev: dev}, domains)
}

func TestResolve_DominioPropio(t *testing.T) {
	r := newTestResolver(nil)
	tenant := r.Resolve("empresa-a.com")
	require.NotNil(t, tenant)
	assert.Equal(t, "A", tenant.ID)
}

func TestResolve_SubdominioDelWildcard(t *testing.T) {
	r := newTestResolver(nil)
	tenant := r.Resolve("a.tuapp.com")
	require.NotNil(t, tenant)
	assert.Equal(t, "A", tenant.ID)

	tenant = r.Resolve("b.tuapp.com")
	require.NotNil(t, tenant)
	assert.Equal(t, "B", tenant.ID)
}

func TestResolve_NormalizaMayusculasYPuerto(t *testing.T) {
	r := newTestResolver(nil)
	tenant := r.Resolve("A.Tuapp.COM:443")
	require.NotNil(t, tenant)
	assert.Equal(t, "A", tenant.ID)
}

func TestResolve_WwwRechazado(t *testing.T) {
	r := newTestResolver(nil)
	assert.Nil(t, r.Resolve("www.tuapp.com"))
}

func TestResolve_SubdominioNoRegistrado(t *testing.T) {
	r := newTestResolver(nil)
	assert.Nil(t, r.Resolve("zzz.tuapp.com"))
}

func TestResolve_HostDesconocido(t *testing.T) {
	r := newTestResolver(nil)
	assert.Nil(t, r.Resolve("unknown.biz"))
	assert.Nil(t, r.Resolve(""))
}

func TestResolve_FallbackDevSoloConfigurado(t *testing.T) {
	dev := &entity.TenantRef{ID: "A", Slug: "a", Name: "Empresa A"}
	conDev := newTestResolver(dev)

	tenant := conDev.Resolve("localhost:3000")
	require.NotNil(t, tenant)
	assert.Equal(t, "A", tenant.ID)

	tenant = conDev.Resolve("127.0.0.1:8080")
	require.NotNil(t, tenant)
	assert.Equal(t, "A", tenant.ID)

	// Sin tenant de desarrollo configurado, localhost no resuelve.
	sinDev := newTestResolver(nil)
	assert.Nil(t, sinDev.Resolve("localhost:3000"))
}

func TestResolve_Idempotente(t *testing.T) {
	r := newTestResolver(nil)
	first := r.Resolve("a.tuapp.com")
	second := r.Resolve("a.tuapp.com")
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, *first, *second)
}
