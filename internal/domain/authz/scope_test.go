package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/authz"
)

// ──────────────────────────────────────────────────────────────────────────────
// ComputeWarehouseScope: tabla de decisión completa
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeScope_CompanySinSeleccion_SinRestriccion(t *testing.T) {
	// COMPANY con "" y con "all" deben ser equivalentes: nil = todas las bodegas.
	for _, requested := range []string{"", "all"} {
		filter, err := authz.ComputeWarehouseScope(requested, authz.ScopeCompany, nil)
		require.NoError(t, err)
		assert.Nil(t, filter, "COMPANY + %q debe ser sin restricción", requested)
	}
}

func TestComputeScope_CompanyConId_FiltraPorEseId(t *testing.T) {
	filter, err := authz.ComputeWarehouseScope("w9", authz.ScopeCompany, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"w9"}, filter)
}

func TestComputeScope_CompanyNoValidaPertenenciaAlTenant(t *testing.T) {
	// Un id de otra empresa no falla aquí: la capa de datos hace el join por
	// company_id y el resultado será vacío. El cálculo solo estrecha por id.
	filter, err := authz.ComputeWarehouseScope("ajena", authz.ScopeCompany, []string{"w1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ajena"}, filter)
}

func TestComputeScope_WarehouseSinSeleccion_DevuelveTodasLasOtorgadas(t *testing.T) {
	granted := []string{"w1", "w2"}
	for _, requested := range []string{"", "all"} {
		filter, err := authz.ComputeWarehouseScope(requested, authz.ScopeWarehouse, granted)
		require.NoError(t, err)
		assert.Equal(t, granted, filter)
	}
}

func TestComputeScope_WarehouseConIdOtorgado_FiltraPorEseId(t *testing.T) {
	filter, err := authz.ComputeWarehouseScope("w2", authz.ScopeWarehouse, []string{"w1", "w2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"w2"}, filter)
}

func TestComputeScope_WarehouseConIdNoOtorgado_Falla(t *testing.T) {
	_, err := authz.ComputeWarehouseScope("w3", authz.ScopeWarehouse, []string{"w1", "w2"})
	assert.ErrorIs(t, err, domain.ErrWarehouseNotAllowed)
}

func TestComputeScope_WarehouseSinOtorgadas_Falla(t *testing.T) {
	// Lista vacía o solo valores en blanco: nunca degradar a "sin resultados",
	// debe fallar explícito para no encubrir un bug de autorización.
	for _, granted := range [][]string{nil, {}, {"", "  "}} {
		_, err := authz.ComputeWarehouseScope("", authz.ScopeWarehouse, granted)
		assert.ErrorIs(t, err, domain.ErrNoWarehousesAssigned)
	}
}

func TestComputeScope_NormalizaOtorgadas(t *testing.T) {
	filter, err := authz.ComputeWarehouseScope("", authz.ScopeWarehouse, []string{" w1 ", "", "w1", "w2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"w1", "w2"}, filter)
}

// ──────────────────────────────────────────────────────────────────────────────
// AssertWarehouseAllowed: guard de mutaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestAssertAllowed_SinBodegaObjetivo_NuncaFalla(t *testing.T) {
	assert.NoError(t, authz.AssertWarehouseAllowed("", authz.ScopeCompany, nil))
	assert.NoError(t, authz.AssertWarehouseAllowed("", authz.ScopeWarehouse, nil))
	assert.NoError(t, authz.AssertWarehouseAllowed("  ", authz.ScopeWarehouse, []string{"w1"}))
}

func TestAssertAllowed_CompanyPasaConCualquierId(t *testing.T) {
	assert.NoError(t, authz.AssertWarehouseAllowed("w1", authz.ScopeCompany, nil))
	assert.NoError(t, authz.AssertWarehouseAllowed("cualquiera", authz.ScopeCompany, []string{"w1"}))
}

func TestAssertAllowed_WarehouseFallaSiiNoEstaOtorgado(t *testing.T) {
	granted := []string{"w1", "w2"}
	assert.NoError(t, authz.AssertWarehouseAllowed("w1", authz.ScopeWarehouse, granted))
	assert.NoError(t, authz.AssertWarehouseAllowed("w2", authz.ScopeWarehouse, granted))
	assert.ErrorIs(t, authz.AssertWarehouseAllowed("w3", authz.ScopeWarehouse, granted), domain.ErrWarehouseNotAllowed)
	assert.ErrorIs(t, authz.AssertWarehouseAllowed("w1", authz.ScopeWarehouse, nil), domain.ErrWarehouseNotAllowed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de normalización y RoleScope
// ──────────────────────────────────────────────────────────────────────────────

func TestSplitWarehouseIDs(t *testing.T) {
	assert.Equal(t, []string{"w1", "w2"}, authz.SplitWarehouseIDs("w1, w2,,w1"))
	assert.Nil(t, authz.SplitWarehouseIDs(""))
}

func TestRoleScope_Valid(t *testing.T) {
	assert.True(t, authz.ScopeCompany.Valid())
	assert.True(t, authz.ScopeWarehouse.Valid())
	// Scope ausente o desconocido = no autenticado (fail-closed, nunca COMPANY por defecto).
	assert.False(t, authz.RoleScope("").Valid())
	assert.False(t, authz.RoleScope("ADMIN").Valid())
}
