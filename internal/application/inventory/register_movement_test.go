package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/authz"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

const testCompany = "empresa-1"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(*entity.Product) error { return nil }
func (f *fakeProductRepo) GetByID(companyID, id string) (*entity.Product, error) {
	p := f.products[id]
	if p == nil || p.CompanyID != companyID {
		return nil, nil
	}
	return p, nil
}
func (f *fakeProductRepo) Update(*entity.Product) error           { return nil }
func (f *fakeProductRepo) SKUExists(string, string) (bool, error) { return false, nil }
func (f *fakeProductRepo) Search(context.Context, string, repository.ProductFilter) ([]*entity.Product, int, error) {
	return nil, 0, nil
}
func (f *fakeProductRepo) SearchPurchasing(context.Context, string, string, int, int) ([]repository.PurchasingRow, int, error) {
	return nil, 0, nil
}

type fakeLocationRepo struct {
	locations map[string]*entity.Location
}

func (f *fakeLocationRepo) Create(loc *entity.Location) error {
	f.locations[loc.ID] = loc
	return nil
}
func (f *fakeLocationRepo) GetByID(companyID, id string) (*entity.Location, error) {
	loc := f.locations[id]
	if loc == nil || loc.CompanyID != companyID {
		return nil, nil
	}
	return loc, nil
}
func (f *fakeLocationRepo) ListOccupancy(context.Context, string, repository.LocationFilter) ([]repository.LocationOccupancy, int, error) {
	return nil, 0, nil
}

// fakeStockRepo lleva las existencias en memoria por (producto, ubicación, lote).
type fakeStockRepo struct {
	qty map[string]decimal.Decimal
}

func stockKey(productID, locationID, lot string) string {
	return productID + "|" + locationID + "|" + lot
}

func (f *fakeStockRepo) InventorySummary(context.Context, string, repository.InventoryFilter) ([]repository.InventoryRow, int, error) {
	return nil, 0, nil
}
func (f *fakeStockRepo) ListBatches(context.Context, string, repository.BatchFilter) ([]repository.BatchRow, int, error) {
	return nil, 0, nil
}
func (f *fakeStockRepo) ListExpiries(context.Context, string, repository.ExpiryFilter) ([]repository.ExpiryRow, int, error) {
	return nil, 0, nil
}
func (f *fakeStockRepo) ApplyDelta(_ context.Context, _, productID, locationID, lot string, delta decimal.Decimal) error {
	k := stockKey(productID, locationID, lot)
	next := f.qty[k].Add(delta)
	if next.IsNegative() {
		return domain.ErrInsufficientStock
	}
	f.qty[k] = next
	return nil
}

type fakeMovementRepo struct {
	created []*entity.Movement
}

func (f *fakeMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	f.created = append(f.created, m)
	return nil
}
func (f *fakeMovementRepo) List(context.Context, string, repository.MovementFilter) ([]repository.MovementRow, int, error) {
	return nil, 0, nil
}

// fakeTxRunner ejecuta la función directamente; si falla, descarta los
// movimientos creados para emular el rollback.
type fakeTxRunner struct {
	movRepo   *fakeMovementRepo
	stockRepo *fakeStockRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(repository.MovementRepository, repository.StockRepository) error) error {
	before := len(f.movRepo.created)
	snapshot := make(map[string]decimal.Decimal, len(f.stockRepo.qty))
	for k, v := range f.stockRepo.qty {
		snapshot[k] = v
	}
	if err := fn(f.movRepo, f.stockRepo); err != nil {
		f.movRepo.created = f.movRepo.created[:before]
		f.stockRepo.qty = snapshot
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

type movementFixture struct {
	uc    *inventory.RegisterMovementUseCase
	stock *fakeStockRepo
	movs  *fakeMovementRepo
}

func newMovementFixture(t *testing.T) *movementFixture {
	t.Helper()
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", CompanyID: testCompany, SKU: "SKU-001", Name: "Café molido 500g"},
	}}
	locations := &fakeLocationRepo{locations: map[string]*entity.Location{
		"loc-w1-a": {ID: "loc-w1-a", CompanyID: testCompany, WarehouseID: "w1", Code: "A1-R1-B1"},
		"loc-w1-b": {ID: "loc-w1-b", CompanyID: testCompany, WarehouseID: "w1", Code: "A1-R1-B2"},
		"loc-w2-a": {ID: "loc-w2-a", CompanyID: testCompany, WarehouseID: "w2", Code: "A2-R1-B1"},
	}}
	stock := &fakeStockRepo{qty: map[string]decimal.Decimal{}}
	movs := &fakeMovementRepo{}
	tx := &fakeTxRunner{movRepo: movs, stockRepo: stock}
	return &movementFixture{
		uc:    inventory.NewRegisterMovementUseCase(tx, products, locations),
		stock: stock,
		movs:  movs,
	}
}

func companyCtx() authz.Context {
	return authz.Context{UserID: "u1", CompanyID: testCompany, RoleScope: authz.ScopeCompany}
}

func warehouseCtx(allowed ...string) authz.Context {
	return authz.Context{UserID: "u1", CompanyID: testCompany, RoleScope: authz.ScopeWarehouse, AllowedWarehouseIDs: allowed}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_RecepcionSumaStock(t *testing.T) {
	fx := newMovementFixture(t)

	item, err := fx.uc.Register(context.Background(), companyCtx(), inventory.MovementInput{
		ProductID:    "p1",
		ToLocationID: "loc-w1-a",
		Qty:          decimal.NewFromInt(10),
		Reason:       entity.MovementReceive,
		Lot:          "L-001",
	})
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "SKU-001", item.SKU)
	assert.Equal(t, "A1-R1-B1", item.To)
	assert.Empty(t, item.From)

	assert.True(t, fx.stock.qty[stockKey("p1", "loc-w1-a", "L-001")].Equal(decimal.NewFromInt(10)))
	require.Len(t, fx.movs.created, 1)
	assert.Equal(t, entity.MovementReceive, fx.movs.created[0].Reason)
}

func TestRegister_TransferenciaMueveEntreUbicaciones(t *testing.T) {
	fx := newMovementFixture(t)
	fx.stock.qty[stockKey("p1", "loc-w1-a", "")] = decimal.NewFromInt(8)

	_, err := fx.uc.Register(context.Background(), companyCtx(), inventory.MovementInput{
		ProductID:      "p1",
		FromLocationID: "loc-w1-a",
		ToLocationID:   "loc-w1-b",
		Qty:            decimal.NewFromInt(3),
		Reason:         entity.MovementTransfer,
	})
	require.NoError(t, err)

	assert.True(t, fx.stock.qty[stockKey("p1", "loc-w1-a", "")].Equal(decimal.NewFromInt(5)))
	assert.True(t, fx.stock.qty[stockKey("p1", "loc-w1-b", "")].Equal(decimal.NewFromInt(3)))
}

func TestRegister_StockInsuficienteRevierteTodo(t *testing.T) {
	fx := newMovementFixture(t)
	fx.stock.qty[stockKey("p1", "loc-w1-a", "")] = decimal.NewFromInt(2)

	_, err := fx.uc.Register(context.Background(), companyCtx(), inventory.MovementInput{
		ProductID:      "p1",
		FromLocationID: "loc-w1-a",
		ToLocationID:   "loc-w1-b",
		Qty:            decimal.NewFromInt(5),
		Reason:         entity.MovementTransfer,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Rollback: nada cambió y no quedó movimiento registrado.
	assert.True(t, fx.stock.qty[stockKey("p1", "loc-w1-a", "")].Equal(decimal.NewFromInt(2)))
	assert.Empty(t, fx.movs.created)
}

func TestRegister_ScopeWarehouseNoPuedeTocarBodegaAjena(t *testing.T) {
	fx := newMovementFixture(t)
	fx.stock.qty[stockKey("p1", "loc-w1-a", "")] = decimal.NewFromInt(10)

	// Sesión con acceso solo a w1 intenta trasladar hacia una ubicación de w2.
	_, err := fx.uc.Register(context.Background(), warehouseCtx("w1"), inventory.MovementInput{
		ProductID:      "p1",
		FromLocationID: "loc-w1-a",
		ToLocationID:   "loc-w2-a",
		Qty:            decimal.NewFromInt(1),
		Reason:         entity.MovementTransfer,
	})
	require.ErrorIs(t, err, domain.ErrWarehouseNotAllowed)
	assert.Empty(t, fx.movs.created)

	// El origen ajeno también se rechaza.
	_, err = fx.uc.Register(context.Background(), warehouseCtx("w2"), inventory.MovementInput{
		ProductID:      "p1",
		FromLocationID: "loc-w1-a",
		ToLocationID:   "loc-w2-a",
		Qty:            decimal.NewFromInt(1),
		Reason:         entity.MovementTransfer,
	})
	require.ErrorIs(t, err, domain.ErrWarehouseNotAllowed)
}

func TestRegister_ValidaMotivoYExtremos(t *testing.T) {
	fx := newMovementFixture(t)

	cases := []struct {
		name  string
		input inventory.MovementInput
	}{
		{"motivo desconocido", inventory.MovementInput{ProductID: "p1", ToLocationID: "loc-w1-a", Qty: decimal.NewFromInt(1), Reason: "MAGIC"}},
		{"cantidad cero", inventory.MovementInput{ProductID: "p1", ToLocationID: "loc-w1-a", Qty: decimal.Zero, Reason: entity.MovementReceive}},
		{"cantidad negativa", inventory.MovementInput{ProductID: "p1", ToLocationID: "loc-w1-a", Qty: decimal.NewFromInt(-2), Reason: entity.MovementReceive}},
		{"recepción con origen", inventory.MovementInput{ProductID: "p1", FromLocationID: "loc-w1-a", ToLocationID: "loc-w1-b", Qty: decimal.NewFromInt(1), Reason: entity.MovementReceive}},
		{"pick con destino", inventory.MovementInput{ProductID: "p1", FromLocationID: "loc-w1-a", ToLocationID: "loc-w1-b", Qty: decimal.NewFromInt(1), Reason: entity.MovementPick}},
		{"transferencia a la misma ubicación", inventory.MovementInput{ProductID: "p1", FromLocationID: "loc-w1-a", ToLocationID: "loc-w1-a", Qty: decimal.NewFromInt(1), Reason: entity.MovementTransfer}},
		{"ajuste sin extremos", inventory.MovementInput{ProductID: "p1", Qty: decimal.NewFromInt(1), Reason: entity.MovementAdjust}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.uc.Register(context.Background(), companyCtx(), tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRegister_ProductoDeOtraEmpresaEs404(t *testing.T) {
	fx := newMovementFixture(t)

	ac := companyCtx()
	ac.CompanyID = "empresa-2"
	_, err := fx.uc.Register(context.Background(), ac, inventory.MovementInput{
		ProductID:    "p1",
		ToLocationID: "loc-w1-a",
		Qty:          decimal.NewFromInt(1),
		Reason:       entity.MovementReceive,
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}
