package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sucursal-api/internal/application/dto"
	"github.com/jhoicas/sucursal-api/internal/domain"
	"github.com/jhoicas/sucursal-api/internal/domain/entity"
	"github.com/jhoicas/sucursal-api/internal/domain/repository"
)

// ─────────────────────────────────────────────
// In-memory fakes
// ─────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
	order    []string
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	f.products[p.ID] = p
	f.order = append(f.order, p.ID)
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) { return f.products[id], nil }

func (f *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.SKU == sku && p.IsActive {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error { f.products[p.ID] = p; return nil }

func (f *fakeProductRepo) UpdateStockAndBranch(id string, stock int, branchID string) error {
	p := f.products[id]
	p.Stock = stock
	p.BranchID = branchID
	return nil
}

func (f *fakeProductRepo) List(filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int, error) {
	var matched []*entity.Product
	for _, id := range f.order {
		p := f.products[id]
		if filter.BranchID != "" && p.BranchID != filter.BranchID {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.ActiveOnly && !p.IsActive {
			continue
		}
		matched = append(matched, p)
	}
	total := len(matched)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (f *fakeProductRepo) ListActive(string, string) ([]*entity.Product, error) { return nil, nil }

func (f *fakeProductRepo) CountCreatedBetween(time.Time, time.Time) (int, error) { return 0, nil }

func (f *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return f.products[id], nil
}

func (f *fakeProductRepo) SoftDelete(id string) error {
	f.products[id].IsActive = false
	return nil
}

type fakeBranchRepo struct {
	branches map[string]*entity.Branch
	order    []string
}

func newFakeBranchRepo() *fakeBranchRepo {
	return &fakeBranchRepo{branches: map[string]*entity.Branch{}}
}

func (f *fakeBranchRepo) Create(b *entity.Branch) error {
	f.branches[b.ID] = b
	f.order = append(f.order, b.ID)
	return nil
}

func (f *fakeBranchRepo) GetByID(id string) (*entity.Branch, error) { return f.branches[id], nil }

func (f *fakeBranchRepo) GetActiveByName(name string) (*entity.Branch, error) {
	for _, b := range f.branches {
		if b.Name == name && b.IsActive {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBranchRepo) Update(b *entity.Branch) error { f.branches[b.ID] = b; return nil }

func (f *fakeBranchRepo) List(activeOnly bool, limit, offset int) ([]*entity.Branch, int, error) {
	var matched []*entity.Branch
	for _, id := range f.order {
		b := f.branches[id]
		if activeOnly && !b.IsActive {
			continue
		}
		matched = append(matched, b)
	}
	total := len(matched)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (f *fakeBranchRepo) CountActive() (int, error) { return len(f.branches), nil }

func (f *fakeBranchRepo) SoftDelete(id string) error {
	f.branches[id].IsActive = false
	return nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (f *fakeMovementRepo) Create(m *entity.StockMovement) error {
	f.movements = append(f.movements, m)
	return nil
}

func (f *fakeMovementRepo) CreateMany(ms []*entity.StockMovement) error {
	f.movements = append(f.movements, ms...)
	return nil
}

func (f *fakeMovementRepo) List(filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error) {
	var matched []*entity.StockMovement
	for _, m := range f.movements {
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.BranchID != "" && m.BranchID != filter.BranchID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		matched = append(matched, m)
	}
	total := len(matched)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

type fakeTxRunner struct {
	products  *fakeProductRepo
	movements *fakeMovementRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	transferRepo repository.TransferRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	return fn(f.products, nil, f.movements)
}

// ─────────────────────────────────────────────
// Fixture
// ─────────────────────────────────────────────

const (
	ucUserID   = "9c1e2d3c-0000-4000-8000-000000000001"
	ucBranchID = "9c1e2d3c-0000-4000-8000-00000000000a"
)

func newProductFixture(t *testing.T) (*ProductUseCase, *fakeProductRepo, *fakeMovementRepo) {
	t.Helper()
	products := newFakeProductRepo()
	branches := newFakeBranchRepo()
	branches.Create(&entity.Branch{ID: ucBranchID, Name: "Central", IsActive: true})
	movements := &fakeMovementRepo{}
	runner := &fakeTxRunner{products: products, movements: movements}
	return NewProductUseCase(products, branches, runner), products, movements
}

func createProductReq(sku string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:      "Teclado USB",
		SKU:       sku,
		Category:  "accesorios",
		Price:     decimal.RequireFromString("10.50"),
		CostPrice: decimal.RequireFromString("6"),
		Stock:     10,
		MinStock:  2,
		Unit:      "unidad",
		BranchID:  ucBranchID,
	}
}

// ─────────────────────────────────────────────
// CRUD
// ─────────────────────────────────────────────

func TestProductCreate(t *testing.T) {
	uc, products, _ := newProductFixture(t)

	resp, err := uc.Create(context.Background(), createProductReq("TEC-001"))
	require.NoError(t, err)
	assert.Equal(t, "TEC-001", resp.SKU)
	assert.Equal(t, 10, resp.Stock)
	assert.True(t, resp.IsActive)
	assert.Len(t, products.products, 1)
}

func TestProductCreateRejectsDuplicateSKU(t *testing.T) {
	uc, _, _ := newProductFixture(t)

	_, err := uc.Create(context.Background(), createProductReq("TEC-001"))
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), createProductReq("TEC-001"))
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreateRejectsUnknownBranch(t *testing.T) {
	uc, _, _ := newProductFixture(t)

	req := createProductReq("TEC-001")
	req.BranchID = "9c1e2d3c-0000-4000-8000-0000000000ff"
	_, err := uc.Create(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUpdateLeavesStockAndBranchAlone(t *testing.T) {
	uc, products, _ := newProductFixture(t)

	created, err := uc.Create(context.Background(), createProductReq("TEC-001"))
	require.NoError(t, err)

	name := "Teclado mecanico"
	price := decimal.RequireFromString("15")
	resp, err := uc.Update(context.Background(), created.ID, dto.UpdateProductRequest{
		Name:  &name,
		Price: &price,
	})
	require.NoError(t, err)
	assert.Equal(t, "Teclado mecanico", resp.Name)
	assert.True(t, resp.Price.Equal(price))

	// Unnamed fields and the stock/branch pair keep their values.
	assert.Equal(t, "accesorios", resp.Category)
	assert.Equal(t, 10, products.products[created.ID].Stock)
	assert.Equal(t, ucBranchID, products.products[created.ID].BranchID)
}

func TestProductDeleteIsSoft(t *testing.T) {
	uc, products, _ := newProductFixture(t)

	created, err := uc.Create(context.Background(), createProductReq("TEC-001"))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), created.ID))
	assert.False(t, products.products[created.ID].IsActive)

	// The row survives and stays loadable by id.
	resp, err := uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
}

func TestProductListFiltersAndPaginates(t *testing.T) {
	uc, _, _ := newProductFixture(t)

	for _, sku := range []string{"A-1", "A-2", "A-3"} {
		_, err := uc.Create(context.Background(), createProductReq(sku))
		require.NoError(t, err)
	}

	resp, err := uc.List(context.Background(), dto.PageRequest{Page: 2, Limit: 2}, repository.ProductFilter{BranchID: ucBranchID})
	require.NoError(t, err)
	assert.Len(t, resp.Products, 1)
	assert.Equal(t, 3, resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.Pages)
}

// ─────────────────────────────────────────────
// AdjustStock
// ─────────────────────────────────────────────

func TestAdjustStockPositiveWritesInMovement(t *testing.T) {
	uc, _, movements := newProductFixture(t)

	created, err := uc.Create(context.Background(), createProductReq("TEC-001"))
	require.NoError(t, err)

	resp, err := uc.AdjustStock(context.Background(), created.ID, ucUserID, dto.AdjustStockRequest{
		Quantity: 5,
		Reason:   "Conteo fisico",
	})
	require.NoError(t, err)
	assert.Equal(t, 15, resp.Stock)

	require.Len(t, movements.movements, 1)
	m := movements.movements[0]
	assert.Equal(t, entity.MovementTypeIn, m.Type)
	assert.Equal(t, 5, m.Quantity)
	assert.Equal(t, "Conteo fisico", m.Reason)
	assert.Equal(t, ucUserID, m.CreatedBy)
}

func TestAdjustStockNegativeWritesOutMovement(t *testing.T) {
	uc, _, movements := newProductFixture(t)

	created, err := uc.Create(context.Background(), createProductReq("TEC-001"))
	require.NoError(t, err)

	resp, err := uc.AdjustStock(context.Background(), created.ID, ucUserID, dto.AdjustStockRequest{
		Quantity: -4,
		Reason:   "Merma",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, resp.Stock)

	require.Len(t, movements.movements, 1)
	assert.Equal(t, entity.MovementTypeOut, movements.movements[0].Type)
	assert.Equal(t, 4, movements.movements[0].Quantity, "ledger quantities are absolute")
}

func TestAdjustStockNeverGoesNegative(t *testing.T) {
	uc, products, movements := newProductFixture(t)

	created, err := uc.Create(context.Background(), createProductReq("TEC-001"))
	require.NoError(t, err)

	_, err = uc.AdjustStock(context.Background(), created.ID, ucUserID, dto.AdjustStockRequest{
		Quantity: -11,
		Reason:   "Merma",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 10, products.products[created.ID].Stock)
	assert.Empty(t, movements.movements)
}

func TestAdjustStockRejectsZeroQuantity(t *testing.T) {
	uc, _, _ := newProductFixture(t)

	created, err := uc.Create(context.Background(), createProductReq("TEC-001"))
	require.NoError(t, err)

	_, err = uc.AdjustStock(context.Background(), created.ID, ucUserID, dto.AdjustStockRequest{
		Quantity: 0,
		Reason:   "Nada",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
