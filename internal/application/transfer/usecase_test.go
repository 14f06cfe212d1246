package transfer

import (
	"context"
	"strings"
	"testing"
	"time"

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
	// lockedStock, when set, overrides Stock on GetForUpdate to simulate a
	// concurrent writer draining stock between the stale read and the lock.
	lockedStock map[string]int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}, lockedStock: map[string]int{}}
}

func (f *fakeProductRepo) Create(p *entity.Product) error { f.products[p.ID] = p; return nil }

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.products[id], nil
}

func (f *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.SKU == sku {
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

func (f *fakeProductRepo) List(repository.ProductFilter, int, int) ([]*entity.Product, int, error) {
	return nil, 0, nil
}

func (f *fakeProductRepo) ListActive(string, string) ([]*entity.Product, error) { return nil, nil }

func (f *fakeProductRepo) CountCreatedBetween(time.Time, time.Time) (int, error) { return 0, nil }

func (f *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	p := f.products[id]
	if p == nil {
		return nil, nil
	}
	if stock, ok := f.lockedStock[id]; ok {
		locked := *p
		locked.Stock = stock
		return &locked, nil
	}
	return p, nil
}

func (f *fakeProductRepo) SoftDelete(id string) error {
	f.products[id].IsActive = false
	return nil
}

type fakeBranchRepo struct {
	branches map[string]*entity.Branch
}

func (f *fakeBranchRepo) Create(b *entity.Branch) error { f.branches[b.ID] = b; return nil }

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

func (f *fakeBranchRepo) List(bool, int, int) ([]*entity.Branch, int, error) { return nil, 0, nil }

func (f *fakeBranchRepo) CountActive() (int, error) { return len(f.branches), nil }

func (f *fakeBranchRepo) SoftDelete(id string) error { return nil }

type fakeTransferRepo struct {
	transfers map[string]*entity.Transfer
	order     []string
	refNames  func(t *entity.Transfer) repository.TransferWithRefs
}

func newFakeTransferRepo() *fakeTransferRepo {
	return &fakeTransferRepo{transfers: map[string]*entity.Transfer{}}
}

func (f *fakeTransferRepo) Create(t *entity.Transfer) error {
	cp := *t
	f.transfers[t.ID] = &cp
	f.order = append(f.order, t.ID)
	return nil
}

func (f *fakeTransferRepo) GetByID(id string) (*entity.Transfer, error) {
	t := f.transfers[id]
	if t == nil {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTransferRepo) GetWithRefs(id string) (*repository.TransferWithRefs, error) {
	t := f.transfers[id]
	if t == nil {
		return nil, nil
	}
	row := repository.TransferWithRefs{Transfer: *t}
	if f.refNames != nil {
		row = f.refNames(t)
	}
	return &row, nil
}

func (f *fakeTransferRepo) UpdateStatus(t *entity.Transfer) error {
	stored := f.transfers[t.ID]
	stored.Status = t.Status
	stored.CompletedAt = t.CompletedAt
	stored.CompletedBy = t.CompletedBy
	stored.UpdatedAt = t.UpdatedAt
	return nil
}

func (f *fakeTransferRepo) List(filter repository.TransferFilter, limit, offset int) ([]*repository.TransferWithRefs, int, error) {
	var matched []*repository.TransferWithRefs
	// Newest first, like the SQL listing.
	for i := len(f.order) - 1; i >= 0; i-- {
		t := f.transfers[f.order[i]]
		if filter.ProductID != "" && t.ProductID != filter.ProductID {
			continue
		}
		if filter.BranchID != "" && t.FromBranchID != filter.BranchID && t.ToBranchID != filter.BranchID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Reason != "" && !strings.Contains(strings.ToLower(t.Reason), strings.ToLower(filter.Reason)) {
			continue
		}
		matched = append(matched, &repository.TransferWithRefs{Transfer: *t})
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

func (f *fakeTransferRepo) Stats(filter repository.TransferFilter) ([]repository.TransferStatusCount, error) {
	agg := map[string]*repository.TransferStatusCount{}
	var order []string
	for _, id := range f.order {
		t := f.transfers[id]
		if filter.BranchID != "" && t.FromBranchID != filter.BranchID && t.ToBranchID != filter.BranchID {
			continue
		}
		row, ok := agg[t.Status]
		if !ok {
			row = &repository.TransferStatusCount{Status: t.Status}
			agg[t.Status] = row
			order = append(order, t.Status)
		}
		row.Count++
		row.TotalQuantity += t.Quantity
	}
	out := make([]repository.TransferStatusCount, 0, len(order))
	for _, status := range order {
		out = append(out, *agg[status])
	}
	return out, nil
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

func (f *fakeMovementRepo) List(repository.MovementFilter, int, int) ([]*entity.StockMovement, int, error) {
	return f.movements, len(f.movements), nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (f *fakeUserRepo) Create(u *entity.User) error { f.users[u.ID] = u; return nil }

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) { return f.users[id], nil }

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(u *entity.User) error { f.users[u.ID] = u; return nil }

func (f *fakeUserRepo) List(int, int) ([]*entity.User, int, error) { return nil, 0, nil }

func (f *fakeUserRepo) CountActive() (int, error) { return len(f.users), nil }

// fakeTxRunner runs the callback directly against the shared fakes. Rollback
// never matters in these tests: the engine checks fail before any write.
type fakeTxRunner struct {
	products  *fakeProductRepo
	transfers *fakeTransferRepo
	movements *fakeMovementRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	transferRepo repository.TransferRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	return fn(f.products, f.transfers, f.movements)
}

// ─────────────────────────────────────────────
// Fixture
// ─────────────────────────────────────────────

const (
	testUserID   = "6f1e2d3c-0000-4000-8000-000000000001"
	testBranchA  = "6f1e2d3c-0000-4000-8000-00000000000a"
	testBranchB  = "6f1e2d3c-0000-4000-8000-00000000000b"
	testProduct1 = "6f1e2d3c-0000-4000-8000-0000000000aa"
)

type fixture struct {
	uc        *UseCase
	products  *fakeProductRepo
	branches  *fakeBranchRepo
	transfers *fakeTransferRepo
	movements *fakeMovementRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	products := newFakeProductRepo()
	products.Create(&entity.Product{
		ID:       testProduct1,
		Name:     "Teclado USB",
		SKU:      "TEC-001",
		Stock:    10,
		MinStock: 2,
		BranchID: testBranchA,
		IsActive: true,
	})

	branches := &fakeBranchRepo{branches: map[string]*entity.Branch{
		testBranchA: {ID: testBranchA, Name: "Central", IsActive: true},
		testBranchB: {ID: testBranchB, Name: "Norte", IsActive: true},
	}}

	users := &fakeUserRepo{users: map[string]*entity.User{
		testUserID: {ID: testUserID, Name: "Ana", Role: entity.RoleManager, IsActive: true},
	}}

	transfers := newFakeTransferRepo()
	movements := &fakeMovementRepo{}
	runner := &fakeTxRunner{products: products, transfers: transfers, movements: movements}

	return &fixture{
		uc:        NewUseCase(runner, products, branches, transfers, users),
		products:  products,
		branches:  branches,
		transfers: transfers,
		movements: movements,
	}
}

func (f *fixture) assertNoSideEffects(t *testing.T) {
	t.Helper()
	p := f.products.products[testProduct1]
	assert.Equal(t, 10, p.Stock, "stock must be untouched")
	assert.Equal(t, testBranchA, p.BranchID, "ownership must be untouched")
	assert.Empty(t, f.transfers.transfers, "no transfer row persisted")
	assert.Empty(t, f.movements.movements, "no ledger entries written")
}

// ─────────────────────────────────────────────
// CreateTransfer
// ─────────────────────────────────────────────

func TestCreateTransferMovesStockAndWritesPairedLedger(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.CreateTransfer(context.Background(), testUserID, dto.CreateTransferRequest{
		ProductID:    testProduct1,
		FromBranchID: testBranchA,
		ToBranchID:   testBranchB,
		Quantity:     4,
		Reason:       "Restock norte",
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, entity.TransferStatusCompleted, resp.Status)
	assert.Equal(t, 4, resp.Quantity)
	assert.Equal(t, "Teclado USB", resp.Product.Name)
	assert.Equal(t, "Central", resp.FromBranch.Name)
	assert.Equal(t, "Norte", resp.ToBranch.Name)
	assert.Equal(t, "Ana", resp.CreatedBy.Name)
	require.NotNil(t, resp.CompletedAt)
	require.NotNil(t, resp.CompletedBy)
	assert.Equal(t, testUserID, resp.CompletedBy.ID)

	// Stock dropped and ownership moved to the destination branch.
	p := f.products.products[testProduct1]
	assert.Equal(t, 6, p.Stock)
	assert.Equal(t, testBranchB, p.BranchID)

	// The persisted transfer reached its terminal state.
	stored := f.transfers.transfers[resp.ID]
	require.NotNil(t, stored)
	assert.Equal(t, entity.TransferStatusCompleted, stored.Status)
	assert.Equal(t, testUserID, stored.CompletedBy)
	assert.NotNil(t, stored.CompletedAt)

	// Paired ledger entries: out at the source, in at the destination,
	// both referencing the transfer.
	require.Len(t, f.movements.movements, 2)
	out, in := f.movements.movements[0], f.movements.movements[1]

	assert.Equal(t, entity.MovementTypeOut, out.Type)
	assert.Equal(t, testBranchA, out.BranchID)
	assert.Equal(t, 4, out.Quantity)
	assert.Equal(t, "Transfer to Norte", out.Reason)
	assert.Equal(t, resp.ID, out.Reference)
	assert.Equal(t, testUserID, out.CreatedBy)

	assert.Equal(t, entity.MovementTypeIn, in.Type)
	assert.Equal(t, testBranchB, in.BranchID)
	assert.Equal(t, 4, in.Quantity)
	assert.Equal(t, "Transfer from Central", in.Reason)
	assert.Equal(t, resp.ID, in.Reference)
}

func TestCreateTransferFullStockEmptiesSource(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateTransfer(context.Background(), testUserID, dto.CreateTransferRequest{
		ProductID:    testProduct1,
		FromBranchID: testBranchA,
		ToBranchID:   testBranchB,
		Quantity:     10,
	})
	require.NoError(t, err)

	p := f.products.products[testProduct1]
	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, testBranchB, p.BranchID)
}

func TestCreateTransferProductNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateTransfer(context.Background(), testUserID, dto.CreateTransferRequest{
		ProductID:    "6f1e2d3c-0000-4000-8000-0000000000ff",
		FromBranchID: testBranchA,
		ToBranchID:   testBranchB,
		Quantity:     1,
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	f.assertNoSideEffects(t)
}

func TestCreateTransferBranchNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateTransfer(context.Background(), testUserID, dto.CreateTransferRequest{
		ProductID:    testProduct1,
		FromBranchID: testBranchA,
		ToBranchID:   "6f1e2d3c-0000-4000-8000-0000000000ff",
		Quantity:     1,
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	f.assertNoSideEffects(t)
}

func TestCreateTransferOwnershipMismatch(t *testing.T) {
	f := newFixture(t)

	// The product lives in branch A; sending it out of B must fail.
	_, err := f.uc.CreateTransfer(context.Background(), testUserID, dto.CreateTransferRequest{
		ProductID:    testProduct1,
		FromBranchID: testBranchB,
		ToBranchID:   testBranchA,
		Quantity:     1,
	})
	require.ErrorIs(t, err, domain.ErrBranchMismatch)
	f.assertNoSideEffects(t)
}

func TestCreateTransferInsufficientStock(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateTransfer(context.Background(), testUserID, dto.CreateTransferRequest{
		ProductID:    testProduct1,
		FromBranchID: testBranchA,
		ToBranchID:   testBranchB,
		Quantity:     11,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	f.assertNoSideEffects(t)
}

func TestCreateTransferSameBranch(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateTransfer(context.Background(), testUserID, dto.CreateTransferRequest{
		ProductID:    testProduct1,
		FromBranchID: testBranchA,
		ToBranchID:   testBranchA,
		Quantity:     1,
	})
	require.ErrorIs(t, err, domain.ErrSameBranch)
	f.assertNoSideEffects(t)
}

func TestCreateTransferRechecksStockOnLockedRow(t *testing.T) {
	f := newFixture(t)

	// The stale read sees 10 units, but by the time the row lock is taken a
	// concurrent transfer has drained the stock to 2.
	f.products.lockedStock[testProduct1] = 2

	_, err := f.uc.CreateTransfer(context.Background(), testUserID, dto.CreateTransferRequest{
		ProductID:    testProduct1,
		FromBranchID: testBranchA,
		ToBranchID:   testBranchB,
		Quantity:     5,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, f.transfers.transfers)
	assert.Empty(t, f.movements.movements)
}

// ─────────────────────────────────────────────
// CancelTransfer
// ─────────────────────────────────────────────

func seedPendingTransfer(f *fixture, id string) *entity.Transfer {
	tr := &entity.Transfer{
		ID:           id,
		ProductID:    testProduct1,
		FromBranchID: testBranchA,
		ToBranchID:   testBranchB,
		Quantity:     3,
		Status:       entity.TransferStatusPending,
		CreatedBy:    testUserID,
		CreatedAt:    time.Now(),
	}
	f.transfers.Create(tr)
	return tr
}

func TestCancelTransferFromPending(t *testing.T) {
	f := newFixture(t)
	seedPendingTransfer(f, "t-1")

	resp, err := f.uc.CancelTransfer(context.Background(), "t-1", testUserID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusCancelled, resp.Status)
	require.NotNil(t, resp.CompletedAt)

	stored := f.transfers.transfers["t-1"]
	assert.Equal(t, entity.TransferStatusCancelled, stored.Status)
	assert.Equal(t, testUserID, stored.CompletedBy)

	// A pending transfer never moved anything, so cancelling it must not
	// touch stock or the ledger.
	assert.Equal(t, 10, f.products.products[testProduct1].Stock)
	assert.Empty(t, f.movements.movements)
}

func TestCancelTransferRejectsTerminalStates(t *testing.T) {
	f := newFixture(t)
	tr := seedPendingTransfer(f, "t-1")

	_, err := f.uc.CancelTransfer(context.Background(), "t-1", testUserID)
	require.NoError(t, err)

	// Cancelling again must fail: cancelled is terminal.
	_, err = f.uc.CancelTransfer(context.Background(), "t-1", testUserID)
	require.ErrorIs(t, err, domain.ErrTransferNotPending)

	// Same for completed transfers.
	tr2 := seedPendingTransfer(f, "t-2")
	tr2.Status = entity.TransferStatusCompleted
	f.transfers.UpdateStatus(tr2)
	_, err = f.uc.CancelTransfer(context.Background(), "t-2", testUserID)
	require.ErrorIs(t, err, domain.ErrTransferNotPending)

	_ = tr
}

func TestCancelTransferNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CancelTransfer(context.Background(), "missing", testUserID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ─────────────────────────────────────────────
// Listing and stats
// ─────────────────────────────────────────────

func TestGetAllTransfersPaginatesNewestFirst(t *testing.T) {
	f := newFixture(t)
	seedPendingTransfer(f, "t-1")
	seedPendingTransfer(f, "t-2")
	seedPendingTransfer(f, "t-3")

	resp, err := f.uc.GetAllTransfers(context.Background(), dto.TransferListQuery{
		PageRequest: dto.PageRequest{Page: 1, Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, resp.Transfers, 2)
	assert.Equal(t, "t-3", resp.Transfers[0].ID)
	assert.Equal(t, "t-2", resp.Transfers[1].ID)
	assert.Equal(t, 3, resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.Pages)
	assert.Equal(t, 1, resp.Pagination.Current)

	resp, err = f.uc.GetAllTransfers(context.Background(), dto.TransferListQuery{
		PageRequest: dto.PageRequest{Page: 2, Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, resp.Transfers, 1)
	assert.Equal(t, "t-1", resp.Transfers[0].ID)
}

func TestGetAllTransfersFiltersByStatus(t *testing.T) {
	f := newFixture(t)
	seedPendingTransfer(f, "t-1")
	tr := seedPendingTransfer(f, "t-2")
	tr.Status = entity.TransferStatusCancelled
	f.transfers.UpdateStatus(tr)

	resp, err := f.uc.GetAllTransfers(context.Background(), dto.TransferListQuery{
		Status: entity.TransferStatusPending,
	})
	require.NoError(t, err)
	require.Len(t, resp.Transfers, 1)
	assert.Equal(t, "t-1", resp.Transfers[0].ID)
}

func TestGetTransferNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.GetTransfer(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetTransferStatsAggregatesByStatus(t *testing.T) {
	f := newFixture(t)
	seedPendingTransfer(f, "t-1")
	seedPendingTransfer(f, "t-2")
	tr := seedPendingTransfer(f, "t-3")
	tr.Status = entity.TransferStatusCompleted
	f.transfers.UpdateStatus(tr)

	resp, err := f.uc.GetTransferStats(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 9, resp.TotalQuantity)
	require.Len(t, resp.ByStatus, 2)

	byStatus := map[string]dto.TransferStatusStatsDTO{}
	for _, row := range resp.ByStatus {
		byStatus[row.Status] = row
	}
	assert.Equal(t, 2, byStatus[entity.TransferStatusPending].Count)
	assert.Equal(t, 6, byStatus[entity.TransferStatusPending].TotalQuantity)
	assert.Equal(t, 1, byStatus[entity.TransferStatusCompleted].Count)
	assert.Equal(t, 3, byStatus[entity.TransferStatusCompleted].TotalQuantity)
}
