package analytics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sucursal-api/internal/application/report"
	"github.com/jhoicas/sucursal-api/internal/domain/entity"
	"github.com/jhoicas/sucursal-api/internal/domain/repository"
)

// ─────────────────────────────────────────────
// Read-only fakes
// ─────────────────────────────────────────────

type fakeInvoiceRepo struct {
	invoices []*entity.Invoice
}

func (f *fakeInvoiceRepo) Create(*entity.Invoice) error { return nil }
func (f *fakeInvoiceRepo) CreateItem(*entity.InvoiceItem) error { return nil }
func (f *fakeInvoiceRepo) GetByID(string) (*entity.Invoice, error) { return nil, nil }
func (f *fakeInvoiceRepo) GetItemsByInvoiceID(string) ([]entity.InvoiceItem, error) {
	return nil, nil
}
func (f *fakeInvoiceRepo) List(repository.InvoiceFilter, int, int) ([]*entity.Invoice, int, error) {
	return nil, 0, nil
}

func (f *fakeInvoiceRepo) ListInRange(filter repository.InvoiceFilter) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range f.invoices {
		if filter.DateFrom != nil && inv.CreatedAt.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && inv.CreatedAt.After(*filter.DateTo) {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

func (f *fakeInvoiceRepo) CountByDay(time.Time) (int, error) { return 0, nil }
func (f *fakeInvoiceRepo) Delete(string) error { return nil }

type fakeProductRepo struct {
	products []*entity.Product
}

func (f *fakeProductRepo) Create(*entity.Product) error { return nil }
func (f *fakeProductRepo) GetByID(string) (*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) GetBySKU(string) (*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) Update(*entity.Product) error { return nil }
func (f *fakeProductRepo) UpdateStockAndBranch(string, int, string) error { return nil }
func (f *fakeProductRepo) List(repository.ProductFilter, int, int) ([]*entity.Product, int, error) {
	return nil, 0, nil
}
func (f *fakeProductRepo) ListActive(string, string) ([]*entity.Product, error) {
	return f.products, nil
}

func (f *fakeProductRepo) CountCreatedBetween(from, to time.Time) (int, error) {
	n := 0
	for _, p := range f.products {
		if !p.CreatedAt.Before(from) && p.CreatedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

func (f *fakeProductRepo) GetForUpdate(string) (*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) SoftDelete(string) error { return nil }

type fakePaymentRepo struct {
	payments []*entity.Payment
}

func (f *fakePaymentRepo) Create(*entity.Payment) error { return nil }
func (f *fakePaymentRepo) GetByID(string) (*entity.Payment, error) { return nil, nil }
func (f *fakePaymentRepo) List(repository.PaymentFilter, int, int) ([]*entity.Payment, int, error) {
	return nil, 0, nil
}

func (f *fakePaymentRepo) ListInRange(filter repository.PaymentFilter) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range f.payments {
		if filter.DateFrom != nil && p.CreatedAt.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && p.CreatedAt.After(*filter.DateTo) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type fakeUserRepo struct{ active int }

func (f *fakeUserRepo) Create(*entity.User) error { return nil }
func (f *fakeUserRepo) GetByID(string) (*entity.User, error) { return nil, nil }
func (f *fakeUserRepo) GetByEmail(string) (*entity.User, error) { return nil, nil }
func (f *fakeUserRepo) Update(*entity.User) error { return nil }
func (f *fakeUserRepo) List(int, int) ([]*entity.User, int, error) {
	return nil, 0, nil
}
func (f *fakeUserRepo) CountActive() (int, error) { return f.active, nil }

type fakeBranchRepo struct{ active int }

func (f *fakeBranchRepo) Create(*entity.Branch) error { return nil }
func (f *fakeBranchRepo) GetByID(string) (*entity.Branch, error) { return nil, nil }
func (f *fakeBranchRepo) GetActiveByName(string) (*entity.Branch, error) { return nil, nil }
func (f *fakeBranchRepo) Update(*entity.Branch) error { return nil }
func (f *fakeBranchRepo) List(bool, int, int) ([]*entity.Branch, int, error) {
	return nil, 0, nil
}
func (f *fakeBranchRepo) CountActive() (int, error) { return f.active, nil }
func (f *fakeBranchRepo) SoftDelete(string) error { return nil }

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newDashboardFixture(invoices []*entity.Invoice, products []*entity.Product, payments []*entity.Payment) *DashboardUseCase {
	uc := NewDashboardUseCase(
		&fakeInvoiceRepo{invoices: invoices},
		&fakeProductRepo{products: products},
		&fakePaymentRepo{payments: payments},
		&fakeUserRepo{active: 3},
		&fakeBranchRepo{active: 2},
	)
	uc.now = func() time.Time { return at(2025, time.June, 15, 12) }
	return uc
}

// ─────────────────────────────────────────────
// Window resolution and growth math
// ─────────────────────────────────────────────

func TestPeriodWindow(t *testing.T) {
	now := at(2025, time.June, 15, 12)

	start, end := periodWindow(report.PeriodDaily, now)
	assert.Equal(t, at(2025, time.June, 15, 0), start)
	assert.Equal(t, now, end)

	start, _ = periodWindow(report.PeriodWeekly, now)
	assert.Equal(t, at(2025, time.June, 8, 12), start)

	start, _ = periodWindow(report.PeriodMonthly, now)
	assert.Equal(t, at(2025, time.June, 1, 0), start)

	start, _ = periodWindow(report.PeriodYearly, now)
	assert.Equal(t, at(2025, time.January, 1, 0), start)

	// Unknown periods resolve like monthly.
	start, _ = periodWindow("bogus", now)
	assert.Equal(t, at(2025, time.June, 1, 0), start)
}

func TestGrowthPercent(t *testing.T) {
	assert.True(t, growthPercent(dec("150"), dec("100")).Equal(dec("50")))
	assert.True(t, growthPercent(dec("50"), dec("100")).Equal(dec("-50")))
	assert.True(t, growthPercent(dec("100"), dec("100")).Equal(dec("0")))

	// Rounded to two decimals: (100-3)/3*100 = 3233.33...
	assert.Equal(t, "3233.33", growthPercent(dec("100"), dec("3")).StringFixed(2))

	// An empty previous window never divides by zero.
	assert.True(t, growthPercent(dec("100"), decimal.Zero).IsZero())
}

func TestBuildDailyChartCapsDaysPerPeriod(t *testing.T) {
	start := at(2025, time.June, 8, 12)
	end := at(2025, time.June, 15, 12)

	invoices := []*entity.Invoice{
		{Total: dec("40"), CreatedAt: at(2025, time.June, 9, 10)},
		{Total: dec("60"), CreatedAt: at(2025, time.June, 9, 16)},
	}

	points := buildDailyChart(invoices, report.PeriodWeekly, start, end)
	require.Len(t, points, 7)
	assert.Equal(t, "2025-06-08", points[0].Date)
	assert.Equal(t, "2025-06-14", points[6].Date)

	// Same-day invoices sum into one point; empty days stay at zero.
	assert.Equal(t, "2025-06-09", points[1].Date)
	assert.True(t, points[1].Total.Equal(dec("100")))
	assert.True(t, points[2].Total.IsZero())

	// The daily period charts a single day.
	points = buildDailyChart(nil, report.PeriodDaily, at(2025, time.June, 15, 0), end)
	require.Len(t, points, 1)
	assert.Equal(t, "2025-06-15", points[0].Date)
}

// ─────────────────────────────────────────────
// Full payload
// ─────────────────────────────────────────────

func TestGetDashboardDataMonthly(t *testing.T) {
	// Current window: June 1 to June 15 12:00. The previous window has the
	// same duration and ends where the current one starts.
	invoices := []*entity.Invoice{
		{ID: "i1", InvoiceNumber: "INV-20250603-0001", Total: dec("100"), CreatedAt: at(2025, time.June, 3, 10), Customer: entity.Customer{Name: "Carlos"}},
		{ID: "i2", InvoiceNumber: "INV-20250610-0001", Total: dec("200"), CreatedAt: at(2025, time.June, 10, 10)},
		{ID: "i0", InvoiceNumber: "INV-20250520-0001", Total: dec("150"), CreatedAt: at(2025, time.May, 20, 10)},
	}
	products := []*entity.Product{
		{ID: "p1", Category: "accesorios", Stock: 1, MinStock: 3, CreatedAt: at(2025, time.June, 2, 0)},
		{ID: "p2", Category: "accesorios", Stock: 9, CreatedAt: at(2025, time.June, 5, 0)},
		{ID: "p3", Category: "pantallas", Stock: 4, CreatedAt: at(2025, time.May, 25, 0)},
	}
	payments := []*entity.Payment{
		{Amount: dec("80"), CreatedAt: at(2025, time.June, 4, 9)},
		{Amount: dec("500"), CreatedAt: at(2025, time.April, 1, 9)}, // outside both windows
	}
	uc := newDashboardFixture(invoices, products, payments)

	resp, err := uc.GetDashboardData(context.Background(), report.PeriodMonthly)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Stats.TotalSales)
	assert.Equal(t, 3, resp.Stats.TotalProducts)
	assert.True(t, resp.Stats.TotalRevenue.Equal(dec("300")))
	assert.True(t, resp.Stats.TotalPayments.Equal(dec("80")))

	// Previous window holds one invoice worth 150 and one created product.
	assert.True(t, resp.Growth.Sales.Equal(dec("100")), "sales growth, got %s", resp.Growth.Sales)
	assert.True(t, resp.Growth.Invoices.Equal(resp.Growth.Sales))
	assert.True(t, resp.Growth.Revenue.Equal(dec("100")), "revenue growth, got %s", resp.Growth.Revenue)
	assert.True(t, resp.Growth.Products.Equal(dec("100")), "product growth, got %s", resp.Growth.Products)

	// One chart point per day of June so far.
	require.Len(t, resp.SalesChart, 15)
	assert.Equal(t, "2025-06-01", resp.SalesChart[0].Date)
	assert.True(t, resp.SalesChart[2].Total.Equal(dec("100"))) // June 3
	assert.True(t, resp.SalesChart[9].Total.Equal(dec("200"))) // June 10

	require.Len(t, resp.CategoryStats, 2)
	assert.Equal(t, "accesorios", resp.CategoryStats[0].Category)
	assert.Equal(t, 2, resp.CategoryStats[0].Count)
	assert.Equal(t, 10, resp.CategoryStats[0].TotalStock)
	assert.Equal(t, "pantallas", resp.CategoryStats[1].Category)

	// Recent invoices come newest first and only from the window.
	require.Len(t, resp.RecentInvoices, 2)
	assert.Equal(t, "i2", resp.RecentInvoices[0].ID)
	assert.Equal(t, "i1", resp.RecentInvoices[1].ID)
	assert.Equal(t, "Carlos", resp.RecentInvoices[1].CustomerName)

	// Lowest stock first.
	require.Len(t, resp.LowStockProducts, 3)
	assert.Equal(t, "p1", resp.LowStockProducts[0].ID)

	assert.Equal(t, 3, resp.Summary.TotalUsers)
	assert.Equal(t, 2, resp.Summary.TotalBranches)
	assert.Equal(t, report.PeriodMonthly, resp.Summary.Period)
	assert.Equal(t, at(2025, time.June, 1, 0), resp.Summary.StartDate)
}

func TestGetDashboardDataDefaultsToMonthly(t *testing.T) {
	uc := newDashboardFixture(nil, nil, nil)

	resp, err := uc.GetDashboardData(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, report.PeriodMonthly, resp.Summary.Period)

	// No data anywhere: growth stays at zero instead of dividing by zero.
	assert.True(t, resp.Growth.Sales.IsZero())
	assert.True(t, resp.Growth.Revenue.IsZero())
	assert.True(t, resp.Growth.Products.IsZero())
}

func TestGetDashboardDataCapsWidgets(t *testing.T) {
	var invoices []*entity.Invoice
	for i := 0; i < 8; i++ {
		invoices = append(invoices, &entity.Invoice{
			ID:        fmt.Sprintf("i%d", i),
			Total:     dec("10"),
			CreatedAt: at(2025, time.June, 1+i, 10),
		})
	}
	var products []*entity.Product
	for i := 0; i < 9; i++ {
		products = append(products, &entity.Product{
			ID:    fmt.Sprintf("p%d", i),
			Stock: i,
		})
	}
	uc := newDashboardFixture(invoices, products, nil)

	resp, err := uc.GetDashboardData(context.Background(), report.PeriodMonthly)
	require.NoError(t, err)

	require.Len(t, resp.RecentInvoices, 5)
	assert.Equal(t, "i7", resp.RecentInvoices[0].ID)
	require.Len(t, resp.LowStockProducts, 5)
	assert.Equal(t, "p0", resp.LowStockProducts[0].ID)
	assert.Equal(t, "p4", resp.LowStockProducts[4].ID)
}
