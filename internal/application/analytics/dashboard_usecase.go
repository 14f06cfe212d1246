// Package analytics builds the dashboard payload: windowed headline stats,
// period-over-period growth, the daily sales chart and the side widgets.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/sucursal-api/internal/application/dto"
	"github.com/jhoicas/sucursal-api/internal/application/report"
	"github.com/jhoicas/sucursal-api/internal/domain/entity"
	"github.com/jhoicas/sucursal-api/internal/domain/repository"
)

const (
	dashboardRecentInvoices = 5
	dashboardLowStockItems  = 5
)

// chartDayCap limits the daily sales chart per period.
var chartDayCap = map[string]int{
	report.PeriodDaily:   1,
	report.PeriodWeekly:  7,
	report.PeriodMonthly: 30,
	report.PeriodYearly:  365,
}

// DashboardUseCase computes the dashboard for a period window anchored at
// "now". Growth re-runs the same queries against the immediately preceding
// window of identical duration.
type DashboardUseCase struct {
	invoiceRepo repository.InvoiceRepository
	productRepo repository.ProductRepository
	paymentRepo repository.PaymentRepository
	userRepo    repository.UserRepository
	branchRepo  repository.BranchRepository

	// now is swappable for deterministic tests.
	now func() time.Time
}

// NewDashboardUseCase builds the aggregator.
func NewDashboardUseCase(
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	paymentRepo repository.PaymentRepository,
	userRepo repository.UserRepository,
	branchRepo repository.BranchRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		invoiceRepo: invoiceRepo,
		productRepo: productRepo,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		branchRepo:  branchRepo,
		now:         time.Now,
	}
}

// periodWindow resolves [start, end) from the period anchored at now:
// daily = today, weekly = trailing 7 days, monthly = calendar month to
// date, yearly = calendar year to date.
func periodWindow(period string, now time.Time) (time.Time, time.Time) {
	end := now
	switch period {
	case report.PeriodDaily:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), end
	case report.PeriodWeekly:
		return now.AddDate(0, 0, -7), end
	case report.PeriodYearly:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), end
	default:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), end
	}
}

// GetDashboardData assembles the full dashboard payload.
func (uc *DashboardUseCase) GetDashboardData(ctx context.Context, period string) (*dto.DashboardResponse, error) {
	if period == "" {
		period = report.PeriodMonthly
	}
	now := uc.now()
	startDate, endDate := periodWindow(period, now)

	// Current-window loads in parallel, one goroutine per query.
	type invoicesResult struct {
		rows []*entity.Invoice
		err  error
	}
	type productsResult struct {
		rows []*entity.Product
		err  error
	}
	type paymentsResult struct {
		rows []*entity.Payment
		err  error
	}
	type countResult struct {
		n   int
		err error
	}

	invCh := make(chan invoicesResult, 1)
	prodCh := make(chan productsResult, 1)
	payCh := make(chan paymentsResult, 1)
	userCh := make(chan countResult, 1)
	branchCh := make(chan countResult, 1)

	go func() {
		rows, err := uc.invoiceRepo.ListInRange(repository.InvoiceFilter{DateFrom: &startDate, DateTo: &endDate})
		invCh <- invoicesResult{rows, err}
	}()
	go func() {
		rows, err := uc.productRepo.ListActive("", "")
		prodCh <- productsResult{rows, err}
	}()
	go func() {
		rows, err := uc.paymentRepo.ListInRange(repository.PaymentFilter{DateFrom: &startDate, DateTo: &endDate})
		payCh <- paymentsResult{rows, err}
	}()
	go func() {
		n, err := uc.userRepo.CountActive()
		userCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.branchRepo.CountActive()
		branchCh <- countResult{n, err}
	}()

	inv := <-invCh
	prod := <-prodCh
	pay := <-payCh
	users := <-userCh
	branches := <-branchCh

	if inv.err != nil {
		return nil, fmt.Errorf("dashboard: invoices: %w", inv.err)
	}
	if prod.err != nil {
		return nil, fmt.Errorf("dashboard: products: %w", prod.err)
	}
	if pay.err != nil {
		return nil, fmt.Errorf("dashboard: payments: %w", pay.err)
	}
	if users.err != nil {
		return nil, fmt.Errorf("dashboard: users: %w", users.err)
	}
	if branches.err != nil {
		return nil, fmt.Errorf("dashboard: branches: %w", branches.err)
	}

	totalRevenue := decimal.Zero
	for _, i := range inv.rows {
		totalRevenue = totalRevenue.Add(i.Total)
	}
	totalPayments := decimal.Zero
	for _, p := range pay.rows {
		totalPayments = totalPayments.Add(p.Amount)
	}

	growth, err := uc.computeGrowth(startDate, endDate, len(inv.rows), totalRevenue)
	if err != nil {
		return nil, fmt.Errorf("dashboard: growth: %w", err)
	}

	return &dto.DashboardResponse{
		Stats: dto.DashboardStatsDTO{
			TotalSales:    len(inv.rows),
			TotalProducts: len(prod.rows),
			TotalRevenue:  totalRevenue,
			TotalPayments: totalPayments,
		},
		Growth:           growth,
		SalesChart:       buildDailyChart(inv.rows, period, startDate, endDate),
		CategoryStats:    buildCategoryStats(prod.rows),
		RecentInvoices:   recentInvoices(inv.rows),
		LowStockProducts: lowestStock(prod.rows),
		Summary: dto.DashboardSummaryDTO{
			TotalUsers:    users.n,
			TotalBranches: branches.n,
			StartDate:     startDate,
			EndDate:       endDate,
			Period:        period,
		},
	}, nil
}

// computeGrowth re-runs the window queries against the immediately
// preceding window of equal duration and turns the deltas into percentages
// (0 when the previous window is empty, to avoid division by zero).
func (uc *DashboardUseCase) computeGrowth(startDate, endDate time.Time, currentInvoices int, currentRevenue decimal.Decimal) (dto.DashboardGrowthDTO, error) {
	previousStart := startDate.Add(-endDate.Sub(startDate))
	previousEnd := startDate

	prevInvoices, err := uc.invoiceRepo.ListInRange(repository.InvoiceFilter{DateFrom: &previousStart, DateTo: &previousEnd})
	if err != nil {
		return dto.DashboardGrowthDTO{}, err
	}
	prevRevenue := decimal.Zero
	for _, i := range prevInvoices {
		prevRevenue = prevRevenue.Add(i.Total)
	}

	currentProducts, err := uc.productRepo.CountCreatedBetween(startDate, endDate)
	if err != nil {
		return dto.DashboardGrowthDTO{}, err
	}
	prevProducts, err := uc.productRepo.CountCreatedBetween(previousStart, previousEnd)
	if err != nil {
		return dto.DashboardGrowthDTO{}, err
	}

	countGrowth := growthPercent(
		decimal.NewFromInt(int64(currentInvoices)),
		decimal.NewFromInt(int64(len(prevInvoices))),
	)
	return dto.DashboardGrowthDTO{
		Sales:    countGrowth,
		Invoices: countGrowth,
		Products: growthPercent(
			decimal.NewFromInt(int64(currentProducts)),
			decimal.NewFromInt(int64(prevProducts)),
		),
		Revenue: growthPercent(currentRevenue, prevRevenue),
	}, nil
}

// growthPercent is (current-previous)/previous*100 rounded to two decimals,
// or zero when the previous window had nothing.
func growthPercent(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(2)
}

// buildDailyChart emits one point per day from the window start, capped at
// the period's day cap; each point sums the invoices of that calendar
// day by comparing date strings.
func buildDailyChart(invoices []*entity.Invoice, period string, startDate, endDate time.Time) []dto.DashboardChartPointDTO {
	dayCap, ok := chartDayCap[period]
	if !ok {
		dayCap = 30
	}
	startDay := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	days := int(endDate.Sub(startDay).Hours()/24) + 1
	if days > dayCap {
		days = dayCap
	}

	byDay := make(map[string]decimal.Decimal)
	for _, inv := range invoices {
		key := inv.CreatedAt.Format("2006-01-02")
		total, ok := byDay[key]
		if !ok {
			total = decimal.Zero
		}
		byDay[key] = total.Add(inv.Total)
	}

	points := make([]dto.DashboardChartPointDTO, 0, days)
	for i := 0; i < days; i++ {
		key := startDay.AddDate(0, 0, i).Format("2006-01-02")
		total, ok := byDay[key]
		if !ok {
			total = decimal.Zero
		}
		points = append(points, dto.DashboardChartPointDTO{Date: key, Total: total})
	}
	return points
}

func buildCategoryStats(products []*entity.Product) []dto.DashboardCategoryDTO {
	type agg struct {
		count      int
		totalStock int
	}
	categories := make(map[string]agg)
	var order []string
	for _, p := range products {
		a, ok := categories[p.Category]
		if !ok {
			order = append(order, p.Category)
		}
		a.count++
		a.totalStock += p.Stock
		categories[p.Category] = a
	}
	sort.Strings(order)
	out := make([]dto.DashboardCategoryDTO, 0, len(order))
	for _, cat := range order {
		a := categories[cat]
		out = append(out, dto.DashboardCategoryDTO{Category: cat, Count: a.count, TotalStock: a.totalStock})
	}
	return out
}

func recentInvoices(invoices []*entity.Invoice) []dto.DashboardInvoiceDTO {
	sorted := make([]*entity.Invoice, len(invoices))
	copy(sorted, invoices)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	if len(sorted) > dashboardRecentInvoices {
		sorted = sorted[:dashboardRecentInvoices]
	}
	out := make([]dto.DashboardInvoiceDTO, 0, len(sorted))
	for _, inv := range sorted {
		out = append(out, dto.DashboardInvoiceDTO{
			ID:            inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			CustomerName:  inv.Customer.Name,
			Amount:        inv.Total,
			Date:          inv.CreatedAt,
		})
	}
	return out
}

func lowestStock(products []*entity.Product) []dto.StockProductSummaryDTO {
	sorted := make([]*entity.Product, len(products))
	copy(sorted, products)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Stock < sorted[j].Stock })
	if len(sorted) > dashboardLowStockItems {
		sorted = sorted[:dashboardLowStockItems]
	}
	out := make([]dto.StockProductSummaryDTO, 0, len(sorted))
	for _, p := range sorted {
		out = append(out, dto.StockProductSummaryDTO{
			ID:       p.ID,
			Name:     p.Name,
			SKU:      p.SKU,
			Stock:    p.Stock,
			MinStock: p.MinStock,
			BranchID: p.BranchID,
		})
	}
	return out
}
