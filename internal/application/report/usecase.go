// Package report builds the sales, stock, profit/loss and payment reports.
// Rows are loaded through read-only repository queries and bucketed,
// gap-filled and summed here, so the arithmetic stays unit-testable without
// a database.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/sucursal-api/internal/application/dto"
	"github.com/jhoicas/sucursal-api/internal/domain/entity"
	"github.com/jhoicas/sucursal-api/internal/domain/repository"
)

// UseCase aggregates invoices, payments and products into report payloads.
type UseCase struct {
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	productRepo repository.ProductRepository

	// now is swappable for deterministic tests.
	now func() time.Time
}

// NewUseCase builds the reporting aggregator.
func NewUseCase(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	productRepo repository.ProductRepository,
) *UseCase {
	return &UseCase{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		productRepo: productRepo,
		now:         time.Now,
	}
}

// GetSalesReport loads the invoices in range and produces the summary, the
// gap-filled chart series for the requested period and the payment-method
// breakdown.
func (uc *UseCase) GetSalesReport(ctx context.Context, q dto.SalesReportQuery) (*dto.SalesReportResponse, error) {
	period := q.Period
	if period == "" {
		period = PeriodMonthly
	}
	filter := repository.InvoiceFilter{BranchID: q.BranchID}
	if from, err := time.Parse(dayLayout, q.DateFrom); err == nil {
		filter.DateFrom = &from
	}
	if to, err := time.Parse(dayLayout, q.DateTo); err == nil {
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &end
	}

	invoices, err := uc.invoiceRepo.ListInRange(filter)
	if err != nil {
		return nil, fmt.Errorf("sales report: %w", err)
	}

	totalRevenue := decimal.Zero
	for _, inv := range invoices {
		totalRevenue = totalRevenue.Add(inv.Total)
	}
	average := decimal.Zero
	if len(invoices) > 0 {
		average = totalRevenue.DivRound(decimal.NewFromInt(int64(len(invoices))), 2)
	}

	return &dto.SalesReportResponse{
		Summary: dto.SalesSummaryDTO{
			TotalRevenue:      totalRevenue,
			TotalInvoices:     len(invoices),
			AverageOrderValue: average,
		},
		ChartData:          buildSalesChart(invoices, period, uc.now()),
		PaymentMethodStats: buildPaymentMethodStats(invoices),
	}, nil
}

// buildSalesChart buckets invoices by period key and emits one point per
// period between the earliest and latest observed bucket, zeros included.
func buildSalesChart(invoices []*entity.Invoice, period string, now time.Time) []dto.SalesChartPointDTO {
	type bucket struct {
		revenue decimal.Decimal
		count   int
	}
	buckets := make(map[string]bucket)
	observed := make([]string, 0, len(buckets))
	for _, inv := range invoices {
		key := PeriodKey(inv.CreatedAt, period)
		b, ok := buckets[key]
		if !ok {
			observed = append(observed, key)
			b = bucket{revenue: decimal.Zero}
		}
		b.revenue = b.revenue.Add(inv.Total)
		b.count++
		buckets[key] = b
	}

	keys := FillKeys(observed, period, now)
	points := make([]dto.SalesChartPointDTO, 0, len(keys))
	for _, key := range keys {
		b, ok := buckets[key]
		if !ok {
			b = bucket{revenue: decimal.Zero}
		}
		points = append(points, dto.SalesChartPointDTO{Date: key, Revenue: b.revenue, Count: b.count})
	}
	return points
}

func buildPaymentMethodStats(invoices []*entity.Invoice) []dto.PaymentMethodStatDTO {
	type stat struct {
		count   int
		revenue decimal.Decimal
	}
	byMethod := make(map[string]stat)
	var order []string
	for _, inv := range invoices {
		s, ok := byMethod[inv.PaymentMethod]
		if !ok {
			order = append(order, inv.PaymentMethod)
			s = stat{revenue: decimal.Zero}
		}
		s.count++
		s.revenue = s.revenue.Add(inv.Total)
		byMethod[inv.PaymentMethod] = s
	}
	sort.Strings(order)
	stats := make([]dto.PaymentMethodStatDTO, 0, len(order))
	for _, method := range order {
		s := byMethod[method]
		stats = append(stats, dto.PaymentMethodStatDTO{Method: method, Count: s.count, Revenue: s.revenue})
	}
	return stats
}

// GetStockReport summarizes the active products, optionally scoped to a
// branch and category.
func (uc *UseCase) GetStockReport(ctx context.Context, q dto.StockReportQuery) (*dto.StockReportResponse, error) {
	products, err := uc.productRepo.ListActive(q.BranchID, q.Category)
	if err != nil {
		return nil, fmt.Errorf("stock report: %w", err)
	}

	resp := &dto.StockReportResponse{
		TotalProducts:   len(products),
		TotalStockValue: decimal.Zero,
	}
	type catAgg struct {
		count      int
		totalStock int
		totalValue decimal.Decimal
	}
	categories := make(map[string]catAgg)
	var catOrder []string
	var low, out []*entity.Product

	for _, p := range products {
		value := p.CostPrice.Mul(decimal.NewFromInt(int64(p.Stock)))
		resp.TotalStockValue = resp.TotalStockValue.Add(value)
		if p.Stock == 0 {
			resp.OutOfStockProducts++
			out = append(out, p)
		}
		if p.IsLowStock() {
			resp.LowStockProducts++
			low = append(low, p)
		}
		agg, ok := categories[p.Category]
		if !ok {
			catOrder = append(catOrder, p.Category)
			agg = catAgg{totalValue: decimal.Zero}
		}
		agg.count++
		agg.totalStock += p.Stock
		agg.totalValue = agg.totalValue.Add(value)
		categories[p.Category] = agg
	}

	sort.Strings(catOrder)
	for _, cat := range catOrder {
		agg := categories[cat]
		resp.CategoryBreakdown = append(resp.CategoryBreakdown, dto.StockCategoryDTO{
			Category:   cat,
			Count:      agg.count,
			TotalStock: agg.totalStock,
			TotalValue: agg.totalValue,
		})
	}

	sort.Slice(low, func(i, j int) bool { return low[i].Stock < low[j].Stock })
	resp.LowStockList = toStockSummaries(low, 10)
	resp.OutOfStockList = toStockSummaries(out, 10)
	return resp, nil
}

func toStockSummaries(products []*entity.Product, max int) []dto.StockProductSummaryDTO {
	if len(products) > max {
		products = products[:max]
	}
	out := make([]dto.StockProductSummaryDTO, 0, len(products))
	for _, p := range products {
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

// GetProfitLossReport sets invoice revenue against debit-payment expenses.
// Credit payments are income records and never count as expenses.
func (uc *UseCase) GetProfitLossReport(ctx context.Context, q dto.ProfitLossQuery) (*dto.ProfitLossResponse, error) {
	invFilter := repository.InvoiceFilter{BranchID: q.BranchID}
	payFilter := repository.PaymentFilter{BranchID: q.BranchID, PaymentType: entity.PaymentTypeDebit}
	if from, err := time.Parse(dayLayout, q.StartDate); err == nil {
		invFilter.DateFrom = &from
		payFilter.DateFrom = &from
	}
	if to, err := time.Parse(dayLayout, q.EndDate); err == nil {
		end := to.Add(24*time.Hour - time.Nanosecond)
		invFilter.DateTo = &end
		payFilter.DateTo = &end
	}

	invoices, err := uc.invoiceRepo.ListInRange(invFilter)
	if err != nil {
		return nil, fmt.Errorf("profit loss report: %w", err)
	}
	debits, err := uc.paymentRepo.ListInRange(payFilter)
	if err != nil {
		return nil, fmt.Errorf("profit loss report: %w", err)
	}

	totalRevenue := decimal.Zero
	for _, inv := range invoices {
		totalRevenue = totalRevenue.Add(inv.Total)
	}
	totalExpenses := decimal.Zero
	for _, p := range debits {
		totalExpenses = totalExpenses.Add(p.Amount)
	}
	netProfit := totalRevenue.Sub(totalExpenses)

	margin := "0.00"
	if totalRevenue.GreaterThan(decimal.Zero) {
		margin = netProfit.Div(totalRevenue).Mul(decimal.NewFromInt(100)).StringFixed(2)
	}

	return &dto.ProfitLossResponse{
		TotalRevenue:  totalRevenue,
		TotalExpenses: totalExpenses,
		NetProfit:     netProfit,
		ProfitMargin:  margin,
		ChartData:     buildProfitLossChart(invoices, debits),
	}, nil
}

// buildProfitLossChart merges invoice revenue and debit expenses into one
// monthly series, gap-filled month by month between the earliest and latest
// observed month. Unlike the sales chart there is no leading-period pad.
func buildProfitLossChart(invoices []*entity.Invoice, debits []*entity.Payment) []dto.ProfitLossPointDTO {
	type monthAgg struct {
		revenue  decimal.Decimal
		expenses decimal.Decimal
	}
	months := make(map[string]monthAgg)
	touch := func(key string) monthAgg {
		if agg, ok := months[key]; ok {
			return agg
		}
		return monthAgg{revenue: decimal.Zero, expenses: decimal.Zero}
	}
	for _, inv := range invoices {
		key := inv.CreatedAt.Format(monthLayout)
		agg := touch(key)
		agg.revenue = agg.revenue.Add(inv.Total)
		months[key] = agg
	}
	for _, p := range debits {
		key := p.CreatedAt.Format(monthLayout)
		agg := touch(key)
		agg.expenses = agg.expenses.Add(p.Amount)
		months[key] = agg
	}
	if len(months) == 0 {
		return nil
	}

	keys := make([]string, 0, len(months))
	for key := range months {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	first, err := keyTime(keys[0], PeriodMonthly)
	if err != nil {
		return nil
	}
	last, err := keyTime(keys[len(keys)-1], PeriodMonthly)
	if err != nil {
		return nil
	}

	var points []dto.ProfitLossPointDTO
	for t := first; !t.After(last); t = stepPeriod(t, PeriodMonthly) {
		key := t.Format(monthLayout)
		agg := touch(key)
		points = append(points, dto.ProfitLossPointDTO{
			Month:    key,
			Revenue:  agg.revenue,
			Expenses: agg.expenses,
			Profit:   agg.revenue.Sub(agg.expenses),
		})
	}
	return points
}

// GetPaymentReport sums payments by method and by credit/debit type. No
// time bucketing here.
func (uc *UseCase) GetPaymentReport(ctx context.Context, q dto.PaymentReportQuery) (*dto.PaymentReportResponse, error) {
	filter := repository.PaymentFilter{BranchID: q.BranchID}
	if from, err := time.Parse(dayLayout, q.DateFrom); err == nil {
		filter.DateFrom = &from
	}
	if to, err := time.Parse(dayLayout, q.DateTo); err == nil {
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &end
	}

	payments, err := uc.paymentRepo.ListInRange(filter)
	if err != nil {
		return nil, fmt.Errorf("payment report: %w", err)
	}

	type agg struct {
		count  int
		amount decimal.Decimal
	}
	byMethod := make(map[string]agg)
	byType := make(map[string]agg)
	var methodOrder, typeOrder []string
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
		m, ok := byMethod[p.PaymentMethod]
		if !ok {
			methodOrder = append(methodOrder, p.PaymentMethod)
			m = agg{amount: decimal.Zero}
		}
		m.count++
		m.amount = m.amount.Add(p.Amount)
		byMethod[p.PaymentMethod] = m

		t, ok := byType[p.PaymentType]
		if !ok {
			typeOrder = append(typeOrder, p.PaymentType)
			t = agg{amount: decimal.Zero}
		}
		t.count++
		t.amount = t.amount.Add(p.Amount)
		byType[p.PaymentType] = t
	}

	sort.Strings(methodOrder)
	sort.Strings(typeOrder)
	resp := &dto.PaymentReportResponse{TotalPayments: len(payments), TotalAmount: total}
	for _, method := range methodOrder {
		a := byMethod[method]
		resp.ByMethod = append(resp.ByMethod, dto.PaymentMethodAmountDTO{Method: method, Count: a.count, Amount: a.amount})
	}
	for _, typ := range typeOrder {
		a := byType[typ]
		resp.ByType = append(resp.ByType, dto.PaymentTypeStatDTO{Type: typ, Count: a.count, Amount: a.amount})
	}
	return resp, nil
}
