package dto

import "github.com/shopspring/decimal"

// SalesReportQuery query params for GET /api/reports/sales.
type SalesReportQuery struct {
	DateFrom string `query:"dateFrom"`
	DateTo   string `query:"dateTo"`
	BranchID string `query:"branch"`
	Period   string `query:"period" validate:"omitempty,oneof=daily weekly monthly yearly"`
}

// SalesSummaryDTO headline figures of the sales report.
type SalesSummaryDTO struct {
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalInvoices     int             `json:"totalInvoices"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

// SalesChartPointDTO one gap-filled chart point. Date is the bucket key
// (ISO date, week start date, YYYY-MM or year).
type SalesChartPointDTO struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Count   int             `json:"count"`
}

// PaymentMethodStatDTO revenue grouped by payment method.
type PaymentMethodStatDTO struct {
	Method  string          `json:"method"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// SalesReportResponse output of GET /api/reports/sales.
type SalesReportResponse struct {
	Summary            SalesSummaryDTO        `json:"summary"`
	ChartData          []SalesChartPointDTO   `json:"chartData"`
	PaymentMethodStats []PaymentMethodStatDTO `json:"paymentMethodStats"`
}

// StockReportQuery query params for GET /api/reports/stock.
type StockReportQuery struct {
	BranchID string `query:"branch"`
	Category string `query:"category"`
}

// StockProductSummaryDTO a light product projection for the low/out-of-stock
// top-10 lists.
type StockProductSummaryDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	SKU      string `json:"sku"`
	Stock    int    `json:"stock"`
	MinStock int    `json:"minStock"`
	BranchID string `json:"branch"`
}

// StockCategoryDTO aggregate per product category.
type StockCategoryDTO struct {
	Category   string          `json:"category"`
	Count      int             `json:"count"`
	TotalStock int             `json:"totalStock"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// StockReportResponse output of GET /api/reports/stock.
type StockReportResponse struct {
	TotalProducts      int                      `json:"totalProducts"`
	LowStockProducts   int                      `json:"lowStockProducts"`
	OutOfStockProducts int                      `json:"outOfStockProducts"`
	TotalStockValue    decimal.Decimal          `json:"totalStockValue"`
	CategoryBreakdown  []StockCategoryDTO       `json:"categoryBreakdown"`
	LowStockList       []StockProductSummaryDTO `json:"lowStockList"`
	OutOfStockList     []StockProductSummaryDTO `json:"outOfStockList"`
}

// ProfitLossQuery query params for GET /api/reports/profit-loss.
type ProfitLossQuery struct {
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	BranchID  string `query:"branch"`
}

// ProfitLossPointDTO one month of the merged revenue/expense series.
type ProfitLossPointDTO struct {
	Month    string          `json:"month"` // YYYY-MM
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

// ProfitLossResponse output of GET /api/reports/profit-loss. ProfitMargin is
// a percentage rendered with two decimals ("60.00").
type ProfitLossResponse struct {
	TotalRevenue  decimal.Decimal      `json:"totalRevenue"`
	TotalExpenses decimal.Decimal      `json:"totalExpenses"`
	NetProfit     decimal.Decimal      `json:"netProfit"`
	ProfitMargin  string               `json:"profitMargin"`
	ChartData     []ProfitLossPointDTO `json:"chartData"`
}

// PaymentReportQuery query params for GET /api/reports/payments.
type PaymentReportQuery struct {
	DateFrom string `query:"dateFrom"`
	DateTo   string `query:"dateTo"`
	BranchID string `query:"branch"`
}

// PaymentTypeStatDTO totals grouped by credit/debit type.
type PaymentTypeStatDTO struct {
	Type   string          `json:"type"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// PaymentMethodAmountDTO totals grouped by payment method.
type PaymentMethodAmountDTO struct {
	Method string          `json:"method"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// PaymentReportResponse output of GET /api/reports/payments.
type PaymentReportResponse struct {
	TotalPayments int                      `json:"totalPayments"`
	TotalAmount   decimal.Decimal          `json:"totalAmount"`
	ByMethod      []PaymentMethodAmountDTO `json:"byMethod"`
	ByType        []PaymentTypeStatDTO     `json:"byType"`
}
