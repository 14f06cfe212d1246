package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStatsDTO headline counters of the dashboard window.
type DashboardStatsDTO struct {
	TotalSales    int             `json:"totalSales"` // invoice count
	TotalProducts int             `json:"totalProducts"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalPayments decimal.Decimal `json:"totalPayments"`
}

// DashboardGrowthDTO period-over-period percentage deltas, two decimals.
// Zero when the previous window had no data.
type DashboardGrowthDTO struct {
	Sales    decimal.Decimal `json:"sales"`
	Products decimal.Decimal `json:"products"`
	Invoices decimal.Decimal `json:"invoices"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// DashboardChartPointDTO one day of the sales chart.
type DashboardChartPointDTO struct {
	Date  string          `json:"date"` // ISO calendar day
	Total decimal.Decimal `json:"total"`
}

// DashboardCategoryDTO active products grouped by category.
type DashboardCategoryDTO struct {
	Category   string `json:"category"`
	Count      int    `json:"count"`
	TotalStock int    `json:"totalStock"`
}

// DashboardInvoiceDTO a recent invoice row.
type DashboardInvoiceDTO struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	CustomerName  string          `json:"customerName"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
}

// DashboardSummaryDTO counts and the resolved date range of the window.
type DashboardSummaryDTO struct {
	TotalUsers    int       `json:"totalUsers"`
	TotalBranches int       `json:"totalBranches"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	Period        string    `json:"period"`
}

// DashboardResponse output of GET /api/dashboard.
type DashboardResponse struct {
	Stats            DashboardStatsDTO        `json:"stats"`
	Growth           DashboardGrowthDTO       `json:"growth"`
	SalesChart       []DashboardChartPointDTO `json:"salesChart"`
	CategoryStats    []DashboardCategoryDTO   `json:"categoryStats"`
	RecentInvoices   []DashboardInvoiceDTO    `json:"recentInvoices"`
	LowStockProducts []StockProductSummaryDTO `json:"lowStockProducts"`
	Summary          DashboardSummaryDTO      `json:"summary"`
}
