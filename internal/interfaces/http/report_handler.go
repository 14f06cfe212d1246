package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sucursal-api/internal/application/dto"
	"github.com/jhoicas/sucursal-api/internal/application/report"
)

// ReportHandler handles the reporting endpoints (protected).
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler builds the handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Sales godoc
// @Summary      Sales report
// @Description  Revenue summary, gap-filled period chart and payment-method
// @Description  breakdown over an optional date window.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        dateFrom  query  string  false  "ISO date lower bound"
// @Param        dateTo    query  string  false  "ISO date upper bound"
// @Param        branch    query  string  false  "Branch id"
// @Param        period    query  string  false  "daily|weekly|monthly|yearly"  default(daily)
// @Success      200  {object}  dto.SalesReportResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	var q dto.SalesReportQuery
	if err := c.QueryParser(&q); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	if err := validate.Struct(&q); err != nil {
		return fail(c, fiber.StatusBadRequest, "validation failed: "+err.Error())
	}
	out, err := h.uc.GetSalesReport(c.UserContext(), q)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, out)
}

// Stock godoc
// @Summary      Stock report
// @Description  Totals, low/out-of-stock counts and lists, stock valuation
// @Description  and per-category breakdown over active products.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        branch    query  string  false  "Branch id"
// @Param        category  query  string  false  "Category"
// @Success      200  {object}  dto.StockReportResponse
// @Router       /api/reports/stock [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	var q dto.StockReportQuery
	if err := c.QueryParser(&q); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	out, err := h.uc.GetStockReport(c.UserContext(), q)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, out)
}

// ProfitLoss godoc
// @Summary      Profit and loss report
// @Description  Revenue versus debit-type expenses with a merged monthly
// @Description  series and a 2-decimal margin percentage.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  false  "ISO date lower bound"
// @Param        endDate    query  string  false  "ISO date upper bound"
// @Param        branch     query  string  false  "Branch id"
// @Success      200  {object}  dto.ProfitLossResponse
// @Router       /api/reports/profit-loss [get]
func (h *ReportHandler) ProfitLoss(c *fiber.Ctx) error {
	var q dto.ProfitLossQuery
	if err := c.QueryParser(&q); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	out, err := h.uc.GetProfitLossReport(c.UserContext(), q)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, out)
}

// Payments godoc
// @Summary      Payment report
// @Description  Sums grouped by payment method and by credit/debit type.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        dateFrom  query  string  false  "ISO date lower bound"
// @Param        dateTo    query  string  false  "ISO date upper bound"
// @Param        branch    query  string  false  "Branch id"
// @Success      200  {object}  dto.PaymentReportResponse
// @Router       /api/reports/payments [get]
func (h *ReportHandler) Payments(c *fiber.Ctx) error {
	var q dto.PaymentReportQuery
	if err := c.QueryParser(&q); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	out, err := h.uc.GetPaymentReport(c.UserContext(), q)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, out)
}
