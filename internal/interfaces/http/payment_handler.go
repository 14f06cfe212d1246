package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sucursal-api/internal/application/billing"
	"github.com/jhoicas/sucursal-api/internal/application/dto"
)

// PaymentHandler handles cash movement requests (protected).
type PaymentHandler struct {
	uc *billing.PaymentUseCase
}

// NewPaymentHandler builds the handler.
func NewPaymentHandler(uc *billing.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Create godoc
// @Summary      Record a payment
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePaymentRequest  true  "Payment data"
// @Success      201   {object}  dto.PaymentResponse
// @Router       /api/payments [post]
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePaymentRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := h.uc.CreatePayment(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return failErr(c, err)
	}
	return created(c, out, "payment recorded")
}

// List godoc
// @Summary      List payments
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        page           query  int     false  "Page"   default(1)
// @Param        limit          query  int     false  "Limit"  default(20)
// @Param        branch         query  string  false  "Branch id"
// @Param        paymentType    query  string  false  "credit|debit"
// @Param        paymentMethod  query  string  false  "cash|card|transfer|..."
// @Param        dateFrom       query  string  false  "ISO date lower bound"
// @Param        dateTo         query  string  false  "ISO date upper bound"
// @Success      200  {object}  dto.PaymentListResponse
// @Router       /api/payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	var q dto.PaymentListQuery
	if err := c.QueryParser(&q); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	out, err := h.uc.ListPayments(c.UserContext(), q)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, out)
}
