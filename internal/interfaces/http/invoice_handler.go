package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sucursal-api/internal/application/billing"
	"github.com/jhoicas/sucursal-api/internal/application/dto"
)

// InvoiceHandler handles sale invoice requests (protected).
type InvoiceHandler struct {
	uc *billing.InvoiceUseCase
}

// NewInvoiceHandler builds the handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// Create godoc
// @Summary      Create a sale invoice
// @Description  Numbers the invoice, decrements stock per line and writes
// @Description  one out ledger entry per line, in one transaction.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "Invoice data"
// @Success      201   {object}  dto.InvoiceResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := h.uc.CreateInvoice(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return failErr(c, err)
	}
	return created(c, out, "invoice created")
}

// List godoc
// @Summary      List invoices
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        page           query  int     false  "Page"   default(1)
// @Param        limit          query  int     false  "Limit"  default(20)
// @Param        branch         query  string  false  "Branch id"
// @Param        paymentStatus  query  string  false  "paid|pending|partial"
// @Param        dateFrom       query  string  false  "ISO date lower bound"
// @Param        dateTo         query  string  false  "ISO date upper bound"
// @Success      200  {object}  dto.InvoiceListResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var q dto.InvoiceListQuery
	if err := c.QueryParser(&q); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	out, err := h.uc.ListInvoices(c.UserContext(), q)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, out)
}

// GetByID godoc
// @Summary      Get an invoice by id
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Invoice id"
// @Success      200  {object}  dto.InvoiceResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetInvoice(c.UserContext(), c.Params("id"))
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, out)
}

// Delete godoc
// @Summary      Delete an invoice
// @Description  Removes the invoice and restores the sold stock.
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Invoice id"
// @Success      200  {object}  object
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteInvoice(c.UserContext(), c.Params("id")); err != nil {
		return failErr(c, err)
	}
	return okMessage(c, nil, "invoice deleted")
}
