package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sucursal-api/internal/application/dto"
	"github.com/jhoicas/sucursal-api/internal/application/transfer"
)

// TransferHandler handles inter-branch stock transfer requests (protected).
type TransferHandler struct {
	uc *transfer.UseCase
}

// NewTransferHandler builds the handler.
func NewTransferHandler(uc *transfer.UseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create godoc
// @Summary      Create and complete a stock transfer
// @Description  Moves a quantity of a product between branches. The stock
// @Description  decrement, ownership change, ledger entries and status flip
// @Description  happen in one transaction.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "Transfer data"
// @Success      201   {object}  dto.TransferResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := h.uc.CreateTransfer(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return failErr(c, err)
	}
	return created(c, out, "transfer completed")
}

// List godoc
// @Summary      List transfers
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        page     query  int     false  "Page"   default(1)
// @Param        limit    query  int     false  "Limit"  default(20)
// @Param        product  query  string  false  "Product id"
// @Param        branch   query  string  false  "Branch id (either side)"
// @Param        status   query  string  false  "pending|completed|cancelled"
// @Param        reason   query  string  false  "Reason substring"
// @Success      200  {object}  dto.TransferListResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	var q dto.TransferListQuery
	if err := c.QueryParser(&q); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	out, err := h.uc.GetAllTransfers(c.UserContext(), q)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, out)
}

// GetByID godoc
// @Summary      Get a transfer by id
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Transfer id"
// @Success      200  {object}  dto.TransferResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetTransfer(c.UserContext(), c.Params("id"))
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, out)
}

// Cancel godoc
// @Summary      Cancel a pending transfer
// @Description  Legal only while the transfer is pending. Never touches
// @Description  stock or the ledger.
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Transfer id"
// @Success      200  {object}  dto.TransferResponse
// @Router       /api/transfers/{id}/cancel [put]
func (h *TransferHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.CancelTransfer(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return failErr(c, err)
	}
	return okMessage(c, out, "transfer cancelled")
}

// Stats godoc
// @Summary      Transfer statistics grouped by status
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        branch  query  string  false  "Branch id (either side)"
// @Success      200  {object}  dto.TransferStatsResponse
// @Router       /api/transfers/stats [get]
func (h *TransferHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.GetTransferStats(c.UserContext(), c.Query("branch"))
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, out)
}
