package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sucursal-api/internal/application/dto"
	"github.com/jhoicas/sucursal-api/internal/application/usecase"
)

// MovementHandler handles stock ledger listing (protected, read-only).
type MovementHandler struct {
	uc *usecase.MovementUseCase
}

// NewMovementHandler builds the handler.
func NewMovementHandler(uc *usecase.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// List godoc
// @Summary      List stock movements
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        page     query  int     false  "Page"   default(1)
// @Param        limit    query  int     false  "Limit"  default(20)
// @Param        product  query  string  false  "Product id"
// @Param        branch   query  string  false  "Branch id"
// @Param        type     query  string  false  "in|out"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/stock-movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var q dto.MovementListQuery
	if err := c.QueryParser(&q); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	if err := validate.Struct(&q); err != nil {
		return fail(c, fiber.StatusBadRequest, "validation failed: "+err.Error())
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, out)
}
