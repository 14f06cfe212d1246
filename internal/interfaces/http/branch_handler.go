package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sucursal-api/internal/application/dto"
	"github.com/jhoicas/sucursal-api/internal/application/usecase"
)

// BranchHandler handles branch requests (protected).
type BranchHandler struct {
	uc *usecase.BranchUseCase
}

// NewBranchHandler builds the handler.
func NewBranchHandler(uc *usecase.BranchUseCase) *BranchHandler {
	return &BranchHandler{uc: uc}
}

// Create godoc
// @Summary      Create a branch
// @Tags         branches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBranchRequest  true  "Branch data"
// @Success      201   {object}  dto.BranchResponse
// @Router       /api/branches [post]
func (h *BranchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBranchRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return failErr(c, err)
	}
	return created(c, out, "branch created")
}

// GetByID godoc
// @Summary      Get a branch by id
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Branch id"
// @Success      200  {object}  dto.BranchResponse
// @Router       /api/branches/{id} [get]
func (h *BranchHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, out)
}

// List godoc
// @Summary      List branches
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Param        page    query  int   false  "Page"   default(1)
// @Param        limit   query  int   false  "Limit"  default(20)
// @Param        active  query  bool  false  "Only active branches"
// @Success      200  {object}  dto.BranchListResponse
// @Router       /api/branches [get]
func (h *BranchHandler) List(c *fiber.Ctx) error {
	var q dto.PageRequest
	if err := c.QueryParser(&q); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	out, err := h.uc.List(c.UserContext(), q, c.QueryBool("active", false))
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, out)
}

// Update godoc
// @Summary      Update a branch
// @Tags         branches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Branch id"
// @Param        body  body  dto.UpdateBranchRequest  true  "Fields to update"
// @Success      200   {object}  dto.BranchResponse
// @Router       /api/branches/{id} [put]
func (h *BranchHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBranchRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return failErr(c, err)
	}
	return okMessage(c, out, "branch updated")
}

// Delete godoc
// @Summary      Deactivate a branch
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Branch id"
// @Success      200  {object}  object
// @Router       /api/branches/{id} [delete]
func (h *BranchHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return failErr(c, err)
	}
	return okMessage(c, nil, "branch deleted")
}
