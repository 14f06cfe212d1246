package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sucursal-api/internal/application/dto"
	"github.com/jhoicas/sucursal-api/internal/application/usecase"
	"github.com/jhoicas/sucursal-api/internal/domain/repository"
)

// ProductHandler handles product requests (protected).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler builds the handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Create a product
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Product data"
// @Success      201   {object}  dto.ProductResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return failErr(c, err)
	}
	return created(c, out, "product created")
}

// GetByID godoc
// @Summary      Get a product by id
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Product id"
// @Success      200  {object}  dto.ProductResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, out)
}

// List godoc
// @Summary      List products
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        page      query  int     false  "Page"   default(1)
// @Param        limit     query  int     false  "Limit"  default(20)
// @Param        branch    query  string  false  "Branch id"
// @Param        category  query  string  false  "Category"
// @Param        search    query  string  false  "Name or SKU substring"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var q dto.PageRequest
	if err := c.QueryParser(&q); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	filter := repository.ProductFilter{
		BranchID:   c.Query("branch"),
		Category:   c.Query("category"),
		Search:     c.Query("search"),
		ActiveOnly: c.QueryBool("active", false),
	}
	out, err := h.uc.List(c.UserContext(), q, filter)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, out)
}

// Update godoc
// @Summary      Update a product
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Product id"
// @Param        body  body  dto.UpdateProductRequest  true  "Fields to update"
// @Success      200   {object}  dto.ProductResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return failErr(c, err)
	}
	return okMessage(c, out, "product updated")
}

// AdjustStock godoc
// @Summary      Adjust product stock
// @Description  Applies a signed stock correction and records a ledger entry.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Product id"
// @Param        body  body  dto.AdjustStockRequest  true  "Signed quantity and reason"
// @Success      200   {object}  dto.ProductResponse
// @Router       /api/products/{id}/stock [post]
func (h *ProductHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := h.uc.AdjustStock(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return failErr(c, err)
	}
	return okMessage(c, out, "stock adjusted")
}

// Delete godoc
// @Summary      Deactivate a product
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Product id"
// @Success      200  {object}  object
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return failErr(c, err)
	}
	return okMessage(c, nil, "product deleted")
}
