package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body for POST /api/products.
type CreateProductRequest struct {
	Name      string          `json:"name" validate:"required,min=1,max=200"`
	SKU       string          `json:"sku" validate:"required,min=1,max=100"`
	Barcode   string          `json:"barcode" validate:"omitempty,max=100"`
	Category  string          `json:"category"`
	Brand     string          `json:"brand"`
	Price     decimal.Decimal `json:"price"`
	CostPrice decimal.Decimal `json:"costPrice"`
	Stock     int             `json:"stock" validate:"min=0"`
	MinStock  int             `json:"minStock" validate:"min=0"`
	MaxStock  int             `json:"maxStock" validate:"min=0"`
	Unit      string          `json:"unit"`
	BranchID  string          `json:"branch" validate:"required,uuid4"`
}

// UpdateProductRequest body for PUT /api/products/:id. Stock is not updated
// here; it changes through stock adjustments, transfers and invoices.
type UpdateProductRequest struct {
	Name      *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Barcode   *string          `json:"barcode"`
	Category  *string          `json:"category"`
	Brand     *string          `json:"brand"`
	Price     *decimal.Decimal `json:"price"`
	CostPrice *decimal.Decimal `json:"costPrice"`
	MinStock  *int             `json:"minStock" validate:"omitempty,min=0"`
	MaxStock  *int             `json:"maxStock" validate:"omitempty,min=0"`
	Unit      *string          `json:"unit"`
}

// AdjustStockRequest body for POST /api/products/:id/stock. Positive
// quantities register an in movement, negative an out movement.
type AdjustStockRequest struct {
	Quantity int    `json:"quantity" validate:"required"`
	Reason   string `json:"reason" validate:"required"`
}

// ProductResponse is the API projection of a product.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Barcode   string          `json:"barcode,omitempty"`
	Category  string          `json:"category"`
	Brand     string          `json:"brand"`
	Price     decimal.Decimal `json:"price"`
	CostPrice decimal.Decimal `json:"costPrice"`
	Stock     int             `json:"stock"`
	MinStock  int             `json:"minStock"`
	MaxStock  int             `json:"maxStock"`
	Unit      string          `json:"unit"`
	BranchID  string          `json:"branch"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ProductListResponse paginated product listing.
type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	Pagination Pagination        `json:"pagination"`
}
