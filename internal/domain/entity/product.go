package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable SKU owned by exactly one branch at any instant.
// Stock is an integer unit count and is never negative; it changes only
// through stock movements (adjustments, transfers, invoice lines).
// Products are soft-deleted via IsActive instead of being destroyed.
type Product struct {
	ID        string
	Name      string
	SKU       string // unique
	Barcode   string // unique when present, optional
	Category  string
	Brand     string
	Price     decimal.Decimal // sale price
	CostPrice decimal.Decimal // acquisition cost, used for stock valuation
	Stock     int
	MinStock  int
	MaxStock  int
	Unit      string // unit of measure (unidad, caja, kg, ...)
	BranchID  string // owning branch
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLowStock reports whether the product is at or below its reorder floor.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}
