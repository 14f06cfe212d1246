package repository

import (
	"time"

	"github.com/jhoicas/sucursal-api/internal/domain/entity"
)

// ProductFilter narrows product listings. Zero values mean "no filter".
type ProductFilter struct {
	BranchID   string
	Category   string
	Search     string // matches name or SKU, case-insensitive
	ActiveOnly bool
}

// ProductRepository is the persistence port for Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStockAndBranch persists only the stock count and owning branch
	// (used by the transfer engine and invoice stock consumption).
	UpdateStockAndBranch(productID string, stock int, branchID string) error
	List(filter ProductFilter, limit, offset int) ([]*entity.Product, int, error)
	// ListActive returns every active product, optionally scoped to a branch
	// and category, for the stock report and dashboard category series.
	ListActive(branchID, category string) ([]*entity.Product, error)
	// CountCreatedBetween counts products created inside [from, to), for the
	// dashboard growth windows.
	CountCreatedBetween(from, to time.Time) (int, error)
	// GetForUpdate loads the product and locks its row for the duration of
	// the surrounding transaction (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Product, error)
	SoftDelete(id string) error
}
