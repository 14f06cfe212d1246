package repository

import (
	"time"

	"github.com/jhoicas/sucursal-api/internal/domain/entity"
)

// InvoiceFilter narrows invoice listings and report loads. Nil time bounds
// mean "unbounded".
type InvoiceFilter struct {
	BranchID      string
	PaymentStatus string
	DateFrom      *time.Time
	DateTo        *time.Time
}

// InvoiceRepository is the persistence port for Invoice and its items.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateItem(item *entity.InvoiceItem) error
	GetByID(id string) (*entity.Invoice, error)
	GetItemsByInvoiceID(invoiceID string) ([]entity.InvoiceItem, error)
	List(filter InvoiceFilter, limit, offset int) ([]*entity.Invoice, int, error)
	// ListInRange returns invoice headers matching the filter without
	// pagination, for the reporting and dashboard aggregators.
	ListInRange(filter InvoiceFilter) ([]*entity.Invoice, error)
	// CountByDay returns how many invoices were created on the given
	// calendar day, for the invoice number sequence.
	CountByDay(day time.Time) (int, error)
	Delete(id string) error
}
