package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment statuses for invoices.
const (
	InvoicePaymentPaid    = "paid"
	InvoicePaymentPending = "pending"
	InvoicePaymentPartial = "partial"
)

// Customer is the buyer snapshot embedded in an invoice.
type Customer struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// InvoiceItem is one sale line. Total = Price*Quantity - Discount.
type InvoiceItem struct {
	ID        string
	InvoiceID string
	ProductID string
	Quantity  int
	Price     decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
}

// Invoice is a sale document. Total = Subtotal + Tax - Discount, where
// Subtotal is the sum of the line totals. Creating an invoice decrements
// the referenced products' stock and writes one out movement per line.
type Invoice struct {
	ID            string
	InvoiceNumber string // unique, date + daily sequence (INV-YYYYMMDD-NNNN)
	Customer      Customer
	Items         []InvoiceItem
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string
	PaymentStatus string
	BranchID      string
	CreatedBy     string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
