package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceCustomerDTO buyer snapshot embedded in invoice payloads.
type InvoiceCustomerDTO struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// InvoiceItemRequest one sale line of a new invoice. Price zero means "use
// the product's current price".
type InvoiceItemRequest struct {
	ProductID string          `json:"product" validate:"required,uuid4"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	Price     decimal.Decimal `json:"price"`
	Discount  decimal.Decimal `json:"discount"`
}

// CreateInvoiceRequest body for POST /api/invoices.
type CreateInvoiceRequest struct {
	Customer      InvoiceCustomerDTO   `json:"customer" validate:"required"`
	Items         []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
	Tax           decimal.Decimal      `json:"tax"`
	Discount      decimal.Decimal      `json:"discount"`
	PaymentMethod string               `json:"paymentMethod" validate:"required"`
	PaymentStatus string               `json:"paymentStatus"`
	BranchID      string               `json:"branch" validate:"required,uuid4"`
	Notes         string               `json:"notes"`
}

// InvoiceListQuery query params for GET /api/invoices.
type InvoiceListQuery struct {
	PageRequest
	BranchID      string `query:"branch"`
	PaymentStatus string `query:"paymentStatus"`
	DateFrom      string `query:"dateFrom"`
	DateTo        string `query:"dateTo"`
}

// InvoiceItemResponse one line of an invoice payload.
type InvoiceItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
}

// InvoiceResponse is the API projection of an invoice.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	InvoiceNumber string                `json:"invoiceNumber"`
	Customer      InvoiceCustomerDTO    `json:"customer"`
	Items         []InvoiceItemResponse `json:"items"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	Tax           decimal.Decimal       `json:"tax"`
	Discount      decimal.Decimal       `json:"discount"`
	Total         decimal.Decimal       `json:"total"`
	PaymentMethod string                `json:"paymentMethod"`
	PaymentStatus string                `json:"paymentStatus"`
	BranchID      string                `json:"branch"`
	CreatedBy     string                `json:"createdBy"`
	Notes         string                `json:"notes,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
}

// InvoiceListResponse paginated invoice listing.
type InvoiceListResponse struct {
	Invoices   []InvoiceResponse `json:"invoices"`
	Pagination Pagination        `json:"pagination"`
}
