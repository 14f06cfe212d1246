package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePaymentRequest body for POST /api/payments.
type CreatePaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	PaymentMethod string          `json:"paymentMethod" validate:"required"`
	PaymentType   string          `json:"paymentType" validate:"required,oneof=credit debit"`
	Description   string          `json:"description"`
	Reference     string          `json:"reference"`
	Customer      string          `json:"customer"`
	Notes         string          `json:"notes"`
	BranchID      string          `json:"branch" validate:"required,uuid4"`
	InvoiceID     string          `json:"invoice" validate:"omitempty,uuid4"`
}

// PaymentListQuery query params for GET /api/payments.
type PaymentListQuery struct {
	PageRequest
	BranchID    string `query:"branch"`
	PaymentType string `query:"paymentType"`
	Method      string `query:"paymentMethod"`
	DateFrom    string `query:"dateFrom"`
	DateTo      string `query:"dateTo"`
}

// PaymentResponse is the API projection of a payment.
type PaymentResponse struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
	PaymentType   string          `json:"paymentType"`
	Description   string          `json:"description,omitempty"`
	Reference     string          `json:"reference,omitempty"`
	Customer      string          `json:"customer,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	BranchID      string          `json:"branch"`
	CreatedBy     string          `json:"createdBy"`
	InvoiceID     string          `json:"invoice,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// PaymentListResponse paginated payment listing.
type PaymentListResponse struct {
	Payments   []PaymentResponse `json:"payments"`
	Pagination Pagination        `json:"pagination"`
}
