package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment types. Credit entries are money coming in; debit entries are
// money going out and count as expenses in the profit/loss report.
const (
	PaymentTypeCredit = "credit"
	PaymentTypeDebit  = "debit"
)

// Payment is a cash movement record, optionally linked to an invoice.
type Payment struct {
	ID            string
	Amount        decimal.Decimal
	PaymentMethod string // cash, card, transfer, ...
	PaymentType   string // credit | debit
	Description   string
	Reference     string
	Customer      string
	Notes         string
	BranchID      string
	CreatedBy     string
	InvoiceID     string // optional
	CreatedAt     time.Time
}
