package repository

import (
	"time"

	"github.com/jhoicas/sucursal-api/internal/domain/entity"
)

// PaymentFilter narrows payment listings and report loads.
type PaymentFilter struct {
	BranchID    string
	PaymentType string
	Method      string
	DateFrom    *time.Time
	DateTo      *time.Time
}

// PaymentRepository is the persistence port for Payment.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	List(filter PaymentFilter, limit, offset int) ([]*entity.Payment, int, error)
	// ListInRange returns payments matching the filter without pagination,
	// for the profit/loss and payment reports.
	ListInRange(filter PaymentFilter) ([]*entity.Payment, error)
}
