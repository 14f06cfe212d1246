package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/sucursal-api/internal/application/dto"
	"github.com/jhoicas/sucursal-api/internal/domain"
	"github.com/jhoicas/sucursal-api/internal/domain/entity"
	"github.com/jhoicas/sucursal-api/internal/domain/repository"
)

// PaymentUseCase records cash movements. Credit entries are income, debit
// entries are expenses (the profit/loss report counts only debits).
type PaymentUseCase struct {
	paymentRepo repository.PaymentRepository
	branchRepo  repository.BranchRepository
	invoiceRepo repository.InvoiceRepository
}

// NewPaymentUseCase builds the use case.
func NewPaymentUseCase(
	paymentRepo repository.PaymentRepository,
	branchRepo repository.BranchRepository,
	invoiceRepo repository.InvoiceRepository,
) *PaymentUseCase {
	return &PaymentUseCase{paymentRepo: paymentRepo, branchRepo: branchRepo, invoiceRepo: invoiceRepo}
}

// CreatePayment validates and persists one payment.
func (uc *PaymentUseCase) CreatePayment(ctx context.Context, userID string, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("create payment: amount: %w", domain.ErrInvalidInput)
	}
	if in.PaymentType != entity.PaymentTypeCredit && in.PaymentType != entity.PaymentTypeDebit {
		return nil, fmt.Errorf("create payment: type: %w", domain.ErrInvalidInput)
	}
	branch, err := uc.branchRepo.GetByID(in.BranchID)
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	if branch == nil {
		return nil, fmt.Errorf("create payment: branch: %w", domain.ErrNotFound)
	}
	if in.InvoiceID != "" {
		invoice, err := uc.invoiceRepo.GetByID(in.InvoiceID)
		if err != nil {
			return nil, fmt.Errorf("create payment: %w", err)
		}
		if invoice == nil {
			return nil, fmt.Errorf("create payment: invoice: %w", domain.ErrNotFound)
		}
	}

	payment := &entity.Payment{
		ID:            uuid.New().String(),
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		PaymentType:   in.PaymentType,
		Description:   in.Description,
		Reference:     in.Reference,
		Customer:      in.Customer,
		Notes:         in.Notes,
		BranchID:      in.BranchID,
		CreatedBy:     userID,
		InvoiceID:     in.InvoiceID,
		CreatedAt:     time.Now(),
	}
	if err := uc.paymentRepo.Create(payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	return toPaymentResponse(payment), nil
}

// ListPayments lists payments newest first.
func (uc *PaymentUseCase) ListPayments(ctx context.Context, q dto.PaymentListQuery) (*dto.PaymentListResponse, error) {
	q.Normalize()
	filter := repository.PaymentFilter{
		BranchID:    q.BranchID,
		PaymentType: q.PaymentType,
		Method:      q.Method,
	}
	if from, err := time.Parse("2006-01-02", q.DateFrom); err == nil {
		filter.DateFrom = &from
	}
	if to, err := time.Parse("2006-01-02", q.DateTo); err == nil {
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &end
	}
	rows, total, err := uc.paymentRepo.List(filter, q.Limit, q.Offset())
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	items := make([]dto.PaymentResponse, 0, len(rows))
	for _, p := range rows {
		items = append(items, *toPaymentResponse(p))
	}
	return &dto.PaymentListResponse{
		Payments:   items,
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:            p.ID,
		Amount:        p.Amount,
		PaymentMethod: p.PaymentMethod,
		PaymentType:   p.PaymentType,
		Description:   p.Description,
		Reference:     p.Reference,
		Customer:      p.Customer,
		Notes:         p.Notes,
		BranchID:      p.BranchID,
		CreatedBy:     p.CreatedBy,
		InvoiceID:     p.InvoiceID,
		CreatedAt:     p.CreatedAt,
	}
}
