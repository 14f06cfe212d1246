package billing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sucursal-api/internal/application/dto"
	"github.com/jhoicas/sucursal-api/internal/domain"
	"github.com/jhoicas/sucursal-api/internal/domain/entity"
	"github.com/jhoicas/sucursal-api/internal/domain/repository"
)

type fakePaymentRepo struct {
	payments []*entity.Payment
}

func (f *fakePaymentRepo) Create(p *entity.Payment) error {
	f.payments = append(f.payments, p)
	return nil
}

func (f *fakePaymentRepo) GetByID(id string) (*entity.Payment, error) {
	for _, p := range f.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) List(filter repository.PaymentFilter, limit, offset int) ([]*entity.Payment, int, error) {
	var out []*entity.Payment
	for i := len(f.payments) - 1; i >= 0; i-- {
		p := f.payments[i]
		if filter.PaymentType != "" && p.PaymentType != filter.PaymentType {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

func (f *fakePaymentRepo) ListInRange(repository.PaymentFilter) ([]*entity.Payment, error) {
	return f.payments, nil
}

func newPaymentFixture(t *testing.T) (*PaymentUseCase, *fakePaymentRepo, *fakeInvoiceRepo) {
	t.Helper()
	payments := &fakePaymentRepo{}
	branches := &fakeBranchRepo{branches: map[string]*entity.Branch{
		billBranchID: {ID: billBranchID, Name: "Central", IsActive: true},
	}}
	invoices := newFakeInvoiceRepo()
	return NewPaymentUseCase(payments, branches, invoices), payments, invoices
}

func TestCreatePayment(t *testing.T) {
	uc, payments, _ := newPaymentFixture(t)

	resp, err := uc.CreatePayment(context.Background(), billUserID, dto.CreatePaymentRequest{
		Amount:        decimal.RequireFromString("150.25"),
		PaymentMethod: "cash",
		PaymentType:   entity.PaymentTypeCredit,
		Description:   "Abono cliente",
		BranchID:      billBranchID,
	})
	require.NoError(t, err)

	assert.True(t, resp.Amount.Equal(decimal.RequireFromString("150.25")))
	assert.Equal(t, entity.PaymentTypeCredit, resp.PaymentType)
	require.Len(t, payments.payments, 1)
	assert.Equal(t, billUserID, payments.payments[0].CreatedBy)
}

func TestCreatePaymentRejectsNonPositiveAmount(t *testing.T) {
	uc, payments, _ := newPaymentFixture(t)

	_, err := uc.CreatePayment(context.Background(), billUserID, dto.CreatePaymentRequest{
		Amount:      decimal.Zero,
		PaymentType: entity.PaymentTypeCredit,
		BranchID:    billBranchID,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, payments.payments)
}

func TestCreatePaymentRejectsUnknownType(t *testing.T) {
	uc, _, _ := newPaymentFixture(t)

	_, err := uc.CreatePayment(context.Background(), billUserID, dto.CreatePaymentRequest{
		Amount:      decimal.RequireFromString("10"),
		PaymentType: "refund",
		BranchID:    billBranchID,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreatePaymentBranchNotFound(t *testing.T) {
	uc, _, _ := newPaymentFixture(t)

	_, err := uc.CreatePayment(context.Background(), billUserID, dto.CreatePaymentRequest{
		Amount:      decimal.RequireFromString("10"),
		PaymentType: entity.PaymentTypeDebit,
		BranchID:    "7a1e2d3c-0000-4000-8000-0000000000ff",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreatePaymentLinkedInvoiceMustExist(t *testing.T) {
	uc, _, invoices := newPaymentFixture(t)

	req := dto.CreatePaymentRequest{
		Amount:      decimal.RequireFromString("10"),
		PaymentType: entity.PaymentTypeCredit,
		BranchID:    billBranchID,
		InvoiceID:   "7a1e2d3c-0000-4000-8000-0000000000fe",
	}
	_, err := uc.CreatePayment(context.Background(), billUserID, req)
	require.ErrorIs(t, err, domain.ErrNotFound)

	// With the invoice present the same request goes through.
	invoices.Create(&entity.Invoice{ID: req.InvoiceID})
	resp, err := uc.CreatePayment(context.Background(), billUserID, req)
	require.NoError(t, err)
	assert.Equal(t, req.InvoiceID, resp.InvoiceID)
}

func TestListPaymentsFiltersByType(t *testing.T) {
	uc, _, _ := newPaymentFixture(t)

	for _, typ := range []string{entity.PaymentTypeCredit, entity.PaymentTypeDebit, entity.PaymentTypeCredit} {
		_, err := uc.CreatePayment(context.Background(), billUserID, dto.CreatePaymentRequest{
			Amount:      decimal.RequireFromString("10"),
			PaymentType: typ,
			BranchID:    billBranchID,
		})
		require.NoError(t, err)
	}

	resp, err := uc.ListPayments(context.Background(), dto.PaymentListQuery{PaymentType: entity.PaymentTypeCredit})
	require.NoError(t, err)
	assert.Len(t, resp.Payments, 2)
	assert.Equal(t, 2, resp.Pagination.Total)
}
