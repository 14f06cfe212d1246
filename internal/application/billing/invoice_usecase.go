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

// InvoiceUseCase creates and deletes invoices, keeping product stock and the
// stock ledger in step inside one transaction per operation.
type InvoiceUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	branchRepo  repository.BranchRepository
	invoiceRepo repository.InvoiceRepository
}

// NewInvoiceUseCase builds the use case.
func NewInvoiceUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	branchRepo repository.BranchRepository,
	invoiceRepo repository.InvoiceRepository,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		branchRepo:  branchRepo,
		invoiceRepo: invoiceRepo,
	}
}

// CreateInvoice validates the lines, decrements each product's stock, writes
// one out movement per line referencing the invoice, and persists header and
// items. Any failure rolls the whole sequence back.
//
// Arithmetic: item total = price*quantity - item discount; subtotal = sum of
// item totals; total = subtotal + tax - invoice discount.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("create invoice: %w", domain.ErrInvalidInput)
	}
	branch, err := uc.branchRepo.GetByID(in.BranchID)
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	if branch == nil {
		return nil, fmt.Errorf("create invoice: branch: %w", domain.ErrNotFound)
	}

	now := time.Now()
	invoiceID := uuid.New().String()
	var invoice *entity.Invoice

	err = uc.txRunner.RunBilling(ctx, func(
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		seq, err := invoiceRepo.CountByDay(now)
		if err != nil {
			return err
		}
		number := fmt.Sprintf("INV-%s-%04d", now.Format("20060102"), seq+1)

		items := make([]entity.InvoiceItem, 0, len(in.Items))
		subtotal := decimal.Zero
		for _, line := range in.Items {
			if line.Quantity <= 0 {
				return domain.ErrInvalidInput
			}
			product, err := productRepo.GetForUpdate(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil || !product.IsActive {
				return fmt.Errorf("product %s: %w", line.ProductID, domain.ErrNotFound)
			}
			if product.Stock < line.Quantity {
				return fmt.Errorf("product %s: %w", product.SKU, domain.ErrInsufficientStock)
			}

			price := line.Price
			if price.IsZero() {
				price = product.Price
			}
			lineTotal := price.Mul(decimal.NewFromInt(int64(line.Quantity))).Sub(line.Discount)

			if err := productRepo.UpdateStockAndBranch(product.ID, product.Stock-line.Quantity, product.BranchID); err != nil {
				return err
			}
			if err := movementRepo.Create(&entity.StockMovement{
				ID:        uuid.New().String(),
				ProductID: product.ID,
				BranchID:  in.BranchID,
				Type:      entity.MovementTypeOut,
				Quantity:  line.Quantity,
				Reason:    fmt.Sprintf("Sale %s", number),
				Reference: invoiceID,
				CreatedBy: userID,
				CreatedAt: now,
			}); err != nil {
				return err
			}

			items = append(items, entity.InvoiceItem{
				ID:        uuid.New().String(),
				InvoiceID: invoiceID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Price:     price,
				Discount:  line.Discount,
				Total:     lineTotal,
			})
			subtotal = subtotal.Add(lineTotal)
		}

		paymentStatus := in.PaymentStatus
		if paymentStatus == "" {
			paymentStatus = entity.InvoicePaymentPaid
		}

		invoice = &entity.Invoice{
			ID:            invoiceID,
			InvoiceNumber: number,
			Customer: entity.Customer{
				Name:    in.Customer.Name,
				Email:   in.Customer.Email,
				Phone:   in.Customer.Phone,
				Address: in.Customer.Address,
			},
			Items:         items,
			Subtotal:      subtotal,
			Tax:           in.Tax,
			Discount:      in.Discount,
			Total:         subtotal.Add(in.Tax).Sub(in.Discount),
			PaymentMethod: in.PaymentMethod,
			PaymentStatus: paymentStatus,
			BranchID:      in.BranchID,
			CreatedBy:     userID,
			Notes:         in.Notes,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := invoiceRepo.Create(invoice); err != nil {
			return err
		}
		for i := range items {
			if err := invoiceRepo.CreateItem(&items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	return toInvoiceResponse(invoice), nil
}

// GetInvoice loads a full invoice by id.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if invoice == nil {
		return nil, fmt.Errorf("get invoice: %w", domain.ErrNotFound)
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(id)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	invoice.Items = items
	return toInvoiceResponse(invoice), nil
}

// ListInvoices lists invoices newest first.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, q dto.InvoiceListQuery) (*dto.InvoiceListResponse, error) {
	q.Normalize()
	filter := repository.InvoiceFilter{
		BranchID:      q.BranchID,
		PaymentStatus: q.PaymentStatus,
	}
	if from, err := time.Parse("2006-01-02", q.DateFrom); err == nil {
		filter.DateFrom = &from
	}
	if to, err := time.Parse("2006-01-02", q.DateTo); err == nil {
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &end
	}
	rows, total, err := uc.invoiceRepo.List(filter, q.Limit, q.Offset())
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	items := make([]dto.InvoiceResponse, 0, len(rows))
	for _, inv := range rows {
		items = append(items, *toInvoiceResponse(inv))
	}
	return &dto.InvoiceListResponse{
		Invoices:   items,
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}

// DeleteInvoice removes an invoice and restores the stock its lines
// consumed. The stock ledger keeps only forward sales: no compensating in
// movement is written for the restoration.
func (uc *InvoiceUseCase) DeleteInvoice(ctx context.Context, id string) error {
	invoice, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if invoice == nil {
		return fmt.Errorf("delete invoice: %w", domain.ErrNotFound)
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}

	err = uc.txRunner.RunBilling(ctx, func(
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		for _, item := range items {
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				continue // product hard-removed since the sale; nothing to restore
			}
			if err := productRepo.UpdateStockAndBranch(product.ID, product.Stock+item.Quantity, product.BranchID); err != nil {
				return err
			}
		}
		return invoiceRepo.Delete(id)
	})
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	items := make([]dto.InvoiceItemResponse, 0, len(inv.Items))
	for _, item := range inv.Items {
		items = append(items, dto.InvoiceItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Discount:  item.Discount,
			Total:     item.Total,
		})
	}
	return &dto.InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		Customer: dto.InvoiceCustomerDTO{
			Name:    inv.Customer.Name,
			Email:   inv.Customer.Email,
			Phone:   inv.Customer.Phone,
			Address: inv.Customer.Address,
		},
		Items:         items,
		Subtotal:      inv.Subtotal,
		Tax:           inv.Tax,
		Discount:      inv.Discount,
		Total:         inv.Total,
		PaymentMethod: inv.PaymentMethod,
		PaymentStatus: inv.PaymentStatus,
		BranchID:      inv.BranchID,
		CreatedBy:     inv.CreatedBy,
		Notes:         inv.Notes,
		CreatedAt:     inv.CreatedAt,
	}
}
