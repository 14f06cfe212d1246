package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/sucursal-api/internal/application/dto"
	"github.com/jhoicas/sucursal-api/internal/application/transfer"
	"github.com/jhoicas/sucursal-api/internal/domain"
	"github.com/jhoicas/sucursal-api/internal/domain/entity"
	"github.com/jhoicas/sucursal-api/internal/domain/repository"
)

// ProductUseCase CRUD for products. Stock only changes through adjustments,
// transfers and invoice lines, never through a plain update.
type ProductUseCase struct {
	repo       repository.ProductRepository
	branchRepo repository.BranchRepository
	txRunner   transfer.TxRunner
}

// NewProductUseCase builds the use case.
func NewProductUseCase(repo repository.ProductRepository, branchRepo repository.BranchRepository, txRunner transfer.TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, branchRepo: branchRepo, txRunner: txRunner}
}

// Create registers a new product in its owning branch.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	branch, err := uc.branchRepo.GetByID(in.BranchID)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	if branch == nil {
		return nil, fmt.Errorf("create product: branch: %w", domain.ErrNotFound)
	}
	if existing, _ := uc.repo.GetBySKU(in.SKU); existing != nil {
		return nil, fmt.Errorf("create product: sku: %w", domain.ErrDuplicate)
	}
	if in.Stock < 0 || in.MinStock < 0 {
		return nil, fmt.Errorf("create product: %w", domain.ErrInvalidInput)
	}

	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      in.Name,
		SKU:       in.SKU,
		Barcode:   in.Barcode,
		Category:  in.Category,
		Brand:     in.Brand,
		Price:     in.Price,
		CostPrice: in.CostPrice,
		Stock:     in.Stock,
		MinStock:  in.MinStock,
		MaxStock:  in.MaxStock,
		Unit:      in.Unit,
		BranchID:  in.BranchID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return toProductResponse(product), nil
}

// GetByID loads one product.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("get product: %w", domain.ErrNotFound)
	}
	return toProductResponse(product), nil
}

// Update applies the partial update. Stock and owning branch are not
// touched here.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("update product: %w", domain.ErrNotFound)
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.CostPrice != nil {
		product.CostPrice = *in.CostPrice
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if in.MaxStock != nil {
		product.MaxStock = *in.MaxStock
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return toProductResponse(product), nil
}

// AdjustStock applies a manual stock correction and records it in the
// ledger, inside one transaction. Positive quantities are in movements,
// negative are out movements; the result may never go below zero.
func (uc *ProductUseCase) AdjustStock(ctx context.Context, id, userID string, in dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	if in.Quantity == 0 {
		return nil, fmt.Errorf("adjust stock: %w", domain.ErrInvalidInput)
	}
	var adjusted *entity.Product
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.TransferRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		newStock := product.Stock + in.Quantity
		if newStock < 0 {
			return domain.ErrInsufficientStock
		}
		if err := productRepo.UpdateStockAndBranch(product.ID, newStock, product.BranchID); err != nil {
			return err
		}

		movementType := entity.MovementTypeIn
		quantity := in.Quantity
		if quantity < 0 {
			movementType = entity.MovementTypeOut
			quantity = -quantity
		}
		if err := movementRepo.Create(&entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			BranchID:  product.BranchID,
			Type:      movementType,
			Quantity:  quantity,
			Reason:    in.Reason,
			CreatedBy: userID,
			CreatedAt: time.Now(),
		}); err != nil {
			return err
		}
		product.Stock = newStock
		adjusted = product
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("adjust stock: %w", err)
	}
	return toProductResponse(adjusted), nil
}

// List lists products with filters and pagination.
func (uc *ProductUseCase) List(ctx context.Context, q dto.PageRequest, filter repository.ProductFilter) (*dto.ProductListResponse, error) {
	q.Normalize()
	rows, total, err := uc.repo.List(filter, q.Limit, q.Offset())
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	items := make([]dto.ProductResponse, 0, len(rows))
	for _, p := range rows {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Products:   items,
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}

// Delete soft-deletes a product.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if product == nil {
		return fmt.Errorf("delete product: %w", domain.ErrNotFound)
	}
	if err := uc.repo.SoftDelete(id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		Barcode:   p.Barcode,
		Category:  p.Category,
		Brand:     p.Brand,
		Price:     p.Price,
		CostPrice: p.CostPrice,
		Stock:     p.Stock,
		MinStock:  p.MinStock,
		MaxStock:  p.MaxStock,
		Unit:      p.Unit,
		BranchID:  p.BranchID,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
