package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/sucursal-api/internal/application/dto"
	"github.com/jhoicas/sucursal-api/internal/domain"
	"github.com/jhoicas/sucursal-api/internal/domain/entity"
	"github.com/jhoicas/sucursal-api/internal/domain/repository"
)

// UseCase is the inter-branch transfer engine. It moves a fixed quantity of
// one product from its owning branch to another, inside a single database
// transaction with a row lock on the product, and writes the paired stock
// ledger entries (out at source, in at destination).
//
// State machine for Transfer.Status:
//
//	pending -> completed (success path, driven within CreateTransfer)
//	pending -> cancelled (explicit cancel of a transfer left pending)
//
// Both terminal states are immutable.
type UseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	branchRepo   repository.BranchRepository
	transferRepo repository.TransferRepository
	userRepo     repository.UserRepository
}

// NewUseCase builds the transfer engine.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	branchRepo repository.BranchRepository,
	transferRepo repository.TransferRepository,
	userRepo repository.UserRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		branchRepo:   branchRepo,
		transferRepo: transferRepo,
		userRepo:     userRepo,
	}
}

// CreateTransfer validates and executes one transfer. Preconditions are
// checked in order, each failing fast with no persisted side effects:
//
//  1. the product exists
//  2. both branches exist
//  3. the product's owning branch equals fromBranch
//  4. product.Stock >= quantity
//  5. fromBranch != toBranch
//
// Ownership and stock are re-checked inside the transaction on the locked
// row, so two concurrent transfers of the same product cannot both pass the
// sufficiency check against a stale read.
func (uc *UseCase) CreateTransfer(ctx context.Context, userID string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("create transfer: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("create transfer: product: %w", domain.ErrNotFound)
	}

	fromBranch, err := uc.branchRepo.GetByID(in.FromBranchID)
	if err != nil {
		return nil, fmt.Errorf("create transfer: %w", err)
	}
	toBranch, err := uc.branchRepo.GetByID(in.ToBranchID)
	if err != nil {
		return nil, fmt.Errorf("create transfer: %w", err)
	}
	if fromBranch == nil || toBranch == nil {
		return nil, fmt.Errorf("create transfer: branch: %w", domain.ErrNotFound)
	}

	if product.BranchID != in.FromBranchID {
		return nil, fmt.Errorf("create transfer: %w", domain.ErrBranchMismatch)
	}
	if product.Stock < in.Quantity {
		return nil, fmt.Errorf("create transfer: %w", domain.ErrInsufficientStock)
	}
	if in.FromBranchID == in.ToBranchID {
		return nil, fmt.Errorf("create transfer: %w", domain.ErrSameBranch)
	}

	now := time.Now()
	transfer := &entity.Transfer{
		ID:           uuid.New().String(),
		ProductID:    in.ProductID,
		FromBranchID: in.FromBranchID,
		ToBranchID:   in.ToBranchID,
		Quantity:     in.Quantity,
		Reason:       in.Reason,
		Notes:        in.Notes,
		Status:       entity.TransferStatusPending,
		CreatedBy:    userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		transferRepo repository.TransferRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		// Row lock on the product; re-check against the locked state.
		locked, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if locked == nil {
			return fmt.Errorf("product: %w", domain.ErrNotFound)
		}
		if locked.BranchID != in.FromBranchID {
			return domain.ErrBranchMismatch
		}
		if locked.Stock < in.Quantity {
			return domain.ErrInsufficientStock
		}

		if err := transferRepo.Create(transfer); err != nil {
			return err
		}

		// Stock drops by quantity and ownership moves to the destination.
		if err := productRepo.UpdateStockAndBranch(locked.ID, locked.Stock-in.Quantity, in.ToBranchID); err != nil {
			return err
		}

		movements := []*entity.StockMovement{
			{
				ID:        uuid.New().String(),
				ProductID: in.ProductID,
				BranchID:  in.FromBranchID,
				Type:      entity.MovementTypeOut,
				Quantity:  in.Quantity,
				Reason:    fmt.Sprintf("Transfer to %s", toBranch.Name),
				Reference: transfer.ID,
				CreatedBy: userID,
				CreatedAt: now,
			},
			{
				ID:        uuid.New().String(),
				ProductID: in.ProductID,
				BranchID:  in.ToBranchID,
				Type:      entity.MovementTypeIn,
				Quantity:  in.Quantity,
				Reason:    fmt.Sprintf("Transfer from %s", fromBranch.Name),
				Reference: transfer.ID,
				CreatedBy: userID,
				CreatedAt: now,
			},
		}
		if err := movementRepo.CreateMany(movements); err != nil {
			return err
		}

		completedAt := time.Now()
		transfer.Status = entity.TransferStatusCompleted
		transfer.CompletedAt = &completedAt
		transfer.CompletedBy = userID
		transfer.UpdatedAt = completedAt
		return transferRepo.UpdateStatus(transfer)
	})
	if err != nil {
		return nil, fmt.Errorf("create transfer: %w", err)
	}

	return uc.toResponse(transfer, product.Name, fromBranch.Name, toBranch.Name, uc.userName(userID)), nil
}

// GetAllTransfers lists transfers newest first with the given filters.
func (uc *UseCase) GetAllTransfers(ctx context.Context, q dto.TransferListQuery) (*dto.TransferListResponse, error) {
	q.Normalize()
	filter := repository.TransferFilter{
		ProductID: q.ProductID,
		BranchID:  q.BranchID,
		Status:    q.Status,
		Reason:    q.Reason,
	}
	rows, total, err := uc.transferRepo.List(filter, q.Limit, q.Offset())
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	items := make([]dto.TransferResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, *withRefsToResponse(row))
	}
	return &dto.TransferListResponse{
		Transfers:  items,
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}

// GetTransfer returns one transfer with populated display fields.
func (uc *UseCase) GetTransfer(ctx context.Context, id string) (*dto.TransferResponse, error) {
	row, err := uc.transferRepo.GetWithRefs(id)
	if err != nil {
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	if row == nil {
		return nil, fmt.Errorf("get transfer: %w", domain.ErrNotFound)
	}
	return withRefsToResponse(row), nil
}

// CancelTransfer cancels a transfer that was left pending. It never touches
// stock or the ledger: a pending transfer has not moved anything yet.
func (uc *UseCase) CancelTransfer(ctx context.Context, id, userID string) (*dto.TransferResponse, error) {
	transfer, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("cancel transfer: %w", err)
	}
	if transfer == nil {
		return nil, fmt.Errorf("cancel transfer: %w", domain.ErrNotFound)
	}
	if transfer.Status != entity.TransferStatusPending {
		return nil, fmt.Errorf("cancel transfer: %w", domain.ErrTransferNotPending)
	}

	now := time.Now()
	transfer.Status = entity.TransferStatusCancelled
	transfer.CompletedAt = &now
	transfer.CompletedBy = userID
	transfer.UpdatedAt = now
	if err := uc.transferRepo.UpdateStatus(transfer); err != nil {
		return nil, fmt.Errorf("cancel transfer: %w", err)
	}

	row, err := uc.transferRepo.GetWithRefs(id)
	if err != nil || row == nil {
		// The cancel already committed; fall back to an unpopulated view.
		return uc.toResponse(transfer, "", "", "", ""), nil
	}
	return withRefsToResponse(row), nil
}

// GetTransferStats aggregates transfer counts and quantity sums by status,
// optionally scoped to one branch (matching either side).
func (uc *UseCase) GetTransferStats(ctx context.Context, branchID string) (*dto.TransferStatsResponse, error) {
	rows, err := uc.transferRepo.Stats(repository.TransferFilter{BranchID: branchID})
	if err != nil {
		return nil, fmt.Errorf("transfer stats: %w", err)
	}
	resp := &dto.TransferStatsResponse{ByStatus: make([]dto.TransferStatusStatsDTO, 0, len(rows))}
	for _, row := range rows {
		resp.Total += row.Count
		resp.TotalQuantity += row.TotalQuantity
		resp.ByStatus = append(resp.ByStatus, dto.TransferStatusStatsDTO{
			Status:        row.Status,
			Count:         row.Count,
			TotalQuantity: row.TotalQuantity,
		})
	}
	return resp, nil
}

func (uc *UseCase) userName(id string) string {
	user, err := uc.userRepo.GetByID(id)
	if err != nil || user == nil {
		return ""
	}
	return user.Name
}

func (uc *UseCase) toResponse(t *entity.Transfer, productName, fromName, toName, creatorName string) *dto.TransferResponse {
	resp := &dto.TransferResponse{
		ID:          t.ID,
		Product:     dto.TransferRef{ID: t.ProductID, Name: productName},
		FromBranch:  dto.TransferRef{ID: t.FromBranchID, Name: fromName},
		ToBranch:    dto.TransferRef{ID: t.ToBranchID, Name: toName},
		Quantity:    t.Quantity,
		Reason:      t.Reason,
		Notes:       t.Notes,
		Status:      t.Status,
		CreatedBy:   dto.TransferRef{ID: t.CreatedBy, Name: creatorName},
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
	}
	if t.CompletedBy != "" {
		resp.CompletedBy = &dto.TransferRef{ID: t.CompletedBy, Name: creatorName}
	}
	return resp
}

func withRefsToResponse(row *repository.TransferWithRefs) *dto.TransferResponse {
	resp := &dto.TransferResponse{
		ID:          row.ID,
		Product:     dto.TransferRef{ID: row.ProductID, Name: row.ProductName},
		FromBranch:  dto.TransferRef{ID: row.FromBranchID, Name: row.FromBranchName},
		ToBranch:    dto.TransferRef{ID: row.ToBranchID, Name: row.ToBranchName},
		Quantity:    row.Quantity,
		Reason:      row.Reason,
		Notes:       row.Notes,
		Status:      row.Status,
		CreatedBy:   dto.TransferRef{ID: row.CreatedBy, Name: row.CreatedByName},
		CompletedAt: row.CompletedAt,
		CreatedAt:   row.CreatedAt,
	}
	if row.CompletedBy != "" {
		resp.CompletedBy = &dto.TransferRef{ID: row.CompletedBy, Name: row.CompletedByName}
	}
	return resp
}
