package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/sucursal-api/internal/application/dto"
	"github.com/jhoicas/sucursal-api/internal/domain/repository"
)

// MovementUseCase read access to the stock ledger. Entries are written by
// the transfer engine, invoices and stock adjustments, never directly.
type MovementUseCase struct {
	repo repository.StockMovementRepository
}

// NewMovementUseCase builds the use case.
func NewMovementUseCase(repo repository.StockMovementRepository) *MovementUseCase {
	return &MovementUseCase{repo: repo}
}

// List lists ledger entries with filters and pagination.
func (uc *MovementUseCase) List(ctx context.Context, q dto.MovementListQuery) (*dto.MovementListResponse, error) {
	q.Normalize()
	filter := repository.MovementFilter{
		ProductID: q.ProductID,
		BranchID:  q.BranchID,
		Type:      q.Type,
	}
	rows, total, err := uc.repo.List(filter, q.Limit, q.Offset())
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	items := make([]dto.MovementResponse, 0, len(rows))
	for _, m := range rows {
		items = append(items, dto.MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			BranchID:  m.BranchID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Reason:    m.Reason,
			Reference: m.Reference,
			CreatedBy: m.CreatedBy,
			CreatedAt: m.CreatedAt,
		})
	}
	return &dto.MovementListResponse{
		Movements:  items,
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}
