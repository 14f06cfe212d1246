package usecase

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

// BranchUseCase CRUD for branches. Branch names are unique among active
// branches; deactivating a branch frees its name for reuse.
type BranchUseCase struct {
	repo repository.BranchRepository
}

// NewBranchUseCase builds the use case.
func NewBranchUseCase(repo repository.BranchRepository) *BranchUseCase {
	return &BranchUseCase{repo: repo}
}

// Create registers a branch. The name must not collide with another
// active branch.
func (uc *BranchUseCase) Create(ctx context.Context, in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	existing, err := uc.repo.GetActiveByName(in.Name)
	if err != nil {
		return nil, fmt.Errorf("create branch: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("create branch: name: %w", domain.ErrDuplicate)
	}

	now := time.Now()
	branch := &entity.Branch{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(branch); err != nil {
		return nil, fmt.Errorf("create branch: %w", err)
	}
	return toBranchResponse(branch), nil
}

// GetByID loads one branch.
func (uc *BranchUseCase) GetByID(ctx context.Context, id string) (*dto.BranchResponse, error) {
	branch, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("get branch: %w", err)
	}
	if branch == nil {
		return nil, fmt.Errorf("get branch: %w", domain.ErrNotFound)
	}
	return toBranchResponse(branch), nil
}

// Update applies the partial update. Renames go through the same active
// name uniqueness check as creation.
func (uc *BranchUseCase) Update(ctx context.Context, id string, in dto.UpdateBranchRequest) (*dto.BranchResponse, error) {
	branch, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("update branch: %w", err)
	}
	if branch == nil {
		return nil, fmt.Errorf("update branch: %w", domain.ErrNotFound)
	}
	if in.Name != nil && *in.Name != branch.Name {
		existing, err := uc.repo.GetActiveByName(*in.Name)
		if err != nil {
			return nil, fmt.Errorf("update branch: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, fmt.Errorf("update branch: name: %w", domain.ErrDuplicate)
		}
		branch.Name = *in.Name
	}
	if in.Address != nil {
		branch.Address = *in.Address
	}
	if in.Phone != nil {
		branch.Phone = *in.Phone
	}
	if in.Email != nil {
		branch.Email = *in.Email
	}
	branch.UpdatedAt = time.Now()
	if err := uc.repo.Update(branch); err != nil {
		return nil, fmt.Errorf("update branch: %w", err)
	}
	return toBranchResponse(branch), nil
}

// List lists branches with pagination.
func (uc *BranchUseCase) List(ctx context.Context, q dto.PageRequest, activeOnly bool) (*dto.BranchListResponse, error) {
	q.Normalize()
	rows, total, err := uc.repo.List(activeOnly, q.Limit, q.Offset())
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	items := make([]dto.BranchResponse, 0, len(rows))
	for _, b := range rows {
		items = append(items, *toBranchResponse(b))
	}
	return &dto.BranchListResponse{
		Branches:   items,
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}

// Delete soft-deletes a branch.
func (uc *BranchUseCase) Delete(ctx context.Context, id string) error {
	branch, err := uc.repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("delete branch: %w", err)
	}
	if branch == nil {
		return fmt.Errorf("delete branch: %w", domain.ErrNotFound)
	}
	if err := uc.repo.SoftDelete(id); err != nil {
		return fmt.Errorf("delete branch: %w", err)
	}
	return nil
}

func toBranchResponse(b *entity.Branch) *dto.BranchResponse {
	return &dto.BranchResponse{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		Phone:     b.Phone,
		Email:     b.Email,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
