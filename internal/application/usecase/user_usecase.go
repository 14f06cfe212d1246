package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/sucursal-api/internal/application/dto"
	"github.com/jhoicas/sucursal-api/internal/domain"
	"github.com/jhoicas/sucursal-api/internal/domain/entity"
	"github.com/jhoicas/sucursal-api/internal/domain/repository"
)

// UserUseCase read operations over accounts. Account creation lives in
// the auth package.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase builds the use case.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID loads one user.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("get user: %w", domain.ErrUserNotFound)
	}
	return toUserResponse(user), nil
}

// List lists users with pagination.
func (uc *UserUseCase) List(ctx context.Context, q dto.PageRequest) (*dto.UserListResponse, error) {
	q.Normalize()
	rows, total, err := uc.repo.List(q.Limit, q.Offset())
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	items := make([]dto.UserResponse, 0, len(rows))
	for _, u := range rows {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Users:      items,
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		BranchID:  u.BranchID,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
