// Package auth implements registration and login on top of bcrypt
// password hashing and signed JWT access tokens.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/sucursal-api/internal/application/dto"
	"github.com/jhoicas/sucursal-api/internal/domain"
	"github.com/jhoicas/sucursal-api/internal/domain/entity"
	"github.com/jhoicas/sucursal-api/internal/domain/repository"
	"github.com/jhoicas/sucursal-api/pkg/jwt"
)

// TokenConfig carries what the use case needs to mint tokens.
type TokenConfig struct {
	Secret     string
	Issuer     string
	Expiration int // minutes
}

// UseCase handles register and login.
type UseCase struct {
	userRepo   repository.UserRepository
	branchRepo repository.BranchRepository
	tokens     TokenConfig
}

// NewUseCase builds the use case.
func NewUseCase(userRepo repository.UserRepository, branchRepo repository.BranchRepository, tokens TokenConfig) *UseCase {
	return &UseCase{userRepo: userRepo, branchRepo: branchRepo, tokens: tokens}
}

// Register creates an account and returns a fresh token for it.
// Emails are unique; the default role is seller.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("register: %w", domain.ErrEmailAlreadyExists)
	}
	if in.BranchID != "" {
		branch, err := uc.branchRepo.GetByID(in.BranchID)
		if err != nil {
			return nil, fmt.Errorf("register: %w", err)
		}
		if branch == nil {
			return nil, fmt.Errorf("register: branch: %w", domain.ErrNotFound)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	role := in.Role
	if role == "" {
		role = entity.RoleSeller
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		BranchID:     in.BranchID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return uc.authResponse(user)
}

// Login checks credentials and returns a token. Invalid email and invalid
// password are indistinguishable to the caller.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, fmt.Errorf("login: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, fmt.Errorf("login: %w", domain.ErrUnauthorized)
	}
	return uc.authResponse(user)
}

func (uc *UseCase) authResponse(user *entity.User) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.tokens.Secret, user.ID, user.BranchID, user.Role, uc.tokens.Issuer, uc.tokens.Expiration)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &dto.AuthResponse{
		Token: token,
		User: dto.UserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Role:      user.Role,
			BranchID:  user.BranchID,
			IsActive:  user.IsActive,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}
