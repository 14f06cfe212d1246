package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sucursal-api/internal/domain"
	"github.com/jhoicas/sucursal-api/internal/domain/entity"
	"github.com/jhoicas/sucursal-api/internal/domain/repository"
)

var _ repository.BranchRepository = (*BranchRepo)(nil)

const branchColumns = `id, name, address, phone, email, is_active, created_at, updated_at`

// BranchRepo implements BranchRepository over PostgreSQL (pool or tx).
type BranchRepo struct {
	q Querier
}

// NewBranchRepository builds the persistence adapter. Pass pool or tx.
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

// Create inserts a new branch.
func (r *BranchRepo) Create(branch *entity.Branch) error {
	query := `
		INSERT INTO branches (` + branchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		branch.ID, branch.Name, branch.Address, branch.Phone, branch.Email,
		branch.IsActive, branch.CreatedAt, branch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert branch: %w", err)
	}
	return nil
}

// GetByID fetches a branch by ID. Returns nil when absent.
func (r *BranchRepo) GetByID(id string) (*entity.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get branch")
}

// GetActiveByName fetches the active branch with the given name, if any.
func (r *BranchRepo) GetActiveByName(name string) (*entity.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE name = $1 AND is_active = true`
	return r.scanOne(r.q.QueryRow(context.Background(), query, name), "get branch by name")
}

// Update persists the mutable fields.
func (r *BranchRepo) Update(branch *entity.Branch) error {
	query := `
		UPDATE branches SET name = $2, address = $3, phone = $4, email = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		branch.ID, branch.Name, branch.Address, branch.Phone, branch.Email, branch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update branch: %w", err)
	}
	return nil
}

// List lists branches with total count for pagination.
func (r *BranchRepo) List(activeOnly bool, limit, offset int) ([]*entity.Branch, int, error) {
	where := ""
	if activeOnly {
		where = " WHERE is_active = true"
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM branches`+where).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count branches: %w", err)
	}

	query := `SELECT ` + branchColumns + ` FROM branches` + where + ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()

	var list []*entity.Branch
	for rows.Next() {
		var b entity.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.Phone, &b.Email, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan branch: %w", err)
		}
		list = append(list, &b)
	}
	return list, total, rows.Err()
}

// CountActive counts active branches.
func (r *BranchRepo) CountActive() (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM branches WHERE is_active = true`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count branches: %w", err)
	}
	return count, nil
}

// SoftDelete deactivates a branch.
func (r *BranchRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE branches SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete branch: %w", err)
	}
	return nil
}

func (r *BranchRepo) scanOne(row pgx.Row, op string) (*entity.Branch, error) {
	var b entity.Branch
	err := row.Scan(&b.ID, &b.Name, &b.Address, &b.Phone, &b.Email, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &b, nil
}
