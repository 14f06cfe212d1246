package repository

import "github.com/jhoicas/sucursal-api/internal/domain/entity"

// BranchRepository is the persistence port for Branch.
type BranchRepository interface {
	Create(branch *entity.Branch) error
	GetByID(id string) (*entity.Branch, error)
	GetActiveByName(name string) (*entity.Branch, error)
	Update(branch *entity.Branch) error
	List(activeOnly bool, limit, offset int) ([]*entity.Branch, int, error)
	CountActive() (int, error)
	SoftDelete(id string) error
}
