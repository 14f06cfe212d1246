package repository

import "github.com/jhoicas/sucursal-api/internal/domain/entity"

// MovementFilter narrows stock movement listings.
type MovementFilter struct {
	ProductID string
	BranchID  string
	Type      string
}

// StockMovementRepository is the persistence port for the append-only stock
// ledger. There is deliberately no Update or Delete: ledger entries are
// immutable once written.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// CreateMany inserts several entries in one statement; the transfer
	// engine uses it for the paired out/in records.
	CreateMany(movements []*entity.StockMovement) error
	List(filter MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error)
}
