package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/sucursal-api/internal/domain/entity"
	"github.com/jhoicas/sucursal-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, branch_id, type, quantity, reason, reference, created_by, created_at`

// StockMovementRepo implements the append-only stock ledger over PostgreSQL
// (pool or tx). There is no update or delete path.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository builds the persistence adapter. Pass pool or tx.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create appends one ledger entry.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.BranchID, movement.Type,
		movement.Quantity, movement.Reason, nullable(movement.Reference),
		movement.CreatedBy, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// CreateMany appends several entries. The caller runs this inside a
// transaction, so the entries land together or not at all.
func (r *StockMovementRepo) CreateMany(movements []*entity.StockMovement) error {
	for _, m := range movements {
		if err := r.Create(m); err != nil {
			return err
		}
	}
	return nil
}

// List lists ledger entries applying the filter, newest first, with total
// count for pagination.
func (r *StockMovementRepo) List(filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error) {
	where, args := movementWhere(filter)

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM stock_movements`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock movements: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT `+movementColumns+` FROM stock_movements%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var reference *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.BranchID, &m.Type, &m.Quantity, &m.Reason, &reference, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan stock movement: %w", err)
		}
		if reference != nil {
			m.Reference = *reference
		}
		list = append(list, &m)
	}
	return list, total, rows.Err()
}

func movementWhere(filter repository.MovementFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		conds = append(conds, fmt.Sprintf("product_id = $%d", len(args)))
	}
	if filter.BranchID != "" {
		args = append(args, filter.BranchID)
		conds = append(conds, fmt.Sprintf("branch_id = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	where := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		where += " AND " + c
	}
	return where, args
}
