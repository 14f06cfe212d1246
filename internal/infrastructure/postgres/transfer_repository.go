package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sucursal-api/internal/domain/entity"
	"github.com/jhoicas/sucursal-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

const transferColumns = `id, product_id, from_branch_id, to_branch_id, quantity, reason, notes, status, created_by, completed_at, completed_by, created_at, updated_at`

// transferRefsSelect joins the display names the listings show. Cancelled
// transfers have no completing user, hence the LEFT JOIN on uc.
const transferRefsSelect = `
	SELECT t.id, t.product_id, t.from_branch_id, t.to_branch_id, t.quantity, t.reason, t.notes,
	       t.status, t.created_by, t.completed_at, t.completed_by, t.created_at, t.updated_at,
	       p.name, bf.name, bt.name, u.name, COALESCE(uc.name, '')
	FROM transfers t
	JOIN products p ON p.id = t.product_id
	JOIN branches bf ON bf.id = t.from_branch_id
	JOIN branches bt ON bt.id = t.to_branch_id
	JOIN users u ON u.id = t.created_by
	LEFT JOIN users uc ON uc.id = t.completed_by`

// TransferRepo implements TransferRepository over PostgreSQL (pool or tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository builds the persistence adapter. Pass pool or tx.
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create inserts a new transfer.
func (r *TransferRepo) Create(transfer *entity.Transfer) error {
	query := `
		INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.ProductID, transfer.FromBranchID, transfer.ToBranchID,
		transfer.Quantity, transfer.Reason, transfer.Notes, transfer.Status,
		transfer.CreatedBy, transfer.CompletedAt, nullable(transfer.CompletedBy),
		transfer.CreatedAt, transfer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByID fetches a transfer by ID. Returns nil when absent.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1`
	var t entity.Transfer
	var completedBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.ProductID, &t.FromBranchID, &t.ToBranchID, &t.Quantity, &t.Reason, &t.Notes,
		&t.Status, &t.CreatedBy, &t.CompletedAt, &completedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	if completedBy != nil {
		t.CompletedBy = *completedBy
	}
	return &t, nil
}

// GetWithRefs fetches a transfer joined with its display names.
func (r *TransferRepo) GetWithRefs(id string) (*repository.TransferWithRefs, error) {
	row := r.q.QueryRow(context.Background(), transferRefsSelect+` WHERE t.id = $1`, id)
	tr, err := scanTransferWithRefs(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return tr, nil
}

// UpdateStatus finalizes a transfer: status, completion time and user.
func (r *TransferRepo) UpdateStatus(transfer *entity.Transfer) error {
	query := `
		UPDATE transfers SET status = $2, completed_at = $3, completed_by = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.Status, transfer.CompletedAt, nullable(transfer.CompletedBy),
		transfer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	return nil
}

// List lists transfers applying the filter, newest first, with total count.
func (r *TransferRepo) List(filter repository.TransferFilter, limit, offset int) ([]*repository.TransferWithRefs, int, error) {
	where, args := transferWhere(filter)

	var total int
	countQuery := `SELECT count(*) FROM transfers t` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transfers: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(transferRefsSelect+`%s ORDER BY t.created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var list []*repository.TransferWithRefs
	for rows.Next() {
		tr, err := scanTransferWithRefs(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, tr)
	}
	return list, total, rows.Err()
}

// Stats aggregates count and quantity sum per status.
func (r *TransferRepo) Stats(filter repository.TransferFilter) ([]repository.TransferStatusCount, error) {
	where, args := transferWhere(filter)
	query := `SELECT t.status, count(*), COALESCE(sum(t.quantity), 0) FROM transfers t` + where + ` GROUP BY t.status`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("transfer stats: %w", err)
	}
	defer rows.Close()

	var stats []repository.TransferStatusCount
	for rows.Next() {
		var s repository.TransferStatusCount
		if err := rows.Scan(&s.Status, &s.Count, &s.TotalQuantity); err != nil {
			return nil, fmt.Errorf("scan transfer stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func transferWhere(filter repository.TransferFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		conds = append(conds, fmt.Sprintf("t.product_id = $%d", len(args)))
	}
	if filter.BranchID != "" {
		args = append(args, filter.BranchID)
		conds = append(conds, fmt.Sprintf("(t.from_branch_id = $%d OR t.to_branch_id = $%d)", len(args), len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("t.status = $%d", len(args)))
	}
	if filter.Reason != "" {
		args = append(args, "%"+filter.Reason+"%")
		conds = append(conds, fmt.Sprintf("t.reason ILIKE $%d", len(args)))
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

func scanTransferWithRefs(row pgx.Row) (*repository.TransferWithRefs, error) {
	var tr repository.TransferWithRefs
	var completedBy *string
	err := row.Scan(
		&tr.ID, &tr.ProductID, &tr.FromBranchID, &tr.ToBranchID, &tr.Quantity, &tr.Reason,
		&tr.Notes, &tr.Status, &tr.CreatedBy, &tr.CompletedAt, &completedBy,
		&tr.CreatedAt, &tr.UpdatedAt,
		&tr.ProductName, &tr.FromBranchName, &tr.ToBranchName, &tr.CreatedByName, &tr.CompletedByName,
	)
	if err != nil {
		return nil, err
	}
	if completedBy != nil {
		tr.CompletedBy = *completedBy
	}
	return &tr, nil
}
