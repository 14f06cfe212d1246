package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sucursal-api/internal/domain/entity"
	"github.com/jhoicas/sucursal-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

const paymentColumns = `id, amount, payment_method, payment_type, description, reference, customer, notes, branch_id, created_by, invoice_id, created_at`

// PaymentRepo implements PaymentRepository over PostgreSQL (pool or tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository builds the persistence adapter. Pass pool or tx.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create inserts a payment record.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.Amount, payment.PaymentMethod, payment.PaymentType,
		payment.Description, payment.Reference, payment.Customer, payment.Notes,
		payment.BranchID, payment.CreatedBy, nullable(payment.InvoiceID), payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID fetches a payment by ID. Returns nil when absent.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	var p entity.Payment
	var invoiceID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Amount, &p.PaymentMethod, &p.PaymentType, &p.Description, &p.Reference,
		&p.Customer, &p.Notes, &p.BranchID, &p.CreatedBy, &invoiceID, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	if invoiceID != nil {
		p.InvoiceID = *invoiceID
	}
	return &p, nil
}

// List lists payments applying the filter, newest first, with total count.
func (r *PaymentRepo) List(filter repository.PaymentFilter, limit, offset int) ([]*entity.Payment, int, error) {
	where, args := paymentWhere(filter)

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM payments`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count payments: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT `+paymentColumns+` FROM payments%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	list, err := scanPayments(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListInRange returns every payment matching the filter, oldest first, for
// the reporting aggregators.
func (r *PaymentRepo) ListInRange(filter repository.PaymentFilter) ([]*entity.Payment, error) {
	where, args := paymentWhere(filter)
	query := `SELECT ` + paymentColumns + ` FROM payments` + where + ` ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments in range: %w", err)
	}
	defer rows.Close()
	return scanPayments(rows)
}

func paymentWhere(filter repository.PaymentFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.BranchID != "" {
		args = append(args, filter.BranchID)
		conds = append(conds, fmt.Sprintf("branch_id = $%d", len(args)))
	}
	if filter.PaymentType != "" {
		args = append(args, filter.PaymentType)
		conds = append(conds, fmt.Sprintf("payment_type = $%d", len(args)))
	}
	if filter.Method != "" {
		args = append(args, filter.Method)
		conds = append(conds, fmt.Sprintf("payment_method = $%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
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

func scanPayments(rows pgx.Rows) ([]*entity.Payment, error) {
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		var invoiceID *string
		if err := rows.Scan(
			&p.ID, &p.Amount, &p.PaymentMethod, &p.PaymentType, &p.Description, &p.Reference,
			&p.Customer, &p.Notes, &p.BranchID, &p.CreatedBy, &invoiceID, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		if invoiceID != nil {
			p.InvoiceID = *invoiceID
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
