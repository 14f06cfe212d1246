package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sucursal-api/internal/domain"
	"github.com/jhoicas/sucursal-api/internal/domain/entity"
	"github.com/jhoicas/sucursal-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, invoice_number, customer_name, customer_email, customer_phone, customer_address, subtotal, tax, discount, total, payment_method, payment_status, branch_id, created_by, notes, created_at, updated_at`

// InvoiceRepo implements InvoiceRepository over PostgreSQL (pool or tx).
// Invoice items live in their own table and load separately.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the persistence adapter. Pass pool or tx.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create inserts the invoice header.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.InvoiceNumber, invoice.Customer.Name, invoice.Customer.Email,
		invoice.Customer.Phone, invoice.Customer.Address, invoice.Subtotal, invoice.Tax,
		invoice.Discount, invoice.Total, invoice.PaymentMethod, invoice.PaymentStatus,
		invoice.BranchID, invoice.CreatedBy, invoice.Notes, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItem inserts one sale line.
func (r *InvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (id, invoice_id, product_id, quantity, price, discount, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InvoiceID, item.ProductID, item.Quantity, item.Price, item.Discount, item.Total,
	)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// GetByID fetches an invoice header with its items. Returns nil when absent.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.Customer.Name, &inv.Customer.Email,
		&inv.Customer.Phone, &inv.Customer.Address, &inv.Subtotal, &inv.Tax,
		&inv.Discount, &inv.Total, &inv.PaymentMethod, &inv.PaymentStatus,
		&inv.BranchID, &inv.CreatedBy, &inv.Notes, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	items, err := r.GetItemsByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return &inv, nil
}

// GetItemsByInvoiceID loads the sale lines of one invoice.
func (r *InvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, product_id, quantity, price, discount, total
		FROM invoice_items WHERE invoice_id = $1`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()

	var items []entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.ProductID, &it.Quantity, &it.Price, &it.Discount, &it.Total); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// List lists invoice headers applying the filter, newest first, with total
// count for pagination. Items are not loaded here.
func (r *InvoiceRepo) List(filter repository.InvoiceFilter, limit, offset int) ([]*entity.Invoice, int, error) {
	where, args := invoiceWhere(filter)

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM invoices`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT `+invoiceColumns+` FROM invoices%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	list, err := scanInvoices(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListInRange returns every invoice header matching the filter, oldest
// first, for the reporting aggregators.
func (r *InvoiceRepo) ListInRange(filter repository.InvoiceFilter) ([]*entity.Invoice, error) {
	where, args := invoiceWhere(filter)
	query := `SELECT ` + invoiceColumns + ` FROM invoices` + where + ` ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices in range: %w", err)
	}
	defer rows.Close()
	return scanInvoices(rows)
}

// CountByDay counts invoices created inside the given calendar day.
func (r *InvoiceRepo) CountByDay(day time.Time) (int, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM invoices WHERE created_at >= $1 AND created_at < $2`,
		start, end,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count invoices by day: %w", err)
	}
	return count, nil
}

// Delete removes the invoice and its items (items cascade on the FK).
func (r *InvoiceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

func invoiceWhere(filter repository.InvoiceFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.BranchID != "" {
		args = append(args, filter.BranchID)
		conds = append(conds, fmt.Sprintf("branch_id = $%d", len(args)))
	}
	if filter.PaymentStatus != "" {
		args = append(args, filter.PaymentStatus)
		conds = append(conds, fmt.Sprintf("payment_status = $%d", len(args)))
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

func scanInvoices(rows pgx.Rows) ([]*entity.Invoice, error) {
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.InvoiceNumber, &inv.Customer.Name, &inv.Customer.Email,
			&inv.Customer.Phone, &inv.Customer.Address, &inv.Subtotal, &inv.Tax,
			&inv.Discount, &inv.Total, &inv.PaymentMethod, &inv.PaymentStatus,
			&inv.BranchID, &inv.CreatedBy, &inv.Notes, &inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}
