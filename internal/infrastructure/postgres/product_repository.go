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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, sku, barcode, category, brand, price, cost_price, stock, min_stock, max_stock, unit, branch_id, is_active, created_at, updated_at`

// ProductRepo implements ProductRepository over PostgreSQL (pool or tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the persistence adapter. Pass pool or tx.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create inserts a new product.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.SKU, nullable(product.Barcode), product.Category,
		product.Brand, product.Price, product.CostPrice, product.Stock, product.MinStock,
		product.MaxStock, product.Unit, product.BranchID, product.IsActive,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID fetches a product by ID. Returns nil when absent.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetBySKU fetches a product by its unique SKU.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, sku), "get product by sku")
}

// GetForUpdate fetches the product locking its row until the surrounding
// transaction ends. Only meaningful on a tx-bound repo.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "lock product")
}

// Update persists the mutable fields. Stock and owning branch change only
// through UpdateStockAndBranch.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, barcode = $3, category = $4, brand = $5, price = $6, cost_price = $7,
		    min_stock = $8, max_stock = $9, unit = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, nullable(product.Barcode), product.Category, product.Brand,
		product.Price, product.CostPrice, product.MinStock, product.MaxStock, product.Unit,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStockAndBranch persists only the stock count and owning branch.
func (r *ProductRepo) UpdateStockAndBranch(productID string, stock int, branchID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, branch_id = $3, updated_at = now() WHERE id = $1`,
		productID, stock, branchID,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// List lists products applying the filter, with total count for pagination.
func (r *ProductRepo) List(filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int, error) {
	where, args := productWhere(filter)

	var total int
	countQuery := `SELECT count(*) FROM products` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT `+productColumns+` FROM products%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	list, err := r.scanAll(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListActive returns every active product, optionally scoped by branch and
// category.
func (r *ProductRepo) ListActive(branchID, category string) ([]*entity.Product, error) {
	where, args := productWhere(repository.ProductFilter{BranchID: branchID, Category: category, ActiveOnly: true})
	query := `SELECT ` + productColumns + ` FROM products` + where + ` ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// CountCreatedBetween counts products created inside [from, to).
func (r *ProductRepo) CountCreatedBetween(from, to time.Time) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM products WHERE created_at >= $1 AND created_at < $2`,
		from, to,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// SoftDelete deactivates a product.
func (r *ProductRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}
	return nil
}

func productWhere(filter repository.ProductFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.BranchID != "" {
		args = append(args, filter.BranchID)
		conds = append(conds, fmt.Sprintf("branch_id = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR sku ILIKE $%d)", len(args), len(args)))
	}
	if filter.ActiveOnly {
		conds = append(conds, "is_active = true")
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

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	var barcode *string
	err := row.Scan(
		&p.ID, &p.Name, &p.SKU, &barcode, &p.Category, &p.Brand, &p.Price, &p.CostPrice,
		&p.Stock, &p.MinStock, &p.MaxStock, &p.Unit, &p.BranchID, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if barcode != nil {
		p.Barcode = *barcode
	}
	return &p, nil
}

func (r *ProductRepo) scanAll(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		var barcode *string
		if err := rows.Scan(
			&p.ID, &p.Name, &p.SKU, &barcode, &p.Category, &p.Brand, &p.Price, &p.CostPrice,
			&p.Stock, &p.MinStock, &p.MaxStock, &p.Unit, &p.BranchID, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if barcode != nil {
			p.Barcode = *barcode
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// nullable maps the empty string to NULL so optional unique columns stay
// usable.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
