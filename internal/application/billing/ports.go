package billing

import (
	"context"

	"github.com/jhoicas/sucursal-api/internal/domain/repository"
)

// TxRunner executes a function inside a database transaction with the
// repositories invoice creation and deletion need: stock consumption and
// restoration must commit or roll back together with the invoice itself.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
