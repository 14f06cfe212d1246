package transfer

import (
	"context"

	"github.com/jhoicas/sucursal-api/internal/domain/repository"
)

// TxRunner executes a function inside a database transaction, handing it
// repositories bound to that transaction. It guarantees atomicity for the
// read-check-write-ledger-status sequence of the transfer engine.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		transferRepo repository.TransferRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
