package repository

import "github.com/jhoicas/sucursal-api/internal/domain/entity"

// TransferFilter narrows transfer listings. BranchID matches either side of
// the transfer; Reason is a case-insensitive substring match.
type TransferFilter struct {
	ProductID string
	BranchID  string
	Status    string
	Reason    string
}

// TransferStatusCount is one row of the per-status aggregate.
type TransferStatusCount struct {
	Status        string
	Count         int
	TotalQuantity int
}

// TransferWithRefs is a transfer joined with the display names of its
// product, branches and users, as produced by the listing queries.
type TransferWithRefs struct {
	entity.Transfer
	ProductName     string
	FromBranchName  string
	ToBranchName    string
	CreatedByName   string
	CompletedByName string
}

// TransferRepository is the persistence port for Transfer.
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	GetWithRefs(id string) (*TransferWithRefs, error)
	// UpdateStatus finalizes a transfer: status, completedAt, completedBy.
	UpdateStatus(transfer *entity.Transfer) error
	List(filter TransferFilter, limit, offset int) ([]*TransferWithRefs, int, error)
	// Stats aggregates count and quantity sum per status, optionally scoped
	// to transfers touching the given branch on either side.
	Stats(filter TransferFilter) ([]TransferStatusCount, error)
}
