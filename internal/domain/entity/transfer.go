package entity

import "time"

// Transfer statuses. A transfer starts pending and transitions exactly once,
// to completed or cancelled; after that it is immutable.
const (
	TransferStatusPending   = "pending"
	TransferStatusCompleted = "completed"
	TransferStatusCancelled = "cancelled"
)

// Transfer is a unit of work moving a fixed quantity of one product from one
// branch to another. FromBranchID and ToBranchID are always distinct.
type Transfer struct {
	ID           string
	ProductID    string
	FromBranchID string
	ToBranchID   string
	Quantity     int // always > 0
	Reason       string
	Notes        string
	Status       string
	CreatedBy    string
	CompletedAt  *time.Time
	CompletedBy  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsTerminal reports whether the transfer reached a final status.
func (t *Transfer) IsTerminal() bool {
	return t.Status == TransferStatusCompleted || t.Status == TransferStatusCancelled
}
