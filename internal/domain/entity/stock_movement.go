package entity

import "time"

// Stock movement directions.
const (
	MovementTypeIn  = "in"
	MovementTypeOut = "out"
)

// StockMovement is an append-only audit ledger entry recording a single
// in/out quantity change for a product at a branch. Entries are never
// updated or deleted. A transfer always writes two entries together:
// one out at the source branch and one in at the destination.
type StockMovement struct {
	ID        string
	ProductID string
	BranchID  string
	Type      string // in | out
	Quantity  int
	Reason    string // human readable, usually references the causing transfer or invoice
	Reference string // optional id of the causing Transfer or Invoice
	CreatedBy string
	CreatedAt time.Time
}
