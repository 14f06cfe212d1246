package dto

import "time"

// MovementListQuery filters for GET /api/stock-movements.
type MovementListQuery struct {
	PageRequest
	ProductID string `query:"product"`
	BranchID  string `query:"branch"`
	Type      string `query:"type" validate:"omitempty,oneof=in out"`
}

// MovementResponse is the API projection of a stock ledger entry.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product"`
	BranchID  string    `json:"branch"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Reason    string    `json:"reason"`
	Reference string    `json:"reference,omitempty"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// MovementListResponse paginated ledger listing.
type MovementListResponse struct {
	Movements  []MovementResponse `json:"movements"`
	Pagination Pagination         `json:"pagination"`
}
