package dto

import "time"

// CreateTransferRequest body for POST /api/transfers.
type CreateTransferRequest struct {
	ProductID    string `json:"product" validate:"required,uuid4"`
	FromBranchID string `json:"fromBranch" validate:"required,uuid4"`
	ToBranchID   string `json:"toBranch" validate:"required,uuid4"`
	Quantity     int    `json:"quantity" validate:"required,gt=0"`
	Reason       string `json:"reason"`
	Notes        string `json:"notes"`
}

// TransferListQuery query params for GET /api/transfers.
type TransferListQuery struct {
	PageRequest
	ProductID string `query:"product"`
	BranchID  string `query:"branch"`
	Status    string `query:"status"`
	Reason    string `query:"reason"`
}

// TransferRef is a populated display reference (id + name).
type TransferRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TransferResponse is the API projection of a transfer with product, branch
// and user display fields populated.
type TransferResponse struct {
	ID          string       `json:"id"`
	Product     TransferRef  `json:"product"`
	FromBranch  TransferRef  `json:"fromBranch"`
	ToBranch    TransferRef  `json:"toBranch"`
	Quantity    int          `json:"quantity"`
	Reason      string       `json:"reason,omitempty"`
	Notes       string       `json:"notes,omitempty"`
	Status      string       `json:"status"`
	CreatedBy   TransferRef  `json:"createdBy"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
	CompletedBy *TransferRef `json:"completedBy,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// TransferListResponse paginated transfer listing.
type TransferListResponse struct {
	Transfers  []TransferResponse `json:"transfers"`
	Pagination Pagination         `json:"pagination"`
}

// TransferStatsResponse aggregate counts for GET /api/transfers/stats.
type TransferStatsResponse struct {
	Total         int                      `json:"total"`
	TotalQuantity int                      `json:"totalQuantity"`
	ByStatus      []TransferStatusStatsDTO `json:"byStatus"`
}

// TransferStatusStatsDTO one status bucket of the transfer stats.
type TransferStatusStatsDTO struct {
	Status        string `json:"status"`
	Count         int    `json:"count"`
	TotalQuantity int    `json:"totalQuantity"`
}
