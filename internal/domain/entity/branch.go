package entity

import "time"

// Branch is a physical or business location owning a subset of products.
// Name is unique among active branches.
type Branch struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Email     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
