package entity

import "time"

// User roles.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleSeller  = "seller"
)

// User is an application account. PasswordHash holds a bcrypt hash and is
// never serialized in responses.
type User struct {
	ID           string
	Name         string
	Email        string // unique
	PasswordHash string
	Role         string
	BranchID     string // optional home branch
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
