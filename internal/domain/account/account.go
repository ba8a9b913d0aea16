package account

import (
	"errors"
	"time"
)

const (
	RoleDeveloper = "developer"
	RoleRecruiter = "recruiter"
)

var (
	ErrNotFound   = errors.New("account not found")
	ErrEmailTaken = errors.New("email already exists")
)

// ValidRole reports whether role is one of the two enumerated account roles.
func ValidRole(role string) bool {
	return role == RoleDeveloper || role == RoleRecruiter
}

type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Role         string    `json:"role"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
