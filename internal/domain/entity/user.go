package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role determines what a user may do. Admins additionally manage the catalog
// and can read every order.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a registered account. PasswordHash and RefreshToken never leave the
// server; the delivery layer maps users to a response shape without them.
type User struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"` // Unique login identifier.
	Mobile       string    `json:"mobile"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	RefreshToken string    `json:"-"` // Currently valid refresh token, empty when logged out.
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FullName joins the first and last name for display.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}

	return u.FirstName + " " + u.LastName
}
