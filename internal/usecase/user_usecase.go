package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// RegisterInput carries the data needed to create a user account.
type RegisterInput struct {
	FirstName string `json:"firstname" validate:"required"`
	LastName  string `json:"lastname" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Mobile    string `json:"mobile" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
}

// LoginInput carries the credentials presented at login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthOutput is the result of a successful login or token refresh.
type AuthOutput struct {
	User         *entity.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken,omitempty"`
}

// UpdateProfileInput carries the mutable profile fields.
type UpdateProfileInput struct {
	FirstName string `json:"firstname" validate:"required"`
	LastName  string `json:"lastname" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Mobile    string `json:"mobile" validate:"required"`
}

// UserUsecase defines the interface for account and session use cases.
type UserUsecase interface {
	// Register creates a new account. A duplicate email is a conflict.
	Register(ctx context.Context, input *RegisterInput) (*entity.User, error)

	// Login verifies credentials, issues an access/refresh token pair and
	// persists the refresh token on the user row.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// Refresh validates the presented refresh token against the stored one and
	// rotates the access token.
	Refresh(ctx context.Context, refreshToken string) (*AuthOutput, error)

	// Logout clears the user's stored refresh token.
	Logout(ctx context.Context, userID uuid.UUID) error

	// GetUser retrieves a single user.
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// UpdateProfile replaces the user's name, email and mobile.
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)
}
