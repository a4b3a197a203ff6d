package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the interface for user database operations.
type UserRepository interface {
	// Create persists a new user. Email collisions surface as a conflict.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByRefreshToken retrieves the user currently holding the given
	// refresh token.
	FindByRefreshToken(ctx context.Context, token string) (*entity.User, error)

	// Update modifies an existing user's profile fields.
	Update(ctx context.Context, user *entity.User) error

	// UpdateRefreshToken stores (or clears, with an empty string) the user's
	// refresh token.
	UpdateRefreshToken(ctx context.Context, userID uuid.UUID, token string) error
}
