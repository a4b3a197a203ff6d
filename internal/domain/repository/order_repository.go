package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the interface for order database operations.
// Orders are append-only; there is no update or delete.
type OrderRepository interface {
	// Create persists a new order together with its items.
	Create(ctx context.Context, order *entity.Order) error

	// FindByUser retrieves a user's orders newest first, with item products
	// attached.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// FindAll retrieves every order newest first, with users and item
	// products attached.
	FindAll(ctx context.Context) ([]*entity.Order, error)

	// FindByID retrieves a single order with its user and item products
	// attached.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
}
