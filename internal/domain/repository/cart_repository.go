package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// ErrCartLineNotFound is returned when a cart line is not found.
var ErrCartLineNotFound = errors.New("cart line not found")

// CartRepository defines the interface for cart database operations.
//
// Ownership checks live in the use case layer: lookups by line ID are
// unscoped, and the service compares the line's owner against the caller so
// that "not found" and "not yours" stay distinguishable.
type CartRepository interface {
	// Create persists a new cart line.
	Create(ctx context.Context, line *entity.CartLine) error

	// FindLineByKey retrieves the line for a (user, product, size) key, with
	// the product attached.
	FindLineByKey(ctx context.Context, userID, productID uuid.UUID, size entity.Size) (*entity.CartLine, error)

	// FindLineByID retrieves a single line by its ID with the product attached.
	FindLineByID(ctx context.Context, lineID uuid.UUID) (*entity.CartLine, error)

	// FindByUser retrieves all lines for a user with products attached.
	// Order is unspecified.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CartLine, error)

	// UpdateQuantity replaces the quantity of a line. The unit price is never
	// touched.
	UpdateQuantity(ctx context.Context, lineID uuid.UUID, quantity int) error

	// DeleteLine removes a single line.
	DeleteLine(ctx context.Context, lineID uuid.UUID) error

	// DeleteByUser removes every line owned by the user and reports how many
	// were removed.
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
