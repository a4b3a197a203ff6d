// Package usecase defines the application's business-logic interfaces.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddToCartInput carries the data needed to add a product to a cart.
type AddToCartInput struct {
	ProductID uuid.UUID       `json:"productId" validate:"required"`
	Size      entity.Size     `json:"size" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	Price     decimal.Decimal `json:"price"`
}

// CartOutput is the full view of a user's cart.
type CartOutput struct {
	Lines      []*entity.CartLine `json:"products"`
	TotalPrice decimal.Decimal    `json:"cartTotal"`
}

// CartUsecase defines the interface for shopping cart use cases. Every
// operation is scoped to the authenticated owner; there is no anonymous cart.
type CartUsecase interface {
	// AddToCart adds a product in a given size to the user's cart. A line
	// already holding the same (product, size) pair absorbs the quantity and
	// keeps its original unit price.
	AddToCart(ctx context.Context, userID uuid.UUID, input *AddToCartInput) (*entity.CartLine, error)

	// GetUserCart retrieves all lines in the user's cart with products attached.
	GetUserCart(ctx context.Context, userID uuid.UUID) (*CartOutput, error)

	// UpdateQuantity replaces the quantity on one of the user's cart lines.
	// A missing line and a line owned by another user fail differently.
	UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, quantity int) (*entity.CartLine, error)

	// RemoveFromCart deletes a single line from the user's cart.
	RemoveFromCart(ctx context.Context, userID, lineID uuid.UUID) error

	// ClearCart deletes every line in the user's cart.
	ClearCart(ctx context.Context, userID uuid.UUID) error
}
