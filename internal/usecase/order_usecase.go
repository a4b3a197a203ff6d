package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CheckoutInput carries the shipping snapshot and payment choice for checkout.
type CheckoutInput struct {
	ShippingInfo  entity.ShippingInfo `json:"shippingInfo" validate:"required"`
	PaymentMethod string              `json:"paymentMethod"`
}

// OrderUsecase defines the interface for checkout and order-history use cases.
// Orders are immutable once created; there is no update path.
type OrderUsecase interface {
	// Checkout converts the user's cart into an order atomically: the order is
	// created and the cart emptied in one transaction, or neither happens.
	// The confirmation email goes out after commit and never fails the call.
	Checkout(ctx context.Context, userID uuid.UUID, input *CheckoutInput) (*entity.Order, error)

	// GetUserOrders retrieves the user's order history, newest first.
	GetUserOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// GetAllOrders retrieves every order in the store, newest first. The route
	// layer restricts this to admins.
	GetAllOrders(ctx context.Context) ([]*entity.Order, error)

	// GetOrder retrieves a single order with its items and buyer attached.
	GetOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error)
}
