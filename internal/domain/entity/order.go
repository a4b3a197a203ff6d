package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus tracks an order through its (currently minimal) lifecycle.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// DefaultPaymentMethod is used when checkout supplies no payment method.
// There is no payment gateway; the method is a label only.
const DefaultPaymentMethod = "Cash on Delivery"

// ShippingInfo is the address snapshot captured on an order at checkout time.
type ShippingInfo struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	Pincode   string `json:"pincode" validate:"required"`
	Mobile    string `json:"mobile" validate:"required"`
}

// PaymentInfo records how the order is to be paid.
type PaymentInfo struct {
	Method string `json:"method"`
}

// OrderItem is an immutable snapshot of a cart line captured at checkout.
// UnitPrice is the cart line's stored price, not the live catalog price.
type OrderItem struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"order_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Size      Size            `json:"size"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Product   *Product        `json:"product,omitempty"` // Attached on reads, nil otherwise.
}

// Subtotal returns UnitPrice multiplied by Quantity.
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is created atomically from a user's cart at checkout and is immutable
// thereafter except for status transitions.
//
// Invariant: TotalPrice equals the sum of Items[].Subtotal() at creation time.
type Order struct {
	ID                      uuid.UUID       `json:"id"`
	UserID                  uuid.UUID       `json:"user_id"`
	ShippingInfo            ShippingInfo    `json:"shipping_info"`
	Items                   []OrderItem     `json:"order_items"`
	TotalPrice              decimal.Decimal `json:"total_price"`
	TotalPriceAfterDiscount decimal.Decimal `json:"total_price_after_discount"` // Equal to TotalPrice; no discount engine exists.
	PaymentInfo             PaymentInfo     `json:"payment_info"`
	Status                  OrderStatus     `json:"order_status"`
	User                    *User           `json:"user,omitempty"` // Attached on admin reads, nil otherwise.
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
}

// ItemsTotal returns the sum of the items' subtotals.
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Subtotal())
	}

	return total
}
