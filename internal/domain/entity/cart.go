package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one product/size/quantity entry in a user's cart.
//
// Lines are keyed by (UserID, ProductID, Size): adding the same key again
// merges into the existing line instead of creating a second one. UnitPrice is
// captured on the first add and sticks for the lifetime of the line, so a
// later catalog price change does not move the cart.
type CartLine struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"` // Owning user. Always set; there is no anonymous cart.
	ProductID uuid.UUID       `json:"product_id"`
	Size      Size            `json:"size"`
	Quantity  int             `json:"quantity"` // Always >= 1.
	UnitPrice decimal.Decimal `json:"unit_price"`
	Product   *Product        `json:"product,omitempty"` // Attached on reads, nil otherwise.
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Subtotal returns UnitPrice multiplied by Quantity.
func (l *CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
