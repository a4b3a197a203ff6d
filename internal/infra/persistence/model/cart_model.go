package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLineModel is the GORM-specific struct for the 'cart_lines' table.
// The composite unique index enforces the one-line-per-(user, product, size)
// merge key at the database level.
type CartLineModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_cart_lines_user_product_size"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_lines_user_product_size"`
	Size      string          `gorm:"type:varchar(8);not null;uniqueIndex:idx_cart_lines_user_product_size"`
	Quantity  int             `gorm:"not null;check:quantity >= 1"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Product   *ProductModel   `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CartLineModel) TableName() string {
	return "cart_lines"
}
