package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShippingInfoModel is the embedded shipping snapshot stored on an order row.
type ShippingInfoModel struct {
	FirstName string `gorm:"type:varchar(100);not null"`
	LastName  string `gorm:"type:varchar(100);not null"`
	Address   string `gorm:"type:varchar(255);not null"`
	City      string `gorm:"type:varchar(100);not null"`
	State     string `gorm:"type:varchar(100);not null"`
	Pincode   string `gorm:"type:varchar(20);not null"`
	Mobile    string `gorm:"type:varchar(30);not null"`
}

// OrderModel is the GORM-specific struct for the 'orders' table.
type OrderModel struct {
	ID                      uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID                  uuid.UUID         `gorm:"type:uuid;not null;index"`
	Shipping                ShippingInfoModel `gorm:"embedded;embeddedPrefix:shipping_"`
	Items                   []OrderItemModel  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalPrice              decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	TotalPriceAfterDiscount decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	PaymentMethod           string            `gorm:"type:varchar(50);not null"`
	Status                  string            `gorm:"type:varchar(20);not null"`
	User                    *UserModel        `gorm:"foreignKey:UserID"`
	CreatedAt               time.Time         `gorm:"index"`
	UpdatedAt               time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the GORM-specific struct for the 'order_items' table.
// Rows are immutable snapshots of cart lines captured at checkout.
type OrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Size      string          `gorm:"type:varchar(8);not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Product   *ProductModel   `gorm:"foreignKey:ProductID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
