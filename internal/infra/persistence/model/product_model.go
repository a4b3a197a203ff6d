// Package model contains the GORM-specific persistence structs.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"storefront/internal/domain/entity"
)

// ProductModel is the GORM-specific struct for the 'products' table.
// Sizes and Images are JSONB columns; ratings live in their own table because
// they reference users.
type ProductModel struct {
	ID          uuid.UUID                                `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title       string                                   `gorm:"type:varchar(255);not null"`
	Slug        string                                   `gorm:"type:varchar(255);not null;uniqueIndex"`
	Description string                                   `gorm:"type:text;not null"`
	Price       decimal.Decimal                          `gorm:"type:decimal(10,2);not null"`
	Category    string                                   `gorm:"type:varchar(20);not null;index"`
	Quantity    int                                      `gorm:"not null;default:0"`
	Sold        int                                      `gorm:"not null;default:0"`
	Images      datatypes.JSONSlice[entity.ProductImage] `gorm:"type:jsonb"`
	Sizes       datatypes.JSONSlice[string]              `gorm:"type:jsonb;not null"`
	SKU         string                                   `gorm:"column:sku;type:varchar(64);not null;uniqueIndex"`
	Ratings     []ProductRatingModel                     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	TotalRating float64                                  `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// ProductRatingModel is the GORM-specific struct for the 'product_ratings' table.
type ProductRatingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Star      int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
	PostedBy  uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductRatingModel) TableName() string {
	return "product_ratings"
}
