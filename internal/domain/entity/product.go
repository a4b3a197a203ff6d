// Package entity contains the core business objects of the storefront,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category is the merchandising category a product belongs to.
type Category string

const (
	CategoryMen   Category = "Men"
	CategoryWomen Category = "Women"
	CategoryKids  Category = "Kids"
)

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	switch c {
	case CategoryMen, CategoryWomen, CategoryKids:
		return true
	}

	return false
}

// Size is a garment size. Products carry the subset of sizes they are sold in.
type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

// AllSizes lists every size the catalog may reference, in display order.
var AllSizes = []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL}

// Valid reports whether the size is one of the known values.
func (s Size) Valid() bool {
	for _, known := range AllSizes {
		if s == known {
			return true
		}
	}

	return false
}

// ProductImage is a single hosted image reference for a product.
type ProductImage struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// ProductRating is one customer rating entry attached to a product.
type ProductRating struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Star      int       `json:"star"`
	Comment   string    `json:"comment"`
	PostedBy  uuid.UUID `json:"posted_by"` // References the authoring user.
	CreatedAt time.Time `json:"created_at"`
}

// Product is a catalog item. Its identity (ID, slug, SKU) is immutable once
// created; slug and SKU uniqueness is enforced at write time by the store.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"` // URL-safe identifier derived from the title.
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    Category        `json:"category"`
	Quantity    int             `json:"quantity"` // Units in stock. Informational only, never decremented.
	Sold        int             `json:"sold"`
	Images      []ProductImage  `json:"images"`
	Sizes       []Size          `json:"sizes"` // Sizes this product is sold in.
	SKU         string          `json:"sku"`
	Ratings     []ProductRating `json:"ratings,omitempty"`
	TotalRating float64         `json:"total_rating"` // Aggregate of Ratings[].Star.
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// AllowsSize reports whether the product is sold in the given size.
func (p *Product) AllowsSize(size Size) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}

	return false
}
