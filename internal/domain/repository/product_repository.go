// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Domain-specific errors for catalog persistence.
var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateProduct is returned when a slug or SKU unique constraint is hit.
	ErrDuplicateProduct = errors.New("product with the same slug or sku already exists")
)

// SortField is one sort criterion in caller-supplied priority order.
type SortField struct {
	Field      string // Logical field name, e.g. "price" or "createdAt".
	Descending bool
}

// ProductQuery carries the filter, pagination, and sort state for List.
// Zero-valued filters are not applied.
type ProductQuery struct {
	Category entity.Category
	Size     entity.Size
	Search   string // Case-insensitive substring over title OR description.
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Offset   int
	Limit    int
	Sort     []SortField // Empty means newest first.
}

// ProductRepository defines the interface for catalog database operations.
type ProductRepository interface {
	// Create persists a new product. Slug and SKU collisions surface as
	// ErrDuplicateProduct.
	Create(ctx context.Context, product *entity.Product) error

	// FindByID retrieves a single product with its ratings attached.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// List retrieves the page of products matching the query plus the total
	// matching count computed over the same filter.
	List(ctx context.Context, query ProductQuery) ([]*entity.Product, int64, error)

	// Update modifies an existing product in place.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
