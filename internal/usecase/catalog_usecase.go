package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListProductsInput carries the raw catalog query as the client sent it.
// Parsing, defaulting and capping happen in the use case.
type ListProductsInput struct {
	Category string
	Size     string
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Page     int
	// Limit is the requested page size; zero means the configured default.
	Limit int
	// Sort is a comma-separated field list, "-" prefix for descending,
	// e.g. "-price,title". Unknown fields are skipped.
	Sort string
}

// Pagination describes the page window a product listing came from.
type Pagination struct {
	Page          int   `json:"page"`
	Limit         int   `json:"limit"`
	TotalProducts int64 `json:"totalProducts"`
	TotalPages    int   `json:"totalPages"`
}

// ListProductsOutput is a page of products plus its pagination envelope.
type ListProductsOutput struct {
	Products   []*entity.Product `json:"products"`
	Pagination Pagination        `json:"pagination"`
}

// CreateProductInput carries the data needed to create a product. The slug is
// derived from the title, never supplied by the client.
type CreateProductInput struct {
	Title       string                `json:"title" validate:"required"`
	Description string                `json:"description" validate:"required"`
	Price       decimal.Decimal       `json:"price" validate:"required"`
	Category    entity.Category       `json:"category" validate:"required"`
	Quantity    int                   `json:"quantity" validate:"min=0"`
	Images      []entity.ProductImage `json:"images"`
	Sizes       []entity.Size         `json:"sizes" validate:"required,min=1"`
	SKU         string                `json:"sku" validate:"required"`
}

// UpdateProductInput carries a full replacement of a product's mutable fields.
type UpdateProductInput struct {
	Title       string                `json:"title" validate:"required"`
	Description string                `json:"description" validate:"required"`
	Price       decimal.Decimal       `json:"price" validate:"required"`
	Category    entity.Category       `json:"category" validate:"required"`
	Quantity    int                   `json:"quantity" validate:"min=0"`
	Images      []entity.ProductImage `json:"images"`
	Sizes       []entity.Size         `json:"sizes" validate:"required,min=1"`
	SKU         string                `json:"sku" validate:"required"`
}

// CatalogUsecase defines the interface for product catalog use cases.
// Listing and reads are public; management is admin-gated at the route layer.
type CatalogUsecase interface {
	// ListProducts retrieves a filtered, sorted page of the catalog together
	// with pagination computed from a count over the same filter.
	ListProducts(ctx context.Context, input *ListProductsInput) (*ListProductsOutput, error)

	// GetProduct retrieves a single product with its ratings.
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// CreateProduct adds a new product to the catalog.
	CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error)

	// UpdateProduct replaces a product's fields, re-deriving the slug when the
	// title changes.
	UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error)

	// DeleteProduct removes a product from the catalog.
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
