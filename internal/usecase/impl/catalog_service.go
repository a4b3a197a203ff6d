package impl

import (
	"context"
	"log/slog"
	"strings"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/pkg/errors"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	productRepo     repository.ProductRepository
	defaultPageSize int
	maxPageSize     int
	logger          *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(
	productRepo repository.ProductRepository,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.CatalogUsecase {
	return &catalogService{
		productRepo:     productRepo,
		defaultPageSize: cfg.Catalog.DefaultPageSize,
		maxPageSize:     cfg.Catalog.MaxPageSize,
		logger:          logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListProducts retrieves a filtered, sorted page of the catalog.
func (srv *catalogService) ListProducts(ctx context.Context, input *usecase.ListProductsInput) (*usecase.ListProductsOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = srv.defaultPageSize
	}
	if limit > srv.maxPageSize {
		limit = srv.maxPageSize
	}

	query := repository.ProductQuery{
		Search:   input.Search,
		MinPrice: input.MinPrice,
		MaxPrice: input.MaxPrice,
		Offset:   (page - 1) * limit,
		Limit:    limit,
		Sort:     parseSort(input.Sort),
	}
	// Unknown category or size values would match nothing; drop them instead,
	// matching the original storefront's ignore-unknown-filters behavior.
	if category := entity.Category(input.Category); category.Valid() {
		query.Category = category
	}
	if size := entity.Size(strings.ToUpper(input.Size)); size.Valid() {
		query.Size = size
	}

	products, total, err := srv.productRepo.List(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &usecase.ListProductsOutput{
		Products: products,
		Pagination: usecase.Pagination{
			Page:          page,
			Limit:         limit,
			TotalProducts: total,
			TotalPages:    totalPages,
		},
	}, nil
}

// GetProduct retrieves a single product with its ratings.
func (srv *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

// CreateProduct adds a new product to the catalog. The slug is derived from
// the title and the SKU is stored uppercased.
func (srv *catalogService) CreateProduct(ctx context.Context, input *usecase.CreateProductInput) (*entity.Product, error) {
	if err := validateProductInput(input.Category, input.Sizes); err != nil {
		return nil, err
	}

	product := &entity.Product{
		Title:       input.Title,
		Slug:        slug.Make(input.Title),
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Quantity:    input.Quantity,
		Images:      input.Images,
		Sizes:       input.Sizes,
		SKU:         strings.ToUpper(input.SKU),
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateProduct) {
			return nil, domainerrors.ErrProductConflict
		}

		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created", slog.Any("product_id", product.ID), slog.String("slug", product.Slug))

	return product, nil
}

// UpdateProduct replaces a product's fields, re-deriving the slug when the
// title changes.
func (srv *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input *usecase.UpdateProductInput) (*entity.Product, error) {
	if err := validateProductInput(input.Category, input.Sizes); err != nil {
		return nil, err
	}

	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	if input.Title != product.Title {
		product.Slug = slug.Make(input.Title)
	}
	product.Title = input.Title
	product.Description = input.Description
	product.Price = input.Price
	product.Category = input.Category
	product.Quantity = input.Quantity
	product.Images = input.Images
	product.Sizes = input.Sizes
	product.SKU = strings.ToUpper(input.SKU)

	if err := srv.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateProduct) {
			return nil, domainerrors.ErrProductConflict
		}
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to update product")
	}

	return product, nil
}

// DeleteProduct removes a product from the catalog.
func (srv *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := srv.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to delete product")
	}

	srv.log(ctx).Info("Product deleted", slog.Any("product_id", id))

	return nil
}

// validateProductInput checks the enum-valued fields shared by create and
// update.
func validateProductInput(category entity.Category, sizes []entity.Size) error {
	if !category.Valid() {
		return domainerrors.ErrValidationFailed.WrapMessage("unknown category: " + string(category))
	}
	for _, size := range sizes {
		if !size.Valid() {
			return domainerrors.ErrValidationFailed.WrapMessage("unknown size: " + string(size))
		}
	}

	return nil
}

// parseSort turns a comma-separated sort expression ("-price,title") into
// ordered sort fields. Empty input yields nil, which the repository treats as
// newest first.
func parseSort(expr string) []repository.SortField {
	if expr == "" {
		return nil
	}

	var fields []repository.SortField
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		descending := strings.HasPrefix(part, "-")
		fields = append(fields, repository.SortField{
			Field:      strings.TrimPrefix(part, "-"),
			Descending: descending,
		})
	}

	return fields
}
