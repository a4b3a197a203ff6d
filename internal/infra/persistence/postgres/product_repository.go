package postgres

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// sortColumns maps the logical sort field names accepted by the API to real
// columns. Anything outside this allowlist is ignored by List.
var sortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"price":       "price",
	"title":       "title",
	"sold":        "sold",
	"category":    "category",
	"totalRating": "total_rating",
}

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{
		db: db,
	}
}

// Create persists a new product.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateProduct
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required product information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	// Update the entity with generated values
	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// FindByID retrieves a single product with its ratings attached.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Preload("Ratings").
		Where("id = ?", id).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by ID")
	}

	return toProductDomain(&productM), nil
}

// List retrieves the page of products matching the query plus the total
// matching count. The count runs as a separate query over the same filter.
func (repo *productRepository) List(ctx context.Context, query repository.ProductQuery) ([]*entity.Product, int64, error) {
	filtered := repo.applyFilters(repo.db.WithContext(ctx).Model(&model.ProductModel{}), query)

	var total int64
	if err := filtered.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count products")
	}

	var productModels []*model.ProductModel
	if err := filtered.
		Order(orderClause(query.Sort)).
		Offset(query.Offset).
		Limit(query.Limit).
		Preload("Ratings").
		Find(&productModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, total, nil
}

// Update modifies an existing product in place.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"title":       productM.Title,
			"slug":        productM.Slug,
			"description": productM.Description,
			"price":       productM.Price,
			"category":    productM.Category,
			"quantity":    productM.Quantity,
			"sold":        productM.Sold,
			"images":      productM.Images,
			"sizes":       productM.Sizes,
			"sku":         productM.SKU,
		})

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateProduct
		}

		return errors.Wrap(result.Error, "failed to update product")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// Delete removes a product by ID.
func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ProductModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete product")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// applyFilters translates the query's zero-or-set filters into WHERE clauses.
func (repo *productRepository) applyFilters(tx *gorm.DB, query repository.ProductQuery) *gorm.DB {
	if query.Category != "" {
		tx = tx.Where("category = ?", string(query.Category))
	}
	if query.Size != "" {
		// JSONB containment: sizes @> '["M"]'
		tx = tx.Where("sizes @> ?", fmt.Sprintf("[%q]", string(query.Size)))
	}
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		tx = tx.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if query.MinPrice != nil {
		tx = tx.Where("price >= ?", *query.MinPrice)
	}
	if query.MaxPrice != nil {
		tx = tx.Where("price <= ?", *query.MaxPrice)
	}

	return tx
}

// orderClause builds the ORDER BY expression from the allowlisted sort
// fields, falling back to newest first.
func orderClause(sort []repository.SortField) string {
	parts := make([]string, 0, len(sort))
	for _, field := range sort {
		column, ok := sortColumns[field.Field]
		if !ok {
			continue
		}
		if field.Descending {
			column += " DESC"
		}
		parts = append(parts, column)
	}

	if len(parts) == 0 {
		return "created_at DESC"
	}

	return strings.Join(parts, ", ")
}

// --- Mapper Functions ---

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	sizes := make([]entity.Size, 0, len(data.Sizes))
	for _, s := range data.Sizes {
		sizes = append(sizes, entity.Size(s))
	}

	ratings := make([]entity.ProductRating, 0, len(data.Ratings))
	for _, r := range data.Ratings {
		ratings = append(ratings, entity.ProductRating{
			ID:        r.ID,
			ProductID: r.ProductID,
			Star:      r.Star,
			Comment:   r.Comment,
			PostedBy:  r.PostedBy,
			CreatedAt: r.CreatedAt,
		})
	}

	return &entity.Product{
		ID:          data.ID,
		Title:       data.Title,
		Slug:        data.Slug,
		Description: data.Description,
		Price:       data.Price,
		Category:    entity.Category(data.Category),
		Quantity:    data.Quantity,
		Sold:        data.Sold,
		Images:      []entity.ProductImage(data.Images),
		Sizes:       sizes,
		SKU:         data.SKU,
		Ratings:     ratings,
		TotalRating: data.TotalRating,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	sizes := make([]string, 0, len(data.Sizes))
	for _, s := range data.Sizes {
		sizes = append(sizes, string(s))
	}

	return &model.ProductModel{
		ID:          data.ID,
		Title:       data.Title,
		Slug:        data.Slug,
		Description: data.Description,
		Price:       data.Price,
		Category:    string(data.Category),
		Quantity:    data.Quantity,
		Sold:        data.Sold,
		Images:      datatypes.NewJSONSlice(data.Images),
		Sizes:       datatypes.NewJSONSlice(sizes),
		SKU:         data.SKU,
		TotalRating: data.TotalRating,
	}
}
