package impl

import (
	"context"
	"log/slog"
	"testing"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// catalogServiceFixtures holds all test dependencies for catalog service tests.
type catalogServiceFixtures struct {
	service     usecase.CatalogUsecase
	productRepo *mockRepo.MockProductRepository
}

func createTestCatalogService(t *testing.T) catalogServiceFixtures {
	productRepo := mockRepo.NewMockProductRepository(t)
	cfg := &config.Config{
		Catalog: &config.CatalogConfig{DefaultPageSize: 12, MaxPageSize: 100},
	}
	service := NewCatalogService(productRepo, cfg, slog.Default())

	return catalogServiceFixtures{
		service:     service,
		productRepo: productRepo,
	}
}

func TestCatalogService_ListProducts_Defaults(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()

	fx.productRepo.EXPECT().
		List(ctx, repository.ProductQuery{Offset: 0, Limit: 12}).
		Return([]*entity.Product{{Title: "Linen Shirt"}}, int64(25), nil)

	out, err := fx.service.ListProducts(ctx, &usecase.ListProductsInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Pagination.Page)
	assert.Equal(t, 12, out.Pagination.Limit)
	assert.Equal(t, int64(25), out.Pagination.TotalProducts)
	assert.Equal(t, 3, out.Pagination.TotalPages)
}

func TestCatalogService_ListProducts_FiltersAndSort(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	minPrice := decimal.NewFromInt(10)
	maxPrice := decimal.NewFromInt(60)

	fx.productRepo.EXPECT().
		List(ctx, repository.ProductQuery{
			Category: entity.CategoryWomen,
			Size:     entity.SizeM,
			Search:   "linen",
			MinPrice: &minPrice,
			MaxPrice: &maxPrice,
			Offset:   24,
			Limit:    24,
			Sort: []repository.SortField{
				{Field: "price", Descending: true},
				{Field: "title"},
			},
		}).
		Return(nil, int64(0), nil)

	out, err := fx.service.ListProducts(ctx, &usecase.ListProductsInput{
		Category: "Women",
		Size:     "m",
		Search:   "linen",
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
		Page:     2,
		Limit:    24,
		Sort:     "-price,title",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Pagination.Page)
	assert.Equal(t, 0, out.Pagination.TotalPages)
}

func TestCatalogService_ListProducts_UnknownFiltersIgnored(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()

	// A bogus category or size silently matches everything instead of nothing.
	fx.productRepo.EXPECT().
		List(ctx, repository.ProductQuery{Offset: 0, Limit: 12}).
		Return(nil, int64(0), nil)

	_, err := fx.service.ListProducts(ctx, &usecase.ListProductsInput{
		Category: "Appliances",
		Size:     "XXXL",
	})
	assert.NoError(t, err)
}

func TestCatalogService_ListProducts_LimitCapped(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()

	fx.productRepo.EXPECT().
		List(ctx, repository.ProductQuery{Offset: 0, Limit: 100}).
		Return(nil, int64(0), nil)

	out, err := fx.service.ListProducts(ctx, &usecase.ListProductsInput{Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, 100, out.Pagination.Limit)
}

func TestCatalogService_CreateProduct_SlugAndSKU(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()

	fx.productRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Product")).
		Return(nil)

	product, err := fx.service.CreateProduct(ctx, &usecase.CreateProductInput{
		Title:    "Linen Shirt, Slim Fit",
		Price:    decimal.NewFromInt(45),
		Category: entity.CategoryMen,
		Quantity: 10,
		Sizes:    []entity.Size{entity.SizeM},
		SKU:      "shirt-ln-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "linen-shirt-slim-fit", product.Slug)
	assert.Equal(t, "SHIRT-LN-01", product.SKU)
}

func TestCatalogService_CreateProduct_Conflict(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()

	fx.productRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Product")).
		Return(repository.ErrDuplicateProduct)

	_, err := fx.service.CreateProduct(ctx, &usecase.CreateProductInput{
		Title:    "Linen Shirt",
		Category: entity.CategoryMen,
		Sizes:    []entity.Size{entity.SizeM},
		SKU:      "SHIRT-LN-01",
	})
	assert.ErrorIs(t, err, domainerrors.ErrProductConflict)
}

func TestCatalogService_CreateProduct_InvalidCategory(t *testing.T) {
	fx := createTestCatalogService(t)

	_, err := fx.service.CreateProduct(context.Background(), &usecase.CreateProductInput{
		Title:    "Linen Shirt",
		Category: "Appliances",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCatalogService_UpdateProduct_ReslugsOnTitleChange(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	productID := uuid.New()

	fx.productRepo.EXPECT().
		FindByID(ctx, productID).
		Return(&entity.Product{
			ID:    productID,
			Title: "Linen Shirt",
			Slug:  "linen-shirt",
		}, nil)

	fx.productRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Product")).
		Return(nil)

	product, err := fx.service.UpdateProduct(ctx, productID, &usecase.UpdateProductInput{
		Title:    "Linen Shirt Deluxe",
		Category: entity.CategoryMen,
		Sizes:    []entity.Size{entity.SizeM},
		SKU:      "SHIRT-LN-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "linen-shirt-deluxe", product.Slug)
}

func TestCatalogService_UpdateProduct_KeepsSlugWhenTitleUnchanged(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	productID := uuid.New()

	fx.productRepo.EXPECT().
		FindByID(ctx, productID).
		Return(&entity.Product{
			ID:    productID,
			Title: "Linen Shirt",
			Slug:  "linen-shirt",
		}, nil)

	fx.productRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Product")).
		Return(nil)

	product, err := fx.service.UpdateProduct(ctx, productID, &usecase.UpdateProductInput{
		Title:    "Linen Shirt",
		Category: entity.CategoryMen,
		Sizes:    []entity.Size{entity.SizeM},
		SKU:      "SHIRT-LN-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "linen-shirt", product.Slug)
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	productID := uuid.New()

	fx.productRepo.EXPECT().
		FindByID(ctx, productID).
		Return(nil, repository.ErrProductNotFound)

	_, err := fx.service.GetProduct(ctx, productID)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCatalogService_DeleteProduct_NotFound(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	productID := uuid.New()

	fx.productRepo.EXPECT().
		Delete(ctx, productID).
		Return(repository.ErrProductNotFound)

	err := fx.service.DeleteProduct(ctx, productID)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestParseSort(t *testing.T) {
	assert.Nil(t, parseSort(""))
	assert.Equal(t, []repository.SortField{
		{Field: "createdAt", Descending: true},
	}, parseSort("-createdAt"))
	assert.Equal(t, []repository.SortField{
		{Field: "price", Descending: true},
		{Field: "title"},
	}, parseSort("-price, title"))
}
