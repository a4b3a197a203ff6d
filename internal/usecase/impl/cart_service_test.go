package impl

import (
	"context"
	"log/slog"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// cartServiceFixtures holds all test dependencies for cart service tests.
type cartServiceFixtures struct {
	service     usecase.CartUsecase
	cartRepo    *mockRepo.MockCartRepository
	productRepo *mockRepo.MockProductRepository
}

func createTestCartService(t *testing.T) cartServiceFixtures {
	cartRepo := mockRepo.NewMockCartRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	service := NewCartService(cartRepo, productRepo, slog.Default())

	return cartServiceFixtures{
		service:     service,
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func testProduct(id uuid.UUID) *entity.Product {
	return &entity.Product{
		ID:       id,
		Title:    "Linen Shirt",
		Slug:     "linen-shirt",
		Price:    decimal.NewFromInt(45),
		Category: entity.CategoryMen,
		Quantity: 20,
		Sizes:    []entity.Size{entity.SizeS, entity.SizeM, entity.SizeL},
	}
}

func TestCartService_AddToCart_NewLine(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()
	product := testProduct(productID)

	fx.productRepo.EXPECT().
		FindByID(ctx, productID).
		Return(product, nil)

	fx.cartRepo.EXPECT().
		FindLineByKey(ctx, userID, productID, entity.SizeM).
		Return(nil, repository.ErrCartLineNotFound)

	fx.cartRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.CartLine")).
		Return(nil)

	line, err := fx.service.AddToCart(ctx, userID, &usecase.AddToCartInput{
		ProductID: productID,
		Size:      entity.SizeM,
		Quantity:  2,
		Price:     decimal.NewFromInt(40),
	})
	require.NoError(t, err)
	assert.Equal(t, userID, line.UserID)
	assert.Equal(t, entity.SizeM, line.Size)
	assert.Equal(t, 2, line.Quantity)
	assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, product, line.Product)
}

func TestCartService_AddToCart_MergeKeepsFirstPrice(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()
	lineID := uuid.New()
	product := testProduct(productID)

	existing := &entity.CartLine{
		ID:        lineID,
		UserID:    userID,
		ProductID: productID,
		Size:      entity.SizeM,
		Quantity:  1,
		UnitPrice: decimal.NewFromInt(40),
	}

	fx.productRepo.EXPECT().
		FindByID(ctx, productID).
		Return(product, nil)

	fx.cartRepo.EXPECT().
		FindLineByKey(ctx, userID, productID, entity.SizeM).
		Return(existing, nil)

	fx.cartRepo.EXPECT().
		UpdateQuantity(ctx, lineID, 3).
		Return(nil)

	// The catalog price has moved, but the merged line keeps its first price.
	line, err := fx.service.AddToCart(ctx, userID, &usecase.AddToCartInput{
		ProductID: productID,
		Size:      entity.SizeM,
		Quantity:  2,
		Price:     decimal.NewFromInt(55),
	})
	require.NoError(t, err)
	assert.Equal(t, lineID, line.ID)
	assert.Equal(t, 3, line.Quantity)
	assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(40)))
}

func TestCartService_AddToCart_ProductNotFound(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	productID := uuid.New()

	fx.productRepo.EXPECT().
		FindByID(ctx, productID).
		Return(nil, repository.ErrProductNotFound)

	_, err := fx.service.AddToCart(ctx, uuid.New(), &usecase.AddToCartInput{
		ProductID: productID,
		Size:      entity.SizeM,
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCartService_AddToCart_SizeNotOffered(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	productID := uuid.New()

	fx.productRepo.EXPECT().
		FindByID(ctx, productID).
		Return(testProduct(productID), nil)

	_, err := fx.service.AddToCart(ctx, uuid.New(), &usecase.AddToCartInput{
		ProductID: productID,
		Size:      entity.SizeXXL,
		Quantity:  1,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrSizeNotOffered)
}

func TestCartService_AddToCart_InvalidQuantity(t *testing.T) {
	fx := createTestCartService(t)

	_, err := fx.service.AddToCart(context.Background(), uuid.New(), &usecase.AddToCartInput{
		ProductID: uuid.New(),
		Size:      entity.SizeM,
		Quantity:  0,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCartService_AddToCart_FallsBackToCatalogPrice(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()
	product := testProduct(productID)

	fx.productRepo.EXPECT().
		FindByID(ctx, productID).
		Return(product, nil)

	fx.cartRepo.EXPECT().
		FindLineByKey(ctx, userID, productID, entity.SizeS).
		Return(nil, repository.ErrCartLineNotFound)

	fx.cartRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.CartLine")).
		Return(nil)

	line, err := fx.service.AddToCart(ctx, userID, &usecase.AddToCartInput{
		ProductID: productID,
		Size:      entity.SizeS,
		Quantity:  1,
	})
	require.NoError(t, err)
	assert.True(t, line.UnitPrice.Equal(product.Price))
}

func TestCartService_GetUserCart_SumsSubtotals(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()

	lines := []*entity.CartLine{
		{Quantity: 2, UnitPrice: decimal.NewFromInt(40)},
		{Quantity: 1, UnitPrice: decimal.NewFromInt(15)},
	}

	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(lines, nil)

	cart, err := fx.service.GetUserCart(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, cart.Lines, 2)
	assert.True(t, cart.TotalPrice.Equal(decimal.NewFromInt(95)))
}

func TestCartService_UpdateQuantity_NotFound(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	lineID := uuid.New()

	fx.cartRepo.EXPECT().
		FindLineByID(ctx, lineID).
		Return(nil, repository.ErrCartLineNotFound)

	_, err := fx.service.UpdateQuantity(ctx, uuid.New(), lineID, 2)
	assert.ErrorIs(t, err, domainerrors.ErrCartLineNotFound)
}

func TestCartService_UpdateQuantity_OwnershipViolation(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	lineID := uuid.New()

	fx.cartRepo.EXPECT().
		FindLineByID(ctx, lineID).
		Return(&entity.CartLine{ID: lineID, UserID: uuid.New()}, nil)

	_, err := fx.service.UpdateQuantity(ctx, uuid.New(), lineID, 2)
	assert.ErrorIs(t, err, domainerrors.ErrCartOwnershipViolation)
}

func TestCartService_UpdateQuantity_Success(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()
	lineID := uuid.New()
	product := testProduct(productID)

	fx.cartRepo.EXPECT().
		FindLineByID(ctx, lineID).
		Return(&entity.CartLine{
			ID:        lineID,
			UserID:    userID,
			ProductID: productID,
			Quantity:  1,
			UnitPrice: decimal.NewFromInt(40),
		}, nil)

	fx.cartRepo.EXPECT().
		UpdateQuantity(ctx, lineID, 5).
		Return(nil)

	fx.productRepo.EXPECT().
		FindByID(ctx, productID).
		Return(product, nil)

	line, err := fx.service.UpdateQuantity(ctx, userID, lineID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, line.Quantity)
	assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, product, line.Product)
}

func TestCartService_UpdateQuantity_ProductLoadFailure(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()
	lineID := uuid.New()

	fx.cartRepo.EXPECT().
		FindLineByID(ctx, lineID).
		Return(&entity.CartLine{
			ID:        lineID,
			UserID:    userID,
			ProductID: productID,
			Quantity:  1,
			UnitPrice: decimal.NewFromInt(40),
		}, nil)

	fx.cartRepo.EXPECT().
		UpdateQuantity(ctx, lineID, 2).
		Return(nil)

	fx.productRepo.EXPECT().
		FindByID(ctx, productID).
		Return(nil, errors.New("connection reset"))

	// The contract is a line with its product attached; a failed product
	// load surfaces instead of returning a half-populated line.
	line, err := fx.service.UpdateQuantity(ctx, userID, lineID, 2)
	require.Error(t, err)
	assert.Nil(t, line)
	assert.Contains(t, err.Error(), "failed to load product for cart line")
}

func TestCartService_RemoveFromCart_OwnershipViolation(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	lineID := uuid.New()

	fx.cartRepo.EXPECT().
		FindLineByID(ctx, lineID).
		Return(&entity.CartLine{ID: lineID, UserID: uuid.New()}, nil)

	err := fx.service.RemoveFromCart(ctx, uuid.New(), lineID)
	assert.ErrorIs(t, err, domainerrors.ErrCartOwnershipViolation)
}

func TestCartService_RemoveFromCart_Success(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	lineID := uuid.New()

	fx.cartRepo.EXPECT().
		FindLineByID(ctx, lineID).
		Return(&entity.CartLine{ID: lineID, UserID: userID}, nil)

	fx.cartRepo.EXPECT().
		DeleteLine(ctx, lineID).
		Return(nil)

	err := fx.service.RemoveFromCart(ctx, userID, lineID)
	assert.NoError(t, err)
}

func TestCartService_ClearCart_EmptyIsNoError(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.cartRepo.EXPECT().
		DeleteByUser(ctx, userID).
		Return(int64(0), nil)

	err := fx.service.ClearCart(ctx, userID)
	assert.NoError(t, err)
}
