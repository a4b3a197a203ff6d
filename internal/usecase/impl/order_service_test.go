package impl

import (
	"context"
	"log/slog"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	mockRepo "storefront/internal/mocks/repository"
	mockService "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// orderServiceFixtures holds all test dependencies for order service tests.
type orderServiceFixtures struct {
	service   usecase.OrderUsecase
	txManager *mockRepo.MockTransactionManager
	factory   *mockRepo.MockRepositoryFactory
	cartRepo  *mockRepo.MockCartRepository
	orderRepo *mockRepo.MockOrderRepository
	userRepo  *mockRepo.MockUserRepository
	mailer    *mockService.MockMailer
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	cartRepo := mockRepo.NewMockCartRepository(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	mailer := mockService.NewMockMailer(t)
	svc := NewOrderService(txManager, orderRepo, userRepo, mailer, slog.Default())

	return orderServiceFixtures{
		service:   svc,
		txManager: txManager,
		factory:   factory,
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		mailer:    mailer,
	}
}

// passThroughTx makes the transaction manager run the checkout body against
// the factory mock.
func (fx orderServiceFixtures) passThroughTx(ctx context.Context) {
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(fx.factory)
		})
}

func testCartLines(userID uuid.UUID) []*entity.CartLine {
	return []*entity.CartLine{
		{
			ID:        uuid.New(),
			UserID:    userID,
			ProductID: uuid.New(),
			Size:      entity.SizeM,
			Quantity:  2,
			UnitPrice: decimal.NewFromInt(40),
			Product:   &entity.Product{Title: "Linen Shirt"},
		},
		{
			ID:        uuid.New(),
			UserID:    userID,
			ProductID: uuid.New(),
			Size:      entity.SizeL,
			Quantity:  1,
			UnitPrice: decimal.NewFromInt(25),
			Product:   &entity.Product{Title: "Chino Shorts"},
		},
	}
}

func TestOrderService_Checkout_Success(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	lines := testCartLines(userID)

	fx.passThroughTx(ctx)
	fx.factory.EXPECT().CartRepo().Return(fx.cartRepo)
	fx.factory.EXPECT().OrderRepo().Return(fx.orderRepo)

	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(lines, nil)

	fx.orderRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Order")).
		Return(nil)

	fx.cartRepo.EXPECT().
		DeleteByUser(ctx, userID).
		Return(int64(len(lines)), nil)

	fx.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(&entity.User{ID: userID, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}, nil)

	fx.mailer.EXPECT().
		Send(ctx, mock.AnythingOfType("*service.MailMessage")).
		Return(nil)

	order, err := fx.service.Checkout(ctx, userID, &usecase.CheckoutInput{
		ShippingInfo: entity.ShippingInfo{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Address:   "12 Analytical Lane",
			City:      "London",
			State:     "LDN",
			Pincode:   "10110",
			Mobile:    "+44 1234 567890",
		},
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	assert.Equal(t, entity.OrderStatusProcessing, order.Status)
	assert.Equal(t, entity.DefaultPaymentMethod, order.PaymentInfo.Method)
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(105)))
	assert.True(t, order.TotalPriceAfterDiscount.Equal(order.TotalPrice))
	// Items snapshot the cart lines at their stored prices.
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.passThroughTx(ctx)
	fx.factory.EXPECT().CartRepo().Return(fx.cartRepo)
	fx.factory.EXPECT().OrderRepo().Return(fx.orderRepo)

	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(nil, nil)

	_, err := fx.service.Checkout(ctx, userID, &usecase.CheckoutInput{})
	assert.ErrorIs(t, err, domainerrors.ErrEmptyCart)
}

func TestOrderService_Checkout_MailFailureDoesNotFailOrder(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	lines := testCartLines(userID)

	fx.passThroughTx(ctx)
	fx.factory.EXPECT().CartRepo().Return(fx.cartRepo)
	fx.factory.EXPECT().OrderRepo().Return(fx.orderRepo)

	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(lines, nil)

	fx.orderRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Order")).
		Return(nil)

	fx.cartRepo.EXPECT().
		DeleteByUser(ctx, userID).
		Return(int64(len(lines)), nil)

	fx.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(&entity.User{ID: userID, Email: "ada@example.com"}, nil)

	fx.mailer.EXPECT().
		Send(ctx, mock.AnythingOfType("*service.MailMessage")).
		Return(errors.New("smtp connection refused"))

	order, err := fx.service.Checkout(ctx, userID, &usecase.CheckoutInput{PaymentMethod: "Card"})
	require.NoError(t, err)
	assert.Equal(t, "Card", order.PaymentInfo.Method)
}

func TestOrderService_Checkout_CartClearFailureRollsBack(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.passThroughTx(ctx)
	fx.factory.EXPECT().CartRepo().Return(fx.cartRepo)
	fx.factory.EXPECT().OrderRepo().Return(fx.orderRepo)

	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(testCartLines(userID), nil)

	fx.orderRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Order")).
		Return(nil)

	fx.cartRepo.EXPECT().
		DeleteByUser(ctx, userID).
		Return(int64(0), errors.New("deadlock detected"))

	// No user load, no mail: the transaction failed.
	_, err := fx.service.Checkout(ctx, userID, &usecase.CheckoutInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to clear cart after checkout")
}

func TestOrderService_Checkout_ConfirmationContent(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	lines := testCartLines(userID)

	fx.passThroughTx(ctx)
	fx.factory.EXPECT().CartRepo().Return(fx.cartRepo)
	fx.factory.EXPECT().OrderRepo().Return(fx.orderRepo)

	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(lines, nil)

	fx.orderRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Order")).
		Return(nil)

	fx.cartRepo.EXPECT().
		DeleteByUser(ctx, userID).
		Return(int64(len(lines)), nil)

	fx.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(&entity.User{ID: userID, FirstName: "Ada", Email: "ada@example.com"}, nil)

	var sent *service.MailMessage
	fx.mailer.EXPECT().
		Send(ctx, mock.AnythingOfType("*service.MailMessage")).
		RunAndReturn(func(_ context.Context, msg *service.MailMessage) error {
			sent = msg
			return nil
		})

	_, err := fx.service.Checkout(ctx, userID, &usecase.CheckoutInput{})
	require.NoError(t, err)
	require.NotNil(t, sent)
	assert.Equal(t, "ada@example.com", sent.To)
	assert.Contains(t, sent.Text, "Linen Shirt")
	assert.Contains(t, sent.Text, "105.00")
	assert.Contains(t, sent.HTML, "Chino Shorts")
}

func TestOrderService_GetUserOrders(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	expected := []*entity.Order{{ID: uuid.New(), UserID: userID}}

	fx.orderRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(expected, nil)

	orders, err := fx.service.GetUserOrders(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, expected, orders)
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()

	fx.orderRepo.EXPECT().
		FindByID(ctx, orderID).
		Return(nil, repository.ErrOrderNotFound)

	_, err := fx.service.GetOrder(ctx, orderID)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}
