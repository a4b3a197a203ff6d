package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	mailer    service.Mailer
	logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(
	txManager repository.TransactionManager,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	mailer service.Mailer,
	logger *slog.Logger,
) usecase.OrderUsecase {
	return &orderService{
		txManager: txManager,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		mailer:    mailer,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Checkout converts the user's cart into an order. Reading the cart, writing
// the order and emptying the cart happen in one transaction; the confirmation
// email goes out after commit and its failure is only logged.
func (srv *orderService) Checkout(ctx context.Context, userID uuid.UUID, input *usecase.CheckoutInput) (*entity.Order, error) {
	srv.log(ctx).Info("Starting checkout", slog.Any("user_id", userID))

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = entity.DefaultPaymentMethod
	}

	var createdOrder *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.CartRepo()
		orderRepo := repoFactory.OrderRepo()

		// 1. Read the cart inside the transaction so a concurrent checkout of
		// the same cart cannot double-spend the lines.
		lines, err := cartRepo.FindByUser(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to read cart")
		}
		if len(lines) == 0 {
			return domainerrors.ErrEmptyCart
		}

		// 2. Snapshot the lines into immutable order items at their stored
		// prices and sum the total.
		items := make([]entity.OrderItem, 0, len(lines))
		total := decimal.Zero
		for _, line := range lines {
			items = append(items, entity.OrderItem{
				ProductID: line.ProductID,
				Size:      line.Size,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				Product:   line.Product,
			})
			total = total.Add(line.Subtotal())
		}

		order := &entity.Order{
			UserID:                  userID,
			ShippingInfo:            input.ShippingInfo,
			Items:                   items,
			TotalPrice:              total,
			TotalPriceAfterDiscount: total,
			PaymentInfo:             entity.PaymentInfo{Method: paymentMethod},
			Status:                  entity.OrderStatusProcessing,
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		// 3. Empty the cart in the same transaction.
		if _, err := cartRepo.DeleteByUser(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to clear cart after checkout")
		}
		createdOrder = order

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Checkout transaction failed", slog.Any("error", err), slog.Any("user_id", userID))

		return nil, err
	}

	srv.log(ctx).Info("Checkout committed",
		slog.Any("user_id", userID),
		slog.Any("order_id", createdOrder.ID),
		slog.String("total", createdOrder.TotalPrice.String()))

	// The order is durable at this point. Confirmation mail is best-effort.
	srv.sendConfirmation(ctx, userID, createdOrder)

	return createdOrder, nil
}

// GetUserOrders retrieves the user's order history, newest first.
func (srv *orderService) GetUserOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user orders")
	}

	return orders, nil
}

// GetAllOrders retrieves every order in the store, newest first.
func (srv *orderService) GetAllOrders(ctx context.Context) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load orders")
	}

	return orders, nil
}

// GetOrder retrieves a single order with its items and buyer attached.
func (srv *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to load order")
	}

	return order, nil
}

// sendConfirmation renders and sends the order-confirmation email. Any failure
// here is logged and swallowed: the order has already committed.
func (srv *orderService) sendConfirmation(ctx context.Context, userID uuid.UUID, order *entity.Order) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		srv.log(ctx).Error("Order confirmation skipped: failed to load user",
			slog.Any("error", err),
			slog.Any("order_id", order.ID))

		return
	}

	msg, err := renderOrderConfirmation(user, order)
	if err != nil {
		srv.log(ctx).Error("Order confirmation skipped: failed to render message",
			slog.Any("error", err),
			slog.Any("order_id", order.ID))

		return
	}

	if err := srv.mailer.Send(ctx, msg); err != nil {
		srv.log(ctx).Error("Order confirmation mail failed",
			slog.Any("error", err),
			slog.Any("order_id", order.ID),
			slog.String("to", user.Email))

		return
	}

	srv.log(ctx).Info("Order confirmation sent", slog.Any("order_id", order.ID), slog.String("to", user.Email))
}
