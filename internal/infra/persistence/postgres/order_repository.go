package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the repository.OrderRepository interface.
// The order store is append-only; there is no update or delete path.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// Create persists an order together with its item snapshot rows.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("order references an unknown user or product")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt
	for i := range order.Items {
		order.Items[i].ID = orderM.Items[i].ID
		order.Items[i].OrderID = orderM.ID
	}

	return nil
}

// FindByUser returns the user's order history, newest first.
func (repo *orderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find orders by user")
	}

	return toOrderDomainSlice(orderModels), nil
}

// FindAll returns every order in the store, newest first, with the buyer
// preloaded for the admin listing.
func (repo *orderRepository) FindAll(ctx context.Context) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("User").
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return toOrderDomainSlice(orderModels), nil
}

// FindByID retrieves a single order with its items and buyer.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("User").
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by ID")
	}

	return toOrderDomain(&orderM), nil
}

// --- Mapper Functions ---

func toOrderDomainSlice(data []*model.OrderModel) []*entity.Order {
	orders := make([]*entity.Order, 0, len(data))
	for _, orderM := range data {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders
}

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]entity.OrderItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, entity.OrderItem{
			ID:        itemM.ID,
			OrderID:   itemM.OrderID,
			ProductID: itemM.ProductID,
			Size:      entity.Size(itemM.Size),
			Quantity:  itemM.Quantity,
			UnitPrice: itemM.UnitPrice,
			Product:   toProductDomain(itemM.Product),
		})
	}

	return &entity.Order{
		ID:     data.ID,
		UserID: data.UserID,
		ShippingInfo: entity.ShippingInfo{
			FirstName: data.Shipping.FirstName,
			LastName:  data.Shipping.LastName,
			Address:   data.Shipping.Address,
			City:      data.Shipping.City,
			State:     data.Shipping.State,
			Pincode:   data.Shipping.Pincode,
			Mobile:    data.Shipping.Mobile,
		},
		Items:                   items,
		TotalPrice:              data.TotalPrice,
		TotalPriceAfterDiscount: data.TotalPriceAfterDiscount,
		PaymentInfo:             entity.PaymentInfo{Method: data.PaymentMethod},
		Status:                  entity.OrderStatus(data.Status),
		User:                    toUserDomain(data.User),
		CreatedAt:               data.CreatedAt,
		UpdatedAt:               data.UpdatedAt,
	}
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, model.OrderItemModel{
			ProductID: item.ProductID,
			Size:      string(item.Size),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return &model.OrderModel{
		ID:     data.ID,
		UserID: data.UserID,
		Shipping: model.ShippingInfoModel{
			FirstName: data.ShippingInfo.FirstName,
			LastName:  data.ShippingInfo.LastName,
			Address:   data.ShippingInfo.Address,
			City:      data.ShippingInfo.City,
			State:     data.ShippingInfo.State,
			Pincode:   data.ShippingInfo.Pincode,
			Mobile:    data.ShippingInfo.Mobile,
		},
		Items:                   items,
		TotalPrice:              data.TotalPrice,
		TotalPriceAfterDiscount: data.TotalPriceAfterDiscount,
		PaymentMethod:           data.PaymentInfo.Method,
		Status:                  string(data.Status),
	}
}
