// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	logger *slog.Logger,
) usecase.CartUsecase {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AddToCart adds a product in a given size to the user's cart, merging into an
// existing line for the same (product, size) pair.
func (srv *cartService) AddToCart(ctx context.Context, userID uuid.UUID, input *usecase.AddToCartInput) (*entity.CartLine, error) {
	srv.log(ctx).Debug("Adding to cart",
		slog.Any("user_id", userID),
		slog.Any("product_id", input.ProductID),
		slog.String("size", string(input.Size)))

	if input.Quantity < 1 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("quantity must be at least 1")
	}

	// 1. Resolve the product; adding a phantom product is an error.
	product, err := srv.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	// 2. The requested size must be one the product is sold in.
	if !product.AllowsSize(input.Size) {
		return nil, domainerrors.ErrSizeNotOffered.WrapMessage(string(input.Size))
	}

	// 3. Merge into an existing line when one holds the same key. The merged
	// line keeps the unit price it was first added at.
	existing, err := srv.cartRepo.FindLineByKey(ctx, userID, input.ProductID, input.Size)
	if err == nil {
		newQuantity := existing.Quantity + input.Quantity
		if err := srv.cartRepo.UpdateQuantity(ctx, existing.ID, newQuantity); err != nil {
			return nil, errors.Wrap(err, "failed to merge cart line")
		}
		existing.Quantity = newQuantity
		existing.Product = product

		srv.log(ctx).Debug("Merged cart line", slog.Any("line_id", existing.ID), slog.Int("quantity", newQuantity))

		return existing, nil
	}
	if !errors.Is(err, repository.ErrCartLineNotFound) {
		return nil, errors.Wrap(err, "failed to look up cart line")
	}

	// 4. No line yet: create one at the submitted price, falling back to the
	// product's catalog price when the client sent none.
	unitPrice := input.Price
	if unitPrice.LessThanOrEqual(decimal.Zero) {
		unitPrice = product.Price
	}

	line := &entity.CartLine{
		UserID:    userID,
		ProductID: input.ProductID,
		Size:      input.Size,
		Quantity:  input.Quantity,
		UnitPrice: unitPrice,
	}
	if err := srv.cartRepo.Create(ctx, line); err != nil {
		return nil, errors.Wrap(err, "failed to create cart line")
	}
	line.Product = product

	srv.log(ctx).Debug("Created cart line", slog.Any("line_id", line.ID))

	return line, nil
}

// GetUserCart retrieves all lines in the user's cart with products attached.
func (srv *cartService) GetUserCart(ctx context.Context, userID uuid.UUID) (*usecase.CartOutput, error) {
	lines, err := srv.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}

	return &usecase.CartOutput{
		Lines:      lines,
		TotalPrice: total,
	}, nil
}

// UpdateQuantity replaces the quantity on one of the user's cart lines.
func (srv *cartService) UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, quantity int) (*entity.CartLine, error) {
	if quantity < 1 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("quantity must be at least 1")
	}

	line, err := srv.scopedLine(ctx, userID, lineID)
	if err != nil {
		return nil, err
	}

	if err := srv.cartRepo.UpdateQuantity(ctx, lineID, quantity); err != nil {
		return nil, errors.Wrap(err, "failed to update cart line quantity")
	}
	line.Quantity = quantity

	if line.Product == nil {
		product, err := srv.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load product for cart line")
		}
		line.Product = product
	}

	return line, nil
}

// RemoveFromCart deletes a single line from the user's cart.
func (srv *cartService) RemoveFromCart(ctx context.Context, userID, lineID uuid.UUID) error {
	if _, err := srv.scopedLine(ctx, userID, lineID); err != nil {
		return err
	}

	if err := srv.cartRepo.DeleteLine(ctx, lineID); err != nil {
		return errors.Wrap(err, "failed to delete cart line")
	}

	srv.log(ctx).Debug("Removed cart line", slog.Any("user_id", userID), slog.Any("line_id", lineID))

	return nil
}

// ClearCart deletes every line in the user's cart. An already-empty cart is
// not an error.
func (srv *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	removed, err := srv.cartRepo.DeleteByUser(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	srv.log(ctx).Debug("Cleared cart", slog.Any("user_id", userID), slog.Int64("removed", removed))

	return nil
}

// scopedLine fetches a cart line and verifies the caller owns it. A missing
// line and someone else's line fail differently so the handler can answer 404
// versus 403 without leaking the other user's cart contents.
func (srv *cartService) scopedLine(ctx context.Context, userID, lineID uuid.UUID) (*entity.CartLine, error) {
	line, err := srv.cartRepo.FindLineByID(ctx, lineID)
	if err != nil {
		if errors.Is(err, repository.ErrCartLineNotFound) {
			return nil, domainerrors.ErrCartLineNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart line")
	}

	if line.UserID != userID {
		return nil, domainerrors.ErrCartOwnershipViolation
	}

	return line, nil
}
