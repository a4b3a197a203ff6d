package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CartHandler holds dependencies for shopping cart handlers. All cart routes
// sit behind authentication, so the owner always comes from the token.
type CartHandler struct {
	uc     usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: logger,
	}
}

// AddToCart handles the request to add a product to the current user's cart.
func (h *CartHandler) AddToCart(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input *usecase.AddToCartInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart input")
	}
	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	line, err := h.uc.AddToCart(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, line, "Product added to cart")
}

// GetCart handles the request to fetch the current user's cart.
func (h *CartHandler) GetCart(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	cart, err := h.uc.GetUserCart(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Cart retrieved successfully")
}

// updateQuantityInput carries the replacement quantity for a cart line.
type updateQuantityInput struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// UpdateQuantity handles the request to change the quantity on a cart line.
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid cart line ID")
	}

	var input *updateQuantityInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid quantity input")
	}
	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	line, err := h.uc.UpdateQuantity(c.Request().Context(), userID, lineID, input.Quantity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, line, "Cart line updated successfully")
}

// RemoveFromCart handles the request to delete one cart line.
func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid cart line ID")
	}

	if err := h.uc.RemoveFromCart(c.Request().Context(), userID, lineID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"id": lineID.String()}, "Product removed from cart")
}

// ClearCart handles the request to empty the current user's cart.
func (h *CartHandler) ClearCart(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	if err := h.uc.ClearCart(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Cart cleared"}, "Cart cleared successfully")
}
