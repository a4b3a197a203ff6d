package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/delivery/http/validator"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRequestContext builds an echo context with the validator installed, the
// way the server wires it. The handlers under test get a nil usecase: a
// request that fails validation must never reach it.
func newRequestContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestOrderHandler_Checkout_RejectsBlankShipping(t *testing.T) {
	h := NewOrderHandler(nil, slog.Default())

	c, rec := newRequestContext(t, `{"shippingInfo":{},"paymentMethod":""}`)
	c.Set("userID", uuid.New())

	require.NoError(t, h.Checkout(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestOrderHandler_Checkout_RejectsPartialShipping(t *testing.T) {
	h := NewOrderHandler(nil, slog.Default())

	c, rec := newRequestContext(t, `{"shippingInfo":{"first_name":"Ada","last_name":"Lovelace"}}`)
	c.Set("userID", uuid.New())

	require.NoError(t, h.Checkout(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestUserHandler_Register_RejectsMissingCredentials(t *testing.T) {
	h := NewUserHandler(nil, slog.Default())

	c, rec := newRequestContext(t, `{"firstname":"Ada"}`)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestUserHandler_Register_RejectsMalformedEmail(t *testing.T) {
	h := NewUserHandler(nil, slog.Default())

	c, rec := newRequestContext(t,
		`{"firstname":"Ada","lastname":"Lovelace","email":"not-an-email","mobile":"5550100","password":"hunter22"}`)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestCartHandler_AddToCart_RejectsMissingFields(t *testing.T) {
	h := NewCartHandler(nil, slog.Default())

	c, rec := newRequestContext(t, `{}`)
	c.Set("userID", uuid.New())

	require.NoError(t, h.AddToCart(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestProductHandler_CreateProduct_RejectsBlankInput(t *testing.T) {
	h := NewProductHandler(nil, slog.Default())

	c, rec := newRequestContext(t, `{}`)

	require.NoError(t, h.CreateProduct(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestRequestValidation_AcceptsCompleteInputs(t *testing.T) {
	v := validator.New()

	assert.NoError(t, v.Validate(&usecase.CheckoutInput{
		ShippingInfo: entity.ShippingInfo{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Address:   "12 Analytical Row",
			City:      "London",
			State:     "LDN",
			Pincode:   "EC1A",
			Mobile:    "5550100",
		},
	}))

	assert.NoError(t, v.Validate(&usecase.RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Mobile:    "5550100",
		Password:  "hunter22",
	}))

	assert.NoError(t, v.Validate(&usecase.AddToCartInput{
		ProductID: uuid.New(),
		Size:      entity.SizeM,
		Quantity:  2,
		Price:     decimal.NewFromInt(45),
	}))
}
