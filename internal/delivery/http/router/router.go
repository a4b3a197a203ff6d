// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	ProductHandler *handler.ProductHandler
	CartHandler    *handler.CartHandler
	OrderHandler   *handler.OrderHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	productHandler *handler.ProductHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		productHandler: params.ProductHandler,
		cartHandler:    params.CartHandler,
		orderHandler:   params.OrderHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Account and session routes
	userGroup := api.Group("/user")
	{
		userGroup.POST("/register", r.userHandler.Register)
		userGroup.POST("/login", r.userHandler.Login)
		userGroup.POST("/refresh", r.userHandler.Refresh)

		userGroup.POST("/logout", r.userHandler.Logout, r.authMiddleware.Authenticate)
		userGroup.PUT("/edit-user", r.userHandler.UpdateProfile, r.authMiddleware.Authenticate)
		userGroup.GET("/:id", r.userHandler.GetUser, r.authMiddleware.Authenticate)
	}

	// Catalog routes: browsing is public, management needs the admin role
	productGroup := api.Group("/product")
	{
		productGroup.GET("", r.productHandler.ListProducts)
		productGroup.GET("/:id", r.productHandler.GetProduct)

		adminOnly := []echo.MiddlewareFunc{r.authMiddleware.Authenticate, r.authMiddleware.RequireRole("admin")}
		productGroup.POST("", r.productHandler.CreateProduct, adminOnly...)
		productGroup.PUT("/:id", r.productHandler.UpdateProduct, adminOnly...)
		productGroup.DELETE("/:id", r.productHandler.DeleteProduct, adminOnly...)
	}

	// Cart routes all require authentication
	cartGroup := api.Group("/cart")
	cartGroup.Use(r.authMiddleware.Authenticate)
	{
		cartGroup.POST("", r.cartHandler.AddToCart)
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.PUT("/:lineId", r.cartHandler.UpdateQuantity)
		cartGroup.DELETE("/clear/all", r.cartHandler.ClearCart)
		cartGroup.DELETE("/:lineId", r.cartHandler.RemoveFromCart)
	}

	// Order routes all require authentication; the store-wide listing is admin only
	orderGroup := api.Group("/order")
	orderGroup.Use(r.authMiddleware.Authenticate)
	{
		orderGroup.POST("", r.orderHandler.Checkout)
		orderGroup.GET("/user", r.orderHandler.GetUserOrders)
		orderGroup.GET("/all", r.orderHandler.GetAllOrders, r.authMiddleware.RequireRole("admin"))
		orderGroup.GET("/:id", r.orderHandler.GetOrder)
	}
}
