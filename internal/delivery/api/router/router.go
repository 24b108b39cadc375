// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler        *handler.AuthHandler
	PlacesHandler      *handler.PlacesHandler
	HomeHandler        *handler.HomeHandler
	CartHandler        *handler.CartHandler
	CheckoutHandler    *handler.CheckoutHandler
	UploadHandler      *handler.UploadHandler
	ClientErrorHandler *handler.ClientErrorHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler        *handler.AuthHandler
	placesHandler      *handler.PlacesHandler
	homeHandler        *handler.HomeHandler
	cartHandler        *handler.CartHandler
	checkoutHandler    *handler.CheckoutHandler
	uploadHandler      *handler.UploadHandler
	clientErrorHandler *handler.ClientErrorHandler
	authMiddleware     *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:        params.AuthHandler,
		placesHandler:      params.PlacesHandler,
		homeHandler:        params.HomeHandler,
		cartHandler:        params.CartHandler,
		checkoutHandler:    params.CheckoutHandler,
		uploadHandler:      params.UploadHandler,
		clientErrorHandler: params.ClientErrorHandler,
		authMiddleware:     params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	apiV1 := e.Group("/api/v1")
	apiV1.Use(r.authMiddleware.Resolve)

	authGroup := apiV1.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.GET("/session", r.authHandler.Session)
	}

	apiV1.GET("/places/autocomplete", r.placesHandler.Autocomplete)
	apiV1.GET("/home/featured", r.homeHandler.Featured)
	apiV1.POST("/client-errors", r.clientErrorHandler.Report)

	cartGroup := apiV1.Group("/cart")
	cartGroup.Use(r.authMiddleware.RequireAuth)
	{
		cartGroup.GET("", r.cartHandler.View)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.PUT("/items/:productId", r.cartHandler.UpdateItem)
		cartGroup.DELETE("/items/:productId", r.cartHandler.RemoveItem)
	}

	checkoutGroup := apiV1.Group("/checkout")
	checkoutGroup.GET("/delivery-fee/tiers", r.checkoutHandler.Tiers)

	sessionsGroup := checkoutGroup.Group("/sessions")
	{
		sessionsGroup.POST("", r.checkoutHandler.Start)
		sessionsGroup.GET("/:id", r.checkoutHandler.Get)
		sessionsGroup.PUT("/:id/address", r.checkoutHandler.SetAddress)
		sessionsGroup.POST("/:id/address/place", r.checkoutHandler.SelectPlace)
		sessionsGroup.POST("/:id/address/device", r.checkoutHandler.UseDeviceLocation)
		sessionsGroup.PUT("/:id/delivery-fee", r.checkoutHandler.OverrideFee)
		sessionsGroup.POST("/:id/orders", r.checkoutHandler.Submit)
	}

	uploadsGroup := apiV1.Group("/uploads")
	uploadsGroup.Use(r.authMiddleware.RequireAuth)
	{
		uploadsGroup.POST("/images", r.uploadHandler.ProductImage)
		uploadsGroup.POST("/documents", r.uploadHandler.VerificationDocument)
	}
}
