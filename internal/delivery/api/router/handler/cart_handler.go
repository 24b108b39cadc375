package handler

import (
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CartHandler serves the signed-in user's cart
type CartHandler struct {
	cartUC usecase.CartUsecase
}

// NewCartHandler is the constructor for CartHandler
func NewCartHandler(cartUC usecase.CartUsecase) *CartHandler {
	return &CartHandler{cartUC: cartUC}
}

// UpdateCartItemRequest represents the request body for changing a quantity
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// View returns the cart page model
func (h *CartHandler) View(c echo.Context) error {
	view, err := h.cartUC.View(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view)
}

// AddItem adds a product to the cart
func (h *CartHandler) AddItem(c echo.Context) error {
	var req usecase.CartItemInput
	if ok, err := bindAndValidate(c, &req, "Invalid cart item"); !ok {
		return err
	}

	view, err := h.cartUC.AddItem(c.Request().Context(), &req)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view)
}

// UpdateItem changes the quantity of a line
func (h *CartHandler) UpdateItem(c echo.Context) error {
	var req UpdateCartItemRequest
	if ok, err := bindAndValidate(c, &req, "Invalid cart item"); !ok {
		return err
	}

	view, err := h.cartUC.UpdateItem(c.Request().Context(), c.Param("productId"), req.Quantity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view)
}

// RemoveItem removes a line
func (h *CartHandler) RemoveItem(c echo.Context) error {
	view, err := h.cartUC.RemoveItem(c.Request().Context(), c.Param("productId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view)
}
