package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// CheckoutHandlerParams holds dependencies for CheckoutHandler, injected by Fx.
type CheckoutHandlerParams struct {
	fx.In

	CheckoutUC    usecase.CheckoutUsecase
	DeliveryFeeUC usecase.DeliveryFeeUsecase
	Logger        *slog.Logger
}

// CheckoutHandler drives the checkout page
type CheckoutHandler struct {
	checkoutUC    usecase.CheckoutUsecase
	deliveryFeeUC usecase.DeliveryFeeUsecase
	logger        *slog.Logger
}

// NewCheckoutHandler is the constructor for CheckoutHandler
func NewCheckoutHandler(params CheckoutHandlerParams) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUC:    params.CheckoutUC,
		deliveryFeeUC: params.DeliveryFeeUC,
		logger:        params.Logger,
	}
}

// OverrideFeeRequest represents the request body for a manual delivery fee
type OverrideFeeRequest struct {
	Amount *float64 `json:"amount" validate:"required"`
}

// Tiers returns the distance bands shown next to the fee
func (h *CheckoutHandler) Tiers(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.deliveryFeeUC.Tiers())
}

// Start opens a checkout from the cart, or for one product when productId is set
func (h *CheckoutHandler) Start(c echo.Context) error {
	var req usecase.StartCheckoutInput
	if ok, err := bindAndValidate(c, &req, "Invalid checkout input"); !ok {
		return err
	}

	state, err := h.checkoutUC.Start(c.Request().Context(), &req)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, state)
}

// Get returns the current checkout state, including the latest fee
func (h *CheckoutHandler) Get(c echo.Context) error {
	state, err := h.checkoutUC.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state)
}

// SetAddress applies manually typed address fields
func (h *CheckoutHandler) SetAddress(c echo.Context) error {
	var req entity.Address
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid address")
	}

	state, err := h.checkoutUC.SetManualAddress(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state)
}

// SelectPlace applies an autocomplete selection
func (h *CheckoutHandler) SelectPlace(c echo.Context) error {
	var req usecase.PlaceSelectionInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid place selection")
	}

	state, err := h.checkoutUC.SelectPlace(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state)
}

// UseDeviceLocation applies the position reported by the browser
func (h *CheckoutHandler) UseDeviceLocation(c echo.Context) error {
	var req usecase.DeviceLocationInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid device location")
	}

	state, err := h.checkoutUC.UseDeviceLocation(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state)
}

// OverrideFee sets the delivery fee by hand
func (h *CheckoutHandler) OverrideFee(c echo.Context) error {
	var req OverrideFeeRequest
	if ok, err := bindAndValidate(c, &req, "Invalid delivery fee"); !ok {
		return err
	}

	state, err := h.checkoutUC.OverrideDeliveryFee(c.Request().Context(), c.Param("id"), *req.Amount)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state)
}

// Submit places the order
func (h *CheckoutHandler) Submit(c echo.Context) error {
	var req usecase.SubmitOrderInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid order")
	}

	order, err := h.checkoutUC.Submit(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return errors.WithStack(err)
	}

	h.logger.InfoContext(c.Request().Context(), "Order placed", slog.String("orderID", order.ID))

	return response.Success(c, http.StatusCreated, order)
}
