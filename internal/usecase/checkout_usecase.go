package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// StartCheckoutInput starts a checkout. With a ProductID it is a buy-now of
// that product, otherwise the current cart is checked out.
type StartCheckoutInput struct {
	ProductID string `json:"productId,omitempty"`
	Quantity  int    `json:"quantity,omitempty" validate:"omitempty,min=1"`
}

// PlaceSelectionInput carries an autocomplete selection, either the full
// place result or only its id.
type PlaceSelectionInput struct {
	PlaceID string              `json:"placeId,omitempty"`
	Place   *entity.PlaceResult `json:"place,omitempty"`
}

// SubmitOrderInput finalises a checkout. A non-nil Address replaces the
// session address before validation.
type SubmitOrderInput struct {
	Address       *entity.Address `json:"address,omitempty"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// CheckoutUsecase manages checkout sessions
type CheckoutUsecase interface {
	Start(ctx context.Context, input *StartCheckoutInput) (*entity.CheckoutState, error)
	Get(ctx context.Context, checkoutID string) (*entity.CheckoutState, error)
	SetManualAddress(ctx context.Context, checkoutID string, fields entity.Address) (*entity.CheckoutState, error)
	SelectPlace(ctx context.Context, checkoutID string, input *PlaceSelectionInput) (*entity.CheckoutState, error)
	UseDeviceLocation(ctx context.Context, checkoutID string, input *DeviceLocationInput) (*entity.CheckoutState, error)
	OverrideDeliveryFee(ctx context.Context, checkoutID string, amount float64) (*entity.CheckoutState, error)
	Submit(ctx context.Context, checkoutID string, input *SubmitOrderInput) (*entity.Order, error)
}
