package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// CartItemInput adds a product to the cart
type CartItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// CallToAction is a labelled link shown by empty states
type CallToAction struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// CartLine is one displayed cart row
type CartLine struct {
	ProductID        string  `json:"productId"`
	Name             string  `json:"name"`
	Image            string  `json:"image,omitempty"`
	Price            float64 `json:"price"`
	PriceDisplay     string  `json:"priceDisplay"`
	Quantity         int     `json:"quantity"`
	LineTotal        float64 `json:"lineTotal"`
	LineTotalDisplay string  `json:"lineTotalDisplay"`
}

// CartView is the cart page model
type CartView struct {
	Empty           bool          `json:"empty"`
	Message         string        `json:"message,omitempty"`
	CallToAction    *CallToAction `json:"callToAction,omitempty"`
	Lines           []CartLine    `json:"lines"`
	ItemCount       int           `json:"itemCount"`
	Subtotal        float64       `json:"subtotal"`
	SubtotalDisplay string        `json:"subtotalDisplay"`
}

// CartUsecase manages the signed-in user's cart
type CartUsecase interface {
	View(ctx context.Context) (*CartView, error)
	AddItem(ctx context.Context, input *CartItemInput) (*CartView, error)
	UpdateItem(ctx context.Context, productID string, quantity int) (*CartView, error)
	RemoveItem(ctx context.Context, productID string) (*CartView, error)
	CheckoutItems(ctx context.Context) ([]entity.CheckoutItem, error)
}
