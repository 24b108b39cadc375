package backend

import (
	"bytes"
	"context"
	"net/http"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
)

type cartClient struct {
	c *Client
}

// NewCartClient creates a CartService backed by the REST API
func NewCartClient(c *Client) service.CartService {
	return &cartClient{c: c}
}

type cartItemRequest struct {
	ProductID string `json:"productId,omitempty"`
	Quantity  int    `json:"quantity"`
}

// GetCart fetches GET /api/cart. A user without a cart yet gets a 404
// from the backend, which reads as an empty cart.
func (cc *cartClient) GetCart(ctx context.Context) (*entity.Cart, error) {
	raw, err := cc.c.doJSON(ctx, http.MethodGet, cc.c.endpoint(nil, "api", "cart"), nil)
	if err != nil {
		if domainerrors.IsNotFound(err) {
			return &entity.Cart{}, nil
		}

		return nil, err
	}

	return decodeCart(raw)
}

// AddItem sends POST /api/cart
func (cc *cartClient) AddItem(ctx context.Context, productID string, quantity int) (*entity.Cart, error) {
	body := cartItemRequest{ProductID: productID, Quantity: quantity}
	raw, err := cc.c.doJSON(ctx, http.MethodPost, cc.c.endpoint(nil, "api", "cart"), body)
	if err != nil {
		return nil, err
	}

	return decodeCart(raw)
}

// UpdateItem sends PUT /api/cart/:productId
func (cc *cartClient) UpdateItem(ctx context.Context, productID string, quantity int) (*entity.Cart, error) {
	body := cartItemRequest{Quantity: quantity}
	raw, err := cc.c.doJSON(ctx, http.MethodPut, cc.c.endpoint(nil, "api", "cart", productID), body)
	if err != nil {
		return nil, err
	}

	return decodeCart(raw)
}

// RemoveItem sends DELETE /api/cart/:productId. Some deployments answer
// with an empty body, in which case the cart is fetched again.
func (cc *cartClient) RemoveItem(ctx context.Context, productID string) (*entity.Cart, error) {
	raw, err := cc.c.doJSON(ctx, http.MethodDelete, cc.c.endpoint(nil, "api", "cart", productID), nil)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return cc.GetCart(ctx)
	}

	return decodeCart(raw)
}

func decodeCart(raw []byte) (*entity.Cart, error) {
	var cart entity.Cart
	if err := decode(raw, &cart, "cart", "data"); err != nil {
		return nil, err
	}

	return &cart, nil
}
