package backend

import (
	"context"
	"net/http"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
)

type orderClient struct {
	c *Client
}

// OrderClient is both the order submitter and the backend delivery fee calculator
type OrderClient interface {
	service.OrderService
	service.DeliveryFeeCalculator
}

// NewOrderClient creates an OrderClient backed by the REST API
func NewOrderClient(c *Client) OrderClient {
	return &orderClient{c: c}
}

type deliveryFeeResponse struct {
	DeliveryFee *float64 `json:"deliveryFee"`
	DistanceKm  *float64 `json:"distance,omitempty"`
}

// CalculateDeliveryFee sends POST /api/orders/calculate-delivery-fee.
// A body without deliveryFee is rejected so callers keep their previous fee.
func (oc *orderClient) CalculateDeliveryFee(ctx context.Context, req service.DeliveryFeeRequest) (*entity.DeliveryQuote, error) {
	raw, err := oc.c.doJSON(ctx, http.MethodPost, oc.c.endpoint(nil, "api", "orders", "calculate-delivery-fee"), req)
	if err != nil {
		return nil, err
	}

	var resp deliveryFeeResponse
	if err := decode(raw, &resp, "data"); err != nil {
		return nil, err
	}
	if resp.DeliveryFee == nil {
		return nil, errors.Wrap(ErrMalformedResponse, "deliveryFee missing")
	}
	if *resp.DeliveryFee < 0 {
		return nil, errors.Wrapf(ErrMalformedResponse, "negative deliveryFee %v", *resp.DeliveryFee)
	}

	return &entity.DeliveryQuote{Fee: *resp.DeliveryFee, DistanceKm: resp.DistanceKm}, nil
}

// CreateOrder sends POST /api/orders
func (oc *orderClient) CreateOrder(ctx context.Context, req *entity.OrderRequest) (*entity.Order, error) {
	raw, err := oc.c.doJSON(ctx, http.MethodPost, oc.c.endpoint(nil, "api", "orders"), req)
	if err != nil {
		return nil, err
	}

	var order entity.Order
	if err := decode(raw, &order, "order", "data"); err != nil {
		return nil, err
	}

	return &order, nil
}
