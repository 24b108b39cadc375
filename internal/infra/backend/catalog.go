package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
)

type catalogClient struct {
	c *Client
}

// NewCatalogClient creates a CatalogService backed by the REST API
func NewCatalogClient(c *Client) service.CatalogService {
	return &catalogClient{c: c}
}

// ListProducts fetches GET /api/products
func (cc *catalogClient) ListProducts(ctx context.Context, query service.ProductQuery) ([]entity.Product, error) {
	params := url.Values{}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Sort != "" {
		params.Set("sort", query.Sort)
	}

	raw, err := cc.c.doJSON(ctx, http.MethodGet, cc.c.endpoint(params, "api", "products"), nil)
	if err != nil {
		return nil, err
	}

	var products []entity.Product
	if err := decode(raw, &products, "products", "data"); err != nil {
		return nil, err
	}

	return products, nil
}

// GetProduct fetches GET /api/products/:id
func (cc *catalogClient) GetProduct(ctx context.Context, productID string) (*entity.Product, error) {
	raw, err := cc.c.doJSON(ctx, http.MethodGet, cc.c.endpoint(nil, "api", "products", productID), nil)
	if err != nil {
		return nil, err
	}

	var product entity.Product
	if err := decode(raw, &product, "product", "data"); err != nil {
		return nil, err
	}

	return &product, nil
}

// ListActivePromotions fetches GET /api/promotions?active=true
func (cc *catalogClient) ListActivePromotions(ctx context.Context, limit int) ([]entity.Promotion, error) {
	params := url.Values{}
	params.Set("active", "true")
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	raw, err := cc.c.doJSON(ctx, http.MethodGet, cc.c.endpoint(params, "api", "promotions"), nil)
	if err != nil {
		return nil, err
	}

	var promotions []entity.Promotion
	if err := decode(raw, &promotions, "promotions", "data"); err != nil {
		return nil, err
	}

	return promotions, nil
}
