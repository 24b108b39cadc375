package service

import (
	"context"
	"io"

	"storefront/internal/domain/entity"
)

// ProductQuery filters a product listing
type ProductQuery struct {
	Limit int
	Sort  string // backend sort expression, e.g. "-createdAt"
}

// CatalogService reads products and promotions from the marketplace backend
type CatalogService interface {
	ListProducts(ctx context.Context, query ProductQuery) ([]entity.Product, error)
	GetProduct(ctx context.Context, productID string) (*entity.Product, error)
	ListActivePromotions(ctx context.Context, limit int) ([]entity.Promotion, error)
}

// CartService manages the signed-in user's backend cart
type CartService interface {
	GetCart(ctx context.Context) (*entity.Cart, error)
	AddItem(ctx context.Context, productID string, quantity int) (*entity.Cart, error)
	UpdateItem(ctx context.Context, productID string, quantity int) (*entity.Cart, error)
	RemoveItem(ctx context.Context, productID string) (*entity.Cart, error)
}

// DeliveryFeeRequest is the input of a delivery fee calculation
type DeliveryFeeRequest struct {
	Address    entity.Address `json:"address"`
	ProductIDs []string       `json:"productIds"`
}

// DeliveryFeeCalculator prices delivery for an address and cart contents
type DeliveryFeeCalculator interface {
	CalculateDeliveryFee(ctx context.Context, req DeliveryFeeRequest) (*entity.DeliveryQuote, error)
}

// OrderService submits orders to the marketplace backend
type OrderService interface {
	CreateOrder(ctx context.Context, req *entity.OrderRequest) (*entity.Order, error)
}

// Credentials is a login request
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is a sign-up request
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// AuthResult is the backend's answer to login and register
type AuthResult struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

// AuthService authenticates against the marketplace backend
type AuthService interface {
	Login(ctx context.Context, creds Credentials) (*AuthResult, error)
	Register(ctx context.Context, reg Registration) (*AuthResult, error)

	// Me returns the account behind the bearer token in ctx
	Me(ctx context.Context) (*entity.User, error)
}

// UploadKind selects the backend upload destination
type UploadKind string

const (
	UploadProductImage         UploadKind = "product-image"
	UploadVerificationDocument UploadKind = "verification-document"
)

// Upload is a file forwarded to the backend as a multipart submission
type Upload struct {
	Kind        UploadKind
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadResult is the backend's answer to an upload
type UploadResult struct {
	URL string `json:"url"`
}

// UploadService forwards files to the marketplace backend
type UploadService interface {
	Upload(ctx context.Context, upload *Upload) (*UploadResult, error)
}
