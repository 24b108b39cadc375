// Package service holds testify mocks of the domain service interfaces.
package service

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

func result[T any](args mock.Arguments, i int) T {
	var zero T
	if v, ok := args.Get(i).(T); ok {
		return v
	}

	return zero
}

// MockCatalogService is a mock of service.CatalogService
type MockCatalogService struct {
	mock.Mock
}

// NewMockCatalogService creates a mock that asserts its expectations on cleanup
func NewMockCatalogService(t *testing.T) *MockCatalogService {
	m := &MockCatalogService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCatalogService) ListProducts(ctx context.Context, query service.ProductQuery) ([]entity.Product, error) {
	args := m.Called(ctx, query)

	return result[[]entity.Product](args, 0), args.Error(1)
}

func (m *MockCatalogService) GetProduct(ctx context.Context, productID string) (*entity.Product, error) {
	args := m.Called(ctx, productID)

	return result[*entity.Product](args, 0), args.Error(1)
}

func (m *MockCatalogService) ListActivePromotions(ctx context.Context, limit int) ([]entity.Promotion, error) {
	args := m.Called(ctx, limit)

	return result[[]entity.Promotion](args, 0), args.Error(1)
}

// MockCartService is a mock of service.CartService
type MockCartService struct {
	mock.Mock
}

// NewMockCartService creates a mock that asserts its expectations on cleanup
func NewMockCartService(t *testing.T) *MockCartService {
	m := &MockCartService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCartService) GetCart(ctx context.Context) (*entity.Cart, error) {
	args := m.Called(ctx)

	return result[*entity.Cart](args, 0), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, productID string, quantity int) (*entity.Cart, error) {
	args := m.Called(ctx, productID, quantity)

	return result[*entity.Cart](args, 0), args.Error(1)
}

func (m *MockCartService) UpdateItem(ctx context.Context, productID string, quantity int) (*entity.Cart, error) {
	args := m.Called(ctx, productID, quantity)

	return result[*entity.Cart](args, 0), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, productID string) (*entity.Cart, error) {
	args := m.Called(ctx, productID)

	return result[*entity.Cart](args, 0), args.Error(1)
}

// MockOrderService is a mock of service.OrderService
type MockOrderService struct {
	mock.Mock
}

// NewMockOrderService creates a mock that asserts its expectations on cleanup
func NewMockOrderService(t *testing.T) *MockOrderService {
	m := &MockOrderService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOrderService) CreateOrder(ctx context.Context, req *entity.OrderRequest) (*entity.Order, error) {
	args := m.Called(ctx, req)

	return result[*entity.Order](args, 0), args.Error(1)
}

// MockAuthService is a mock of service.AuthService
type MockAuthService struct {
	mock.Mock
}

// NewMockAuthService creates a mock that asserts its expectations on cleanup
func NewMockAuthService(t *testing.T) *MockAuthService {
	m := &MockAuthService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAuthService) Login(ctx context.Context, creds service.Credentials) (*service.AuthResult, error) {
	args := m.Called(ctx, creds)

	return result[*service.AuthResult](args, 0), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, reg service.Registration) (*service.AuthResult, error) {
	args := m.Called(ctx, reg)

	return result[*service.AuthResult](args, 0), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context) (*entity.User, error) {
	args := m.Called(ctx)

	return result[*entity.User](args, 0), args.Error(1)
}

// MockUploadService is a mock of service.UploadService
type MockUploadService struct {
	mock.Mock
}

// NewMockUploadService creates a mock that asserts its expectations on cleanup
func NewMockUploadService(t *testing.T) *MockUploadService {
	m := &MockUploadService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUploadService) Upload(ctx context.Context, upload *service.Upload) (*service.UploadResult, error) {
	args := m.Called(ctx, upload)

	return result[*service.UploadResult](args, 0), args.Error(1)
}

// MockPlacesProvider is a mock of service.PlacesProvider
type MockPlacesProvider struct {
	mock.Mock
}

// NewMockPlacesProvider creates a mock that asserts its expectations on cleanup
func NewMockPlacesProvider(t *testing.T) *MockPlacesProvider {
	m := &MockPlacesProvider{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPlacesProvider) Autocomplete(ctx context.Context, input string) ([]entity.PlacePrediction, error) {
	args := m.Called(ctx, input)

	return result[[]entity.PlacePrediction](args, 0), args.Error(1)
}

func (m *MockPlacesProvider) PlaceDetails(ctx context.Context, placeID string) (*entity.PlaceResult, error) {
	args := m.Called(ctx, placeID)

	return result[*entity.PlaceResult](args, 0), args.Error(1)
}

func (m *MockPlacesProvider) ReverseGeocode(ctx context.Context, coord entity.Coordinate) (*entity.PlaceResult, error) {
	args := m.Called(ctx, coord)

	return result[*entity.PlaceResult](args, 0), args.Error(1)
}

func (m *MockPlacesProvider) Enabled() bool {
	return m.Called().Bool(0)
}

// MockEventPublisher is a mock of service.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher creates a mock that asserts its expectations on cleanup
func NewMockEventPublisher(t *testing.T) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventPublisher) PublishCheckoutEvent(ctx context.Context, event *entity.CheckoutEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

// MockTokenInspector is a mock of service.TokenInspector
type MockTokenInspector struct {
	mock.Mock
}

// NewMockTokenInspector creates a mock that asserts its expectations on cleanup
func NewMockTokenInspector(t *testing.T) *MockTokenInspector {
	m := &MockTokenInspector{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenInspector) Inspect(token string) (*service.TokenClaims, error) {
	args := m.Called(token)

	return result[*service.TokenClaims](args, 0), args.Error(1)
}
