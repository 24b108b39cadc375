// Package usecase holds testify mocks of the usecase interfaces.
package usecase

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/mock"
)

func result[T any](args mock.Arguments, i int) T {
	var zero T
	if v, ok := args.Get(i).(T); ok {
		return v
	}

	return zero
}

// MockSessionUsecase is a mock of usecase.SessionUsecase
type MockSessionUsecase struct {
	mock.Mock
}

// NewMockSessionUsecase creates a mock that asserts its expectations on cleanup
func NewMockSessionUsecase(t *testing.T) *MockSessionUsecase {
	m := &MockSessionUsecase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSessionUsecase) Login(ctx context.Context, creds service.Credentials) (*entity.Session, error) {
	args := m.Called(ctx, creds)

	return result[*entity.Session](args, 0), args.Error(1)
}

func (m *MockSessionUsecase) Register(ctx context.Context, reg service.Registration) (*entity.Session, error) {
	args := m.Called(ctx, reg)

	return result[*entity.Session](args, 0), args.Error(1)
}

func (m *MockSessionUsecase) Logout(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *MockSessionUsecase) Current(ctx context.Context, sessionID string) (*entity.Session, error) {
	args := m.Called(ctx, sessionID)

	return result[*entity.Session](args, 0), args.Error(1)
}

func (m *MockSessionUsecase) Token(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)

	return args.String(0), args.Error(1)
}

func (m *MockSessionUsecase) Subscribe(fn usecase.SessionObserver) func() {
	args := m.Called(fn)

	if unsubscribe := result[func()](args, 0); unsubscribe != nil {
		return unsubscribe
	}

	return func() {}
}

// MockCartUsecase is a mock of usecase.CartUsecase
type MockCartUsecase struct {
	mock.Mock
}

// NewMockCartUsecase creates a mock that asserts its expectations on cleanup
func NewMockCartUsecase(t *testing.T) *MockCartUsecase {
	m := &MockCartUsecase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCartUsecase) View(ctx context.Context) (*usecase.CartView, error) {
	args := m.Called(ctx)

	return result[*usecase.CartView](args, 0), args.Error(1)
}

func (m *MockCartUsecase) AddItem(ctx context.Context, input *usecase.CartItemInput) (*usecase.CartView, error) {
	args := m.Called(ctx, input)

	return result[*usecase.CartView](args, 0), args.Error(1)
}

func (m *MockCartUsecase) UpdateItem(ctx context.Context, productID string, quantity int) (*usecase.CartView, error) {
	args := m.Called(ctx, productID, quantity)

	return result[*usecase.CartView](args, 0), args.Error(1)
}

func (m *MockCartUsecase) RemoveItem(ctx context.Context, productID string) (*usecase.CartView, error) {
	args := m.Called(ctx, productID)

	return result[*usecase.CartView](args, 0), args.Error(1)
}

func (m *MockCartUsecase) CheckoutItems(ctx context.Context) ([]entity.CheckoutItem, error) {
	args := m.Called(ctx)

	return result[[]entity.CheckoutItem](args, 0), args.Error(1)
}

// MockCheckoutUsecase is a mock of usecase.CheckoutUsecase
type MockCheckoutUsecase struct {
	mock.Mock
}

// NewMockCheckoutUsecase creates a mock that asserts its expectations on cleanup
func NewMockCheckoutUsecase(t *testing.T) *MockCheckoutUsecase {
	m := &MockCheckoutUsecase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCheckoutUsecase) Start(ctx context.Context, input *usecase.StartCheckoutInput) (*entity.CheckoutState, error) {
	args := m.Called(ctx, input)

	return result[*entity.CheckoutState](args, 0), args.Error(1)
}

func (m *MockCheckoutUsecase) Get(ctx context.Context, checkoutID string) (*entity.CheckoutState, error) {
	args := m.Called(ctx, checkoutID)

	return result[*entity.CheckoutState](args, 0), args.Error(1)
}

func (m *MockCheckoutUsecase) SetManualAddress(ctx context.Context, checkoutID string, fields entity.Address) (*entity.CheckoutState, error) {
	args := m.Called(ctx, checkoutID, fields)

	return result[*entity.CheckoutState](args, 0), args.Error(1)
}

func (m *MockCheckoutUsecase) SelectPlace(ctx context.Context, checkoutID string, input *usecase.PlaceSelectionInput) (*entity.CheckoutState, error) {
	args := m.Called(ctx, checkoutID, input)

	return result[*entity.CheckoutState](args, 0), args.Error(1)
}

func (m *MockCheckoutUsecase) UseDeviceLocation(ctx context.Context, checkoutID string, input *usecase.DeviceLocationInput) (*entity.CheckoutState, error) {
	args := m.Called(ctx, checkoutID, input)

	return result[*entity.CheckoutState](args, 0), args.Error(1)
}

func (m *MockCheckoutUsecase) OverrideDeliveryFee(ctx context.Context, checkoutID string, amount float64) (*entity.CheckoutState, error) {
	args := m.Called(ctx, checkoutID, amount)

	return result[*entity.CheckoutState](args, 0), args.Error(1)
}

func (m *MockCheckoutUsecase) Submit(ctx context.Context, checkoutID string, input *usecase.SubmitOrderInput) (*entity.Order, error) {
	args := m.Called(ctx, checkoutID, input)

	return result[*entity.Order](args, 0), args.Error(1)
}

// MockUploadUsecase is a mock of usecase.UploadUsecase
type MockUploadUsecase struct {
	mock.Mock
}

// NewMockUploadUsecase creates a mock that asserts its expectations on cleanup
func NewMockUploadUsecase(t *testing.T) *MockUploadUsecase {
	m := &MockUploadUsecase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUploadUsecase) Upload(ctx context.Context, upload *service.Upload) (*service.UploadResult, error) {
	args := m.Called(ctx, upload)

	return result[*service.UploadResult](args, 0), args.Error(1)
}

func (m *MockUploadUsecase) MaxSize(kind service.UploadKind) int64 {
	return m.Called(kind).Get(0).(int64)
}

// MockPromotionUsecase is a mock of usecase.PromotionUsecase
type MockPromotionUsecase struct {
	mock.Mock
}

// NewMockPromotionUsecase creates a mock that asserts its expectations on cleanup
func NewMockPromotionUsecase(t *testing.T) *MockPromotionUsecase {
	m := &MockPromotionUsecase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPromotionUsecase) ResolveFeatured(ctx context.Context) *entity.FeaturedCandidate {
	return result[*entity.FeaturedCandidate](m.Called(ctx), 0)
}
