package impl

import (
	"context"
	"log/slog"
	"strings"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"go.uber.org/fx"
)

const emptyCartMessage = "Your cart is empty"

var startShopping = usecase.CallToAction{Label: "Start Shopping", Href: "/products"}

// cartService implements the CartUsecase interface.
type cartService struct {
	cart     service.CartService
	catalog  service.CatalogService
	currency string
	logger   *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	Cart    service.CartService
	Catalog service.CatalogService
	Config  *config.Config
	Logger  *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		cart:     params.Cart,
		catalog:  params.Catalog,
		currency: params.Config.Checkout.Currency,
		logger:   params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// View returns the cart page model. An empty cart is not an error.
func (srv *cartService) View(ctx context.Context) (*usecase.CartView, error) {
	cart, err := srv.cart.GetCart(ctx)
	if err != nil {
		return nil, err
	}

	return srv.viewOf(cart), nil
}

// AddItem checks the stock before adding.
func (srv *cartService) AddItem(ctx context.Context, input *usecase.CartItemInput) (*usecase.CartView, error) {
	if input == nil || input.Quantity < 1 {
		return nil, domainerrors.ErrInvalidQuantity
	}

	productID := strings.TrimSpace(input.ProductID)
	product, err := srv.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.InStock(input.Quantity) {
		srv.log(ctx).InfoContext(ctx, "Rejected cart add beyond stock",
			slog.String("product_id", productID),
			slog.Int("quantity", input.Quantity),
			slog.Int("stock", *product.Stock),
		)

		return nil, domainerrors.ErrInsufficientStock
	}

	cart, err := srv.cart.AddItem(ctx, productID, input.Quantity)
	if err != nil {
		return nil, err
	}

	return srv.viewOf(cart), nil
}

// UpdateItem changes a line quantity.
func (srv *cartService) UpdateItem(ctx context.Context, productID string, quantity int) (*usecase.CartView, error) {
	if quantity < 1 {
		return nil, domainerrors.ErrInvalidQuantity
	}

	cart, err := srv.cart.UpdateItem(ctx, strings.TrimSpace(productID), quantity)
	if err != nil {
		return nil, err
	}

	return srv.viewOf(cart), nil
}

// RemoveItem drops a line.
func (srv *cartService) RemoveItem(ctx context.Context, productID string) (*usecase.CartView, error) {
	cart, err := srv.cart.RemoveItem(ctx, strings.TrimSpace(productID))
	if err != nil {
		return nil, err
	}

	return srv.viewOf(cart), nil
}

// CheckoutItems flattens the current cart.
func (srv *cartService) CheckoutItems(ctx context.Context) ([]entity.CheckoutItem, error) {
	cart, err := srv.cart.GetCart(ctx)
	if err != nil {
		return nil, err
	}

	return cart.CheckoutItems(), nil
}

func (srv *cartService) viewOf(cart *entity.Cart) *usecase.CartView {
	if cart == nil || cart.IsEmpty() {
		cta := startShopping

		return &usecase.CartView{
			Empty:           true,
			Message:         emptyCartMessage,
			CallToAction:    &cta,
			Lines:           []usecase.CartLine{},
			SubtotalDisplay: entity.FormatMoney(srv.currency, 0),
		}
	}

	view := &usecase.CartView{Lines: make([]usecase.CartLine, 0, len(cart.Items))}
	for _, item := range cart.Items {
		lineTotal := item.LineTotal()
		view.Lines = append(view.Lines, usecase.CartLine{
			ProductID:        item.Product.ID,
			Name:             item.Product.Name,
			Image:            item.Product.PrimaryImage(),
			Price:            item.Product.Price,
			PriceDisplay:     entity.FormatMoney(srv.currency, item.Product.Price),
			Quantity:         item.Quantity,
			LineTotal:        lineTotal,
			LineTotalDisplay: entity.FormatMoney(srv.currency, lineTotal),
		})
		view.ItemCount += item.Quantity
	}
	view.Subtotal = cart.Subtotal()
	view.SubtotalDisplay = entity.FormatMoney(srv.currency, view.Subtotal)

	return view
}
