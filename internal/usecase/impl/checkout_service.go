package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	placeLookupWarning    = "We could not look up that address. Please enter it manually."
	locationDeniedWarning = "Location permission was denied. Please enter your address manually."
	locationFailedWarning = "Your location is unavailable. Please enter your address manually."
	geocodePartialWarning = "We found your position but not a street address. Please complete the address."
)

// checkoutSession is one shopper's checkout in progress. Items never
// change after creation.
type checkoutSession struct {
	mu         sync.Mutex
	id         string
	owner      string // auth session id, empty for bearer-only callers
	items      []entity.CheckoutItem
	address    entity.Address
	resolution entity.Resolution
	warning    string
	estimator  usecase.FeeEstimator
	expiresAt  time.Time
	submitting bool
}

// checkoutService implements the CheckoutUsecase interface.
type checkoutService struct {
	catalog   service.CatalogService
	cart      usecase.CartUsecase
	orders    service.OrderService
	address   usecase.AddressUsecase
	fees      usecase.DeliveryFeeUsecase
	publisher service.EventPublisher
	ttl       time.Duration
	currency  string
	logger    *slog.Logger
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*checkoutSession
}

// CheckoutServiceParams holds dependencies for CheckoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	Lc        fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
	Catalog   service.CatalogService
	Cart      usecase.CartUsecase
	Orders    service.OrderService
	Address   usecase.AddressUsecase
	Fees      usecase.DeliveryFeeUsecase
	Publisher service.EventPublisher
	Sessions  usecase.SessionUsecase
}

// NewCheckoutService is the constructor for checkoutService. It sweeps
// expired checkouts while the app runs and drops a shopper's checkouts
// when their session ends.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	srv := newCheckoutService(params)

	unsubscribe := params.Sessions.Subscribe(func(event entity.SessionEvent) {
		if event.Type == entity.SessionLoggedOut || event.Type == entity.SessionExpired {
			srv.dropOwnedBy(event.SessionID)
		}
	})

	stop := make(chan struct{})
	done := make(chan struct{})
	params.Lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go srv.janitor(stop, done)

			return nil
		},
		OnStop: func(ctx context.Context) error {
			unsubscribe()
			close(stop)
			select {
			case <-done:
			case <-ctx.Done():
			}
			srv.closeAll()

			return nil
		},
	})

	return srv
}

func newCheckoutService(params CheckoutServiceParams) *checkoutService {
	return &checkoutService{
		catalog:   params.Catalog,
		cart:      params.Cart,
		orders:    params.Orders,
		address:   params.Address,
		fees:      params.Fees,
		publisher: params.Publisher,
		ttl:       params.Config.Checkout.SessionTTL,
		currency:  params.Config.Checkout.Currency,
		logger:    params.Logger,
		now:       time.Now,
		sessions:  make(map[string]*checkoutSession),
	}
}

func (srv *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Start creates a checkout from a buy-now product or from the cart.
func (srv *checkoutService) Start(ctx context.Context, input *usecase.StartCheckoutInput) (*entity.CheckoutState, error) {
	items, err := srv.checkoutItems(ctx, input)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domainerrors.ErrEmptyCheckout
	}

	session := &checkoutSession{
		id:        uuid.NewString(),
		owner:     deliverycontext.GetSessionID(ctx),
		items:     items,
		estimator: srv.fees.NewEstimator(),
		expiresAt: srv.now().Add(srv.ttl),
	}

	srv.mu.Lock()
	srv.sessions[session.id] = session
	srv.mu.Unlock()

	srv.log(ctx).InfoContext(ctx, "Checkout started",
		slog.String("checkout_id", session.id),
		slog.Int("items", len(items)),
	)

	session.mu.Lock()
	defer session.mu.Unlock()

	return srv.stateOf(session), nil
}

func (srv *checkoutService) checkoutItems(ctx context.Context, input *usecase.StartCheckoutInput) ([]entity.CheckoutItem, error) {
	if input == nil || strings.TrimSpace(input.ProductID) == "" {
		return srv.cart.CheckoutItems(ctx)
	}

	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, domainerrors.ErrInvalidQuantity
	}

	product, err := srv.catalog.GetProduct(ctx, strings.TrimSpace(input.ProductID))
	if err != nil {
		return nil, err
	}
	if !product.InStock(quantity) {
		return nil, domainerrors.ErrInsufficientStock
	}

	return []entity.CheckoutItem{entity.NewCheckoutItem(*product, quantity)}, nil
}

// Get returns the checkout state.
func (srv *checkoutService) Get(ctx context.Context, checkoutID string) (*entity.CheckoutState, error) {
	return srv.withSession(ctx, checkoutID, func(*checkoutSession) error { return nil })
}

// SetManualAddress replaces the address with trimmed user input.
func (srv *checkoutService) SetManualAddress(ctx context.Context, checkoutID string, fields entity.Address) (*entity.CheckoutState, error) {
	return srv.withSession(ctx, checkoutID, func(s *checkoutSession) error {
		srv.setAddress(ctx, s, srv.address.ResolveFromManualEntry(fields), entity.ResolutionManual, "")

		return nil
	})
}

// SelectPlace applies an autocomplete selection. Lookup failures keep the
// previous address and report a warning instead of an error.
func (srv *checkoutService) SelectPlace(ctx context.Context, checkoutID string, input *usecase.PlaceSelectionInput) (*entity.CheckoutState, error) {
	if input == nil || (input.Place == nil && strings.TrimSpace(input.PlaceID) == "") {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "place or placeId is required")
	}

	var resolved entity.Address
	var lookupErr error
	if input.Place != nil {
		resolved = srv.address.ResolveFromAutocompleteSelection(input.Place)
	} else {
		resolved, lookupErr = srv.address.ResolveFromPlaceID(ctx, input.PlaceID)
	}

	return srv.withSession(ctx, checkoutID, func(s *checkoutSession) error {
		if lookupErr != nil {
			srv.log(ctx).WarnContext(ctx, "Place lookup failed, keeping previous address",
				slog.String("checkout_id", s.id),
				slog.Any("error", lookupErr),
			)
			s.resolution = entity.ResolutionFailed
			s.warning = placeLookupWarning

			return nil
		}

		srv.setAddress(ctx, s, mergeContact(resolved, s.address), resolutionOf(resolved), "")

		return nil
	})
}

// UseDeviceLocation resolves the address from the reported device position.
func (srv *checkoutService) UseDeviceLocation(ctx context.Context, checkoutID string, input *usecase.DeviceLocationInput) (*entity.CheckoutState, error) {
	if input == nil {
		input = &usecase.DeviceLocationInput{Error: usecase.LocationErrorUnavailable}
	}

	resolved, resolution, locateErr := srv.address.ResolveFromDeviceLocation(ctx, input)

	return srv.withSession(ctx, checkoutID, func(s *checkoutSession) error {
		if locateErr != nil {
			s.resolution = entity.ResolutionFailed
			s.warning = locationFailedWarning
			if errors.Is(locateErr, domainerrors.ErrLocationPermissionDenied) {
				s.warning = locationDeniedWarning
			}

			return nil
		}

		warning := ""
		if resolution == entity.ResolutionPartial {
			warning = geocodePartialWarning
			// keep whatever the shopper typed, only the position is new
			resolved = s.address.WithCoordinate(resolved.Coordinate())
		}

		srv.setAddress(ctx, s, mergeContact(resolved, s.address), resolution, warning)

		return nil
	})
}

// OverrideDeliveryFee sets a manual fee until the next calculation.
func (srv *checkoutService) OverrideDeliveryFee(ctx context.Context, checkoutID string, amount float64) (*entity.CheckoutState, error) {
	return srv.withSession(ctx, checkoutID, func(s *checkoutSession) error {
		return s.estimator.Override(amount)
	})
}

// Submit validates the address, sends the order and closes the checkout.
// Only one submission of a checkout is in flight at a time. An address in
// the body that moves the destination away from the one a calculated fee
// was quoted for is stored and re-quoted, and the submission is refused so
// the shopper sees the new fee first.
func (srv *checkoutService) Submit(ctx context.Context, checkoutID string, input *usecase.SubmitOrderInput) (*entity.Order, error) {
	if input == nil {
		input = &usecase.SubmitOrderInput{}
	}

	var req *entity.OrderRequest
	var fee entity.FeeState
	var session *checkoutSession
	_, err := srv.withSession(ctx, checkoutID, func(s *checkoutSession) error {
		if s.submitting {
			return domainerrors.ErrCheckoutSubmitting
		}

		if input.Address != nil {
			address := mergeContact(srv.address.ResolveFromManualEntry(*input.Address), s.address)
			if !address.SameDestination(s.address) && s.estimator.Snapshot().Source == entity.FeeSourceCalculated {
				srv.setAddress(ctx, s, address, entity.ResolutionManual, "")

				return domainerrors.ErrDeliveryFeeOutdated
			}
			s.address = address
			s.resolution = entity.ResolutionManual
		}

		addr := s.address.Trimmed()
		if addr.Street == "" || addr.City == "" || addr.Phone == "" {
			return domainerrors.ErrMissingRequiredFields
		}

		fee = s.estimator.Snapshot()
		req = &entity.OrderRequest{
			Items:           s.items,
			ShippingAddress: addr,
			DeliveryFee:     fee.Fee,
			PaymentMethod:   strings.TrimSpace(input.PaymentMethod),
			Notes:           strings.TrimSpace(input.Notes),
		}
		s.submitting = true
		session = s

		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := srv.orders.CreateOrder(ctx, req)
	if err != nil {
		session.mu.Lock()
		session.submitting = false
		session.mu.Unlock()

		srv.log(ctx).WarnContext(ctx, "Order submission failed",
			slog.String("checkout_id", checkoutID),
			slog.Any("error", err),
		)

		return nil, err
	}

	srv.log(ctx).InfoContext(ctx, "Order submitted",
		slog.String("checkout_id", checkoutID),
		slog.String("order_id", order.ID),
	)

	srv.publishSubmitted(ctx, checkoutID, order, req, fee)
	srv.remove(checkoutID)

	return order, nil
}

func (srv *checkoutService) publishSubmitted(ctx context.Context, checkoutID string, order *entity.Order, req *entity.OrderRequest, fee entity.FeeState) {
	event := &entity.CheckoutEvent{
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		Type:        entity.CheckoutOrderSubmitted,
		CheckoutID:  checkoutID,
		OrderID:     order.ID,
		ItemCount:   len(req.Items),
		Subtotal:    entity.ItemsSubtotal(req.Items),
		DeliveryFee: req.DeliveryFee,
		FeeSource:   fee.Source,
		City:        req.ShippingAddress.City,
		OccurredAt:  srv.now().UTC(),
	}

	if err := srv.publisher.PublishCheckoutEvent(ctx, event); err != nil {
		srv.log(ctx).WarnContext(ctx, "Failed to publish checkout event",
			slog.String("checkout_id", checkoutID),
			slog.Any("error", err),
		)
	}
}

// withSession looks up, authorises and locks a checkout, runs fn and
// returns the resulting state. Each access extends the expiry.
func (srv *checkoutService) withSession(ctx context.Context, checkoutID string, fn func(*checkoutSession) error) (*entity.CheckoutState, error) {
	srv.mu.Lock()
	s, ok := srv.sessions[checkoutID]
	srv.mu.Unlock()
	if !ok {
		return nil, domainerrors.ErrCheckoutNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := srv.now()
	if !now.Before(s.expiresAt) {
		return nil, domainerrors.ErrCheckoutNotFound
	}
	if s.owner != "" && s.owner != deliverycontext.GetSessionID(ctx) {
		return nil, domainerrors.ErrCheckoutForbidden
	}

	if err := fn(s); err != nil {
		return nil, err
	}
	s.expiresAt = now.Add(srv.ttl)

	return srv.stateOf(s), nil
}

// setAddress stores a new address and asks for a fresh fee. Callers hold s.mu.
func (srv *checkoutService) setAddress(ctx context.Context, s *checkoutSession, address entity.Address, resolution entity.Resolution, warning string) {
	s.address = address
	s.resolution = resolution
	s.warning = warning
	s.estimator.Update(ctx, address, entity.ProductIDs(s.items))
}

// stateOf builds the client view. Callers hold s.mu.
func (srv *checkoutService) stateOf(s *checkoutSession) *entity.CheckoutState {
	fee := s.estimator.Snapshot()
	subtotal := entity.ItemsSubtotal(s.items)
	total := subtotal + fee.Fee

	return &entity.CheckoutState{
		ID:              s.id,
		Items:           s.items,
		Address:         s.address,
		Resolution:      s.resolution,
		Warning:         s.warning,
		DeliveryFee:     fee,
		Subtotal:        subtotal,
		SubtotalDisplay: entity.FormatMoney(srv.currency, subtotal),
		Total:           total,
		TotalDisplay:    entity.FormatMoney(srv.currency, total),
		ExpiresAt:       s.expiresAt,
	}
}

func (srv *checkoutService) remove(checkoutID string) {
	srv.mu.Lock()
	s, ok := srv.sessions[checkoutID]
	delete(srv.sessions, checkoutID)
	srv.mu.Unlock()

	if ok {
		s.estimator.Close()
	}
}

// dropOwnedBy removes every checkout of an auth session.
func (srv *checkoutService) dropOwnedBy(owner string) int {
	if owner == "" {
		return 0
	}

	srv.mu.Lock()
	var dropped []*checkoutSession
	for id, s := range srv.sessions {
		if s.owner == owner {
			dropped = append(dropped, s)
			delete(srv.sessions, id)
		}
	}
	srv.mu.Unlock()

	for _, s := range dropped {
		s.estimator.Close()
	}
	if len(dropped) > 0 {
		srv.logger.Info("Dropped checkouts of ended session", slog.Int("count", len(dropped)))
	}

	return len(dropped)
}

// sweep removes expired checkouts.
func (srv *checkoutService) sweep() int {
	now := srv.now()

	srv.mu.Lock()
	var expired []*checkoutSession
	for id, s := range srv.sessions {
		s.mu.Lock()
		if !now.Before(s.expiresAt) {
			expired = append(expired, s)
			delete(srv.sessions, id)
		}
		s.mu.Unlock()
	}
	srv.mu.Unlock()

	for _, s := range expired {
		s.estimator.Close()
	}

	return len(expired)
}

func (srv *checkoutService) janitor(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	interval := srv.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if n := srv.sweep(); n > 0 {
				srv.logger.Debug("Swept expired checkouts", slog.Int("count", n))
			}
		}
	}
}

func (srv *checkoutService) closeAll() {
	srv.mu.Lock()
	sessions := srv.sessions
	srv.sessions = make(map[string]*checkoutSession)
	srv.mu.Unlock()

	for _, s := range sessions {
		s.estimator.Close()
	}
}

// mergeContact keeps the previous phone when the resolved address has none;
// places results never carry one.
func mergeContact(resolved, previous entity.Address) entity.Address {
	if resolved.Phone == "" {
		resolved.Phone = previous.Phone
	}

	return resolved
}
