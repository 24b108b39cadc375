package impl

import (
	"context"
	"log/slog"
	"math"
	"slices"
	"sync"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/infra/fee"
	"storefront/internal/usecase"
	"storefront/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// deliveryFeeService implements the DeliveryFeeUsecase interface.
type deliveryFeeService struct {
	calculator service.DeliveryFeeCalculator
	settings   EstimatorSettings
	tiers      []entity.FeeTier
	logger     *slog.Logger
}

// DeliveryFeeServiceParams holds dependencies for DeliveryFeeService, injected by Fx.
type DeliveryFeeServiceParams struct {
	fx.In

	Calculator service.DeliveryFeeCalculator
	Config     *config.Config
	Logger     *slog.Logger
}

// NewDeliveryFeeService is the constructor for deliveryFeeService.
func NewDeliveryFeeService(params DeliveryFeeServiceParams) usecase.DeliveryFeeUsecase {
	cfg := params.Config

	bands := config.DefaultFeeTiers()
	if cfg.DeliveryFee != nil && len(cfg.DeliveryFee.Tiers) > 0 {
		bands = cfg.DeliveryFee.Tiers
	}

	return &deliveryFeeService{
		calculator: params.Calculator,
		settings: EstimatorSettings{
			DefaultFee: cfg.Checkout.DefaultDeliveryFee,
			Currency:   cfg.Checkout.Currency,
			Debounce:   cfg.Checkout.DebounceInterval,
			Timeout:    cfg.Checkout.QuoteTimeout,
		},
		tiers:  fee.TiersFromConfig(bands),
		logger: params.Logger,
	}
}

// NewEstimator creates an estimator starting at the default fee.
func (srv *deliveryFeeService) NewEstimator() usecase.FeeEstimator {
	return NewFeeEstimator(srv.calculator, srv.settings, srv.logger)
}

// Tiers returns the published distance pricing.
func (srv *deliveryFeeService) Tiers() []entity.FeeTier {
	return slices.Clone(srv.tiers)
}

// EstimatorSettings configures a FeeEstimator
type EstimatorSettings struct {
	DefaultFee float64
	Currency   string
	Debounce   time.Duration
	Timeout    time.Duration
}

// FeeEstimator debounces address changes into delivery fee calculations.
// Every issued calculation takes the next sequence number and cancels the
// one before it; a result is applied only while its number is the latest.
type FeeEstimator struct {
	calculator service.DeliveryFeeCalculator
	settings   EstimatorSettings
	logger     *slog.Logger
	debouncer  *util.Debouncer
	now        func() time.Time

	mu        sync.Mutex
	state     entity.FeeState
	next      *pendingQuote
	seq       uint64
	cancel    context.CancelFunc
	inFlight  bool
	closed    bool
	completed chan uint64 // test hook, nil in production
}

type pendingQuote struct {
	ctx context.Context
	req service.DeliveryFeeRequest
}

// NewFeeEstimator creates a FeeEstimator on top of a calculator.
func NewFeeEstimator(calculator service.DeliveryFeeCalculator, settings EstimatorSettings, logger *slog.Logger) *FeeEstimator {
	e := &FeeEstimator{
		calculator: calculator,
		settings:   settings,
		logger:     logger,
		now:        time.Now,
		state: entity.FeeState{
			Fee:    settings.DefaultFee,
			Source: entity.FeeSourceDefault,
		},
	}
	e.debouncer = util.NewDebouncer(settings.Debounce, e.issue)

	return e
}

// Update records the latest address and re-arms the debouncer. The
// calculation outlives ctx's cancellation but keeps its values.
func (e *FeeEstimator) Update(ctx context.Context, address entity.Address, productIDs []string) bool {
	address = address.Trimmed()
	if !address.ReadyForQuote() {
		return false
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()

		return false
	}
	e.next = &pendingQuote{
		ctx: context.WithoutCancel(ctx),
		req: service.DeliveryFeeRequest{Address: address, ProductIDs: slices.Clone(productIDs)},
	}
	e.mu.Unlock()

	e.debouncer.Trigger()

	return true
}

// issue runs on the debouncer goroutine once the address has settled.
func (e *FeeEstimator) issue() {
	e.mu.Lock()
	if e.closed || e.next == nil {
		e.mu.Unlock()

		return
	}

	pending := e.next
	e.next = nil
	e.seq++
	seq := e.seq
	if e.cancel != nil {
		e.cancel()
	}

	var ctx context.Context
	var cancel context.CancelFunc
	if e.settings.Timeout > 0 {
		ctx, cancel = context.WithTimeout(pending.ctx, e.settings.Timeout)
	} else {
		ctx, cancel = context.WithCancel(pending.ctx)
	}
	e.cancel = cancel
	e.inFlight = true
	e.mu.Unlock()

	quote, err := e.calculator.CalculateDeliveryFee(ctx, pending.req)
	cancel()

	e.apply(ctx, seq, quote, err)
}

func (e *FeeEstimator) apply(ctx context.Context, seq uint64, quote *entity.DeliveryQuote, err error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, e.logger)

	e.mu.Lock()
	defer func() {
		completed := e.completed
		e.mu.Unlock()
		if completed != nil {
			completed <- seq
		}
	}()

	if seq != e.seq || e.closed {
		logger.DebugContext(ctx, "Discarding superseded delivery fee result", slog.Uint64("seq", seq))

		return
	}

	e.inFlight = false
	e.cancel = nil

	if err != nil {
		logger.WarnContext(ctx, "Delivery fee calculation failed, keeping previous fee",
			slog.Float64("fee", e.state.Fee),
			slog.Any("error", err),
		)
		e.state.LastError = userMessage(err)

		return
	}
	if quote == nil || quote.Fee < 0 || math.IsNaN(quote.Fee) || math.IsInf(quote.Fee, 0) {
		logger.WarnContext(ctx, "Delivery fee calculator returned an unusable quote, keeping previous fee")
		e.state.LastError = "Could not calculate delivery fee"

		return
	}

	e.state.Fee = quote.Fee
	e.state.Source = entity.FeeSourceCalculated
	e.state.LastError = ""
	e.state.UpdatedAt = e.now()
}

// Override sets a manual fee.
func (e *FeeEstimator) Override(amount float64) error {
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return domainerrors.ErrInvalidDeliveryFee
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Fee = amount
	e.state.Source = entity.FeeSourceManual
	e.state.LastError = ""
	e.state.UpdatedAt = e.now()

	return nil
}

// Snapshot returns the current fee with its display string.
func (e *FeeEstimator) Snapshot() entity.FeeState {
	pending := e.debouncer.Pending()

	e.mu.Lock()
	defer e.mu.Unlock()

	state := e.state
	state.Display = entity.FormatMoney(e.settings.Currency, state.Fee)
	state.Pending = pending || e.inFlight || e.next != nil

	return state
}

// Close disarms the debouncer and cancels any in-flight calculation.
func (e *FeeEstimator) Close() {
	e.debouncer.Stop()

	e.mu.Lock()
	defer e.mu.Unlock()

	e.closed = true
	e.next = nil
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.inFlight = false
}

// userMessage is the text shown to shoppers for a failed backend call
func userMessage(err error) string {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message()
	}

	return "Could not calculate delivery fee"
}
