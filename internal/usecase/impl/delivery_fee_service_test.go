package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/infra/fee"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type calcFunc func(ctx context.Context, req service.DeliveryFeeRequest) (*entity.DeliveryQuote, error)

type fakeCalculator struct {
	calls atomic.Int32
	mu    sync.Mutex
	reqs  []service.DeliveryFeeRequest
	fn    calcFunc
}

func (f *fakeCalculator) CalculateDeliveryFee(ctx context.Context, req service.DeliveryFeeRequest) (*entity.DeliveryQuote, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()

	return f.fn(ctx, req)
}

func fixedFee(fee float64) calcFunc {
	return func(context.Context, service.DeliveryFeeRequest) (*entity.DeliveryQuote, error) {
		return &entity.DeliveryQuote{Fee: fee}, nil
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEstimator(t *testing.T, calc service.DeliveryFeeCalculator) *FeeEstimator {
	t.Helper()

	e := NewFeeEstimator(calc, EstimatorSettings{
		DefaultFee: 200,
		Currency:   "ETB",
		Debounce:   20 * time.Millisecond,
		Timeout:    time.Second,
	}, discardLogger())
	e.completed = make(chan uint64, 16)
	t.Cleanup(e.Close)

	return e
}

func waitCompleted(t *testing.T, e *FeeEstimator) uint64 {
	t.Helper()

	select {
	case seq := <-e.completed:
		return seq
	case <-time.After(2 * time.Second):
		t.Fatal("fee calculation did not complete")

		return 0
	}
}

var quotable = entity.Address{Street: "Bole Rd", City: "Addis Ababa"}

func TestFeeEstimator_StartsAtDefault(t *testing.T) {
	e := newTestEstimator(t, &fakeCalculator{fn: fixedFee(300)})

	state := e.Snapshot()
	assert.InDelta(t, 200.0, state.Fee, 0.001)
	assert.Equal(t, "ETB 200", state.Display)
	assert.Equal(t, entity.FeeSourceDefault, state.Source)
	assert.False(t, state.Pending)
}

func TestFeeEstimator_IgnoresIncompleteAddress(t *testing.T) {
	calc := &fakeCalculator{fn: fixedFee(300)}
	e := newTestEstimator(t, calc)

	assert.False(t, e.Update(context.Background(), entity.Address{Street: "Bole Rd"}, nil))
	assert.False(t, e.Update(context.Background(), entity.Address{Street: "  ", City: "Addis Ababa"}, nil))

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, calc.calls.Load())
	assert.False(t, e.Snapshot().Pending)
}

func TestFeeEstimator_DebouncesBurst(t *testing.T) {
	calc := &fakeCalculator{fn: fixedFee(300)}
	e := newTestEstimator(t, calc)

	for i := 0; i < 5; i++ {
		require.True(t, e.Update(context.Background(), quotable, []string{"p1"}))
	}
	assert.True(t, e.Snapshot().Pending)

	waitCompleted(t, e)

	assert.Equal(t, int32(1), calc.calls.Load())
	state := e.Snapshot()
	assert.InDelta(t, 300.0, state.Fee, 0.001)
	assert.Equal(t, "ETB 300", state.Display)
	assert.Equal(t, entity.FeeSourceCalculated, state.Source)
	assert.False(t, state.Pending)
	assert.Equal(t, []string{"p1"}, calc.reqs[0].ProductIDs)
}

func TestFeeEstimator_UsesLatestAddress(t *testing.T) {
	calc := &fakeCalculator{fn: fixedFee(300)}
	e := newTestEstimator(t, calc)

	e.Update(context.Background(), entity.Address{Street: "Old St", City: "Adama"}, nil)
	e.Update(context.Background(), entity.Address{Street: " New St ", City: "Addis Ababa"}, nil)
	waitCompleted(t, e)

	require.Len(t, calc.reqs, 1)
	assert.Equal(t, "New St", calc.reqs[0].Address.Street)
	assert.Equal(t, "Addis Ababa", calc.reqs[0].Address.City)
}

func TestFeeEstimator_FailureKeepsPreviousFee(t *testing.T) {
	fail := atomic.Bool{}
	calc := &fakeCalculator{fn: func(context.Context, service.DeliveryFeeRequest) (*entity.DeliveryQuote, error) {
		if fail.Load() {
			return nil, domainerrors.ErrNetwork
		}

		return &entity.DeliveryQuote{Fee: 300}, nil
	}}
	e := newTestEstimator(t, calc)

	e.Update(context.Background(), quotable, nil)
	waitCompleted(t, e)

	fail.Store(true)
	e.Update(context.Background(), entity.Address{Street: "Other St", City: "Addis Ababa"}, nil)
	waitCompleted(t, e)

	state := e.Snapshot()
	assert.InDelta(t, 300.0, state.Fee, 0.001)
	assert.Equal(t, entity.FeeSourceCalculated, state.Source)
	assert.Equal(t, domainerrors.ErrNetwork.Message(), state.LastError)
}

func TestFeeEstimator_FailureFromDefault(t *testing.T) {
	calc := &fakeCalculator{fn: func(context.Context, service.DeliveryFeeRequest) (*entity.DeliveryQuote, error) {
		return nil, errors.New("boom")
	}}
	e := newTestEstimator(t, calc)

	e.Update(context.Background(), quotable, nil)
	waitCompleted(t, e)

	state := e.Snapshot()
	assert.InDelta(t, 200.0, state.Fee, 0.001)
	assert.Equal(t, entity.FeeSourceDefault, state.Source)
	assert.Equal(t, "Could not calculate delivery fee", state.LastError)
}

func TestFeeEstimator_DiscardsStaleResult(t *testing.T) {
	release := make(chan struct{})
	first := make(chan struct{})
	var n atomic.Int32
	calc := &fakeCalculator{fn: func(ctx context.Context, _ service.DeliveryFeeRequest) (*entity.DeliveryQuote, error) {
		if n.Add(1) == 1 {
			close(first)
			<-release
			assert.Error(t, ctx.Err(), "superseded call should be cancelled")

			return &entity.DeliveryQuote{Fee: 300}, nil
		}

		return &entity.DeliveryQuote{Fee: 400}, nil
	}}
	e := newTestEstimator(t, calc)

	e.Update(context.Background(), quotable, nil)
	<-first
	assert.True(t, e.Snapshot().Pending)

	e.Update(context.Background(), entity.Address{Street: "Other St", City: "Addis Ababa"}, nil)
	assert.Equal(t, uint64(2), waitCompleted(t, e))
	assert.InDelta(t, 400.0, e.Snapshot().Fee, 0.001)

	close(release)
	assert.Equal(t, uint64(1), waitCompleted(t, e))

	state := e.Snapshot()
	assert.InDelta(t, 400.0, state.Fee, 0.001)
	assert.False(t, state.Pending)
}

func TestFeeEstimator_Override(t *testing.T) {
	calc := &fakeCalculator{fn: fixedFee(300)}
	e := newTestEstimator(t, calc)

	assert.ErrorIs(t, e.Override(-1), domainerrors.ErrInvalidDeliveryFee)
	assert.InDelta(t, 200.0, e.Snapshot().Fee, 0.001)

	require.NoError(t, e.Override(250))
	state := e.Snapshot()
	assert.InDelta(t, 250.0, state.Fee, 0.001)
	assert.Equal(t, entity.FeeSourceManual, state.Source)
	assert.Equal(t, "ETB 250", state.Display)

	// a later successful calculation replaces the manual fee
	e.Update(context.Background(), quotable, nil)
	waitCompleted(t, e)
	assert.Equal(t, entity.FeeSourceCalculated, e.Snapshot().Source)
	assert.InDelta(t, 300.0, e.Snapshot().Fee, 0.001)
}

func TestFeeEstimator_OverrideAllowsZero(t *testing.T) {
	e := newTestEstimator(t, &fakeCalculator{fn: fixedFee(300)})

	require.NoError(t, e.Override(0))
	assert.Equal(t, "ETB 0", e.Snapshot().Display)
}

func TestFeeEstimator_CloseStopsPending(t *testing.T) {
	calc := &fakeCalculator{fn: fixedFee(300)}
	e := newTestEstimator(t, calc)

	e.Update(context.Background(), quotable, nil)
	e.Close()

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, calc.calls.Load())
	assert.False(t, e.Update(context.Background(), quotable, nil))
	assert.False(t, e.Snapshot().Pending)
}

func TestDeliveryFeeService_Tiers(t *testing.T) {
	srv := &deliveryFeeService{tiers: []entity.FeeTier{{UpToKm: 5, Fee: 200}, {FromKm: 5, Fee: 300}}}

	tiers := srv.Tiers()
	tiers[0].Fee = 1
	assert.InDelta(t, 200.0, srv.Tiers()[0].Fee, 0.001)
}

func TestNewDeliveryFeeService_WithoutFeeSection(t *testing.T) {
	srv := NewDeliveryFeeService(DeliveryFeeServiceParams{
		Config: &config.Config{Checkout: &config.CheckoutConfig{}},
		Logger: discardLogger(),
	})

	assert.Equal(t, fee.TiersFromConfig(config.DefaultFeeTiers()), srv.Tiers())
}
