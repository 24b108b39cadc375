package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"
)

// Pub/Sub redelivers unacknowledged messages for up to the ack deadline
// plus retries; ids older than this are forgotten.
const seenMessageTTL = 10 * time.Minute

type checkoutEventService struct {
	logger *slog.Logger
	now    func() time.Time

	mu   sync.Mutex
	seen map[string]time.Time
}

// NewCheckoutEventService is the constructor for checkoutEventService.
func NewCheckoutEventService(logger *slog.Logger) usecase.CheckoutEventUsecase {
	return &checkoutEventService{
		logger: logger,
		now:    time.Now,
		seen:   make(map[string]time.Time),
	}
}

func (srv *checkoutEventService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Handle validates the event and logs it once per message id.
func (srv *checkoutEventService) Handle(ctx context.Context, messageID string, event *entity.CheckoutEvent) (bool, error) {
	if event == nil || event.CheckoutID == "" {
		return false, domainerrors.ErrValidationFailed.WithDetails("checkout_id is required")
	}

	switch event.Type {
	case entity.CheckoutOrderSubmitted:
		if event.OrderID == "" {
			return false, domainerrors.ErrValidationFailed.WithDetails("order_id is required")
		}
	default:
		return false, domainerrors.ErrValidationFailed.WithDetails("unknown event type " + string(event.Type))
	}

	if messageID != "" && !srv.markSeen(messageID) {
		srv.log(ctx).DebugContext(ctx, "Skipping redelivered checkout event", slog.String("message_id", messageID))

		return false, nil
	}

	srv.log(ctx).InfoContext(ctx, "Order submitted",
		slog.String("checkout_id", event.CheckoutID),
		slog.String("order_id", event.OrderID),
		slog.Int("item_count", event.ItemCount),
		slog.Float64("subtotal", event.Subtotal),
		slog.Float64("delivery_fee", event.DeliveryFee),
		slog.String("fee_source", string(event.FeeSource)),
		slog.String("city", event.City),
		slog.Time("occurred_at", event.OccurredAt),
	)

	return true, nil
}

// markSeen records id and reports whether it was new. Expired ids are
// swept on the way.
func (srv *checkoutEventService) markSeen(id string) bool {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	now := srv.now()
	for seenID, at := range srv.seen {
		if now.Sub(at) > seenMessageTTL {
			delete(srv.seen, seenID)
		}
	}

	if _, ok := srv.seen[id]; ok {
		return false
	}
	srv.seen[id] = now

	return true
}
