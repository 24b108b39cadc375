package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// CheckoutEventUsecase consumes checkout events delivered by Pub/Sub push.
type CheckoutEventUsecase interface {
	// Handle records a delivered event. It reports false when messageID
	// was already handled, since push delivery is at-least-once.
	Handle(ctx context.Context, messageID string, event *entity.CheckoutEvent) (bool, error)
}
