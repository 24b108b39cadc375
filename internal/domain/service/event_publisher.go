package service

import (
	"context"

	"storefront/internal/domain/entity"
)

// EventPublisher defines the interface for publishing checkout events to a message queue
type EventPublisher interface {
	// PublishCheckoutEvent publishes a checkout milestone for downstream consumers
	PublishCheckoutEvent(ctx context.Context, event *entity.CheckoutEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
