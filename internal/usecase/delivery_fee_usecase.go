package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// FeeEstimator keeps a delivery fee in step with the latest address
type FeeEstimator interface {
	// Update schedules a recalculation. It reports false, and does nothing,
	// until the address has both a street and a city.
	Update(ctx context.Context, address entity.Address, productIDs []string) bool

	// Override sets a manual fee, kept until the next successful calculation
	Override(amount float64) error

	// Snapshot returns the current fee state
	Snapshot() entity.FeeState

	// Close stops pending and in-flight calculations
	Close()
}

// DeliveryFeeUsecase creates estimators and publishes the pricing policy
type DeliveryFeeUsecase interface {
	NewEstimator() FeeEstimator
	Tiers() []entity.FeeTier
}
