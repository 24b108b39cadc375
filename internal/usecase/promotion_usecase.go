package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// PromotionUsecase picks the landing page hero content
type PromotionUsecase interface {
	// ResolveFeatured never fails; an empty candidate means "show the generic hero"
	ResolveFeatured(ctx context.Context) *entity.FeaturedCandidate
}
