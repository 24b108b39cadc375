package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"
	"storefront/internal/util"

	"github.com/pkg/errors"
)

const (
	sortNewestFirst     = "-createdAt"
	discountedScanLimit = 20
	recentScanLimit     = 10
)

// promotionService implements the PromotionUsecase interface.
type promotionService struct {
	catalog service.CatalogService
	logger  *slog.Logger
}

// NewPromotionService is the constructor for promotionService.
func NewPromotionService(catalog service.CatalogService, logger *slog.Logger) usecase.PromotionUsecase {
	return &promotionService{catalog: catalog, logger: logger}
}

func (srv *promotionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ResolveFeatured runs the featured cascade for one request.
func (srv *promotionService) ResolveFeatured(ctx context.Context) *entity.FeaturedCandidate {
	c := &featuredCascade{catalog: srv.catalog}

	candidate, ok := util.FirstOf(ctx, srv.log(ctx),
		util.Attempt[entity.FeaturedCandidate]{Name: "active promotion", Run: c.promotedProduct},
		util.Attempt[entity.FeaturedCandidate]{Name: "discounted product", Run: c.discountedProduct},
		util.Attempt[entity.FeaturedCandidate]{Name: "recent product", Run: c.recentProduct},
		util.Attempt[entity.FeaturedCandidate]{Name: "filler product", Run: c.fillerProduct},
	)
	if !ok {
		srv.log(ctx).DebugContext(ctx, "No featured candidate, using generic hero")

		return &entity.FeaturedCandidate{Source: entity.FeaturedNone}
	}

	return &candidate
}

// featuredCascade carries what earlier attempts learned to the later ones.
type featuredCascade struct {
	catalog service.CatalogService

	promotion      *entity.Promotion
	noPromotions   bool // the promotions query succeeded and was empty
	earlierFailure bool
}

func (c *featuredCascade) promotedProduct(ctx context.Context) (entity.FeaturedCandidate, bool, error) {
	promotions, err := c.catalog.ListActivePromotions(ctx, 1)
	if err != nil {
		c.earlierFailure = true

		return entity.FeaturedCandidate{}, false, errors.Wrap(err, "list active promotions")
	}
	if len(promotions) == 0 {
		c.noPromotions = true

		return entity.FeaturedCandidate{}, false, nil
	}

	c.promotion = &promotions[0]
	productID, ok := c.promotion.FirstProductID()
	if !ok {
		return entity.FeaturedCandidate{}, false, nil
	}

	product, err := c.catalog.GetProduct(ctx, productID)
	if err != nil {
		c.earlierFailure = true

		return entity.FeaturedCandidate{}, false, errors.Wrapf(err, "get promoted product %s", productID)
	}

	return entity.FeaturedCandidate{
		Product:   product,
		Promotion: c.promotion,
		Source:    entity.FeaturedFromPromotion,
	}, true, nil
}

// discountedProduct pairs a promotion whose product could not be resolved
// with the newest discounted product, or shows the promotion alone.
func (c *featuredCascade) discountedProduct(ctx context.Context) (entity.FeaturedCandidate, bool, error) {
	if c.promotion == nil {
		return entity.FeaturedCandidate{}, false, nil
	}

	products, err := c.catalog.ListProducts(ctx, service.ProductQuery{Limit: discountedScanLimit, Sort: sortNewestFirst})
	if err != nil {
		c.earlierFailure = true

		return entity.FeaturedCandidate{}, false, errors.Wrap(err, "list recent products")
	}

	for i := range products {
		if products[i].IsDiscounted() {
			return entity.FeaturedCandidate{
				Product:   &products[i],
				Promotion: c.promotion,
				Source:    entity.FeaturedFromDiscounted,
			}, true, nil
		}
	}

	return entity.FeaturedCandidate{Promotion: c.promotion, Source: entity.FeaturedFromPromotion}, true, nil
}

// recentProduct applies only when there is no active promotion at all.
func (c *featuredCascade) recentProduct(ctx context.Context) (entity.FeaturedCandidate, bool, error) {
	if !c.noPromotions {
		return entity.FeaturedCandidate{}, false, nil
	}

	products, err := c.catalog.ListProducts(ctx, service.ProductQuery{Limit: recentScanLimit, Sort: sortNewestFirst})
	if err != nil {
		c.earlierFailure = true

		return entity.FeaturedCandidate{}, false, errors.Wrap(err, "list recent products")
	}
	if len(products) == 0 {
		return entity.FeaturedCandidate{}, false, nil
	}

	pick := &products[0]
	for i := range products {
		if products[i].OnSale || products[i].Featured {
			pick = &products[i]

			break
		}
	}

	return entity.FeaturedCandidate{Product: pick, Source: entity.FeaturedFromRecent}, true, nil
}

// fillerProduct is the last resort after an earlier attempt failed.
func (c *featuredCascade) fillerProduct(ctx context.Context) (entity.FeaturedCandidate, bool, error) {
	if !c.earlierFailure {
		return entity.FeaturedCandidate{}, false, nil
	}

	products, err := c.catalog.ListProducts(ctx, service.ProductQuery{Limit: 1, Sort: sortNewestFirst})
	if err != nil {
		return entity.FeaturedCandidate{}, false, errors.Wrap(err, "list filler product")
	}
	if len(products) == 0 {
		return entity.FeaturedCandidate{}, false, nil
	}

	return entity.FeaturedCandidate{Product: &products[0], Source: entity.FeaturedFromFiller}, true, nil
}
