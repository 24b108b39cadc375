package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	mocksservice "storefront/internal/mocks/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	discountedQuery = service.ProductQuery{Limit: 20, Sort: "-createdAt"}
	recentQuery     = service.ProductQuery{Limit: 10, Sort: "-createdAt"}
	fillerQuery     = service.ProductQuery{Limit: 1, Sort: "-createdAt"}
)

func holidayPromotion(productIDs ...string) entity.Promotion {
	refs := make([]entity.ProductRef, 0, len(productIDs))
	for _, id := range productIDs {
		refs = append(refs, entity.ProductRef{ID: id})
	}

	return entity.Promotion{ID: "promo1", Name: "Holiday", BannerText: "20% off", Products: refs}
}

func TestPromotionService_PromotedProduct(t *testing.T) {
	catalog := mocksservice.NewMockCatalogService(t)
	catalog.On("ListActivePromotions", mock.Anything, 1).Return([]entity.Promotion{holidayPromotion("p9")}, nil).Once()
	catalog.On("GetProduct", mock.Anything, "p9").Return(&entity.Product{ID: "p9", Name: "Coffee"}, nil).Once()

	got := NewPromotionService(catalog, discardLogger()).ResolveFeatured(context.Background())

	assert.Equal(t, entity.FeaturedFromPromotion, got.Source)
	require.NotNil(t, got.Product)
	assert.Equal(t, "p9", got.Product.ID)
	require.NotNil(t, got.Promotion)
	assert.Equal(t, "promo1", got.Promotion.ID)
}

func TestPromotionService_DiscountedWhenPromotedProductMissing(t *testing.T) {
	catalog := mocksservice.NewMockCatalogService(t)
	catalog.On("ListActivePromotions", mock.Anything, 1).Return([]entity.Promotion{holidayPromotion("gone")}, nil).Once()
	catalog.On("GetProduct", mock.Anything, "gone").Return(nil, domainerrors.ErrNotFound).Once()
	catalog.On("ListProducts", mock.Anything, discountedQuery).Return([]entity.Product{
		{ID: "p1", Price: 100},
		{ID: "p2", Price: 80, OriginalPrice: 120},
		{ID: "p3", OnSale: true},
	}, nil).Once()

	got := NewPromotionService(catalog, discardLogger()).ResolveFeatured(context.Background())

	assert.Equal(t, entity.FeaturedFromDiscounted, got.Source)
	assert.Equal(t, "p2", got.Product.ID)
	assert.Equal(t, "promo1", got.Promotion.ID)
}

func TestPromotionService_PromotionWithoutProducts(t *testing.T) {
	catalog := mocksservice.NewMockCatalogService(t)
	catalog.On("ListActivePromotions", mock.Anything, 1).Return([]entity.Promotion{holidayPromotion()}, nil).Once()
	catalog.On("ListProducts", mock.Anything, discountedQuery).Return([]entity.Product{{ID: "p1", Price: 100}}, nil).Once()

	got := NewPromotionService(catalog, discardLogger()).ResolveFeatured(context.Background())

	assert.Equal(t, entity.FeaturedFromPromotion, got.Source)
	assert.Nil(t, got.Product)
	assert.Equal(t, "promo1", got.Promotion.ID)
	assert.False(t, got.IsEmpty())
}

func TestPromotionService_RecentWhenNoPromotions(t *testing.T) {
	tests := []struct {
		name     string
		products []entity.Product
		want     string
	}{
		{name: "first on sale", products: []entity.Product{{ID: "p1"}, {ID: "p2", OnSale: true}, {ID: "p3", Featured: true}}, want: "p2"},
		{name: "featured", products: []entity.Product{{ID: "p1"}, {ID: "p3", Featured: true}}, want: "p3"},
		{name: "first product", products: []entity.Product{{ID: "p1"}, {ID: "p2"}}, want: "p1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := mocksservice.NewMockCatalogService(t)
			catalog.On("ListActivePromotions", mock.Anything, 1).Return([]entity.Promotion{}, nil).Once()
			catalog.On("ListProducts", mock.Anything, recentQuery).Return(tt.products, nil).Once()

			got := NewPromotionService(catalog, discardLogger()).ResolveFeatured(context.Background())

			assert.Equal(t, entity.FeaturedFromRecent, got.Source)
			assert.Equal(t, tt.want, got.Product.ID)
			assert.Nil(t, got.Promotion)
		})
	}
}

func TestPromotionService_EmptyCatalog(t *testing.T) {
	catalog := mocksservice.NewMockCatalogService(t)
	catalog.On("ListActivePromotions", mock.Anything, 1).Return([]entity.Promotion{}, nil).Once()
	catalog.On("ListProducts", mock.Anything, recentQuery).Return([]entity.Product{}, nil).Once()

	got := NewPromotionService(catalog, discardLogger()).ResolveFeatured(context.Background())

	assert.True(t, got.IsEmpty())
	assert.Equal(t, entity.FeaturedNone, got.Source)
}

func TestPromotionService_FillerAfterFailure(t *testing.T) {
	catalog := mocksservice.NewMockCatalogService(t)
	catalog.On("ListActivePromotions", mock.Anything, 1).Return(nil, domainerrors.ErrNetwork).Once()
	catalog.On("ListProducts", mock.Anything, fillerQuery).Return([]entity.Product{{ID: "newest"}}, nil).Once()

	got := NewPromotionService(catalog, discardLogger()).ResolveFeatured(context.Background())

	assert.Equal(t, entity.FeaturedFromFiller, got.Source)
	assert.Equal(t, "newest", got.Product.ID)
}

func TestPromotionService_FillerAfterDiscountedScanFails(t *testing.T) {
	catalog := mocksservice.NewMockCatalogService(t)
	catalog.On("ListActivePromotions", mock.Anything, 1).Return([]entity.Promotion{holidayPromotion()}, nil).Once()
	catalog.On("ListProducts", mock.Anything, discountedQuery).Return(nil, domainerrors.ErrNetwork).Once()
	catalog.On("ListProducts", mock.Anything, fillerQuery).Return([]entity.Product{{ID: "newest"}}, nil).Once()

	got := NewPromotionService(catalog, discardLogger()).ResolveFeatured(context.Background())

	assert.Equal(t, entity.FeaturedFromFiller, got.Source)
	assert.Equal(t, "newest", got.Product.ID)
}

func TestPromotionService_EverythingFails(t *testing.T) {
	catalog := mocksservice.NewMockCatalogService(t)
	catalog.On("ListActivePromotions", mock.Anything, 1).Return(nil, domainerrors.ErrNetwork).Once()
	catalog.On("ListProducts", mock.Anything, fillerQuery).Return(nil, domainerrors.ErrNetwork).Once()

	got := NewPromotionService(catalog, discardLogger()).ResolveFeatured(context.Background())

	assert.True(t, got.IsEmpty())
	assert.Equal(t, entity.FeaturedNone, got.Source)
}

func TestPromotionService_CanceledContext(t *testing.T) {
	catalog := mocksservice.NewMockCatalogService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := NewPromotionService(catalog, discardLogger()).ResolveFeatured(ctx)

	assert.True(t, got.IsEmpty())
}
