package main

import (
	"context"
	"log/slog"
	"os"

	"storefront/config"
	"storefront/internal/delivery"
	"storefront/internal/delivery/api"
	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router/handler"
	"storefront/internal/domain/service"
	"storefront/internal/infra/auth"
	"storefront/internal/infra/backend"
	"storefront/internal/infra/fee"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/places"
	"storefront/internal/infra/pubsub"
	"storefront/internal/infra/session"
	"storefront/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			backend.NewClient,
		),
		places.Module,
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return session.Module
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			backend.NewCatalogClient,
			backend.NewCartClient,
			backend.NewAuthClient,
			backend.NewUploadClient,
			backend.NewOrderClient,
			newOrderService,
			auth.NewJWTInspector,
		),
		fee.Module,
	)
}

// newOrderService exposes the order half of the backend order client
func newOrderService(orders backend.OrderClient) service.OrderService {
	return orders
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAddressService,
			impl.NewCartService,
			impl.NewCheckoutService,
			impl.NewClientErrorService,
			impl.NewDeliveryFeeService,
			impl.NewPromotionService,
			impl.NewSessionService,
			impl.NewUploadService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewPlacesHandler,
			handler.NewHomeHandler,
			handler.NewCartHandler,
			handler.NewCheckoutHandler,
			handler.NewUploadHandler,
			handler.NewClientErrorHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
