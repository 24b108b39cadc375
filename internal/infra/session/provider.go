package session

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const (
	DriverBlob  = "blob"
	DriverRedis = "redis"
)

// RepositoryParams holds dependencies for SessionRepository, injected by Fx
type RepositoryParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewSessionRepository creates a SessionRepository based on configuration
func NewSessionRepository(params RepositoryParams) (repository.SessionRepository, error) {
	cfg := params.Config.Session
	logger := params.Logger

	var repo repository.SessionRepository

	switch cfg.Driver {
	case "", DriverBlob:
		logger.Info("Using blob session store", slog.String("url", cfg.BlobURL))

		var err error
		repo, err = OpenBlobRepository(params.Ctx, cfg.BlobURL, cfg.KeyPrefix)
		if err != nil {
			return nil, err
		}

	case DriverRedis:
		if cfg.Redis.Addr == "" {
			return nil, errors.New("redis address is required for redis session driver")
		}
		logger.Info("Using redis session store", slog.String("addr", cfg.Redis.Addr))

		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		repo = NewRedisRepository(client, cfg.KeyPrefix)

		params.Lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return errors.Wrap(client.Ping(ctx).Err(), "redis ping")
			},
		})

	default:
		return nil, errors.Errorf("unknown session driver: %s", cfg.Driver)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing session store")

			return repo.Close()
		},
	})

	return repo, nil
}

// Module provides the session store FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewSessionRepository),
)
