package session

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// redisRepository stores sessions as JSON strings. The key expires together
// with the backend token.
type redisRepository struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisRepository creates a SessionRepository on a redis client
func NewRedisRepository(client *redis.Client, prefix string) repository.SessionRepository {
	return &redisRepository{client: client, prefix: prefix, now: time.Now}
}

func (r *redisRepository) Save(ctx context.Context, s *entity.Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}

	var ttl time.Duration
	if !s.ExpiresAt.IsZero() {
		ttl = s.ExpiresAt.Sub(r.now())
		if ttl <= 0 {
			return errors.New("session already expired")
		}
	}

	if err := r.client.Set(ctx, r.key(s.ID), data, ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set session")
	}

	return nil
}

func (r *redisRepository) Find(ctx context.Context, sessionID string) (*entity.Session, error) {
	data, err := r.client.Get(ctx, r.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis get session")
	}

	return decode(data)
}

func (r *redisRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return errors.Wrap(err, "redis delete session")
	}

	return nil
}

func (r *redisRepository) Close() error {
	return errors.WithStack(r.client.Close())
}

func (r *redisRepository) key(sessionID string) string {
	return r.prefix + sessionID
}
