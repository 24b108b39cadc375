package session

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
	"gocloud.dev/gcerrors"
)

// blobRepository keeps one JSON object per session in a gocloud bucket.
// Buckets have no native expiry; expired sessions are pruned by the usecase
// when read.
type blobRepository struct {
	bucket *blob.Bucket
	prefix string
}

// OpenBlobRepository opens the bucket at bucketURL (mem://, file:///path, ...)
func OpenBlobRepository(ctx context.Context, bucketURL, prefix string) (repository.SessionRepository, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open session bucket %q", bucketURL)
	}

	return NewBlobRepository(bucket, prefix), nil
}

// NewBlobRepository wraps an already opened bucket
func NewBlobRepository(bucket *blob.Bucket, prefix string) repository.SessionRepository {
	return &blobRepository{bucket: bucket, prefix: prefix}
}

func (r *blobRepository) Save(ctx context.Context, s *entity.Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}

	opts := &blob.WriterOptions{ContentType: "application/json"}
	if err := r.bucket.WriteAll(ctx, r.key(s.ID), data, opts); err != nil {
		return errors.Wrap(err, "write session")
	}

	return nil
}

func (r *blobRepository) Find(ctx context.Context, sessionID string) (*entity.Session, error) {
	data, err := r.bucket.ReadAll(ctx, r.key(sessionID))
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "read session")
	}

	return decode(data)
}

func (r *blobRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.bucket.Delete(ctx, r.key(sessionID)); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrap(err, "delete session")
	}

	return nil
}

func (r *blobRepository) Close() error {
	return errors.WithStack(r.bucket.Close())
}

func (r *blobRepository) key(sessionID string) string {
	return r.prefix + sessionID
}
